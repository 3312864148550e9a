package employee

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medhatjachour/employee-management/internal/dto"
)

type stubRow struct {
	scanFn func(dest ...any) error
}

func (s stubRow) Scan(dest ...any) error {
	return s.scanFn(dest...)
}

func TestScanEmployee_ResolvesRelations(t *testing.T) {
	t.Parallel()

	phone := "123-456-7890"
	mgrID := int64(1)

	row := stubRow{scanFn: func(dest ...any) error {
		if len(dest) != 34 {
			return errors.New("unexpected dest length")
		}

		*(dest[0].(*int64)) = 10
		*(dest[1].(*string)) = "Alice Johnson"
		*(dest[2].(*string)) = "E001"
		*(dest[3].(*string)) = "alice@example.com"
		*(dest[4].(**string)) = &phone
		*(dest[5].(*string)) = "Software Engineer"
		*(dest[6].(*string)) = "Engineering"
		*(dest[7].(*string)) = "2023-01-15"
		*(dest[8].(*string)) = "75000.00"
		*(dest[9].(*string)) = dto.StatusActive
		// dest[10] profile_pic stays nil
		*(dest[11].(*string)) = "2024-01-01T10:00:00+00"
		*(dest[12].(*string)) = "2024-01-02T10:00:00+00"
		*(dest[13].(**int64)) = &mgrID
		// added_by / updated_by ids stay nil

		// supervisor join columns
		id := mgrID
		full := "John Doe"
		key := "M001"
		email := "john@example.com"
		level := dto.LevelSenior
		created := "2022-01-01T00:00:00+00"
		*(dest[16].(**int64)) = &id
		*(dest[17].(**string)) = &full
		*(dest[18].(**string)) = &key
		*(dest[19].(**string)) = &email
		*(dest[20].(**string)) = &level
		*(dest[21].(**string)) = &created

		// added_by / updated_by joins found nothing: all columns nil
		return nil
	}}

	emp, err := scanEmployee(row)
	require.NoError(t, err)

	assert.Equal(t, int64(10), emp.ID)
	assert.Equal(t, "E001", emp.EmployeeID)
	require.NotNil(t, emp.PhoneNumber)
	assert.Equal(t, phone, *emp.PhoneNumber)
	assert.True(t, emp.Salary.Equal(decimal.RequireFromString("75000.00")))

	require.NotNil(t, emp.Manager)
	assert.Equal(t, "John Doe", emp.Manager.FullName)
	assert.Equal(t, dto.LevelSenior, emp.Manager.Level)
	assert.Nil(t, emp.AddedBy)
	assert.Nil(t, emp.UpdatedBy)
}

func TestScanEmployee_NoRows(t *testing.T) {
	t.Parallel()

	row := stubRow{scanFn: func(dest ...any) error {
		return pgx.ErrNoRows
	}}

	_, err := scanEmployee(row)
	assert.ErrorIs(t, err, pgx.ErrNoRows)
}

func TestCount_AppliesFilterArgs(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewRepository(mock)

	mock.ExpectQuery("select count").
		WithArgs(pgx.NamedArgs{"search": "%alice%", "department": "HR"}).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(3)))

	total, err := repo.Count(context.Background(), Filter{Search: "alice", Department: "HR", Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_NotFound(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewRepository(mock)

	mock.ExpectExec("delete from employees").
		WithArgs(int64(99)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err = repo.Delete(context.Background(), 99)
	assert.ErrorIs(t, err, dto.ErrNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_Success(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewRepository(mock)

	mock.ExpectExec("delete from employees").
		WithArgs(int64(10)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	require.NoError(t, repo.Delete(context.Background(), 10))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DuplicateBusinessKey(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewRepository(mock)

	mock.ExpectQuery("insert into employees").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "employees_employee_id_key"})

	_, err = repo.Create(context.Background(), dto.Employee{EmployeeID: "E001"})

	require.ErrorIs(t, err, dto.ErrAlreadyExists)

	var dup *dto.DuplicateError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "employeeId", dup.Field)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_NotFound(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewRepository(mock)

	mock.ExpectExec("update employees").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	_, err = repo.Update(context.Background(), dto.Employee{ID: 42, HireDate: "2023-01-15"})
	assert.ErrorIs(t, err, dto.ErrNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListStatsRows(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewRepository(mock)

	hired := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("select department, status, hire_date from employees").
		WillReturnRows(pgxmock.NewRows([]string{"department", "status", "hire_date"}).
			AddRow("HR", dto.StatusActive, hired).
			AddRow("Engineering", dto.StatusInactive, hired.AddDate(-1, 0, 0)))

	rows, err := repo.ListStatsRows(context.Background())
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, "HR", rows[0].Department)
	assert.Equal(t, dto.StatusInactive, rows[1].Status)
	assert.Equal(t, 2023, rows[1].HireDate.Year())

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTranslatePgError(t *testing.T) {
	t.Parallel()

	dup := translatePgError(&pgconn.PgError{Code: "23505", ConstraintName: "employees_email_key"})
	require.ErrorIs(t, dup, dto.ErrAlreadyExists)

	fk := translatePgError(&pgconn.PgError{Code: "23503", ConstraintName: "employees_manager_id_fkey"})
	assert.ErrorIs(t, fk, dto.ErrInvalidReference)

	assert.Nil(t, translatePgError(errors.New("plain")))
}
