package employee

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/medhatjachour/employee-management/internal/dto"
)

type PgxPoolIface interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
}

type Repository struct {
	pool PgxPoolIface
}

func NewRepository(pool PgxPoolIface) *Repository {
	return &Repository{pool: pool}
}

// selectColumns covers the employee row plus the three joined manager
// relations (supervisor, added-by, updated-by), in scanEmployee order.
const selectColumns = `
e.id,
e.full_name,
e.employee_id,
e.email,
e.phone_number,
e.job_title,
e.department,
to_char(e.hire_date, 'YYYY-MM-DD'),
e.salary::text,
e.status,
e.profile_pic,
to_char(e.created_at, 'YYYY-MM-DD"T"HH24:MI:SSOF'),
to_char(e.updated_at, 'YYYY-MM-DD"T"HH24:MI:SSOF'),
e.manager_id,
e.added_by_id,
e.updated_by_id,
m.id, m.full_name, m.manager_id, m.email, m.level, to_char(m.created_at, 'YYYY-MM-DD"T"HH24:MI:SSOF'),
a.id, a.full_name, a.manager_id, a.email, a.level, to_char(a.created_at, 'YYYY-MM-DD"T"HH24:MI:SSOF'),
u.id, u.full_name, u.manager_id, u.email, u.level, to_char(u.created_at, 'YYYY-MM-DD"T"HH24:MI:SSOF')`

const fromJoined = `
from employees e
left join managers m on m.id = e.manager_id
left join managers a on a.id = e.added_by_id
left join managers u on u.id = e.updated_by_id`

// List returns one page of employees matching the filter, ordered by
// full name then id, with manager relations attached.
func (r *Repository) List(ctx context.Context, f Filter) ([]dto.Employee, error) {
	where, args := f.whereClause()
	args["limit"] = f.Limit
	args["offset"] = f.offset()

	query := `select ` + selectColumns + fromJoined + `
where ` + where + `
order by e.full_name asc, e.id asc
limit @limit offset @offset;`

	rows, err := r.pool.Query(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("pool.Query: %w", err)
	}
	defer rows.Close()

	var out []dto.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("rows.Scan: %w", err)
		}

		out = append(out, *emp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}

	return out, nil
}

// Count returns the number of employees matching the filter, unbounded
// by pagination.
func (r *Repository) Count(ctx context.Context, f Filter) (int64, error) {
	where, args := f.whereClause()

	query := `select count(*) from employees e where ` + where + `;`

	var total int64
	if err := r.pool.QueryRow(ctx, query, args).Scan(&total); err != nil {
		return 0, fmt.Errorf("row.Scan: %w", err)
	}

	return total, nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*dto.Employee, error) {
	query := `select ` + selectColumns + fromJoined + `
where e.id = $1;`

	emp, err := scanEmployee(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, dto.ErrNotFound
		}

		return nil, fmt.Errorf("row.Scan: %w", err)
	}

	return emp, nil
}

// Create inserts the employee and returns the stored record with
// relations resolved. Uniqueness violations map to DuplicateError.
func (r *Repository) Create(ctx context.Context, e dto.Employee) (*dto.Employee, error) {
	query := `
insert into employees
  (full_name, employee_id, email, phone_number, job_title, department, hire_date, salary, status, profile_pic, manager_id, added_by_id, updated_by_id, created_at, updated_at)
values
  (@full_name, @employee_id, @email, @phone_number, @job_title, @department, @hire_date::date, @salary::numeric, @status, @profile_pic, @manager_id, @added_by_id, @updated_by_id, now(), now())
returning id;
`
	args := pgx.NamedArgs{
		"full_name":     e.FullName,
		"employee_id":   e.EmployeeID,
		"email":         e.Email,
		"phone_number":  e.PhoneNumber,
		"job_title":     e.JobTitle,
		"department":    e.Department,
		"hire_date":     e.HireDate,
		"salary":        e.Salary.String(),
		"status":        e.Status,
		"profile_pic":   e.ProfilePic,
		"manager_id":    e.ManagerID,
		"added_by_id":   e.AddedByID,
		"updated_by_id": e.UpdatedByID,
	}

	var id int64
	if err := r.pool.QueryRow(ctx, query, args).Scan(&id); err != nil {
		if mapped := translatePgError(err); mapped != nil {
			return nil, mapped
		}

		return nil, fmt.Errorf("row.Scan: %w", err)
	}

	return r.GetByID(ctx, id)
}

// Update replaces all mutable fields wholesale and returns the stored
// record with relations resolved.
func (r *Repository) Update(ctx context.Context, e dto.Employee) (*dto.Employee, error) {
	query := `
update employees set
  full_name     = @full_name,
  employee_id   = @employee_id,
  email         = @email,
  phone_number  = @phone_number,
  job_title     = @job_title,
  department    = @department,
  hire_date     = @hire_date::date,
  salary        = @salary::numeric,
  status        = @status,
  profile_pic   = @profile_pic,
  manager_id    = @manager_id,
  updated_by_id = @updated_by_id,
  updated_at    = now()
where id = @id;
`
	args := pgx.NamedArgs{
		"id":            e.ID,
		"full_name":     e.FullName,
		"employee_id":   e.EmployeeID,
		"email":         e.Email,
		"phone_number":  e.PhoneNumber,
		"job_title":     e.JobTitle,
		"department":    e.Department,
		"hire_date":     e.HireDate,
		"salary":        e.Salary.String(),
		"status":        e.Status,
		"profile_pic":   e.ProfilePic,
		"manager_id":    e.ManagerID,
		"updated_by_id": e.UpdatedByID,
	}

	tag, err := r.pool.Exec(ctx, query, args)
	if err != nil {
		if mapped := translatePgError(err); mapped != nil {
			return nil, mapped
		}

		return nil, fmt.Errorf("pool.Exec: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, dto.ErrNotFound
	}

	return r.GetByID(ctx, e.ID)
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	query := `delete from employees where id = $1;`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("pool.Exec: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return dto.ErrNotFound
	}

	return nil
}

// ListStatsRows reads the dashboard projection for every employee.
// Intentionally unpaginated: the dashboard derives from the full set.
func (r *Repository) ListStatsRows(ctx context.Context) ([]dto.EmployeeStatsRow, error) {
	query := `select department, status, hire_date from employees;`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pool.Query: %w", err)
	}
	defer rows.Close()

	var out []dto.EmployeeStatsRow
	for rows.Next() {
		var row dto.EmployeeStatsRow

		if err := rows.Scan(&row.Department, &row.Status, &row.HireDate); err != nil {
			return nil, fmt.Errorf("rows.Scan: %w", err)
		}

		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}

	return out, nil
}

// managerCols holds one joined managers row; all columns are null when
// the left join found nothing.
type managerCols struct {
	id        *int64
	fullName  *string
	managerID *string
	email     *string
	level     *string
	createdAt *string
}

func (c managerCols) toDTO() *dto.Manager {
	if c.id == nil {
		return nil
	}

	return &dto.Manager{
		ID:        *c.id,
		FullName:  strval(c.fullName),
		ManagerID: strval(c.managerID),
		Email:     strval(c.email),
		Level:     strval(c.level),
		CreatedAt: strval(c.createdAt),
	}
}

func scanEmployee(row pgx.Row) (*dto.Employee, error) {
	var (
		emp          dto.Employee
		salary       string
		mgr, by, upd managerCols
	)

	err := row.Scan(
		&emp.ID,
		&emp.FullName,
		&emp.EmployeeID,
		&emp.Email,
		&emp.PhoneNumber,
		&emp.JobTitle,
		&emp.Department,
		&emp.HireDate,
		&salary,
		&emp.Status,
		&emp.ProfilePic,
		&emp.CreatedAt,
		&emp.UpdatedAt,
		&emp.ManagerID,
		&emp.AddedByID,
		&emp.UpdatedByID,
		&mgr.id, &mgr.fullName, &mgr.managerID, &mgr.email, &mgr.level, &mgr.createdAt,
		&by.id, &by.fullName, &by.managerID, &by.email, &by.level, &by.createdAt,
		&upd.id, &upd.fullName, &upd.managerID, &upd.email, &upd.level, &upd.createdAt,
	)
	if err != nil {
		return nil, err
	}

	emp.Salary, err = decimal.NewFromString(salary)
	if err != nil {
		return nil, fmt.Errorf("parse salary: %w", err)
	}

	emp.Manager = mgr.toDTO()
	emp.AddedBy = by.toDTO()
	emp.UpdatedBy = upd.toDTO()

	return &emp, nil
}

// translatePgError maps unique and foreign key violations to the
// repository error types; other errors pass through as nil.
func translatePgError(err error) error {
	var pgerr *pgconn.PgError
	if !errors.As(err, &pgerr) {
		return nil
	}

	switch pgerr.Code {
	case "23505":
		return &dto.DuplicateError{Field: duplicateField(pgerr.ConstraintName)}
	case "23503":
		return dto.ErrInvalidReference
	}

	return nil
}

func duplicateField(constraint string) string {
	switch {
	case strings.Contains(constraint, "employee_id"):
		return "employeeId"
	case strings.Contains(constraint, "email"):
		return "email"
	}

	return "unique field"
}

func strval(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
