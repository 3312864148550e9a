package manager

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

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

func (r *Repository) List(ctx context.Context) ([]dto.Manager, error) {
	query := `
select id,
	   full_name,
	   manager_id,
	   email,
	   level,
	   to_char(created_at, 'YYYY-MM-DD"T"HH24:MI:SSOF')
from managers
order by id;
`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pool.Query: %w", err)
	}
	defer rows.Close()

	var out []dto.Manager
	for rows.Next() {
		var m dto.Manager

		err = rows.Scan(&m.ID, &m.FullName, &m.ManagerID, &m.Email, &m.Level, &m.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("rows.Scan: %w", err)
		}

		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}

	return out, nil
}

// Create inserts the manager and returns the stored record.
func (r *Repository) Create(ctx context.Context, m dto.Manager) (*dto.Manager, error) {
	query := `
insert into managers
  (full_name, manager_id, email, level, created_at)
values
  (@full_name, @manager_id, @email, @level, now())
returning id, to_char(created_at, 'YYYY-MM-DD"T"HH24:MI:SSOF');
`
	args := pgx.NamedArgs{
		"full_name":  m.FullName,
		"manager_id": m.ManagerID,
		"email":      m.Email,
		"level":      m.Level,
	}

	err := r.pool.QueryRow(ctx, query, args).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		var pgerr *pgconn.PgError
		if errors.As(err, &pgerr) && pgerr.Code == "23505" {
			return nil, &dto.DuplicateError{Field: duplicateField(pgerr.ConstraintName)}
		}

		return nil, fmt.Errorf("row.Scan: %w", err)
	}

	return &m, nil
}

// ExistsByKeyOrEmail is the explicit pre-insert duplicate check used to
// produce a user-facing conflict message before hitting the unique
// constraints.
func (r *Repository) ExistsByKeyOrEmail(ctx context.Context, managerID, email string) (bool, error) {
	query := `
select 1
from managers
where manager_id = $1 or email = $2
limit 1;
`
	var x int
	err := r.pool.QueryRow(ctx, query, managerID, email).Scan(&x)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}

		return false, fmt.Errorf("row.Scan: %w", err)
	}

	return true, nil
}

func (r *Repository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `select count(*) from managers;`).Scan(&total); err != nil {
		return 0, fmt.Errorf("row.Scan: %w", err)
	}

	return total, nil
}

func duplicateField(constraint string) string {
	switch {
	case strings.Contains(constraint, "manager_id"):
		return "managerId"
	case strings.Contains(constraint, "email"):
		return "email"
	}

	return "unique field"
}
