package employee

import (
	"strings"

	"github.com/jackc/pgx/v5"
)

// Filter is the parsed, validated listing request. Status arrives already
// normalized to its canonical form; Page and Limit are >= 1.
type Filter struct {
	Search     string
	Department string
	Status     string
	ManagerID  *int64
	Page       int
	Limit      int
}

// whereClause builds the predicate shared by List and Count. The search
// term matches full name, business key or job title case-insensitively;
// an empty term matches everything. Department, status and manager are
// exact-match filters ANDed on top.
func (f Filter) whereClause() (string, pgx.NamedArgs) {
	var sb strings.Builder

	sb.WriteString(`(e.full_name ilike @search or e.employee_id ilike @search or e.job_title ilike @search)`)

	args := pgx.NamedArgs{
		"search": "%" + escapeLike(f.Search) + "%",
	}

	if f.Department != "" {
		sb.WriteString(` and e.department = @department`)
		args["department"] = f.Department
	}

	if f.Status != "" {
		sb.WriteString(` and e.status = @status`)
		args["status"] = f.Status
	}

	if f.ManagerID != nil {
		sb.WriteString(` and e.manager_id = @manager_id`)
		args["manager_id"] = *f.ManagerID
	}

	return sb.String(), args
}

func (f Filter) offset() int {
	return (f.Page - 1) * f.Limit
}

// escapeLike neutralizes ilike metacharacters so the search term is
// treated as a literal substring.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
