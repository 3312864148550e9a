package api

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/valyala/fasthttp"

	"github.com/medhatjachour/employee-management/internal/dto"
	"github.com/medhatjachour/employee-management/internal/repository/employee"
)

var regexDate = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

var allowedStatuses = []string{dto.StatusActive, dto.StatusInactive}
var allowedLevels = []string{dto.LevelJunior, dto.LevelSenior, dto.LevelExecutive}

// looseNumber accepts a JSON number or a numeric string; the dashboard
// forms post both shapes.
type looseNumber string

func (n *looseNumber) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "null" {
		s = ""
	}

	*n = looseNumber(s)

	return nil
}

type employeeRequest struct {
	FullName    string      `json:"fullName" example:"Alice Johnson"`
	EmployeeID  string      `json:"employeeId" example:"E001"` // business key
	Email       string      `json:"email" example:"alice@example.com"`
	PhoneNumber *string     `json:"phoneNumber,omitempty" example:"123-456-7890"`
	JobTitle    string      `json:"jobTitle" example:"Software Engineer"`
	Department  string      `json:"department" example:"Engineering"`
	HireDate    string      `json:"hireDate" example:"2023-01-15"` // YYYY-MM-DD
	Salary      looseNumber `json:"salary" example:"75000"`
	Status      string      `json:"status" example:"ACTIVE"` // defaults to ACTIVE
	ProfilePic  *string     `json:"profilePic,omitempty"`
	ManagerID   looseNumber `json:"managerId,omitempty"`
	AddedByID   looseNumber `json:"addedById,omitempty"`
	UpdatedByID looseNumber `json:"updatedById,omitempty"`
}

type managerRequest struct {
	FullName  string `json:"fullName" example:"John Doe"`
	ManagerID string `json:"managerId" example:"M001"` // business key
	Email     string `json:"email" example:"john@example.com"`
	Level     string `json:"level" example:"SENIOR"` // JUNIOR | SENIOR | EXECUTIVE
}

func validDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

func checkDate(field, value string) string {
	if !regexDate.MatchString(value) || !validDate(value) {
		return fmt.Sprintf("invalid value in field '%s'=%s", field, value)
	}

	return ""
}

func checkEmail(field, value string) string {
	if !strings.Contains(value, "@") {
		return fmt.Sprintf("invalid value in field '%s'=%s", field, value)
	}

	return ""
}

// normalizeStatus maps a raw status to its canonical form
// case-insensitively. Empty input stays empty; the caller decides the
// default.
func normalizeStatus(raw string) (string, string) {
	val := strings.ToUpper(strings.TrimSpace(raw))
	if val == "" {
		return "", ""
	}

	for _, s := range allowedStatuses {
		if val == s {
			return s, ""
		}
	}

	return "", fmt.Sprintf("invalid enum value: status %s not in allowed statuses %v", raw, allowedStatuses)
}

func normalizeLevel(raw string) (string, string) {
	val := strings.ToUpper(strings.TrimSpace(raw))

	for _, l := range allowedLevels {
		if val == l {
			return l, ""
		}
	}

	return "", fmt.Sprintf("invalid enum value: level %s not in allowed levels %v", raw, allowedLevels)
}

// parseSalary coerces the salary to a non-negative decimal. Salary is
// required to parse.
func parseSalary(n looseNumber) (decimal.Decimal, string) {
	raw := strings.TrimSpace(string(n))
	if raw == "" {
		return decimal.Zero, "required field 'salary'"
	}

	d, err := decimal.NewFromString(raw)
	if err != nil || d.IsNegative() {
		return decimal.Zero, fmt.Sprintf("invalid value in field 'salary'=%s", raw)
	}

	return d, ""
}

// parseRef coerces an optional manager reference to an id.
func parseRef(n looseNumber, field string) (*int64, string) {
	raw := strings.TrimSpace(string(n))
	if raw == "" {
		return nil, ""
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, fmt.Sprintf("invalid value in field '%s'=%s", field, raw)
	}

	return &id, ""
}

// employeeFromRequest validates and normalizes the shared employee
// fields. Creator/updater references are checked by the handlers.
func employeeFromRequest(req employeeRequest) (dto.Employee, string) {
	var emp dto.Employee

	if strings.TrimSpace(req.FullName) == "" ||
		strings.TrimSpace(req.EmployeeID) == "" ||
		strings.TrimSpace(req.Email) == "" {
		return emp, ErrMissingFields.Error()
	}

	if msg := checkEmail("email", strings.TrimSpace(req.Email)); msg != "" {
		return emp, msg
	}

	if strings.TrimSpace(req.HireDate) == "" {
		return emp, "required field 'hireDate'"
	}

	if msg := checkDate("hireDate", strings.TrimSpace(req.HireDate)); msg != "" {
		return emp, msg
	}

	status, msg := normalizeStatus(req.Status)
	if msg != "" {
		return emp, msg
	}
	if status == "" {
		status = dto.StatusActive
	}

	salary, msg := parseSalary(req.Salary)
	if msg != "" {
		return emp, msg
	}

	managerID, msg := parseRef(req.ManagerID, "managerId")
	if msg != "" {
		return emp, msg
	}

	emp = dto.Employee{
		FullName:    strings.TrimSpace(req.FullName),
		EmployeeID:  strings.TrimSpace(req.EmployeeID),
		Email:       strings.TrimSpace(req.Email),
		PhoneNumber: req.PhoneNumber,
		JobTitle:    req.JobTitle,
		Department:  req.Department,
		HireDate:    strings.TrimSpace(req.HireDate),
		Salary:      salary,
		Status:      status,
		ProfilePic:  req.ProfilePic,
		ManagerID:   managerID,
	}

	return emp, ""
}

func validateManagerRequest(req managerRequest) (dto.Manager, string) {
	var m dto.Manager

	if strings.TrimSpace(req.FullName) == "" ||
		strings.TrimSpace(req.ManagerID) == "" ||
		strings.TrimSpace(req.Email) == "" ||
		strings.TrimSpace(req.Level) == "" {
		return m, ErrManagerFieldsMissing.Error()
	}

	if msg := checkEmail("email", strings.TrimSpace(req.Email)); msg != "" {
		return m, msg
	}

	level, msg := normalizeLevel(req.Level)
	if msg != "" {
		return m, msg
	}

	m = dto.Manager{
		FullName:  strings.TrimSpace(req.FullName),
		ManagerID: strings.TrimSpace(req.ManagerID),
		Email:     strings.TrimSpace(req.Email),
		Level:     level,
	}

	return m, ""
}

// parseListFilter turns the string-typed query parameters into the
// typed filter, with per-field coercion. Empty department/status/
// managerId params are treated as absent.
func parseListFilter(args *fasthttp.Args) (employee.Filter, string) {
	f := employee.Filter{Page: 1, Limit: 10}

	if msg := parsePageParam(args, "page", &f.Page); msg != "" {
		return f, msg
	}

	if msg := parsePageParam(args, "limit", &f.Limit); msg != "" {
		return f, msg
	}

	f.Search = strings.TrimSpace(string(args.Peek("search")))
	f.Department = strings.TrimSpace(string(args.Peek("department")))

	status, msg := normalizeStatus(string(args.Peek("status")))
	if msg != "" {
		return f, msg
	}
	f.Status = status

	managerID, msg := parseRef(looseNumber(args.Peek("managerId")), "managerId")
	if msg != "" {
		return f, msg
	}
	f.ManagerID = managerID

	return f, ""
}

func parsePageParam(args *fasthttp.Args, field string, dst *int) string {
	raw := strings.TrimSpace(string(args.Peek(field)))
	if raw == "" {
		return ""
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fmt.Sprintf("invalid value in field '%s'=%s", field, raw)
	}

	*dst = n

	return ""
}
