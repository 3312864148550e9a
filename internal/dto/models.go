package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee statuses as stored.
const (
	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
)

// Manager levels as stored.
const (
	LevelJunior    = "JUNIOR"
	LevelSenior    = "SENIOR"
	LevelExecutive = "EXECUTIVE"
)

// Manager — a supervising manager record, immutable after creation.
type Manager struct {
	ID        int64  `json:"id"`
	FullName  string `json:"fullName"`
	ManagerID string `json:"managerId"` // business key, e.g. "M001"
	Email     string `json:"email"`
	Level     string `json:"level"` // JUNIOR | SENIOR | EXECUTIVE
	CreatedAt string `json:"createdAt"`
}

// Employee — an employee record with weak back-references to managers.
type Employee struct {
	ID          int64           `json:"id"`
	FullName    string          `json:"fullName"`
	EmployeeID  string          `json:"employeeId"` // business key, e.g. "E001"
	Email       string          `json:"email"`
	PhoneNumber *string         `json:"phoneNumber"`
	JobTitle    string          `json:"jobTitle"`
	Department  string          `json:"department"`
	HireDate    string          `json:"hireDate"` // YYYY-MM-DD
	Salary      decimal.Decimal `json:"salary"`
	Status      string          `json:"status"` // ACTIVE | INACTIVE
	ProfilePic  *string         `json:"profilePic"`
	CreatedAt   string          `json:"createdAt"`
	UpdatedAt   string          `json:"updatedAt"`

	ManagerID   *int64 `json:"managerId"`
	AddedByID   *int64 `json:"addedById"`
	UpdatedByID *int64 `json:"updatedById"`

	Manager   *Manager `json:"manager"`
	AddedBy   *Manager `json:"addedBy"`
	UpdatedBy *Manager `json:"updatedBy"`
}

// EmployeeStatsRow — the projection the dashboard aggregation reads.
type EmployeeStatsRow struct {
	Department string
	Status     string
	HireDate   time.Time
}
