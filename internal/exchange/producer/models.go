package producer

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EmployeePayload mirrors the stored employee record for downstream
// consumers; manager relations travel as ids only.
type EmployeePayload struct {
	ID          int64           `json:"id"`
	FullName    string          `json:"full_name"`
	EmployeeID  string          `json:"employee_id"`
	Email       string          `json:"email"`
	JobTitle    string          `json:"job_title"`
	Department  string          `json:"department"`
	HireDate    string          `json:"hire_date"` // YYYY-MM-DD
	Salary      decimal.Decimal `json:"salary"`
	Status      string          `json:"status"`
	ManagerID   *int64          `json:"manager_id"`
	AddedByID   *int64          `json:"added_by_id"`
	UpdatedByID *int64          `json:"updated_by_id"`
}

type ManagerPayload struct {
	ID        int64  `json:"id"`
	FullName  string `json:"full_name"`
	ManagerID string `json:"manager_id"`
	Email     string `json:"email"`
	Level     string `json:"level"`
}

type Envelope[T any] struct {
	Kind      string    `json:"kind"` // employee.created | employee.updated | employee.deleted | manager.created
	MessageID uuid.UUID `json:"message_id"`
	Payload   T         `json:"payload"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source"` // producing service
}
