package events

import "time"

const EmployeeLifecycleTopic = "hr.employee.lifecycle.v1"

const (
	EmployeeCreated = "employee_created"
	EmployeeUpdated = "employee_updated"
	EmployeeDeleted = "employee_deleted"
)

// EmployeeLifecycleEvent is emitted after a write to the employees table
// has been committed.
type EmployeeLifecycleEvent struct {
	EventID    string `json:"event_id"`
	EventType  string `json:"event_type"`
	RequestID  string `json:"request_id,omitempty"`
	EmployeeID uint   `json:"employee_id"`
	// EmployeeCode is the externally supplied identifier, known on create only.
	EmployeeCode string    `json:"employee_code,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
}
