package employee

import (
	"time"

	"github.com/google/uuid"
)

// Employee is a roster entry. EmployeeID is the client-supplied business key;
// ID is the storage key and never leaves the server.
type Employee struct {
	ID         uuid.UUID `json:"-"`
	EmployeeID string    `json:"employee_id"`
	FullName   string    `json:"full_name"`
	Email      string    `json:"email"`
	Department string    `json:"department"`
	CreatedAt  time.Time `json:"created_at"`
}
