package attendance

import (
	"context"

	"github.com/google/uuid"
)

// AttendanceRepository defines data access methods for attendance records.
type AttendanceRepository interface {
	// Create inserts a new mark; a duplicate day yields ErrAlreadyMarked
	Create(ctx context.Context, record Record) (Record, error)

	// Upsert inserts a mark or replaces status and created_at of the existing one
	Upsert(ctx context.Context, record Record) (Record, error)

	// ListByEmployee returns matching records, newest date first
	ListByEmployee(ctx context.Context, employeePK uuid.UUID, filter Filter) ([]Record, error)

	// DeleteByEmployee removes every mark of an employee
	DeleteByEmployee(ctx context.Context, employeePK uuid.UUID) (int64, error)
}
