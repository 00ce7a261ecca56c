package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// MarkAttendance records the status of an employee for a day, honouring the MarkPolicy
	MarkAttendance(ctx context.Context, employeeID string, req MarkRequest) (Record, error)

	// ListAttendance returns one employee's records restricted by filter
	ListAttendance(ctx context.Context, employeeID string, filter Filter) ([]Record, error)

	// ExportAttendance renders ListAttendance as an XLSX workbook
	ExportAttendance(ctx context.Context, employeeID string, filter Filter) ([]byte, error)
}
