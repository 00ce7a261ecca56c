package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Prateek11234/hrms/internal/domain/attendance"
	"github.com/Prateek11234/hrms/internal/domain/employee"
	"github.com/Prateek11234/hrms/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.Detail())
		return
	}

	switch {
	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeIDExists):
		Conflict(w, "Employee ID already exists")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already exists")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyMarked):
		Conflict(w, "Attendance already marked for this date")
	case errors.Is(err, attendance.ErrInvalidDate), errors.Is(err, attendance.ErrInvalidStatus):
		ValidationError(w, err.Error())

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
