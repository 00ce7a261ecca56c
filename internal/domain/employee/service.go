package employee

import "context"

// EmployeeService defines business logic for employee operations
type EmployeeService interface {
	// CreateEmployee validates and stores a new employee
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (Employee, error)

	// ListEmployees returns the full roster, newest first
	ListEmployees(ctx context.Context) ([]Employee, error)

	// DeleteEmployee removes an employee together with its attendance records
	DeleteEmployee(ctx context.Context, employeeID string) error
}
