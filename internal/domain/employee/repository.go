package employee

import (
	"context"

	"github.com/google/uuid"
)

type EmployeeRepository interface {
	// Create stores a new employee. Unique violations surface as
	// ErrEmployeeIDExists or ErrEmailExists.
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	GetByEmployeeID(ctx context.Context, employeeID string) (Employee, error)
	// FindByEmployeeIDOrEmail returns the first employee matching either key, or nil.
	FindByEmployeeIDOrEmail(ctx context.Context, employeeID string, email string) (*Employee, error)
	// List returns every employee, newest first.
	List(ctx context.Context) ([]Employee, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
