package memory

import (
	"context"
	"slices"
	"strings"

	"github.com/Prateek11234/hrms/internal/domain/employee"
	"github.com/google/uuid"
)

type employeeRepository struct {
	store *Store
}

func (r *employeeRepository) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.employees {
		if e.EmployeeID == newEmployee.EmployeeID {
			return employee.Employee{}, employee.ErrEmployeeIDExists
		}
		if e.Email == newEmployee.Email {
			return employee.Employee{}, employee.ErrEmailExists
		}
	}
	if newEmployee.ID == uuid.Nil {
		newEmployee.ID = uuid.New()
	}
	s.employees[newEmployee.ID] = newEmployee
	onRollback(ctx, func() { delete(s.employees, newEmployee.ID) })
	return newEmployee, nil
}

func (r *employeeRepository) GetByEmployeeID(ctx context.Context, employeeID string) (employee.Employee, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, e := range s.employees {
		if e.EmployeeID == employeeID {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *employeeRepository) FindByEmployeeIDOrEmail(ctx context.Context, employeeID string, email string) (*employee.Employee, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var byEmail *employee.Employee
	for _, e := range s.employees {
		if e.EmployeeID == employeeID {
			return &e, nil
		}
		if e.Email == email && byEmail == nil {
			byEmail = &e
		}
	}
	return byEmail, nil
}

// List returns employees newest first, ties broken by employee_id.
func (r *employeeRepository) List(ctx context.Context) ([]employee.Employee, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]employee.Employee, 0, len(s.employees))
	for _, e := range s.employees {
		result = append(result, e)
	}
	slices.SortFunc(result, func(a, b employee.Employee) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.EmployeeID, b.EmployeeID)
	})
	return result, nil
}

// Delete removes the employee and, like the foreign key cascade, its marks.
func (r *employeeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	emp, ok := s.employees[id]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	days := s.attendance[id]
	delete(s.employees, id)
	delete(s.attendance, id)
	onRollback(ctx, func() {
		s.employees[id] = emp
		if days != nil {
			s.attendance[id] = days
		}
	})
	return nil
}
