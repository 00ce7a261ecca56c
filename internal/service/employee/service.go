package employee

import (
	"context"
	"log/slog"
	"time"

	"github.com/Prateek11234/hrms/internal/domain/attendance"
	"github.com/Prateek11234/hrms/internal/domain/employee"
	"github.com/Prateek11234/hrms/internal/pkg/database"
	"github.com/google/uuid"
)

type EmployeeServiceImpl struct {
	db             database.Transactor
	employeeRepo   employee.EmployeeRepository
	attendanceRepo attendance.AttendanceRepository
	now            func() time.Time
}

func NewEmployeeService(
	db database.Transactor,
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		db:             db,
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		now:            time.Now,
	}
}

// CreateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.Employee, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return employee.Employee{}, err
	}

	existing, err := s.employeeRepo.FindByEmployeeIDOrEmail(ctx, req.EmployeeID, req.Email)
	if err != nil {
		return employee.Employee{}, err
	}
	if existing != nil {
		if existing.EmployeeID == req.EmployeeID {
			return employee.Employee{}, employee.ErrEmployeeIDExists
		}
		return employee.Employee{}, employee.ErrEmailExists
	}

	// The unique constraints still guard against a concurrent insert.
	created, err := s.employeeRepo.Create(ctx, employee.Employee{
		ID:         uuid.New(),
		EmployeeID: req.EmployeeID,
		FullName:   req.FullName,
		Email:      req.Email,
		Department: req.Department,
		CreatedAt:  s.now().UTC(),
	})
	if err != nil {
		return employee.Employee{}, err
	}

	slog.Info("Employee created", "employee_id", created.EmployeeID)
	return created, nil
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context) ([]employee.Employee, error) {
	return s.employeeRepo.List(ctx)
}

// DeleteEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) DeleteEmployee(ctx context.Context, employeeID string) error {
	emp, err := s.employeeRepo.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		return err
	}

	var removed int64
	err = s.db.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		removed, err = s.attendanceRepo.DeleteByEmployee(ctx, emp.ID)
		if err != nil {
			return err
		}

		return s.employeeRepo.Delete(ctx, emp.ID)
	})
	if err != nil {
		return err
	}

	slog.Info("Employee deleted", "employee_id", employeeID, "attendance_removed", removed)
	return nil
}
