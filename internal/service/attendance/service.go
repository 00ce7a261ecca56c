package attendance

import (
	"context"
	"log/slog"
	"time"

	"github.com/Prateek11234/hrms/internal/domain/attendance"
	"github.com/Prateek11234/hrms/internal/domain/employee"
	"github.com/google/uuid"
)

type AttendanceServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	policy         attendance.MarkPolicy
	now            func() time.Time
}

func NewAttendanceService(
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	policy attendance.MarkPolicy,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		policy:         policy,
		now:            time.Now,
	}
}

// MarkAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) MarkAttendance(ctx context.Context, employeeID string, req attendance.MarkRequest) (attendance.Record, error) {
	if err := req.Validate(); err != nil {
		return attendance.Record{}, err
	}
	day, err := req.Day()
	if err != nil {
		return attendance.Record{}, err
	}

	emp, err := a.employeeRepo.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		return attendance.Record{}, err
	}

	record := attendance.Record{
		ID:         uuid.New(),
		EmployeePK: emp.ID,
		EmployeeID: emp.EmployeeID,
		Date:       day,
		Status:     req.Status,
		CreatedAt:  a.now().UTC(),
	}

	var saved attendance.Record
	switch a.policy {
	case attendance.PolicyReject:
		saved, err = a.attendanceRepo.Create(ctx, record)
	default:
		saved, err = a.attendanceRepo.Upsert(ctx, record)
	}
	if err != nil {
		return attendance.Record{}, err
	}

	saved.EmployeeID = emp.EmployeeID
	slog.Info("Attendance marked", "employee_id", emp.EmployeeID, "date", day.String(), "status", saved.Status, "policy", a.policy.String())
	return saved, nil
}

// ListAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListAttendance(ctx context.Context, employeeID string, filter attendance.Filter) ([]attendance.Record, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	emp, err := a.employeeRepo.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	records, err := a.attendanceRepo.ListByEmployee(ctx, emp.ID, filter)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []attendance.Record{}
	}
	return records, nil
}

// ExportAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ExportAttendance(ctx context.Context, employeeID string, filter attendance.Filter) ([]byte, error) {
	records, err := a.ListAttendance(ctx, employeeID, filter)
	if err != nil {
		return nil, err
	}
	return renderWorkbook(employeeID, filter, records)
}
