package memory

import (
	"context"
	"fmt"
	"slices"

	"github.com/Prateek11234/hrms/internal/domain/attendance"
	"github.com/google/uuid"
)

type attendanceRepository struct {
	store *Store
}

func (r *attendanceRepository) Create(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	days, err := s.daysOf(record.EmployeePK)
	if err != nil {
		return attendance.Record{}, err
	}
	if _, ok := days[record.Date.String()]; ok {
		return attendance.Record{}, attendance.ErrAlreadyMarked
	}
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	key := record.Date.String()
	days[key] = record
	onRollback(ctx, func() { delete(s.attendance[record.EmployeePK], key) })
	return record, nil
}

func (r *attendanceRepository) Upsert(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	days, err := s.daysOf(record.EmployeePK)
	if err != nil {
		return attendance.Record{}, err
	}
	key := record.Date.String()
	previous, existed := days[key]
	if existed {
		record.ID = previous.ID
	} else if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	days[key] = record
	onRollback(ctx, func() {
		if existed {
			if days, ok := s.attendance[record.EmployeePK]; ok {
				days[key] = previous
			}
			return
		}
		delete(s.attendance[record.EmployeePK], key)
	})
	return record, nil
}

// ListByEmployee returns the matching records, newest date first.
func (r *attendanceRepository) ListByEmployee(ctx context.Context, employeePK uuid.UUID, filter attendance.Filter) ([]attendance.Record, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	days := s.attendance[employeePK]
	records := make([]attendance.Record, 0, len(days))
	employeeID := s.employees[employeePK].EmployeeID
	for _, rec := range days {
		rec.EmployeeID = employeeID
		records = append(records, rec)
	}
	slices.SortFunc(records, func(a, b attendance.Record) int {
		return b.Date.Compare(a.Date.Time)
	})
	return filter.Apply(records), nil
}

func (r *attendanceRepository) DeleteByEmployee(ctx context.Context, employeePK uuid.UUID) (int64, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	days, ok := s.attendance[employeePK]
	if !ok {
		return 0, nil
	}
	delete(s.attendance, employeePK)
	onRollback(ctx, func() { s.attendance[employeePK] = days })
	return int64(len(days)), nil
}

// daysOf returns the mutable per-day map of an employee. Caller holds s.mu.
func (s *Store) daysOf(employeePK uuid.UUID) (map[string]attendance.Record, error) {
	if _, ok := s.employees[employeePK]; !ok {
		return nil, fmt.Errorf("employee %s does not exist", employeePK)
	}
	days, ok := s.attendance[employeePK]
	if !ok {
		days = make(map[string]attendance.Record)
		s.attendance[employeePK] = days
	}
	return days, nil
}
