// Package memory keeps the HRMS data in process memory. It backs local runs
// with STORE=memory and the end-to-end tests of the HTTP surface.
package memory

import (
	"context"
	"sync"

	"github.com/Prateek11234/hrms/internal/domain/attendance"
	"github.com/Prateek11234/hrms/internal/domain/dashboard"
	"github.com/Prateek11234/hrms/internal/domain/employee"
	"github.com/google/uuid"
)

type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex

	employees  map[uuid.UUID]employee.Employee
	attendance map[uuid.UUID]map[string]attendance.Record // employee pk -> date -> record
}

func NewStore() *Store {
	return &Store{
		employees:  make(map[uuid.UUID]employee.Employee),
		attendance: make(map[uuid.UUID]map[string]attendance.Record),
	}
}

func (s *Store) Employees() employee.EmployeeRepository {
	return &employeeRepository{store: s}
}

func (s *Store) Attendance() attendance.AttendanceRepository {
	return &attendanceRepository{store: s}
}

func (s *Store) Dashboard() dashboard.DashboardRepository {
	return &dashboardRepository{store: s}
}

type txKey struct{}

// tx is the undo log of one transaction. Entries run in reverse under s.mu.
type tx struct {
	undo []func()
}

// WithinTransaction serializes fn against other transactions. When fn fails
// only the writes made with its ctx are undone; writes outside the
// transaction are kept. A nested call joins the outer transaction.
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*tx); ok {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	t := &tx{}
	if err := fn(context.WithValue(ctx, txKey{}, t)); err != nil {
		s.mu.Lock()
		for i := len(t.undo) - 1; i >= 0; i-- {
			t.undo[i]()
		}
		s.mu.Unlock()
		return err
	}
	return nil
}

// onRollback registers undo for a write made with ctx. Caller holds s.mu.
func onRollback(ctx context.Context, undo func()) {
	if t, ok := ctx.Value(txKey{}).(*tx); ok {
		t.undo = append(t.undo, undo)
	}
}
