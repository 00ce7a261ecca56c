package view

import (
	"context"
	"errors"
	"fmt"

	"github.com/Prateek11234/hrms/internal/domain/attendance"
	"github.com/Prateek11234/hrms/internal/pkg/notify"
)

var ErrNoEmployee = errors.New("no employee selected")

type AttendanceAPI interface {
	ListAttendance(ctx context.Context, employeeID string, filter attendance.Filter) ([]attendance.Record, error)
	MarkAttendance(ctx context.Context, employeeID string, req attendance.MarkRequest) (attendance.Record, error)
}

// AttendancePage shows the records of one employee. The employee id is the
// page identity: changing it discards reads issued for the previous one.
type AttendancePage struct {
	*page[[]attendance.Record]
	api AttendanceAPI

	// guarded by page.mu
	employeeID string
	filter     attendance.Filter
}

func NewAttendancePage(api AttendanceAPI, notifier Notifier, employeeID string) *AttendancePage {
	return &AttendancePage{
		page:       newPage(notifier, "Attendance error", "Failed to load attendance", []attendance.Record{}),
		api:        api,
		employeeID: employeeID,
	}
}

func (p *AttendancePage) Mount(ctx context.Context) {
	p.remount()
	p.Refresh(ctx)
}

// Refresh reads the records of the current employee under the current filter.
// Without an employee the page is Ready and empty.
func (p *AttendancePage) Refresh(ctx context.Context) {
	var (
		employeeID string
		filter     attendance.Filter
	)
	gen, ok := p.begin(func() {
		employeeID = p.employeeID
		filter = p.filter
	})
	if !ok {
		return
	}
	if employeeID == "" {
		p.finish(gen, []attendance.Record{}, nil)
		return
	}

	records, err := p.api.ListAttendance(ctx, employeeID, filter)
	if records == nil {
		records = []attendance.Record{}
	}
	p.finish(gen, records, err)
}

// SetEmployee switches the page to another employee and reloads.
func (p *AttendancePage) SetEmployee(ctx context.Context, employeeID string) {
	p.mu.Lock()
	changed := p.employeeID != employeeID
	p.employeeID = employeeID
	if changed {
		p.state.Data = []attendance.Record{}
	}
	p.mu.Unlock()

	if changed {
		p.invalidate()
	}
	p.Refresh(ctx)
}

func (p *AttendancePage) EmployeeID() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.employeeID
}

// SetFilter stores the filter used by the next read.
func (p *AttendancePage) SetFilter(filter attendance.Filter) error {
	if err := filter.Validate(); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.filter = filter
	return nil
}

func (p *AttendancePage) Filter() attendance.Filter {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.filter
}

// PresentCount counts Present records among those displayed.
func (p *AttendancePage) PresentCount() int {
	return attendance.PresentCount(p.State().Data)
}

// Mark saves a mark for the current employee and re-reads the records.
// Without an employee it fails with ErrNoEmployee before any request.
func (p *AttendancePage) Mark(ctx context.Context, req attendance.MarkRequest) (attendance.Record, error) {
	employeeID := p.EmployeeID()

	var saved attendance.Record
	err := p.mutate(ctx, "Mark failed", "Failed to mark attendance", func(ctx context.Context) (notify.Notification, error) {
		if employeeID == "" {
			return notify.Notification{}, ErrNoEmployee
		}
		var err error
		saved, err = p.api.MarkAttendance(ctx, employeeID, req)
		if err != nil {
			return notify.Notification{}, err
		}
		return notify.Success("Attendance saved", fmt.Sprintf("%s • %s • %s", employeeID, req.Date, req.Status)), nil
	})
	if err != nil {
		return attendance.Record{}, err
	}

	p.Refresh(ctx)
	return saved, nil
}
