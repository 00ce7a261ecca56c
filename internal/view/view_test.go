package view

import (
	"context"
	"errors"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/Prateek11234/hrms/internal/app"
	"github.com/Prateek11234/hrms/internal/client"
	"github.com/Prateek11234/hrms/internal/domain/attendance"
	"github.com/Prateek11234/hrms/internal/domain/dashboard"
	"github.com/Prateek11234/hrms/internal/domain/employee"
	"github.com/Prateek11234/hrms/internal/pkg/apifetch"
	"github.com/Prateek11234/hrms/internal/pkg/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu   sync.Mutex
	sent []notify.Notification
}

func (r *recorder) Notify(n notify.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, n)
}

func (r *recorder) all() []notify.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]notify.Notification(nil), r.sent...)
}

type listResult struct {
	records []attendance.Record
	err     error
}

// blockingAttendance parks every ListAttendance call until the test releases it.
type blockingAttendance struct {
	calls chan string
	gates map[string]chan listResult
	mu    sync.Mutex
}

func newBlockingAttendance(ids ...string) *blockingAttendance {
	b := &blockingAttendance{calls: make(chan string, 8), gates: map[string]chan listResult{}}
	for _, id := range ids {
		b.gates[id] = make(chan listResult, 1)
	}
	return b
}

func (b *blockingAttendance) ListAttendance(ctx context.Context, employeeID string, _ attendance.Filter) ([]attendance.Record, error) {
	b.mu.Lock()
	gate := b.gates[employeeID]
	b.mu.Unlock()
	b.calls <- employeeID
	res := <-gate
	return res.records, res.err
}

func (b *blockingAttendance) MarkAttendance(ctx context.Context, employeeID string, req attendance.MarkRequest) (attendance.Record, error) {
	return attendance.Record{}, errors.New("not used")
}

func record(employeeID, day string, status attendance.Status) attendance.Record {
	d, err := attendance.ParseDate(day)
	if err != nil {
		panic(err)
	}
	return attendance.Record{EmployeeID: employeeID, Date: d, Status: status}
}

func TestPhase_String(t *testing.T) {
	assert.Equal(t, "loading", Loading.String())
	assert.Equal(t, "ready", Ready.String())
	assert.Equal(t, "failed", Failed.String())
	assert.Equal(t, "Phase(7)", Phase(7).String())
}

func TestAttendancePage_StaleReadDiscardedOnIdentityChange(t *testing.T) {
	api := newBlockingAttendance("EMP-001", "EMP-002")
	rec := &recorder{}
	p := NewAttendancePage(api, rec, "EMP-001")
	ctx := context.Background()

	firstDone := make(chan struct{})
	go func() {
		p.Mount(ctx)
		close(firstDone)
	}()
	require.Equal(t, "EMP-001", <-api.calls)
	assert.Equal(t, Loading, p.State().Phase)

	secondDone := make(chan struct{})
	go func() {
		p.SetEmployee(ctx, "EMP-002")
		close(secondDone)
	}()
	require.Equal(t, "EMP-002", <-api.calls)

	api.gates["EMP-002"] <- listResult{records: []attendance.Record{record("EMP-002", "2024-01-10", attendance.StatusPresent)}}
	<-secondDone

	// the late EMP-001 failure must neither overwrite the state nor notify
	api.gates["EMP-001"] <- listResult{err: &apifetch.Error{Kind: apifetch.KindServer, Status: 500, Message: "boom"}}
	<-firstDone

	st := p.State()
	assert.Equal(t, Ready, st.Phase)
	require.Len(t, st.Data, 1)
	assert.Equal(t, "EMP-002", st.Data[0].EmployeeID)
	assert.Equal(t, 1, p.PresentCount())
	assert.Empty(t, rec.all())
}

// queuedAttendance hands every ListAttendance call its own gate, in call order.
type queuedAttendance struct {
	calls chan chan listResult
}

func (q *queuedAttendance) ListAttendance(ctx context.Context, employeeID string, _ attendance.Filter) ([]attendance.Record, error) {
	gate := make(chan listResult, 1)
	q.calls <- gate
	res := <-gate
	return res.records, res.err
}

func (q *queuedAttendance) MarkAttendance(ctx context.Context, employeeID string, req attendance.MarkRequest) (attendance.Record, error) {
	return attendance.Record{}, errors.New("not used")
}

func TestAttendancePage_LaterReadSupersedesEarlier(t *testing.T) {
	tests := []struct {
		name  string
		early listResult
	}{
		{
			name:  "earlier read fails late",
			early: listResult{err: &apifetch.Error{Kind: apifetch.KindServer, Status: 500, Message: "boom"}},
		},
		{
			name: "earlier read succeeds late",
			early: listResult{records: []attendance.Record{
				record("EMP-001", "2024-01-01", attendance.StatusAbsent),
				record("EMP-001", "2024-01-02", attendance.StatusAbsent),
				record("EMP-001", "2024-01-03", attendance.StatusAbsent),
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &queuedAttendance{calls: make(chan chan listResult, 2)}
			rec := &recorder{}
			p := NewAttendancePage(api, rec, "EMP-001")
			ctx := context.Background()

			firstDone := make(chan struct{})
			go func() {
				p.Refresh(ctx)
				close(firstDone)
			}()
			first := <-api.calls

			secondDone := make(chan struct{})
			go func() {
				p.Refresh(ctx)
				close(secondDone)
			}()
			second := <-api.calls

			second <- listResult{records: []attendance.Record{record("EMP-001", "2024-01-10", attendance.StatusPresent)}}
			<-secondDone
			first <- tt.early
			<-firstDone

			st := p.State()
			assert.Equal(t, Ready, st.Phase)
			assert.Empty(t, st.Err)
			require.Len(t, st.Data, 1)
			assert.Equal(t, "2024-01-10", st.Data[0].Date.String())
			assert.Equal(t, "EMP-001", p.EmployeeID())
			assert.Empty(t, rec.all())
		})
	}
}

func TestAttendancePage_UnmountDropsResult(t *testing.T) {
	api := newBlockingAttendance("EMP-001")
	rec := &recorder{}
	p := NewAttendancePage(api, rec, "EMP-001")

	done := make(chan struct{})
	go func() {
		p.Mount(context.Background())
		close(done)
	}()
	<-api.calls
	p.Unmount()

	api.gates["EMP-001"] <- listResult{err: errors.New("connection reset")}
	<-done

	assert.Equal(t, Loading, p.State().Phase)
	assert.Empty(t, rec.all())
}

func TestAttendancePage_NoEmployee(t *testing.T) {
	rec := &recorder{}
	p := NewAttendancePage(newBlockingAttendance(), rec, "")
	p.Mount(context.Background())

	st := p.State()
	assert.Equal(t, Ready, st.Phase)
	assert.NotNil(t, st.Data)
	assert.Empty(t, st.Data)

	_, err := p.Mark(context.Background(), attendance.MarkRequest{Date: "2024-01-10", Status: attendance.StatusPresent})
	assert.ErrorIs(t, err, ErrNoEmployee)

	sent := rec.all()
	require.Len(t, sent, 1)
	assert.Equal(t, "Mark failed", sent[0].Title)
	assert.Equal(t, "Failed to mark attendance", sent[0].Message)
	assert.Equal(t, notify.KindError, sent[0].Kind)
}

func TestAttendancePage_SetFilterRejectsInvalid(t *testing.T) {
	p := NewAttendancePage(newBlockingAttendance(), &recorder{}, "EMP-001")
	bad := attendance.Status("Late")
	assert.Error(t, p.SetFilter(attendance.Filter{Status: &bad}))
	assert.Nil(t, p.Filter().Status)

	present := attendance.StatusPresent
	require.NoError(t, p.SetFilter(attendance.Filter{Status: &present}))
	assert.Equal(t, attendance.StatusPresent, *p.Filter().Status)
}

type failingDashboard struct{ err error }

func (f failingDashboard) GetDashboard(context.Context) (dashboard.Snapshot, error) {
	return dashboard.Snapshot{}, f.err
}

func TestDashboardPage_FailureNotifiesOnce(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantMsg string
	}{
		{
			name:    "classified",
			err:     &apifetch.Error{Kind: apifetch.KindServer, Status: 500, Message: "An unexpected error occurred"},
			wantMsg: "An unexpected error occurred",
		},
		{
			name:    "unclassified",
			err:     errors.New("boom"),
			wantMsg: "Failed to load dashboard",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			p := NewDashboardPage(failingDashboard{err: tt.err}, rec)
			p.Mount(context.Background())

			st := p.State()
			assert.Equal(t, Failed, st.Phase)
			assert.Equal(t, tt.wantMsg, st.Err)

			sent := rec.all()
			require.Len(t, sent, 1)
			assert.Equal(t, "Dashboard error", sent[0].Title)
			assert.Equal(t, tt.wantMsg, sent[0].Message)
			assert.Equal(t, notify.KindError, sent[0].Kind)
		})
	}
}

func newServerClient(t *testing.T) *client.Client {
	t.Helper()
	srv := httptest.NewServer(app.NewHandler(app.NewMemoryRepositories(), app.Options{
		MarkPolicy: attendance.PolicyOverwrite,
		Now:        func() time.Time { return time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC) },
	}))
	t.Cleanup(srv.Close)
	return client.New(apifetch.New(srv.URL))
}

func TestPages_AgainstServer(t *testing.T) {
	api := newServerClient(t)
	rec := &recorder{}
	ctx := context.Background()

	employees := NewEmployeesPage(api, rec)
	employees.Mount(ctx)
	assert.Equal(t, Ready, employees.State().Phase)
	assert.Empty(t, employees.State().Data)

	created, err := employees.Create(ctx, employee.CreateEmployeeRequest{
		EmployeeID: "  EMP-001 ",
		FullName:   " Ayesha Khan",
		Email:      "ayesha@example.com  ",
		Department: "Engineering",
	})
	require.NoError(t, err)
	assert.Equal(t, "EMP-001", created.EmployeeID)
	require.Len(t, employees.State().Data, 1)

	_, err = employees.Create(ctx, employee.CreateEmployeeRequest{
		EmployeeID: "EMP-001",
		FullName:   "Someone Else",
		Email:      "else@example.com",
		Department: "Sales",
	})
	require.Error(t, err)
	assert.True(t, apifetch.IsConflict(err))
	assert.Len(t, employees.State().Data, 1)

	attendancePage := NewAttendancePage(api, rec, "EMP-001")
	attendancePage.Mount(ctx)
	_, err = attendancePage.Mark(ctx, attendance.MarkRequest{Date: "2024-01-10", Status: attendance.StatusPresent})
	require.NoError(t, err)
	_, err = attendancePage.Mark(ctx, attendance.MarkRequest{Date: "2024-01-09", Status: attendance.StatusAbsent})
	require.NoError(t, err)
	assert.Len(t, attendancePage.State().Data, 2)
	assert.Equal(t, 1, attendancePage.PresentCount())

	present := attendance.StatusPresent
	require.NoError(t, attendancePage.SetFilter(attendance.Filter{Status: &present}))
	attendancePage.Refresh(ctx)
	assert.Len(t, attendancePage.State().Data, 1)

	board := NewDashboardPage(api, rec)
	board.Mount(ctx)
	st := board.State()
	require.Equal(t, Ready, st.Phase)
	assert.Equal(t, int64(1), st.Data.EmployeeCount)
	assert.Equal(t, int64(2), st.Data.AttendanceRecords)
	assert.Equal(t, int64(1), st.Data.TodayPresent)
	assert.Equal(t, "2024-01-10", st.Data.TodayDate.String())

	require.NoError(t, employees.Delete(ctx, "EMP-001"))
	assert.Empty(t, employees.State().Data)

	err = employees.Delete(ctx, "EMP-001")
	assert.True(t, apifetch.IsNotFound(err))

	attendancePage.Refresh(ctx)
	assert.Equal(t, Failed, attendancePage.State().Phase)
	assert.Equal(t, "Employee not found", attendancePage.State().Err)

	var titles, messages []string
	for _, n := range rec.all() {
		titles = append(titles, n.Title)
		messages = append(messages, n.Message)
	}
	assert.Equal(t, []string{
		"Employee added",
		"Create failed",
		"Attendance saved",
		"Attendance saved",
		"Employee deleted",
		"Delete failed",
		"Attendance error",
	}, titles)
	assert.Equal(t, "Ayesha Khan (EMP-001)", messages[0])
	assert.Equal(t, "Employee ID already exists", messages[1])
	assert.Equal(t, "EMP-001 • 2024-01-10 • Present", messages[2])
	assert.Equal(t, "EMP-001", messages[4])
	assert.Equal(t, "Employee not found", messages[5])
}
