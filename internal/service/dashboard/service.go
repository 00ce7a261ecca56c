package dashboard

import (
	"context"
	"time"

	"github.com/Prateek11234/hrms/internal/domain/attendance"
	"github.com/Prateek11234/hrms/internal/domain/dashboard"
	"golang.org/x/sync/errgroup"
)

type DashboardServiceImpl struct {
	dashboard.DashboardRepository
	now func() time.Time
}

// NewDashboardService returns the dashboard service. now supplies the
// server's current date; nil means time.Now.
func NewDashboardService(repo dashboard.DashboardRepository, now func() time.Time) dashboard.DashboardService {
	if now == nil {
		now = time.Now
	}
	return &DashboardServiceImpl{
		DashboardRepository: repo,
		now:                 now,
	}
}

// GetDashboard returns the snapshot for today, running the three counts in parallel
func (s *DashboardServiceImpl) GetDashboard(ctx context.Context) (dashboard.Snapshot, error) {
	today := attendance.DateOf(s.now())

	var (
		employeeCount int64
		recordCount   int64
		dayStats      dashboard.DayStats
	)

	g, gCtx := errgroup.WithContext(ctx)

	// 1. Roster size
	g.Go(func() error {
		n, err := s.CountEmployees(gCtx)
		if err != nil {
			return err
		}
		employeeCount = n
		return nil
	})

	// 2. All marks ever saved
	g.Go(func() error {
		n, err := s.CountAttendance(gCtx)
		if err != nil {
			return err
		}
		recordCount = n
		return nil
	})

	// 3. Today's present/absent (1 query)
	g.Go(func() error {
		stats, err := s.GetDayStats(gCtx, today)
		if err != nil {
			return err
		}
		dayStats = stats
		return nil
	})

	if err := g.Wait(); err != nil {
		return dashboard.Snapshot{}, err
	}

	return dashboard.Snapshot{
		EmployeeCount:     employeeCount,
		AttendanceRecords: recordCount,
		TodayPresent:      dayStats.Present,
		TodayAbsent:       dayStats.Absent,
		TodayDate:         today,
	}, nil
}
