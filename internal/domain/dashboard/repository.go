package dashboard

import (
	"context"

	"github.com/Prateek11234/hrms/internal/domain/attendance"
)

// DayStats holds the present/absent counts of a single day
type DayStats struct {
	Present int64
	Absent  int64
}

// DashboardRepository defines the interface for dashboard data access
type DashboardRepository interface {
	// CountEmployees returns the roster size
	CountEmployees(ctx context.Context) (int64, error)

	// CountAttendance returns the number of attendance records ever saved
	CountAttendance(ctx context.Context) (int64, error)

	// GetDayStats returns present/absent counts for a day in a single query
	GetDayStats(ctx context.Context, date attendance.Date) (DayStats, error)
}
