package memory

import (
	"context"

	"github.com/Prateek11234/hrms/internal/domain/attendance"
	"github.com/Prateek11234/hrms/internal/domain/dashboard"
)

type dashboardRepository struct {
	store *Store
}

func (r *dashboardRepository) CountEmployees(ctx context.Context) (int64, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.employees)), nil
}

func (r *dashboardRepository) CountAttendance(ctx context.Context) (int64, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int64
	for _, days := range s.attendance {
		n += int64(len(days))
	}
	return n, nil
}

func (r *dashboardRepository) GetDayStats(ctx context.Context, date attendance.Date) (dashboard.DayStats, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var stats dashboard.DayStats
	key := date.String()
	for _, days := range s.attendance {
		rec, ok := days[key]
		if !ok {
			continue
		}
		switch rec.Status {
		case attendance.StatusPresent:
			stats.Present++
		case attendance.StatusAbsent:
			stats.Absent++
		}
	}
	return stats, nil
}
