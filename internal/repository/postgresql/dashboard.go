package postgresql

import (
	"context"
	"fmt"

	"github.com/Prateek11234/hrms/internal/domain/attendance"
	"github.com/Prateek11234/hrms/internal/domain/dashboard"
	"github.com/Prateek11234/hrms/internal/pkg/database"
)

type dashboardRepositoryImpl struct {
	db database.Pool
}

func NewDashboardRepository(db database.Pool) dashboard.DashboardRepository {
	return &dashboardRepositoryImpl{db: db}
}

// CountEmployees returns the roster size
func (r *dashboardRepositoryImpl) CountEmployees(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM employees`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count employees: %w", err)
	}
	return count, nil
}

// CountAttendance returns the number of attendance records
func (r *dashboardRepositoryImpl) CountAttendance(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM attendances`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count attendance: %w", err)
	}
	return count, nil
}

// GetDayStats returns present/absent for a specific day
func (r *dashboardRepositoryImpl) GetDayStats(ctx context.Context, date attendance.Date) (dashboard.DayStats, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COALESCE(SUM(CASE WHEN status = 'Present' THEN 1 ELSE 0 END), 0) AS present,
			COALESCE(SUM(CASE WHEN status = 'Absent' THEN 1 ELSE 0 END), 0) AS absent
		FROM attendances
		WHERE date = $1
	`

	var stats dashboard.DayStats
	if err := q.QueryRow(ctx, query, date.Time).Scan(&stats.Present, &stats.Absent); err != nil {
		return dashboard.DayStats{}, fmt.Errorf("failed to get day stats: %w", err)
	}
	return stats, nil
}
