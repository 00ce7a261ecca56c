package postgresql

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Prateek11234/hrms/internal/domain/attendance"
	pgxmock "github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardRepository(t *testing.T) {
	mock := newMockPool(t)
	repo := NewDashboardRepository(mock)
	ctx := context.Background()
	day := attendance.NewDate(2024, time.January, 10)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM employees`).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(4)))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM attendances`).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(9)))
	mock.ExpectQuery(`FROM attendances\s+WHERE date = \$1`).
		WithArgs(day.Time).
		WillReturnRows(pgxmock.NewRows([]string{"present", "absent"}).AddRow(int64(3), int64(1)))

	employees, err := repo.CountEmployees(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), employees)

	records, err := repo.CountAttendance(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(9), records)

	stats, err := repo.GetDayStats(ctx, day)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Present)
	assert.Equal(t, int64(1), stats.Absent)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDashboardRepository_Error(t *testing.T) {
	mock := newMockPool(t)
	mock.ExpectQuery(`SELECT COUNT`).WillReturnError(errors.New("connection reset"))

	_, err := NewDashboardRepository(mock).CountEmployees(context.Background())
	assert.ErrorContains(t, err, "failed to count employees")
}
