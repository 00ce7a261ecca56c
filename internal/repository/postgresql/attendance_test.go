package postgresql

import (
	"context"
	"testing"
	"time"

	"github.com/Prateek11234/hrms/internal/domain/attendance"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var recordColumns = []string{"id", "employee_pk", "employee_id", "date", "status", "created_at"}

func TestAttendanceRepository_Create(t *testing.T) {
	rec := attendance.Record{
		ID:         uuid.New(),
		EmployeePK: uuid.New(),
		EmployeeID: "E1",
		Date:       attendance.NewDate(2024, time.January, 10),
		Status:     attendance.StatusPresent,
		CreatedAt:  time.Now(),
	}

	t.Run("success", func(t *testing.T) {
		mock := newMockPool(t)
		mock.ExpectQuery(`INSERT INTO attendances .+ RETURNING id, created_at`).
			WithArgs(rec.ID, rec.EmployeePK, rec.Date.Time, "Present", rec.CreatedAt).
			WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(rec.ID, rec.CreatedAt))

		got, err := NewAttendanceRepository(mock).Create(context.Background(), rec)
		require.NoError(t, err)
		assert.Equal(t, rec, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("already marked", func(t *testing.T) {
		mock := newMockPool(t)
		mock.ExpectQuery(`INSERT INTO attendances`).
			WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "uq_attendance_employee_date"})

		_, err := NewAttendanceRepository(mock).Create(context.Background(), rec)
		assert.ErrorIs(t, err, attendance.ErrAlreadyMarked)
	})
}

func TestAttendanceRepository_Upsert(t *testing.T) {
	mock := newMockPool(t)
	existingID := uuid.New()
	rec := attendance.Record{
		ID:         uuid.New(),
		EmployeePK: uuid.New(),
		Date:       attendance.NewDate(2024, time.January, 10),
		Status:     attendance.StatusAbsent,
		CreatedAt:  time.Now(),
	}
	mock.ExpectQuery(`INSERT INTO attendances .+ ON CONFLICT \(employee_pk, date\) DO UPDATE`).
		WithArgs(rec.ID, rec.EmployeePK, rec.Date.Time, "Absent", rec.CreatedAt).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(existingID, rec.CreatedAt))

	got, err := NewAttendanceRepository(mock).Upsert(context.Background(), rec)
	require.NoError(t, err)
	assert.Equal(t, existingID, got.ID)
	assert.Equal(t, attendance.StatusAbsent, got.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepository_ListByEmployee(t *testing.T) {
	pk := uuid.New()
	start := attendance.NewDate(2024, time.January, 1)
	end := attendance.NewDate(2024, time.January, 31)
	present := attendance.StatusPresent

	t.Run("with filter", func(t *testing.T) {
		mock := newMockPool(t)
		mock.ExpectQuery(`WHERE a.employee_pk = \$1 AND a.date >= \$2 AND a.date <= \$3 AND a.status = \$4 ORDER BY a.date DESC`).
			WithArgs(pk, start.Time, end.Time, "Present").
			WillReturnRows(pgxmock.NewRows(recordColumns).
				AddRow(uuid.New(), pk, "E1", attendance.NewDate(2024, time.January, 12).Time, "Present", time.Now()).
				AddRow(uuid.New(), pk, "E1", attendance.NewDate(2024, time.January, 10).Time, "Present", time.Now()))

		got, err := NewAttendanceRepository(mock).ListByEmployee(context.Background(), pk, attendance.Filter{
			StartDate: &start,
			EndDate:   &end,
			Status:    &present,
		})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "2024-01-12", got[0].Date.String())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty range skips the query", func(t *testing.T) {
		mock := newMockPool(t)

		got, err := NewAttendanceRepository(mock).ListByEmployee(context.Background(), pk, attendance.Filter{
			StartDate: &end,
			EndDate:   &start,
		})
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAttendanceRepository_DeleteByEmployee(t *testing.T) {
	mock := newMockPool(t)
	pk := uuid.New()
	mock.ExpectExec(`DELETE FROM attendances WHERE employee_pk = \$1`).
		WithArgs(pk).
		WillReturnResult(pgxmock.NewResult("DELETE", 3))

	n, err := NewAttendanceRepository(mock).DeleteByEmployee(context.Background(), pk)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}
