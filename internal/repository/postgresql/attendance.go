package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/Prateek11234/hrms/internal/domain/attendance"
	"github.com/Prateek11234/hrms/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var attendanceColumns = []string{"a.id", "a.employee_pk", "e.employee_id", "a.date", "a.status", "a.created_at"}

type attendanceRepository struct {
	db database.Pool
}

func NewAttendanceRepository(db database.Pool) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query, args, err := psql.Insert("attendances").
		Columns("id", "employee_pk", "date", "status", "created_at").
		Values(record.ID, record.EmployeePK, record.Date.Time, string(record.Status), record.CreatedAt).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to build insert attendance query: %w", err)
	}

	if err := q.QueryRow(ctx, query, args...).Scan(&record.ID, &record.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return attendance.Record{}, attendance.ErrAlreadyMarked
		}
		return attendance.Record{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return record, nil
}

// Upsert implements attendance.AttendanceRepository.
func (a *attendanceRepository) Upsert(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query, args, err := psql.Insert("attendances").
		Columns("id", "employee_pk", "date", "status", "created_at").
		Values(record.ID, record.EmployeePK, record.Date.Time, string(record.Status), record.CreatedAt).
		Suffix("ON CONFLICT (employee_pk, date) DO UPDATE SET status = EXCLUDED.status, created_at = EXCLUDED.created_at").
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to build upsert attendance query: %w", err)
	}

	if err := q.QueryRow(ctx, query, args...).Scan(&record.ID, &record.CreatedAt); err != nil {
		return attendance.Record{}, fmt.Errorf("failed to upsert attendance: %w", err)
	}

	return record, nil
}

// ListByEmployee implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByEmployee(ctx context.Context, employeePK uuid.UUID, filter attendance.Filter) ([]attendance.Record, error) {
	records := make([]attendance.Record, 0)
	if filter.IsEmptyRange() {
		return records, nil
	}

	q := GetQuerier(ctx, a.db)

	builder := psql.Select(attendanceColumns...).
		From("attendances a").
		Join("employees e ON e.id = a.employee_pk").
		Where(squirrel.Eq{"a.employee_pk": employeePK})

	if filter.StartDate != nil {
		builder = builder.Where(squirrel.GtOrEq{"a.date": filter.StartDate.Time})
	}
	if filter.EndDate != nil {
		builder = builder.Where(squirrel.LtOrEq{"a.date": filter.EndDate.Time})
	}
	if filter.Status != nil {
		builder = builder.Where(squirrel.Eq{"a.status": string(*filter.Status)})
	}

	query, args, err := builder.OrderBy("a.date DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list attendance query: %w", err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance: %w", err)
	}

	return records, nil
}

// DeleteByEmployee implements attendance.AttendanceRepository.
func (a *attendanceRepository) DeleteByEmployee(ctx context.Context, employeePK uuid.UUID) (int64, error) {
	q := GetQuerier(ctx, a.db)

	query, args, err := psql.Delete("attendances").Where(squirrel.Eq{"employee_pk": employeePK}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build delete attendance query: %w", err)
	}

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete attendance: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanRecord(row pgx.Row) (attendance.Record, error) {
	var (
		rec    attendance.Record
		status string
	)
	err := row.Scan(
		&rec.ID,
		&rec.EmployeePK,
		&rec.EmployeeID,
		&rec.Date.Time,
		&status,
		&rec.CreatedAt,
	)
	rec.Status = attendance.Status(status)
	return rec, err
}
