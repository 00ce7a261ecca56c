package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/Prateek11234/hrms/internal/domain/employee"
	"github.com/Prateek11234/hrms/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	uniqueViolation        = "23505"
	employeeEmailUniqueKey = "uq_employees_email"
)

var employeeColumns = []string{"id", "employee_id", "full_name", "email", "department", "created_at"}

type employeeRepositoryImpl struct {
	db database.Pool
}

func NewEmployeeRepository(db database.Pool) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query, args, err := psql.Insert("employees").
		Columns(employeeColumns...).
		Values(
			newEmployee.ID,
			newEmployee.EmployeeID,
			newEmployee.FullName,
			newEmployee.Email,
			newEmployee.Department,
			newEmployee.CreatedAt,
		).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to build insert employee query: %w", err)
	}

	if err := q.QueryRow(ctx, query, args...).Scan(&newEmployee.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			if pgErr.ConstraintName == employeeEmailUniqueKey {
				return employee.Employee{}, employee.ErrEmailExists
			}
			return employee.Employee{}, employee.ErrEmployeeIDExists
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return newEmployee, nil
}

// GetByEmployeeID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByEmployeeID(ctx context.Context, employeeID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query, args, err := psql.Select(employeeColumns...).
		From("employees").
		Where(squirrel.Eq{"employee_id": employeeID}).
		ToSql()
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to build get employee query: %w", err)
	}

	emp, err := scanEmployee(q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by employee_id: %w", err)
	}
	return emp, nil
}

// FindByEmployeeIDOrEmail implements employee.EmployeeRepository.
// A match on employee_id is preferred over a match on email.
func (r *employeeRepositoryImpl) FindByEmployeeIDOrEmail(ctx context.Context, employeeID string, email string) (*employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query, args, err := psql.Select(employeeColumns...).
		From("employees").
		Where(squirrel.Or{
			squirrel.Eq{"employee_id": employeeID},
			squirrel.Eq{"email": email},
		}).
		OrderByClause("CASE WHEN employee_id = ? THEN 0 ELSE 1 END", employeeID).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build find employee query: %w", err)
	}

	emp, err := scanEmployee(q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find employee by employee_id or email: %w", err)
	}
	return &emp, nil
}

// List implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) List(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query, args, err := psql.Select(employeeColumns...).
		From("employees").
		OrderBy("created_at DESC", "employee_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list employees query: %w", err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	employees := make([]employee.Employee, 0)
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employees: %w", err)
	}

	return employees, nil
}

// Delete implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	q := GetQuerier(ctx, r.db)

	query, args, err := psql.Delete("employees").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete employee query: %w", err)
	}

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	err := row.Scan(
		&emp.ID,
		&emp.EmployeeID,
		&emp.FullName,
		&emp.Email,
		&emp.Department,
		&emp.CreatedAt,
	)
	return emp, err
}
