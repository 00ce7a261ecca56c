package view

import (
	"context"
	"fmt"
	"strings"

	"github.com/Prateek11234/hrms/internal/domain/employee"
	"github.com/Prateek11234/hrms/internal/pkg/notify"
)

type EmployeeAPI interface {
	ListEmployees(ctx context.Context) ([]employee.Employee, error)
	CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.Employee, error)
	DeleteEmployee(ctx context.Context, employeeID string) error
}

type EmployeesPage struct {
	*page[[]employee.Employee]
	api EmployeeAPI
}

func NewEmployeesPage(api EmployeeAPI, notifier Notifier) *EmployeesPage {
	return &EmployeesPage{
		page: newPage(notifier, "Employees error", "Failed to load employees", []employee.Employee{}),
		api:  api,
	}
}

func (p *EmployeesPage) Mount(ctx context.Context) {
	p.remount()
	p.Refresh(ctx)
}

func (p *EmployeesPage) Refresh(ctx context.Context) {
	gen, ok := p.begin(nil)
	if !ok {
		return
	}
	employees, err := p.api.ListEmployees(ctx)
	if employees == nil {
		employees = []employee.Employee{}
	}
	p.finish(gen, employees, err)
}

// Create trims every field, submits the employee and re-reads the roster.
func (p *EmployeesPage) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.Employee, error) {
	req = employee.CreateEmployeeRequest{
		EmployeeID: strings.TrimSpace(req.EmployeeID),
		FullName:   strings.TrimSpace(req.FullName),
		Email:      strings.TrimSpace(req.Email),
		Department: strings.TrimSpace(req.Department),
	}

	var created employee.Employee
	err := p.mutate(ctx, "Create failed", "Failed to add employee", func(ctx context.Context) (notify.Notification, error) {
		var err error
		created, err = p.api.CreateEmployee(ctx, req)
		if err != nil {
			return notify.Notification{}, err
		}
		return notify.Success("Employee added", fmt.Sprintf("%s (%s)", created.FullName, created.EmployeeID)), nil
	})
	if err != nil {
		return employee.Employee{}, err
	}

	p.Refresh(ctx)
	return created, nil
}

func (p *EmployeesPage) Delete(ctx context.Context, employeeID string) error {
	err := p.mutate(ctx, "Delete failed", "Failed to delete employee", func(ctx context.Context) (notify.Notification, error) {
		if err := p.api.DeleteEmployee(ctx, employeeID); err != nil {
			return notify.Notification{}, err
		}
		return notify.Success("Employee deleted", employeeID), nil
	})
	if err != nil {
		return err
	}

	p.Refresh(ctx)
	return nil
}
