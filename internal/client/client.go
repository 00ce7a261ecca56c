// Package client is the typed HRMS API client. Each method is one REST call;
// errors keep their *apifetch.Error classification behind the operation name.
package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/Prateek11234/hrms/internal/domain/attendance"
	"github.com/Prateek11234/hrms/internal/domain/dashboard"
	"github.com/Prateek11234/hrms/internal/domain/employee"
	"github.com/Prateek11234/hrms/internal/pkg/apifetch"
)

// Doer is the transport the client is built on; *apifetch.Client satisfies it.
type Doer interface {
	Do(ctx context.Context, path string, opts apifetch.Options, out any) error
	DoRaw(ctx context.Context, path string, opts apifetch.Options) (*apifetch.Response, error)
}

type Client struct {
	api Doer
}

func New(api Doer) *Client {
	return &Client{api: api}
}

func employeePath(employeeID string, rest ...string) string {
	p := "/employees/" + url.PathEscape(employeeID)
	for _, r := range rest {
		p += "/" + r
	}
	return p
}

func (c *Client) ListEmployees(ctx context.Context) ([]employee.Employee, error) {
	employees := []employee.Employee{}
	if err := c.api.Do(ctx, "/employees", apifetch.Options{}, &employees); err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	return employees, nil
}

func (c *Client) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.Employee, error) {
	var created employee.Employee
	err := c.api.Do(ctx, "/employees", apifetch.Options{Method: http.MethodPost, JSON: req}, &created)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("create employee: %w", err)
	}
	return created, nil
}

func (c *Client) DeleteEmployee(ctx context.Context, employeeID string) error {
	if err := c.api.Do(ctx, employeePath(employeeID), apifetch.Options{Method: http.MethodDelete}, nil); err != nil {
		return fmt.Errorf("delete employee: %w", err)
	}
	return nil
}

// ListAttendance returns the records of one employee, newest date first. The
// slice is never nil on success.
func (c *Client) ListAttendance(ctx context.Context, employeeID string, filter attendance.Filter) ([]attendance.Record, error) {
	records := []attendance.Record{}
	err := c.api.Do(ctx, employeePath(employeeID, "attendance"), apifetch.Options{Query: filter.Query()}, &records)
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	if records == nil {
		records = []attendance.Record{}
	}
	return records, nil
}

func (c *Client) MarkAttendance(ctx context.Context, employeeID string, req attendance.MarkRequest) (attendance.Record, error) {
	var record attendance.Record
	err := c.api.Do(ctx, employeePath(employeeID, "attendance"), apifetch.Options{Method: http.MethodPost, JSON: req}, &record)
	if err != nil {
		return attendance.Record{}, fmt.Errorf("mark attendance: %w", err)
	}
	return record, nil
}

// ExportAttendance downloads the filtered records as an XLSX workbook.
func (c *Client) ExportAttendance(ctx context.Context, employeeID string, filter attendance.Filter) ([]byte, error) {
	resp, err := c.api.DoRaw(ctx, employeePath(employeeID, "attendance", "export"), apifetch.Options{Query: filter.Query()})
	if err != nil {
		return nil, fmt.Errorf("export attendance: %w", err)
	}
	return resp.Body, nil
}

func (c *Client) GetDashboard(ctx context.Context) (dashboard.Snapshot, error) {
	var snap dashboard.Snapshot
	if err := c.api.Do(ctx, "/dashboard", apifetch.Options{}, &snap); err != nil {
		return dashboard.Snapshot{}, fmt.Errorf("get dashboard: %w", err)
	}
	return snap, nil
}

func (c *Client) Health(ctx context.Context) error {
	var out struct {
		OK bool `json:"ok"`
	}
	if err := c.api.Do(ctx, "/health", apifetch.Options{}, &out); err != nil {
		return fmt.Errorf("health: %w", err)
	}
	if !out.OK {
		return fmt.Errorf("health: server reported not ok")
	}
	return nil
}
