// Package app assembles repositories, services and handlers into the HTTP
// handler served by cmd/api.
package app

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/Prateek11234/hrms/internal/domain/attendance"
	"github.com/Prateek11234/hrms/internal/domain/dashboard"
	"github.com/Prateek11234/hrms/internal/domain/employee"
	handler "github.com/Prateek11234/hrms/internal/handler/http"
	"github.com/Prateek11234/hrms/internal/pkg/database"
	"github.com/Prateek11234/hrms/internal/repository/memory"
	"github.com/Prateek11234/hrms/internal/repository/postgresql"
	attendanceservice "github.com/Prateek11234/hrms/internal/service/attendance"
	dashboardservice "github.com/Prateek11234/hrms/internal/service/dashboard"
	employeeservice "github.com/Prateek11234/hrms/internal/service/employee"
)

// Repositories is the persistence backend of the service.
type Repositories struct {
	Transactor database.Transactor
	Employees  employee.EmployeeRepository
	Attendance attendance.AttendanceRepository
	Dashboard  dashboard.DashboardRepository
}

func NewPostgresRepositories(db database.Pool) Repositories {
	return Repositories{
		Transactor: postgresql.NewTransactor(db),
		Employees:  postgresql.NewEmployeeRepository(db),
		Attendance: postgresql.NewAttendanceRepository(db),
		Dashboard:  postgresql.NewDashboardRepository(db),
	}
}

func NewMemoryRepositories() Repositories {
	store := memory.NewStore()
	return Repositories{
		Transactor: store,
		Employees:  store.Employees(),
		Attendance: store.Attendance(),
		Dashboard:  store.Dashboard(),
	}
}

type Options struct {
	MarkPolicy     attendance.MarkPolicy
	Now            func() time.Time // server clock for the dashboard; nil means time.Now
	AllowedOrigins []string
	Logger         *slog.Logger
}

// NewHandler wires services and handlers over repos.
func NewHandler(repos Repositories, opts Options) http.Handler {
	employeeService := employeeservice.NewEmployeeService(repos.Transactor, repos.Employees, repos.Attendance)
	attendanceService := attendanceservice.NewAttendanceService(repos.Employees, repos.Attendance, opts.MarkPolicy)
	dashboardService := dashboardservice.NewDashboardService(repos.Dashboard, opts.Now)

	return handler.NewRouter(
		handler.RouterOptions{Logger: opts.Logger, AllowedOrigins: opts.AllowedOrigins},
		handler.NewEmployeeHandler(employeeService),
		handler.NewAttendanceHandler(attendanceService),
		handler.NewDashboardHandler(dashboardService),
	)
}
