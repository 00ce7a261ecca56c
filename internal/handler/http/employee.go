package http

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/Prateek11234/hrms/internal/domain/employee"
	"github.com/Prateek11234/hrms/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type EmployeeHandler interface {
	// ListEmployees handles GET /employees
	ListEmployees(w http.ResponseWriter, r *http.Request)
	// CreateEmployee handles POST /employees
	CreateEmployee(w http.ResponseWriter, r *http.Request)
	// DeleteEmployee handles DELETE /employees/{id}
	DeleteEmployee(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	employeeService employee.EmployeeService
}

func NewEmployeeHandler(employeeService employee.EmployeeService) EmployeeHandler {
	return &employeeHandlerImpl{employeeService: employeeService}
}

func (h *employeeHandlerImpl) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.employeeService.ListEmployees(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, employees)
}

func (h *employeeHandlerImpl) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req employee.CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.ValidationError(w, "Invalid request format")
		return
	}

	created, err := h.employeeService.CreateEmployee(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, created)
}

func (h *employeeHandlerImpl) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := employeeIDParam(w, r)
	if !ok {
		return
	}

	if err := h.employeeService.DeleteEmployee(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.NoContent(w)
}

// employeeIDParam returns the decoded {id} path segment. chi matches on the
// raw path when the request carries escaped characters such as %2F.
func employeeIDParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "id")
	if r.URL.RawPath != "" {
		unescaped, err := url.PathUnescape(id)
		if err != nil {
			response.BadRequest(w, "Invalid employee id")
			return "", false
		}
		id = unescaped
	}
	if id == "" {
		response.BadRequest(w, "Employee ID is required")
		return "", false
	}
	return id, true
}
