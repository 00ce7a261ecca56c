package http

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/Prateek11234/hrms/internal/domain/attendance"
	"github.com/Prateek11234/hrms/internal/handler/http/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type AttendanceHandler interface {
	// ListAttendance handles GET /employees/{id}/attendance
	ListAttendance(w http.ResponseWriter, r *http.Request)
	// MarkAttendance handles POST /employees/{id}/attendance
	MarkAttendance(w http.ResponseWriter, r *http.Request)
	// ExportAttendance handles GET /employees/{id}/attendance/export
	ExportAttendance(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{attendanceService: attendanceService}
}

func (h *attendanceHandlerImpl) ListAttendance(w http.ResponseWriter, r *http.Request) {
	id, ok := employeeIDParam(w, r)
	if !ok {
		return
	}

	filter, err := attendance.ParseFilter(r.URL.Query())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	records, err := h.attendanceService.ListAttendance(r.Context(), id, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}

func (h *attendanceHandlerImpl) MarkAttendance(w http.ResponseWriter, r *http.Request) {
	id, ok := employeeIDParam(w, r)
	if !ok {
		return
	}

	var req attendance.MarkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.ValidationError(w, "Invalid request format")
		return
	}

	record, err := h.attendanceService.MarkAttendance(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, record)
}

func (h *attendanceHandlerImpl) ExportAttendance(w http.ResponseWriter, r *http.Request) {
	id, ok := employeeIDParam(w, r)
	if !ok {
		return
	}

	filter, err := attendance.ParseFilter(r.URL.Query())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	data, err := h.attendanceService.ExportAttendance(r.Context(), id, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.File(w, xlsxContentType, "attendance-"+url.PathEscape(id)+".xlsx", data)
}
