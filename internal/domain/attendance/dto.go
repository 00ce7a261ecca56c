package attendance

import (
	"github.com/Prateek11234/hrms/internal/pkg/validator"
)

// MarkRequest is the body of POST /employees/{id}/attendance.
type MarkRequest struct {
	Date   string `json:"date" validate:"required,datetime=2006-01-02"`
	Status Status `json:"status" validate:"required,oneof=Present Absent"`
}

func NewMarkRequest(date Date, status Status) MarkRequest {
	return MarkRequest{Date: date.String(), Status: status}
}

func (r MarkRequest) Validate() error {
	return validator.Struct(r)
}

// Day returns the parsed date. Call Validate first.
func (r MarkRequest) Day() (Date, error) {
	return ParseDate(r.Date)
}
