package employee

import (
	"strings"

	"github.com/Prateek11234/hrms/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	EmployeeID string `json:"employee_id" validate:"required,max=50,pathsegment"`
	FullName   string `json:"full_name" validate:"required,max=120"`
	Email      string `json:"email" validate:"required,max=254,strictemail"`
	Department string `json:"department" validate:"required,max=80"`
}

// Normalize trims every field and lower-cases the email.
func (r *CreateEmployeeRequest) Normalize() {
	r.EmployeeID = strings.TrimSpace(r.EmployeeID)
	r.FullName = strings.TrimSpace(r.FullName)
	r.Department = strings.TrimSpace(r.Department)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

func (r *CreateEmployeeRequest) Validate() error {
	if validator.IsEmpty(r.EmployeeID) || validator.IsEmpty(r.FullName) ||
		validator.IsEmpty(r.Email) || validator.IsEmpty(r.Department) {
		errs := validator.ValidationErrors{{Message: "All fields are required"}}
		if err := validator.Struct(r); err != nil {
			if fieldErrs, ok := err.(validator.ValidationErrors); ok {
				errs = append(errs, fieldErrs...)
			}
		}
		return errs
	}
	return validator.Struct(r)
}
