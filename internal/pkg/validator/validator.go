package validator

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	playground "github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

// Detail renders the errors as a single human readable line, used verbatim
// as the "detail" of a 422 response.
func (v ValidationErrors) Detail() string {
	if len(v) == 0 {
		return "Validation error"
	}
	var msgs []string
	for _, err := range v {
		if err.Field == "" {
			msgs = append(msgs, err.Message)
			continue
		}
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, " | ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Email validation
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// IsPathSegment reports whether s survives as a single URL path segment.
// "." and ".." are collapsed by path cleaning.
func IsPathSegment(s string) bool {
	return s != "." && s != ".."
}

var (
	once     sync.Once
	validate *playground.Validate
)

func engine() *playground.Validate {
	once.Do(func() {
		validate = playground.New()
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = validate.RegisterValidation("strictemail", func(fl playground.FieldLevel) bool {
			return IsValidEmail(fl.Field().String())
		})
		_ = validate.RegisterValidation("pathsegment", func(fl playground.FieldLevel) bool {
			return IsPathSegment(fl.Field().String())
		})
	})
	return validate
}

// Struct validates s against its `validate` tags and returns ValidationErrors
// keyed by json field name, or nil.
func Struct(s interface{}) error {
	err := engine().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs playground.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	errs := make(ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		errs = append(errs, ValidationError{
			Field:   fe.Field(),
			Message: formatFieldError(fe),
		})
	}
	return errs
}

func formatFieldError(fe playground.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email", "strictemail":
		return "value is not a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.Join(strings.Fields(fe.Param()), ", "))
	case "pathsegment":
		return `must not be "." or ".."`
	case "datetime":
		return fmt.Sprintf("must be a date in %s format", "YYYY-MM-DD")
	}
	return fmt.Sprintf("failed validation for '%s'", fe.Tag())
}
