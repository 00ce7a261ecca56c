package validator

import (
	"errors"
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name+1@domain.co", "a@b.cd"}
	invalid := []string{"test@", "@example.com", "test@.com", "test@com", "test@domain", " ", ""}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsPathSegment(t *testing.T) {
	for _, s := range []string{"EMP-001", "OPS/42 ?#", "...", ".a"} {
		if !IsPathSegment(s) {
			t.Errorf("IsPathSegment(%q) = false, want true", s)
		}
	}
	for _, s := range []string{".", ".."} {
		if IsPathSegment(s) {
			t.Errorf("IsPathSegment(%q) = true, want false", s)
		}
	}
}

type sample struct {
	Code   string `json:"code" validate:"required,max=5"`
	Email  string `json:"email" validate:"required,strictemail"`
	Status string `json:"status" validate:"omitempty,oneof=Present Absent"`
	Day    string `json:"day" validate:"omitempty,datetime=2006-01-02"`
	Ref    string `json:"ref" validate:"omitempty,pathsegment"`
}

func TestStruct(t *testing.T) {
	if err := Struct(sample{Code: "A1", Email: "a@x.com", Status: "Present", Day: "2024-01-10"}); err != nil {
		t.Fatalf("Struct(valid) = %v, want nil", err)
	}

	err := Struct(sample{Code: "TOOLONG", Email: "nope", Status: "Late", Day: "10/01/2024", Ref: ".."})
	var errs ValidationErrors
	if !errors.As(err, &errs) {
		t.Fatalf("Struct(invalid) = %v, want ValidationErrors", err)
	}

	got := errs.ToMap()
	want := map[string]string{
		"code":   "must be at most 5 characters",
		"email":  "value is not a valid email address",
		"status": "must be one of: Present, Absent",
		"day":    "must be a date in YYYY-MM-DD format",
		"ref":    `must not be "." or ".."`,
	}
	for field, msg := range want {
		if got[field] != msg {
			t.Errorf("field %q message = %q, want %q", field, got[field], msg)
		}
	}
}

func TestStruct_Required(t *testing.T) {
	err := Struct(sample{})
	var errs ValidationErrors
	if !errors.As(err, &errs) {
		t.Fatalf("Struct(empty) = %v, want ValidationErrors", err)
	}
	if got := errs.ToMap()["code"]; got != "code is required" {
		t.Errorf("code message = %q", got)
	}
}

func TestValidationErrors_Detail(t *testing.T) {
	errs := ValidationErrors{
		{Field: "email", Message: "value is not a valid email address"},
		{Message: "All fields are required"},
	}
	want := "email: value is not a valid email address | All fields are required"
	if got := errs.Detail(); got != want {
		t.Errorf("Detail() = %q, want %q", got, want)
	}
	if got := (ValidationErrors{}).Detail(); got != "Validation error" {
		t.Errorf("empty Detail() = %q", got)
	}
}
