package attendance

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const DateLayout = "2006-01-02"

type Status string

const (
	StatusPresent Status = "Present"
	StatusAbsent  Status = "Absent"
)

func (s Status) IsValid() bool {
	return s == StatusPresent || s == StatusAbsent
}

// ParseStatus accepts only the literal wire values.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return status, nil
}

// Date is a calendar day. The wrapped time is always midnight UTC so that two
// Dates for the same day compare equal.
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf returns the calendar day of t in t's own location.
func DateOf(t time.Time) Date {
	return NewDate(t.Date())
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return DateOf(t), nil
}

func (d Date) String() string {
	return d.Time.Format(DateLayout)
}

func (d Date) Before(u Date) bool {
	return d.Time.Before(u.Time)
}

func (d Date) After(u Date) bool {
	return d.Time.After(u.Time)
}

func (d Date) Equal(u Date) bool {
	return d.Time.Equal(u.Time)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Record is the single attendance mark of one employee on one day.
type Record struct {
	ID         uuid.UUID `json:"-"`
	EmployeePK uuid.UUID `json:"-"`
	EmployeeID string    `json:"employee_id"`
	Date       Date      `json:"date"`
	Status     Status    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}
