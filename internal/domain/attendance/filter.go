package attendance

import (
	"net/url"

	"github.com/Prateek11234/hrms/internal/pkg/validator"
)

// Filter restricts an attendance listing. A nil field imposes no restriction.
type Filter struct {
	StartDate *Date
	EndDate   *Date
	Status    *Status
}

// ParseFilter reads start_date, end_date and status from query values.
// Empty values are treated as absent.
func ParseFilter(q url.Values) (Filter, error) {
	var (
		f    Filter
		errs validator.ValidationErrors
	)

	if v := q.Get("start_date"); v != "" {
		d, err := ParseDate(v)
		if err != nil {
			errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be a date in YYYY-MM-DD format"})
		} else {
			f.StartDate = &d
		}
	}

	if v := q.Get("end_date"); v != "" {
		d, err := ParseDate(v)
		if err != nil {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be a date in YYYY-MM-DD format"})
		} else {
			f.EndDate = &d
		}
	}

	if v := q.Get("status"); v != "" {
		s, err := ParseStatus(v)
		if err != nil {
			errs = append(errs, validator.ValidationError{Field: "status", Message: "must be one of: Present, Absent"})
		} else {
			f.Status = &s
		}
	}

	if len(errs) > 0 {
		return Filter{}, errs
	}
	return f, nil
}

// Query encodes only the fields that are set.
func (f Filter) Query() url.Values {
	q := url.Values{}
	if f.StartDate != nil {
		q.Set("start_date", f.StartDate.String())
	}
	if f.EndDate != nil {
		q.Set("end_date", f.EndDate.String())
	}
	if f.Status != nil {
		q.Set("status", string(*f.Status))
	}
	return q
}

func (f Filter) Validate() error {
	if f.Status != nil && !f.Status.IsValid() {
		return validator.ValidationErrors{{Field: "status", Message: "must be one of: Present, Absent"}}
	}
	return nil
}

// IsEmptyRange reports whether the date bounds exclude every day.
func (f Filter) IsEmptyRange() bool {
	return f.StartDate != nil && f.EndDate != nil && f.StartDate.After(*f.EndDate)
}

// Matches applies inclusive date bounds and the status restriction.
func (f Filter) Matches(r Record) bool {
	if f.StartDate != nil && r.Date.Before(*f.StartDate) {
		return false
	}
	if f.EndDate != nil && r.Date.After(*f.EndDate) {
		return false
	}
	if f.Status != nil && r.Status != *f.Status {
		return false
	}
	return true
}

// Apply returns the matching records in their original order. The result is
// never nil.
func (f Filter) Apply(records []Record) []Record {
	result := make([]Record, 0, len(records))
	if f.IsEmptyRange() {
		return result
	}
	for _, r := range records {
		if f.Matches(r) {
			result = append(result, r)
		}
	}
	return result
}

// PresentCount counts Present records in a (typically already filtered) view.
// It is unrelated to the dashboard's today_present.
func PresentCount(records []Record) int {
	present, _ := CountByStatus(records)
	return present
}

func CountByStatus(records []Record) (present, absent int) {
	for _, r := range records {
		switch r.Status {
		case StatusPresent:
			present++
		case StatusAbsent:
			absent++
		}
	}
	return present, absent
}
