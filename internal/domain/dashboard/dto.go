package dashboard

import (
	"fmt"

	"github.com/Prateek11234/hrms/internal/domain/attendance"
)

// Snapshot is the point-in-time summary served by GET /dashboard. It is
// recomputed on every request against the server's current date.
type Snapshot struct {
	EmployeeCount     int64           `json:"employee_count"`
	AttendanceRecords int64           `json:"attendance_records"` // all marks ever saved
	TodayPresent      int64           `json:"today_present"`
	TodayAbsent       int64           `json:"today_absent"`
	TodayDate         attendance.Date `json:"today_date"`
}

// Unmarked is the number of employees without a mark for today. Employees
// with no mark are counted in neither TodayPresent nor TodayAbsent.
func (s Snapshot) Unmarked() int64 {
	return s.EmployeeCount - s.TodayPresent - s.TodayAbsent
}

// Validate checks the counting invariants a well-formed snapshot satisfies.
func (s Snapshot) Validate() error {
	if s.EmployeeCount < 0 || s.AttendanceRecords < 0 || s.TodayPresent < 0 || s.TodayAbsent < 0 {
		return fmt.Errorf("dashboard counts must not be negative")
	}
	if s.TodayPresent+s.TodayAbsent > s.EmployeeCount {
		return fmt.Errorf("today_present + today_absent (%d) exceeds employee_count (%d)",
			s.TodayPresent+s.TodayAbsent, s.EmployeeCount)
	}
	if s.TodayPresent+s.TodayAbsent > s.AttendanceRecords {
		return fmt.Errorf("today's marks (%d) exceed attendance_records (%d)",
			s.TodayPresent+s.TodayAbsent, s.AttendanceRecords)
	}
	return nil
}
