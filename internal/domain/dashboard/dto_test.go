package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnapshot_Validate(t *testing.T) {
	tests := []struct {
		name    string
		snap    Snapshot
		wantErr bool
	}{
		{name: "empty", snap: Snapshot{}},
		{name: "partially marked", snap: Snapshot{EmployeeCount: 5, AttendanceRecords: 12, TodayPresent: 2, TodayAbsent: 1}},
		{name: "fully marked", snap: Snapshot{EmployeeCount: 3, AttendanceRecords: 3, TodayPresent: 2, TodayAbsent: 1}},
		{name: "more marks than employees", snap: Snapshot{EmployeeCount: 1, AttendanceRecords: 5, TodayPresent: 1, TodayAbsent: 1}, wantErr: true},
		{name: "more marks than records", snap: Snapshot{EmployeeCount: 4, AttendanceRecords: 1, TodayPresent: 2}, wantErr: true},
		{name: "negative", snap: Snapshot{EmployeeCount: -1}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.snap.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSnapshot_Unmarked(t *testing.T) {
	assert.Equal(t, int64(2), Snapshot{EmployeeCount: 5, TodayPresent: 2, TodayAbsent: 1}.Unmarked())
	assert.Equal(t, int64(0), Snapshot{}.Unmarked())
}
