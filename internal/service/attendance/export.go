package attendance

import (
	"fmt"
	"time"

	"github.com/Prateek11234/hrms/internal/domain/attendance"
	"github.com/xuri/excelize/v2"
)

// ExportSheet is the name of the worksheet written by ExportAttendance.
const ExportSheet = "Attendance"

var exportHeader = []interface{}{"Date", "Status", "Recorded at"}

// renderWorkbook writes one row per record under a bold header, followed by
// a blank row and the present/absent totals of the exported view.
func renderWorkbook(employeeID string, filter attendance.Filter, records []attendance.Record) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), ExportSheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	if err := f.SetSheetRow(ExportSheet, "A1", &exportHeader); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	if err := f.SetCellStyle(ExportSheet, "A1", "C1", bold); err != nil {
		return nil, fmt.Errorf("failed to style header: %w", err)
	}

	for i, r := range records {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{r.Date.String(), string(r.Status), r.CreatedAt.UTC().Format(time.RFC3339)}
		if err := f.SetSheetRow(ExportSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	present, absent := attendance.CountByStatus(records)
	summary := [][]interface{}{
		{"Employee", employeeID},
		{"Filter", describeFilter(filter)},
		{"Present days", present},
		{"Absent days", absent},
	}
	start := len(records) + 3
	for i, row := range summary {
		cell, _ := excelize.CoordinatesToCellName(1, start+i)
		if err := f.SetSheetRow(ExportSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write summary: %w", err)
		}
	}

	if err := f.SetColWidth(ExportSheet, "A", "C", 22); err != nil {
		return nil, fmt.Errorf("failed to size columns: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func describeFilter(f attendance.Filter) string {
	q := f.Query()
	if len(q) == 0 {
		return "all"
	}
	return q.Encode()
}
