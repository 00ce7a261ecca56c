// Package roster reads employee rosters from XLSX workbooks.
package roster

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Prateek11234/hrms/internal/domain/employee"
	"github.com/xuri/excelize/v2"
)

var requiredColumns = []string{"employee_id", "full_name", "email", "department"}

// Row is one data row of the roster. Line is the 1-based spreadsheet row.
type Row struct {
	Line    int
	Request employee.CreateEmployeeRequest
}

// Parse reads the first worksheet. The header row must carry every required
// column, in any order and any case. Fully blank rows are skipped.
func Parse(r io.Reader) ([]Row, error) {
	file, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = file.Close() }()

	sheetName := file.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no worksheet found")
	}

	rows, err := file.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("read worksheet: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("worksheet is empty")
	}

	headerIndex := map[string]int{}
	for i, header := range rows[0] {
		headerIndex[normalizeHeader(header)] = i
	}
	var missing []string
	for _, col := range requiredColumns {
		if _, ok := headerIndex[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required column: %s", strings.Join(missing, ", "))
	}

	var out []Row
	for i, row := range rows[1:] {
		req := employee.CreateEmployeeRequest{
			EmployeeID: cellValue(row, headerIndex["employee_id"]),
			FullName:   cellValue(row, headerIndex["full_name"]),
			Email:      cellValue(row, headerIndex["email"]),
			Department: cellValue(row, headerIndex["department"]),
		}
		if req == (employee.CreateEmployeeRequest{}) {
			continue
		}
		out = append(out, Row{Line: i + 2, Request: req})
	}
	return out, nil
}

// Creator creates one employee. *view.EmployeesPage implements it.
type Creator interface {
	Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.Employee, error)
}

type Failure struct {
	Line       int
	EmployeeID string
	Err        error
}

type Report struct {
	Created  []string
	Failures []Failure
}

// Import creates every row in order. A failing row is recorded and the
// import continues.
func Import(ctx context.Context, c Creator, rows []Row) Report {
	var report Report
	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			report.Failures = append(report.Failures, Failure{Line: row.Line, EmployeeID: row.Request.EmployeeID, Err: err})
			continue
		}
		created, err := c.Create(ctx, row.Request)
		if err != nil {
			report.Failures = append(report.Failures, Failure{Line: row.Line, EmployeeID: row.Request.EmployeeID, Err: err})
			continue
		}
		report.Created = append(report.Created, created.EmployeeID)
	}
	return report
}

func normalizeHeader(header string) string {
	h := strings.ToLower(strings.TrimSpace(header))
	return strings.ReplaceAll(h, " ", "_")
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
