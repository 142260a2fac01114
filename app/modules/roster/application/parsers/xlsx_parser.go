package parsers

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/festrack/festrack/app/shared/sharedtypes"
)

// StudentRow is one parsed row of a roster upload sheet.
type StudentRow struct {
	Name      string
	StudentID string
	Category  sharedtypes.Category
	Grade     string
	Section   string
	TeamName  string
}

// RowError attaches the 1-based sheet row number to a parse failure.
type RowError struct {
	Row int
	Err error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

// ParsedRoster holds the accepted rows plus per-row rejections.
type ParsedRoster struct {
	Rows   []StudentRow
	Errors []*RowError
}

// XLSXParser parses student roster upload sheets.
type XLSXParser struct{}

// NewXLSXParser creates a new XLSX parser
func NewXLSXParser() *XLSXParser {
	return &XLSXParser{}
}

// expected header columns, in order
var rosterHeader = []string{"name", "student id", "category", "grade", "section", "team"}

// Parse reads an XLSX roster sheet. Invalid rows are collected on the
// result rather than failing the whole file.
func (p *XLSXParser) Parse(data []byte) (*ParsedRoster, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		if strings.Contains(err.Error(), "zip: not a valid zip file") {
			return nil, fmt.Errorf("failed to open XLSX file: %w. (Hint: If this is a CSV file, please ensure it has a .csv extension)", err)
		}
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("XLSX file has no sheets")
	}

	sheetName := sheets[0]
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheetName, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheetName)
	}

	start := 0
	if isHeaderRow(rows[0]) {
		start = 1
	}

	result := &ParsedRoster{}
	for i := start; i < len(rows); i++ {
		row := rows[i]
		if isBlankRow(row) {
			continue
		}
		parsed, err := parseStudentRow(row)
		if err != nil {
			result.Errors = append(result.Errors, &RowError{Row: i + 1, Err: err})
			continue
		}
		result.Rows = append(result.Rows, *parsed)
	}

	if len(result.Rows) == 0 && len(result.Errors) == 0 {
		return nil, fmt.Errorf("sheet %q has no student rows", sheetName)
	}
	return result, nil
}

// isHeaderRow checks whether the first row is the column header
func isHeaderRow(row []string) bool {
	if len(row) == 0 {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(row[0]), rosterHeader[0])
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// parseStudentRow validates one data row. Columns: Name, Student ID,
// Category, Grade, Section, Team (team optional).
func parseStudentRow(row []string) (*StudentRow, error) {
	cell := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	name := cell(0)
	if name == "" {
		return nil, fmt.Errorf("missing name")
	}
	studentID := cell(1)
	if studentID == "" {
		return nil, fmt.Errorf("missing student id")
	}
	category := sharedtypes.Category(strings.ToLower(cell(2)))
	if category != sharedtypes.CategoryHS && category != sharedtypes.CategoryHSS {
		return nil, fmt.Errorf("unknown category %q", cell(2))
	}

	return &StudentRow{
		Name:      name,
		StudentID: studentID,
		Category:  category,
		Grade:     cell(3),
		Section:   cell(4),
		TeamName:  cell(5),
	}, nil
}
