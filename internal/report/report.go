// Package report renders Excel exports of the fleet's data. Each
// report is a self-contained xlsx workbook streamed straight to the
// HTTP response.
package report

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

const (
	dateFormat     = "2006-01-02"
	dateTimeFormat = "2006-01-02 15:04"
)

// expiryWarningWindow flags licenses and insurance that run out soon.
const expiryWarningWindow = 30 * 24 * time.Hour

type column struct {
	header string
	width  float64
}

// newWorkbook creates a workbook whose first sheet replaces the
// default one, with a bold centered header row and per-column widths.
func newWorkbook(sheet string, columns []column) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}
	if err := writeHeader(f, sheet, columns); err != nil {
		return nil, err
	}
	return f, nil
}

// addSheet appends another sheet with the same header treatment.
func addSheet(f *excelize.File, sheet string, columns []column) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	return writeHeader(f, sheet, columns)
}

func writeHeader(f *excelize.File, sheet string, columns []column) error {
	style, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return err
	}

	for i, col := range columns {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		cell := fmt.Sprintf("%s1", name)
		if err := f.SetCellValue(sheet, cell, col.header); err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, name, name, col.width); err != nil {
			return err
		}
	}

	last, err := excelize.ColumnNumberToName(len(columns))
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", fmt.Sprintf("%s1", last), style)
}

func writeRow(f *excelize.File, sheet string, rowIdx int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, rowIdx)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

// alertStyle is the bold red font used to flag overdue oil changes and
// imminent expiries.
func alertStyle(f *excelize.File) (int, error) {
	return f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FF0000"},
	})
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateFormat)
}

func formatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateTimeFormat)
}

func yesNo(b bool) string {
	if b {
		return "YES"
	}
	return "No"
}
