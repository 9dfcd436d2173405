// Package export renders tabular reports as CSV or XLSX.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"

	ContentTypeCSV  = "text/csv; charset=utf-8"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type Table struct {
	Sheet   string
	Headers []string
	Rows    [][]any
}

// WriteCSV writes t separated by semicolons, which spreadsheet tools in
// pt-BR locales open without an import wizard.
func WriteCSV(w io.Writer, t Table) error {
	cw := csv.NewWriter(w)
	cw.Comma = ';'

	if err := cw.Write(t.Headers); err != nil {
		return err
	}
	for _, row := range t.Rows {
		record := make([]string, len(row))
		for i, v := range row {
			record[i] = cellString(v)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func WriteXLSX(w io.Writer, t Table) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := t.Sheet
	if sheet == "" {
		sheet = "Sheet1"
	}
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	if sheet != "Sheet1" {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return err
		}
	}
	if index, err := f.GetSheetIndex(sheet); err == nil {
		f.SetActiveSheet(index)
	}

	for i, header := range t.Headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return err
		}
	}

	for r, row := range t.Rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(sheet, cell, cellValue(v)); err != nil {
				return err
			}
		}
	}

	return f.Write(w)
}

// FileName returns "<base>_<timestamp>.<format>".
func FileName(base, format string, now time.Time) string {
	return fmt.Sprintf("%s_%s.%s", base, now.Format("20060102_150405"), format)
}

func cellString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case decimal.Decimal:
		return val.StringFixed(2)
	case *decimal.Decimal:
		if val == nil {
			return ""
		}
		return val.StringFixed(2)
	case time.Time:
		if val.IsZero() {
			return ""
		}
		return val.Format("02/01/2006 15:04")
	case *time.Time:
		if val == nil || val.IsZero() {
			return ""
		}
		return val.Format("02/01/2006 15:04")
	default:
		return fmt.Sprint(val)
	}
}

// cellValue keeps numbers numeric in the spreadsheet.
func cellValue(v any) any {
	switch val := v.(type) {
	case decimal.Decimal:
		f, _ := val.Round(2).Float64()
		return f
	case *decimal.Decimal:
		if val == nil {
			return ""
		}
		f, _ := val.Round(2).Float64()
		return f
	case time.Time, *time.Time, nil:
		return cellString(val)
	default:
		return val
	}
}
