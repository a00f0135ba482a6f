// Package excelexport renders tabular data as a single-sheet xlsx
// workbook with a styled header row.
package excelexport

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// Workbook builds an xlsx file from a header row and data rows. Rows
// wider than the header are truncated to it.
func Workbook(sheet string, header []string, rows [][]any) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return nil, err
	}

	for i, h := range header {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		cell := col + "1"
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
			return nil, err
		}
	}

	for rowIdx, row := range rows {
		for i, v := range row {
			if i >= len(header) {
				break
			}
			col, err := excelize.ColumnNumberToName(i + 1)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, fmt.Sprintf("%s%d", col, rowIdx+2), v); err != nil {
				return nil, err
			}
		}
	}

	return f, nil
}

// Write renders the workbook directly to w, typically an HTTP response.
func Write(w io.Writer, sheet string, header []string, rows [][]any) error {
	f, err := Workbook(sheet, header, rows)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Write(w)
}
