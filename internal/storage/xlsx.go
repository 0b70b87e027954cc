package storage

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"expensetracker/internal/core"
)

// sheetName is the worksheet holding the expense rows.
const sheetName = "Expenses"

// WriteXLSX writes records to an XLSX workbook at the given path, one
// header row plus one row per record, mirroring the tabular shape.
func WriteXLSX(path string, records []core.Record) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("prepare worksheet: %w", err)
	}
	for i, name := range columns {
		cellRef, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cellRef, name); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}
	for n, s := range toStored(records) {
		values := []any{s.ID, s.Description, s.Amount, s.Category, s.Date}
		for i, v := range values {
			cellRef, err := excelize.CoordinatesToCellName(i+1, n+2)
			if err != nil {
				return fmt.Errorf("row cell: %w", err)
			}
			if err := f.SetCellValue(sheetName, cellRef, v); err != nil {
				return fmt.Errorf("write row %d: %w", n+2, err)
			}
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, ErrWriteFailure)
	}
	return nil
}

// ReadXLSX reads records from an XLSX workbook. It accepts the
// worksheet written by WriteXLSX, falling back to the first sheet for
// workbooks from other tools.
func ReadXLSX(path string) ([]core.Record, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, ErrCorruptStore)
	}
	defer f.Close()

	sheet := sheetName
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, ErrCorruptStore)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rowsToRecords(rows)
}
