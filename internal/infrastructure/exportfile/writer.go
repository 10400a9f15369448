// Package exportfile serializes export rows into downloadable files.
package exportfile

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const xlsxSheet = "Products"

// WriteCSV streams the header and rows as RFC 4180 CSV.
func WriteCSV(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for i, row := range rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row %d: %w", i, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// WriteXLSX renders the same rows as a single-sheet workbook.
func WriteXLSX(w io.Writer, header []string, rows [][]string) error {
	file := excelize.NewFile()
	defer func() {
		_ = file.Close()
	}()

	index, err := file.NewSheet(xlsxSheet)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	file.SetActiveSheet(index)
	if err := file.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("drop default sheet: %w", err)
	}

	if err := writeXLSXRow(file, 1, header); err != nil {
		return err
	}
	for i, row := range rows {
		if err := writeXLSXRow(file, i+2, row); err != nil {
			return err
		}
	}

	if err := file.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeXLSXRow(file *excelize.File, rowNum int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("cell name for row %d: %w", rowNum, err)
	}
	cells := make([]any, len(values))
	for i, v := range values {
		cells[i] = v
	}
	if err := file.SetSheetRow(xlsxSheet, cell, &cells); err != nil {
		return fmt.Errorf("set row %d: %w", rowNum, err)
	}
	return nil
}
