// Package export writes the raw surveillance records behind the dashboard as a spreadsheet.
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/de-tools/malaria-atlas/pkg/models/domain"
	"github.com/de-tools/malaria-atlas/pkg/services/surveillance"
	"github.com/xuri/excelize/v2"
)

const (
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	RecordsSheet = "Records"
	PivotSheet   = "Pivot"
)

var (
	recordHeader = []interface{}{"Date", "Region", "Latitude", "Longitude", "Cases", "Recoveries", "Deaths", "Prevalence_Rate"}
	pivotHeader  = []interface{}{"Region", "Cases", "Deaths"}
)

// FileName is the download name of the export for a filter.
func FileName(filter domain.Filter) string {
	if filter.AllRegions() {
		return fmt.Sprintf("Malaria_Data_%d.xlsx", filter.Year)
	}
	return fmt.Sprintf("Malaria_Data_%d_%s.xlsx", filter.Year, filter.Region)
}

// WriteWorkbook writes records in their given order to a Records sheet and their per-region
// totals to a Pivot sheet.
func WriteWorkbook(w io.Writer, records []domain.Record) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", RecordsSheet); err != nil {
		return fmt.Errorf("failed to name records sheet: %w", err)
	}
	if _, err := f.NewSheet(PivotSheet); err != nil {
		return fmt.Errorf("failed to create pivot sheet: %w", err)
	}

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	if err := writeRow(f, RecordsSheet, 1, recordHeader); err != nil {
		return err
	}
	for i, r := range records {
		row := []interface{}{
			r.Date.Format(time.DateOnly),
			r.Region,
			r.Latitude,
			r.Longitude,
			r.Cases,
			r.Recoveries,
			r.Deaths,
			r.PrevalenceRate,
		}
		if err := writeRow(f, RecordsSheet, i+2, row); err != nil {
			return err
		}
	}

	if err := writeRow(f, PivotSheet, 1, pivotHeader); err != nil {
		return err
	}
	for i, p := range surveillance.Pivot(records) {
		if err := writeRow(f, PivotSheet, i+2, []interface{}{p.Region, p.Cases, p.Deaths}); err != nil {
			return err
		}
	}

	for _, sheet := range []string{RecordsSheet, PivotSheet} {
		if err := f.SetRowStyle(sheet, 1, 1, header); err != nil {
			return fmt.Errorf("failed to style %s header: %w", sheet, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write %s row %d: %w", sheet, row, err)
	}
	return nil
}
