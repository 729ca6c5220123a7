package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"pricelens/domain/pricelist"
)

// Sheet names of the exported workbook, matching the on-screen tabs.
const (
	sheetSummary = "Resumen"
	sheetMatched = "Coincidencias"
	sheetOnlyA   = "Solo en A"
	sheetOnlyB   = "Solo en B"
)

// ReportWriter renders a comparison into a multi-sheet .xlsx workbook.
type ReportWriter struct{}

// NewReportWriter creates an Excel report writer.
func NewReportWriter() *ReportWriter {
	return &ReportWriter{}
}

// Write builds the workbook in memory and returns its bytes.
func (w *ReportWriter) Write(result pricelist.ComparisonResult) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetSummary); err != nil {
		return nil, fmt.Errorf("failed to create summary sheet: %w", err)
	}
	if err := writeSummarySheet(f, result.Summary); err != nil {
		return nil, err
	}

	if err := writeMatchedSheet(f, result.MatchedRows()); err != nil {
		return nil, err
	}
	if err := writeSingleSideSheet(f, sheetOnlyA, result.OnlyARows()); err != nil {
		return nil, err
	}
	if err := writeSingleSideSheet(f, sheetOnlyB, result.OnlyBRows()); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSummarySheet(f *excelize.File, s pricelist.Summary) error {
	metrics := []struct {
		Name  string
		Value interface{}
	}{
		{"Total Archivo A", s.TotalA},
		{"Total Archivo B", s.TotalB},
		{"Coincidencias", s.Matched},
		{"Solo en A", s.OnlyA},
		{"Solo en B", s.OnlyB},
		{"Diferencia % Promedio", s.AvgDeltaPercent},
		{"Diferencia % Mediana", s.MedianDeltaPercent},
		{"Diferencia Máxima $", s.MaxAbsDelta},
	}

	if err := writeRow(f, sheetSummary, 1, "Métrica", "Valor"); err != nil {
		return err
	}
	for i, m := range metrics {
		if err := writeRow(f, sheetSummary, i+2, m.Name, m.Value); err != nil {
			return err
		}
	}
	return nil
}

func writeMatchedSheet(f *excelize.File, rows []pricelist.ComparisonRow) error {
	if _, err := f.NewSheet(sheetMatched); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheetMatched, err)
	}
	if err := writeRow(f, sheetMatched, 1, "Clave", "Descripción", "Precio A", "Precio B", "Diferencia $", "Diferencia %", "Similitud Texto"); err != nil {
		return err
	}
	for i, row := range rows {
		if err := writeRow(f, sheetMatched, i+2,
			row.Key,
			row.Description,
			deref(row.PriceA),
			deref(row.PriceB),
			deref(row.Delta),
			deref(row.DeltaPercent),
			deref(row.Similarity),
		); err != nil {
			return err
		}
	}
	return nil
}

func writeSingleSideSheet(f *excelize.File, sheet string, rows []pricelist.ComparisonRow) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}
	if err := writeRow(f, sheet, 1, "Clave", "Descripción", "Precio"); err != nil {
		return err
	}
	for i, row := range rows {
		price := row.PriceA
		if price == nil {
			price = row.PriceB
		}
		if err := writeRow(f, sheet, i+2, row.Key, row.Description, deref(price)); err != nil {
			return err
		}
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, rowIdx int, values ...interface{}) error {
	for col, value := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, rowIdx)
		if err != nil {
			return fmt.Errorf("invalid cell coordinates (%d, %d): %w", col+1, rowIdx, err)
		}
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return fmt.Errorf("failed to write %s!%s: %w", sheet, cell, err)
		}
	}
	return nil
}

// deref turns an absent value into an empty cell instead of a zero.
func deref(v *float64) interface{} {
	if v == nil {
		return ""
	}
	return *v
}
