package excel

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"math"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"pricelens/domain/pricelist"
	"pricelens/internal/errors"
)

// headerSearchLimit caps how many leading rows are scanned for the header row.
const headerSearchLimit = 20

// Column aliases accepted for the three schema columns. Matching is exact on
// the trimmed header text; the canonical accented names come first.
var (
	keyAliases   = []string{"Clave", "clave", "CLAVE", "Codigo", "codigo", "SKU", "sku"}
	descAliases  = []string{"Descripción", "Descripcion", "descripcion", "Nombre", "nombre"}
	priceAliases = []string{"Precio", "precio", "PRECIO", "Costo", "costo"}
)

// reNonPrice strips currency symbols, thousands separators and other noise
// from price cells before parsing.
var reNonPrice = regexp.MustCompile(`[^0-9.-]`)

// DataReader parses uploaded Excel and CSV price lists into domain rows.
type DataReader struct{}

// NewDataReader creates a reader for both .xlsx and .csv uploads.
func NewDataReader() *DataReader {
	return &DataReader{}
}

// ReadList reads one price list from r. The file type is taken from the
// filename extension; legacy .xls is not supported. The returned list keeps
// file row order.
func (dr *DataReader) ReadList(ctx context.Context, name string, r io.Reader, filename string) (pricelist.PriceList, error) {
	if err := ctx.Err(); err != nil {
		return pricelist.PriceList{}, err
	}

	var (
		table *RawTable
		err   error
	)
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".xlsx":
		table, err = readXLSX(r)
	case ".csv":
		table, err = readCSV(r)
	case ".xls":
		return pricelist.PriceList{}, errors.UnsupportedFile(fmt.Sprintf("%s: legacy .xls is not supported, save the file as .xlsx", filename))
	default:
		return pricelist.PriceList{}, errors.UnsupportedFile(fmt.Sprintf("%s: only .xlsx and .csv files are supported", filename))
	}
	if err != nil {
		return pricelist.PriceList{}, errors.Wrapf(err, "failed to read %s", filename)
	}

	list, err := normalizeTable(name, filename, table)
	if err != nil {
		return pricelist.PriceList{}, err
	}

	log.Printf("[DataReader] %s parsed (%d columns, %d rows)", filename, len(table.Headers), len(list.Rows))
	return list, nil
}

// readXLSX reads the first sheet of an Excel workbook.
func readXLSX(r io.Reader) (*RawTable, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheetName, err)
	}
	return tableFromRows(rows)
}

// readCSV reads a comma-separated file, tolerating a UTF-8 BOM and ragged rows.
func readCSV(r io.Reader) (*RawTable, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	b = bytes.TrimPrefix(b, []byte{0xEF, 0xBB, 0xBF})

	reader := csv.NewReader(bytes.NewReader(b))
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV file: %w", err)
	}
	return tableFromRows(rows)
}

func tableFromRows(rows [][]string) (*RawTable, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("file has no rows")
	}

	headerIdx := findHeaderRow(rows)
	if headerIdx == -1 {
		return nil, fmt.Errorf("could not find a header row")
	}

	headers := make([]string, len(rows[headerIdx]))
	for i, h := range rows[headerIdx] {
		headers[i] = strings.TrimSpace(h)
	}
	return &RawTable{Headers: headers, Rows: rows[headerIdx+1:]}, nil
}

// findHeaderRow locates the first plausible header row: the early row with
// the most non-empty cells that contains actual text.
func findHeaderRow(rows [][]string) int {
	maxNonEmpty := 0
	headerIdx := -1

	searchLimit := len(rows)
	if searchLimit > headerSearchLimit {
		searchLimit = headerSearchLimit
	}

	for i := 0; i < searchLimit; i++ {
		nonEmptyCount := 0
		hasText := false
		for _, cell := range rows[i] {
			trimmed := strings.TrimSpace(cell)
			if trimmed == "" {
				continue
			}
			nonEmptyCount++
			if containsLetters(trimmed) {
				hasText = true
			}
		}
		if nonEmptyCount >= 1 && hasText && nonEmptyCount > maxNonEmpty {
			maxNonEmpty = nonEmptyCount
			headerIdx = i
		}
	}
	return headerIdx
}

func containsLetters(s string) bool {
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			return true
		}
	}
	return false
}

// normalizeTable maps aliased columns onto the Clave/Descripción/Precio
// schema and validates every row. A missing key column is a hard error; a
// missing description or price column defaults to "" and 0 per row.
func normalizeTable(name, filename string, table *RawTable) (pricelist.PriceList, error) {
	keyIdx := findColumn(table.Headers, keyAliases)
	if keyIdx == -1 {
		return pricelist.PriceList{}, errors.MissingColumn("Clave", filename)
	}
	descIdx := findColumn(table.Headers, descAliases)
	priceIdx := findColumn(table.Headers, priceAliases)

	rows := make([]pricelist.PriceListRow, 0, len(table.Rows))
	for i, raw := range table.Rows {
		if isBlankRow(raw) {
			continue
		}

		key := strings.TrimSpace(cellAt(raw, keyIdx))
		if key == "" {
			return pricelist.PriceList{}, errors.InvalidRow(fmt.Sprintf("%s: data row %d has an empty Clave", filename, i+1))
		}

		price, err := cleanPrice(cellAt(raw, priceIdx))
		if err != nil {
			return pricelist.PriceList{}, errors.InvalidRow(fmt.Sprintf("%s: data row %d (Clave %s): %v", filename, i+1, key, err))
		}

		rows = append(rows, pricelist.PriceListRow{
			Key:         key,
			Description: strings.TrimSpace(cellAt(raw, descIdx)),
			Price:       price,
		})
	}

	return pricelist.PriceList{Name: name, Rows: rows}, nil
}

func findColumn(headers, aliases []string) int {
	for _, alias := range aliases {
		for i, h := range headers {
			if h == alias {
				return i
			}
		}
	}
	return -1
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// cleanPrice parses a price cell, stripping currency symbols and separators.
// Empty cells are zero; unparseable or negative values are rejected.
func cleanPrice(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, nil
	}

	cleaned := reNonPrice.ReplaceAllString(s, "")
	if cleaned == "" || cleaned == "-" || cleaned == "." {
		return 0, fmt.Errorf("Precio %q is not numeric", raw)
	}
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("Precio %q is not numeric", raw)
	}
	if value < 0 {
		return 0, fmt.Errorf("Precio %q is negative", raw)
	}
	return math.Round(value*100) / 100, nil
}
