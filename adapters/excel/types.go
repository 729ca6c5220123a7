package excel

// RawTable holds one spreadsheet's cells before schema normalization.
type RawTable struct {
	Headers []string   // Column headers, trimmed
	Rows    [][]string // Data rows in file order
}
