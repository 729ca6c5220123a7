package pricelist

// PriceListRow is one parsed inventory line. Rows are validated at the parse
// boundary and treated as immutable afterwards.
type PriceListRow struct {
	Key         string  `json:"clave"`
	Description string  `json:"descripcion"`
	Price       float64 `json:"precio"`
}

// PriceList is one loaded spreadsheet. Rows preserve file order.
type PriceList struct {
	Name string         `json:"name"`
	Rows []PriceListRow `json:"rows"`
}

// Len returns the number of rows in the list.
func (l PriceList) Len() int { return len(l.Rows) }

// Presence states where a key was found.
type Presence string

const (
	PresenceBoth  Presence = "BothLists"
	PresenceOnlyA Presence = "OnlyA"
	PresenceOnlyB Presence = "OnlyB"
)

// ComparisonRow joins one key's data from both lists. Pointer fields are nil
// when the value is undefined for the row's presence: PriceB/Delta for OnlyA,
// PriceA/Delta for OnlyB, and DeltaPercent additionally when PriceA is zero
// while PriceB is not (flagged rather than divided).
type ComparisonRow struct {
	Key          string   `json:"clave"`
	Description  string   `json:"descripcion"`
	PriceA       *float64 `json:"precio_a,omitempty"`
	PriceB       *float64 `json:"precio_b,omitempty"`
	Delta        *float64 `json:"diferencia,omitempty"`
	DeltaPercent *float64 `json:"diferencia_pct,omitempty"`
	Similarity   *float64 `json:"similitud,omitempty"`
	Presence     Presence `json:"estado"`
}

// Summary carries the aggregate metrics shown as KPI cards and written to the
// Resumen sheet of the exported report.
type Summary struct {
	TotalA             int     `json:"total_a"`
	TotalB             int     `json:"total_b"`
	Matched            int     `json:"coincidencias"`
	OnlyA              int     `json:"solo_a"`
	OnlyB              int     `json:"solo_b"`
	AvgDeltaPercent    float64 `json:"diferencia_pct_promedio"`
	MedianDeltaPercent float64 `json:"diferencia_pct_mediana"`
	MaxAbsDelta        float64 `json:"diferencia_abs_max"`
}

// ComparisonResult is the full output of one Compare call.
type ComparisonResult struct {
	Rows    []ComparisonRow `json:"rows"`
	Summary Summary         `json:"summary"`
}

// MatchedRows returns the rows present in both lists, in output order.
func (r ComparisonResult) MatchedRows() []ComparisonRow {
	return r.filter(PresenceBoth)
}

// OnlyARows returns the rows present only in list A.
func (r ComparisonResult) OnlyARows() []ComparisonRow {
	return r.filter(PresenceOnlyA)
}

// OnlyBRows returns the rows present only in list B.
func (r ComparisonResult) OnlyBRows() []ComparisonRow {
	return r.filter(PresenceOnlyB)
}

func (r ComparisonResult) filter(p Presence) []ComparisonRow {
	out := make([]ComparisonRow, 0, len(r.Rows))
	for _, row := range r.Rows {
		if row.Presence == p {
			out = append(out, row)
		}
	}
	return out
}
