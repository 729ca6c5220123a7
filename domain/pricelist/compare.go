package pricelist

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"

	"pricelens/internal/errors"
)

// Compare aligns two price lists by Clave and produces one ComparisonRow per
// key appearing in either list. It is a pure function: inputs are never
// mutated, and the same inputs always produce the same output.
//
// Policies (deterministic, see DESIGN.md):
//   - Duplicate keys within one list: the last occurrence wins.
//   - Row order: first-seen order of listA, then keys unique to listB in
//     their first-seen order.
//   - DeltaPercent is nil when PriceA is zero and PriceB is not; zero when
//     both prices are zero.
//   - One-sided empty input is allowed and yields all-OnlyA or all-OnlyB
//     rows. Both lists empty is an EMPTY_INPUT error.
func Compare(listA, listB PriceList) (ComparisonResult, error) {
	if len(listA.Rows) == 0 && len(listB.Rows) == 0 {
		return ComparisonResult{}, errors.EmptyInput("both price lists are empty, nothing to compare")
	}
	if err := validateRows(listA); err != nil {
		return ComparisonResult{}, err
	}
	if err := validateRows(listB); err != nil {
		return ComparisonResult{}, err
	}

	indexA, orderA := indexByKey(listA)
	indexB, orderB := indexByKey(listB)

	keys := make([]string, 0, len(orderA)+len(orderB))
	keys = append(keys, orderA...)
	for _, k := range orderB {
		if _, inA := indexA[k]; !inA {
			keys = append(keys, k)
		}
	}

	rows := make([]ComparisonRow, 0, len(keys))
	for _, key := range keys {
		rowA, inA := indexA[key]
		rowB, inB := indexB[key]

		switch {
		case inA && inB:
			rows = append(rows, matchedRow(rowA, rowB))
		case inA:
			price := rowA.Price
			rows = append(rows, ComparisonRow{
				Key:         rowA.Key,
				Description: rowA.Description,
				PriceA:      &price,
				Presence:    PresenceOnlyA,
			})
		default:
			price := rowB.Price
			rows = append(rows, ComparisonRow{
				Key:         rowB.Key,
				Description: rowB.Description,
				PriceB:      &price,
				Presence:    PresenceOnlyB,
			})
		}
	}

	return ComparisonResult{
		Rows:    rows,
		Summary: summarize(len(indexA), len(indexB), rows),
	}, nil
}

func matchedRow(rowA, rowB PriceListRow) ComparisonRow {
	priceA := rowA.Price
	priceB := rowB.Price
	delta := round2(priceB - priceA)
	similarity := DescriptionSimilarity(rowA.Description, rowB.Description)

	row := ComparisonRow{
		Key:         rowA.Key,
		Description: rowA.Description,
		PriceA:      &priceA,
		PriceB:      &priceB,
		Delta:       &delta,
		Similarity:  &similarity,
		Presence:    PresenceBoth,
	}

	// Percentage is undefined against a zero base price unless the delta is
	// zero too.
	if priceA != 0 {
		pct := round2(delta / priceA * 100)
		row.DeltaPercent = &pct
	} else if priceB == 0 {
		zero := 0.0
		row.DeltaPercent = &zero
	}
	return row
}

func validateRows(list PriceList) error {
	for i, row := range list.Rows {
		if row.Key == "" {
			return errors.InvalidRow(fmt.Sprintf("list %q row %d has an empty Clave", list.Name, i+1))
		}
		if row.Price < 0 || math.IsNaN(row.Price) || math.IsInf(row.Price, 0) {
			return errors.InvalidRow(fmt.Sprintf("list %q row %d (Clave %s) has an invalid Precio %v", list.Name, i+1, row.Key, row.Price))
		}
	}
	return nil
}

// indexByKey maps key -> row with last occurrence winning, and returns keys in
// first-seen order.
func indexByKey(list PriceList) (map[string]PriceListRow, []string) {
	index := make(map[string]PriceListRow, len(list.Rows))
	order := make([]string, 0, len(list.Rows))
	for _, row := range list.Rows {
		if _, seen := index[row.Key]; !seen {
			order = append(order, row.Key)
		}
		index[row.Key] = row
	}
	return index, order
}

func summarize(totalA, totalB int, rows []ComparisonRow) Summary {
	summary := Summary{TotalA: totalA, TotalB: totalB}

	deltaPercents := make([]float64, 0, len(rows))
	for _, row := range rows {
		switch row.Presence {
		case PresenceBoth:
			summary.Matched++
		case PresenceOnlyA:
			summary.OnlyA++
		case PresenceOnlyB:
			summary.OnlyB++
		}
		if row.Delta != nil {
			if abs := math.Abs(*row.Delta); abs > summary.MaxAbsDelta {
				summary.MaxAbsDelta = abs
			}
		}
		if row.DeltaPercent != nil {
			deltaPercents = append(deltaPercents, *row.DeltaPercent)
		}
	}

	if len(deltaPercents) > 0 {
		if mean, err := stats.Mean(deltaPercents); err == nil {
			summary.AvgDeltaPercent = round2(mean)
		}
		if median, err := stats.Median(deltaPercents); err == nil {
			summary.MedianDeltaPercent = round2(median)
		}
	}
	return summary
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
