package volatility

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Observation is one (date, symbol, close) row from the price history.
type Observation struct {
	Date   string
	Symbol Symbol
	Close  decimal.Decimal
}

// ChartRow is one date on the chart with the value of each symbol, if
// the symbol traded that day. A nil field means no data for that date,
// not zero; renderers must leave a gap instead of interpolating unless
// explicitly configured to bridge nulls.
type ChartRow struct {
	Date     string           `json:"date"`
	VIX      *decimal.Decimal `json:"VIX,omitempty"`
	NikkeiVI *decimal.Decimal `json:"NIKKEI_VI,omitempty"`
}

// LatestPerSymbol returns, for each symbol present, the observation
// with the maximum date. Input order does not matter; on a date tie
// the last observation encountered wins.
func LatestPerSymbol(observations []Observation) map[Symbol]Observation {
	latest := make(map[Symbol]Observation)
	for _, obs := range observations {
		existing, ok := latest[obs.Symbol]
		if !ok || existing.Date <= obs.Date {
			latest[obs.Symbol] = obs
		}
	}
	return latest
}

// ToChartRows reshapes flat observations into one row per distinct
// date, ascending. For duplicate (date, symbol) pairs the last value
// encountered wins.
func ToChartRows(observations []Observation) []ChartRow {
	byDate := make(map[string]*ChartRow)
	for _, obs := range observations {
		row, ok := byDate[obs.Date]
		if !ok {
			row = &ChartRow{Date: obs.Date}
			byDate[obs.Date] = row
		}
		value := obs.Close
		switch obs.Symbol {
		case SymbolVIX:
			row.VIX = &value
		case SymbolNikkeiVI:
			row.NikkeiVI = &value
		}
	}

	rows := make([]ChartRow, 0, len(byDate))
	for _, row := range byDate {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Date < rows[j].Date
	})
	return rows
}
