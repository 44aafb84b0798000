package app

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"volwatch/internal/volatility"
)

// Show prints the latest value per symbol and a table of recent closes.
func (a *App) Show(ctx context.Context, opts ShowOptions) error {
	store, closeStore, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	symbols := make([]string, 0, 2)
	for _, s := range volatility.Symbols() {
		symbols = append(symbols, string(s))
	}

	// Roughly one row per symbol per trading day.
	prices, err := store.ListRecentPrices(ctx, symbols, opts.Limit*len(symbols))
	if err != nil {
		return err
	}
	if len(prices) == 0 {
		fmt.Fprintln(os.Stdout, "no price data found")
		return nil
	}

	observations := make([]volatility.Observation, 0, len(prices))
	for _, row := range prices {
		observations = append(observations, row.Observation())
	}

	for symbol, obs := range volatility.LatestPerSymbol(observations) {
		fmt.Fprintf(os.Stdout, "%s: %s (as of %s)\n", symbol, obs.Close.StringFixed(2), obs.Date)
	}
	fmt.Fprintln(os.Stdout)

	rows := volatility.ToChartRows(observations)
	if len(rows) > opts.Limit {
		rows = rows[len(rows)-opts.Limit:]
	}

	writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "Date\tVIX\tNIKKEI_VI")
	for _, row := range rows {
		fmt.Fprintf(writer, "%s\t%s\t%s\n", row.Date, formatClose(row.VIX), formatClose(row.NikkeiVI))
	}
	return writer.Flush()
}

func formatClose(value *decimal.Decimal) string {
	if value == nil {
		return "-"
	}
	return value.StringFixed(2)
}
