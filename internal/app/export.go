package app

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"

	"volwatch/internal/volatility"
)

// Export renders historical index values as CSV and/or PNG.
func (a *App) Export(ctx context.Context, opts ExportOptions) error {
	if opts.CSVPath == "" && opts.PNGPath == "" {
		return errors.New("at least one of --csv or --png must be provided")
	}

	opts.MaxPoints = a.Config.ResolveMaxPoints(opts.MaxPoints)

	store, closeStore, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	symbols := make([]string, 0, 2)
	for _, s := range volatility.Symbols() {
		symbols = append(symbols, string(s))
	}

	to := opts.To
	if to == "" {
		latest, ok, err := store.LatestPriceDate(ctx, symbols)
		if err != nil {
			return err
		}
		if !ok {
			a.Logger.Info().Msg("no price data found, nothing to export")
			return nil
		}
		to = latest.Format(volatility.DateLayout)
	}

	from := opts.From
	if from == "" {
		timeRange, err := volatility.ParseTimeRange(opts.Range)
		if err != nil {
			return err
		}
		from, err = timeRange.ResolveFromDate(to)
		if err != nil {
			return err
		}
	}

	fromTime, err := time.Parse(volatility.DateLayout, from)
	if err != nil {
		return fmt.Errorf("invalid --from value: %w", err)
	}
	toTime, err := time.Parse(volatility.DateLayout, to)
	if err != nil {
		return fmt.Errorf("invalid --to value: %w", err)
	}
	if fromTime.After(toTime) {
		return errors.New("from must not be after to")
	}

	prices, err := store.ListPricesBetween(ctx, symbols, fromTime, toTime, a.Config.Chart.MaxRows)
	if err != nil {
		return err
	}
	if len(prices) == 0 {
		a.Logger.Info().Str("from", from).Str("to", to).Msg("no prices found for export window")
		return nil
	}

	observations := make([]volatility.Observation, 0, len(prices))
	for _, row := range prices {
		observations = append(observations, row.Observation())
	}

	rows := volatility.ToChartRows(observations)
	downsampled := downsampleRows(rows, opts.MaxPoints)
	a.Logger.Info().Int("total", len(rows)).Int("exported", len(downsampled)).Msg("exporting prices")

	if opts.CSVPath != "" {
		if err := writeRowsCSV(opts.CSVPath, downsampled); err != nil {
			return err
		}
	}

	if opts.PNGPath != "" {
		if err := writeRowsPNG(opts.PNGPath, downsampled); err != nil {
			return err
		}
	}

	return nil
}

func downsampleRows(rows []volatility.ChartRow, max int) []volatility.ChartRow {
	if max <= 0 || len(rows) <= max {
		return rows
	}

	result := make([]volatility.ChartRow, 0, max)
	step := float64(len(rows)-1) / float64(max-1)
	for i := 0; i < max; i++ {
		idx := int(math.Round(step * float64(i)))
		if idx >= len(rows) {
			idx = len(rows) - 1
		}
		result = append(result, rows[idx])
	}
	return result
}

func writeRowsCSV(path string, rows []volatility.ChartRow) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"date", "VIX", "NIKKEI_VI"}); err != nil {
		return err
	}

	for _, row := range rows {
		record := []string{row.Date, "", ""}
		if row.VIX != nil {
			record[1] = row.VIX.String()
		}
		if row.NikkeiVI != nil {
			record[2] = row.NikkeiVI.String()
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	return writer.Error()
}

func writeRowsPNG(path string, rows []volatility.ChartRow) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	// Each symbol gets its own x axis values: dates with no data for a
	// symbol contribute no point instead of a zero.
	var (
		vixX, nikkeiX []time.Time
		vixY, nikkeiY []float64
	)
	for _, row := range rows {
		date, err := time.Parse(volatility.DateLayout, row.Date)
		if err != nil {
			return fmt.Errorf("parse chart row date: %w", err)
		}
		if row.VIX != nil {
			vixX = append(vixX, date)
			vixY = append(vixY, row.VIX.InexactFloat64())
		}
		if row.NikkeiVI != nil {
			nikkeiX = append(nikkeiX, date)
			nikkeiY = append(nikkeiY, row.NikkeiVI.InexactFloat64())
		}
	}

	valueFormatter := func(v interface{}) string {
		return chart.FloatValueFormatterWithFormat(v, "%.1f")
	}
	graph := chart.Chart{
		Width:  1280,
		Height: 720,
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeDateValueFormatter,
		},
		YAxis: chart.YAxis{
			Name:           "Index level",
			ValueFormatter: valueFormatter,
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "VIX",
				XValues: vixX,
				YValues: vixY,
			},
			chart.TimeSeries{
				Name:    "NIKKEI_VI",
				XValues: nikkeiX,
				YValues: nikkeiY,
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return graph.Render(chart.PNG, file)
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
