package volatility

import (
	"testing"

	"github.com/shopspring/decimal"
)

func obs(date string, symbol Symbol, close int64) Observation {
	return Observation{Date: date, Symbol: symbol, Close: decimal.NewFromInt(close)}
}

func TestLatestPerSymbol(t *testing.T) {
	input := []Observation{
		obs("2024-01-01", SymbolVIX, 20),
		obs("2024-01-02", SymbolVIX, 22),
		obs("2024-01-01", SymbolNikkeiVI, 18),
	}

	latest := LatestPerSymbol(input)
	if len(latest) != 2 {
		t.Fatalf("expected 2 symbols, got %d", len(latest))
	}

	vix := latest[SymbolVIX]
	if vix.Date != "2024-01-02" || !vix.Close.Equal(decimal.NewFromInt(22)) {
		t.Fatalf("unexpected VIX latest: %+v", vix)
	}

	nikkei := latest[SymbolNikkeiVI]
	if nikkei.Date != "2024-01-01" || !nikkei.Close.Equal(decimal.NewFromInt(18)) {
		t.Fatalf("unexpected NIKKEI_VI latest: %+v", nikkei)
	}
}

func TestLatestPerSymbolTieLastWins(t *testing.T) {
	input := []Observation{
		obs("2024-01-01", SymbolVIX, 20),
		obs("2024-01-01", SymbolVIX, 21),
	}

	latest := LatestPerSymbol(input)
	if !latest[SymbolVIX].Close.Equal(decimal.NewFromInt(21)) {
		t.Fatalf("expected last observation to win on a date tie, got %s", latest[SymbolVIX].Close)
	}
}

func TestLatestPerSymbolEmpty(t *testing.T) {
	if got := LatestPerSymbol(nil); len(got) != 0 {
		t.Fatalf("expected empty map, got %v", got)
	}
}

func TestToChartRows(t *testing.T) {
	input := []Observation{
		obs("2024-01-01", SymbolVIX, 20),
		obs("2024-01-02", SymbolVIX, 22),
		obs("2024-01-01", SymbolNikkeiVI, 18),
	}

	rows := ToChartRows(input)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	first := rows[0]
	if first.Date != "2024-01-01" {
		t.Fatalf("expected first row 2024-01-01, got %s", first.Date)
	}
	if first.VIX == nil || !first.VIX.Equal(decimal.NewFromInt(20)) {
		t.Fatalf("unexpected VIX on first row: %v", first.VIX)
	}
	if first.NikkeiVI == nil || !first.NikkeiVI.Equal(decimal.NewFromInt(18)) {
		t.Fatalf("unexpected NIKKEI_VI on first row: %v", first.NikkeiVI)
	}

	second := rows[1]
	if second.Date != "2024-01-02" {
		t.Fatalf("expected second row 2024-01-02, got %s", second.Date)
	}
	if second.VIX == nil || !second.VIX.Equal(decimal.NewFromInt(22)) {
		t.Fatalf("unexpected VIX on second row: %v", second.VIX)
	}
	if second.NikkeiVI != nil {
		t.Fatalf("second row must not carry NIKKEI_VI data, got %s", second.NikkeiVI)
	}
}

func TestToChartRowsSortsUnorderedInput(t *testing.T) {
	input := []Observation{
		obs("2024-01-03", SymbolVIX, 23),
		obs("2024-01-01", SymbolVIX, 20),
		obs("2024-01-02", SymbolVIX, 22),
	}

	rows := ToChartRows(input)
	want := []string{"2024-01-01", "2024-01-02", "2024-01-03"}
	for i, date := range want {
		if rows[i].Date != date {
			t.Fatalf("row %d: expected %s, got %s", i, date, rows[i].Date)
		}
	}
}

func TestToChartRowsDuplicateLastWins(t *testing.T) {
	input := []Observation{
		obs("2024-01-01", SymbolVIX, 20),
		obs("2024-01-01", SymbolVIX, 25),
	}

	rows := ToChartRows(input)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if !rows[0].VIX.Equal(decimal.NewFromInt(25)) {
		t.Fatalf("expected last duplicate to win, got %s", rows[0].VIX)
	}
}
