package volatility

import "fmt"

// Symbol identifies a tracked volatility index.
type Symbol string

const (
	SymbolVIX      Symbol = "VIX"
	SymbolNikkeiVI Symbol = "NIKKEI_VI"
)

// Symbols returns all tracked symbols in display order.
func Symbols() []Symbol {
	return []Symbol{SymbolVIX, SymbolNikkeiVI}
}

// ParseSymbol validates a raw symbol string.
func ParseSymbol(raw string) (Symbol, error) {
	switch Symbol(raw) {
	case SymbolVIX:
		return SymbolVIX, nil
	case SymbolNikkeiVI:
		return SymbolNikkeiVI, nil
	}
	return "", fmt.Errorf("unknown symbol %q", raw)
}

// Direction is the comparison operator of a threshold rule.
type Direction string

const (
	DirectionAtLeast Direction = ">="
	DirectionAtMost  Direction = "<="
)

// Severity grades how alarming a triggered rule is.
type Severity string

const (
	SeverityNotice  Severity = "notice"
	SeverityWarning Severity = "warning"
)
