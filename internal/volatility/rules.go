package volatility

import "github.com/shopspring/decimal"

// RuleID identifies one of the shipped alert rules.
type RuleID string

const (
	RuleVIX25    RuleID = "VIX_25"
	RuleVIX40    RuleID = "VIX_40"
	RuleNikkei30 RuleID = "NIKKEI_30"
	RuleNikkei45 RuleID = "NIKKEI_45"
)

// RuleDefinition is one threshold rule a user can subscribe to.
type RuleDefinition struct {
	ID          RuleID
	Symbol      Symbol
	Direction   Direction
	Threshold   decimal.Decimal
	Severity    Severity
	Title       string
	Description string
}

// ruleCatalog is the fixed set of rules offered to users. Order matters:
// it is the display order and the order of persisted write-sets.
var ruleCatalog = []RuleDefinition{
	{
		ID:          RuleVIX25,
		Symbol:      SymbolVIX,
		Direction:   DirectionAtLeast,
		Threshold:   decimal.NewFromInt(25),
		Severity:    SeverityNotice,
		Title:       "VIX at or above 25 (notice)",
		Description: "Above 25 the VIX signals elevated volatility; markets are getting restless and risk exposure deserves a look.",
	},
	{
		ID:          RuleVIX40,
		Symbol:      SymbolVIX,
		Direction:   DirectionAtLeast,
		Threshold:   decimal.NewFromInt(40),
		Severity:    SeverityWarning,
		Title:       "VIX at or above 40 (warning)",
		Description: "Readings above 40 are crisis-mode territory, seen around events like 2008 and the 2020 crash. Expect violent swings and panic flows.",
	},
	{
		ID:          RuleNikkei30,
		Symbol:      SymbolNikkeiVI,
		Direction:   DirectionAtLeast,
		Threshold:   decimal.NewFromInt(30),
		Severity:    SeverityNotice,
		Title:       "Nikkei VI at or above 30 (notice)",
		Description: "Above 30 the Nikkei VI shows clearly rising volatility in Japanese equities, often driven by domestic news or events.",
	},
	{
		ID:          RuleNikkei45,
		Symbol:      SymbolNikkeiVI,
		Direction:   DirectionAtLeast,
		Threshold:   decimal.NewFromInt(45),
		Severity:    SeverityWarning,
		Title:       "Nikkei VI at or above 45 (warning)",
		Description: "Above 45 the Japanese market is in a full storm. Sharp drops and rebounds are likely, as are margin calls and forced liquidations.",
	},
}

// Rules returns the shipped rule catalog in fixed order. The returned
// slice is a copy; callers may not mutate the catalog.
func Rules() []RuleDefinition {
	out := make([]RuleDefinition, len(ruleCatalog))
	copy(out, ruleCatalog)
	return out
}

// RuleByID looks up a single rule definition.
func RuleByID(id RuleID) (RuleDefinition, error) {
	for _, rule := range ruleCatalog {
		if rule.ID == id {
			return rule, nil
		}
	}
	return RuleDefinition{}, ErrRuleNotFound
}
