package volatility

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestRulesFixedCatalog(t *testing.T) {
	rules := Rules()
	if len(rules) != 4 {
		t.Fatalf("expected 4 rules, got %d", len(rules))
	}

	wantOrder := []RuleID{RuleVIX25, RuleVIX40, RuleNikkei30, RuleNikkei45}
	for i, id := range wantOrder {
		if rules[i].ID != id {
			t.Fatalf("rule %d: expected %s, got %s", i, id, rules[i].ID)
		}
	}

	seen := make(map[RuleID]bool)
	for _, rule := range rules {
		if seen[rule.ID] {
			t.Fatalf("duplicate rule id %s", rule.ID)
		}
		seen[rule.ID] = true

		got, err := RuleByID(rule.ID)
		if err != nil {
			t.Fatalf("RuleByID(%s): %v", rule.ID, err)
		}
		if got.ID != rule.ID {
			t.Fatalf("RuleByID(%s) returned id %s", rule.ID, got.ID)
		}
	}
}

func TestRuleThresholds(t *testing.T) {
	cases := []struct {
		id        RuleID
		symbol    Symbol
		threshold int64
		severity  Severity
	}{
		{RuleVIX25, SymbolVIX, 25, SeverityNotice},
		{RuleVIX40, SymbolVIX, 40, SeverityWarning},
		{RuleNikkei30, SymbolNikkeiVI, 30, SeverityNotice},
		{RuleNikkei45, SymbolNikkeiVI, 45, SeverityWarning},
	}

	for _, tc := range cases {
		rule, err := RuleByID(tc.id)
		if err != nil {
			t.Fatalf("RuleByID(%s): %v", tc.id, err)
		}
		if rule.Symbol != tc.symbol {
			t.Fatalf("%s: expected symbol %s, got %s", tc.id, tc.symbol, rule.Symbol)
		}
		if rule.Direction != DirectionAtLeast {
			t.Fatalf("%s: expected direction >=, got %s", tc.id, rule.Direction)
		}
		if !rule.Threshold.Equal(decimal.NewFromInt(tc.threshold)) {
			t.Fatalf("%s: expected threshold %d, got %s", tc.id, tc.threshold, rule.Threshold)
		}
		if rule.Severity != tc.severity {
			t.Fatalf("%s: expected severity %s, got %s", tc.id, tc.severity, rule.Severity)
		}
	}
}

func TestRuleByIDUnknown(t *testing.T) {
	if _, err := RuleByID("VIX_99"); !errors.Is(err, ErrRuleNotFound) {
		t.Fatalf("expected ErrRuleNotFound, got %v", err)
	}
}

func TestRulesReturnsCopy(t *testing.T) {
	rules := Rules()
	rules[0].Title = "mutated"
	if Rules()[0].Title == "mutated" {
		t.Fatal("catalog must not be mutable through Rules()")
	}
}
