package volatility

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Subscription links an email address to one enabled rule. Rule fields
// are copied at save time so the persisted row stands alone even if
// the catalog text changes later.
type Subscription struct {
	Email     string
	Symbol    Symbol
	Direction Direction
	Threshold decimal.Decimal
	Severity  Severity
	Enabled   bool
}

// ComputeWriteSet builds the rows to persist for a save. Saving has
// replace semantics: the caller deletes every existing row for the
// email, then inserts exactly this set. An empty enabled map yields an
// empty set and no error; that is the unsubscribe-all path, and the
// delete must still run.
//
// Output order follows catalog order, not map iteration order.
func ComputeWriteSet(email string, enabled map[RuleID]bool) ([]Subscription, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, &ValidationError{Field: "email", Reason: "must not be empty"}
	}

	subs := make([]Subscription, 0, len(enabled))
	for _, rule := range ruleCatalog {
		if !enabled[rule.ID] {
			continue
		}
		subs = append(subs, Subscription{
			Email:     email,
			Symbol:    rule.Symbol,
			Direction: rule.Direction,
			Threshold: rule.Threshold,
			Severity:  rule.Severity,
			Enabled:   true,
		})
	}
	return subs, nil
}
