package storage

import (
	"time"

	"github.com/shopspring/decimal"

	"volwatch/internal/volatility"
)

// PriceRow is one persisted daily close of a volatility index.
type PriceRow struct {
	Date   time.Time
	Symbol string
	Close  decimal.Decimal
}

// Observation converts a row into the domain representation. Dates
// travel as zero-padded ISO strings from here on.
func (r PriceRow) Observation() volatility.Observation {
	return volatility.Observation{
		Date:   r.Date.Format(volatility.DateLayout),
		Symbol: volatility.Symbol(r.Symbol),
		Close:  r.Close,
	}
}

// SubscriptionRow is one persisted alert subscription. The schema
// keeps a user_id column as a placeholder; it is always NULL and the
// email is the effective partition key.
type SubscriptionRow struct {
	Email      string
	SymbolCode string
	Direction  string
	Threshold  decimal.Decimal
	Severity   string
	Enabled    bool
	CreatedAt  time.Time
}

// NewSubscriptionRow maps a domain subscription onto its row.
func NewSubscriptionRow(sub volatility.Subscription) SubscriptionRow {
	return SubscriptionRow{
		Email:      sub.Email,
		SymbolCode: string(sub.Symbol),
		Direction:  string(sub.Direction),
		Threshold:  sub.Threshold,
		Severity:   string(sub.Severity),
		Enabled:    sub.Enabled,
	}
}

// Subscription converts a row back into the domain representation.
func (r SubscriptionRow) Subscription() volatility.Subscription {
	return volatility.Subscription{
		Email:     r.Email,
		Symbol:    volatility.Symbol(r.SymbolCode),
		Direction: volatility.Direction(r.Direction),
		Threshold: r.Threshold,
		Severity:  volatility.Severity(r.Severity),
		Enabled:   r.Enabled,
	}
}

// FeedbackRow is one persisted feedback entry. Optional fields are
// stored as NULL when empty.
type FeedbackRow struct {
	Category  string
	Message   string
	Contact   *string
	UserAgent *string
	PagePath  *string
	CreatedAt time.Time
}

// NewFeedbackRow maps a domain feedback entry onto its row.
func NewFeedbackRow(entry volatility.FeedbackEntry) FeedbackRow {
	return FeedbackRow{
		Category:  string(entry.Category),
		Message:   entry.Message,
		Contact:   nullable(entry.Contact),
		UserAgent: nullable(entry.UserAgent),
		PagePath:  nullable(entry.PagePath),
	}
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
