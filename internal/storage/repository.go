package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

var (
	// ErrNotConfigured indicates the storage pool was not initialised.
	ErrNotConfigured = errors.New("storage: pool not configured")
)

const (
	latestPriceDateSQL = `SELECT MAX(date)
    FROM volatility_prices
    WHERE symbol = ANY($1);`

	listPricesBetweenSQL = `SELECT
        date,
        symbol,
        close
    FROM volatility_prices
    WHERE symbol = ANY($1)
      AND date >= $2
      AND date <= $3
    ORDER BY date
    LIMIT $4;`

	listRecentPricesSQL = `SELECT
        date,
        symbol,
        close
    FROM volatility_prices
    WHERE symbol = ANY($1)
    ORDER BY date DESC
    LIMIT $2;`

	deleteSubscriptionsSQL = `DELETE FROM alert_rules WHERE email = $1;`

	insertSubscriptionSQL = `INSERT INTO alert_rules (
        user_id,
        email,
        symbol_code,
        direction,
        threshold,
        severity,
        enabled
    ) VALUES (
        NULL,$1,$2,$3,$4,$5,$6
    );`

	listSubscriptionsSQL = `SELECT
        email,
        symbol_code,
        direction,
        threshold,
        severity,
        enabled,
        created_at
    FROM alert_rules
    WHERE email = $1
    ORDER BY id;`

	insertFeedbackSQL = `INSERT INTO vol_feedback (
        category,
        message,
        contact,
        user_agent,
        page_path
    ) VALUES (
        $1,$2,$3,$4,$5
    );`
)

// PriceStore defines read access to the volatility price history.
type PriceStore interface {
	LatestPriceDate(ctx context.Context, symbols []string) (time.Time, bool, error)
	ListPricesBetween(ctx context.Context, symbols []string, from, to time.Time, limit int) ([]PriceRow, error)
}

// SubscriptionStore defines operations for alert subscription persistence.
// Saves have replace semantics: ClearSubscriptions then InsertSubscriptions.
// The two steps are exposed separately; ReplaceSubscriptions wraps them in
// one transaction for callers that want atomicity.
type SubscriptionStore interface {
	ClearSubscriptions(ctx context.Context, email string) error
	InsertSubscriptions(ctx context.Context, rows []SubscriptionRow) error
	ReplaceSubscriptions(ctx context.Context, email string, rows []SubscriptionRow) error
	ListSubscriptions(ctx context.Context, email string) ([]SubscriptionRow, error)
}

// FeedbackStore defines write-only access to feedback entries.
type FeedbackStore interface {
	InsertFeedback(ctx context.Context, row FeedbackRow) error
}

// Store aggregates access to prices, subscriptions, and feedback.
type Store struct {
	pool *pgxpool.Pool
}

var (
	_ PriceStore        = (*Store)(nil)
	_ SubscriptionStore = (*Store)(nil)
	_ FeedbackStore     = (*Store)(nil)
)

// NewStore wires a pgx pool into a Store.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Close releases the underlying pool resources.
func (s *Store) Close() {
	if s == nil || s.pool == nil {
		return
	}
	s.pool.Close()
}

func (s *Store) getPool() (*pgxpool.Pool, error) {
	if s == nil || s.pool == nil {
		return nil, ErrNotConfigured
	}
	return s.pool, nil
}

// LatestPriceDate returns the most recent date with any price row for
// the given symbols. The bool is false when the table is empty.
func (s *Store) LatestPriceDate(ctx context.Context, symbols []string) (time.Time, bool, error) {
	pool, err := s.getPool()
	if err != nil {
		return time.Time{}, false, err
	}

	var latest sql.NullTime
	if scanErr := pool.QueryRow(ctx, latestPriceDateSQL, symbols).Scan(&latest); scanErr != nil {
		return time.Time{}, false, fmt.Errorf("latest price date: %w", scanErr)
	}
	if !latest.Valid {
		return time.Time{}, false, nil
	}
	return latest.Time, true, nil
}

// ListPricesBetween lists price rows within an inclusive date window,
// ascending by date, capped at limit rows.
func (s *Store) ListPricesBetween(ctx context.Context, symbols []string, from, to time.Time, limit int) ([]PriceRow, error) {
	pool, err := s.getPool()
	if err != nil {
		return nil, err
	}

	rows, queryErr := pool.Query(ctx, listPricesBetweenSQL, symbols, from, to, limit)
	if queryErr != nil {
		return nil, fmt.Errorf("list prices between: %w", queryErr)
	}
	defer rows.Close()

	prices := make([]PriceRow, 0)
	for rows.Next() {
		price, scanErr := scanPriceRow(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		prices = append(prices, price)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return prices, nil
}

// ListRecentPrices lists the most recent price rows ordered by
// descending date. Used by the CLI; the API reads windowed.
func (s *Store) ListRecentPrices(ctx context.Context, symbols []string, limit int) ([]PriceRow, error) {
	pool, err := s.getPool()
	if err != nil {
		return nil, err
	}

	rows, queryErr := pool.Query(ctx, listRecentPricesSQL, symbols, limit)
	if queryErr != nil {
		return nil, fmt.Errorf("list recent prices: %w", queryErr)
	}
	defer rows.Close()

	prices := make([]PriceRow, 0, limit)
	for rows.Next() {
		price, scanErr := scanPriceRow(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		prices = append(prices, price)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return prices, nil
}

// ClearSubscriptions deletes every subscription row for the email.
func (s *Store) ClearSubscriptions(ctx context.Context, email string) error {
	pool, err := s.getPool()
	if err != nil {
		return err
	}
	if _, execErr := pool.Exec(ctx, deleteSubscriptionsSQL, email); execErr != nil {
		return fmt.Errorf("clear subscriptions: %w", execErr)
	}
	return nil
}

// InsertSubscriptions inserts the write-set produced for one save.
func (s *Store) InsertSubscriptions(ctx context.Context, rows []SubscriptionRow) error {
	pool, err := s.getPool()
	if err != nil {
		return err
	}
	return insertSubscriptions(ctx, pool, rows)
}

// ReplaceSubscriptions runs the delete-then-insert save inside one
// transaction, so a failed insert cannot leave the email with zero
// rows. An empty write-set is the unsubscribe-all path: the delete
// still runs and nothing is reinserted.
func (s *Store) ReplaceSubscriptions(ctx context.Context, email string, rows []SubscriptionRow) error {
	pool, err := s.getPool()
	if err != nil {
		return err
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin replace subscriptions: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, execErr := tx.Exec(ctx, deleteSubscriptionsSQL, email); execErr != nil {
		return fmt.Errorf("clear subscriptions: %w", execErr)
	}
	if err := insertSubscriptions(ctx, tx, rows); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit replace subscriptions: %w", err)
	}
	return nil
}

// ListSubscriptions lists the persisted subscriptions for an email in
// insertion order.
func (s *Store) ListSubscriptions(ctx context.Context, email string) ([]SubscriptionRow, error) {
	pool, err := s.getPool()
	if err != nil {
		return nil, err
	}

	rows, queryErr := pool.Query(ctx, listSubscriptionsSQL, email)
	if queryErr != nil {
		return nil, fmt.Errorf("list subscriptions: %w", queryErr)
	}
	defer rows.Close()

	subs := make([]SubscriptionRow, 0)
	for rows.Next() {
		var (
			rec          SubscriptionRow
			thresholdStr string
		)
		if err := rows.Scan(
			&rec.Email,
			&rec.SymbolCode,
			&rec.Direction,
			&thresholdStr,
			&rec.Severity,
			&rec.Enabled,
			&rec.CreatedAt,
		); err != nil {
			return nil, err
		}

		var convErr error
		rec.Threshold, convErr = decimal.NewFromString(thresholdStr)
		if convErr != nil {
			return nil, fmt.Errorf("parse threshold: %w", convErr)
		}

		subs = append(subs, rec)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return subs, nil
}

// InsertFeedback persists one feedback entry.
func (s *Store) InsertFeedback(ctx context.Context, row FeedbackRow) error {
	pool, err := s.getPool()
	if err != nil {
		return err
	}

	var contact, userAgent, pagePath interface{}
	if row.Contact != nil {
		contact = *row.Contact
	}
	if row.UserAgent != nil {
		userAgent = *row.UserAgent
	}
	if row.PagePath != nil {
		pagePath = *row.PagePath
	}

	if _, execErr := pool.Exec(ctx, insertFeedbackSQL,
		row.Category,
		row.Message,
		contact,
		userAgent,
		pagePath,
	); execErr != nil {
		return fmt.Errorf("insert feedback: %w", execErr)
	}
	return nil
}

// execer covers both pool and transaction execution.
type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func insertSubscriptions(ctx context.Context, db execer, rows []SubscriptionRow) error {
	for _, row := range rows {
		threshold := row.Threshold.String()
		if _, execErr := db.Exec(ctx, insertSubscriptionSQL,
			row.Email,
			row.SymbolCode,
			row.Direction,
			threshold,
			row.Severity,
			row.Enabled,
		); execErr != nil {
			return fmt.Errorf("insert subscription: %w", execErr)
		}
	}
	return nil
}

func scanPriceRow(rows pgx.Rows) (PriceRow, error) {
	var (
		date     time.Time
		symbol   string
		closeStr string
	)

	if err := rows.Scan(&date, &symbol, &closeStr); err != nil {
		return PriceRow{}, err
	}

	closeVal, err := decimal.NewFromString(closeStr)
	if err != nil {
		return PriceRow{}, fmt.Errorf("parse close: %w", err)
	}

	return PriceRow{Date: date, Symbol: symbol, Close: closeVal}, nil
}
