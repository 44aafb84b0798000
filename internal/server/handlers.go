package server

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"volwatch/internal/storage"
	"volwatch/internal/volatility"
)

// Handler serves the dashboard API: chart data, the rule catalog,
// subscription saves, and feedback submissions.
type Handler struct {
	prices       storage.PriceStore
	subs         storage.SubscriptionStore
	feedback     storage.FeedbackStore
	validate     *validator.Validate
	logger       zerolog.Logger
	maxRows      int
	defaultRange volatility.TimeRange
}

// Options parameterise the handler.
type Options struct {
	Prices       storage.PriceStore
	Subs         storage.SubscriptionStore
	Feedback     storage.FeedbackStore
	MaxRows      int
	DefaultRange volatility.TimeRange
}

// NewHandler wires stores into the API handler.
func NewHandler(opts Options, logger zerolog.Logger) *Handler {
	maxRows := opts.MaxRows
	if maxRows <= 0 {
		maxRows = 5000
	}
	defaultRange := opts.DefaultRange
	if defaultRange == "" {
		defaultRange = volatility.Range1Y
	}

	return &Handler{
		prices:       opts.Prices,
		subs:         opts.Subs,
		feedback:     opts.Feedback,
		validate:     validator.New(),
		logger:       logger.With().Str("component", "api").Logger(),
		maxRows:      maxRows,
		defaultRange: defaultRange,
	}
}

// RegisterRoutes attaches all API routes.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/rules", h.ListRules)
	g.GET("/chart", h.Chart)
	g.GET("/subscriptions", h.GetSubscriptions)
	g.PUT("/subscriptions", h.SaveSubscriptions)
	g.POST("/feedback", h.SubmitFeedback)
}

type errorResponse struct {
	Error string `json:"error"`
}

// fail maps a handler error onto the wire. Validation problems carry
// their reason to the user; store failures are logged in full and
// surfaced as a generic retry message.
func (h *Handler) fail(c echo.Context, op string, err error) error {
	var ve *volatility.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: ve.Error()})
	case errors.Is(err, volatility.ErrRuleNotFound):
		return c.JSON(http.StatusNotFound, errorResponse{Error: "unknown rule id"})
	default:
		h.logger.Error().Err(err).Str("op", op).Msg("request failed")
		return c.JSON(http.StatusBadGateway, errorResponse{Error: "temporary problem reaching the data store, please try again"})
	}
}

func (h *Handler) bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return &volatility.ValidationError{Field: "body", Reason: "malformed request body"}
	}
	if err := h.validate.StructCtx(c.Request().Context(), req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return &volatility.ValidationError{
				Field:  strings.ToLower(verrs[0].Field()),
				Reason: "failed " + verrs[0].Tag() + " check",
			}
		}
		return &volatility.ValidationError{Field: "body", Reason: "invalid request"}
	}
	return nil
}

type ruleResponse struct {
	ID          volatility.RuleID    `json:"id"`
	Symbol      volatility.Symbol    `json:"symbol"`
	Direction   volatility.Direction `json:"direction"`
	Threshold   decimal.Decimal      `json:"threshold"`
	Severity    volatility.Severity  `json:"severity"`
	Title       string               `json:"title"`
	Description string               `json:"description"`
}

// ListRules returns the fixed alert rule catalog.
func (h *Handler) ListRules(c echo.Context) error {
	rules := volatility.Rules()
	out := make([]ruleResponse, 0, len(rules))
	for _, rule := range rules {
		out = append(out, ruleResponse{
			ID:          rule.ID,
			Symbol:      rule.Symbol,
			Direction:   rule.Direction,
			Threshold:   rule.Threshold,
			Severity:    rule.Severity,
			Title:       rule.Title,
			Description: rule.Description,
		})
	}
	return c.JSON(http.StatusOK, map[string]any{"rules": out})
}

type chartPoint struct {
	Date  string          `json:"date"`
	Close decimal.Decimal `json:"close"`
}

type chartResponse struct {
	Range  string                `json:"range"`
	From   string                `json:"from,omitempty"`
	To     string                `json:"to,omitempty"`
	Latest map[string]chartPoint `json:"latest"`
	Rows   []volatility.ChartRow `json:"rows"`
}

// Chart serves the windowed time series for both symbols. The latest
// known date anchors the window, so the two store reads are strictly
// sequential. The requested range is echoed back so a client juggling
// rapid range switches can drop responses for a stale selection.
func (h *Handler) Chart(c echo.Context) error {
	rawRange := c.QueryParam("range")
	timeRange := h.defaultRange
	if rawRange != "" {
		parsed, err := volatility.ParseTimeRange(rawRange)
		if err != nil {
			return h.fail(c, "chart", err)
		}
		timeRange = parsed
	}

	ctx := c.Request().Context()
	symbols := symbolStrings()

	anchor, ok, err := h.prices.LatestPriceDate(ctx, symbols)
	if err != nil {
		return h.fail(c, "chart", err)
	}
	if !ok {
		// No data at all; an empty chart, not an error.
		return c.JSON(http.StatusOK, chartResponse{
			Range:  string(timeRange),
			Latest: map[string]chartPoint{},
			Rows:   []volatility.ChartRow{},
		})
	}

	to := anchor.Format(volatility.DateLayout)
	from, err := timeRange.ResolveFromDate(to)
	if err != nil {
		return h.fail(c, "chart", err)
	}

	fromTime, err := time.Parse(volatility.DateLayout, from)
	if err != nil {
		return h.fail(c, "chart", err)
	}

	priceRows, err := h.prices.ListPricesBetween(ctx, symbols, fromTime, anchor, h.maxRows)
	if err != nil {
		return h.fail(c, "chart", err)
	}

	observations := make([]volatility.Observation, 0, len(priceRows))
	for _, row := range priceRows {
		observations = append(observations, row.Observation())
	}

	latest := make(map[string]chartPoint)
	for symbol, obs := range volatility.LatestPerSymbol(observations) {
		latest[string(symbol)] = chartPoint{Date: obs.Date, Close: obs.Close}
	}

	return c.JSON(http.StatusOK, chartResponse{
		Range:  string(timeRange),
		From:   from,
		To:     to,
		Latest: latest,
		Rows:   volatility.ToChartRows(observations),
	})
}

type subscriptionResponse struct {
	RuleID    volatility.RuleID    `json:"rule_id,omitempty"`
	Symbol    volatility.Symbol    `json:"symbol"`
	Direction volatility.Direction `json:"direction"`
	Threshold decimal.Decimal      `json:"threshold"`
	Severity  volatility.Severity  `json:"severity"`
	Enabled   bool                 `json:"enabled"`
}

// GetSubscriptions lists the persisted subscriptions for an email so a
// client can prefill its toggles.
func (h *Handler) GetSubscriptions(c echo.Context) error {
	email := strings.TrimSpace(c.QueryParam("email"))
	if email == "" {
		return h.fail(c, "get subscriptions", &volatility.ValidationError{Field: "email", Reason: "must not be empty"})
	}

	rows, err := h.subs.ListSubscriptions(c.Request().Context(), email)
	if err != nil {
		return h.fail(c, "get subscriptions", err)
	}

	out := make([]subscriptionResponse, 0, len(rows))
	for _, row := range rows {
		sub := row.Subscription()
		resp := subscriptionResponse{
			Symbol:    sub.Symbol,
			Direction: sub.Direction,
			Threshold: sub.Threshold,
			Severity:  sub.Severity,
			Enabled:   sub.Enabled,
		}
		if id, ok := matchRuleID(sub); ok {
			resp.RuleID = id
		}
		out = append(out, resp)
	}

	return c.JSON(http.StatusOK, map[string]any{"email": email, "subscriptions": out})
}

// matchRuleID maps a persisted row back to its catalog rule. Rows
// predating a catalog change may not match; they are returned without
// an id rather than dropped.
func matchRuleID(sub volatility.Subscription) (volatility.RuleID, bool) {
	for _, rule := range volatility.Rules() {
		if rule.Symbol == sub.Symbol && rule.Direction == sub.Direction && rule.Threshold.Equal(sub.Threshold) {
			return rule.ID, true
		}
	}
	return "", false
}

type saveSubscriptionsRequest struct {
	Email   string   `json:"email" validate:"required"`
	RuleIDs []string `json:"rule_ids"`
}

type saveSubscriptionsResponse struct {
	Email   string `json:"email"`
	Saved   int    `json:"saved"`
	Message string `json:"message"`
}

// SaveSubscriptions replaces the full subscription set for an email.
// An empty rule list is the unsubscribe-all path: existing rows are
// deleted and nothing is reinserted.
func (h *Handler) SaveSubscriptions(c echo.Context) error {
	var req saveSubscriptionsRequest
	if err := h.bind(c, &req); err != nil {
		return h.fail(c, "save subscriptions", err)
	}

	enabled := make(map[volatility.RuleID]bool, len(req.RuleIDs))
	for _, raw := range req.RuleIDs {
		rule, err := volatility.RuleByID(volatility.RuleID(raw))
		if err != nil {
			return h.fail(c, "save subscriptions", err)
		}
		enabled[rule.ID] = true
	}

	writeSet, err := volatility.ComputeWriteSet(req.Email, enabled)
	if err != nil {
		return h.fail(c, "save subscriptions", err)
	}

	rows := make([]storage.SubscriptionRow, 0, len(writeSet))
	for _, sub := range writeSet {
		rows = append(rows, storage.NewSubscriptionRow(sub))
	}

	email := strings.TrimSpace(req.Email)
	if err := h.subs.ReplaceSubscriptions(c.Request().Context(), email, rows); err != nil {
		return h.fail(c, "save subscriptions", err)
	}

	message := "alert rules saved"
	if len(rows) == 0 {
		message = "all alerts cleared; you can re-subscribe any time"
	}
	return c.JSON(http.StatusOK, saveSubscriptionsResponse{
		Email:   email,
		Saved:   len(rows),
		Message: message,
	})
}

type feedbackRequest struct {
	Category string `json:"category" validate:"required,oneof=bug feature other"`
	Message  string `json:"message" validate:"required"`
	Contact  string `json:"contact"`
	PagePath string `json:"page_path"`
}

// SubmitFeedback stores one free-text feedback entry.
func (h *Handler) SubmitFeedback(c echo.Context) error {
	var req feedbackRequest
	if err := h.bind(c, &req); err != nil {
		return h.fail(c, "submit feedback", err)
	}

	entry, err := volatility.BuildFeedbackEntry(
		volatility.Category(req.Category),
		req.Message,
		req.Contact,
		c.Request().UserAgent(),
		req.PagePath,
	)
	if err != nil {
		return h.fail(c, "submit feedback", err)
	}

	if err := h.feedback.InsertFeedback(c.Request().Context(), storage.NewFeedbackRow(entry)); err != nil {
		return h.fail(c, "submit feedback", err)
	}

	return c.JSON(http.StatusCreated, map[string]string{
		"message": "thanks for the feedback, it helps us improve",
	})
}

func symbolStrings() []string {
	symbols := volatility.Symbols()
	out := make([]string, 0, len(symbols))
	for _, s := range symbols {
		out = append(out, string(s))
	}
	return out
}
