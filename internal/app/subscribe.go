package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"volwatch/internal/storage"
	"volwatch/internal/volatility"
)

// Subscribe replaces the alert subscriptions for an email from the
// command line. The save path is the same as the API's: compute the
// write-set, then delete-and-insert in one transaction.
func (a *App) Subscribe(ctx context.Context, opts SubscribeOptions) error {
	if opts.All && opts.None {
		return errors.New("--all and --none are mutually exclusive")
	}
	if !opts.All && !opts.None && len(opts.Rules) == 0 {
		return errors.New("pass --rule at least once, or --all / --none")
	}

	enabled := make(map[volatility.RuleID]bool)
	switch {
	case opts.All:
		for _, rule := range volatility.Rules() {
			enabled[rule.ID] = true
		}
	case opts.None:
		// Empty set: unsubscribe-all.
	default:
		for _, raw := range opts.Rules {
			rule, err := volatility.RuleByID(volatility.RuleID(raw))
			if err != nil {
				return fmt.Errorf("unknown rule %q (see `volwatch rules`)", raw)
			}
			enabled[rule.ID] = true
		}
	}

	writeSet, err := volatility.ComputeWriteSet(opts.Email, enabled)
	if err != nil {
		return err
	}

	store, closeStore, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	rows := make([]storage.SubscriptionRow, 0, len(writeSet))
	for _, sub := range writeSet {
		rows = append(rows, storage.NewSubscriptionRow(sub))
	}

	target := strings.TrimSpace(opts.Email)
	if err := store.ReplaceSubscriptions(ctx, target, rows); err != nil {
		return err
	}

	if len(rows) == 0 {
		fmt.Fprintf(os.Stdout, "all alerts cleared for %s\n", target)
		return nil
	}

	fmt.Fprintf(os.Stdout, "saved %d alert rule(s) for %s:\n", len(rows), target)
	for _, sub := range writeSet {
		fmt.Fprintf(os.Stdout, "  %s %s %s (%s)\n", sub.Symbol, sub.Direction, sub.Threshold, sub.Severity)
	}
	return nil
}
