package app

import (
	"fmt"
	"os"
	"text/tabwriter"

	"volwatch/internal/volatility"
)

// Rules prints the shipped alert rule catalog.
func (a *App) Rules() error {
	writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "ID\tSymbol\tCondition\tSeverity\tTitle")
	for _, rule := range volatility.Rules() {
		fmt.Fprintf(writer, "%s\t%s\t%s %s\t%s\t%s\n",
			rule.ID,
			rule.Symbol,
			rule.Direction,
			rule.Threshold,
			rule.Severity,
			rule.Title,
		)
	}
	return writer.Flush()
}
