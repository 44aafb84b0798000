package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"volwatch/internal/app"
)

var (
	subscribeEmail string
	subscribeRules []string
	subscribeAll   bool
	subscribeNone  bool
)

var subscribeCmd = &cobra.Command{
	Use:   "subscribe",
	Short: "Replace the alert subscriptions for an email address",
	RunE: func(cmd *cobra.Command, args []string) error {
		if subscribeEmail == "" {
			return fmt.Errorf("--email is required")
		}

		opts := app.SubscribeOptions{
			Email: subscribeEmail,
			Rules: subscribeRules,
			All:   subscribeAll,
			None:  subscribeNone,
		}

		return getApp().Subscribe(cmd.Context(), opts)
	},
}

func init() {
	subscribeCmd.Flags().StringVar(&subscribeEmail, "email", "", "Email address the alerts are for")
	subscribeCmd.Flags().StringArrayVar(&subscribeRules, "rule", nil, "Rule id to enable (repeatable; see `volwatch rules`)")
	subscribeCmd.Flags().BoolVar(&subscribeAll, "all", false, "Enable every rule")
	subscribeCmd.Flags().BoolVar(&subscribeNone, "none", false, "Clear every subscription for the email")
}
