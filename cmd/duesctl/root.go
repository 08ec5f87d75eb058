package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/segyhp/dues-engine/internal/domain"
	"github.com/segyhp/dues-engine/internal/reconcile"
	"github.com/segyhp/dues-engine/internal/snapshot"
	"github.com/segyhp/dues-engine/pkg/logger"
	"github.com/segyhp/dues-engine/pkg/utils"
)

// cli carries the flags and state shared by every subcommand.
type cli struct {
	logLevel  string
	logFormat string

	annualFee   string
	graceDays   int
	noticeDays  int
	recentDays  int
	snapshotArg string
	nowArg      string

	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	defaults := reconcile.DefaultPolicy()

	root := &cobra.Command{
		Use:           "duesctl",
		Short:         "Classify, summarise and audit membership dues",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := logger.New(c.logLevel, c.logFormat)
			if err != nil {
				return err
			}
			c.logger = l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = c.logger.Sync()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	flags.StringVar(&c.logFormat, "log-format", "console", "log format (console or json)")
	flags.StringVar(&c.annualFee, "annual-fee", defaults.AnnualFee.String(), "yearly membership fee")
	flags.IntVar(&c.graceDays, "grace-days", defaults.GracePeriodDays, "days after the due date before a payment is critical")
	flags.IntVar(&c.noticeDays, "notice-days", defaults.DeactivationNoticeDays, "days of notice between critical and deactivation")
	flags.IntVar(&c.recentDays, "recent-days", defaults.RecentActivityDays, "window for recent payment activity")
	flags.StringVar(&c.nowArg, "now", "", "evaluation instant, RFC3339 or YYYY-MM-DD (default: current time)")

	root.AddCommand(
		c.newClassifyCmd(),
		c.newSummaryCmd(),
		c.newAuditCmd(),
	)

	return root
}

func (c *cli) policy() (reconcile.Policy, error) {
	fee, err := decimal.NewFromString(c.annualFee)
	if err != nil {
		return reconcile.Policy{}, fmt.Errorf("invalid --annual-fee: %w", err)
	}

	policy := reconcile.Policy{
		AnnualFee:              fee,
		GracePeriodDays:        c.graceDays,
		DeactivationNoticeDays: c.noticeDays,
		RecentActivityDays:     c.recentDays,
	}
	if err := policy.Validate(); err != nil {
		return reconcile.Policy{}, err
	}
	return policy, nil
}

func (c *cli) now() (time.Time, error) {
	if c.nowArg == "" {
		return time.Now().UTC(), nil
	}
	t, ok := utils.ParseDate(c.nowArg)
	if !ok {
		return time.Time{}, fmt.Errorf("invalid --now %q: expected RFC3339 or YYYY-MM-DD", c.nowArg)
	}
	return t, nil
}

func (c *cli) addSnapshotFlag(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&c.snapshotArg, "snapshot", "s", "", "snapshot file (.json, .yaml, .yml, or - for JSON on stdin)")
	_ = cmd.MarkFlagRequired("snapshot")
}

func (c *cli) loadSnapshot() (*domain.Snapshot, error) {
	snap, err := snapshot.Load(c.snapshotArg)
	if err != nil {
		return nil, err
	}
	for _, field := range snap.MalformedDates() {
		c.logger.Warn("unparsable date treated as missing", zap.String("field", field))
	}
	return snap, nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
