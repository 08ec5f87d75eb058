package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/segyhp/dues-engine/internal/domain"
	"github.com/segyhp/dues-engine/internal/reconcile"
)

func (c *cli) newClassifyCmd() *cobra.Command {
	var due, status string

	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify a single payment obligation",
		Example: `  duesctl classify --due 2025-01-01 --status pending --now 2025-01-15
  duesctl classify --status completed`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			policy, err := c.policy()
			if err != nil {
				return err
			}
			now, err := c.now()
			if err != nil {
				return err
			}

			dueDate := domain.ParseNullDate(due)
			if dueDate.Malformed() {
				c.logger.Warn("unparsable due date treated as missing")
			}

			result := reconcile.NewClassifier(policy).Classify(dueDate, status, now)
			return writeJSON(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVar(&due, "due", "", "due date; empty means no due date")
	cmd.Flags().StringVar(&status, "status", "", "stored payment status, e.g. completed or pending")

	return cmd
}

func (c *cli) newSummaryCmd() *cobra.Command {
	var collector string
	var byCollector bool

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Aggregate collection statistics from a snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if byCollector && collector != "" {
				return fmt.Errorf("--collector and --by-collector are mutually exclusive")
			}

			policy, err := c.policy()
			if err != nil {
				return err
			}
			now, err := c.now()
			if err != nil {
				return err
			}
			snap, err := c.loadSnapshot()
			if err != nil {
				return err
			}

			aggregator := reconcile.NewAggregator(policy)
			if byCollector {
				summaries, err := aggregator.AggregateByCollector(snap, now)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), summaries)
			}

			summary, err := aggregator.Aggregate(snap, collector, now)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), summary)
		},
	}

	c.addSnapshotFlag(cmd)
	cmd.Flags().StringVar(&collector, "collector", "", "only members assigned to this collector name")
	cmd.Flags().BoolVar(&byCollector, "by-collector", false, "one summary per collector")

	return cmd
}

func (c *cli) newAuditCmd() *cobra.Command {
	var failOnCritical bool

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Run the consistency audit over a snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now, err := c.now()
			if err != nil {
				return err
			}
			snap, err := c.loadSnapshot()
			if err != nil {
				return err
			}

			findings, err := reconcile.NewAuditor().Audit(snap, now)
			if err != nil {
				return err
			}

			warnings, critical := domain.CountSeverities(findings)
			report := domain.AuditReport{
				ID:          uuid.NewString(),
				GeneratedAt: now,
				Findings:    findings,
				Warnings:    warnings,
				Critical:    critical,
			}
			if err := writeJSON(cmd.OutOrStdout(), report); err != nil {
				return err
			}

			if failOnCritical && critical > 0 {
				return fmt.Errorf("audit found %d critical finding(s)", critical)
			}
			return nil
		},
	}

	c.addSnapshotFlag(cmd)
	cmd.Flags().BoolVar(&failOnCritical, "fail-on-critical", false, "exit non-zero when a critical finding is reported")

	return cmd
}
