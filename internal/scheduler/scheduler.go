package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/segyhp/dues-engine/internal/config"
	"github.com/segyhp/dues-engine/internal/domain"
)

// jobTimeout bounds a single job run.
const jobTimeout = 5 * time.Minute

// Runner is the part of the reconciliation service driven by scheduled jobs.
type Runner interface {
	RunAudit(ctx context.Context, now time.Time) (*domain.AuditReport, error)
	CollectorSummaries(ctx context.Context, now time.Time) ([]domain.CollectorSummary, error)
}

// Jobs holds the periodic reconciliation jobs.
type Jobs struct {
	runner Runner
	logger *zap.Logger
	now    func() time.Time
}

func NewJobs(runner Runner, loc *time.Location, logger *zap.Logger) *Jobs {
	return &Jobs{
		runner: runner,
		logger: logger,
		now:    func() time.Time { return time.Now().In(loc) },
	}
}

// New creates a cron scheduler with second precision in the configured
// timezone. Panicking jobs are recovered and logged.
func New(cfg *config.Config, logger *zap.Logger) *cron.Cron {
	cl := cronLogger{logger.Sugar()}
	return cron.New(
		cron.WithSeconds(),
		cron.WithLocation(cfg.GetLocation()),
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)
}

// Register schedules the audit and summary jobs on c.
func (j *Jobs) Register(c *cron.Cron, cfg *config.Config) error {
	if _, err := c.AddFunc(cfg.Scheduler.AuditSchedule, j.RunAudit); err != nil {
		return fmt.Errorf("error scheduling audit job: %w", err)
	}

	if _, err := c.AddFunc(cfg.Scheduler.SummarySchedule, j.ReportCollectors); err != nil {
		return fmt.Errorf("error scheduling collector summary job: %w", err)
	}

	j.logger.Info("cron jobs scheduled",
		zap.String("audit_schedule", cfg.Scheduler.AuditSchedule),
		zap.String("summary_schedule", cfg.Scheduler.SummarySchedule),
	)
	return nil
}

// RunAudit runs a consistency audit and logs every finding.
func (j *Jobs) RunAudit() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	report, err := j.runner.RunAudit(ctx, j.now())
	if err != nil {
		j.logger.Error("scheduled audit failed", zap.Error(err))
		return
	}

	for _, f := range report.Findings {
		log := j.logger.Info
		if f.Severity == domain.SeverityCritical {
			log = j.logger.Warn
		}
		log(f.Description,
			zap.String("report_id", report.ID),
			zap.String("kind", string(f.Kind)),
			zap.Strings("affected_ids", f.AffectedIDs),
		)
	}
}

// ReportCollectors logs the yearly collection progress of every collector.
func (j *Jobs) ReportCollectors() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	summaries, err := j.runner.CollectorSummaries(ctx, j.now())
	if err != nil {
		j.logger.Error("scheduled collector summary failed", zap.Error(err))
		return
	}

	for _, cs := range summaries {
		s := cs.Summary
		j.logger.Info("collector progress",
			zap.String("collector", cs.Name),
			zap.Int("members", s.TotalMembers),
			zap.Int("percent_complete", s.YearlyStats.PercentComplete),
			zap.String("remaining", s.YearlyStats.RemainingAmount.StringFixed(2)),
			zap.Int("critical", s.YearlyStates[domain.StateCritical]),
			zap.Int("pending_requests", s.PaymentRequests.Pending),
		)
	}
}

// cronLogger adapts a zap logger to cron.Logger.
type cronLogger struct {
	s *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.s.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.s.Errorw(msg, append(keysAndValues, "error", err)...)
}
