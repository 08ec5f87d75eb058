package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/segyhp/dues-engine/internal/config"
	"github.com/segyhp/dues-engine/internal/domain"
	"github.com/segyhp/dues-engine/internal/reconcile"
	"github.com/segyhp/dues-engine/internal/repository"
	customError "github.com/segyhp/dues-engine/pkg/errors"
)

// AuditStore keeps the latest audit report.
type AuditStore interface {
	Save(ctx context.Context, report *domain.AuditReport) error
	Latest(ctx context.Context) (*domain.AuditReport, error)
}

// ReconciliationService fetches member, collector, payment request and role
// data and runs reconciliation over it.
type ReconciliationService struct {
	MemberRepo         repository.MemberRepository
	CollectorRepo      repository.CollectorRepository
	PaymentRequestRepo repository.PaymentRequestRepository
	RoleRepo           repository.RoleRepository
	auditStore         AuditStore
	classifier         *reconcile.Classifier
	aggregator         *reconcile.Aggregator
	auditor            *reconcile.Auditor
	logger             *zap.Logger
}

func NewReconciliationService(
	memberRepo repository.MemberRepository,
	collectorRepo repository.CollectorRepository,
	paymentRequestRepo repository.PaymentRequestRepository,
	roleRepo repository.RoleRepository,
	auditStore AuditStore,
	policy reconcile.Policy,
	logger *zap.Logger,
) *ReconciliationService {
	return &ReconciliationService{
		MemberRepo:         memberRepo,
		CollectorRepo:      collectorRepo,
		PaymentRequestRepo: paymentRequestRepo,
		RoleRepo:           roleRepo,
		auditStore:         auditStore,
		classifier:         reconcile.NewClassifier(policy),
		aggregator:         reconcile.NewAggregator(policy),
		auditor:            reconcile.NewAuditor(),
		logger:             logger,
	}
}

// PolicyFromConfig builds the reconciliation policy from business settings
func PolicyFromConfig(cfg *config.Config) reconcile.Policy {
	return reconcile.Policy{
		AnnualFee:              cfg.GetAnnualFee(),
		GracePeriodDays:        cfg.Business.GracePeriodDays,
		DeactivationNoticeDays: cfg.Business.DeactivationNoticeDays,
		RecentActivityDays:     cfg.Business.RecentActivityDays,
	}
}

// LoadSnapshot fetches all four collections. They are read one after another
// without a shared transaction.
func (s *ReconciliationService) LoadSnapshot(ctx context.Context) (*domain.Snapshot, error) {
	members, err := s.MemberRepo.List(ctx)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	collectors, err := s.CollectorRepo.List(ctx)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	requests, err := s.PaymentRequestRepo.List(ctx)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	roles, err := s.RoleRepo.List(ctx)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	snap := &domain.Snapshot{
		Members:         members,
		Collectors:      collectors,
		PaymentRequests: requests,
		RoleAssignments: roles,
	}
	s.logMalformedDates(snap)

	return snap, nil
}

// MemberStatus classifies a single member's payments at now
func (s *ReconciliationService) MemberStatus(ctx context.Context, memberID string, now time.Time) (*domain.MemberStatus, error) {
	member, err := s.MemberRepo.GetByID(ctx, memberID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapMemberNotFound(memberID)
	}
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	s.logMalformedDates(&domain.Snapshot{Members: []*domain.Member{member}})

	status := s.classifier.ClassifyMember(member, now)
	return &status, nil
}

// Summary aggregates all members, or the members of the named collector when
// scope is set.
func (s *ReconciliationService) Summary(ctx context.Context, scope string, now time.Time) (*domain.Summary, error) {
	var (
		members []*domain.Member
		err     error
	)

	if scope == "" {
		members, err = s.MemberRepo.List(ctx)
	} else {
		if _, err = s.CollectorRepo.GetByName(ctx, scope); errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapCollectorNotFound(scope)
		}
		if err != nil {
			return nil, customError.WrapDatabaseError(err)
		}
		members, err = s.MemberRepo.ListByCollector(ctx, scope)
	}
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	requests, err := s.PaymentRequestRepo.List(ctx)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	snap := &domain.Snapshot{Members: members, PaymentRequests: requests}
	s.logMalformedDates(snap)

	return s.aggregator.Aggregate(snap, scope, now)
}

// CollectorSummaries aggregates every collector's members separately
func (s *ReconciliationService) CollectorSummaries(ctx context.Context, now time.Time) ([]domain.CollectorSummary, error) {
	snap, err := s.LoadSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	return s.aggregator.AggregateByCollector(snap, now)
}

// PendingPaymentRequests lists the requests still awaiting approval
func (s *ReconciliationService) PendingPaymentRequests(ctx context.Context) ([]*domain.PaymentRequest, error) {
	requests, err := s.PaymentRequestRepo.ListByStatus(ctx, domain.PaymentRequestPending)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return requests, nil
}

// RunAudit audits a fresh snapshot and stores the report. A failure to store
// the report is logged and does not fail the run.
func (s *ReconciliationService) RunAudit(ctx context.Context, now time.Time) (*domain.AuditReport, error) {
	snap, err := s.LoadSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	findings, err := s.auditor.Audit(snap, now)
	if err != nil {
		return nil, err
	}

	warnings, critical := domain.CountSeverities(findings)
	report := &domain.AuditReport{
		ID:          uuid.NewString(),
		GeneratedAt: now,
		Findings:    findings,
		Warnings:    warnings,
		Critical:    critical,
	}

	s.logger.Info("consistency audit finished",
		zap.String("report_id", report.ID),
		zap.Int("members", len(snap.Members)),
		zap.Int("payment_requests", len(snap.PaymentRequests)),
		zap.Int("warnings", warnings),
		zap.Int("critical", critical),
	)

	if err := s.auditStore.Save(ctx, report); err != nil {
		s.logger.Warn("failed to store audit report", zap.String("report_id", report.ID), zap.Error(err))
	}

	return report, nil
}

// LatestAudit returns the most recently stored audit report
func (s *ReconciliationService) LatestAudit(ctx context.Context) (*domain.AuditReport, error) {
	return s.auditStore.Latest(ctx)
}

func (s *ReconciliationService) logMalformedDates(snap *domain.Snapshot) {
	for _, field := range snap.MalformedDates() {
		s.logger.Warn("unparsable date treated as missing", zap.String("field", field))
	}
}
