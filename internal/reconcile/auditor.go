package reconcile

import (
	"fmt"
	"time"

	"github.com/segyhp/dues-engine/internal/domain"
)

// Auditor detects structural anomalies across members, collectors, payment
// requests and role assignments. Anomalies are returned as findings; only
// malformed input is an error.
type Auditor struct {
	checks []auditCheck
}

type auditCheck func(in *auditInput) []domain.Finding

// auditInput is the snapshot plus the lookups the checks share.
type auditInput struct {
	snap *domain.Snapshot
	now  time.Time

	membersByID      map[string]*domain.Member
	collectorsByID   map[string]*domain.Collector
	collectorsByName map[string][]*domain.Collector
	collectorUsers   map[string]struct{}
	pendingByMember  map[string][]string
	users            []domain.UserRoles
}

func NewAuditor() *Auditor {
	return &Auditor{
		checks: []auditCheck{
			checkCollectorMismatch,
			checkInactiveWithPending,
			checkOverdueYearly,
			checkIncompleteEmergency,
			checkMultipleRoles,
			checkCollectorWithoutRole,
			checkUnknownCollector,
			checkDuplicateCollectorName,
			checkOrphanedCollectorRole,
		},
	}
}

// Audit runs every check against snap and returns the accumulated findings.
// Within a check, findings follow the input order of the collection it scans.
func (a *Auditor) Audit(snap *domain.Snapshot, now time.Time) ([]domain.Finding, error) {
	if snap == nil {
		snap = &domain.Snapshot{}
	}
	if err := ValidateSnapshot(snap); err != nil {
		return nil, err
	}

	in := newAuditInput(snap, now)

	findings := make([]domain.Finding, 0)
	for _, check := range a.checks {
		findings = append(findings, check(in)...)
	}

	return findings, nil
}

func newAuditInput(snap *domain.Snapshot, now time.Time) *auditInput {
	in := &auditInput{
		snap:             snap,
		now:              now,
		membersByID:      make(map[string]*domain.Member, len(snap.Members)),
		collectorsByID:   make(map[string]*domain.Collector, len(snap.Collectors)),
		collectorsByName: make(map[string][]*domain.Collector, len(snap.Collectors)),
		collectorUsers:   make(map[string]struct{}, len(snap.Collectors)),
		pendingByMember:  make(map[string][]string),
		users:            domain.GroupRoles(snap.RoleAssignments),
	}

	for _, m := range snap.Members {
		in.membersByID[m.ID] = m
	}
	for _, c := range snap.Collectors {
		in.collectorsByID[c.ID] = c
		in.collectorsByName[c.Name] = append(in.collectorsByName[c.Name], c)
		if c.UserID != "" {
			in.collectorUsers[c.UserID] = struct{}{}
		}
	}
	for _, p := range snap.PaymentRequests {
		if p.IsPending() {
			in.pendingByMember[p.MemberID] = append(in.pendingByMember[p.MemberID], p.ID)
		}
	}

	return in
}

// checkCollectorMismatch flags payment requests whose collector is not the
// collector currently assigned, by name, to the referenced member. Drift is
// expected after a reassignment, so this is only a warning.
func checkCollectorMismatch(in *auditInput) []domain.Finding {
	var findings []domain.Finding

	for _, p := range in.snap.PaymentRequests {
		member, ok := in.membersByID[p.MemberID]
		if !ok {
			findings = append(findings, domain.Finding{
				Kind:        domain.FindingOrphanedPaymentRequest,
				Severity:    domain.SeverityWarning,
				AffectedIDs: []string{p.ID, p.MemberID},
				Description: fmt.Sprintf("Payment request %s references unknown member %s", p.ID, p.MemberID),
			})
			continue
		}

		collector, ok := in.collectorsByID[p.CollectorID]
		assigned := member.CollectorName()
		if ok && assigned != "" && collector.Name == assigned {
			continue
		}

		findings = append(findings, domain.Finding{
			Kind:        domain.FindingCollectorMismatch,
			Severity:    domain.SeverityWarning,
			AffectedIDs: []string{p.ID, member.ID, p.CollectorID},
			Description: fmt.Sprintf(
				"Payment request %s was filed under collector %q but member %s is assigned to %q",
				p.ID, p.CollectorID, member.ID, assigned,
			),
		})
	}

	return findings
}

func checkInactiveWithPending(in *auditInput) []domain.Finding {
	var findings []domain.Finding

	for _, m := range in.snap.Members {
		if m.Status != domain.MemberStatusInactive {
			continue
		}
		pending := in.pendingByMember[m.ID]
		if len(pending) == 0 {
			continue
		}

		findings = append(findings, domain.Finding{
			Kind:        domain.FindingInactiveWithPending,
			Severity:    domain.SeverityCritical,
			AffectedIDs: append([]string{m.ID}, pending...),
			Description: fmt.Sprintf("Inactive member %s has %d pending payment request(s)", m.ID, len(pending)),
		})
	}

	return findings
}

func checkOverdueYearly(in *auditInput) []domain.Finding {
	var findings []domain.Finding

	for _, m := range in.snap.Members {
		due := m.YearlyPaymentDueDate
		if m.YearlyPaymentStatus != domain.PaymentFieldPending || !due.Valid || !due.Time.Before(in.now) {
			continue
		}

		findings = append(findings, domain.Finding{
			Kind:        domain.FindingOverdueYearly,
			Severity:    domain.SeverityWarning,
			AffectedIDs: []string{m.ID},
			Description: fmt.Sprintf("Yearly payment for member %s was due on %s", m.ID, due.Time.Format(time.DateOnly)),
		})
	}

	return findings
}

func checkIncompleteEmergency(in *auditInput) []domain.Finding {
	var findings []domain.Finding

	for _, m := range in.snap.Members {
		if !m.EmergencyCollectionAmount.Valid || m.EmergencyCollectionDueDate.Valid {
			continue
		}

		findings = append(findings, domain.Finding{
			Kind:        domain.FindingIncompleteEmergency,
			Severity:    domain.SeverityWarning,
			AffectedIDs: []string{m.ID},
			Description: fmt.Sprintf("Emergency collection of %s for member %s has no due date", m.EmergencyCollectionAmount.Decimal, m.ID),
		})
	}

	return findings
}

func checkUnknownCollector(in *auditInput) []domain.Finding {
	var findings []domain.Finding

	for _, m := range in.snap.Members {
		name := m.CollectorName()
		if name == "" {
			continue
		}
		if _, ok := in.collectorsByName[name]; ok {
			continue
		}

		findings = append(findings, domain.Finding{
			Kind:        domain.FindingUnknownCollector,
			Severity:    domain.SeverityWarning,
			AffectedIDs: []string{m.ID},
			Description: fmt.Sprintf("Member %s is assigned to collector %q which does not exist", m.ID, name),
		})
	}

	return findings
}

func checkDuplicateCollectorName(in *auditInput) []domain.Finding {
	var findings []domain.Finding
	reported := make(map[string]bool)

	for _, c := range in.snap.Collectors {
		same := in.collectorsByName[c.Name]
		if len(same) < 2 || reported[c.Name] {
			continue
		}
		reported[c.Name] = true

		ids := make([]string, 0, len(same))
		for _, dup := range same {
			ids = append(ids, dup.ID)
		}

		findings = append(findings, domain.Finding{
			Kind:        domain.FindingDuplicateCollectorName,
			Severity:    domain.SeverityWarning,
			AffectedIDs: ids,
			Description: fmt.Sprintf("%d collectors share the name %q", len(same), c.Name),
		})
	}

	return findings
}
