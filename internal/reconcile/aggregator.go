package reconcile

import (
	"time"

	"github.com/segyhp/dues-engine/internal/domain"
	"github.com/segyhp/dues-engine/pkg/utils"

	"github.com/shopspring/decimal"
)

// UnassignedScope names the bucket of members without a collector in
// per-collector summaries.
const UnassignedScope = "unassigned"

// Aggregator computes collection statistics over a set of members.
type Aggregator struct {
	policy     Policy
	classifier *Classifier
}

func NewAggregator(policy Policy) *Aggregator {
	return &Aggregator{
		policy:     policy,
		classifier: NewClassifier(policy),
	}
}

// Aggregate summarises the members assigned to the collector named scope, or
// all members when scope is empty. Payment requests are scoped through the
// member they reference. A nil snapshot is treated as empty. Only the records
// read are validated; role assignments are ignored.
func (a *Aggregator) Aggregate(snap *domain.Snapshot, scope string, now time.Time) (*domain.Summary, error) {
	if snap == nil {
		snap = &domain.Snapshot{}
	}
	if err := ValidateMembers(snap.Members); err != nil {
		return nil, err
	}
	if err := ValidatePaymentRequests(snap.PaymentRequests); err != nil {
		return nil, err
	}

	members := snap.Members
	if scope != "" {
		members = membersOf(snap.Members, scope)
	}

	return a.summarize(members, requestsFor(members, snap.PaymentRequests, scope == ""), scope, now), nil
}

// AggregateByCollector summarises each collector's members in collector input
// order, followed by an UnassignedScope entry when some members have no
// collector. Like Aggregate it ignores role assignments.
func (a *Aggregator) AggregateByCollector(snap *domain.Snapshot, now time.Time) ([]domain.CollectorSummary, error) {
	if snap == nil {
		snap = &domain.Snapshot{}
	}
	if err := ValidateMembers(snap.Members); err != nil {
		return nil, err
	}
	if err := ValidateCollectors(snap.Collectors); err != nil {
		return nil, err
	}
	if err := ValidatePaymentRequests(snap.PaymentRequests); err != nil {
		return nil, err
	}

	summaries := make([]domain.CollectorSummary, 0, len(snap.Collectors)+1)
	for _, c := range snap.Collectors {
		members := membersOf(snap.Members, c.Name)
		summaries = append(summaries, domain.CollectorSummary{
			CollectorID: c.ID,
			Name:        c.Name,
			Active:      c.Active,
			Summary:     a.summarize(members, requestsFor(members, snap.PaymentRequests, false), c.Name, now),
		})
	}

	unassigned := membersOf(snap.Members, "")
	if len(unassigned) > 0 {
		summaries = append(summaries, domain.CollectorSummary{
			Name:    UnassignedScope,
			Summary: a.summarize(unassigned, requestsFor(unassigned, snap.PaymentRequests, false), UnassignedScope, now),
		})
	}

	return summaries, nil
}

func (a *Aggregator) summarize(members []*domain.Member, requests []*domain.PaymentRequest, scope string, now time.Time) *domain.Summary {
	summary := newSummary(scope)
	summary.TotalMembers = len(members)

	emergencyDue := decimal.Zero
	emergencyCollected := decimal.Zero

	for _, m := range members {
		summary.MembersByStatus[m.Status]++

		if m.YearlyPaymentStatus == domain.PaymentFieldCompleted {
			summary.YearlyStats.CompletedCount++
		}
		if m.YearlyPaymentStatus == domain.PaymentFieldPending {
			summary.PendingMemberPayments++
		}

		state := a.classifier.Classify(m.YearlyPaymentDueDate, m.YearlyPaymentStatus, now).State
		summary.YearlyStates[state]++

		emergencyDue = emergencyDue.Add(m.EmergencyAmount())
		if m.EmergencyCollectionStatus == domain.PaymentFieldCompleted {
			summary.EmergencyStats.CompletedCount++
			emergencyCollected = emergencyCollected.Add(m.EmergencyAmount())
		}

		summary.RecentActivity = append(summary.RecentActivity, a.recentPayments(m, now)...)
	}

	yearly := &summary.YearlyStats
	yearly.TotalDue = a.policy.AnnualFee.Mul(decimal.NewFromInt(int64(len(members))))
	yearly.CollectedAmount = a.policy.AnnualFee.Mul(decimal.NewFromInt(int64(yearly.CompletedCount)))
	yearly.RemainingAmount = yearly.TotalDue.Sub(yearly.CollectedAmount)
	yearly.PercentComplete = utils.Percent(yearly.CompletedCount, len(members))

	emergency := &summary.EmergencyStats
	emergency.TotalDue = emergencyDue
	emergency.CollectedAmount = emergencyCollected
	emergency.RemainingAmount = emergencyDue.Sub(emergencyCollected)

	summary.PaymentRequests = summarizeRequests(requests)

	return summary
}

func (a *Aggregator) recentPayments(m *domain.Member, now time.Time) []domain.RecentPayment {
	var recent []domain.RecentPayment

	add := func(category string, date domain.NullDate, amount decimal.NullDecimal) {
		if !date.Valid || !utils.WithinLastDays(date.Time, now, a.policy.RecentActivityDays) {
			return
		}
		recent = append(recent, domain.RecentPayment{
			MemberID:     m.ID,
			MemberNumber: m.MemberNumber,
			Category:     category,
			Date:         date.Time,
			Amount:       amount.Decimal,
		})
	}

	add(domain.PaymentTypeYearly, m.LastYearlyPaymentDate, m.LastYearlyPaymentAmount)
	add(domain.PaymentTypeEmergency, m.LastEmergencyPaymentDate, m.LastEmergencyPaymentAmount)

	return recent
}

func summarizeRequests(requests []*domain.PaymentRequest) domain.PaymentRequestStats {
	stats := domain.PaymentRequestStats{
		PendingAmount: decimal.Zero,
		TotalAmount:   decimal.Zero,
		ByMethod: map[string]int{
			domain.PaymentMethodCash:         0,
			domain.PaymentMethodBankTransfer: 0,
		},
		ByType: map[string]int{
			domain.PaymentTypeYearly:    0,
			domain.PaymentTypeEmergency: 0,
		},
	}

	for _, p := range requests {
		stats.Total++
		stats.TotalAmount = stats.TotalAmount.Add(p.Amount)
		stats.ByMethod[partitionKey(p.PaymentMethod)]++
		stats.ByType[partitionKey(p.PaymentType)]++

		switch p.Status {
		case domain.PaymentRequestPending:
			stats.Pending++
			stats.PendingAmount = stats.PendingAmount.Add(p.Amount)
		case domain.PaymentRequestApproved:
			stats.Approved++
		case domain.PaymentRequestRejected:
			stats.Rejected++
		}
	}

	stats.AverageAmount = utils.Average(stats.TotalAmount, stats.Total)

	return stats
}

func newSummary(scope string) *domain.Summary {
	summary := &domain.Summary{
		Scope: scope,
		MembersByStatus: map[string]int{
			domain.MemberStatusActive:   0,
			domain.MemberStatusInactive: 0,
			domain.MemberStatusPending:  0,
		},
		YearlyStates:   make(map[domain.PaymentState]int, len(domain.PaymentStates)),
		RecentActivity: make([]domain.RecentPayment, 0),
	}
	for _, state := range domain.PaymentStates {
		summary.YearlyStates[state] = 0
	}

	return summary
}

// membersOf returns the members whose collector name equals name. An empty
// name selects unassigned members.
func membersOf(members []*domain.Member, name string) []*domain.Member {
	scoped := make([]*domain.Member, 0)
	for _, m := range members {
		if m.CollectorName() == name {
			scoped = append(scoped, m)
		}
	}
	return scoped
}

// requestsFor returns the payment requests that reference one of members.
// When all is set every request is returned, including those whose member is
// missing.
func requestsFor(members []*domain.Member, requests []*domain.PaymentRequest, all bool) []*domain.PaymentRequest {
	if all {
		return requests
	}

	ids := make(map[string]struct{}, len(members))
	for _, m := range members {
		ids[m.ID] = struct{}{}
	}

	scoped := make([]*domain.PaymentRequest, 0)
	for _, p := range requests {
		if _, ok := ids[p.MemberID]; ok {
			scoped = append(scoped, p)
		}
	}
	return scoped
}

func partitionKey(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
