package reconcile

import (
	"time"

	"github.com/segyhp/dues-engine/internal/domain"
	"github.com/segyhp/dues-engine/pkg/utils"
)

// Classifier derives the payment state of a single obligation.
type Classifier struct {
	policy Policy
}

func NewClassifier(policy Policy) *Classifier {
	return &Classifier{policy: policy}
}

// Classify determines the state of an obligation from its due date and stored
// status at the instant now. Rules, first match wins:
//
//   - status "completed" is paid, whatever the date says
//   - a null or unparsable due date is pending
//   - before the due date it is due
//   - within the grace period after the due date it is overdue
//   - afterwards it is critical, with the whole days left until deactivation
func (c *Classifier) Classify(dueDate domain.NullDate, status string, now time.Time) domain.Classification {
	if status == domain.PaymentFieldCompleted {
		return domain.Classification{State: domain.StatePaid}
	}

	if !dueDate.Valid {
		return domain.Classification{State: domain.StatePending}
	}

	if now.Before(dueDate.Time) {
		return domain.Classification{State: domain.StateDue}
	}

	graceEnd := utils.AddDays(dueDate.Time, c.policy.GracePeriodDays)
	if now.Before(graceEnd) {
		return domain.Classification{State: domain.StateOverdue}
	}

	deadline := utils.AddDays(graceEnd, c.policy.DeactivationNoticeDays)
	days := utils.DaysUntil(now, deadline)

	return domain.Classification{
		State:                 domain.StateCritical,
		DaysUntilDeactivation: &days,
		DeactivationPending:   days == 0,
	}
}

// ClassifyMember classifies the yearly payment and the emergency collection
// of m. A member without a yearly amount owes the annual fee.
func (c *Classifier) ClassifyMember(m *domain.Member, now time.Time) domain.MemberStatus {
	return domain.MemberStatus{
		MemberID:        m.ID,
		MemberNumber:    m.MemberNumber,
		Collector:       m.CollectorName(),
		Yearly:          c.Classify(m.YearlyPaymentDueDate, m.YearlyPaymentStatus, now),
		YearlyAmount:    m.YearlyAmount(c.policy.AnnualFee),
		Emergency:       c.Classify(m.EmergencyCollectionDueDate, m.EmergencyCollectionStatus, now),
		EmergencyAmount: m.EmergencyAmount(),
	}
}
