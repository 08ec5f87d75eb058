// Package reconcile classifies member payment obligations, aggregates
// collection statistics and audits member, collector, payment request and
// role data for inconsistencies.
//
// Every function here is pure. The current time is always passed in by the
// caller and no state is shared between calls.
package reconcile

import (
	"fmt"

	"github.com/segyhp/dues-engine/internal/domain"

	"github.com/shopspring/decimal"
)

// Policy holds the business constants reconciliation works with.
type Policy struct {
	// AnnualFee is the yearly membership fee.
	AnnualFee decimal.Decimal

	// GracePeriodDays is how long after the due date a payment stays overdue
	// before turning critical.
	GracePeriodDays int

	// DeactivationNoticeDays is how long a critical payment may stay unpaid
	// before the account becomes eligible for deactivation.
	DeactivationNoticeDays int

	// RecentActivityDays is the look-back window for recent payments.
	RecentActivityDays int
}

// DefaultPolicy returns the association's standard policy.
func DefaultPolicy() Policy {
	return Policy{
		AnnualFee:              domain.DefaultAnnualFee,
		GracePeriodDays:        28,
		DeactivationNoticeDays: 7,
		RecentActivityDays:     30,
	}
}

// Validate validates the policy
func (p Policy) Validate() error {
	if p.AnnualFee.IsNegative() {
		return fmt.Errorf("annual fee must not be negative, got %s", p.AnnualFee)
	}
	if p.GracePeriodDays < 0 {
		return fmt.Errorf("grace period must not be negative, got %d", p.GracePeriodDays)
	}
	if p.DeactivationNoticeDays < 0 {
		return fmt.Errorf("deactivation notice must not be negative, got %d", p.DeactivationNoticeDays)
	}
	if p.RecentActivityDays < 0 {
		return fmt.Errorf("recent activity window must not be negative, got %d", p.RecentActivityDays)
	}
	return nil
}
