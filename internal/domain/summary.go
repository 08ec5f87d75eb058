package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Summary holds collection statistics for a set of members, either all
// members or those of one collector.
type Summary struct {
	Scope        string `json:"scope,omitempty"`
	TotalMembers int    `json:"total_members"`

	MembersByStatus map[string]int `json:"members_by_status"`

	YearlyStats    YearlyStats    `json:"yearly_stats"`
	EmergencyStats EmergencyStats `json:"emergency_stats"`

	// YearlyStates counts members by the derived state of their yearly payment.
	YearlyStates map[PaymentState]int `json:"yearly_states"`

	// PendingMemberPayments counts members whose own yearly status is pending.
	// It is independent of PaymentRequests.Pending.
	PendingMemberPayments int `json:"pending_member_payments"`

	PaymentRequests PaymentRequestStats `json:"payment_requests"`

	RecentActivity []RecentPayment `json:"recent_activity"`
}

type YearlyStats struct {
	TotalDue        decimal.Decimal `json:"total_due"`
	CollectedAmount decimal.Decimal `json:"collected_amount"`
	RemainingAmount decimal.Decimal `json:"remaining_amount"`
	CompletedCount  int             `json:"completed_count"`
	PercentComplete int             `json:"percent_complete"`
}

type EmergencyStats struct {
	TotalDue        decimal.Decimal `json:"total_due"`
	CollectedAmount decimal.Decimal `json:"collected_amount"`
	RemainingAmount decimal.Decimal `json:"remaining_amount"`
	CompletedCount  int             `json:"completed_count"`
}

// PaymentRequestStats partitions payment request rows.
type PaymentRequestStats struct {
	Total         int             `json:"total"`
	Pending       int             `json:"pending"`
	Approved      int             `json:"approved"`
	Rejected      int             `json:"rejected"`
	PendingAmount decimal.Decimal `json:"pending_amount"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	AverageAmount decimal.Decimal `json:"average_amount"`
	ByMethod      map[string]int  `json:"by_method"`
	ByType        map[string]int  `json:"by_type"`
}

// RecentPayment is a member's last payment in one category that falls inside
// the recent-activity window.
type RecentPayment struct {
	MemberID     string          `json:"member_id"`
	MemberNumber string          `json:"member_number"`
	Category     string          `json:"category"`
	Date         time.Time       `json:"date"`
	Amount       decimal.Decimal `json:"amount"`
}
