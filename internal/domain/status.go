package domain

import "github.com/shopspring/decimal"

// PaymentState is the derived state of a payment obligation. It is computed
// from the due date and status fields and never stored.
type PaymentState string

const (
	StatePaid     PaymentState = "paid"
	StatePending  PaymentState = "pending"
	StateDue      PaymentState = "due"
	StateOverdue  PaymentState = "overdue"
	StateCritical PaymentState = "critical"
)

// PaymentStates lists every state in escalation order.
var PaymentStates = []PaymentState{StatePaid, StatePending, StateDue, StateOverdue, StateCritical}

// Classification is the result of classifying one payment obligation.
// DaysUntilDeactivation is only set for the critical state.
type Classification struct {
	State                 PaymentState `json:"state"`
	DaysUntilDeactivation *int         `json:"days_until_deactivation,omitempty"`
	DeactivationPending   bool         `json:"deactivation_pending,omitempty"`
}

// MemberStatus is the classification of both payment categories for a member,
// with the amount owed for each.
type MemberStatus struct {
	MemberID        string          `json:"member_id"`
	MemberNumber    string          `json:"member_number"`
	Collector       string          `json:"collector,omitempty"`
	Yearly          Classification  `json:"yearly"`
	YearlyAmount    decimal.Decimal `json:"yearly_amount"`
	Emergency       Classification  `json:"emergency"`
	EmergencyAmount decimal.Decimal `json:"emergency_amount"`
}
