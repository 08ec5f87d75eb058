package domain

import "github.com/shopspring/decimal"

const (
	PaymentRequestPending  = "pending"
	PaymentRequestApproved = "approved"
	PaymentRequestRejected = "rejected"
)

const (
	PaymentTypeYearly    = "yearly"
	PaymentTypeEmergency = "emergency"
)

const (
	PaymentMethodCash         = "cash"
	PaymentMethodBankTransfer = "bank_transfer"
)

// PaymentRequest is a single payment submission awaiting or past approval.
type PaymentRequest struct {
	ID            string          `json:"id" db:"id" validate:"required"`
	MemberID      string          `json:"member_id" db:"member_id" validate:"required"`
	CollectorID   string          `json:"collector_id" db:"collector_id"`
	Amount        decimal.Decimal `json:"amount" db:"amount"`
	PaymentType   string          `json:"payment_type" db:"payment_type"`
	PaymentMethod string          `json:"payment_method" db:"payment_method"`
	Status        string          `json:"status" db:"status"`
	CreatedAt     NullDate        `json:"created_at" db:"created_at"`
	ApprovedAt    NullDate        `json:"approved_at" db:"approved_at"`
	ApprovedBy    *string         `json:"approved_by" db:"approved_by"`
}

// IsPending reports whether the request still awaits an admin decision.
func (p *PaymentRequest) IsPending() bool {
	return p.Status == PaymentRequestPending
}
