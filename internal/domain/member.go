package domain

import "github.com/shopspring/decimal"

const (
	MemberStatusActive   = "active"
	MemberStatusInactive = "inactive"
	MemberStatusPending  = "pending"
)

// Payment field statuses as stored on the member record.
const (
	PaymentFieldCompleted = "completed"
	PaymentFieldPending   = "pending"
)

// DefaultAnnualFee is the yearly membership fee used when none is configured.
var DefaultAnnualFee = decimal.NewFromInt(40)

// Member represents a registered member of the association.
//
// Collector is the display name of the assigned collector. It is a weak
// reference resolved by name lookup, not a foreign key.
type Member struct {
	ID           string  `json:"id" db:"id" validate:"required"`
	MemberNumber string  `json:"member_number" db:"member_number"`
	FullName     string  `json:"full_name" db:"full_name"`
	Status       string  `json:"status" db:"status"`
	Collector    *string `json:"collector" db:"collector"`

	YearlyPaymentAmount  decimal.NullDecimal `json:"yearly_payment_amount" db:"yearly_payment_amount"`
	YearlyPaymentDueDate NullDate            `json:"yearly_payment_due_date" db:"yearly_payment_due_date"`
	YearlyPaymentStatus  string              `json:"yearly_payment_status" db:"yearly_payment_status"`

	EmergencyCollectionAmount  decimal.NullDecimal `json:"emergency_collection_amount" db:"emergency_collection_amount"`
	EmergencyCollectionDueDate NullDate            `json:"emergency_collection_due_date" db:"emergency_collection_due_date"`
	EmergencyCollectionStatus  string              `json:"emergency_collection_status" db:"emergency_collection_status"`

	LastYearlyPaymentDate      NullDate            `json:"last_yearly_payment_date" db:"last_yearly_payment_date"`
	LastYearlyPaymentAmount    decimal.NullDecimal `json:"last_yearly_payment_amount" db:"last_yearly_payment_amount"`
	LastEmergencyPaymentDate   NullDate            `json:"last_emergency_payment_date" db:"last_emergency_payment_date"`
	LastEmergencyPaymentAmount decimal.NullDecimal `json:"last_emergency_payment_amount" db:"last_emergency_payment_amount"`

	CreatedAt NullDate `json:"created_at" db:"created_at"`
}

// CollectorName returns the assigned collector name, empty when unassigned.
func (m *Member) CollectorName() string {
	if m.Collector == nil {
		return ""
	}
	return *m.Collector
}

// YearlyAmount returns the member's yearly amount, falling back to fee when
// the field is unset.
func (m *Member) YearlyAmount(fee decimal.Decimal) decimal.Decimal {
	if m.YearlyPaymentAmount.Valid {
		return m.YearlyPaymentAmount.Decimal
	}
	return fee
}

// EmergencyAmount returns the emergency collection amount, zero when unset.
func (m *Member) EmergencyAmount() decimal.Decimal {
	if m.EmergencyCollectionAmount.Valid {
		return m.EmergencyCollectionAmount.Decimal
	}
	return decimal.Zero
}
