package domain

import "fmt"

// Snapshot bundles the four read shapes consumed by reconciliation. The
// collections may be fetched moments apart; no cross-table consistency is
// assumed.
type Snapshot struct {
	Members         []*Member         `json:"members"`
	Collectors      []*Collector      `json:"collectors"`
	PaymentRequests []*PaymentRequest `json:"payment_requests"`
	RoleAssignments []RoleAssignment  `json:"role_assignments"`
}

// MalformedDates describes every date field that held text which could not
// be parsed and was treated as null.
func (s *Snapshot) MalformedDates() []string {
	var out []string

	check := func(owner, id, field string, d NullDate) {
		if d.Malformed() {
			out = append(out, fmt.Sprintf("%s %s: %s=%q", owner, id, field, d.Raw))
		}
	}

	for _, m := range s.Members {
		if m == nil {
			continue
		}
		check("member", m.ID, "yearly_payment_due_date", m.YearlyPaymentDueDate)
		check("member", m.ID, "emergency_collection_due_date", m.EmergencyCollectionDueDate)
		check("member", m.ID, "last_yearly_payment_date", m.LastYearlyPaymentDate)
		check("member", m.ID, "last_emergency_payment_date", m.LastEmergencyPaymentDate)
		check("member", m.ID, "created_at", m.CreatedAt)
	}

	for _, p := range s.PaymentRequests {
		if p == nil {
			continue
		}
		check("payment_request", p.ID, "created_at", p.CreatedAt)
		check("payment_request", p.ID, "approved_at", p.ApprovedAt)
	}

	return out
}
