package repository

import (
	"context"

	"github.com/segyhp/dues-engine/internal/domain"
)

// MemberRepository defines read access to member records
type MemberRepository interface {
	// List returns every member ordered by member number
	List(ctx context.Context) ([]*domain.Member, error)

	// ListByCollector returns the members assigned to the named collector
	ListByCollector(ctx context.Context, collectorName string) ([]*domain.Member, error)

	// GetByID retrieves a member by identifier
	GetByID(ctx context.Context, id string) (*domain.Member, error)
}

// CollectorRepository defines read access to collector records
type CollectorRepository interface {
	// List returns every collector together with the roles of its linked user
	List(ctx context.Context) ([]*domain.Collector, error)

	// GetByName retrieves the first collector with the given display name
	GetByName(ctx context.Context, name string) (*domain.Collector, error)
}

// PaymentRequestRepository defines read access to payment requests
type PaymentRequestRepository interface {
	// List returns every payment request, oldest first
	List(ctx context.Context) ([]*domain.PaymentRequest, error)

	// ListByStatus returns the payment requests in the given status
	ListByStatus(ctx context.Context, status string) ([]*domain.PaymentRequest, error)
}

// RoleRepository defines read access to role grants
type RoleRepository interface {
	// List returns every role assignment row
	List(ctx context.Context) ([]domain.RoleAssignment, error)
}
