package repository

import (
	"context"

	"github.com/segyhp/dues-engine/internal/domain"

	"github.com/jmoiron/sqlx"
)

// Status and text columns are nullable in older rows; they read as empty.
const memberColumns = `
	id::text AS id,
	COALESCE(member_number, '') AS member_number,
	COALESCE(full_name, '') AS full_name,
	COALESCE(status, '') AS status,
	collector,
	yearly_payment_amount, yearly_payment_due_date,
	COALESCE(yearly_payment_status, '') AS yearly_payment_status,
	emergency_collection_amount, emergency_collection_due_date,
	COALESCE(emergency_collection_status, '') AS emergency_collection_status,
	last_yearly_payment_date, last_yearly_payment_amount,
	last_emergency_payment_date, last_emergency_payment_amount,
	created_at`

type memberRepository struct {
	db *sqlx.DB
}

func NewMemberRepository(db *sqlx.DB) MemberRepository {
	return &memberRepository{db: db}
}

func (r *memberRepository) List(ctx context.Context) ([]*domain.Member, error) {
	query := `SELECT ` + memberColumns + `
		FROM members
		ORDER BY member_number, id
	`

	members := make([]*domain.Member, 0)
	if err := r.db.SelectContext(ctx, &members, query); err != nil {
		return nil, err
	}

	return members, nil
}

func (r *memberRepository) ListByCollector(ctx context.Context, collectorName string) ([]*domain.Member, error) {
	query := `SELECT ` + memberColumns + `
		FROM members
		WHERE collector = $1
		ORDER BY member_number, id
	`

	members := make([]*domain.Member, 0)
	if err := r.db.SelectContext(ctx, &members, query, collectorName); err != nil {
		return nil, err
	}

	return members, nil
}

func (r *memberRepository) GetByID(ctx context.Context, id string) (*domain.Member, error) {
	query := `SELECT ` + memberColumns + `
		FROM members
		WHERE id = $1
	`

	var member domain.Member
	if err := r.db.GetContext(ctx, &member, query, id); err != nil {
		return nil, err
	}

	return &member, nil
}
