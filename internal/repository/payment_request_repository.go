package repository

import (
	"context"

	"github.com/segyhp/dues-engine/internal/domain"

	"github.com/jmoiron/sqlx"
)

const paymentRequestColumns = `
	id::text AS id, member_id::text AS member_id,
	COALESCE(collector_id::text, '') AS collector_id,
	amount,
	COALESCE(payment_type, '') AS payment_type,
	COALESCE(payment_method, '') AS payment_method,
	status,
	created_at, approved_at, approved_by::text AS approved_by`

type paymentRequestRepository struct {
	db *sqlx.DB
}

func NewPaymentRequestRepository(db *sqlx.DB) PaymentRequestRepository {
	return &paymentRequestRepository{db: db}
}

func (r *paymentRequestRepository) List(ctx context.Context) ([]*domain.PaymentRequest, error) {
	query := `SELECT ` + paymentRequestColumns + `
		FROM payment_requests
		ORDER BY created_at, id
	`

	requests := make([]*domain.PaymentRequest, 0)
	if err := r.db.SelectContext(ctx, &requests, query); err != nil {
		return nil, err
	}

	return requests, nil
}

func (r *paymentRequestRepository) ListByStatus(ctx context.Context, status string) ([]*domain.PaymentRequest, error) {
	query := `SELECT ` + paymentRequestColumns + `
		FROM payment_requests
		WHERE status = $1
		ORDER BY created_at, id
	`

	requests := make([]*domain.PaymentRequest, 0)
	if err := r.db.SelectContext(ctx, &requests, query, status); err != nil {
		return nil, err
	}

	return requests, nil
}
