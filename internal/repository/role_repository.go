package repository

import (
	"context"

	"github.com/segyhp/dues-engine/internal/domain"

	"github.com/jmoiron/sqlx"
)

type roleRepository struct {
	db *sqlx.DB
}

func NewRoleRepository(db *sqlx.DB) RoleRepository {
	return &roleRepository{db: db}
}

func (r *roleRepository) List(ctx context.Context) ([]domain.RoleAssignment, error) {
	query := `
		SELECT user_id::text AS user_id, role::text AS role
		FROM user_roles
		ORDER BY created_at, user_id, role
	`

	assignments := make([]domain.RoleAssignment, 0)
	if err := r.db.SelectContext(ctx, &assignments, query); err != nil {
		return nil, err
	}

	return assignments, nil
}
