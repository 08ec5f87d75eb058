package repository

import (
	"context"

	"github.com/segyhp/dues-engine/internal/domain"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Roles come from the linked user's grants, so a collector whose user_id is
// null or dangling has an empty role list.
const collectorQuery = `
	SELECT
		c.id::text AS id,
		c.name,
		COALESCE(c.user_id::text, '') AS user_id,
		c.active,
		COALESCE(c.sync_status, '') AS sync_status,
		COALESCE(c.enhanced_roles, '{}') AS enhanced_roles,
		COALESCE(array_agg(ur.role::text ORDER BY ur.role) FILTER (WHERE ur.role IS NOT NULL), '{}') AS roles
	FROM collectors c
	LEFT JOIN user_roles ur ON ur.user_id = c.user_id
`

type collectorRow struct {
	ID            string         `db:"id"`
	Name          string         `db:"name"`
	UserID        string         `db:"user_id"`
	Active        bool           `db:"active"`
	SyncStatus    string         `db:"sync_status"`
	EnhancedRoles pq.StringArray `db:"enhanced_roles"`
	Roles         pq.StringArray `db:"roles"`
}

func (row *collectorRow) toDomain() *domain.Collector {
	roles := make([]domain.Role, 0, len(row.Roles))
	for _, r := range row.Roles {
		roles = append(roles, domain.Role(r))
	}

	return &domain.Collector{
		ID:            row.ID,
		Name:          row.Name,
		UserID:        row.UserID,
		Active:        row.Active,
		Roles:         roles,
		EnhancedRoles: []string(row.EnhancedRoles),
		SyncStatus:    row.SyncStatus,
	}
}

type collectorRepository struct {
	db *sqlx.DB
}

func NewCollectorRepository(db *sqlx.DB) CollectorRepository {
	return &collectorRepository{db: db}
}

func (r *collectorRepository) List(ctx context.Context) ([]*domain.Collector, error) {
	query := collectorQuery + `
		GROUP BY c.id
		ORDER BY c.created_at, c.id
	`

	var rows []collectorRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, err
	}

	collectors := make([]*domain.Collector, 0, len(rows))
	for i := range rows {
		collectors = append(collectors, rows[i].toDomain())
	}

	return collectors, nil
}

func (r *collectorRepository) GetByName(ctx context.Context, name string) (*domain.Collector, error) {
	query := collectorQuery + `
		WHERE c.name = $1
		GROUP BY c.id
		ORDER BY c.created_at, c.id
		LIMIT 1
	`

	var row collectorRow
	if err := r.db.GetContext(ctx, &row, query, name); err != nil {
		return nil, err
	}

	return row.toDomain(), nil
}
