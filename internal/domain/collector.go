package domain

// Collector represents an agent responsible for collecting dues from a set
// of members. Members reference a collector by Name.
type Collector struct {
	ID            string   `json:"id" db:"id" validate:"required"`
	Name          string   `json:"name" db:"name" validate:"required"`
	UserID        string   `json:"user_id" db:"user_id"`
	Active        bool     `json:"active" db:"active"`
	Roles         []Role   `json:"roles" db:"-" validate:"dive,oneof=admin collector member"`
	EnhancedRoles []string `json:"enhanced_roles" db:"-"`
	SyncStatus    string   `json:"sync_status" db:"sync_status"`
}

// CollectorSummary is the aggregate for a single collector's members.
// CollectorID is empty for the bucket of unassigned members.
type CollectorSummary struct {
	CollectorID string   `json:"collector_id,omitempty"`
	Name        string   `json:"name"`
	Active      bool     `json:"active"`
	Summary     *Summary `json:"summary"`
}
