package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/segyhp/dues-engine/internal/domain"
	customError "github.com/segyhp/dues-engine/pkg/errors"
)

const latestAuditKey = "dues:audit:latest"

// AuditCache keeps the most recent audit report in Redis so dashboards can
// read it without re-running the audit.
type AuditCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewAuditCache(client redis.Cmdable, ttl time.Duration) *AuditCache {
	return &AuditCache{
		client: client,
		ttl:    ttl,
	}
}

// Save replaces the stored report.
func (c *AuditCache) Save(ctx context.Context, report *domain.AuditReport) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return customError.WrapCacheError(err)
	}

	if err := c.client.Set(ctx, latestAuditKey, payload, c.ttl).Err(); err != nil {
		return customError.WrapCacheError(err)
	}

	return nil
}

// Latest returns the stored report, or ErrReportNotFound when none has been
// saved or it has expired.
func (c *AuditCache) Latest(ctx context.Context) (*domain.AuditReport, error) {
	payload, err := c.client.Get(ctx, latestAuditKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, customError.WrapReportNotFound()
	}
	if err != nil {
		return nil, customError.WrapCacheError(err)
	}

	var report domain.AuditReport
	if err := json.Unmarshal(payload, &report); err != nil {
		return nil, customError.WrapCacheError(err)
	}

	return &report, nil
}
