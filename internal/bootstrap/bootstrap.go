// Package bootstrap opens the external connections shared by the server and
// the scheduler and wires them into a reconciliation service.
package bootstrap

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/segyhp/dues-engine/internal/cache"
	"github.com/segyhp/dues-engine/internal/config"
	"github.com/segyhp/dues-engine/internal/repository"
	"github.com/segyhp/dues-engine/internal/service"
)

func InitDB(cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.GetConnMaxLifetime())

	return db, nil
}

func InitRedis(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

// NewService builds the Postgres repositories and the Redis audit cache and
// returns the service on top of them.
func NewService(db *sqlx.DB, rdb *redis.Client, cfg *config.Config, logger *zap.Logger) *service.ReconciliationService {
	return service.NewReconciliationService(
		repository.NewMemberRepository(db),
		repository.NewCollectorRepository(db),
		repository.NewPaymentRequestRepository(db),
		repository.NewRoleRepository(db),
		cache.NewAuditCache(rdb, cfg.GetAuditCacheTTL()),
		service.PolicyFromConfig(cfg),
		logger,
	)
}
