package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/segyhp/dues-engine/internal/bootstrap"
	"github.com/segyhp/dues-engine/internal/config"
	"github.com/segyhp/dues-engine/internal/scheduler"
	"github.com/segyhp/dues-engine/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zl, err := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	zl.Info("starting reconciliation scheduler", zap.String("timezone", cfg.Scheduler.Timezone))

	db, err := bootstrap.InitDB(cfg)
	if err != nil {
		zl.Fatal("failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	redisClient := bootstrap.InitRedis(cfg)
	defer redisClient.Close()

	svc := bootstrap.NewService(db, redisClient, cfg, zl)
	jobs := scheduler.NewJobs(svc, cfg.GetLocation(), zl)

	c := scheduler.New(cfg, zl)
	if err := jobs.Register(c, cfg); err != nil {
		zl.Fatal("failed to schedule jobs", zap.Error(err))
	}

	c.Start()
	zl.Info("scheduler started")

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zl.Info("shutting down scheduler")
	<-c.Stop().Done()
	zl.Info("scheduler stopped")
}
