package app

import (
	"log/slog"

	"github.com/applymate/applymate-backend/internal/config"
	"github.com/applymate/applymate-backend/internal/health"
	"github.com/applymate/applymate-backend/internal/service"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// App bundles the wired credential core for the host application. The HTTP
// surface lives with the host; this module is mounted in-process.
type App struct {
	Config *config.Config
	Logger *slog.Logger
	Auth   service.AuthServiceInterface
	Health *health.Probe
	DB     *gorm.DB
	Redis  redis.UniversalClient
}

func New(cfg *config.Config, logger *slog.Logger, auth service.AuthServiceInterface, probe *health.Probe, db *gorm.DB, redisClient redis.UniversalClient) *App {
	return &App{Config: cfg, Logger: logger, Auth: auth, Health: probe, DB: db, Redis: redisClient}
}

// Close releases the store and cache clients. Safe to call once at shutdown.
func (a *App) Close() error {
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			return err
		}
	}
	if a.DB != nil {
		sqlDB, err := a.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}
