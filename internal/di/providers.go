package di

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/applymate/applymate-backend/internal/app"
	"github.com/applymate/applymate-backend/internal/config"
	"github.com/applymate/applymate-backend/internal/database"
	"github.com/applymate/applymate-backend/internal/health"
	"github.com/applymate/applymate-backend/internal/observability"
	"github.com/applymate/applymate-backend/internal/repository"
	"github.com/applymate/applymate-backend/internal/security"
	"github.com/applymate/applymate-backend/internal/service"
)

var ConfigSet = wire.NewSet(config.Load)

var ObservabilitySet = wire.NewSet(provideAppLogger)

var InfraSet = wire.NewSet(
	provideRuntimeDB,
	provideRedisClient,
	provideHealthProbe,
)

var RepositorySet = wire.NewSet(
	repository.NewUserRepository,
	repository.NewOtpCodeRepository,
)

var SecuritySet = wire.NewSet(provideJWTManager)

var ServiceSet = wire.NewSet(
	provideOtpStore,
	provideRefreshSessionStore,
	provideOtpLedger,
	provideTokenService,
	service.NewDevOtpNotifier,
	wire.Bind(new(service.OtpNotifier), new(*service.DevOtpNotifier)),
	service.NewAuthService,
	wire.Bind(new(service.AuthServiceInterface), new(*service.AuthService)),
)

var AppSet = wire.NewSet(app.New)

type MigrationRunner struct {
	cfg *config.Config
	db  *gorm.DB
}

func NewMigrationRunner(cfg *config.Config, db *gorm.DB) *MigrationRunner {
	return &MigrationRunner{cfg: cfg, db: db}
}

func (m *MigrationRunner) Run() error {
	if err := database.Migrate(m.db); err != nil {
		return err
	}
	fmt.Println("migration complete")
	return nil
}

func provideAppLogger(cfg *config.Config) *slog.Logger {
	return observability.NewLogger(cfg.LogLevel)
}

func provideOpenDB(cfg *config.Config) (*gorm.DB, error) {
	return database.Open(cfg)
}

func provideRuntimeDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := database.Open(cfg)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func provideHealthProbe(db *gorm.DB, client redis.UniversalClient) *health.Probe {
	return health.NewProbe(db, client, time.Second)
}

func provideRedisClient(cfg *config.Config) redis.UniversalClient {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
}

func provideJWTManager(cfg *config.Config) *security.JWTManager {
	return security.NewJWTManager(cfg.JWTIssuer, cfg.JWTAudience, cfg.JWTAccessSecret, cfg.JWTRefreshSecret)
}

func provideOtpStore(client redis.UniversalClient) service.OtpStore {
	return service.NewRedisOtpStore(client, "otp")
}

func provideRefreshSessionStore(client redis.UniversalClient) service.RefreshSessionStore {
	return service.NewRedisRefreshSessionStore(client, "refresh")
}

func provideOtpLedger(cfg *config.Config, store service.OtpStore, audit repository.OtpCodeRepository) *service.OtpLedger {
	return service.NewOtpLedger(store, audit, cfg.OtpTTL)
}

func provideTokenService(cfg *config.Config, jwtMgr *security.JWTManager, sessions service.RefreshSessionStore) *service.TokenService {
	return service.NewTokenService(jwtMgr, sessions, cfg.RefreshTokenPepper, cfg.JWTAccessTTL, cfg.JWTRefreshTTL)
}
