package health

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Status reports one backing dependency of the credential core.
type Status struct {
	Component string `json:"component"`
	Healthy   bool   `json:"healthy"`
	Detail    string `json:"detail,omitempty"`
}

// Probe pings the credential store and the OTP/session cache. Hosts embed it
// in their readiness endpoints; the seed and migrate commands gate on it.
type Probe struct {
	db      *gorm.DB
	redis   redis.UniversalClient
	timeout time.Duration
}

func NewProbe(db *gorm.DB, redisClient redis.UniversalClient, timeout time.Duration) *Probe {
	if timeout <= 0 {
		timeout = time.Second
	}
	return &Probe{db: db, redis: redisClient, timeout: timeout}
}

// Check pings every dependency and reports per-component results. The overall
// flag is true only when all components answered.
func (p *Probe) Check(ctx context.Context) (bool, []Status) {
	statuses := []Status{
		p.checkStore(ctx),
		p.checkCache(ctx),
	}
	healthy := true
	for _, s := range statuses {
		if !s.Healthy {
			healthy = false
		}
	}
	return healthy, statuses
}

func (p *Probe) checkStore(ctx context.Context) Status {
	s := Status{Component: "credential_store", Healthy: true}
	if p.db == nil {
		s.Healthy = false
		s.Detail = "not configured"
		return s
	}
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	sqlDB, err := p.db.DB()
	if err != nil {
		s.Healthy = false
		s.Detail = err.Error()
		return s
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		s.Healthy = false
		s.Detail = err.Error()
	}
	return s
}

func (p *Probe) checkCache(ctx context.Context) Status {
	s := Status{Component: "otp_cache", Healthy: true}
	if p.redis == nil {
		s.Healthy = false
		s.Detail = "not configured"
		return s
	}
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	if err := p.redis.Ping(ctx).Err(); err != nil {
		s.Healthy = false
		s.Detail = err.Error()
	}
	return s
}
