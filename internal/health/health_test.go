package health

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newProbeDeps(t *testing.T) (*gorm.DB, redis.UniversalClient, *miniredis.Miniredis) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	m := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: m.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return db, client, m
}

func TestProbeHealthy(t *testing.T) {
	db, client, _ := newProbeDeps(t)
	probe := NewProbe(db, client, time.Second)

	healthy, statuses := probe.Check(context.Background())
	if !healthy {
		t.Fatalf("expected healthy probe, got %+v", statuses)
	}
	if len(statuses) != 2 {
		t.Fatalf("expected two component statuses, got %d", len(statuses))
	}
	for _, s := range statuses {
		if !s.Healthy || s.Detail != "" {
			t.Fatalf("unexpected status %+v", s)
		}
	}
}

func TestProbeReportsCacheDown(t *testing.T) {
	db, client, m := newProbeDeps(t)
	probe := NewProbe(db, client, time.Second)

	m.Close()

	healthy, statuses := probe.Check(context.Background())
	if healthy {
		t.Fatal("expected unhealthy probe with cache down")
	}
	for _, s := range statuses {
		switch s.Component {
		case "credential_store":
			if !s.Healthy {
				t.Fatalf("store should stay healthy: %+v", s)
			}
		case "otp_cache":
			if s.Healthy {
				t.Fatal("cache should report unhealthy")
			}
			if s.Detail == "" {
				t.Fatal("expected failure detail")
			}
		default:
			t.Fatalf("unexpected component %q", s.Component)
		}
	}
}

func TestProbeReportsMissingDependencies(t *testing.T) {
	probe := NewProbe(nil, nil, time.Second)

	healthy, statuses := probe.Check(context.Background())
	if healthy {
		t.Fatal("expected unhealthy probe with nothing configured")
	}
	for _, s := range statuses {
		if s.Healthy {
			t.Fatalf("expected unhealthy status for %q", s.Component)
		}
		if s.Detail != "not configured" {
			t.Fatalf("unexpected detail %q", s.Detail)
		}
	}
}
