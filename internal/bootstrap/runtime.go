// Package bootstrap wires the core components together at process start.
package bootstrap

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"prism/internal/config"
	"prism/internal/observability"
	"prism/internal/realtime"
	"prism/internal/seed"
	"prism/internal/session"
	"prism/internal/store"

	"github.com/redis/go-redis/v9"
)

// Options control runtime initialization behavior.
type Options struct {
	SeedDemoData bool
}

// Runtime holds the wired core components. Constructed once at process
// start; every consumer receives these by handle, never through globals.
type Runtime struct {
	Store    *store.Store
	Sessions *session.Registry
	Hub      *realtime.Hub
	Bridge   *realtime.Bridge
	Redis    *redis.Client

	tracingShutdown func(context.Context) error
}

// InitRuntime builds the entity store, session registry, and broadcast hub
// from cfg, connects Redis when configured, and optionally seeds demo data.
func InitRuntime(cfg *config.Config, opts Options) (*Runtime, error) {
	tracingShutdown, err := observability.InitTracing(observability.TracingConfig{
		ServiceName:  "prism-core",
		Environment:  cfg.Env,
		Enabled:      cfg.TracingEnabled,
		Exporter:     cfg.TracingExporter,
		OTLPEndpoint: cfg.OTLPEndpoint,
		SamplerRatio: cfg.TracingSampler,
	})
	if err != nil {
		return nil, fmt.Errorf("tracing init failed: %w", err)
	}

	s := store.New()
	registry := session.NewRegistry(s, []byte(cfg.SessionSecret), cfg.SessionTTL)
	hub := realtime.NewHub(realtime.Config{
		HeartbeatInterval: cfg.HeartbeatInterval,
		ConnBuffer:        cfg.HubConnBuffer,
		MaxConns:          cfg.HubMaxConns,
	})

	rdb := initRedis(cfg.RedisURL)
	bridge := realtime.NewBridge(rdb)

	if opts.SeedDemoData {
		if err := seed.Run(context.Background(), s, seed.Options{RandomUsers: 8, RandomPosts: 24}); err != nil {
			return nil, fmt.Errorf("failed to seed demo data: %w", err)
		}
	}

	return &Runtime{
		Store:           s,
		Sessions:        registry,
		Hub:             hub,
		Bridge:          bridge,
		Redis:           rdb,
		tracingShutdown: tracingShutdown,
	}, nil
}

// Shutdown releases runtime resources.
func (r *Runtime) Shutdown(ctx context.Context) error {
	if err := r.Hub.Shutdown(ctx); err != nil {
		return err
	}
	if r.Redis != nil {
		if err := r.Redis.Close(); err != nil {
			log.Printf("redis close error: %v", err)
		}
	}
	if r.tracingShutdown != nil {
		return r.tracingShutdown(ctx)
	}
	return nil
}

// initRedis connects to Redis when an address is configured. Returns nil
// when unconfigured or unreachable; the bridge degrades to local-only.
func initRedis(addr string) *redis.Client {
	if addr == "" {
		return nil
	}

	var opts *redis.Options
	if strings.Contains(addr, "://") {
		parsed, err := redis.ParseURL(addr)
		if err != nil {
			log.Printf("Redis connection warning: invalid REDIS_URL %q: %v (continuing without bridge)", addr, err)
			return nil
		}
		opts = parsed
	} else {
		opts = &redis.Options{Addr: addr}
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Redis connection warning: %v (continuing without bridge)", err)
		return nil
	}
	log.Println("Redis connected successfully")
	return client
}
