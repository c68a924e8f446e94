// Package db owns the Postgres pool that backs the catalog and the goose
// migrations that create and seed it.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as database/sql driver

	"curriculum-backend/internal/shared/telemetry"
)

// Profile names a pool sizing preset.
type Profile string

const (
	ProfileServer  Profile = "server"
	ProfileLambda  Profile = "lambda"
	ProfileMigrate Profile = "migrate"
)

const defaultPingTimeout = 5 * time.Second

// Options controls pool sizing and the connect-time ping.
type Options struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	PingTimeout     time.Duration
}

var profiles = map[Profile]Options{
	ProfileServer:  {MaxOpenConns: 4, MaxIdleConns: 2, ConnMaxLifetime: time.Hour, ConnMaxIdleTime: 2 * time.Minute, PingTimeout: defaultPingTimeout},
	ProfileLambda:  {MaxOpenConns: 2, MaxIdleConns: 1, ConnMaxLifetime: 15 * time.Minute, ConnMaxIdleTime: 30 * time.Second, PingTimeout: 3 * time.Second},
	ProfileMigrate: {MaxOpenConns: 1, MaxIdleConns: 1, ConnMaxLifetime: time.Hour, ConnMaxIdleTime: 2 * time.Minute, PingTimeout: defaultPingTimeout},
}

// DefaultOptions returns the preset for p. Unknown profiles get the server preset.
func DefaultOptions(p Profile) Options {
	if opts, ok := profiles[p]; ok {
		return opts
	}
	return profiles[ProfileServer]
}

// OptionsFromEnv applies DB_* overrides on top of base.
func OptionsFromEnv(base Options) Options {
	opts := base
	overrideInt("DB_MAX_OPEN_CONNS", &opts.MaxOpenConns)
	overrideInt("DB_MAX_IDLE_CONNS", &opts.MaxIdleConns)
	overrideDuration("DB_CONN_MAX_LIFETIME", &opts.ConnMaxLifetime)
	overrideDuration("DB_CONN_MAX_IDLE_TIME", &opts.ConnMaxIdleTime)
	overrideDuration("DB_PING_TIMEOUT", &opts.PingTimeout)
	return opts
}

var openDB = sql.Open

// Connect opens a pool for databaseURL and pings it before returning.
func Connect(ctx context.Context, databaseURL string, opts Options) (*sql.DB, error) {
	if strings.TrimSpace(databaseURL) == "" {
		return nil, fmt.Errorf("DATABASE_URL is empty")
	}
	pool, err := openDB("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	opts.apply(pool)

	timeout := opts.PingTimeout
	if timeout <= 0 {
		timeout = defaultPingTimeout
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := pool.PingContext(pingCtx); err != nil {
		_ = pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	stats := pool.Stats()
	telemetry.Info("db.connected", map[string]any{
		"max_open": stats.MaxOpenConnections,
		"open":     stats.OpenConnections,
		"idle":     stats.Idle,
	})
	return pool, nil
}

var (
	sharedMu   sync.Mutex
	sharedPool *sql.DB
)

// GetSingleton returns the process-wide pool, connecting on first use.
// A failed connect is not cached; the next call tries again.
func GetSingleton(ctx context.Context, databaseURL string, opts Options) (*sql.DB, error) {
	sharedMu.Lock()
	defer sharedMu.Unlock()
	if sharedPool != nil {
		return sharedPool, nil
	}
	pool, err := Connect(ctx, databaseURL, opts)
	if err != nil {
		return nil, err
	}
	sharedPool = pool
	telemetry.Info("db.singleton_init", nil)
	return sharedPool, nil
}

func (o Options) apply(pool *sql.DB) {
	server := profiles[ProfileServer]
	if o.MaxOpenConns <= 0 {
		o.MaxOpenConns = server.MaxOpenConns
	}
	if o.MaxIdleConns <= 0 {
		o.MaxIdleConns = server.MaxIdleConns
	}
	if o.ConnMaxLifetime <= 0 {
		o.ConnMaxLifetime = server.ConnMaxLifetime
	}
	pool.SetMaxOpenConns(o.MaxOpenConns)
	pool.SetMaxIdleConns(o.MaxIdleConns)
	pool.SetConnMaxLifetime(o.ConnMaxLifetime)
	if o.ConnMaxIdleTime > 0 {
		pool.SetConnMaxIdleTime(o.ConnMaxIdleTime)
	}
}

func overrideInt(key string, dst *int) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		telemetry.Warn("db.invalid_env", map[string]any{"key": key, "error": err})
		return
	}
	*dst = v
}

func overrideDuration(key string, dst *time.Duration) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		telemetry.Warn("db.invalid_env", map[string]any{"key": key, "error": err})
		return
	}
	*dst = v
}
