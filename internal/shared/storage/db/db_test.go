package db

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

// withMockPool routes openDB to sqlmock pools and returns the mocks in open order.
func withMockPool(t *testing.T, configure ...func(sqlmock.Sqlmock)) *[]sqlmock.Sqlmock {
	t.Helper()
	var mocks []sqlmock.Sqlmock
	prev := openDB
	openDB = func(driverName, dsn string) (*sql.DB, error) {
		pool, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		if err != nil {
			return nil, err
		}
		if i := len(mocks); i < len(configure) {
			configure[i](mock)
		}
		mocks = append(mocks, mock)
		return pool, nil
	}
	t.Cleanup(func() { openDB = prev })
	return &mocks
}

func resetSingleton(t *testing.T) {
	t.Helper()
	sharedMu.Lock()
	sharedPool = nil
	sharedMu.Unlock()
	t.Cleanup(func() {
		sharedMu.Lock()
		sharedPool = nil
		sharedMu.Unlock()
	})
}

func TestDefaultOptionsProfiles(t *testing.T) {
	if got := DefaultOptions(ProfileMigrate).MaxOpenConns; got != 1 {
		t.Fatalf("migrate profile should use a single connection, got %d", got)
	}
	if got := DefaultOptions(ProfileLambda).PingTimeout; got != 3*time.Second {
		t.Fatalf("lambda ping timeout = %s", got)
	}
	if DefaultOptions("unknown") != DefaultOptions(ProfileServer) {
		t.Fatalf("unknown profile should fall back to server preset")
	}
}

func TestConnectAppliesEnvOverrides(t *testing.T) {
	withMockPool(t, func(m sqlmock.Sqlmock) { m.ExpectPing() })
	t.Setenv("DB_MAX_OPEN_CONNS", "7")
	t.Setenv("DB_MAX_IDLE_CONNS", "3")
	t.Setenv("DB_CONN_MAX_LIFETIME", "20m")
	t.Setenv("DB_CONN_MAX_IDLE_TIME", "not-a-duration")
	t.Setenv("DB_PING_TIMEOUT", "1s")

	opts := OptionsFromEnv(DefaultOptions(ProfileServer))
	if opts.MaxIdleConns != 3 || opts.ConnMaxLifetime != 20*time.Minute || opts.PingTimeout != time.Second {
		t.Fatalf("overrides not applied: %+v", opts)
	}
	if opts.ConnMaxIdleTime != 2*time.Minute {
		t.Fatalf("invalid duration should keep the default, got %s", opts.ConnMaxIdleTime)
	}

	pool, err := Connect(context.Background(), "postgres://ignored", opts)
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer pool.Close()
	if got := pool.Stats().MaxOpenConnections; got != 7 {
		t.Fatalf("expected MaxOpenConnections=7, got %d", got)
	}
}

func TestConnectRejectsEmptyURL(t *testing.T) {
	if _, err := Connect(context.Background(), "  ", Options{}); err == nil {
		t.Fatalf("expected error for empty url")
	}
}

func TestConnectClosesPoolWhenPingFails(t *testing.T) {
	mocks := withMockPool(t, func(m sqlmock.Sqlmock) {
		m.ExpectPing().WillReturnError(errors.New("connection refused"))
		m.ExpectClose()
	})

	_, err := Connect(context.Background(), "postgres://ignored", Options{})
	if err == nil || !strings.Contains(err.Error(), "ping database") {
		t.Fatalf("expected ping error, got %v", err)
	}
	if err := (*mocks)[0].ExpectationsWereMet(); err != nil {
		t.Fatalf("pool not closed: %v", err)
	}
}

func TestGetSingletonReusesPoolAndRetriesAfterFailure(t *testing.T) {
	resetSingleton(t)
	mocks := withMockPool(t,
		func(m sqlmock.Sqlmock) {
			m.ExpectPing().WillReturnError(errors.New("not ready"))
			m.ExpectClose()
		},
		func(m sqlmock.Sqlmock) { m.ExpectPing() },
	)

	if _, err := GetSingleton(context.Background(), "postgres://ignored", DefaultOptions(ProfileLambda)); err == nil {
		t.Fatalf("expected first call to fail")
	}
	first, err := GetSingleton(context.Background(), "postgres://ignored", DefaultOptions(ProfileLambda))
	if err != nil {
		t.Fatalf("expected retry to succeed: %v", err)
	}
	second, err := GetSingleton(context.Background(), "postgres://ignored", DefaultOptions(ProfileLambda))
	if err != nil {
		t.Fatalf("cached call: %v", err)
	}
	if first != second {
		t.Fatalf("expected the same pool on repeat calls")
	}
	if n := len(*mocks); n != 2 {
		t.Fatalf("expected 2 opens, got %d", n)
	}
}
