// Package storage owns the single shared database handle. The backend is
// chosen once at startup from configuration: a fully configured remote
// libSQL store wins, otherwise an embedded SQLite file. Both drivers sit
// behind database/sql, so repositories never branch on backend type.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"

	"qrtracker/internal/config"
)

// Backend identifies which driver the store was opened with.
type Backend string

const (
	BackendEmbedded Backend = "embedded"
	BackendRemote   Backend = "remote"
)

const (
	remoteMaxOpenConnections     = 5
	remoteMaxIdleConnections     = 2
	remoteConnectionsMaxIdleTime = 2 * time.Minute
	remoteConnectionsLifetime    = 30 * time.Minute
	storagePingTimeout           = 5 * time.Second
)

// embeddedDSNParams keeps concurrent writers queued instead of failing
// with SQLITE_BUSY, and enables WAL so readers do not block on writes.
const embeddedDSNParams = "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"

// Store wraps the process-wide *sql.DB. It is created once at startup and
// injected into the repositories; there is no fallback between backends.
type Store struct {
	db      *sql.DB
	backend Backend
	log     zerolog.Logger
}

// Open selects the backend from cfg, opens it and verifies reachability.
// A ping failure of the configured backend is a hard error, never masked
// by switching to the other backend.
func Open(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Store, error) {
	var (
		driver  string
		dsn     string
		backend Backend
	)

	if cfg.UseRemote() {
		driver = "libsql"
		backend = BackendRemote
		dsn = remoteDSN(cfg.RemoteURL, cfg.RemoteAuthToken)
	} else {
		driver = "sqlite"
		backend = BackendEmbedded

		var err error
		dsn, err = embeddedDSN(cfg.StoragePath)
		if err != nil {
			return nil, err
		}
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", backend, err)
	}

	initConnectionPools(db, backend)

	ctxPing, cancel := context.WithTimeout(ctx, storagePingTimeout)
	defer cancel()

	if err := db.PingContext(ctxPing); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping %s store: %w", backend, err)
	}

	log.Info().Str("backend", string(backend)).Msg("storage opened")

	return &Store{db: db, backend: backend, log: log}, nil
}

func remoteDSN(remoteURL, authToken string) string {
	return remoteURL + "?authToken=" + url.QueryEscape(authToken)
}

func embeddedDSN(path string) (string, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create storage directory: %w", err)
	}
	return "file:" + filepath.Clean(path) + embeddedDSNParams, nil
}

func initConnectionPools(db *sql.DB, backend Backend) {
	if backend == BackendEmbedded {
		// Single connection serializes writes; WAL plus busy_timeout
		// bound how long any one statement can hold it.
		db.SetMaxOpenConns(1)
		return
	}

	db.SetMaxOpenConns(remoteMaxOpenConnections)
	db.SetMaxIdleConns(remoteMaxIdleConnections)
	db.SetConnMaxIdleTime(remoteConnectionsMaxIdleTime)
	db.SetConnMaxLifetime(remoteConnectionsLifetime)
}

// Backend reports which driver was selected at startup.
func (s *Store) Backend() Backend {
	return s.backend
}

// SupportsTx reports whether multi-statement transactions are available.
// The remote HTTP protocol has no interactive transactions, so cascades
// on that backend run as sequential statements.
func (s *Store) SupportsTx() bool {
	return s.backend == BackendEmbedded
}

// ExecContext runs a statement through the open transaction carried by
// ctx, or directly on the handle when no transaction is open.
func (s *Store) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return s.conn(ctx).ExecContext(ctx, query, args...)
}

func (s *Store) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return s.conn(ctx).QueryContext(ctx, query, args...)
}

func (s *Store) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return s.conn(ctx).QueryRowContext(ctx, query, args...)
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close() error {
	return s.db.Close()
}
