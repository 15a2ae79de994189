package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qrtracker/internal/config"
)

func openTestStore(t *testing.T, path string) *Store {
	t.Helper()

	cfg := &config.Config{StoragePath: path}
	store, err := Open(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

func TestOpen_SelectsEmbeddedWithoutRemoteConfig(t *testing.T) {
	store := openTestStore(t, filepath.Join(t.TempDir(), "qr.db"))

	assert.Equal(t, BackendEmbedded, store.Backend())
	assert.True(t, store.SupportsTx())
	assert.NoError(t, store.Ping(context.Background()))
}

func TestOpen_CreatesStorageDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "qr.db")
	store := openTestStore(t, path)

	assert.NoError(t, store.Ping(context.Background()))
}

func TestInitSchema_Idempotent(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t, filepath.Join(t.TempDir(), "qr.db"))

	require.NoError(t, store.InitSchema(ctx))
	require.NoError(t, store.InitSchema(ctx))

	var count int
	err := store.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM folders WHERE name = 'General'`).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count, "General folder must be seeded exactly once")

	var id string
	err = store.QueryRowContext(ctx,
		`SELECT id FROM folders WHERE name = 'General'`).Scan(&id)
	require.NoError(t, err)
	assert.Equal(t, "folder-general", id)
}

func TestInitSchema_SurvivesRestart(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "qr.db")

	first := openTestStore(t, path)
	require.NoError(t, first.InitSchema(ctx))
	_, err := first.ExecContext(ctx,
		`INSERT INTO folders (id, name, created_at) VALUES ('abc123', 'Marketing', '2026-01-01 00:00:00.000')`)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second := openTestStore(t, path)
	require.NoError(t, second.InitSchema(ctx))

	var count int
	err = second.QueryRowContext(ctx, `SELECT COUNT(*) FROM folders`).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 2, count, "re-running schema init must not drop data")
}

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "embedded driver", err: errors.New("constraint failed: UNIQUE constraint failed: folders.name (2067)"), want: true},
		{name: "remote driver", err: errors.New("SQLITE_CONSTRAINT: constraint violation"), want: true},
		{name: "unrelated", err: errors.New("disk I/O error"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsUniqueViolation(tt.err))
		})
	}
}

func TestWithinTx_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t, filepath.Join(t.TempDir(), "qr.db"))
	require.NoError(t, store.InitSchema(ctx))

	boom := errors.New("boom")
	err := store.WithinTx(ctx, func(ctx context.Context) error {
		_, execErr := store.ExecContext(ctx,
			`INSERT INTO folders (id, name, created_at) VALUES ('fold01', 'Doomed', '2026-01-01 00:00:00.000')`)
		require.NoError(t, execErr)
		return boom
	})
	require.ErrorIs(t, err, boom)

	var count int
	require.NoError(t, store.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM folders WHERE name = 'Doomed'`).Scan(&count))
	assert.Zero(t, count)
}

func TestWithinTx_CommitsAndReusesNestedTx(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t, filepath.Join(t.TempDir(), "qr.db"))
	require.NoError(t, store.InitSchema(ctx))

	err := store.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := store.ExecContext(ctx,
			`INSERT INTO folders (id, name, created_at) VALUES ('fold01', 'Outer', '2026-01-01 00:00:00.000')`); err != nil {
			return err
		}

		// Nested call must join the open transaction, not deadlock on a
		// second connection.
		return store.WithinTx(ctx, func(ctx context.Context) error {
			_, err := store.ExecContext(ctx,
				`INSERT INTO folders (id, name, created_at) VALUES ('fold02', 'Inner', '2026-01-01 00:00:01.000')`)
			return err
		})
	})
	require.NoError(t, err)

	var count int
	require.NoError(t, store.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM folders WHERE name IN ('Outer', 'Inner')`).Scan(&count))
	assert.Equal(t, 2, count)
}
