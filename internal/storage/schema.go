package storage

import (
	"context"
	"fmt"
	"strings"
)

// generalFolderID is the fixed well-known id of the seeded default
// folder. Uniqueness on name is the real guard; the id only has to be
// stable across concurrent process starts.
const generalFolderID = "folder-general"

const createQRCodesTable = `
CREATE TABLE IF NOT EXISTS qr_codes (
	id TEXT PRIMARY KEY,
	type TEXT NOT NULL DEFAULT 'link' CHECK (type IN ('link', 'landing', 'verified_content')),
	title TEXT NOT NULL,
	destination_url TEXT,
	landing_content TEXT,
	folder TEXT NOT NULL DEFAULT 'General',
	custom_domain TEXT,
	organization TEXT,
	content_category TEXT,
	verification_hash TEXT,
	style TEXT,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	scans INTEGER NOT NULL DEFAULT 0
)`

const createFoldersTable = `
CREATE TABLE IF NOT EXISTS folders (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL UNIQUE,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

// addColumnMigrations backfills columns that tables created by earlier
// releases are missing. Each statement is best-effort additive.
var addColumnMigrations = []string{
	`ALTER TABLE qr_codes ADD COLUMN folder TEXT NOT NULL DEFAULT 'General'`,
	`ALTER TABLE qr_codes ADD COLUMN custom_domain TEXT`,
	`ALTER TABLE qr_codes ADD COLUMN organization TEXT`,
	`ALTER TABLE qr_codes ADD COLUMN content_category TEXT`,
	`ALTER TABLE qr_codes ADD COLUMN verification_hash TEXT`,
	`ALTER TABLE qr_codes ADD COLUMN style TEXT`,
}

// InitSchema creates both tables, applies additive column migrations and
// seeds the default folder. It is idempotent and safe under concurrent
// starts of multiple process instances.
func (s *Store) InitSchema(ctx context.Context) error {
	for _, stmt := range []string{createQRCodesTable, createFoldersTable} {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	for _, stmt := range addColumnMigrations {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			if isAlreadyExistsError(err) {
				continue
			}
			return fmt.Errorf("failed to migrate column: %w", err)
		}
	}

	if err := s.seedGeneralFolder(ctx); err != nil {
		return err
	}

	s.log.Debug().Str("backend", string(s.backend)).Msg("schema initialized")
	return nil
}

func (s *Store) seedGeneralFolder(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO folders (id, name) VALUES (?, 'General')`,
		generalFolderID,
	)
	if err != nil {
		// A racing instance may have seeded between statements.
		if IsUniqueViolation(err) {
			return nil
		}
		return fmt.Errorf("failed to seed default folder: %w", err)
	}
	return nil
}

// isAlreadyExistsError reports idempotent-DDL success conditions.
func isAlreadyExistsError(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "already exists") || strings.Contains(msg, "duplicate column name")
}

// IsUniqueViolation matches the unique-constraint diagnostic emitted by
// both the embedded and the remote driver. The repositories use it to
// classify optimistic inserts.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint failed") || strings.Contains(msg, "constraint violation")
}
