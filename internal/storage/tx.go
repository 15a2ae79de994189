package storage

import (
	"context"
	"database/sql"
	"fmt"
)

type keyTxType int

const (
	keyTxValue keyTxType = iota
)

// querier is the statement surface shared by *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *Store) conn(ctx context.Context) querier {
	if tx, ok := ctx.Value(keyTxValue).(*sql.Tx); ok {
		return tx
	}
	return s.db
}

// WithinTx runs fn inside a transaction, committing on success and
// rolling back on error or panic. Nested calls reuse the open
// transaction. On a backend without transaction support fn runs as plain
// sequential statements; a failure partway through leaves the earlier
// statements applied.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if !s.SupportsTx() {
		return fn(ctx)
	}

	if _, ok := ctx.Value(keyTxValue).(*sql.Tx); ok {
		return fn(ctx)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	ctx = context.WithValue(ctx, keyTxValue, tx)

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}

		if err != nil {
			_ = tx.Rollback()
			return
		}

		if commitErr := tx.Commit(); commitErr != nil {
			err = fmt.Errorf("failed to commit transaction: %w", commitErr)
		}
	}()

	err = fn(ctx)
	return
}
