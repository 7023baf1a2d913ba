package sqlite

import (
	"context"
	"database/sql"

	"github.com/spendtrace/spendtrace/internal/tracer/store"
)

type txStore struct {
	tx *sql.Tx
}

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

func (t *txStore) Close() error { return nil } // outer DB stays open

// Ping is a no-op inside a transaction; the connection already exists.
func (t *txStore) Ping(ctx context.Context) error { return nil }

func (t *txStore) Tx(ctx context.Context) (store.Tx, error) {
	// Nested transactions are not supported; use SAVEPOINTs if ever needed.
	return nil, sql.ErrTxDone
}

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return sql.ErrTxDone
}

func (t *txStore) ApplyMigrations() error { return nil } // migrations run before any tx

func (t *txStore) Users() store.Users         { return &usersRepo{db: t.tx} }
func (t *txStore) Shops() store.Shops         { return &shopsRepo{db: t.tx} }
func (t *txStore) Purchases() store.Purchases { return &purchasesRepo{db: t.tx} }
func (t *txStore) Follows() store.Follows     { return &followsRepo{db: t.tx} }
func (t *txStore) Reports() store.Reports     { return &reportsRepo{db: t.tx} }
