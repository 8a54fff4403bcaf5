package sqldb

import (
	"context"
	"database/sql"

	"github.com/shanco/accessissues/internal/accessissues/store"
)

// DB is the driver-independent part of a store.Store. Drivers embed it and
// add ApplyMigrations.
type DB struct {
	db      *sql.DB
	dialect Dialect
	q       *Queries
}

func NewDB(db *sql.DB, dialect Dialect) *DB {
	return &DB{db: db, dialect: dialect, q: New(db, dialect)}
}

// SQL exposes the underlying handle for migrations.
func (d *DB) SQL() *sql.DB { return d.db }

func (d *DB) Close() error { return d.db.Close() }

// Ping verifies the database connection is still alive.
func (d *DB) Ping(ctx context.Context) error {
	return d.db.PingContext(ctx)
}

// Tx starts a read/write transaction and returns a Tx-scoped Store.
func (d *DB) Tx(ctx context.Context) (store.Tx, error) {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return newTx(tx, d.dialect), nil
}

// WithTx executes fn within a transaction, automatically handling commit/rollback.
func (d *DB) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := d.Tx(ctx)
	if err != nil {
		return err
	}

	defer func() {
		_ = tx.Rollback() // no-op after commit
	}()

	if err := fn(tx); err != nil {
		return err
	}

	return tx.Commit()
}

func (d *DB) Users() store.Users                 { return &usersRepo{q: d.q} }
func (d *DB) Organizations() store.Organizations { return &organizationsRepo{q: d.q} }

type txStore struct {
	tx *sql.Tx
	q  *Queries
}

func newTx(tx *sql.Tx, dialect Dialect) *txStore {
	return &txStore{
		tx: tx,
		q:  New(tx, dialect),
	}
}

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

func (t *txStore) Close() error { return nil } // caller commits or rolls back; the DB stays open

// Ping is a no-op; the connection is held by the transaction.
func (t *txStore) Ping(ctx context.Context) error {
	return nil
}

func (t *txStore) Tx(ctx context.Context) (store.Tx, error) {
	// Nested tx not supported; could emulate with SAVEPOINT if needed
	return nil, sql.ErrTxDone
}

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return sql.ErrTxDone
}

func (t *txStore) Users() store.Users                 { return &usersRepo{q: t.q} }
func (t *txStore) Organizations() store.Organizations { return &organizationsRepo{q: t.q} }

func (t *txStore) ApplyMigrations() error { return nil } // migrations run before any tx
