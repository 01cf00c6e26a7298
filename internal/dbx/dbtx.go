// Package dbx holds the database plumbing the repositories are built on: a
// handle interface satisfied by both connections and transactions, and a
// transaction wrapper. Repositories take the interface so the gating service
// can run a single lookup on the pool and the completion write path on a
// transaction with the same repository code.
package dbx

import (
	"context"
	"database/sql"
)

// DBTX is the query surface repositories need. *sql.DB and *sql.Tx both
// satisfy it.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// WithTx runs fn inside a transaction: commit when fn returns nil, rollback
// on error or panic (the panic is rethrown after rollback).
//
// The completion path depends on this pairing: the progress insert and any
// achievement unlocks it triggers land together or not at all, so a half
// recorded completion can never strand an unlock.
//
//	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
//	    inserted, err := repos.Progress(tx).Upsert(ctx, userID, stepID)
//	    ...
//	})
func WithTx(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn func(ctx context.Context, tx DBTX) error) (err error) {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	err = fn(ctx, tx)
	return err
}
