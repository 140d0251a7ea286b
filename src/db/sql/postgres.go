package db

import (
	"context"
	"database/sql"
	"errors"

	"finpal-server/src/db"
	"finpal-server/src/store"
)

// Postgres implements store.Store on top of a db.Executor.
type Postgres struct {
	ex *db.Executor
}

var _ store.Store = (*Postgres)(nil)

func NewPostgres(ex *db.Executor) *Postgres {
	return &Postgres{ex: ex}
}

func (p *Postgres) Ping(ctx context.Context) error {
	return p.ex.Ping(ctx)
}

// notFound maps a missing row onto store.ErrNotFound.
func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}
