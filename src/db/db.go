package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Connect opens the Postgres handle. Unless reuse is set, idle connections are
// not retained: every Executor call dials and closes its own connection.
func Connect(ctx context.Context, url string, reuse bool) (*sql.DB, error) {
	conn, err := sql.Open("pgx", url)
	if err != nil {
		return nil, err
	}
	if !reuse {
		conn.SetMaxIdleConns(0)
	}

	// Test connection
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, err
	}

	return conn, nil
}

// RowScanner is the subset of *sql.Row / *sql.Rows used by scan functions.
type RowScanner interface {
	Scan(dest ...any) error
}

// Executor runs statements on a connection acquired for the duration of one
// call and released afterwards, whether the statement succeeded or not.
type Executor struct {
	db *sql.DB
}

func NewExecutor(db *sql.DB) *Executor {
	return &Executor{db: db}
}

// With acquires a single connection, passes it to fn and always releases it.
func (e *Executor) With(ctx context.Context, fn func(conn *sql.Conn) error) error {
	conn, err := e.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Close()

	return fn(conn)
}

// Exec runs a write and returns the number of affected rows.
func (e *Executor) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	var affected int64
	err := e.With(ctx, func(conn *sql.Conn) error {
		res, err := conn.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	return affected, err
}

func (e *Executor) Ping(ctx context.Context) error {
	return e.With(ctx, func(conn *sql.Conn) error {
		return conn.PingContext(ctx)
	})
}

// Query runs a statement and maps every row with scan.
func Query[T any](ctx context.Context, e *Executor, scan func(RowScanner) (T, error), query string, args ...any) ([]T, error) {
	var out []T
	err := e.With(ctx, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			item, err := scan(rows)
			if err != nil {
				return err
			}
			out = append(out, item)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// QueryOne runs a statement expected to return one row. A missing row is
// reported as sql.ErrNoRows.
func QueryOne[T any](ctx context.Context, e *Executor, scan func(RowScanner) (T, error), query string, args ...any) (T, error) {
	var out T
	err := e.With(ctx, func(conn *sql.Conn) error {
		var err error
		out, err = scan(conn.QueryRowContext(ctx, query, args...))
		return err
	})
	return out, err
}
