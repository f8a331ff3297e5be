// Package store is the relational engine behind the generator: table
// creation, bulk insertion, key read-back. SQLite in memory is the default;
// postgres and mysql adapters exist for seeding a live database.
package store

import (
	"context"
	"fmt"
)

// Store is the engine's view of the database. One exclusively-owned
// connection, strictly sequential use. Failures are fatal and never retried.
type Store interface {
	CreateTable(ctx context.Context, ddl string) error
	InsertMany(ctx context.Context, table string, columns []string, rows [][]interface{}) error
	Select(ctx context.Context, table string, columns []string) ([][]interface{}, error)
	Commit(ctx context.Context) error
	Close() error
}

// PersistenceError wraps a DDL/DML failure with the operation and table it
// came from.
type PersistenceError struct {
	Op    string
	Table string
	Err   error
}

func (e *PersistenceError) Error() string {
	if e.Table == "" {
		return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("store: %s %s: %v", e.Op, e.Table, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
