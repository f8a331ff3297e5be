package store

import (
	"fmt"

	"database/sql"

	"github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"
)

// openSQLite opens a SQLite store; an empty DSN means a private in-memory
// database. A single connection is enforced so ":memory:" is one database and
// the transaction state stays on one session.
func openSQLite(dsn string) (Store, error) {
	if dsn == "" {
		dsn = ":memory:"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite connection: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return newConn(db, squirrel.Question), nil
}
