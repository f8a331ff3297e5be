package store

import "fmt"

// Open builds a store for the configured provider. SQLite is the default and
// needs no DSN; postgres and mysql require one.
func Open(provider, dsn string) (Store, error) {
	switch provider {
	case "", "sqlite", "sqlite3":
		return openSQLite(dsn)
	case "postgresql", "postgres":
		if dsn == "" {
			return nil, fmt.Errorf("postgres provider requires a DSN")
		}
		return openPostgres(dsn)
	case "mysql":
		if dsn == "" {
			return nil, fmt.Errorf("mysql provider requires a DSN")
		}
		return openMySQL(dsn)
	default:
		return nil, fmt.Errorf("unsupported database provider: %s (supported: sqlite, postgres, mysql)", provider)
	}
}
