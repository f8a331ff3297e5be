package store

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
)

// conn implements Store over database/sql. Provider adapters supply the open
// *sql.DB and the placeholder format; everything else is shared. DML runs
// inside a transaction begun lazily; Commit commits it and the next statement
// begins a fresh one.
type conn struct {
	db *sql.DB
	tx *sql.Tx
	qb squirrel.StatementBuilderType
}

func newConn(db *sql.DB, placeholder squirrel.PlaceholderFormat) *conn {
	return &conn{
		db: db,
		qb: squirrel.StatementBuilder.PlaceholderFormat(placeholder),
	}
}

func (c *conn) ensureTx(ctx context.Context) (*sql.Tx, error) {
	if c.tx != nil {
		return c.tx, nil
	}
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	c.tx = tx
	return tx, nil
}

func (c *conn) CreateTable(ctx context.Context, ddl string) error {
	if _, err := c.db.ExecContext(ctx, ddl); err != nil {
		return &PersistenceError{Op: "create table", Err: err}
	}
	return nil
}

func (c *conn) InsertMany(ctx context.Context, table string, columns []string, rows [][]interface{}) error {
	if len(rows) == 0 {
		return nil
	}

	tx, err := c.ensureTx(ctx)
	if err != nil {
		return &PersistenceError{Op: "begin", Table: table, Err: err}
	}

	ins := c.qb.Insert(table).Columns(columns...)
	for _, row := range rows {
		ins = ins.Values(row...)
	}

	query, args, err := ins.ToSql()
	if err != nil {
		return &PersistenceError{Op: "build insert", Table: table, Err: err}
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return &PersistenceError{Op: "insert", Table: table, Err: err}
	}
	return nil
}

func (c *conn) Select(ctx context.Context, table string, columns []string) ([][]interface{}, error) {
	query, args, err := c.qb.Select(columns...).From(table).ToSql()
	if err != nil {
		return nil, &PersistenceError{Op: "build select", Table: table, Err: err}
	}

	var sqlRows *sql.Rows
	if c.tx != nil {
		sqlRows, err = c.tx.QueryContext(ctx, query, args...)
	} else {
		sqlRows, err = c.db.QueryContext(ctx, query, args...)
	}
	if err != nil {
		return nil, &PersistenceError{Op: "select", Table: table, Err: err}
	}
	defer sqlRows.Close()

	var out [][]interface{}
	for sqlRows.Next() {
		vals := make([]interface{}, len(columns))
		ptrs := make([]interface{}, len(columns))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := sqlRows.Scan(ptrs...); err != nil {
			return nil, &PersistenceError{Op: "scan", Table: table, Err: err}
		}
		for i, v := range vals {
			if b, ok := v.([]byte); ok {
				vals[i] = string(b)
			}
		}
		out = append(out, vals)
	}
	if err := sqlRows.Err(); err != nil {
		return nil, &PersistenceError{Op: "select", Table: table, Err: err}
	}
	return out, nil
}

func (c *conn) Commit(ctx context.Context) error {
	if c.tx == nil {
		return nil
	}
	err := c.tx.Commit()
	c.tx = nil
	if err != nil {
		return &PersistenceError{Op: "commit", Err: err}
	}
	return nil
}

func (c *conn) Close() error {
	if c.tx != nil {
		c.tx.Rollback()
		c.tx = nil
	}
	return c.db.Close()
}
