package store

import (
	"context"
	"fmt"

	"crawshaw.io/sqlite"
	"crawshaw.io/sqlite/sqlitex"
)

const createKV = `CREATE TABLE IF NOT EXISTS kv (
	ns TEXT NOT NULL,
	k  TEXT NOT NULL,
	v  TEXT NOT NULL,
	PRIMARY KEY (ns, k)
);`

// SQLite persists the alarm list in a namespaced key/value table inside a
// SQLite database file. One writer (this process) owns the key.
type SQLite struct {
	pool *sqlitex.Pool
}

// OpenSQLite opens (creating if needed) the database at path and ensures
// the kv table exists.
func OpenSQLite(path string) (*SQLite, error) {
	pool, err := sqlitex.Open(path, 0, 1)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	conn := pool.Get(context.Background())
	defer pool.Put(conn)
	if err := sqlitex.ExecTransient(conn, createKV, nil); err != nil {
		pool.Close()
		return nil, fmt.Errorf("create kv table: %w", err)
	}

	return &SQLite{pool: pool}, nil
}

// Load reads and parses the persisted CSV. An absent key yields an empty
// list; malformed tokens are dropped.
func (s *SQLite) Load() ([]string, error) {
	conn := s.pool.Get(context.Background())
	defer s.pool.Put(conn)

	var csv string
	err := sqlitex.Exec(conn, "SELECT v FROM kv WHERE ns = ? AND k = ?;",
		func(stmt *sqlite.Stmt) error {
			csv = stmt.ColumnText(0)
			return nil
		}, Namespace, Key)
	if err != nil {
		return nil, fmt.Errorf("load alarms: %w", err)
	}
	return ParseCSV(csv), nil
}

// Save normalizes and writes the list. An empty normalized list removes the
// key so that absence keeps meaning "no alarms".
func (s *SQLite) Save(alarms []string) error {
	norm := Normalize(alarms)
	if len(norm) == 0 {
		return s.Clear()
	}

	conn := s.pool.Get(context.Background())
	defer s.pool.Put(conn)

	err := sqlitex.Exec(conn,
		"INSERT INTO kv (ns, k, v) VALUES (?, ?, ?) ON CONFLICT (ns, k) DO UPDATE SET v = excluded.v;",
		nil, Namespace, Key, EncodeCSV(norm))
	if err != nil {
		return fmt.Errorf("save alarms: %w", err)
	}
	return nil
}

// Clear removes the persisted key. Idempotent.
func (s *SQLite) Clear() error {
	conn := s.pool.Get(context.Background())
	defer s.pool.Put(conn)

	err := sqlitex.Exec(conn, "DELETE FROM kv WHERE ns = ? AND k = ?;",
		nil, Namespace, Key)
	if err != nil {
		return fmt.Errorf("clear alarms: %w", err)
	}
	return nil
}

// Close closes the connection pool.
func (s *SQLite) Close() error {
	return s.pool.Close()
}
