// Package sqlite provides SQLite-based storage for insights and cached
// generator replies.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fwojciec/brandctx"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// schemaVersion is stored in PRAGMA user_version after the schema is applied.
const schemaVersion = 1

// schema is applied in one transaction on every Open.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS insights (
		id TEXT PRIMARY KEY,
		website_url TEXT NOT NULL,
		page_hash TEXT NOT NULL DEFAULT '',
		context TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_insights_website_url ON insights(website_url)`,
	`CREATE INDEX IF NOT EXISTS idx_insights_created_at ON insights(created_at)`,
	`CREATE TABLE IF NOT EXISTS generations (
		key TEXT PRIMARY KEY,
		model TEXT NOT NULL DEFAULT '',
		reply TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,
}

// DB is the insight store. All access goes through a single connection, so
// writers queue on it instead of failing with SQLITE_BUSY.
type DB struct {
	db   *sql.DB
	path string
}

// NewDB returns a DB for the file at path, or an in-memory database for
// MemoryPath. Nothing is opened until Open.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// pragmas returns the connection settings for the database: a 5 s busy
// timeout, plus write-ahead logging for file databases.
func (db *DB) pragmas() []string {
	p := []string{"PRAGMA busy_timeout = 5000"}
	if db.path != MemoryPath {
		p = append(p, "PRAGMA journal_mode = WAL")
	}
	return p
}

// Open connects to the database and brings its schema up to date. A
// database written by a newer brandctx is rejected with EINVALID.
func (db *DB) Open() error {
	conn, err := sql.Open("sqlite3", db.path)
	if err != nil {
		return fmt.Errorf("open insight store: %w", err)
	}
	conn.SetMaxOpenConns(1)

	if err := db.setup(conn); err != nil {
		conn.Close()
		return err
	}
	db.db = conn
	return nil
}

func (db *DB) setup(conn *sql.DB) error {
	ctx := context.Background()
	if err := conn.PingContext(ctx); err != nil {
		return fmt.Errorf("connect to insight store: %w", err)
	}
	for _, pragma := range db.pragmas() {
		if _, err := conn.ExecContext(ctx, pragma); err != nil {
			return fmt.Errorf("%s: %w", pragma, err)
		}
	}

	var version int
	if err := conn.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version > schemaVersion {
		return brandctx.Errorf(brandctx.EINVALID, "insight store schema version %d is newer than supported version %d", version, schemaVersion)
	}
	return migrate(ctx, conn)
}

func migrate(ctx context.Context, conn *sql.DB) error {
	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema update: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range schema {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", schemaVersion)); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	return tx.Commit()
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.db == nil {
		return nil
	}
	return db.db.Close()
}

// QueryRowContext executes a query that returns a single row.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.db.QueryRowContext(ctx, query, args...)
}

// QueryContext executes a query that returns rows.
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

// ExecContext executes a statement that doesn't return rows.
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.db.ExecContext(ctx, query, args...)
}

// Stats returns connection pool statistics.
func (db *DB) Stats() sql.DBStats {
	return db.db.Stats()
}
