package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/serroba/shortlink/internal/shortener"
	_ "github.com/tursodatabase/libsql-client-go/libsql" // Turso driver
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// SQLiteStore is a shortener.Repository backed by a local SQLite file or a remote libsql database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens the database at dsn. libsql:// and wss:// URLs use the libsql driver,
// anything else is treated as a local SQLite DSN.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	driverName := "sqlite"
	if strings.HasPrefix(dsn, "libsql://") || strings.HasPrefix(dsn, "wss://") {
		driverName = "libsql"
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", driverName, err)
	}

	if driverName == "sqlite" {
		// SQLite serialises writers; a single connection avoids SQLITE_BUSY on concurrent inserts.
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()

		return nil, fmt.Errorf("failed to ping %s database: %w", driverName, err)
	}

	return &SQLiteStore{db: db}, nil
}

// Migrate applies the embedded up migrations in order. Statements are idempotent.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	files, err := fs.Glob(migrationFiles, "migrations/*.up.sql")
	if err != nil {
		return fmt.Errorf("failed to list migrations: %w", err)
	}

	for _, name := range files {
		stmt, err := migrationFiles.ReadFile(name)
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", name, err)
		}

		if _, err := s.db.ExecContext(ctx, string(stmt)); err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", name, err)
		}
	}

	return nil
}

func (s *SQLiteStore) Insert(ctx context.Context, link *shortener.Link) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO urls (code, target_url) VALUES (?, ?)`,
		string(link.Code), link.TargetURL,
	)
	if err != nil {
		if isConstraintViolation(err) {
			return shortener.ErrDuplicateCode
		}

		return fmt.Errorf("%w: %w", shortener.ErrStoreUnavailable, err)
	}

	return nil
}

func (s *SQLiteStore) Lookup(ctx context.Context, code shortener.Code) (*shortener.Link, error) {
	var link shortener.Link

	err := s.db.QueryRowContext(ctx,
		`SELECT code, target_url FROM urls WHERE code = ?`,
		string(code),
	).Scan(&link.Code, &link.TargetURL)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, shortener.ErrNotFound
		}

		return nil, fmt.Errorf("%w: %w", shortener.ErrStoreUnavailable, err)
	}

	return &link, nil
}

// Count returns the number of stored links.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int

	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM urls`).Scan(&n)

	return n, err
}

// Ping checks database connectivity.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Shutdown closes the database handle.
func (s *SQLiteStore) Shutdown() error {
	return s.db.Close()
}

func isConstraintViolation(err error) bool {
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}

	// libsql and non-extended result codes only carry the message.
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

var _ shortener.Repository = (*SQLiteStore)(nil)
