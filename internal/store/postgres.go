package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/serroba/shortlink/internal/shortener"
)

// uniqueViolation is the SQLSTATE Postgres reports for a primary key conflict.
const uniqueViolation = "23505"

const (
	insertLinkQuery = `INSERT INTO urls (code, target_url) VALUES ($1, $2)`
	lookupLinkQuery = `SELECT code, target_url FROM urls WHERE code = $1`
)

// PostgresStore is a PostgreSQL implementation of shortener.Repository.
type PostgresStore struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

// NewPostgresStore creates a new PostgreSQL-backed link store.
// A positive timeout bounds every statement.
func NewPostgresStore(pool *pgxpool.Pool, timeout time.Duration) *PostgresStore {
	return &PostgresStore{pool: pool, timeout: timeout}
}

func (p *PostgresStore) Insert(ctx context.Context, link *shortener.Link) error {
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	_, err := p.pool.Exec(ctx, insertLinkQuery, string(link.Code), link.TargetURL)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return shortener.ErrDuplicateCode
		}

		return fmt.Errorf("%w: %w", shortener.ErrStoreUnavailable, err)
	}

	return nil
}

func (p *PostgresStore) Lookup(ctx context.Context, code shortener.Code) (*shortener.Link, error) {
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	var link shortener.Link

	err := p.pool.QueryRow(ctx, lookupLinkQuery, string(code)).Scan(&link.Code, &link.TargetURL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shortener.ErrNotFound
		}

		return nil, fmt.Errorf("%w: %w", shortener.ErrStoreUnavailable, err)
	}

	return &link, nil
}

// Ping checks database connectivity.
func (p *PostgresStore) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

// Shutdown closes the connection pool.
func (p *PostgresStore) Shutdown() error {
	p.pool.Close()

	return nil
}

func (p *PostgresStore) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if p.timeout <= 0 {
		return ctx, func() {}
	}

	return context.WithTimeout(ctx, p.timeout)
}

var _ shortener.Repository = (*PostgresStore)(nil)
