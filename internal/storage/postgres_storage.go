package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fxelysrism/a-map-of-us-bot/internal/core/ports"
)

// PostgresStorage keeps the marker in a single-row table. Used when
// DATABASE_URL is set, so the marker survives hosts without durable disk.
type PostgresStorage struct {
	Pool *pgxpool.Pool
}

func NewPostgresStorage(ctx context.Context, connStr string) (*PostgresStorage, error) {
	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	s := &PostgresStorage{Pool: pool}
	if err := s.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

var _ ports.Storage = (*PostgresStorage)(nil)

func (s *PostgresStorage) initSchema(ctx context.Context) error {
	_, err := s.Pool.Exec(ctx,
		`CREATE TABLE IF NOT EXISTS daily_post (
			id INT PRIMARY KEY CHECK (id = 1),
			last_post_date TEXT NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("failed to init schema: %w", err)
	}
	return nil
}

// LastPostDate mirrors the file store's leniency: any query failure,
// including no row yet, reads as "no marker".
func (s *PostgresStorage) LastPostDate(ctx context.Context) (string, error) {
	var date string
	err := s.Pool.QueryRow(ctx,
		"SELECT last_post_date FROM daily_post WHERE id = 1").Scan(&date)
	if err != nil {
		return "", nil
	}
	return date, nil
}

func (s *PostgresStorage) SetLastPostDate(ctx context.Context, date string) error {
	_, err := s.Pool.Exec(ctx,
		`INSERT INTO daily_post (id, last_post_date) VALUES (1, $1)
		 ON CONFLICT (id) DO UPDATE SET last_post_date = $1`,
		date)
	return err
}

func (s *PostgresStorage) Close() {
	s.Pool.Close()
}
