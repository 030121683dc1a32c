package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

// Store wraps the pgx pool and carries the "unavailable" state. When no
// DATABASE_URL is configured, or the backend is unreachable at startup, the
// pool stays nil: repository reads return empty results and writes fail with
// repository.ErrUnavailable. Callers must not conflate empty with "no rows".
type Store struct {
	pool *pgxpool.Pool
}

// Connect builds a Store. It never fails hard: a missing or unreachable
// backend yields an unavailable Store and a warning instead of a crash.
func Connect(ctx context.Context, dsn string, maxConns, minConns int32, maxConnLife time.Duration, logger *logrus.Logger) *Store {
	if dsn == "" {
		logger.Warn("DATABASE_URL not set, storage unavailable: reads return empty, writes fail")
		return &Store{}
	}
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.WithError(err).Warn("invalid postgres DSN, storage unavailable")
		return &Store{}
	}
	cfg.MaxConns = maxConns
	cfg.MinConns = minConns
	cfg.MaxConnLifetime = maxConnLife
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		logger.WithError(err).Warn("postgres pool init failed, storage unavailable")
		return &Store{}
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		logger.WithError(err).Warn("postgres unreachable, storage unavailable")
		return &Store{}
	}
	return &Store{pool: pool}
}

func (s *Store) Available() bool { return s.pool != nil }

func (s *Store) Pool() *pgxpool.Pool { return s.pool }

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}
