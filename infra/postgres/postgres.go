package postgres

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/lib/pq"
	"github.com/pkg/errors"

	"bitbucket.org/novatechnologies/spychart/infra"
	"bitbucket.org/novatechnologies/spychart/infra/logger"
)

// NewDB opens a pooled lib/pq connection and verifies it.
func NewDB(ctx context.Context, config infra.DbConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", config.DSN())
	if err != nil {
		return nil, errors.Wrap(err, "open postgres")
	}
	db.SetMaxOpenConns(10)
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err = db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		logger.FromContext(ctx).WithError(err).
			WithField("host", config.Host).
			Error("[infra.Postgres] Failed to ping database")
		return nil, errors.Wrap(err, "ping postgres")
	}

	return db, nil
}
