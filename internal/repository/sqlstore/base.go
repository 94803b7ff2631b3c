package sqlstore

import (
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/caresync-api/pkg/metrics"
)

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	db      *sqlx.DB
	metrics *metrics.Metrics
}

// NewBaseRepository creates a new base repository. m may be nil.
func NewBaseRepository(db *sqlx.DB, m *metrics.Metrics) *BaseRepository {
	return &BaseRepository{db: db, metrics: m}
}

// GetDB returns the database instance
func (r *BaseRepository) GetDB() *sqlx.DB {
	return r.db
}

// q rewrites ? placeholders for the active driver.
func (r *BaseRepository) q(query string) string {
	return r.db.Rebind(query)
}

// observe is deferred with a pointer so it sees the final error.
func (r *BaseRepository) observe(op string, start time.Time, err *error) {
	r.metrics.ObserveDB(op, time.Since(start).Seconds(), *err)
}
