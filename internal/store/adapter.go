package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"

	"github.com/roach88/medq/internal/safety"
)

const (
	// lockRetries is how many attempts Execute makes when SQLite
	// reports lock contention.
	lockRetries = 3

	// lockRetryDelay is the default pause between lock retries.
	lockRetryDelay = 100 * time.Millisecond
)

// ResultSet is a fully materialized query result.
type ResultSet struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

// Empty reports whether the result has no rows.
func (r ResultSet) Empty() bool { return len(r.Rows) == 0 }

// Adapter executes translated queries against a database handle. Every
// statement passes the safety check first, even though the translator
// only emits template SQL with bound parameters. Two layers, one
// policy.
type Adapter struct {
	db         *sqlx.DB
	safeMode   bool
	retryDelay time.Duration
	log        zerolog.Logger
}

// AdapterOption configures an Adapter.
type AdapterOption func(*Adapter)

// WithSafeMode makes missing-table errors return an empty result set
// instead of failing. Useful against a database that was opened but
// never seeded.
func WithSafeMode() AdapterOption {
	return func(a *Adapter) { a.safeMode = true }
}

// WithRetryDelay overrides the pause between lock retries.
func WithRetryDelay(d time.Duration) AdapterOption {
	return func(a *Adapter) { a.retryDelay = d }
}

// WithLogger attaches a logger; the default discards everything.
func WithLogger(log zerolog.Logger) AdapterOption {
	return func(a *Adapter) { a.log = log }
}

// NewAdapter wraps a database handle.
func NewAdapter(db *sqlx.DB, opts ...AdapterOption) *Adapter {
	a := &Adapter{
		db:         db,
		retryDelay: lockRetryDelay,
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Execute validates a statement and runs it, returning the materialized
// rows. Lock contention is retried up to three times; in safe mode a
// missing table yields an empty result set.
func (a *Adapter) Execute(ctx context.Context, sqlText string, args ...any) (ResultSet, error) {
	if sqlText == "" {
		return ResultSet{}, ErrNoQuery
	}

	decision := safety.Check(sqlText)
	if !decision.Allowed {
		a.log.Warn().Str("sql", sqlText).Msg("rejected unsafe statement")
		return ResultSet{}, ErrUnsafeStatement
	}

	var lastErr error
	for attempt := 1; attempt <= lockRetries; attempt++ {
		rs, err := a.query(ctx, decision.Normalized, args)
		if err == nil {
			return rs, nil
		}
		if a.safeMode && isMissingTable(err) {
			a.log.Warn().Err(err).Msg("missing table, returning empty result")
			return ResultSet{}, nil
		}
		if !isLocked(err) {
			return ResultSet{}, fmt.Errorf("execute query: %w", err)
		}
		lastErr = err
		a.log.Debug().Int("attempt", attempt).Msg("database locked, retrying")
		select {
		case <-ctx.Done():
			return ResultSet{}, ctx.Err()
		case <-time.After(a.retryDelay):
		}
	}
	return ResultSet{}, fmt.Errorf("execute query: %w", lastErr)
}

// query runs one attempt and scans every row.
func (a *Adapter) query(ctx context.Context, sqlText string, args []any) (ResultSet, error) {
	rows, err := a.db.QueryxContext(ctx, sqlText, args...)
	if err != nil {
		return ResultSet{}, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return ResultSet{}, err
	}

	rs := ResultSet{Columns: cols}
	for rows.Next() {
		vals, err := rows.SliceScan()
		if err != nil {
			return ResultSet{}, err
		}
		rs.Rows = append(rs.Rows, normalizeRow(vals))
	}
	if err := rows.Err(); err != nil {
		return ResultSet{}, err
	}
	return rs, nil
}

// normalizeRow converts driver byte slices to strings so results render
// and serialize cleanly.
func normalizeRow(vals []any) []any {
	for i, v := range vals {
		if b, ok := v.([]byte); ok {
			vals[i] = string(b)
		}
	}
	return vals
}
