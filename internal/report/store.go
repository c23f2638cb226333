package report

import (
	"context"
	"errors"
	"sync"

	"github.com/jmoiron/sqlx"
)

// ErrEmptyReport is returned when a submission carries no text.
var ErrEmptyReport = errors.New("report: empty text")

// PostgresStore persists reports in the reports table.
type PostgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore wraps an open connection.
func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Save inserts the report.
func (s *PostgresStore) Save(ctx context.Context, r Report) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO reports (user_id, username, text, created_at) VALUES ($1, $2, $3, $4)`,
		r.UserID, r.Username, r.Text, r.CreatedAt,
	)
	return err
}

// Recent returns the newest reports, newest first.
func (s *PostgresStore) Recent(ctx context.Context, limit int) ([]Report, error) {
	var out []Report
	err := s.db.SelectContext(ctx, &out,
		`SELECT id, user_id, username, text, created_at FROM reports ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	return out, err
}

// MemoryStore keeps reports in process memory. It backs deployments without
// a configured database and the test suite.
type MemoryStore struct {
	mu      sync.Mutex
	reports []Report
	nextID  int64
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Save appends the report.
func (s *MemoryStore) Save(_ context.Context, r Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	r.ID = s.nextID
	s.reports = append(s.reports, r)
	return nil
}

// Recent returns the newest reports, newest first.
func (s *MemoryStore) Recent(_ context.Context, limit int) ([]Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.reports)
	if limit > n {
		limit = n
	}
	out := make([]Report, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, s.reports[i])
	}
	return out, nil
}
