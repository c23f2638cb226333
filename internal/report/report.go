// Package report collects rider problem reports (broken schedules, missing
// stops, wrong coordinates) and stores them for later review.
package report

import (
	"context"
	"strings"
	"time"

	"log/slog"

	"github.com/hayqway/waybot/internal/logger"
)

// MaxLength caps stored report text; anything longer is trimmed.
const MaxLength = 2000

// Report is one rider-submitted problem description.
type Report struct {
	ID        int64     `db:"id"`
	UserID    int64     `db:"user_id"`
	Username  string    `db:"username"`
	Text      string    `db:"text"`
	CreatedAt time.Time `db:"created_at"`
}

// Store persists reports. Implementations must be safe for concurrent use.
type Store interface {
	Save(ctx context.Context, r Report) error
	Recent(ctx context.Context, limit int) ([]Report, error)
}

// Service validates and records rider reports.
type Service struct {
	store Store
}

// NewService wires a Service over the given store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Submit records a report after trimming and length-capping the text.
// Empty text is rejected.
func (s *Service) Submit(ctx context.Context, userID int64, username, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyReport
	}
	if len(text) > MaxLength {
		text = text[:MaxLength]
	}

	r := Report{
		UserID:    userID,
		Username:  username,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.Save(ctx, r); err != nil {
		logger.Error(ctx, "db", "report.save",
			slog.String("status", "fail"),
			slog.Int64("user_id", userID),
			slog.String("err", err.Error()),
		)
		return err
	}

	logger.Info(ctx, "db", "report.save",
		slog.String("status", "ok"),
		slog.Int64("user_id", userID),
		slog.Int("len", len(text)),
	)
	return nil
}

// Recent returns the newest reports, newest first.
func (s *Service) Recent(ctx context.Context, limit int) ([]Report, error) {
	return s.store.Recent(ctx, limit)
}
