package eventservice

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/uptrace/bun"

	eventdb "github.com/festrack/festrack/app/modules/event/infrastructure/repositories"
	"github.com/festrack/festrack/internal/metrics"
)

// CompetitionCleaner removes assignment/result/chest-number facts owned by the
// competition module when an event goes away.
type CompetitionCleaner interface {
	DeleteForEvent(ctx context.Context, db bun.IDB, eventID int64) error
	DeleteForProgram(ctx context.Context, db bun.IDB, programID int64) error
}

// PointsCleaner removes points facts for an event and refreshes the cached
// totals of every recipient that lost records.
type PointsCleaner interface {
	DeleteForEvent(ctx context.Context, db bun.IDB, eventID int64) error
}

// Clock abstracts time for schedule parsing tests.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Service owns event and program lifecycle rules.
type Service struct {
	repo        eventdb.Repository
	competition CompetitionCleaner
	points      PointsCleaner
	logger      *slog.Logger
	metrics     *metrics.Metrics
	db          *bun.DB
	clock       Clock
}

func NewService(
	repo eventdb.Repository,
	competition CompetitionCleaner,
	points PointsCleaner,
	logger *slog.Logger,
	m *metrics.Metrics,
	db *bun.DB,
) *Service {
	return &Service{
		repo:        repo,
		competition: competition,
		points:      points,
		logger:      logger,
		metrics:     m,
		db:          db,
		clock:       realClock{},
	}
}

// WithClock overrides the clock, for tests.
func (s *Service) WithClock(c Clock) *Service {
	s.clock = c
	return s
}

// runInTx ensures the operation runs within a transaction. A nil service db
// (unit tests against fakes) executes the function directly.
func (s *Service) runInTx(ctx context.Context, fn func(ctx context.Context, tx bun.IDB) error) error {
	if s.db == nil {
		return fn(ctx, nil)
	}
	return s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		return fn(ctx, tx)
	})
}

func (s *Service) observe(ctx context.Context, operation string, err error, start time.Time) {
	s.metrics.OperationAttempts.WithLabelValues(operation).Inc()
	s.metrics.OperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	if err != nil {
		s.metrics.OperationFailures.WithLabelValues(operation).Inc()
		s.logger.ErrorContext(ctx, "operation failed",
			slog.String("operation", operation),
			slog.Any("error", err),
		)
	}
}
