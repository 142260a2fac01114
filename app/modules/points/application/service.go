package pointsservice

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/uptrace/bun"

	pointsdb "github.com/festrack/festrack/app/modules/points/infrastructure/repositories"
	"github.com/festrack/festrack/app/shared/sharedtypes"
	"github.com/festrack/festrack/internal/metrics"
)

// TotalsStore persists the cached point totals the ledger derives. The roster
// repository satisfies it directly.
type TotalsStore interface {
	UpdateTeamPoints(ctx context.Context, db bun.IDB, id int64, total int) error
	UpdateStudentPoints(ctx context.Context, db bun.IDB, id int64, total int) error
}

// ResultsReader supplies the positive-points result facts the global
// leaderboard is computed from.
type ResultsReader interface {
	EventPointsFacts(ctx context.Context, db bun.IDB) ([]sharedtypes.EventPointsFact, error)
}

// Service owns the points ledger and the global leaderboard.
type Service struct {
	repo    pointsdb.Repository
	totals  TotalsStore
	results ResultsReader
	logger  *slog.Logger
	metrics *metrics.Metrics
	db      *bun.DB
}

func NewService(
	repo pointsdb.Repository,
	totals TotalsStore,
	results ResultsReader,
	logger *slog.Logger,
	m *metrics.Metrics,
	db *bun.DB,
) *Service {
	return &Service{
		repo:    repo,
		totals:  totals,
		results: results,
		logger:  logger,
		metrics: m,
		db:      db,
	}
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
