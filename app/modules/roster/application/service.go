package rosterservice

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/uptrace/bun"

	rosterdb "github.com/festrack/festrack/app/modules/roster/infrastructure/repositories"
	"github.com/festrack/festrack/internal/metrics"
)

// CompetitionCleaner removes assignment/result/chest-number facts owned by the
// competition module when a team goes away.
type CompetitionCleaner interface {
	DeleteForTeam(ctx context.Context, db bun.IDB, teamID int64) error
}

// PointsCleaner removes points facts for a team.
type PointsCleaner interface {
	DeleteForTeam(ctx context.Context, db bun.IDB, teamID int64) error
}

// Service owns the team and student roster: creation, manager credentials,
// team numbering, and the team-deletion cascade.
type Service struct {
	repo        rosterdb.Repository
	competition CompetitionCleaner
	points      PointsCleaner
	logger      *slog.Logger
	metrics     *metrics.Metrics
	db          *bun.DB
}

func NewService(
	repo rosterdb.Repository,
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
