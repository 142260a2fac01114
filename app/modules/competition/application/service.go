package competitionservice

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/uptrace/bun"

	competitiondb "github.com/festrack/festrack/app/modules/competition/infrastructure/repositories"
	"github.com/festrack/festrack/app/shared/sharedtypes"
	"github.com/festrack/festrack/internal/metrics"
)

// RosterReader supplies the student and team facts the engine needs. The db
// handle is forwarded so reads and chest-code writes join the caller's
// transaction.
type RosterReader interface {
	StudentInfo(ctx context.Context, db bun.IDB, id int64) (*sharedtypes.StudentInfo, error)
	TeamInfo(ctx context.Context, db bun.IDB, id int64) (*sharedtypes.TeamInfo, error)
	TeamCount(ctx context.Context, db bun.IDB) (int, error)
	SetStudentChestCode(ctx context.Context, db bun.IDB, id int64, code string) error
}

// ProgramReader supplies program configuration.
type ProgramReader interface {
	ProgramInfo(ctx context.Context, db bun.IDB, id int64) (*sharedtypes.ProgramInfo, error)
}

// PointsAwarder upserts point facts derived from rankings.
type PointsAwarder interface {
	Award(ctx context.Context, db bun.IDB, award sharedtypes.PointAward) error
}

// Service is the competition engine: chest-number allocation, the assignment
// ledger, mark aggregation and the ranking pass.
type Service struct {
	repo     competitiondb.Repository
	roster   RosterReader
	programs ProgramReader
	points   PointsAwarder
	logger   *slog.Logger
	metrics  *metrics.Metrics
	db       *bun.DB
}

func NewService(
	repo competitiondb.Repository,
	roster RosterReader,
	programs ProgramReader,
	points PointsAwarder,
	logger *slog.Logger,
	m *metrics.Metrics,
	db *bun.DB,
) *Service {
	return &Service{
		repo:     repo,
		roster:   roster,
		programs: programs,
		points:   points,
		logger:   logger,
		metrics:  m,
		db:       db,
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
