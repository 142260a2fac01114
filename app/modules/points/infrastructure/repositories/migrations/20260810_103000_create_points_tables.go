package pointsmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	pointsdb "github.com/festrack/festrack/app/modules/points/infrastructure/repositories"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating points_records table...")

		if _, err := db.NewCreateTable().Model((*pointsdb.PointsRecord)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}

		if _, err := db.NewRaw("CREATE INDEX IF NOT EXISTS idx_points_event_id ON points_records (event_id)").Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewRaw("CREATE INDEX IF NOT EXISTS idx_points_team_id ON points_records (team_id)").Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewRaw("CREATE INDEX IF NOT EXISTS idx_points_student_id ON points_records (student_id)").Exec(ctx); err != nil {
			return err
		}

		fmt.Println("Points table created successfully!")
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping points_records table...")

		if _, err := db.NewDropTable().Model((*pointsdb.PointsRecord)(nil)).IfExists().Exec(ctx); err != nil {
			return err
		}

		fmt.Println("Points table dropped successfully!")
		return nil
	})
}
