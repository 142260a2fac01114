package competitionmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	competitiondb "github.com/festrack/festrack/app/modules/competition/infrastructure/repositories"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating program_assignments, chest_numbers and program_results tables...")

		if _, err := db.NewCreateTable().Model((*competitiondb.ProgramAssignment)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateTable().Model((*competitiondb.ChestNumber)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateTable().Model((*competitiondb.ProgramResult)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}

		if _, err := db.NewRaw("CREATE UNIQUE INDEX IF NOT EXISTS idx_assignments_program_student ON program_assignments (program_id, student_id)").Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewRaw("CREATE INDEX IF NOT EXISTS idx_assignments_event_id ON program_assignments (event_id)").Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewRaw("CREATE INDEX IF NOT EXISTS idx_assignments_team_id ON program_assignments (team_id)").Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewRaw("CREATE UNIQUE INDEX IF NOT EXISTS idx_chest_numbers_event_student ON chest_numbers (event_id, student_id)").Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewRaw("CREATE UNIQUE INDEX IF NOT EXISTS idx_results_program_participant ON program_results (program_id, participant_id)").Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewRaw("CREATE INDEX IF NOT EXISTS idx_results_event_id ON program_results (event_id)").Exec(ctx); err != nil {
			return err
		}

		fmt.Println("Competition tables created successfully!")
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping program_assignments, chest_numbers and program_results tables...")

		if _, err := db.NewDropTable().Model((*competitiondb.ProgramResult)(nil)).IfExists().Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewDropTable().Model((*competitiondb.ChestNumber)(nil)).IfExists().Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewDropTable().Model((*competitiondb.ProgramAssignment)(nil)).IfExists().Exec(ctx); err != nil {
			return err
		}

		fmt.Println("Competition tables dropped successfully!")
		return nil
	})
}
