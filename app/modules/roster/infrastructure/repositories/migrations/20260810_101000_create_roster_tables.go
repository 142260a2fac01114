package rostermigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	rosterdb "github.com/festrack/festrack/app/modules/roster/infrastructure/repositories"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating teams and students tables...")

		if _, err := db.NewCreateTable().Model((*rosterdb.Team)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateTable().Model((*rosterdb.Student)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}

		// student_id uniqueness is per category (the same id can exist in hs
		// and hss pools).
		if _, err := db.NewRaw("CREATE UNIQUE INDEX IF NOT EXISTS idx_students_student_id_category ON students (student_id, category)").Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewRaw("CREATE INDEX IF NOT EXISTS idx_students_team_id ON students (team_id)").Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewRaw("CREATE UNIQUE INDEX IF NOT EXISTS idx_teams_team_number ON teams (team_number)").Exec(ctx); err != nil {
			return err
		}

		fmt.Println("Roster tables created successfully!")
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping teams and students tables...")

		if _, err := db.NewDropTable().Model((*rosterdb.Student)(nil)).IfExists().Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewDropTable().Model((*rosterdb.Team)(nil)).IfExists().Exec(ctx); err != nil {
			return err
		}

		fmt.Println("Roster tables dropped successfully!")
		return nil
	})
}
