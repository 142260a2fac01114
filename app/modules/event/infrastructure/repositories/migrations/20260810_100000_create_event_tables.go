package eventmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	eventdb "github.com/festrack/festrack/app/modules/event/infrastructure/repositories"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating events, programs and event_announcements tables...")

		if _, err := db.NewCreateTable().Model((*eventdb.Event)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateTable().Model((*eventdb.Program)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateTable().Model((*eventdb.Announcement)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}

		if _, err := db.NewRaw("CREATE UNIQUE INDEX IF NOT EXISTS idx_programs_event_name ON programs (event_id, name)").Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewRaw("CREATE INDEX IF NOT EXISTS idx_programs_event_id ON programs (event_id)").Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewRaw("CREATE INDEX IF NOT EXISTS idx_announcements_event_id ON event_announcements (event_id)").Exec(ctx); err != nil {
			return err
		}

		fmt.Println("Event tables created successfully!")
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping events, programs and event_announcements tables...")

		if _, err := db.NewDropTable().Model((*eventdb.Announcement)(nil)).IfExists().Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewDropTable().Model((*eventdb.Program)(nil)).IfExists().Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewDropTable().Model((*eventdb.Event)(nil)).IfExists().Exec(ctx); err != nil {
			return err
		}

		fmt.Println("Event tables dropped successfully!")
		return nil
	})
}
