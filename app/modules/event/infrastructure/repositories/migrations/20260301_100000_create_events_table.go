package migrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	eventdb "github.com/artifa-fest/registration/app/modules/event/infrastructure/repositories"
)

func init() {
	Migrations.MustRegister(
		func(ctx context.Context, db *bun.DB) error {
			fmt.Println("Creating events table...")
			if _, err := db.NewCreateTable().Model((*eventdb.Event)(nil)).IfNotExists().Exec(ctx); err != nil {
				return err
			}
			if _, err := db.NewCreateIndex().
				Model((*eventdb.Event)(nil)).
				Index("idx_events_event_type").
				Column("event_type").
				IfNotExists().
				Exec(ctx); err != nil {
				return err
			}
			fmt.Println("events table created successfully!")
			return nil
		},
		func(ctx context.Context, db *bun.DB) error {
			fmt.Println("Dropping events table...")
			if _, err := db.NewDropTable().Model((*eventdb.Event)(nil)).IfExists().Cascade().Exec(ctx); err != nil {
				return err
			}
			return nil
		},
	)
}
