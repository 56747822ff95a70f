package migrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	registrationdb "github.com/artifa-fest/registration/app/modules/registration/infrastructure/repositories"
)

func init() {
	Migrations.MustRegister(
		func(ctx context.Context, db *bun.DB) error {
			fmt.Println("Creating registrations and identities tables...")
			if _, err := db.NewCreateTable().Model((*registrationdb.Registration)(nil)).IfNotExists().Exec(ctx); err != nil {
				return err
			}
			if _, err := db.NewCreateTable().Model((*registrationdb.Identity)(nil)).IfNotExists().Exec(ctx); err != nil {
				return err
			}
			indexes := []struct {
				name    string
				columns []string
			}{
				{"idx_registrations_register_number", []string{"register_number"}},
				{"idx_registrations_event_register_number", []string{"event_id", "register_number"}},
				{"idx_registrations_event_is_team_lead", []string{"event_id", "is_team_lead"}},
				{"idx_registrations_registered_at", []string{"registered_at"}},
			}
			for _, idx := range indexes {
				if _, err := db.NewCreateIndex().
					Model((*registrationdb.Registration)(nil)).
					Index(idx.name).
					Column(idx.columns...).
					IfNotExists().
					Exec(ctx); err != nil {
					return err
				}
			}
			fmt.Println("registrations and identities tables created successfully!")
			return nil
		},
		func(ctx context.Context, db *bun.DB) error {
			fmt.Println("Dropping registrations and identities tables...")
			if _, err := db.NewDropTable().Model((*registrationdb.Registration)(nil)).IfExists().Cascade().Exec(ctx); err != nil {
				return err
			}
			if _, err := db.NewDropTable().Model((*registrationdb.Identity)(nil)).IfExists().Cascade().Exec(ctx); err != nil {
				return err
			}
			return nil
		},
	)
}
