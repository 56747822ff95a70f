package migrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	teamdb "github.com/artifa-fest/registration/app/modules/team/infrastructure/repositories"
)

func init() {
	Migrations.MustRegister(
		func(ctx context.Context, db *bun.DB) error {
			fmt.Println("Creating teams and team_members tables...")
			if _, err := db.NewCreateTable().Model((*teamdb.Team)(nil)).IfNotExists().Exec(ctx); err != nil {
				return err
			}
			if _, err := db.NewCreateTable().Model((*teamdb.TeamMember)(nil)).IfNotExists().Exec(ctx); err != nil {
				return err
			}
			indexes := []struct {
				model   interface{}
				name    string
				columns []string
			}{
				{(*teamdb.Team)(nil), "idx_teams_event_created_at", []string{"event_id", "created_at"}},
				{(*teamdb.Team)(nil), "idx_teams_created_by", []string{"created_by_id"}},
				{(*teamdb.TeamMember)(nil), "idx_team_members_team_status", []string{"team_id", "status"}},
				{(*teamdb.TeamMember)(nil), "idx_team_members_registration_status", []string{"registration_id", "status"}},
			}
			for _, idx := range indexes {
				if _, err := db.NewCreateIndex().
					Model(idx.model).
					Index(idx.name).
					Column(idx.columns...).
					IfNotExists().
					Exec(ctx); err != nil {
					return err
				}
			}
			fmt.Println("teams and team_members tables created successfully!")
			return nil
		},
		func(ctx context.Context, db *bun.DB) error {
			fmt.Println("Dropping teams and team_members tables...")
			if _, err := db.NewDropTable().Model((*teamdb.TeamMember)(nil)).IfExists().Cascade().Exec(ctx); err != nil {
				return err
			}
			if _, err := db.NewDropTable().Model((*teamdb.Team)(nil)).IfExists().Cascade().Exec(ctx); err != nil {
				return err
			}
			return nil
		},
	)
}
