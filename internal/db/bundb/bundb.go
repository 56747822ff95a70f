package bundb

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	eventdb "github.com/artifa-fest/registration/app/modules/event/infrastructure/repositories"
	registrationdb "github.com/artifa-fest/registration/app/modules/registration/infrastructure/repositories"
	teamdb "github.com/artifa-fest/registration/app/modules/team/infrastructure/repositories"
	"github.com/artifa-fest/registration/config"
)

// DBService bundles the repositories with the shared bun connection.
type DBService struct {
	EventDB        *eventdb.EventDBImpl
	RegistrationDB *registrationdb.RegistrationDBImpl
	IdentityDB     *registrationdb.IdentityDBImpl
	TeamDB         *teamdb.TeamDBImpl
	db             *bun.DB
}

// GetDB returns the underlying database connection pool.
func (dbService *DBService) GetDB() *bun.DB {
	return dbService.db
}

// NewBunDBService initializes a new DBService with the provided Postgres
// configuration.
func NewBunDBService(ctx context.Context, cfg config.PostgresConfig) (*DBService, error) {
	sqldb, err := pgConn(ctx, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db := bun.NewDB(sqldb, pgdialect.New())

	db.RegisterModel((*eventdb.Event)(nil))
	db.RegisterModel((*registrationdb.Registration)(nil))
	db.RegisterModel((*registrationdb.Identity)(nil))
	db.RegisterModel((*teamdb.Team)(nil))
	db.RegisterModel((*teamdb.TeamMember)(nil))

	return &DBService{
		EventDB:        &eventdb.EventDBImpl{},
		RegistrationDB: &registrationdb.RegistrationDBImpl{},
		IdentityDB:     &registrationdb.IdentityDBImpl{},
		TeamDB:         &teamdb.TeamDBImpl{},
		db:             db,
	}, nil
}

func pgConn(ctx context.Context, dsn string) (*sql.DB, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))

	if err := sqldb.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return sqldb, nil
}
