package database

import (
	"context"
	"embed"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/leondli/centriq/internal/infrastructure/logger"
)

// embed migrations sql folder
//
//go:embed migrations/*.sql
var embedMigrations embed.FS

const migrationsDir = "migrations"

// gooseLogger routes goose output through zerolog
type gooseLogger struct {
	log zerolog.Logger
}

func (l gooseLogger) Printf(format string, v ...interface{}) {
	l.log.Info().Msg(fmt.Sprintf(format, v...))
}

func (l gooseLogger) Fatalf(format string, v ...interface{}) {
	l.log.Fatal().Msg(fmt.Sprintf(format, v...))
}

func setupGoose() error {
	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(gooseLogger{log: logger.NewLogger("migrations")})
	return goose.SetDialect("postgres")
}

// MigrateUp applies every pending migration
func MigrateUp(ctx context.Context, gdb *gorm.DB) error {
	sqlDB, err := gdb.DB()
	if err != nil {
		return errors.Wrap(err, "failed to get underlying sql.DB")
	}
	if err := setupGoose(); err != nil {
		return err
	}
	if err := goose.UpContext(ctx, sqlDB, migrationsDir); err != nil {
		return errors.Wrap(err, "unable to run migrations")
	}
	return nil
}

// MigrateDown rolls back the latest migration
func MigrateDown(ctx context.Context, gdb *gorm.DB) error {
	sqlDB, err := gdb.DB()
	if err != nil {
		return errors.Wrap(err, "failed to get underlying sql.DB")
	}
	if err := setupGoose(); err != nil {
		return err
	}
	if err := goose.DownContext(ctx, sqlDB, migrationsDir); err != nil {
		return errors.Wrap(err, "unable to roll back migration")
	}
	return nil
}

// MigrationStatus logs the applied state of every migration
func MigrationStatus(ctx context.Context, gdb *gorm.DB) error {
	sqlDB, err := gdb.DB()
	if err != nil {
		return errors.Wrap(err, "failed to get underlying sql.DB")
	}
	if err := setupGoose(); err != nil {
		return err
	}
	return goose.StatusContext(ctx, sqlDB, migrationsDir)
}
