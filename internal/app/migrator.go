package app

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

// Migrator применяет goose-миграции из каталога к базе пула
type Migrator struct {
	db     *sql.DB
	dir    string
	logger *zap.Logger
}

func NewMigrator(pool *pgxpool.Pool, dir string, logger *zap.Logger) (*Migrator, error) {
	if err := goose.SetDialect("postgres"); err != nil {
		return nil, fmt.Errorf("set goose dialect: %w", err)
	}
	goose.SetLogger(NewStdLogger(logger, "goose"))

	return &Migrator{
		db:     stdlib.OpenDBFromPool(pool),
		dir:    dir,
		logger: logger,
	}, nil
}

// Run накатывает недостающие миграции и логирует итоговую версию схемы
func (mg *Migrator) Run(ctx context.Context) error {
	current, err := mg.Version(ctx)
	if err != nil {
		return err
	}

	pending, err := goose.CollectMigrations(mg.dir, current, goose.MaxVersion)
	if err != nil {
		return fmt.Errorf("collect migrations: %w", err)
	}
	if len(pending) == 0 {
		mg.logger.Info("✅ Database schema is up to date", zap.Int64("version", current))
		return nil
	}

	mg.logger.Info("🔄 Applying database migrations...",
		zap.String("dir", mg.dir),
		zap.Int64("from_version", current),
		zap.Int("pending", len(pending)),
	)

	if err := goose.UpContext(ctx, mg.db, mg.dir); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	version, err := mg.Version(ctx)
	if err != nil {
		return err
	}

	mg.logger.Info("✅ Migrations applied", zap.Int64("version", version))
	return nil
}

func (mg *Migrator) Version(ctx context.Context) (int64, error) {
	version, err := goose.GetDBVersionContext(ctx, mg.db)
	if err != nil {
		return 0, fmt.Errorf("get schema version: %w", err)
	}
	return version, nil
}

// Close закрывает *sql.DB поверх пула; сам пул закрывает main
func (mg *Migrator) Close() error {
	return mg.db.Close()
}
