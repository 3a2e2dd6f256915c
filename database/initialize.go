package database

import (
	"context"
	"fmt"
	"io/fs"
	"time"

	"shop-service/config"
	"shop-service/database/migrations"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

// InitializeDatabase opens the configured database and brings its schema
// up to date. The caller owns the returned pool and must Close it.
func InitializeDatabase(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*sqlx.DB, error) {
	dbConn, err := Open(ctx, cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		logger.Error("Failed to connect to database", zap.String("driver", cfg.DatabaseDriver), zap.Error(err))
		return nil, err
	}

	if err := Migrate(ctx, dbConn, cfg.DatabaseDriver); err != nil {
		dbConn.Close()
		return nil, fmt.Errorf("error while running migration: %w", err)
	}

	logger.Info("Database initialized successfully", zap.String("driver", cfg.DatabaseDriver))
	return dbConn, nil
}

// Open connects to dsn with driver and checks the connection.
func Open(ctx context.Context, driver, dsn string) (*sqlx.DB, error) {
	dbConn, err := openPool(driver, dsn)
	if err != nil {
		return nil, err
	}

	if err := dbConn.PingContext(ctx); err != nil {
		dbConn.Close()
		return nil, fmt.Errorf("error in ping to DB connection: %w", err)
	}
	return dbConn, nil
}

// openPool opens the pool without connecting.
func openPool(driver, dsn string) (*sqlx.DB, error) {
	if _, _, err := dialectFor(driver); err != nil {
		return nil, err
	}

	dbConn, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("error in opening a DB connection: %w", err)
	}

	dbConn.SetConnMaxLifetime(3 * time.Minute)
	dbConn.SetMaxOpenConns(10)
	dbConn.SetMaxIdleConns(10)
	return dbConn, nil
}

// Migrate applies every pending embedded migration for driver.
func Migrate(ctx context.Context, dbConn *sqlx.DB, driver string) error {
	dialect, dir, err := dialectFor(driver)
	if err != nil {
		return err
	}

	fsys, err := fs.Sub(migrations.FS, dir)
	if err != nil {
		return err
	}

	provider, err := goose.NewProvider(dialect, dbConn.DB, fsys)
	if err != nil {
		return err
	}

	_, err = provider.Up(ctx)
	return err
}

// CreateMigration writes a new empty SQL migration named name into dir.
func CreateMigration(dir, name string) error {
	return goose.Create(nil, dir, name, "sql")
}

func dialectFor(driver string) (goose.Dialect, string, error) {
	switch driver {
	case "sqlite3":
		return goose.DialectSQLite3, "sqlite", nil
	case "pgx":
		return goose.DialectPostgres, "postgres", nil
	default:
		return "", "", fmt.Errorf("unsupported database driver %q", driver)
	}
}
