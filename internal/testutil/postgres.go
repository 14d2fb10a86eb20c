// Package testutil starts the Postgres instance used by integration tests
// and applies the embedded migrations to it.
package testutil

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/feral-file/ff-crm/db"
	"github.com/feral-file/ff-crm/internal/migrate"
)

// PostgresDB is a migrated test database
type PostgresDB struct {
	DB        *gorm.DB
	DSN       string
	container *postgres.PostgresContainer
}

// StartPostgres connects to the database named by TEST_DB_* or, when
// TEST_DB_HOST is unset, starts a PostgreSQL container. The schema is
// migrated to the latest version unless migrated is false.
func StartPostgres(ctx context.Context, migrated bool) (*PostgresDB, error) {
	pg := &PostgresDB{}

	if dbHost := os.Getenv("TEST_DB_HOST"); dbHost != "" {
		pg.DSN = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			dbHost,
			envOr("TEST_DB_PORT", "5432"),
			envOr("TEST_DB_USER", "postgres"),
			envOr("TEST_DB_PASSWORD", "postgres"),
			envOr("TEST_DB_NAME", "test_db"))
		fmt.Printf("Using external database: %s\n", dbHost)
	} else {
		container, err := postgres.Run(ctx,
			"postgres:18-alpine",
			postgres.WithDatabase("test_db"),
			postgres.WithUsername("postgres"),
			postgres.WithPassword("postgres"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(30*time.Second)),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to start PostgreSQL container: %w", err)
		}
		pg.container = container

		pg.DSN, err = container.ConnectionString(ctx, "sslmode=disable")
		if err != nil {
			pg.Terminate(ctx)
			return nil, fmt.Errorf("failed to get connection string: %w", err)
		}
	}

	var err error
	pg.DB, err = gorm.Open(pgdriver.Open(pg.DSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		pg.Terminate(ctx)
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if !migrated {
		return pg, nil
	}

	m, err := migrate.New(pg.DB, db.Migrations, "migrations")
	if err != nil {
		pg.Terminate(ctx)
		return nil, err
	}
	if _, err := m.Up(ctx); err != nil {
		pg.Terminate(ctx)
		return nil, fmt.Errorf("failed to migrate test database: %w", err)
	}

	return pg, nil
}

// Terminate stops the container, if one was started
func (p *PostgresDB) Terminate(ctx context.Context) {
	if p.container == nil {
		return
	}
	if err := p.container.Terminate(ctx); err != nil {
		fmt.Printf("Failed to terminate PostgreSQL container: %v\n", err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
