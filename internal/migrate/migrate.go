// Package migrate applies the embedded NNNN_name.{up,down}.sql migrations
// and tracks the applied versions in schema_migrations.
package migrate

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/feral-file/ff-crm/internal/logger"
)

// lockID is the pg_advisory_lock key held while migrating
const lockID = 7_251_994_031

// ErrNoMigrations is returned when the source directory holds no migration
var ErrNoMigrations = errors.New("no migrations found")

// Migration is one up/down pair
type Migration struct {
	Version uint
	Name    string
	Up      string
	Down    string
}

// Status describes a migration and whether it has been applied
type Status struct {
	Version   uint       `json:"version"`
	Name      string     `json:"name"`
	Applied   bool       `json:"applied"`
	AppliedAt *time.Time `json:"applied_at,omitempty"`
}

// schemaMigration represents the schema_migrations table
type schemaMigration struct {
	Version   uint      `gorm:"column:version;primaryKey"`
	Name      string    `gorm:"column:name;type:text;not null"`
	AppliedAt time.Time `gorm:"column:applied_at;not null;default:now()"`
}

func (schemaMigration) TableName() string {
	return "schema_migrations"
}

// Migrator applies migrations to a database
type Migrator struct {
	db         *gorm.DB
	migrations []Migration
}

// New loads the migrations under dir in fsys
func New(db *gorm.DB, fsys fs.FS, dir string) (*Migrator, error) {
	migrations, err := Load(fsys, dir)
	if err != nil {
		return nil, err
	}
	return &Migrator{db: db, migrations: migrations}, nil
}

// Migrations returns the loaded migrations in ascending version order
func (m *Migrator) Migrations() []Migration {
	return m.migrations
}

// Load parses NNNN_name.up.sql / NNNN_name.down.sql files. Every version
// must have both halves and versions must be unique.
func Load(fsys fs.FS, dir string) ([]Migration, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	byVersion := make(map[uint]*Migration)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		var direction string
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			direction = "up"
		case strings.HasSuffix(name, ".down.sql"):
			direction = "down"
		default:
			continue
		}

		prefix, rest, ok := strings.Cut(name, "_")
		if !ok {
			return nil, fmt.Errorf("invalid migration file name %q", name)
		}
		v, err := strconv.ParseUint(prefix, 10, 32)
		if err != nil || v == 0 {
			return nil, fmt.Errorf("invalid migration version in %q", name)
		}
		version := uint(v)

		body, err := fs.ReadFile(fsys, path.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}

		mig, ok := byVersion[version]
		if !ok {
			mig = &Migration{Version: version}
			byVersion[version] = mig
		}

		label := strings.TrimSuffix(rest, "."+direction+".sql")
		if mig.Name != "" && mig.Name != label {
			return nil, fmt.Errorf("migration %d has conflicting names %q and %q", version, mig.Name, label)
		}
		mig.Name = label

		if direction == "up" {
			mig.Up = string(body)
		} else {
			mig.Down = string(body)
		}
	}

	if len(byVersion) == 0 {
		return nil, ErrNoMigrations
	}

	migrations := make([]Migration, 0, len(byVersion))
	for _, mig := range byVersion {
		if mig.Up == "" || mig.Down == "" {
			return nil, fmt.Errorf("migration %04d_%s is missing its up or down file", mig.Version, mig.Name)
		}
		migrations = append(migrations, *mig)
	}
	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})

	return migrations, nil
}

// Up applies every pending migration in ascending order, each in its own
// transaction. It returns the number of migrations applied.
func (m *Migrator) Up(ctx context.Context) (int, error) {
	applied := 0
	err := m.withLock(ctx, func(conn *sql.Conn) error {
		done, err := m.appliedVersions(ctx)
		if err != nil {
			return err
		}

		for _, mig := range m.migrations {
			if _, ok := done[mig.Version]; ok {
				continue
			}

			start := time.Now()
			if err := execInTx(ctx, conn, mig.Up,
				"INSERT INTO schema_migrations (version, name) VALUES ($1, $2)", mig.Version, mig.Name); err != nil {
				return fmt.Errorf("failed to apply migration %04d_%s: %w", mig.Version, mig.Name, err)
			}
			applied++

			logger.InfoCtx(ctx, "Applied migration",
				zap.Uint("version", mig.Version),
				zap.String("name", mig.Name),
				zap.Duration("took", time.Since(start)))
		}
		return nil
	})

	return applied, err
}

// Down rolls back the most recent applied migrations in descending order.
// steps <= 0 rolls back everything.
func (m *Migrator) Down(ctx context.Context, steps int) (int, error) {
	rolledBack := 0
	err := m.withLock(ctx, func(conn *sql.Conn) error {
		done, err := m.appliedVersions(ctx)
		if err != nil {
			return err
		}

		for i := len(m.migrations) - 1; i >= 0; i-- {
			if steps > 0 && rolledBack >= steps {
				break
			}

			mig := m.migrations[i]
			if _, ok := done[mig.Version]; !ok {
				continue
			}

			if err := execInTx(ctx, conn, mig.Down,
				"DELETE FROM schema_migrations WHERE version = $1", mig.Version); err != nil {
				return fmt.Errorf("failed to roll back migration %04d_%s: %w", mig.Version, mig.Name, err)
			}
			rolledBack++

			logger.InfoCtx(ctx, "Rolled back migration",
				zap.Uint("version", mig.Version),
				zap.String("name", mig.Name))
		}
		return nil
	})

	return rolledBack, err
}

// Status lists every known migration with its applied state
func (m *Migrator) Status(ctx context.Context) ([]Status, error) {
	if err := m.ensureTable(ctx); err != nil {
		return nil, err
	}

	done, err := m.appliedVersions(ctx)
	if err != nil {
		return nil, err
	}

	statuses := make([]Status, 0, len(m.migrations))
	for _, mig := range m.migrations {
		st := Status{Version: mig.Version, Name: mig.Name}
		if row, ok := done[mig.Version]; ok {
			appliedAt := row.AppliedAt
			st.Applied = true
			st.AppliedAt = &appliedAt
		}
		statuses = append(statuses, st)
	}

	return statuses, nil
}

// Version returns the highest applied version, or 0 when nothing is applied
func (m *Migrator) Version(ctx context.Context) (uint, error) {
	if err := m.ensureTable(ctx); err != nil {
		return 0, err
	}

	var version uint
	err := m.db.WithContext(ctx).
		Model(&schemaMigration{}).
		Select("COALESCE(MAX(version), 0)").
		Scan(&version).Error
	if err != nil {
		return 0, fmt.Errorf("failed to get schema version: %w", err)
	}

	return version, nil
}

func (m *Migrator) ensureTable(ctx context.Context) error {
	err := m.db.WithContext(ctx).Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
		version    INTEGER PRIMARY KEY,
		name       TEXT NOT NULL,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`).Error
	if err != nil {
		return fmt.Errorf("failed to create schema_migrations: %w", err)
	}
	return nil
}

func (m *Migrator) appliedVersions(ctx context.Context) (map[uint]schemaMigration, error) {
	var rows []schemaMigration
	if err := m.db.WithContext(ctx).Order("version").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list applied migrations: %w", err)
	}

	done := make(map[uint]schemaMigration, len(rows))
	for _, row := range rows {
		done[row.Version] = row
	}
	return done, nil
}

// withLock runs fn on a dedicated connection holding the migration advisory lock
func (m *Migrator) withLock(ctx context.Context, fn func(conn *sql.Conn) error) error {
	if err := m.ensureTable(ctx); err != nil {
		return err
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	conn, err := sqlDB.Conn(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer func() {
		_ = conn.Close()
	}()

	if _, err := conn.ExecContext(ctx, "SELECT pg_advisory_lock($1)", lockID); err != nil {
		return fmt.Errorf("failed to acquire migration lock: %w", err)
	}
	defer func() {
		// A cancelled ctx must not leave the lock held on a pooled connection
		if _, err := conn.ExecContext(context.Background(), "SELECT pg_advisory_unlock($1)", lockID); err != nil {
			logger.ErrorCtx(ctx, fmt.Errorf("failed to release migration lock: %w", err))
		}
	}()

	return fn(conn)
}

// execInTx runs a migration body and its bookkeeping statement atomically.
// The body is sent without arguments so it goes over the simple protocol
// and may contain several statements.
func execInTx(ctx context.Context, conn *sql.Conn, body, bookkeeping string, args ...any) error {
	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if _, err := tx.ExecContext(ctx, body); err != nil {
		_ = tx.Rollback()
		return err
	}

	if _, err := tx.ExecContext(ctx, bookkeeping, args...); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to record migration: %w", err)
	}

	return tx.Commit()
}
