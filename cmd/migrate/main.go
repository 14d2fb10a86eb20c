package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/feral-file/ff-crm/db"
	"github.com/feral-file/ff-crm/internal/config"
	"github.com/feral-file/ff-crm/internal/logger"
	"github.com/feral-file/ff-crm/internal/migrate"
	"github.com/feral-file/ff-crm/internal/seed"
	"github.com/feral-file/ff-crm/internal/store"
)

var (
	configFile string
	envPath    string
	steps      int
	seedFile   string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:           "migrate",
	Short:         "Manage the CRM database schema and RBAC catalog",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigrator(cmd.Context(), func(ctx context.Context, m *migrate.Migrator, _ *gorm.DB, _ *config.MigrateConfig) error {
			applied, err := m.Up(ctx)
			if err != nil {
				return err
			}
			version, err := m.Version(ctx)
			if err != nil {
				return err
			}
			logger.InfoCtx(ctx, "Migrations applied", zap.Int("applied", applied), zap.Uint("version", version))
			return nil
		})
	},
}

var downCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back applied migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		if steps <= 0 {
			return fmt.Errorf("--steps must be positive, got %d", steps)
		}
		return withMigrator(cmd.Context(), func(ctx context.Context, m *migrate.Migrator, _ *gorm.DB, _ *config.MigrateConfig) error {
			rolledBack, err := m.Down(ctx, steps)
			if err != nil {
				return err
			}
			logger.InfoCtx(ctx, "Migrations rolled back", zap.Int("rolled_back", rolledBack))
			return nil
		})
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "List migrations and whether they are applied",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigrator(cmd.Context(), func(ctx context.Context, m *migrate.Migrator, _ *gorm.DB, _ *config.MigrateConfig) error {
			statuses, err := m.Status(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, st := range statuses {
				appliedAt := "pending"
				if st.AppliedAt != nil {
					appliedAt = st.AppliedAt.UTC().Format(time.RFC3339)
				}
				fmt.Fprintf(out, "%04d  %-40s  %s\n", st.Version, st.Name, appliedAt) //nolint:errcheck
			}
			return nil
		})
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Apply the role and permission catalog",
	Long: `Apply the role and permission catalog.

Without --file the catalog embedded in the binary is used. Existing
permissions and grants are kept, so seeding is safe to repeat.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigrator(cmd.Context(), func(ctx context.Context, _ *migrate.Migrator, gormDB *gorm.DB, cfg *config.MigrateConfig) error {
			path := seedFile
			if path == "" {
				path = cfg.SeedFile
			}
			catalog, err := seed.Load(path)
			if err != nil {
				return err
			}
			_, err = seed.Apply(ctx, store.NewPGStore(gormDB), catalog)
			return err
		})
	},
}

// withMigrator loads configuration, connects to the database and hands a
// migrator over the embedded migrations to fn
func withMigrator(ctx context.Context, fn func(ctx context.Context, m *migrate.Migrator, gormDB *gorm.DB, cfg *config.MigrateConfig) error) error {
	config.ChdirRepoRoot()
	cfg, err := config.LoadMigrateConfig(configFile, envPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "migrate",
		},
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Flush(2 * time.Second)

	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{
		Logger: logger.NewGormLogger(cfg.Database.SlowThreshold),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}
	defer sqlDB.Close() //nolint:errcheck

	m, err := migrate.New(gormDB, db.Migrations, "migrations")
	if err != nil {
		return err
	}

	return fn(ctx, m, gormDB, cfg)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to configuration file")
	rootCmd.PersistentFlags().StringVar(&envPath, "env", "config/", "Path to environment files")

	downCmd.Flags().IntVar(&steps, "steps", 1, "Number of migrations to roll back")
	seedCmd.Flags().StringVar(&seedFile, "file", "", "Path to a catalog file overriding the embedded one")

	rootCmd.AddCommand(upCmd, downCmd, statusCmd, seedCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logger.Error(err, zap.String("command", "migrate"))
		fmt.Fprintln(os.Stderr, err) //nolint:errcheck
		stop()
		os.Exit(1)
	}
}
