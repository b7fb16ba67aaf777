package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/polancolabs/growthlab/internal/adapters/turso"
	"github.com/polancolabs/growthlab/internal/infrastructure/config"
	"github.com/polancolabs/growthlab/internal/migrate"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate [version]",
	Short: "Run database migrations",
	Long: `Run database migrations.

Without arguments, runs all pending migrations (up).
With a version number, migrates to that specific version (up or down as needed).

Examples:
  growthlab migrate      # Run all pending migrations
  growthlab migrate 1    # Migrate to version 1
  growthlab migrate 0    # Rollback all migrations`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMigrateCmd,
}

func runMigrateCmd(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadServer()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	dbPath, err := cfg.Database.ResolveDBPath()
	if err != nil {
		return fmt.Errorf("failed to resolve database path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := turso.NewDB(dbPath)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := migrate.EnsureMigrationsTable(ctx, db); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	currentVersion, dirty, err := migrate.CurrentVersion(ctx, db)
	if err != nil {
		return fmt.Errorf("failed to get current version: %w", err)
	}
	if dirty {
		return fmt.Errorf("database is in dirty state at version %d, manual intervention required", currentVersion)
	}

	fmt.Printf("Current version: %d\n", currentVersion)

	if len(args) == 0 {
		return migrate.RunAll(ctx, db)
	}

	targetVersion, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid version number: %s", args[0])
	}

	all, err := migrate.LoadMigrations()
	if err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}

	switch {
	case targetVersion > currentVersion:
		for _, m := range all {
			if m.Version <= currentVersion || m.Version > targetVersion {
				continue
			}
			fmt.Printf("Applying %03d_%s...\n", m.Version, m.Name)
			if err := migrate.RunMigration(ctx, db, m, true); err != nil {
				return err
			}
		}
	case targetVersion < currentVersion:
		return migrate.MigrateDownTo(ctx, db, all, currentVersion, targetVersion)
	default:
		fmt.Println("Already at target version")
	}
	return nil
}
