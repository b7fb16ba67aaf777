package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/polancolabs/growthlab/internal/adapters/turso"
	"github.com/polancolabs/growthlab/internal/domain"
	"github.com/polancolabs/growthlab/internal/infrastructure/config"
	"github.com/polancolabs/growthlab/internal/migrate"
	"github.com/polancolabs/growthlab/internal/seed"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create a demo project with the starter template",
	Long: `Create a demo project seeded with the starter template: three
objectives, six strategies and three scored experiments.

Examples:
  growthlab seed
  growthlab seed --name "Acme Growth" --metric "Monthly Recurring Revenue" --target 100000`,
	RunE: runSeed,
}

var (
	seedName   string
	seedMetric string
	seedUnit   string
	seedTarget float64
)

func init() {
	seedCmd.Flags().StringVar(&seedName, "name", "Demo Project", "Project name")
	seedCmd.Flags().StringVar(&seedMetric, "metric", "Monthly Recurring Revenue", "North Star metric name")
	seedCmd.Flags().StringVar(&seedUnit, "unit", "$", "Metric unit symbol")
	seedCmd.Flags().Float64Var(&seedTarget, "target", 100000, "Metric target value")
}

func runSeed(cmd *cobra.Command, args []string) error {
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

	if err := migrate.RunAll(ctx, db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	objectives, strategies, experiments, err := seed.StarterTemplate(seedMetric)
	if err != nil {
		return fmt.Errorf("failed to build starter template: %w", err)
	}

	project := &domain.Project{
		Metadata: domain.ProjectMetadata{
			ID:        uuid.NewString(),
			Name:      seedName,
			CreatedAt: time.Now(),
		},
		NorthStar: domain.NorthStarMetric{
			Name:        seedMetric,
			TargetValue: seedTarget,
			Unit:        seedUnit,
			Type:        domain.TypeForUnit(seedUnit),
		},
		Objectives:  objectives,
		Strategies:  strategies,
		Experiments: experiments,
	}

	if err := turso.NewProjectRepository(db).Create(ctx, project); err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}

	fmt.Printf("Created project %q (%s) with %d objectives, %d strategies, %d experiments\n",
		seedName, project.Metadata.ID, len(objectives), len(strategies), len(experiments))
	return nil
}
