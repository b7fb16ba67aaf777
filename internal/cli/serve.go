package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/polancolabs/growthlab/internal/adapters/otel"
	"github.com/polancolabs/growthlab/internal/adapters/realtime"
	"github.com/polancolabs/growthlab/internal/adapters/turso"
	"github.com/polancolabs/growthlab/internal/infrastructure/config"
	"github.com/polancolabs/growthlab/internal/migrate"
	"github.com/polancolabs/growthlab/internal/ports"
	"github.com/polancolabs/growthlab/internal/web"
	"github.com/polancolabs/growthlab/internal/workspace"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web dashboard",
	Long: `Start the local web dashboard server.

Loads every project into memory, applies mutations there, and persists
them to the database in the background.

Examples:
  growthlab serve                               # Listen on default :8321
  GROWTHLAB_ADDR=:3000 growthlab serve          # Listen on port 3000
  GROWTHLAB_REDIS_ADDR=localhost:6379 growthlab serve  # With live refresh`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadServer()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Sync()

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

	// Create context that cancels on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nShutting down...")
		cancel()
	}()

	if err := migrate.RunAll(ctx, db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	var notifier ports.ChangeNotifier = ports.NoopNotifier{}
	var rt *realtime.Client
	if cfg.Realtime.RedisAddr != "" {
		rt, err = realtime.NewClient(&redis.Options{
			Addr:     cfg.Realtime.RedisAddr,
			Password: cfg.Realtime.RedisPassword,
		}, cfg.Realtime.Workspace)
		if err != nil {
			return fmt.Errorf("failed to create realtime client: %w", err)
		}
		defer rt.Close()
		if err := rt.Ping(ctx); err != nil {
			return fmt.Errorf("failed to reach redis: %w", err)
		}
		notifier = rt
		logger.Info("realtime notifications enabled",
			zap.String("addr", cfg.Realtime.RedisAddr),
			zap.String("workspace", cfg.Realtime.Workspace))
	}

	var metrics ports.MetricsExporter
	otelCfg := otel.LoadConfig()
	if otelCfg.Enabled {
		exporter, err := otel.NewExporter(ctx, otelCfg)
		if err != nil {
			return fmt.Errorf("failed to create OTEL exporter: %w", err)
		}
		defer exporter.Close(context.Background())
		metrics = exporter
	} else {
		metrics = otel.NewNoOpExporter()
	}

	applier := turso.NewApplier(db, notifier, logger)
	defer applier.Close()

	ws := workspace.New(applier, metrics, logger)

	projectRepo := turso.NewProjectRepository(db)
	projects, err := projectRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to load projects: %w", err)
	}
	ws.Load(projects)

	teamRepo := turso.NewTeamRepository(db)
	members, err := teamRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to load team: %w", err)
	}
	ws.LoadTeam(members)

	logger.Info("workspace loaded",
		zap.Int("projects", len(projects)),
		zap.Int("members", len(members)))

	if rt != nil {
		sub, err := rt.Subscribe(ctx)
		if err != nil {
			return fmt.Errorf("failed to subscribe to project changes: %w", err)
		}
		defer sub.Cancel()
		go refetchLoop(ctx, sub, projectRepo, ws, logger)
	}

	server := web.NewServer(ws, cfg.Addr, logger)
	return server.Start(ctx)
}

// refetchLoop re-reads a project from storage whenever another process
// announces a change, then swaps the fresh snapshot into the workspace.
// A missing row means the project was deleted elsewhere and is dropped.
func refetchLoop(ctx context.Context, sub *realtime.Subscription, repo *turso.ProjectRepository, ws *workspace.Workspace, logger *zap.Logger) {
	for projectID := range sub.Events() {
		snapshot, err := repo.GetByID(ctx, projectID)
		if err != nil {
			logger.Warn("failed to refetch project",
				zap.String("project_id", projectID),
				zap.Error(err))
			continue
		}
		ws.Refresh(projectID, snapshot)
	}
}
