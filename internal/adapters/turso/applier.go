package turso

import (
	"context"
	"database/sql"
	"sync"

	"go.uber.org/zap"

	"github.com/polancolabs/growthlab/internal/ports"
)

// Applier drains persist intents onto the database in the background. The
// submitting mutation handler never waits on storage: a full queue drops the
// intent with a log line and local state stays authoritative.
type Applier struct {
	projects *ProjectRepository
	team     *TeamRepository
	notifier ports.ChangeNotifier
	logger   *zap.Logger

	queue chan ports.Intent
	done  chan struct{}
	once  sync.Once
}

const applierQueueSize = 256

func NewApplier(db *sql.DB, notifier ports.ChangeNotifier, logger *zap.Logger) *Applier {
	if notifier == nil {
		notifier = ports.NoopNotifier{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &Applier{
		projects: NewProjectRepository(db),
		team:     NewTeamRepository(db),
		notifier: notifier,
		logger:   logger,
		queue:    make(chan ports.Intent, applierQueueSize),
		done:     make(chan struct{}),
	}
	go a.run()
	return a
}

// Submit queues an intent without blocking.
func (a *Applier) Submit(intent ports.Intent) {
	select {
	case a.queue <- intent:
	default:
		a.logger.Warn("persist queue full, dropping intent",
			zap.String("kind", string(intent.Kind)),
			zap.String("op", string(intent.Op)),
			zap.String("entity_id", intent.EntityID))
	}
}

// Close stops the worker after the queue drains.
func (a *Applier) Close() {
	a.once.Do(func() {
		close(a.queue)
		<-a.done
	})
}

func (a *Applier) run() {
	defer close(a.done)
	ctx := context.Background()
	for intent := range a.queue {
		if err := a.apply(ctx, intent); err != nil {
			a.logger.Error("failed to persist intent",
				zap.String("kind", string(intent.Kind)),
				zap.String("op", string(intent.Op)),
				zap.String("entity_id", intent.EntityID),
				zap.Error(err))
			continue
		}
		if intent.ProjectID != "" {
			if err := a.notifier.Publish(ctx, intent.ProjectID); err != nil {
				a.logger.Warn("failed to publish change notification",
					zap.String("project_id", intent.ProjectID),
					zap.Error(err))
			}
		}
	}
}

func (a *Applier) apply(ctx context.Context, intent ports.Intent) error {
	switch intent.Kind {
	case ports.KindProject:
		if intent.Op == ports.OpDelete {
			return a.projects.Delete(ctx, intent.EntityID)
		}
		return a.projects.Create(ctx, intent.Project)
	case ports.KindNorthStar:
		return a.projects.UpdateNorthStar(ctx, intent.ProjectID, intent.NorthStar)
	case ports.KindObjective:
		if intent.Op == ports.OpDelete {
			return a.projects.DeleteObjective(ctx, intent.EntityID)
		}
		return a.projects.UpsertObjective(ctx, intent.ProjectID, intent.Objective)
	case ports.KindStrategy:
		if intent.Op == ports.OpDelete {
			return a.projects.DeleteStrategy(ctx, intent.EntityID)
		}
		return a.projects.UpsertStrategy(ctx, intent.ProjectID, intent.Strategy)
	case ports.KindExperiment:
		if intent.Op == ports.OpDelete {
			return a.projects.DeleteExperiment(ctx, intent.EntityID)
		}
		return a.projects.UpsertExperiment(ctx, intent.ProjectID, intent.Experiment)
	case ports.KindTeamMember:
		switch intent.Op {
		case ports.OpDelete:
			return a.team.Delete(ctx, intent.EntityID)
		case ports.OpCreate:
			return a.team.Create(ctx, intent.Member)
		default:
			return a.team.Update(ctx, intent.Member)
		}
	}
	return nil
}
