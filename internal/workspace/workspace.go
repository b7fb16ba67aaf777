// Package workspace holds the in-memory working state of every project and
// applies all mutations against it. Handlers run under a single mutex so
// each one observes a consistent prior state; persistence is fire-and-forget
// through a ports.IntentSink and never blocks or rolls back local state.
package workspace

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/polancolabs/growthlab/internal/domain"
	"github.com/polancolabs/growthlab/internal/ports"
)

// ErrNotFound is returned when a referenced project or entity is unknown.
var ErrNotFound = errors.New("not found")

// ValidationError reports a rejected mutation. The mutation is not applied
// and no partial state change occurs.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Pending stages a gated transition into a Finished state. The zero value
// means no transition is pending.
type Pending struct {
	ProjectID    string
	ExperimentID string
	Target       domain.Status
}

func (p Pending) active() bool { return p.ExperimentID != "" }

type selection struct {
	projectID  string
	experiment domain.Experiment
}

// Workspace is the store of all loaded projects and the global team roster,
// keyed by project id. Every mutation method takes an explicit project id;
// there is no hidden "current project".
type Workspace struct {
	mu          sync.Mutex
	projects    map[string]*domain.Project
	order       []string
	members     map[string]*domain.TeamMember
	memberOrder []string
	pending     Pending
	selected    *selection

	sink    ports.IntentSink
	metrics ports.MetricsExporter
	logger  *zap.Logger

	now   func() time.Time
	newID func() string
}

// Option customizes a Workspace.
type Option func(*Workspace)

// WithClock overrides the time source. Tests use it to pin dates.
func WithClock(now func() time.Time) Option {
	return func(w *Workspace) { w.now = now }
}

// WithIDGenerator overrides id generation.
func WithIDGenerator(gen func() string) Option {
	return func(w *Workspace) { w.newID = gen }
}

func New(sink ports.IntentSink, metrics ports.MetricsExporter, logger *zap.Logger, opts ...Option) *Workspace {
	if sink == nil {
		sink = ports.DiscardSink{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	w := &Workspace{
		projects: make(map[string]*domain.Project),
		members:  make(map[string]*domain.TeamMember),
		sink:     sink,
		metrics:  metrics,
		logger:   logger,
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Load replaces the project set with a snapshot from storage.
func (w *Workspace) Load(projects []*domain.Project) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.projects = make(map[string]*domain.Project, len(projects))
	w.order = w.order[:0]
	for _, p := range projects {
		w.projects[p.Metadata.ID] = p.Clone()
		w.order = append(w.order, p.Metadata.ID)
	}
}

// LoadTeam replaces the team roster with a snapshot from storage.
func (w *Workspace) LoadTeam(members []*domain.TeamMember) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.members = make(map[string]*domain.TeamMember, len(members))
	w.memberOrder = w.memberOrder[:0]
	for _, m := range members {
		c := m.Clone()
		w.members[m.ID] = &c
		w.memberOrder = append(w.memberOrder, m.ID)
	}
}

// Refresh overwrites a single project with server-confirmed data, or drops
// it when snapshot is nil. Realtime change notifications land here: last
// fetch wins, including over unpersisted local edits.
func (w *Workspace) Refresh(projectID string, snapshot *domain.Project) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if snapshot == nil {
		w.dropLocked(projectID)
		return
	}
	if _, ok := w.projects[projectID]; !ok {
		w.order = append(w.order, projectID)
	}
	w.projects[projectID] = snapshot.Clone()
}

func (w *Workspace) dropLocked(projectID string) {
	if _, ok := w.projects[projectID]; !ok {
		return
	}
	delete(w.projects, projectID)
	for i, id := range w.order {
		if id == projectID {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
	if w.pending.ProjectID == projectID {
		w.pending = Pending{}
	}
	if w.selected != nil && w.selected.projectID == projectID {
		w.selected = nil
	}
}

// Projects returns deep copies of all loaded projects in load order.
func (w *Workspace) Projects() []*domain.Project {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]*domain.Project, 0, len(w.order))
	for _, id := range w.order {
		out = append(out, w.projects[id].Clone())
	}
	return out
}

// Project returns a deep copy of one project.
func (w *Workspace) Project(id string) (*domain.Project, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	p, ok := w.projects[id]
	if !ok {
		return nil, fmt.Errorf("project %s: %w", id, ErrNotFound)
	}
	return p.Clone(), nil
}

// SelectExperiment records a copy of an experiment as the open detail view.
// Mutations that touch the experiment refresh this copy so it never goes
// stale relative to the collection.
func (w *Workspace) SelectExperiment(projectID, experimentID string) (domain.Experiment, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	p, ok := w.projects[projectID]
	if !ok {
		return domain.Experiment{}, fmt.Errorf("project %s: %w", projectID, ErrNotFound)
	}
	e := p.ExperimentByID(experimentID)
	if e == nil {
		return domain.Experiment{}, fmt.Errorf("experiment %s: %w", experimentID, ErrNotFound)
	}
	w.selected = &selection{projectID: projectID, experiment: e.Clone()}
	return e.Clone(), nil
}

// SelectedExperiment returns the current detail-view copy, if any.
func (w *Workspace) SelectedExperiment() (domain.Experiment, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.selected == nil {
		return domain.Experiment{}, false
	}
	return w.selected.experiment.Clone(), true
}

// ClearSelection closes the detail view.
func (w *Workspace) ClearSelection() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.selected = nil
}

// refreshSelectionLocked re-copies the selected experiment from the
// collection after a mutation. Callers hold the mutex.
func (w *Workspace) refreshSelectionLocked(projectID string, e *domain.Experiment) {
	if w.selected == nil || w.selected.projectID != projectID || w.selected.experiment.ID != e.ID {
		return
	}
	w.selected.experiment = e.Clone()
}

func (w *Workspace) recordMutation(kind ports.EntityKind, op ports.Operation) {
	if w.metrics != nil {
		w.metrics.RecordMutation(context.Background(), kind, op)
	}
}

func (w *Workspace) today() string {
	return w.now().Format("2006-01-02")
}
