package workspace

import (
	"context"
	"fmt"
	"strings"

	"github.com/polancolabs/growthlab/internal/domain"
	"github.com/polancolabs/growthlab/internal/ports"
)

// ChangeStatus moves an experiment between workflow columns. Moves into the
// three finished statuses do not apply immediately: they arm the finish gate
// and wait for CompleteFinish to supply a key learning. Every other move is
// unrestricted, including moving a finished experiment back into the flow.
func (w *Workspace) ChangeStatus(projectID, experimentID string, target domain.Status) error {
	if !target.Valid() {
		return &ValidationError{Field: "status", Reason: fmt.Sprintf("unknown status %q", target)}
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	p, ok := w.projects[projectID]
	if !ok {
		return fmt.Errorf("project %s: %w", projectID, ErrNotFound)
	}
	e := p.ExperimentByID(experimentID)
	if e == nil {
		return fmt.Errorf("experiment %s: %w", experimentID, ErrNotFound)
	}

	if target.IsFinished() {
		w.pending = Pending{ProjectID: projectID, ExperimentID: experimentID, Target: target}
		return nil
	}

	updated := e.Clone()
	updated.Status = target
	*e = updated
	w.refreshSelectionLocked(projectID, e)

	w.sink.Submit(ports.Intent{Op: ports.OpUpdate, Kind: ports.KindExperiment, ProjectID: projectID, EntityID: experimentID, Experiment: &updated})
	w.recordMutation(ports.KindExperiment, ports.OpUpdate)
	return nil
}

// PendingFinish reports the armed finish gate, if any.
func (w *Workspace) PendingFinish() (Pending, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.pending, w.pending.active()
}

// CompleteFinish resolves the armed gate: it validates the key learning,
// then applies the finished status, the learning and today's end date as one
// update. The gate is cleared and, per the workflow, the detail view closes.
func (w *Workspace) CompleteFinish(learning string) (domain.Experiment, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.pending.active() {
		return domain.Experiment{}, fmt.Errorf("finish gate: %w", ErrNotFound)
	}
	if strings.TrimSpace(learning) == "" {
		return domain.Experiment{}, &ValidationError{Field: "keyLearnings", Reason: "must not be blank"}
	}
	pend := w.pending
	p, ok := w.projects[pend.ProjectID]
	if !ok {
		w.pending = Pending{}
		return domain.Experiment{}, fmt.Errorf("project %s: %w", pend.ProjectID, ErrNotFound)
	}
	e := p.ExperimentByID(pend.ExperimentID)
	if e == nil {
		w.pending = Pending{}
		return domain.Experiment{}, fmt.Errorf("experiment %s: %w", pend.ExperimentID, ErrNotFound)
	}

	end := w.today()
	updated := e.Clone()
	updated.Status = pend.Target
	updated.KeyLearnings = &learning
	updated.EndDate = &end
	*e = updated

	w.pending = Pending{}
	if w.selected != nil && w.selected.projectID == pend.ProjectID && w.selected.experiment.ID == pend.ExperimentID {
		w.selected = nil
	}

	w.sink.Submit(ports.Intent{Op: ports.OpUpdate, Kind: ports.KindExperiment, ProjectID: pend.ProjectID, EntityID: pend.ExperimentID, Experiment: &updated})
	w.recordMutation(ports.KindExperiment, ports.OpUpdate)
	if w.metrics != nil {
		w.metrics.RecordExperimentFinished(context.Background(), pend.Target)
	}
	return updated.Clone(), nil
}

// CancelFinish disarms the gate without touching the experiment.
func (w *Workspace) CancelFinish() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.pending = Pending{}
}
