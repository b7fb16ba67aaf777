package workspace

import (
	"fmt"
	"strings"

	"github.com/polancolabs/growthlab/internal/domain"
	"github.com/polancolabs/growthlab/internal/ports"
)

// ExperimentForm is the input of the creation modal. Zero scores, status and
// stage fall back to the modal defaults.
type ExperimentForm struct {
	Title            string             `json:"title"`
	Status           domain.Status      `json:"status"`
	Hypothesis       string             `json:"hypothesis"`
	Observation      *string            `json:"observation"`
	Problem          *string            `json:"problem"`
	Source           *string            `json:"source"`
	Labels           []string           `json:"labels"`
	SuccessCriteria  *string            `json:"successCriteria"`
	TargetMetric     *string            `json:"targetMetric"`
	TestURL          *string            `json:"testUrl"`
	Impact           int                `json:"impact"`
	Confidence       int                `json:"confidence"`
	Ease             int                `json:"ease"`
	FunnelStage      domain.FunnelStage `json:"funnelStage"`
	LinkedStrategyID *string            `json:"linkedStrategyId"`
	OwnerID          string             `json:"ownerId"`
}

// CreateExperiment appends a new experiment. A blank title is not rejected:
// it falls back to the placeholder title. The ICE score is computed from the
// three inputs, the North Star label is stamped from the project's current
// metric name, and the start date is stamped with today.
func (w *Workspace) CreateExperiment(projectID string, form ExperimentForm) (domain.Experiment, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	p, ok := w.projects[projectID]
	if !ok {
		return domain.Experiment{}, fmt.Errorf("project %s: %w", projectID, ErrNotFound)
	}

	title := form.Title
	if strings.TrimSpace(title) == "" {
		title = "Untitled Hypothesis"
	}
	status := form.Status
	if status == "" {
		status = domain.StatusIdea
	}
	stage := form.FunnelStage
	if stage == "" {
		stage = domain.StageAcquisition
	}
	impact := defaultScore(form.Impact)
	confidence := defaultScore(form.Confidence)
	ease := defaultScore(form.Ease)
	start := w.today()

	e := domain.Experiment{
		ID:               w.newID(),
		Title:            title,
		Status:           status,
		Owner:            w.ownerSnapshotLocked(form.OwnerID),
		Hypothesis:       form.Hypothesis,
		Observation:      form.Observation,
		Problem:          form.Problem,
		Source:           form.Source,
		Labels:           append([]string(nil), form.Labels...),
		SuccessCriteria:  form.SuccessCriteria,
		TargetMetric:     form.TargetMetric,
		TestURL:          form.TestURL,
		Impact:           impact,
		Confidence:       confidence,
		Ease:             ease,
		FunnelStage:      stage,
		NorthStarMetric:  p.NorthStar.Name,
		LinkedStrategyID: form.LinkedStrategyID,
		StartDate:        &start,
	}
	e.RecomputeICE()
	p.Experiments = append(p.Experiments, e)

	w.sink.Submit(ports.Intent{Op: ports.OpCreate, Kind: ports.KindExperiment, ProjectID: projectID, EntityID: e.ID, Experiment: &e})
	w.recordMutation(ports.KindExperiment, ports.OpCreate)
	return e.Clone(), nil
}

// defaultScore maps an unset (zero) score to the creation modal's initial
// slider position.
func defaultScore(n int) int {
	if n == 0 {
		return 5
	}
	return n
}

// ownerSnapshotLocked resolves the owner by team member id, falling back to
// the first member when the id is unknown. The result is a value snapshot.
func (w *Workspace) ownerSnapshotLocked(memberID string) domain.Owner {
	if m, ok := w.members[memberID]; ok {
		return domain.Owner{Name: m.Name, Avatar: m.Avatar}
	}
	if len(w.memberOrder) > 0 {
		m := w.members[w.memberOrder[0]]
		return domain.Owner{Name: m.Name, Avatar: m.Avatar}
	}
	return domain.Owner{}
}

// ScoreField selects which ICE input an update targets.
type ScoreField string

const (
	ScoreImpact     ScoreField = "impact"
	ScoreConfidence ScoreField = "confidence"
	ScoreEase       ScoreField = "ease"
)

// UpdateICEScore replaces one score and recomputes the ICE product on the
// same record. Any open detail-view copy is refreshed in the same update.
func (w *Workspace) UpdateICEScore(projectID, experimentID string, field ScoreField, value int) (domain.Experiment, error) {
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

	updated := e.Clone()
	switch field {
	case ScoreImpact:
		updated.Impact = value
	case ScoreConfidence:
		updated.Confidence = value
	case ScoreEase:
		updated.Ease = value
	default:
		return domain.Experiment{}, &ValidationError{Field: "field", Reason: "must be impact, confidence or ease"}
	}
	updated.RecomputeICE()
	*e = updated
	w.refreshSelectionLocked(projectID, e)

	w.sink.Submit(ports.Intent{Op: ports.OpUpdate, Kind: ports.KindExperiment, ProjectID: projectID, EntityID: experimentID, Experiment: &updated})
	w.recordMutation(ports.KindExperiment, ports.OpUpdate)
	return updated.Clone(), nil
}

// ExperimentUpdate is a field mask for partial experiment edits. Status is
// deliberately absent: status moves only through ChangeStatus so the
// finish gate cannot be bypassed.
type ExperimentUpdate struct {
	Title            *string             `json:"title"`
	Hypothesis       *string             `json:"hypothesis"`
	Observation      *string             `json:"observation"`
	Problem          *string             `json:"problem"`
	Source           *string             `json:"source"`
	Labels           []string            `json:"labels"`
	SuccessCriteria  *string             `json:"successCriteria"`
	TargetMetric     *string             `json:"targetMetric"`
	TestURL          *string             `json:"testUrl"`
	VisualProof      []string            `json:"visualProof"`
	FunnelStage      *domain.FunnelStage `json:"funnelStage"`
	LinkedStrategyID *string             `json:"linkedStrategyId"`
	StartDate        *string             `json:"startDate"`
	EndDate          *string             `json:"endDate"`
	OwnerID          *string             `json:"ownerId"`
}

// UpdateExperiment applies a partial edit, refreshing any open detail-view
// copy in the same update.
func (w *Workspace) UpdateExperiment(projectID, experimentID string, upd ExperimentUpdate) (domain.Experiment, error) {
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

	updated := e.Clone()
	if upd.Title != nil {
		updated.Title = *upd.Title
	}
	if upd.Hypothesis != nil {
		updated.Hypothesis = *upd.Hypothesis
	}
	if upd.Observation != nil {
		updated.Observation = upd.Observation
	}
	if upd.Problem != nil {
		updated.Problem = upd.Problem
	}
	if upd.Source != nil {
		updated.Source = upd.Source
	}
	if upd.Labels != nil {
		updated.Labels = append([]string(nil), upd.Labels...)
	}
	if upd.SuccessCriteria != nil {
		updated.SuccessCriteria = upd.SuccessCriteria
	}
	if upd.TargetMetric != nil {
		updated.TargetMetric = upd.TargetMetric
	}
	if upd.TestURL != nil {
		updated.TestURL = upd.TestURL
	}
	if upd.VisualProof != nil {
		updated.VisualProof = append([]string(nil), upd.VisualProof...)
	}
	if upd.FunnelStage != nil {
		updated.FunnelStage = *upd.FunnelStage
	}
	if upd.LinkedStrategyID != nil {
		updated.LinkedStrategyID = upd.LinkedStrategyID
	}
	if upd.StartDate != nil {
		updated.StartDate = upd.StartDate
	}
	if upd.EndDate != nil {
		updated.EndDate = upd.EndDate
	}
	if upd.OwnerID != nil {
		updated.Owner = w.ownerSnapshotLocked(*upd.OwnerID)
	}
	*e = updated
	w.refreshSelectionLocked(projectID, e)

	w.sink.Submit(ports.Intent{Op: ports.OpUpdate, Kind: ports.KindExperiment, ProjectID: projectID, EntityID: experimentID, Experiment: &updated})
	w.recordMutation(ports.KindExperiment, ports.OpUpdate)
	return updated.Clone(), nil
}

// DeleteExperiment removes an experiment outright.
func (w *Workspace) DeleteExperiment(projectID, experimentID string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	p, ok := w.projects[projectID]
	if !ok {
		return fmt.Errorf("project %s: %w", projectID, ErrNotFound)
	}
	found := false
	kept := p.Experiments[:0:0]
	for _, e := range p.Experiments {
		if e.ID == experimentID {
			found = true
			continue
		}
		kept = append(kept, e)
	}
	if !found {
		return fmt.Errorf("experiment %s: %w", experimentID, ErrNotFound)
	}
	p.Experiments = kept
	if w.selected != nil && w.selected.projectID == projectID && w.selected.experiment.ID == experimentID {
		w.selected = nil
	}
	if w.pending.ProjectID == projectID && w.pending.ExperimentID == experimentID {
		w.pending = Pending{}
	}

	w.sink.Submit(ports.Intent{Op: ports.OpDelete, Kind: ports.KindExperiment, ProjectID: projectID, EntityID: experimentID})
	w.recordMutation(ports.KindExperiment, ports.OpDelete)
	return nil
}
