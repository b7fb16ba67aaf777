package workspace

import (
	"fmt"
	"strings"

	"github.com/polancolabs/growthlab/internal/domain"
	"github.com/polancolabs/growthlab/internal/ports"
)

// CreateProject registers a project built by the creation wizard. A missing
// id and creation timestamp are filled in; a blank name is rejected.
func (w *Workspace) CreateProject(project *domain.Project) (*domain.Project, error) {
	if strings.TrimSpace(project.Metadata.Name) == "" {
		return nil, &ValidationError{Field: "name", Reason: "must not be blank"}
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	p := project.Clone()
	if p.Metadata.ID == "" {
		p.Metadata.ID = w.newID()
	}
	if p.Metadata.CreatedAt.IsZero() {
		p.Metadata.CreatedAt = w.now()
	}
	if p.NorthStar == (domain.NorthStarMetric{}) {
		p.NorthStar = domain.DefaultNorthStar()
	}
	w.projects[p.Metadata.ID] = p
	w.order = append(w.order, p.Metadata.ID)

	w.sink.Submit(ports.Intent{Op: ports.OpCreate, Kind: ports.KindProject, ProjectID: p.Metadata.ID, EntityID: p.Metadata.ID, Project: p.Clone()})
	w.recordMutation(ports.KindProject, ports.OpCreate)
	return p.Clone(), nil
}

// RemoveProject drops a project from the collection. Child rows cascade at
// the storage level.
func (w *Workspace) RemoveProject(id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.projects[id]; !ok {
		return fmt.Errorf("project %s: %w", id, ErrNotFound)
	}
	w.dropLocked(id)
	w.sink.Submit(ports.Intent{Op: ports.OpDelete, Kind: ports.KindProject, ProjectID: id, EntityID: id})
	w.recordMutation(ports.KindProject, ports.OpDelete)
	return nil
}

// UpdateNorthStar replaces a project's North Star metric. When the metric
// type changes, the unit is re-derived from the new type; an explicit unit
// edit with an unchanged type is kept as given.
func (w *Workspace) UpdateNorthStar(projectID string, ns domain.NorthStarMetric) error {
	if strings.TrimSpace(ns.Name) == "" {
		return &ValidationError{Field: "name", Reason: "must not be blank"}
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	p, ok := w.projects[projectID]
	if !ok {
		return fmt.Errorf("project %s: %w", projectID, ErrNotFound)
	}
	if ns.Type != p.NorthStar.Type {
		ns.Unit = domain.UnitLabel(ns.Type)
	}
	p.NorthStar = ns

	w.sink.Submit(ports.Intent{Op: ports.OpUpdate, Kind: ports.KindNorthStar, ProjectID: projectID, EntityID: projectID, NorthStar: &ns})
	w.recordMutation(ports.KindNorthStar, ports.OpUpdate)
	return nil
}

// AddObjective creates an objective with status Active and zero progress.
// A blank title is a validation failure.
func (w *Workspace) AddObjective(projectID, title string, description *string) (domain.Objective, error) {
	if strings.TrimSpace(title) == "" {
		return domain.Objective{}, &ValidationError{Field: "title", Reason: "must not be blank"}
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	p, ok := w.projects[projectID]
	if !ok {
		return domain.Objective{}, fmt.Errorf("project %s: %w", projectID, ErrNotFound)
	}
	obj := domain.Objective{
		ID:          w.newID(),
		Title:       title,
		Status:      domain.ObjectiveActive,
		Description: description,
	}
	p.Objectives = append(p.Objectives, obj)

	w.sink.Submit(ports.Intent{Op: ports.OpCreate, Kind: ports.KindObjective, ProjectID: projectID, EntityID: obj.ID, Objective: &obj})
	w.recordMutation(ports.KindObjective, ports.OpCreate)
	return obj, nil
}

// EditObjective replaces the title and, when given, the description.
func (w *Workspace) EditObjective(projectID, objectiveID, title string, description *string) error {
	if strings.TrimSpace(title) == "" {
		return &ValidationError{Field: "title", Reason: "must not be blank"}
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	p, ok := w.projects[projectID]
	if !ok {
		return fmt.Errorf("project %s: %w", projectID, ErrNotFound)
	}
	obj := p.ObjectiveByID(objectiveID)
	if obj == nil {
		return fmt.Errorf("objective %s: %w", objectiveID, ErrNotFound)
	}
	updated := *obj
	updated.Title = title
	if description != nil {
		updated.Description = description
	}
	*obj = updated

	w.sink.Submit(ports.Intent{Op: ports.OpUpdate, Kind: ports.KindObjective, ProjectID: projectID, EntityID: objectiveID, Objective: &updated})
	w.recordMutation(ports.KindObjective, ports.OpUpdate)
	return nil
}

// CascadeImpact is the blast radius of a destructive delete, shown to the
// user before they confirm.
type CascadeImpact struct {
	Strategies  int
	Experiments int
}

// Describe renders the confirmation message for an objective delete.
func (c CascadeImpact) Describe() string {
	msg := "Are you sure you want to delete this objective?"
	if c.Strategies == 1 {
		msg += " This will also delete 1 strategy."
	} else if c.Strategies > 1 {
		msg += fmt.Sprintf(" This will also delete %d strategies.", c.Strategies)
	}
	if c.Experiments == 1 {
		msg += " 1 experiment is linked to this strategy; the link will be removed."
	} else if c.Experiments > 1 {
		msg += fmt.Sprintf(" %d experiments are linked to these strategies; the links will be removed.", c.Experiments)
	}
	return msg
}

// DescribeStrategy renders the confirmation message for a strategy delete.
func (c CascadeImpact) DescribeStrategy() string {
	msg := "Are you sure you want to delete this strategy?"
	if c.Experiments == 1 {
		msg += " 1 experiment is linked to this strategy; the link will be removed."
	} else if c.Experiments > 1 {
		msg += fmt.Sprintf(" %d experiments are linked to this strategy; the links will be removed.", c.Experiments)
	}
	return msg
}

// PreviewObjectiveDelete computes the cascade impact without mutating
// anything. Callers must show it and obtain confirmation before calling
// DeleteObjective.
func (w *Workspace) PreviewObjectiveDelete(projectID, objectiveID string) (CascadeImpact, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	p, ok := w.projects[projectID]
	if !ok {
		return CascadeImpact{}, fmt.Errorf("project %s: %w", projectID, ErrNotFound)
	}
	if p.ObjectiveByID(objectiveID) == nil {
		return CascadeImpact{}, fmt.Errorf("objective %s: %w", objectiveID, ErrNotFound)
	}
	return objectiveImpact(p, objectiveID), nil
}

func objectiveImpact(p *domain.Project, objectiveID string) CascadeImpact {
	doomed := make(map[string]bool)
	for _, s := range p.Strategies {
		if s.ParentObjectiveID == objectiveID {
			doomed[s.ID] = true
		}
	}
	impact := CascadeImpact{Strategies: len(doomed)}
	for _, e := range p.Experiments {
		if e.LinkedStrategyID != nil && doomed[*e.LinkedStrategyID] {
			impact.Experiments++
		}
	}
	return impact
}

// DeleteObjective removes the objective, removes every strategy under it,
// and unsets the strategy link on every experiment that pointed at one of
// those strategies. All other experiment fields are untouched.
func (w *Workspace) DeleteObjective(projectID, objectiveID string) (CascadeImpact, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	p, ok := w.projects[projectID]
	if !ok {
		return CascadeImpact{}, fmt.Errorf("project %s: %w", projectID, ErrNotFound)
	}
	if p.ObjectiveByID(objectiveID) == nil {
		return CascadeImpact{}, fmt.Errorf("objective %s: %w", objectiveID, ErrNotFound)
	}
	impact := objectiveImpact(p, objectiveID)

	doomed := make(map[string]bool)
	kept := p.Strategies[:0:0]
	for _, s := range p.Strategies {
		if s.ParentObjectiveID == objectiveID {
			doomed[s.ID] = true
		} else {
			kept = append(kept, s)
		}
	}
	p.Strategies = kept

	objs := p.Objectives[:0:0]
	for _, o := range p.Objectives {
		if o.ID != objectiveID {
			objs = append(objs, o)
		}
	}
	p.Objectives = objs

	for i := range p.Experiments {
		e := &p.Experiments[i]
		if e.LinkedStrategyID != nil && doomed[*e.LinkedStrategyID] {
			unlinked := e.Clone()
			unlinked.LinkedStrategyID = nil
			*e = unlinked
			w.refreshSelectionLocked(projectID, e)
			w.sink.Submit(ports.Intent{Op: ports.OpUpdate, Kind: ports.KindExperiment, ProjectID: projectID, EntityID: e.ID, Experiment: &unlinked})
		}
	}

	for id := range doomed {
		w.sink.Submit(ports.Intent{Op: ports.OpDelete, Kind: ports.KindStrategy, ProjectID: projectID, EntityID: id})
	}
	w.sink.Submit(ports.Intent{Op: ports.OpDelete, Kind: ports.KindObjective, ProjectID: projectID, EntityID: objectiveID})
	w.recordMutation(ports.KindObjective, ports.OpDelete)
	return impact, nil
}

// AddStrategy creates a strategy bound to an objective. The objective id is
// not checked for existence: a strategy against a vanished objective is
// accepted and simply unreachable until the objective reappears.
func (w *Workspace) AddStrategy(projectID, objectiveID, title string, targetMetric *string) (domain.Strategy, error) {
	if strings.TrimSpace(title) == "" {
		return domain.Strategy{}, &ValidationError{Field: "title", Reason: "must not be blank"}
	}
	if objectiveID == "" {
		return domain.Strategy{}, &ValidationError{Field: "objectiveId", Reason: "must not be blank"}
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	p, ok := w.projects[projectID]
	if !ok {
		return domain.Strategy{}, fmt.Errorf("project %s: %w", projectID, ErrNotFound)
	}
	s := domain.Strategy{
		ID:                w.newID(),
		Title:             title,
		ParentObjectiveID: objectiveID,
		TargetMetric:      targetMetric,
	}
	p.Strategies = append(p.Strategies, s)

	w.sink.Submit(ports.Intent{Op: ports.OpCreate, Kind: ports.KindStrategy, ProjectID: projectID, EntityID: s.ID, Strategy: &s})
	w.recordMutation(ports.KindStrategy, ports.OpCreate)
	return s, nil
}

// EditStrategy replaces the title only; strategies are never re-parented.
func (w *Workspace) EditStrategy(projectID, strategyID, title string) error {
	if strings.TrimSpace(title) == "" {
		return &ValidationError{Field: "title", Reason: "must not be blank"}
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	p, ok := w.projects[projectID]
	if !ok {
		return fmt.Errorf("project %s: %w", projectID, ErrNotFound)
	}
	s := p.StrategyByID(strategyID)
	if s == nil {
		return fmt.Errorf("strategy %s: %w", strategyID, ErrNotFound)
	}
	updated := *s
	updated.Title = title
	*s = updated

	w.sink.Submit(ports.Intent{Op: ports.OpUpdate, Kind: ports.KindStrategy, ProjectID: projectID, EntityID: strategyID, Strategy: &updated})
	w.recordMutation(ports.KindStrategy, ports.OpUpdate)
	return nil
}

// PreviewStrategyDelete counts the experiments that would lose their link.
func (w *Workspace) PreviewStrategyDelete(projectID, strategyID string) (CascadeImpact, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	p, ok := w.projects[projectID]
	if !ok {
		return CascadeImpact{}, fmt.Errorf("project %s: %w", projectID, ErrNotFound)
	}
	if p.StrategyByID(strategyID) == nil {
		return CascadeImpact{}, fmt.Errorf("strategy %s: %w", strategyID, ErrNotFound)
	}
	impact := CascadeImpact{}
	for _, e := range p.Experiments {
		if e.LinkedStrategyID != nil && *e.LinkedStrategyID == strategyID {
			impact.Experiments++
		}
	}
	return impact, nil
}

// DeleteStrategy removes the strategy and unsets the link on every
// experiment that referenced it.
func (w *Workspace) DeleteStrategy(projectID, strategyID string) (CascadeImpact, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	p, ok := w.projects[projectID]
	if !ok {
		return CascadeImpact{}, fmt.Errorf("project %s: %w", projectID, ErrNotFound)
	}
	if p.StrategyByID(strategyID) == nil {
		return CascadeImpact{}, fmt.Errorf("strategy %s: %w", strategyID, ErrNotFound)
	}

	impact := CascadeImpact{}
	kept := p.Strategies[:0:0]
	for _, s := range p.Strategies {
		if s.ID != strategyID {
			kept = append(kept, s)
		}
	}
	p.Strategies = kept

	for i := range p.Experiments {
		e := &p.Experiments[i]
		if e.LinkedStrategyID != nil && *e.LinkedStrategyID == strategyID {
			impact.Experiments++
			unlinked := e.Clone()
			unlinked.LinkedStrategyID = nil
			*e = unlinked
			w.refreshSelectionLocked(projectID, e)
			w.sink.Submit(ports.Intent{Op: ports.OpUpdate, Kind: ports.KindExperiment, ProjectID: projectID, EntityID: e.ID, Experiment: &unlinked})
		}
	}

	w.sink.Submit(ports.Intent{Op: ports.OpDelete, Kind: ports.KindStrategy, ProjectID: projectID, EntityID: strategyID})
	w.recordMutation(ports.KindStrategy, ports.OpDelete)
	return impact, nil
}
