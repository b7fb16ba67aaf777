package domain

import "time"

// ProjectMetadata identifies a project independently of its growth model.
type ProjectMetadata struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Logo      *string   `json:"logo,omitempty"`
	Industry  *string   `json:"industry,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Project is the aggregate root: one North Star metric plus the objectives,
// strategies and experiments that exist to move it. Children are owned
// exclusively by their project and never shared.
type Project struct {
	Metadata    ProjectMetadata `json:"metadata"`
	NorthStar   NorthStarMetric `json:"northStar"`
	Objectives  []Objective     `json:"objectives"`
	Strategies  []Strategy      `json:"strategies"`
	Experiments []Experiment    `json:"experiments"`
}

// Clone returns a deep copy. The workspace hands copies to callers so that
// readers never alias the store's slices.
func (p *Project) Clone() *Project {
	c := *p
	c.Objectives = append([]Objective(nil), p.Objectives...)
	c.Strategies = append([]Strategy(nil), p.Strategies...)
	c.Experiments = make([]Experiment, len(p.Experiments))
	for i := range p.Experiments {
		c.Experiments[i] = p.Experiments[i].Clone()
	}
	return &c
}

// ExperimentByID returns a pointer into the project's experiment slice,
// or nil when the id is unknown.
func (p *Project) ExperimentByID(id string) *Experiment {
	for i := range p.Experiments {
		if p.Experiments[i].ID == id {
			return &p.Experiments[i]
		}
	}
	return nil
}

func (p *Project) ObjectiveByID(id string) *Objective {
	for i := range p.Objectives {
		if p.Objectives[i].ID == id {
			return &p.Objectives[i]
		}
	}
	return nil
}

func (p *Project) StrategyByID(id string) *Strategy {
	for i := range p.Strategies {
		if p.Strategies[i].ID == id {
			return &p.Strategies[i]
		}
	}
	return nil
}
