// Package seed builds the starter template offered by the project creation
// wizard: three objectives, six strategies and three linked experiments, all
// minted with fresh ids so the same template can seed many projects.
package seed

import (
	_ "embed"
	"fmt"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/polancolabs/growthlab/internal/domain"
)

//go:embed template.yaml
var templateYAML []byte

type templateOwner struct {
	Name   string `yaml:"name"`
	Avatar string `yaml:"avatar"`
}

type templateObjective struct {
	Key         string `yaml:"key"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

type templateStrategy struct {
	Key       string `yaml:"key"`
	Objective string `yaml:"objective"`
	Title     string `yaml:"title"`
}

type templateExperiment struct {
	Title       string `yaml:"title"`
	Strategy    string `yaml:"strategy"`
	Status      string `yaml:"status"`
	Hypothesis  string `yaml:"hypothesis"`
	Observation string `yaml:"observation"`
	Problem     string `yaml:"problem"`
	Impact      int    `yaml:"impact"`
	Confidence  int    `yaml:"confidence"`
	Ease        int    `yaml:"ease"`
	FunnelStage string `yaml:"funnelStage"`
}

type template struct {
	Owner       templateOwner        `yaml:"owner"`
	Objectives  []templateObjective  `yaml:"objectives"`
	Strategies  []templateStrategy   `yaml:"strategies"`
	Experiments []templateExperiment `yaml:"experiments"`
}

// StarterTemplate returns freshly-minted objectives, strategies and
// experiments for a new project. northStarName is stamped on every experiment
// so cards render against the project's own metric.
func StarterTemplate(northStarName string) ([]domain.Objective, []domain.Strategy, []domain.Experiment, error) {
	var tpl template
	if err := yaml.Unmarshal(templateYAML, &tpl); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to parse starter template: %w", err)
	}

	objectiveIDs := make(map[string]string, len(tpl.Objectives))
	objectives := make([]domain.Objective, 0, len(tpl.Objectives))
	for _, o := range tpl.Objectives {
		id := uuid.NewString()
		objectiveIDs[o.Key] = id
		desc := o.Description
		objectives = append(objectives, domain.Objective{
			ID:          id,
			Title:       o.Title,
			Status:      domain.ObjectiveActive,
			Description: &desc,
		})
	}

	strategyIDs := make(map[string]string, len(tpl.Strategies))
	strategies := make([]domain.Strategy, 0, len(tpl.Strategies))
	for _, s := range tpl.Strategies {
		parent, ok := objectiveIDs[s.Objective]
		if !ok {
			return nil, nil, nil, fmt.Errorf("starter template: strategy %q references unknown objective %q", s.Key, s.Objective)
		}
		id := uuid.NewString()
		strategyIDs[s.Key] = id
		strategies = append(strategies, domain.Strategy{
			ID:                id,
			Title:             s.Title,
			ParentObjectiveID: parent,
		})
	}

	owner := domain.Owner{Name: tpl.Owner.Name, Avatar: tpl.Owner.Avatar}
	experiments := make([]domain.Experiment, 0, len(tpl.Experiments))
	for _, t := range tpl.Experiments {
		strategyID, ok := strategyIDs[t.Strategy]
		if !ok {
			return nil, nil, nil, fmt.Errorf("starter template: experiment %q references unknown strategy %q", t.Title, t.Strategy)
		}
		sid := strategyID
		observation := t.Observation
		problem := t.Problem
		e := domain.Experiment{
			ID:               uuid.NewString(),
			Title:            t.Title,
			Status:           domain.Status(t.Status),
			Owner:            owner,
			Hypothesis:       t.Hypothesis,
			Observation:      &observation,
			Problem:          &problem,
			Impact:           t.Impact,
			Confidence:       t.Confidence,
			Ease:             t.Ease,
			FunnelStage:      domain.FunnelStage(t.FunnelStage),
			NorthStarMetric:  northStarName,
			LinkedStrategyID: &sid,
		}
		e.RecomputeICE()
		experiments = append(experiments, e)
	}

	return objectives, strategies, experiments, nil
}
