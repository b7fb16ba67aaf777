package seed

import "testing"

func TestStarterTemplateShape(t *testing.T) {
	objectives, strategies, experiments, err := StarterTemplate("MRR")
	if err != nil {
		t.Fatalf("StarterTemplate: %v", err)
	}
	if len(objectives) != 3 {
		t.Errorf("objectives = %d, want 3", len(objectives))
	}
	if len(strategies) != 6 {
		t.Errorf("strategies = %d, want 6", len(strategies))
	}
	if len(experiments) != 3 {
		t.Errorf("experiments = %d, want 3", len(experiments))
	}
}

func TestStarterTemplateLinksResolve(t *testing.T) {
	objectives, strategies, experiments, err := StarterTemplate("MRR")
	if err != nil {
		t.Fatalf("StarterTemplate: %v", err)
	}
	objectiveIDs := make(map[string]bool)
	for _, o := range objectives {
		objectiveIDs[o.ID] = true
	}
	for _, s := range strategies {
		if !objectiveIDs[s.ParentObjectiveID] {
			t.Errorf("strategy %q has dangling objective %s", s.Title, s.ParentObjectiveID)
		}
	}
	strategyIDs := make(map[string]bool)
	for _, s := range strategies {
		strategyIDs[s.ID] = true
	}
	for _, e := range experiments {
		if e.LinkedStrategyID == nil || !strategyIDs[*e.LinkedStrategyID] {
			t.Errorf("experiment %q has no resolvable strategy link", e.Title)
		}
	}
}

func TestStarterTemplateExperiments(t *testing.T) {
	_, _, experiments, err := StarterTemplate("Monthly Revenue")
	if err != nil {
		t.Fatalf("StarterTemplate: %v", err)
	}
	for _, e := range experiments {
		if e.ICEScore != e.Impact*e.Confidence*e.Ease {
			t.Errorf("experiment %q: ICEScore %d != %d*%d*%d", e.Title, e.ICEScore, e.Impact, e.Confidence, e.Ease)
		}
		if e.NorthStarMetric != "Monthly Revenue" {
			t.Errorf("experiment %q: NorthStarMetric = %q", e.Title, e.NorthStarMetric)
		}
		if !e.Status.Valid() {
			t.Errorf("experiment %q: invalid status %q", e.Title, e.Status)
		}
		if !e.FunnelStage.Valid() {
			t.Errorf("experiment %q: invalid stage %q", e.Title, e.FunnelStage)
		}
	}
}

func TestStarterTemplateMintsFreshIDs(t *testing.T) {
	a, _, _, _ := StarterTemplate("MRR")
	b, _, _, _ := StarterTemplate("MRR")
	if a[0].ID == b[0].ID {
		t.Error("two seedings shared an objective id")
	}
}
