package turso_test

import (
	"context"
	"testing"
	"time"

	"github.com/polancolabs/growthlab/internal/adapters/turso"
	"github.com/polancolabs/growthlab/internal/domain"
)

func strPtr(s string) *string { return &s }

func sampleProject(id string) *domain.Project {
	obs := "Current CTA has low click-through rate"
	return &domain.Project{
		Metadata: domain.ProjectMetadata{
			ID:        id,
			Name:      "Acme Growth",
			Logo:      strPtr("🚀"),
			Industry:  strPtr("E-commerce"),
			CreatedAt: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
		},
		NorthStar: domain.NorthStarMetric{
			Name: "MRR", CurrentValue: 10_000, TargetValue: 50_000,
			Unit: "$", Type: domain.MetricCurrency,
		},
		Objectives: []domain.Objective{
			{ID: id + "-obj", Title: "Acquisition Excellence", Status: domain.ObjectiveActive},
		},
		Strategies: []domain.Strategy{
			{ID: id + "-strat", Title: "SEO & Content Marketing", ParentObjectiveID: id + "-obj"},
		},
		Experiments: []domain.Experiment{
			{
				ID: id + "-exp-low", Title: "Tweak footer links", Status: domain.StatusIdea,
				Owner:       domain.Owner{Name: "Growth Team", Avatar: "👥"},
				Hypothesis:  "More footer links will lift SEO",
				Impact:      2, Confidence: 3, Ease: 4, ICEScore: 24,
				FunnelStage: domain.StageAcquisition, NorthStarMetric: "MRR",
			},
			{
				ID: id + "-exp-high", Title: "Test Homepage Hero CTA Copy", Status: domain.StatusPrioritized,
				Owner:       domain.Owner{Name: "Growth Team", Avatar: "👥"},
				Hypothesis:  "A concrete CTA will increase signups by 15%",
				Observation: &obs,
				Labels:      []string{"homepage", "copy"},
				Impact:      8, Confidence: 7, Ease: 9, ICEScore: 504,
				FunnelStage:      domain.StageAcquisition,
				NorthStarMetric:  "MRR",
				LinkedStrategyID: strPtr(id + "-strat"),
				StartDate:        strPtr("2025-03-01"),
			},
		},
	}
}

func TestProjectRepositoryRoundTrip(t *testing.T) {
	db := testDB(t)
	repo := turso.NewProjectRepository(db)
	ctx := context.Background()

	want := sampleProject("proj-roundtrip")
	if err := repo.Create(ctx, want); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByID(ctx, "proj-roundtrip")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got == nil {
		t.Fatal("GetByID returned nil")
	}
	if got.Metadata.Name != "Acme Growth" {
		t.Errorf("name = %q", got.Metadata.Name)
	}
	if got.Metadata.Logo == nil || *got.Metadata.Logo != "🚀" {
		t.Errorf("logo = %v", got.Metadata.Logo)
	}
	if got.NorthStar.Type != domain.MetricCurrency || got.NorthStar.TargetValue != 50_000 {
		t.Errorf("north star = %+v", got.NorthStar)
	}
	if len(got.Objectives) != 1 || len(got.Strategies) != 1 || len(got.Experiments) != 2 {
		t.Fatalf("children = %d/%d/%d, want 1/1/2", len(got.Objectives), len(got.Strategies), len(got.Experiments))
	}

	// Experiments come back ordered by ICE score descending.
	if got.Experiments[0].ID != "proj-roundtrip-exp-high" {
		t.Errorf("experiments not ICE-ordered: first is %s", got.Experiments[0].ID)
	}
	high := got.Experiments[0]
	if high.Observation == nil || *high.Observation != "Current CTA has low click-through rate" {
		t.Errorf("observation = %v", high.Observation)
	}
	if len(high.Labels) != 2 || high.Labels[0] != "homepage" {
		t.Errorf("labels = %v", high.Labels)
	}
	if high.LinkedStrategyID == nil || *high.LinkedStrategyID != "proj-roundtrip-strat" {
		t.Errorf("linked strategy = %v", high.LinkedStrategyID)
	}
}

func TestProjectRepositoryGetMissing(t *testing.T) {
	db := testDB(t)
	repo := turso.NewProjectRepository(db)

	got, err := repo.GetByID(context.Background(), "no-such-project")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for missing project, got %+v", got)
	}
}

func TestProjectRepositoryDeleteCascades(t *testing.T) {
	db := testDB(t)
	repo := turso.NewProjectRepository(db)
	ctx := context.Background()

	if err := repo.Create(ctx, sampleProject("proj-cascade")); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.Delete(ctx, "proj-cascade"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM experiments WHERE project_id = ?`, "proj-cascade").Scan(&count); err != nil {
		t.Fatalf("count experiments: %v", err)
	}
	if count != 0 {
		t.Errorf("experiments left after project delete: %d", count)
	}
	if err := db.QueryRow(`SELECT COUNT(*) FROM strategies WHERE project_id = ?`, "proj-cascade").Scan(&count); err != nil {
		t.Fatalf("count strategies: %v", err)
	}
	if count != 0 {
		t.Errorf("strategies left after project delete: %d", count)
	}
}

func TestUpsertExperimentUpdatesInPlace(t *testing.T) {
	db := testDB(t)
	repo := turso.NewProjectRepository(db)
	ctx := context.Background()

	if err := repo.Create(ctx, sampleProject("proj-upsert")); err != nil {
		t.Fatalf("Create: %v", err)
	}

	learning := "concrete CTAs outperform generic ones"
	e := domain.Experiment{
		ID: "proj-upsert-exp-high", Title: "Test Homepage Hero CTA Copy",
		Status:       domain.StatusWinner,
		Owner:        domain.Owner{Name: "Growth Team", Avatar: "👥"},
		Hypothesis:   "A concrete CTA will increase signups by 15%",
		KeyLearnings: &learning,
		Impact:       8, Confidence: 7, Ease: 9, ICEScore: 504,
		FunnelStage: domain.StageAcquisition, NorthStarMetric: "MRR",
		EndDate:     strPtr("2025-03-20"),
	}
	if err := repo.UpsertExperiment(ctx, "proj-upsert", &e); err != nil {
		t.Fatalf("UpsertExperiment: %v", err)
	}

	got, err := repo.GetByID(ctx, "proj-upsert")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if len(got.Experiments) != 2 {
		t.Fatalf("experiments = %d, want 2", len(got.Experiments))
	}
	updated := got.Experiments[0]
	if updated.Status != domain.StatusWinner {
		t.Errorf("status = %q", updated.Status)
	}
	if updated.KeyLearnings == nil || *updated.KeyLearnings != learning {
		t.Errorf("key learnings = %v", updated.KeyLearnings)
	}
	if updated.EndDate == nil || *updated.EndDate != "2025-03-20" {
		t.Errorf("end date = %v", updated.EndDate)
	}
}
