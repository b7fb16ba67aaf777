package turso_test

import (
	"context"
	"testing"

	"github.com/polancolabs/growthlab/internal/adapters/turso"
	"github.com/polancolabs/growthlab/internal/domain"
)

func TestTeamRepositoryRoundTrip(t *testing.T) {
	db := testDB(t)
	projects := turso.NewProjectRepository(db)
	repo := turso.NewTeamRepository(db)
	ctx := context.Background()

	if err := projects.Create(ctx, sampleProject("proj-team")); err != nil {
		t.Fatalf("Create project: %v", err)
	}

	member := &domain.TeamMember{
		ID: "member-rt", Name: "Dana", Email: "dana@example.com",
		Avatar: "🧪", Role: domain.RoleLead,
		ProjectIDs: []string{"proj-team"},
	}
	if err := repo.Create(ctx, member); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByID(ctx, "member-rt")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got == nil {
		t.Fatal("GetByID returned nil")
	}
	if got.Name != "Dana" || got.Role != domain.RoleLead {
		t.Errorf("member = %+v", got)
	}
	if len(got.ProjectIDs) != 1 || got.ProjectIDs[0] != "proj-team" {
		t.Errorf("project ids = %v", got.ProjectIDs)
	}
}

func TestTeamRepositoryUpdateReplacesAssignments(t *testing.T) {
	db := testDB(t)
	projects := turso.NewProjectRepository(db)
	repo := turso.NewTeamRepository(db)
	ctx := context.Background()

	if err := projects.Create(ctx, sampleProject("proj-team-a")); err != nil {
		t.Fatalf("Create project: %v", err)
	}
	if err := projects.Create(ctx, sampleProject("proj-team-b")); err != nil {
		t.Fatalf("Create project: %v", err)
	}

	member := &domain.TeamMember{
		ID: "member-upd", Name: "Sam", Role: domain.RoleViewer,
		ProjectIDs: []string{"proj-team-a"},
	}
	if err := repo.Create(ctx, member); err != nil {
		t.Fatalf("Create: %v", err)
	}

	member.Role = domain.RoleAdmin
	member.ProjectIDs = []string{"proj-team-b"}
	if err := repo.Update(ctx, member); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := repo.GetByID(ctx, "member-upd")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Role != domain.RoleAdmin {
		t.Errorf("role = %q", got.Role)
	}
	if len(got.ProjectIDs) != 1 || got.ProjectIDs[0] != "proj-team-b" {
		t.Errorf("project ids = %v", got.ProjectIDs)
	}
}

func TestTeamRepositoryDelete(t *testing.T) {
	db := testDB(t)
	repo := turso.NewTeamRepository(db)
	ctx := context.Background()

	member := &domain.TeamMember{ID: "member-del", Name: "Temp", Role: domain.RoleViewer}
	if err := repo.Create(ctx, member); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.Delete(ctx, "member-del"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	got, err := repo.GetByID(ctx, "member-del")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil after delete, got %+v", got)
	}
}
