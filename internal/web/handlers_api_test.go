package web

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/polancolabs/growthlab/internal/domain"
	"github.com/polancolabs/growthlab/internal/workspace"
)

func newTestServer(t *testing.T) (*Server, *workspace.Workspace) {
	t.Helper()
	ws := workspace.New(nil, nil, nil)
	return NewServer(ws, ":0", nil), ws
}

func doJSON(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestCreateProjectWithTemplate(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/projects", map[string]any{
		"name":        "Acme",
		"useTemplate": true,
		"northStar": map[string]any{
			"name": "MRR", "currentValue": 10000.0, "targetValue": 50000.0,
			"unit": "$", "type": "currency",
		},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var p domain.Project
	if err := json.Unmarshal(rec.Body.Bytes(), &p); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(p.Objectives) != 3 || len(p.Strategies) != 6 || len(p.Experiments) != 3 {
		t.Errorf("template children = %d/%d/%d, want 3/6/3", len(p.Objectives), len(p.Strategies), len(p.Experiments))
	}
	for _, e := range p.Experiments {
		if e.NorthStarMetric != "MRR" {
			t.Errorf("experiment %q metric = %q", e.Title, e.NorthStarMetric)
		}
	}
}

func TestCreateProjectBlankNameRejected(t *testing.T) {
	s, _ := newTestServer(t)
	rec := doJSON(t, s, http.MethodPost, "/api/projects", map[string]any{"name": "  "})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
}

func seedTestProject(t *testing.T, s *Server) string {
	t.Helper()
	rec := doJSON(t, s, http.MethodPost, "/api/projects", map[string]any{"name": "Acme"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("seed project: %d %s", rec.Code, rec.Body.String())
	}
	var p domain.Project
	if err := json.Unmarshal(rec.Body.Bytes(), &p); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return p.Metadata.ID
}

func seedTestExperiment(t *testing.T, s *Server, projectID string) domain.Experiment {
	t.Helper()
	rec := doJSON(t, s, http.MethodPost, "/api/projects/"+projectID+"/experiments", map[string]any{
		"title": "CTA copy", "impact": 8, "confidence": 7, "ease": 9,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("seed experiment: %d %s", rec.Code, rec.Body.String())
	}
	var e domain.Experiment
	if err := json.Unmarshal(rec.Body.Bytes(), &e); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return e
}

func TestUpdateScoreRecomputesICE(t *testing.T) {
	s, _ := newTestServer(t)
	pid := seedTestProject(t, s)
	e := seedTestExperiment(t, s, pid)

	rec := doJSON(t, s, http.MethodPost,
		fmt.Sprintf("/api/projects/%s/experiments/%s/score", pid, e.ID),
		map[string]any{"field": "ease", "value": 10})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var got domain.Experiment
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.ICEScore != 8*7*10 {
		t.Errorf("ICEScore = %d, want %d", got.ICEScore, 8*7*10)
	}
}

func TestFinishGateOverHTTP(t *testing.T) {
	s, _ := newTestServer(t)
	pid := seedTestProject(t, s)
	e := seedTestExperiment(t, s, pid)

	// Moving to a finished status arms the gate instead of applying.
	rec := doJSON(t, s, http.MethodPost,
		fmt.Sprintf("/api/projects/%s/experiments/%s/status", pid, e.ID),
		map[string]any{"status": "Finished - Winner"})
	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202, body %s", rec.Code, rec.Body.String())
	}

	// A blank learning is rejected and the gate stays armed.
	rec = doJSON(t, s, http.MethodPost, "/api/finish/complete", map[string]any{"keyLearnings": "  "})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("blank learning: status = %d, want 422", rec.Code)
	}

	rec = doJSON(t, s, http.MethodPost, "/api/finish/complete", map[string]any{
		"keyLearnings": "specific CTAs beat generic ones",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("complete: status = %d, body %s", rec.Code, rec.Body.String())
	}
	var got domain.Experiment
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Status != domain.StatusWinner {
		t.Errorf("status = %q", got.Status)
	}
	if got.KeyLearnings == nil || got.EndDate == nil {
		t.Errorf("learning/end date missing: %+v", got)
	}

	rec = doJSON(t, s, http.MethodGet, "/api/finish", nil)
	if !strings.Contains(rec.Body.String(), `"pending":false`) {
		t.Errorf("gate should be clear: %s", rec.Body.String())
	}
}

func TestObjectiveImpactAndCascadeDelete(t *testing.T) {
	s, _ := newTestServer(t)
	pid := seedTestProject(t, s)

	rec := doJSON(t, s, http.MethodPost, "/api/projects/"+pid+"/objectives", map[string]any{"title": "Acquisition"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create objective: %d", rec.Code)
	}
	var obj domain.Objective
	if err := json.Unmarshal(rec.Body.Bytes(), &obj); err != nil {
		t.Fatalf("decode: %v", err)
	}

	rec = doJSON(t, s, http.MethodPost, "/api/projects/"+pid+"/strategies", map[string]any{
		"title": "SEO", "parentObjectiveId": obj.ID,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create strategy: %d", rec.Code)
	}

	rec = doJSON(t, s, http.MethodGet, fmt.Sprintf("/api/projects/%s/objectives/%s/impact", pid, obj.ID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("impact: %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"strategies":1`) {
		t.Errorf("impact body = %s", rec.Body.String())
	}

	rec = doJSON(t, s, http.MethodDelete, fmt.Sprintf("/api/projects/%s/objectives/%s", pid, obj.ID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete: %d", rec.Code)
	}
}

func TestExplorePageRenders(t *testing.T) {
	s, _ := newTestServer(t)
	pid := seedTestProject(t, s)
	seedTestExperiment(t, s, pid)

	rec := doJSON(t, s, http.MethodGet, "/projects/"+pid+"/explore", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "CTA copy") {
		t.Errorf("page missing experiment title: %s", body)
	}
	if !strings.Contains(body, "Acme") {
		t.Errorf("page missing project name")
	}
}

func TestGetTeamMemberByID(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/team", map[string]any{
		"name": "Dana", "role": "Lead", "avatar": "🧪",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rec.Code, rec.Body.String())
	}
	var created domain.TeamMember
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	rec = doJSON(t, s, http.MethodGet, "/api/team/"+created.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d, body %s", rec.Code, rec.Body.String())
	}
	var got domain.TeamMember
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Name != "Dana" || got.Role != domain.RoleLead {
		t.Errorf("member = %+v", got)
	}

	rec = doJSON(t, s, http.MethodGet, "/api/team/nope", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown member status = %d, want 404", rec.Code)
	}
}

func TestUnknownProjectIs404(t *testing.T) {
	s, _ := newTestServer(t)
	rec := doJSON(t, s, http.MethodGet, "/api/projects/nope", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}
