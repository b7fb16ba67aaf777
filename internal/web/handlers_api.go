package web

import (
	"net/http"

	"github.com/polancolabs/growthlab/internal/domain"
	"github.com/polancolabs/growthlab/internal/seed"
	"github.com/polancolabs/growthlab/internal/workspace"
)

// Projects

func (s *Server) handleAPIListProjects(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.ws.Projects())
}

func (s *Server) handleAPIGetProject(w http.ResponseWriter, r *http.Request) {
	p, err := s.ws.Project(r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

type createProjectRequest struct {
	Name        string                  `json:"name"`
	Logo        *string                 `json:"logo"`
	Industry    *string                 `json:"industry"`
	NorthStar   *domain.NorthStarMetric `json:"northStar"`
	UseTemplate bool                    `json:"useTemplate"`
}

func (s *Server) handleAPICreateProject(w http.ResponseWriter, r *http.Request) {
	var req createProjectRequest
	if !readJSON(w, r, &req) {
		return
	}

	project := &domain.Project{
		Metadata: domain.ProjectMetadata{
			Name:     req.Name,
			Logo:     req.Logo,
			Industry: req.Industry,
		},
	}
	if req.NorthStar != nil {
		ns := *req.NorthStar
		if ns.Unit == "" {
			ns.Unit = domain.UnitLabel(ns.Type)
		}
		if ns.Type == "" {
			ns.Type = domain.TypeForUnit(ns.Unit)
		}
		project.NorthStar = ns
	}

	if req.UseTemplate {
		nsName := project.NorthStar.Name
		if nsName == "" {
			nsName = domain.DefaultNorthStar().Name
		}
		objectives, strategies, experiments, err := seed.StarterTemplate(nsName)
		if err != nil {
			writeError(w, err)
			return
		}
		project.Objectives = objectives
		project.Strategies = strategies
		project.Experiments = experiments
	}

	created, err := s.ws.CreateProject(project)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleAPIDeleteProject(w http.ResponseWriter, r *http.Request) {
	if err := s.ws.RemoveProject(r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAPIUpdateNorthStar(w http.ResponseWriter, r *http.Request) {
	var ns domain.NorthStarMetric
	if !readJSON(w, r, &ns) {
		return
	}
	if err := s.ws.UpdateNorthStar(r.PathValue("id"), ns); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Objectives

type objectiveRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
}

func (s *Server) handleAPICreateObjective(w http.ResponseWriter, r *http.Request) {
	var req objectiveRequest
	if !readJSON(w, r, &req) {
		return
	}
	obj, err := s.ws.AddObjective(r.PathValue("id"), req.Title, req.Description)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, obj)
}

func (s *Server) handleAPIUpdateObjective(w http.ResponseWriter, r *http.Request) {
	var req objectiveRequest
	if !readJSON(w, r, &req) {
		return
	}
	if err := s.ws.EditObjective(r.PathValue("id"), r.PathValue("oid"), req.Title, req.Description); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type impactResponse struct {
	Strategies  int    `json:"strategies"`
	Experiments int    `json:"experiments"`
	Message     string `json:"message"`
}

func (s *Server) handleAPIObjectiveImpact(w http.ResponseWriter, r *http.Request) {
	impact, err := s.ws.PreviewObjectiveDelete(r.PathValue("id"), r.PathValue("oid"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, impactResponse{
		Strategies:  impact.Strategies,
		Experiments: impact.Experiments,
		Message:     impact.Describe(),
	})
}

func (s *Server) handleAPIDeleteObjective(w http.ResponseWriter, r *http.Request) {
	impact, err := s.ws.DeleteObjective(r.PathValue("id"), r.PathValue("oid"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, impactResponse{Strategies: impact.Strategies, Experiments: impact.Experiments})
}

// Strategies

type strategyRequest struct {
	Title             string  `json:"title"`
	ParentObjectiveID string  `json:"parentObjectiveId"`
	TargetMetric      *string `json:"targetMetric"`
}

func (s *Server) handleAPICreateStrategy(w http.ResponseWriter, r *http.Request) {
	var req strategyRequest
	if !readJSON(w, r, &req) {
		return
	}
	strat, err := s.ws.AddStrategy(r.PathValue("id"), req.ParentObjectiveID, req.Title, req.TargetMetric)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, strat)
}

func (s *Server) handleAPIUpdateStrategy(w http.ResponseWriter, r *http.Request) {
	var req strategyRequest
	if !readJSON(w, r, &req) {
		return
	}
	if err := s.ws.EditStrategy(r.PathValue("id"), r.PathValue("sid"), req.Title); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAPIStrategyImpact(w http.ResponseWriter, r *http.Request) {
	impact, err := s.ws.PreviewStrategyDelete(r.PathValue("id"), r.PathValue("sid"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, impactResponse{
		Strategies:  impact.Strategies,
		Experiments: impact.Experiments,
		Message:     impact.DescribeStrategy(),
	})
}

func (s *Server) handleAPIDeleteStrategy(w http.ResponseWriter, r *http.Request) {
	impact, err := s.ws.DeleteStrategy(r.PathValue("id"), r.PathValue("sid"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, impactResponse{Strategies: impact.Strategies, Experiments: impact.Experiments})
}

// Experiments

func (s *Server) handleAPICreateExperiment(w http.ResponseWriter, r *http.Request) {
	var form workspace.ExperimentForm
	if !readJSON(w, r, &form) {
		return
	}
	e, err := s.ws.CreateExperiment(r.PathValue("id"), form)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

func (s *Server) handleAPIUpdateExperiment(w http.ResponseWriter, r *http.Request) {
	var upd workspace.ExperimentUpdate
	if !readJSON(w, r, &upd) {
		return
	}
	e, err := s.ws.UpdateExperiment(r.PathValue("id"), r.PathValue("eid"), upd)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

type scoreRequest struct {
	Field workspace.ScoreField `json:"field"`
	Value int                  `json:"value"`
}

func (s *Server) handleAPIUpdateScore(w http.ResponseWriter, r *http.Request) {
	var req scoreRequest
	if !readJSON(w, r, &req) {
		return
	}
	e, err := s.ws.UpdateICEScore(r.PathValue("id"), r.PathValue("eid"), req.Field, req.Value)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

type statusRequest struct {
	Status domain.Status `json:"status"`
}

// handleAPIChangeStatus moves an experiment. Moves into a finished status
// respond with 202 and an armed gate: the client must follow up on
// /api/finish/complete with the key learning before anything changes.
func (s *Server) handleAPIChangeStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if !readJSON(w, r, &req) {
		return
	}
	if err := s.ws.ChangeStatus(r.PathValue("id"), r.PathValue("eid"), req.Status); err != nil {
		writeError(w, err)
		return
	}
	if pend, armed := s.ws.PendingFinish(); armed && pend.ExperimentID == r.PathValue("eid") {
		writeJSON(w, http.StatusAccepted, map[string]any{
			"pending": true,
			"target":  pend.Target,
		})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAPISelectExperiment(w http.ResponseWriter, r *http.Request) {
	e, err := s.ws.SelectExperiment(r.PathValue("id"), r.PathValue("eid"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (s *Server) handleAPIDeleteExperiment(w http.ResponseWriter, r *http.Request) {
	if err := s.ws.DeleteExperiment(r.PathValue("id"), r.PathValue("eid")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Selection and the finish gate

func (s *Server) handleAPISelection(w http.ResponseWriter, r *http.Request) {
	e, ok := s.ws.SelectedExperiment()
	if !ok {
		writeJSON(w, http.StatusOK, map[string]any{"selected": false})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"selected": true, "experiment": e})
}

func (s *Server) handleAPIClearSelection(w http.ResponseWriter, r *http.Request) {
	s.ws.ClearSelection()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAPIPendingFinish(w http.ResponseWriter, r *http.Request) {
	pend, armed := s.ws.PendingFinish()
	if !armed {
		writeJSON(w, http.StatusOK, map[string]any{"pending": false})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"pending":      true,
		"projectId":    pend.ProjectID,
		"experimentId": pend.ExperimentID,
		"target":       pend.Target,
	})
}

type completeFinishRequest struct {
	KeyLearnings string `json:"keyLearnings"`
}

func (s *Server) handleAPICompleteFinish(w http.ResponseWriter, r *http.Request) {
	var req completeFinishRequest
	if !readJSON(w, r, &req) {
		return
	}
	e, err := s.ws.CompleteFinish(req.KeyLearnings)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (s *Server) handleAPICancelFinish(w http.ResponseWriter, r *http.Request) {
	s.ws.CancelFinish()
	w.WriteHeader(http.StatusNoContent)
}

// Team

func (s *Server) handleAPIListTeam(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.ws.TeamMembers())
}

func (s *Server) handleAPIGetTeamMember(w http.ResponseWriter, r *http.Request) {
	m, err := s.ws.TeamMember(r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (s *Server) handleAPICreateTeamMember(w http.ResponseWriter, r *http.Request) {
	var m domain.TeamMember
	if !readJSON(w, r, &m) {
		return
	}
	created, err := s.ws.AddTeamMember(m)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleAPIUpdateTeamMember(w http.ResponseWriter, r *http.Request) {
	var m domain.TeamMember
	if !readJSON(w, r, &m) {
		return
	}
	m.ID = r.PathValue("id")
	updated, err := s.ws.UpdateTeamMember(m)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleAPIDeleteTeamMember(w http.ResponseWriter, r *http.Request) {
	if err := s.ws.RemoveTeamMember(r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Diagnostics

func (s *Server) handleAPILint(w http.ResponseWriter, r *http.Request) {
	issues := s.ws.Lint()
	writeJSON(w, http.StatusOK, map[string]any{
		"issues": issues,
		"count":  len(issues),
	})
}
