package web

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/polancolabs/growthlab/internal/workspace"
)

//go:embed static/*
var staticFiles embed.FS

type Server struct {
	ws     *workspace.Workspace
	router *http.ServeMux
	addr   string
	logger *zap.Logger
}

func NewServer(ws *workspace.Workspace, addr string, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		ws:     ws,
		router: http.NewServeMux(),
		addr:   addr,
		logger: logger,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(fmt.Sprintf("failed to create static filesystem: %v", err))
	}
	s.router.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	s.router.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Pages
	s.router.HandleFunc("GET /", s.handleHome)
	s.router.HandleFunc("GET /projects/{id}/explore", s.handleExplore)
	s.router.HandleFunc("GET /projects/{id}/board", s.handleBoard)
	s.router.HandleFunc("GET /projects/{id}/library", s.handleLibrary)
	s.router.HandleFunc("GET /team", s.handleTeamPage)

	// Projects
	s.router.HandleFunc("GET /api/projects", s.handleAPIListProjects)
	s.router.HandleFunc("POST /api/projects", s.handleAPICreateProject)
	s.router.HandleFunc("GET /api/projects/{id}", s.handleAPIGetProject)
	s.router.HandleFunc("DELETE /api/projects/{id}", s.handleAPIDeleteProject)
	s.router.HandleFunc("PUT /api/projects/{id}/northstar", s.handleAPIUpdateNorthStar)

	// Objectives and strategies
	s.router.HandleFunc("POST /api/projects/{id}/objectives", s.handleAPICreateObjective)
	s.router.HandleFunc("PUT /api/projects/{id}/objectives/{oid}", s.handleAPIUpdateObjective)
	s.router.HandleFunc("GET /api/projects/{id}/objectives/{oid}/impact", s.handleAPIObjectiveImpact)
	s.router.HandleFunc("DELETE /api/projects/{id}/objectives/{oid}", s.handleAPIDeleteObjective)
	s.router.HandleFunc("POST /api/projects/{id}/strategies", s.handleAPICreateStrategy)
	s.router.HandleFunc("PUT /api/projects/{id}/strategies/{sid}", s.handleAPIUpdateStrategy)
	s.router.HandleFunc("GET /api/projects/{id}/strategies/{sid}/impact", s.handleAPIStrategyImpact)
	s.router.HandleFunc("DELETE /api/projects/{id}/strategies/{sid}", s.handleAPIDeleteStrategy)

	// Experiments
	s.router.HandleFunc("POST /api/projects/{id}/experiments", s.handleAPICreateExperiment)
	s.router.HandleFunc("PUT /api/projects/{id}/experiments/{eid}", s.handleAPIUpdateExperiment)
	s.router.HandleFunc("POST /api/projects/{id}/experiments/{eid}/score", s.handleAPIUpdateScore)
	s.router.HandleFunc("POST /api/projects/{id}/experiments/{eid}/status", s.handleAPIChangeStatus)
	s.router.HandleFunc("POST /api/projects/{id}/experiments/{eid}/select", s.handleAPISelectExperiment)
	s.router.HandleFunc("DELETE /api/projects/{id}/experiments/{eid}", s.handleAPIDeleteExperiment)

	// Detail view selection and the finish gate
	s.router.HandleFunc("GET /api/selection", s.handleAPISelection)
	s.router.HandleFunc("DELETE /api/selection", s.handleAPIClearSelection)
	s.router.HandleFunc("GET /api/finish", s.handleAPIPendingFinish)
	s.router.HandleFunc("POST /api/finish/complete", s.handleAPICompleteFinish)
	s.router.HandleFunc("POST /api/finish/cancel", s.handleAPICancelFinish)

	// Team
	s.router.HandleFunc("GET /api/team", s.handleAPIListTeam)
	s.router.HandleFunc("GET /api/team/{id}", s.handleAPIGetTeamMember)
	s.router.HandleFunc("POST /api/team", s.handleAPICreateTeamMember)
	s.router.HandleFunc("PUT /api/team/{id}", s.handleAPIUpdateTeamMember)
	s.router.HandleFunc("DELETE /api/team/{id}", s.handleAPIDeleteTeamMember)

	// Diagnostics
	s.router.HandleFunc("GET /api/lint", s.handleAPILint)
}

// Handler exposes the route table for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:         s.addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("starting server", zap.String("addr", s.addr))

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("server shutdown error", zap.Error(err))
		}
	}()

	err := server.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}
