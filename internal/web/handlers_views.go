package web

import (
	"net/http"

	"github.com/polancolabs/growthlab/internal/views"
	"github.com/polancolabs/growthlab/internal/web/templates"
)

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	_ = templates.Home(templates.HomeData{Projects: s.ws.Projects()}).Render(r.Context(), w)
}

func (s *Server) handleExplore(w http.ResponseWriter, r *http.Request) {
	p, err := s.ws.Project(r.PathValue("id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	query := r.URL.Query().Get("q")
	dir := views.SortDesc
	if r.URL.Query().Get("sort") == string(views.SortAsc) {
		dir = views.SortAsc
	}

	data := templates.ExploreData{
		Header: templates.ProjectHeader{
			ProjectID:   p.Metadata.ID,
			ProjectName: p.Metadata.Name,
			NorthStar:   p.NorthStar,
		},
		Experiments: views.Explore(p.Experiments, query, dir),
		Query:       query,
		Sort:        dir,
	}
	_ = templates.Explore(data).Render(r.Context(), w)
}

func (s *Server) handleBoard(w http.ResponseWriter, r *http.Request) {
	p, err := s.ws.Project(r.PathValue("id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	query := r.URL.Query().Get("q")
	data := templates.BoardData{
		Header: templates.ProjectHeader{
			ProjectID:   p.Metadata.ID,
			ProjectName: p.Metadata.Name,
			NorthStar:   p.NorthStar,
		},
		Columns: views.Board(p.Experiments, query),
		Query:   query,
	}
	_ = templates.Board(data).Render(r.Context(), w)
}

func (s *Server) handleLibrary(w http.ResponseWriter, r *http.Request) {
	p, err := s.ws.Project(r.PathValue("id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	filter := views.LibraryFilter{
		Result: views.ResultAll,
		Stage:  r.URL.Query().Get("stage"),
		Query:  r.URL.Query().Get("q"),
	}
	switch r.URL.Query().Get("result") {
	case string(views.ResultWinners):
		filter.Result = views.ResultWinners
	case string(views.ResultLosers):
		filter.Result = views.ResultLosers
	}

	data := templates.LibraryData{
		Header: templates.ProjectHeader{
			ProjectID:   p.Metadata.ID,
			ProjectName: p.Metadata.Name,
			NorthStar:   p.NorthStar,
		},
		Experiments: views.Library(p.Experiments, filter),
		Filter:      filter,
	}
	_ = templates.Library(data).Render(r.Context(), w)
}

func (s *Server) handleTeamPage(w http.ResponseWriter, r *http.Request) {
	_ = templates.Team(templates.TeamData{Members: s.ws.TeamMembers()}).Render(r.Context(), w)
}
