package templates

import (
	"github.com/polancolabs/growthlab/internal/domain"
	"github.com/polancolabs/growthlab/internal/views"
)

// ProjectHeader is the shared top strip: project identity plus the North
// Star progress bar.
type ProjectHeader struct {
	ProjectID   string
	ProjectName string
	NorthStar   domain.NorthStarMetric
}

// ExploreData feeds the backlog table.
type ExploreData struct {
	Header      ProjectHeader
	Experiments []domain.Experiment
	Query       string
	Sort        views.SortDirection
}

// BoardData feeds the four-column agile board.
type BoardData struct {
	Header  ProjectHeader
	Columns []views.BoardColumn
	Query   string
}

// LibraryData feeds the learnings library.
type LibraryData struct {
	Header      ProjectHeader
	Experiments []domain.Experiment
	Filter      views.LibraryFilter
}

// HomeData lists all projects on the landing page.
type HomeData struct {
	Projects []*domain.Project
}

// TeamData lists the roster.
type TeamData struct {
	Members []domain.TeamMember
}
