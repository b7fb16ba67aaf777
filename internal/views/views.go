// Package views computes the read-only experiment subsets behind the
// Explore table, the agile board and the learnings library. All functions
// are pure: they filter and sort copies and never touch the source slice.
package views

import (
	"sort"
	"strings"

	"github.com/polancolabs/growthlab/internal/domain"
)

// SortDirection orders the Explore table by ICE score.
type SortDirection string

const (
	SortDesc SortDirection = "desc"
	SortAsc  SortDirection = "asc"
)

// LibraryResult narrows the library to winners or losers.
type LibraryResult string

const (
	ResultAll     LibraryResult = "All"
	ResultWinners LibraryResult = "Winners"
	ResultLosers  LibraryResult = "Losers"
)

// BoardColumns is the fixed column order of the agile board. Ideas are not
// yet committed and finished work has left the board, so neither appears.
var BoardColumns = []domain.Status{
	domain.StatusPrioritized,
	domain.StatusBuilding,
	domain.StatusLiveTesting,
	domain.StatusAnalysis,
}

// BoardColumn is one status column of the board.
type BoardColumn struct {
	Status      domain.Status
	Experiments []domain.Experiment
}

// LibraryFilter is the user-selected state of the learnings library.
type LibraryFilter struct {
	Result LibraryResult
	Stage  string // "All" or an exact funnel stage
	Query  string
}

// Explore returns the backlog view: ideas plus everything in flight except
// Building, matched against the search query and sorted by ICE score.
// The sort is stable, so equal scores keep their original order.
func Explore(experiments []domain.Experiment, query string, dir SortDirection) []domain.Experiment {
	out := make([]domain.Experiment, 0, len(experiments))
	for _, e := range experiments {
		switch e.Status {
		case domain.StatusIdea, domain.StatusPrioritized, domain.StatusLiveTesting, domain.StatusAnalysis:
			if containsFold(e.Title, query) {
				out = append(out, e)
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if dir == SortAsc {
			return out[i].ICEScore < out[j].ICEScore
		}
		return out[i].ICEScore > out[j].ICEScore
	})
	return out
}

// Board returns the four kanban columns in fixed order, holding the
// committed experiments whose title matches the search query.
func Board(experiments []domain.Experiment, query string) []BoardColumn {
	columns := make([]BoardColumn, len(BoardColumns))
	for i, status := range BoardColumns {
		columns[i] = BoardColumn{Status: status}
	}
	for _, e := range experiments {
		if !containsFold(e.Title, query) {
			continue
		}
		for i, status := range BoardColumns {
			if e.Status == status {
				columns[i].Experiments = append(columns[i].Experiments, e)
				break
			}
		}
	}
	return columns
}

// Library returns the finished experiments matching the filter, newest
// conclusion first. The search query matches either the title or the key
// learnings. Experiments without an end date keep their relative order.
func Library(experiments []domain.Experiment, f LibraryFilter) []domain.Experiment {
	out := make([]domain.Experiment, 0, len(experiments))
	for _, e := range experiments {
		if !e.Status.IsFinished() {
			continue
		}
		if f.Result == ResultWinners && e.Status != domain.StatusWinner {
			continue
		}
		if f.Result == ResultLosers && e.Status != domain.StatusLoser {
			continue
		}
		if f.Stage != "" && f.Stage != "All" && string(e.FunnelStage) != f.Stage {
			continue
		}
		if !containsFold(e.Title, f.Query) && !(e.KeyLearnings != nil && containsFold(*e.KeyLearnings, f.Query)) {
			continue
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].EndDate == nil || out[j].EndDate == nil {
			return false
		}
		// ISO dates compare correctly as strings.
		return *out[i].EndDate > *out[j].EndDate
	})
	return out
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
