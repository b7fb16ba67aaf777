package ports

import "github.com/polancolabs/growthlab/internal/domain"

// Operation is the kind of change a persist intent describes.
type Operation string

const (
	OpCreate Operation = "create"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// EntityKind names the entity a persist intent applies to.
type EntityKind string

const (
	KindProject    EntityKind = "project"
	KindNorthStar  EntityKind = "north_star"
	KindObjective  EntityKind = "objective"
	KindStrategy   EntityKind = "strategy"
	KindExperiment EntityKind = "experiment"
	KindTeamMember EntityKind = "team_member"
)

// Intent is the outbound record of a local mutation, for a storage adapter
// to translate into backend writes. Exactly one payload field is set for
// create/update; delete intents carry only the ids.
type Intent struct {
	Op        Operation
	Kind      EntityKind
	ProjectID string
	EntityID  string

	Project    *domain.Project
	NorthStar  *domain.NorthStarMetric
	Objective  *domain.Objective
	Strategy   *domain.Strategy
	Experiment *domain.Experiment
	Member     *domain.TeamMember
}

// IntentSink receives persist intents. Submit must not block mutation
// handlers and its outcome never affects in-memory state: local state is
// authoritative for display the moment the handler returns.
type IntentSink interface {
	Submit(intent Intent)
}

// DiscardSink drops every intent. Used when no backing store is configured
// and in tests.
type DiscardSink struct{}

func (DiscardSink) Submit(Intent) {}
