package domain

// ObjectiveStatus marks a growth lever as in play or concluded.
type ObjectiveStatus string

const (
	ObjectiveActive ObjectiveStatus = "Active"
	ObjectiveDone   ObjectiveStatus = "Done"
)

// Objective is a strategic focus area decomposed into strategies. Progress
// is tracked by hand, not derived from child strategies.
type Objective struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Status      ObjectiveStatus `json:"status"`
	Progress    int             `json:"progress"` // 0-100
	Description *string         `json:"description,omitempty"`
}

// Strategy is a concrete bet under an objective, optionally naming the
// input metric it targets (e.g. "CVR"). Strategies are never re-parented;
// edits only change the title.
type Strategy struct {
	ID                string  `json:"id"`
	Title             string  `json:"title"`
	ParentObjectiveID string  `json:"parentObjectiveId"`
	TargetMetric      *string `json:"targetMetric,omitempty"`
}
