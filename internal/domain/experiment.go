package domain

// Status is an experiment's position in the growth pipeline. The ordering
// below is the conceptual flow; transitions are permissive except that
// entering a Finished state requires a recorded key learning.
type Status string

const (
	StatusIdea         Status = "Idea"
	StatusPrioritized  Status = "Prioritized"
	StatusBuilding     Status = "Building"
	StatusLiveTesting  Status = "Live Testing"
	StatusAnalysis     Status = "Analysis"
	StatusWinner       Status = "Finished - Winner"
	StatusLoser        Status = "Finished - Loser"
	StatusInconclusive Status = "Finished - Inconclusive"
)

// AllStatuses lists every status in pipeline order.
var AllStatuses = []Status{
	StatusIdea, StatusPrioritized, StatusBuilding, StatusLiveTesting,
	StatusAnalysis, StatusWinner, StatusLoser, StatusInconclusive,
}

// IsFinished reports whether s is one of the three terminal states.
func (s Status) IsFinished() bool {
	return s == StatusWinner || s == StatusLoser || s == StatusInconclusive
}

// Valid reports whether s is a known status value.
func (s Status) Valid() bool {
	for _, v := range AllStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// FunnelStage is the AARRR lifecycle phase an experiment targets.
type FunnelStage string

const (
	StageAcquisition FunnelStage = "Acquisition"
	StageActivation  FunnelStage = "Activation"
	StageRetention   FunnelStage = "Retention"
	StageReferral    FunnelStage = "Referral"
	StageRevenue     FunnelStage = "Revenue"
)

var AllFunnelStages = []FunnelStage{
	StageAcquisition, StageActivation, StageRetention, StageReferral, StageRevenue,
}

func (f FunnelStage) Valid() bool {
	for _, v := range AllFunnelStages {
		if f == v {
			return true
		}
	}
	return false
}

// Owner is a snapshot of the team member who owns an experiment, captured at
// assignment time. It is a value, not a reference: later edits to the team
// member do not rewrite past experiments.
type Owner struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// Experiment is a single growth bet, scored by the ICE heuristic and moved
// through the status pipeline. NorthStarMetric is the display label copied
// from the project's metric at creation time, not a live reference.
type Experiment struct {
	ID               string      `json:"id"`
	Title            string      `json:"title"`
	Status           Status      `json:"status"`
	Owner            Owner       `json:"owner"`
	Hypothesis       string      `json:"hypothesis"`
	Observation      *string     `json:"observation,omitempty"`
	Problem          *string     `json:"problem,omitempty"`
	Source           *string     `json:"source,omitempty"`
	Labels           []string    `json:"labels,omitempty"`
	SuccessCriteria  *string     `json:"successCriteria,omitempty"`
	TargetMetric     *string     `json:"targetMetric,omitempty"`
	TestURL          *string     `json:"testUrl,omitempty"`
	KeyLearnings     *string     `json:"keyLearnings,omitempty"`
	VisualProof      []string    `json:"visualProof,omitempty"`
	Impact           int         `json:"impact"`
	Confidence       int         `json:"confidence"`
	Ease             int         `json:"ease"`
	ICEScore         int         `json:"iceScore"`
	FunnelStage      FunnelStage `json:"funnelStage"`
	NorthStarMetric  string      `json:"northStarMetric"`
	LinkedStrategyID *string     `json:"linkedStrategyId,omitempty"`
	StartDate        *string     `json:"startDate,omitempty"` // ISO YYYY-MM-DD
	EndDate          *string     `json:"endDate,omitempty"`   // ISO YYYY-MM-DD
}

// Clone returns a deep copy of the experiment.
func (e Experiment) Clone() Experiment {
	c := e
	c.Labels = append([]string(nil), e.Labels...)
	c.VisualProof = append([]string(nil), e.VisualProof...)
	return c
}

// RecomputeICE restores the iceScore invariant after any score change.
func (e *Experiment) RecomputeICE() {
	e.ICEScore = e.Impact * e.Confidence * e.Ease
}

// ICEBand buckets an ICE score for display: "high" >= 500, "medium" >= 250,
// otherwise "low".
func ICEBand(score int) string {
	switch {
	case score >= 500:
		return "high"
	case score >= 250:
		return "medium"
	default:
		return "low"
	}
}
