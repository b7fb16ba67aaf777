package workspace

import "fmt"

// LintIssue describes a dangling reference inside a project. Dangling
// references are tolerated at runtime and simply render unlinked; Lint makes
// them visible for operators.
type LintIssue struct {
	ProjectID string `json:"projectId"`
	Kind      string `json:"kind"`
	EntityID  string `json:"entityId"`
	Message   string `json:"message"`
}

// Lint scans every project for strategies pointing at missing objectives and
// experiments pointing at missing strategies.
func (w *Workspace) Lint() []LintIssue {
	w.mu.Lock()
	defer w.mu.Unlock()

	var issues []LintIssue
	for _, id := range w.order {
		p := w.projects[id]
		objectives := make(map[string]bool, len(p.Objectives))
		for _, o := range p.Objectives {
			objectives[o.ID] = true
		}
		strategies := make(map[string]bool, len(p.Strategies))
		for _, s := range p.Strategies {
			strategies[s.ID] = true
		}
		for _, s := range p.Strategies {
			if !objectives[s.ParentObjectiveID] {
				issues = append(issues, LintIssue{
					ProjectID: id,
					Kind:      "strategy",
					EntityID:  s.ID,
					Message:   fmt.Sprintf("strategy %q points at missing objective %s", s.Title, s.ParentObjectiveID),
				})
			}
		}
		for _, e := range p.Experiments {
			if e.LinkedStrategyID == nil {
				continue
			}
			if !strategies[*e.LinkedStrategyID] {
				issues = append(issues, LintIssue{
					ProjectID: id,
					Kind:      "experiment",
					EntityID:  e.ID,
					Message:   fmt.Sprintf("experiment %q points at missing strategy %s", e.Title, *e.LinkedStrategyID),
				})
			}
		}
	}
	return issues
}
