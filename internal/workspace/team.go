package workspace

import (
	"fmt"
	"strings"

	"github.com/polancolabs/growthlab/internal/domain"
	"github.com/polancolabs/growthlab/internal/ports"
)

// TeamMembers returns the roster in load order.
func (w *Workspace) TeamMembers() []domain.TeamMember {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]domain.TeamMember, 0, len(w.memberOrder))
	for _, id := range w.memberOrder {
		out = append(out, w.members[id].Clone())
	}
	return out
}

// TeamMember returns a single member by id.
func (w *Workspace) TeamMember(id string) (domain.TeamMember, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	m, ok := w.members[id]
	if !ok {
		return domain.TeamMember{}, fmt.Errorf("team member %s: %w", id, ErrNotFound)
	}
	return m.Clone(), nil
}

// AddTeamMember adds a member to the roster.
func (w *Workspace) AddTeamMember(m domain.TeamMember) (domain.TeamMember, error) {
	if strings.TrimSpace(m.Name) == "" {
		return domain.TeamMember{}, &ValidationError{Field: "name", Reason: "must not be blank"}
	}
	if m.Role == "" {
		m.Role = domain.RoleViewer
	}
	if !m.Role.Valid() {
		return domain.TeamMember{}, &ValidationError{Field: "role", Reason: fmt.Sprintf("unknown role %q", m.Role)}
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if m.ID == "" {
		m.ID = w.newID()
	}
	c := m.Clone()
	w.members[c.ID] = &c
	w.memberOrder = append(w.memberOrder, c.ID)

	w.sink.Submit(ports.Intent{Op: ports.OpCreate, Kind: ports.KindTeamMember, EntityID: c.ID, Member: &m})
	w.recordMutation(ports.KindTeamMember, ports.OpCreate)
	return m, nil
}

// UpdateTeamMember replaces a member record wholesale, keeping its id.
// Experiments keep the owner snapshot taken when they were assigned, so
// renaming a member does not rewrite existing cards.
func (w *Workspace) UpdateTeamMember(m domain.TeamMember) (domain.TeamMember, error) {
	if strings.TrimSpace(m.Name) == "" {
		return domain.TeamMember{}, &ValidationError{Field: "name", Reason: "must not be blank"}
	}
	if !m.Role.Valid() {
		return domain.TeamMember{}, &ValidationError{Field: "role", Reason: fmt.Sprintf("unknown role %q", m.Role)}
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	cur, ok := w.members[m.ID]
	if !ok {
		return domain.TeamMember{}, fmt.Errorf("team member %s: %w", m.ID, ErrNotFound)
	}
	c := m.Clone()
	*cur = c

	w.sink.Submit(ports.Intent{Op: ports.OpUpdate, Kind: ports.KindTeamMember, EntityID: m.ID, Member: &m})
	w.recordMutation(ports.KindTeamMember, ports.OpUpdate)
	return m, nil
}

// RemoveTeamMember drops a member from the roster. Experiments owned by the
// member are untouched: the owner is a snapshot, not a reference.
func (w *Workspace) RemoveTeamMember(id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.members[id]; !ok {
		return fmt.Errorf("team member %s: %w", id, ErrNotFound)
	}
	delete(w.members, id)
	kept := w.memberOrder[:0:0]
	for _, mid := range w.memberOrder {
		if mid != id {
			kept = append(kept, mid)
		}
	}
	w.memberOrder = kept

	w.sink.Submit(ports.Intent{Op: ports.OpDelete, Kind: ports.KindTeamMember, EntityID: id})
	w.recordMutation(ports.KindTeamMember, ports.OpDelete)
	return nil
}
