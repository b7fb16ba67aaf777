package domain

// Role grants a level of access to the projects a member belongs to.
type Role string

const (
	RoleAdmin  Role = "Admin"
	RoleLead   Role = "Lead"
	RoleViewer Role = "Viewer"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleLead || r == RoleViewer
}

// TeamMember is process-wide state, independent of any project lifecycle.
// Experiments reference members only through the denormalized Owner
// snapshot, so removing a member never touches existing experiments.
type TeamMember struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Avatar     string   `json:"avatar"`
	Role       Role     `json:"role"`
	ProjectIDs []string `json:"projectIds"`
}

// Clone returns a copy that does not alias the ProjectIDs slice.
func (m TeamMember) Clone() TeamMember {
	c := m
	c.ProjectIDs = append([]string(nil), m.ProjectIDs...)
	return c
}
