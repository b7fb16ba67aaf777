package turso

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/polancolabs/growthlab/internal/domain"
)

type TeamRepository struct {
	db *sql.DB
}

func NewTeamRepository(db *sql.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) Create(ctx context.Context, member *domain.TeamMember) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO team_members (id, name, email, avatar, role)
		VALUES (?, ?, ?, ?, ?)
	`, member.ID, member.Name, member.Email, member.Avatar, string(member.Role))
	if err != nil {
		return fmt.Errorf("failed to insert team member: %w", err)
	}
	if err := replaceMemberProjects(ctx, tx, member.ID, member.ProjectIDs); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit team member: %w", err)
	}
	return nil
}

func (r *TeamRepository) GetByID(ctx context.Context, id string) (*domain.TeamMember, error) {
	var (
		m    domain.TeamMember
		role string
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, email, avatar, role FROM team_members WHERE id = ?
	`, id).Scan(&m.ID, &m.Name, &m.Email, &m.Avatar, &role)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get team member: %w", err)
	}
	m.Role = domain.Role(role)

	projectIDs, err := r.memberProjects(ctx, id)
	if err != nil {
		return nil, err
	}
	m.ProjectIDs = projectIDs
	return &m, nil
}

func (r *TeamRepository) List(ctx context.Context) ([]*domain.TeamMember, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, email, avatar, role FROM team_members ORDER BY rowid
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list team members: %w", err)
	}
	defer rows.Close()

	var members []*domain.TeamMember
	for rows.Next() {
		var (
			m    domain.TeamMember
			role string
		)
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Avatar, &role); err != nil {
			return nil, fmt.Errorf("failed to scan team member: %w", err)
		}
		m.Role = domain.Role(role)
		members = append(members, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate team members: %w", err)
	}

	for _, m := range members {
		projectIDs, err := r.memberProjects(ctx, m.ID)
		if err != nil {
			return nil, err
		}
		m.ProjectIDs = projectIDs
	}
	return members, nil
}

func (r *TeamRepository) Update(ctx context.Context, member *domain.TeamMember) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		UPDATE team_members SET name = ?, email = ?, avatar = ?, role = ? WHERE id = ?
	`, member.Name, member.Email, member.Avatar, string(member.Role), member.ID)
	if err != nil {
		return fmt.Errorf("failed to update team member: %w", err)
	}
	if err := replaceMemberProjects(ctx, tx, member.ID, member.ProjectIDs); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit team member: %w", err)
	}
	return nil
}

func (r *TeamRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM team_members WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete team member: %w", err)
	}
	return nil
}

func (r *TeamRepository) memberProjects(ctx context.Context, memberID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT project_id FROM team_member_projects WHERE member_id = ? ORDER BY project_id
	`, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to list member projects: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan member project: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func replaceMemberProjects(ctx context.Context, tx *sql.Tx, memberID string, projectIDs []string) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM team_member_projects WHERE member_id = ?`, memberID); err != nil {
		return fmt.Errorf("failed to clear member projects: %w", err)
	}
	for _, pid := range projectIDs {
		_, err := tx.ExecContext(ctx, `
			INSERT OR IGNORE INTO team_member_projects (member_id, project_id) VALUES (?, ?)
		`, memberID, pid)
		if err != nil {
			return fmt.Errorf("failed to insert member project: %w", err)
		}
	}
	return nil
}
