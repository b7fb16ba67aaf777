package turso

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/polancolabs/growthlab/internal/domain"
	"github.com/polancolabs/growthlab/internal/util"
)

type ProjectRepository struct {
	db *sql.DB
}

func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Create(ctx context.Context, project *domain.Project) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO projects (id, name, logo, industry, created_at, nsm_name, nsm_current_value, nsm_target_value, nsm_unit, nsm_type)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		project.Metadata.ID,
		project.Metadata.Name,
		util.NullStringPtr(project.Metadata.Logo),
		util.NullStringPtr(project.Metadata.Industry),
		project.Metadata.CreatedAt.Format(time.RFC3339),
		project.NorthStar.Name,
		project.NorthStar.CurrentValue,
		project.NorthStar.TargetValue,
		project.NorthStar.Unit,
		string(project.NorthStar.Type),
	)
	if err != nil {
		return fmt.Errorf("failed to insert project: %w", err)
	}

	for i := range project.Objectives {
		if err := upsertObjective(ctx, tx, project.Metadata.ID, &project.Objectives[i]); err != nil {
			return err
		}
	}
	for i := range project.Strategies {
		if err := upsertStrategy(ctx, tx, project.Metadata.ID, &project.Strategies[i]); err != nil {
			return err
		}
	}
	for i := range project.Experiments {
		if err := upsertExperiment(ctx, tx, project.Metadata.ID, &project.Experiments[i]); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit project: %w", err)
	}
	return nil
}

func (r *ProjectRepository) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, logo, industry, created_at, nsm_name, nsm_current_value, nsm_target_value, nsm_unit, nsm_type
		FROM projects WHERE id = ?
	`, id)

	p, err := scanProject(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	if err := r.loadChildren(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *ProjectRepository) List(ctx context.Context) ([]*domain.Project, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, logo, industry, created_at, nsm_name, nsm_current_value, nsm_target_value, nsm_unit, nsm_type
		FROM projects ORDER BY created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []*domain.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate projects: %w", err)
	}

	for _, p := range projects {
		if err := r.loadChildren(ctx, p); err != nil {
			return nil, err
		}
	}
	return projects, nil
}

func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}

// UpdateNorthStar rewrites the denormalized metric columns on the project row.
func (r *ProjectRepository) UpdateNorthStar(ctx context.Context, projectID string, ns *domain.NorthStarMetric) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE projects SET nsm_name = ?, nsm_current_value = ?, nsm_target_value = ?, nsm_unit = ?, nsm_type = ?
		WHERE id = ?
	`, ns.Name, ns.CurrentValue, ns.TargetValue, ns.Unit, string(ns.Type), projectID)
	if err != nil {
		return fmt.Errorf("failed to update north star: %w", err)
	}
	return nil
}

func (r *ProjectRepository) UpsertObjective(ctx context.Context, projectID string, o *domain.Objective) error {
	return upsertObjective(ctx, r.db, projectID, o)
}

func (r *ProjectRepository) DeleteObjective(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM objectives WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete objective: %w", err)
	}
	return nil
}

func (r *ProjectRepository) UpsertStrategy(ctx context.Context, projectID string, s *domain.Strategy) error {
	return upsertStrategy(ctx, r.db, projectID, s)
}

func (r *ProjectRepository) DeleteStrategy(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM strategies WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete strategy: %w", err)
	}
	return nil
}

func (r *ProjectRepository) UpsertExperiment(ctx context.Context, projectID string, e *domain.Experiment) error {
	return upsertExperiment(ctx, r.db, projectID, e)
}

func (r *ProjectRepository) DeleteExperiment(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM experiments WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete experiment: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func scanProject(row rowScanner) (*domain.Project, error) {
	var (
		p              domain.Project
		logo, industry sql.NullString
		createdAt      string
		nsType         string
	)
	err := row.Scan(
		&p.Metadata.ID,
		&p.Metadata.Name,
		&logo,
		&industry,
		&createdAt,
		&p.NorthStar.Name,
		&p.NorthStar.CurrentValue,
		&p.NorthStar.TargetValue,
		&p.NorthStar.Unit,
		&nsType,
	)
	if err != nil {
		return nil, err
	}
	p.Metadata.Logo = util.NullStringToPtr(logo)
	p.Metadata.Industry = util.NullStringToPtr(industry)
	p.Metadata.CreatedAt = util.ParseTimeSQLite(createdAt)
	p.NorthStar.Type = domain.MetricType(nsType)
	return &p, nil
}

func (r *ProjectRepository) loadChildren(ctx context.Context, p *domain.Project) error {
	objectives, err := r.listObjectives(ctx, p.Metadata.ID)
	if err != nil {
		return err
	}
	strategies, err := r.listStrategies(ctx, p.Metadata.ID)
	if err != nil {
		return err
	}
	experiments, err := r.listExperiments(ctx, p.Metadata.ID)
	if err != nil {
		return err
	}
	p.Objectives = objectives
	p.Strategies = strategies
	p.Experiments = experiments
	return nil
}

func (r *ProjectRepository) listObjectives(ctx context.Context, projectID string) ([]domain.Objective, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, status, progress, description
		FROM objectives WHERE project_id = ? ORDER BY rowid
	`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list objectives: %w", err)
	}
	defer rows.Close()

	var out []domain.Objective
	for rows.Next() {
		var (
			o      domain.Objective
			status string
			desc   sql.NullString
		)
		if err := rows.Scan(&o.ID, &o.Title, &status, &o.Progress, &desc); err != nil {
			return nil, fmt.Errorf("failed to scan objective: %w", err)
		}
		o.Status = domain.ObjectiveStatus(status)
		o.Description = util.NullStringToPtr(desc)
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *ProjectRepository) listStrategies(ctx context.Context, projectID string) ([]domain.Strategy, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, parent_objective_id, title, target_metric
		FROM strategies WHERE project_id = ? ORDER BY rowid
	`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list strategies: %w", err)
	}
	defer rows.Close()

	var out []domain.Strategy
	for rows.Next() {
		var (
			s      domain.Strategy
			target sql.NullString
		)
		if err := rows.Scan(&s.ID, &s.ParentObjectiveID, &s.Title, &target); err != nil {
			return nil, fmt.Errorf("failed to scan strategy: %w", err)
		}
		s.TargetMetric = util.NullStringToPtr(target)
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *ProjectRepository) listExperiments(ctx context.Context, projectID string) ([]domain.Experiment, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, status, owner_name, owner_avatar, hypothesis, observation, problem, source,
		       labels, success_criteria, target_metric, test_url, key_learnings, visual_proof,
		       impact, confidence, ease, ice_score, funnel_stage, north_star_metric,
		       linked_strategy_id, start_date, end_date
		FROM experiments WHERE project_id = ? ORDER BY ice_score DESC, rowid
	`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list experiments: %w", err)
	}
	defer rows.Close()

	var out []domain.Experiment
	for rows.Next() {
		var (
			e                                                domain.Experiment
			status, stage                                    string
			observation, problem, source                     sql.NullString
			labels, visualProof                              string
			successCriteria, targetMetric, testURL           sql.NullString
			keyLearnings, linkedStrategy, startDate, endDate sql.NullString
		)
		err := rows.Scan(
			&e.ID, &e.Title, &status, &e.Owner.Name, &e.Owner.Avatar, &e.Hypothesis,
			&observation, &problem, &source,
			&labels, &successCriteria, &targetMetric, &testURL, &keyLearnings, &visualProof,
			&e.Impact, &e.Confidence, &e.Ease, &e.ICEScore, &stage, &e.NorthStarMetric,
			&linkedStrategy, &startDate, &endDate,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan experiment: %w", err)
		}
		e.Status = domain.Status(status)
		e.FunnelStage = domain.FunnelStage(stage)
		e.Observation = util.NullStringToPtr(observation)
		e.Problem = util.NullStringToPtr(problem)
		e.Source = util.NullStringToPtr(source)
		e.SuccessCriteria = util.NullStringToPtr(successCriteria)
		e.TargetMetric = util.NullStringToPtr(targetMetric)
		e.TestURL = util.NullStringToPtr(testURL)
		e.KeyLearnings = util.NullStringToPtr(keyLearnings)
		e.LinkedStrategyID = util.NullStringToPtr(linkedStrategy)
		e.StartDate = util.NullStringToPtr(startDate)
		e.EndDate = util.NullStringToPtr(endDate)
		e.Labels = decodeStringList(labels)
		e.VisualProof = decodeStringList(visualProof)
		out = append(out, e)
	}
	return out, rows.Err()
}

func upsertObjective(ctx context.Context, db execer, projectID string, o *domain.Objective) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO objectives (id, project_id, title, status, progress, description)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			title = excluded.title,
			status = excluded.status,
			progress = excluded.progress,
			description = excluded.description
	`, o.ID, projectID, o.Title, string(o.Status), o.Progress, util.NullStringPtr(o.Description))
	if err != nil {
		return fmt.Errorf("failed to upsert objective: %w", err)
	}
	return nil
}

func upsertStrategy(ctx context.Context, db execer, projectID string, s *domain.Strategy) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO strategies (id, project_id, parent_objective_id, title, target_metric)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			parent_objective_id = excluded.parent_objective_id,
			title = excluded.title,
			target_metric = excluded.target_metric
	`, s.ID, projectID, s.ParentObjectiveID, s.Title, util.NullStringPtr(s.TargetMetric))
	if err != nil {
		return fmt.Errorf("failed to upsert strategy: %w", err)
	}
	return nil
}

func upsertExperiment(ctx context.Context, db execer, projectID string, e *domain.Experiment) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO experiments (
			id, project_id, title, status, owner_name, owner_avatar, hypothesis,
			observation, problem, source, labels, success_criteria, target_metric,
			test_url, key_learnings, visual_proof, impact, confidence, ease, ice_score,
			funnel_stage, north_star_metric, linked_strategy_id, start_date, end_date
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			title = excluded.title,
			status = excluded.status,
			owner_name = excluded.owner_name,
			owner_avatar = excluded.owner_avatar,
			hypothesis = excluded.hypothesis,
			observation = excluded.observation,
			problem = excluded.problem,
			source = excluded.source,
			labels = excluded.labels,
			success_criteria = excluded.success_criteria,
			target_metric = excluded.target_metric,
			test_url = excluded.test_url,
			key_learnings = excluded.key_learnings,
			visual_proof = excluded.visual_proof,
			impact = excluded.impact,
			confidence = excluded.confidence,
			ease = excluded.ease,
			ice_score = excluded.ice_score,
			funnel_stage = excluded.funnel_stage,
			north_star_metric = excluded.north_star_metric,
			linked_strategy_id = excluded.linked_strategy_id,
			start_date = excluded.start_date,
			end_date = excluded.end_date
	`,
		e.ID, projectID, e.Title, string(e.Status), e.Owner.Name, e.Owner.Avatar, e.Hypothesis,
		util.NullStringPtr(e.Observation), util.NullStringPtr(e.Problem), util.NullStringPtr(e.Source),
		encodeStringList(e.Labels), util.NullStringPtr(e.SuccessCriteria), util.NullStringPtr(e.TargetMetric),
		util.NullStringPtr(e.TestURL), util.NullStringPtr(e.KeyLearnings), encodeStringList(e.VisualProof),
		e.Impact, e.Confidence, e.Ease, e.ICEScore,
		string(e.FunnelStage), e.NorthStarMetric, util.NullStringPtr(e.LinkedStrategyID),
		util.NullStringPtr(e.StartDate), util.NullStringPtr(e.EndDate),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert experiment: %w", err)
	}
	return nil
}

func encodeStringList(values []string) string {
	if len(values) == 0 {
		return "[]"
	}
	b, err := json.Marshal(values)
	if err != nil {
		return "[]"
	}
	return string(b)
}

func decodeStringList(raw string) []string {
	if raw == "" || raw == "[]" {
		return nil
	}
	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil
	}
	return values
}
