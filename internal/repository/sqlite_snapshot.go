package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/nedo8680/plan-accion-cli/internal/domain"
)

// SQLiteSnapshotRepo implements SnapshotRepo using a SQLite database.
type SQLiteSnapshotRepo struct {
	db *sql.DB
}

// NewSQLiteSnapshotRepo creates a new SQLiteSnapshotRepo.
func NewSQLiteSnapshotRepo(db *sql.DB) *SQLiteSnapshotRepo {
	return &SQLiteSnapshotRepo{db: db}
}

// Replace swaps the whole snapshot for a fresh listing inside one
// transaction. Follow-ups ride along with their plans; the FK cascade
// clears them with the old rows.
func (r *SQLiteSnapshotRepo) Replace(ctx context.Context, plans []*domain.Plan, syncedAt time.Time) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting snapshot transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM plans`); err != nil {
		return fmt.Errorf("clearing snapshot: %w", err)
	}

	for _, p := range plans {
		if err := insertPlan(ctx, tx, p); err != nil {
			return err
		}
		for _, fu := range p.FollowUps {
			if err := insertFollowUp(ctx, tx, fu); err != nil {
				return err
			}
		}
	}

	if _, err := tx.ExecContext(ctx, `INSERT INTO snapshot_meta (id, synced_at) VALUES ('default', ?)
		ON CONFLICT(id) DO UPDATE SET synced_at = excluded.synced_at`,
		syncedAt.UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("recording sync time: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing snapshot: %w", err)
	}
	committed = true
	return nil
}

func insertPlan(ctx context.Context, tx *sql.Tx, p *domain.Plan) error {
	query := `INSERT INTO plans (
		id, plan_number, entity_name, entity_contact, indicator,
		improvement_input, action_type, recommended_action, proposed_action,
		activities_description, compliance_evidence, start_date, end_date,
		state, decision, quality_observation, created_by, created_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := tx.ExecContext(ctx, query,
		p.ID,
		p.PlanNumber,
		p.EntityName,
		p.EntityContact,
		p.Indicator,
		p.ImprovementInput,
		p.ActionType,
		p.RecommendedAction,
		p.ProposedAction,
		p.ActivitiesDescription,
		p.ComplianceEvidence,
		p.StartDate,
		p.EndDate,
		domain.CoalesceStr(p.RawState, p.State.Wire()),
		string(p.Decision),
		p.QualityObservation,
		p.CreatedBy,
		nullableTimeToString(p.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting plan %d: %w", p.ID, err)
	}
	return nil
}

func insertFollowUp(ctx context.Context, tx *sql.Tx, fu *domain.FollowUp) error {
	query := `INSERT INTO follow_ups (
		id, plan_id, report_date, activities_performed, evidence_file,
		status, quality_observation, updated_by, created_at, updated_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := tx.ExecContext(ctx, query,
		fu.ID,
		fu.PlanID,
		fu.ReportDate,
		fu.ActivitiesPerformed,
		fu.EvidenceFile,
		fu.Status.Wire(),
		fu.QualityObservation,
		fu.UpdatedByActor,
		nullableTimeToString(fu.CreatedAt),
		nullableTimeToString(fu.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting follow-up %d: %w", fu.ID, err)
	}
	return nil
}

// ListPlans loads the snapshot with follow-ups attached, newest plans
// first to match the live sidebar default.
func (r *SQLiteSnapshotRepo) ListPlans(ctx context.Context) ([]*domain.Plan, error) {
	query := `SELECT id, plan_number, entity_name, entity_contact, indicator,
		improvement_input, action_type, recommended_action, proposed_action,
		activities_description, compliance_evidence, start_date, end_date,
		state, decision, quality_observation, created_by, created_at
		FROM plans ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing snapshot plans: %w", err)
	}
	defer rows.Close()

	var plans []*domain.Plan
	byID := make(map[int64]*domain.Plan)
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, p)
		byID[p.ID] = p
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating snapshot plans: %w", err)
	}

	fuRows, err := r.db.QueryContext(ctx, `SELECT id, plan_id, report_date,
		activities_performed, evidence_file, status, quality_observation,
		updated_by, created_at, updated_at
		FROM follow_ups ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("listing snapshot follow-ups: %w", err)
	}
	defer fuRows.Close()

	for fuRows.Next() {
		fu, err := scanFollowUp(fuRows)
		if err != nil {
			return nil, err
		}
		if p := byID[fu.PlanID]; p != nil {
			p.FollowUps = append(p.FollowUps, fu)
		}
	}
	if err := fuRows.Err(); err != nil {
		return nil, fmt.Errorf("iterating snapshot follow-ups: %w", err)
	}
	return plans, nil
}

// SyncedAt returns when the snapshot was last replaced, or nil when no
// sync has happened yet.
func (r *SQLiteSnapshotRepo) SyncedAt(ctx context.Context) (*time.Time, error) {
	var raw string
	err := r.db.QueryRowContext(ctx,
		`SELECT synced_at FROM snapshot_meta WHERE id = 'default'`).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading sync time: %w", err)
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, fmt.Errorf("parsing sync time: %w", err)
	}
	return &t, nil
}

func scanPlan(rows *sql.Rows) (*domain.Plan, error) {
	var p domain.Plan
	var state, decision string
	var createdAt sql.NullString
	if err := rows.Scan(
		&p.ID, &p.PlanNumber, &p.EntityName, &p.EntityContact, &p.Indicator,
		&p.ImprovementInput, &p.ActionType, &p.RecommendedAction, &p.ProposedAction,
		&p.ActivitiesDescription, &p.ComplianceEvidence, &p.StartDate, &p.EndDate,
		&state, &decision, &p.QualityObservation, &p.CreatedBy, &createdAt,
	); err != nil {
		return nil, fmt.Errorf("scanning plan: %w", err)
	}
	p.RawState = state
	p.State = domain.ParsePlanState(state)
	p.Decision = domain.EvaluatorDecision(decision)
	p.CreatedAt = stringToNullableTime(createdAt)
	return &p, nil
}

func scanFollowUp(rows *sql.Rows) (*domain.FollowUp, error) {
	var fu domain.FollowUp
	var status string
	var createdAt, updatedAt sql.NullString
	if err := rows.Scan(
		&fu.ID, &fu.PlanID, &fu.ReportDate, &fu.ActivitiesPerformed,
		&fu.EvidenceFile, &status, &fu.QualityObservation,
		&fu.UpdatedByActor, &createdAt, &updatedAt,
	); err != nil {
		return nil, fmt.Errorf("scanning follow-up: %w", err)
	}
	fu.Status = domain.ParseFollowUpStatus(status)
	fu.CreatedAt = stringToNullableTime(createdAt)
	fu.UpdatedAt = stringToNullableTime(updatedAt)
	return &fu, nil
}

func nullableTimeToString(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}

func stringToNullableTime(s sql.NullString) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s.String)
	if err != nil {
		return nil
	}
	return &t
}
