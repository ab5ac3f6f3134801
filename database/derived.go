package database

import (
	"database/sql"
	"errors"
	"fmt"

	"nodio/models"
)

// ==================== PER-PROJECT SINGLETONS ====================
//
// Summary, bullet points, mind map, and journal hold at most one row per
// project. Upserts are a single atomic insert-or-replace on the project_id
// uniqueness constraint, not a read-then-branch, so two concurrent upserts
// for the same project cannot race into duplicate rows. created_at is kept
// from the first write; updated_at refreshes on every write.

func (r *Repository) GetProjectSummary(projectID string) (*models.ProjectSummary, error) {
	var row struct {
		ID          string
		ProjectID   string
		SummaryText string
		CreatedAt   int64
		UpdatedAt   int64
	}
	err := r.db.QueryRow(`
		SELECT id, project_id, summary_text, created_at, updated_at
		FROM project_summaries WHERE project_id = ?
	`, projectID).Scan(&row.ID, &row.ProjectID, &row.SummaryText, &row.CreatedAt, &row.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get summary for project %s: %w", projectID, err)
	}
	return &models.ProjectSummary{
		ID:          row.ID,
		ProjectID:   row.ProjectID,
		SummaryText: row.SummaryText,
		CreatedAt:   fromMillis(row.CreatedAt),
		UpdatedAt:   fromMillis(row.UpdatedAt),
	}, nil
}

func (r *Repository) UpsertProjectSummary(projectID, summaryText string) error {
	now := nowMillis()
	_, err := r.db.Exec(`
		INSERT INTO project_summaries (id, project_id, summary_text, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(project_id) DO UPDATE SET
			summary_text = excluded.summary_text,
			updated_at = excluded.updated_at
	`, "summary-"+projectID, projectID, summaryText, now, now)
	if err != nil {
		return fmt.Errorf("upsert summary for project %s: %w", projectID, err)
	}
	return nil
}

// DeleteProjectSummary removes the row if present; deleting an absent
// summary is a no-op.
func (r *Repository) DeleteProjectSummary(projectID string) error {
	if _, err := r.db.Exec(
		`DELETE FROM project_summaries WHERE project_id = ?`, projectID,
	); err != nil {
		return fmt.Errorf("delete summary for project %s: %w", projectID, err)
	}
	return nil
}

func (r *Repository) GetBulletPoints(projectID string) (*models.BulletPoints, error) {
	var row struct {
		ID        string
		ProjectID string
		Text      string
		CreatedAt int64
		UpdatedAt int64
	}
	err := r.db.QueryRow(`
		SELECT id, project_id, bullet_points_text, created_at, updated_at
		FROM audio_bullet_points WHERE project_id = ?
	`, projectID).Scan(&row.ID, &row.ProjectID, &row.Text, &row.CreatedAt, &row.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get bullet points for project %s: %w", projectID, err)
	}
	return &models.BulletPoints{
		ID:        row.ID,
		ProjectID: row.ProjectID,
		Text:      row.Text,
		CreatedAt: fromMillis(row.CreatedAt),
		UpdatedAt: fromMillis(row.UpdatedAt),
	}, nil
}

func (r *Repository) UpsertBulletPoints(projectID, text string) error {
	now := nowMillis()
	_, err := r.db.Exec(`
		INSERT INTO audio_bullet_points (id, project_id, bullet_points_text, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(project_id) DO UPDATE SET
			bullet_points_text = excluded.bullet_points_text,
			updated_at = excluded.updated_at
	`, "bullets-"+projectID, projectID, text, now, now)
	if err != nil {
		return fmt.Errorf("upsert bullet points for project %s: %w", projectID, err)
	}
	return nil
}

func (r *Repository) DeleteBulletPoints(projectID string) error {
	if _, err := r.db.Exec(
		`DELETE FROM audio_bullet_points WHERE project_id = ?`, projectID,
	); err != nil {
		return fmt.Errorf("delete bullet points for project %s: %w", projectID, err)
	}
	return nil
}

func (r *Repository) GetMindMap(projectID string) (*models.MindMap, error) {
	var row mindMapRow
	err := r.db.QueryRow(`
		SELECT id, project_id, mind_map_data, image_uri, format, created_at, updated_at
		FROM mind_maps WHERE project_id = ?
	`, projectID).Scan(&row.ID, &row.ProjectID, &row.Data, &row.ImageURI,
		&row.Format, &row.CreatedAt, &row.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get mind map for project %s: %w", projectID, err)
	}
	mindMap := row.toModel()
	return &mindMap, nil
}

func (r *Repository) UpsertMindMap(projectID, data, imageURI string, format models.MindMapFormat) error {
	now := nowMillis()
	_, err := r.db.Exec(`
		INSERT INTO mind_maps (id, project_id, mind_map_data, image_uri, format, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(project_id) DO UPDATE SET
			mind_map_data = excluded.mind_map_data,
			image_uri = excluded.image_uri,
			format = excluded.format,
			updated_at = excluded.updated_at
	`, "mindmap-"+projectID, projectID, data, nullFromString(imageURI), string(format), now, now)
	if err != nil {
		return fmt.Errorf("upsert mind map for project %s: %w", projectID, err)
	}
	return nil
}

func (r *Repository) DeleteMindMap(projectID string) error {
	if _, err := r.db.Exec(
		`DELETE FROM mind_maps WHERE project_id = ?`, projectID,
	); err != nil {
		return fmt.Errorf("delete mind map for project %s: %w", projectID, err)
	}
	return nil
}

func (r *Repository) GetJournalEntry(projectID string) (*models.JournalEntry, error) {
	var row struct {
		ID        string
		ProjectID string
		EntryText string
		CreatedAt int64
		UpdatedAt int64
	}
	err := r.db.QueryRow(`
		SELECT id, project_id, entry_text, created_at, updated_at
		FROM journal_entries WHERE project_id = ?
	`, projectID).Scan(&row.ID, &row.ProjectID, &row.EntryText, &row.CreatedAt, &row.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get journal entry for project %s: %w", projectID, err)
	}
	return &models.JournalEntry{
		ID:        row.ID,
		ProjectID: row.ProjectID,
		EntryText: row.EntryText,
		CreatedAt: fromMillis(row.CreatedAt),
		UpdatedAt: fromMillis(row.UpdatedAt),
	}, nil
}

func (r *Repository) UpsertJournalEntry(projectID, entryText string) error {
	now := nowMillis()
	_, err := r.db.Exec(`
		INSERT INTO journal_entries (id, project_id, entry_text, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(project_id) DO UPDATE SET
			entry_text = excluded.entry_text,
			updated_at = excluded.updated_at
	`, "journal-"+projectID, projectID, entryText, now, now)
	if err != nil {
		return fmt.Errorf("upsert journal entry for project %s: %w", projectID, err)
	}
	return nil
}

func (r *Repository) DeleteJournalEntry(projectID string) error {
	if _, err := r.db.Exec(
		`DELETE FROM journal_entries WHERE project_id = ?`, projectID,
	); err != nil {
		return fmt.Errorf("delete journal entry for project %s: %w", projectID, err)
	}
	return nil
}
