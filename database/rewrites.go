package database

import (
	"database/sql"
	"errors"
	"fmt"

	"nodio/models"
)

// ==================== REWRITE HISTORY ====================
//
// Rewrite entries form a provenance forest per project: each entry has at
// most one parent, parent-less entries are roots. Entries are append-only;
// there is no update. Deleting an entry cascades through its subtree (see
// the schema's self-referential foreign key).

const rewriteColumns = "id, project_id, transcript_text, rewrite_type, target_language, parent_rewrite_id, created_at, metadata"

func scanRewrite(scan func(...any) error) (rewriteRow, error) {
	var r rewriteRow
	err := scan(&r.ID, &r.ProjectID, &r.TranscriptText, &r.RewriteType,
		&r.TargetLanguage, &r.ParentRewriteID, &r.CreatedAt, &r.Metadata)
	return r, err
}

func (r *Repository) CreateRewrite(entry *models.RewriteHistoryEntry) error {
	metadata, err := encodeMetadata(entry.Metadata)
	if err != nil {
		return err
	}

	if entry.ParentRewriteID != nil && *entry.ParentRewriteID == entry.ID {
		return fmt.Errorf("create rewrite %s: entry cannot be its own parent", entry.ID)
	}

	_, err = r.db.Exec(`
		INSERT INTO rewrite_history (id, project_id, transcript_text, rewrite_type, target_language, parent_rewrite_id, created_at, metadata)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, entry.ID, entry.ProjectID, entry.TranscriptText, string(entry.RewriteType),
		nullFromPtr(entry.TargetLanguage), nullFromPtr(entry.ParentRewriteID),
		millis(entry.CreatedAt), metadata)
	if err != nil {
		return fmt.Errorf("create rewrite %s: %w", entry.ID, err)
	}
	return nil
}

func (r *Repository) GetRewriteByID(id string) (*models.RewriteHistoryEntry, error) {
	row, err := scanRewrite(r.db.QueryRow(
		`SELECT `+rewriteColumns+` FROM rewrite_history WHERE id = ?`, id,
	).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get rewrite %s: %w", id, err)
	}
	entry, err := row.toModel()
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *Repository) GetRewritesByProject(projectID string) ([]models.RewriteHistoryEntry, error) {
	return r.queryRewrites(
		`SELECT `+rewriteColumns+` FROM rewrite_history WHERE project_id = ? ORDER BY created_at DESC`,
		projectID,
	)
}

// GetHistoryTree reconstructs the full forest for a project: every entry
// reachable from a root (null parent) by following parent links, ordered by
// creation time ascending.
func (r *Repository) GetHistoryTree(projectID string) ([]models.RewriteHistoryEntry, error) {
	return r.queryRewrites(`
		WITH RECURSIVE history_tree AS (
			SELECT * FROM rewrite_history WHERE project_id = ? AND parent_rewrite_id IS NULL
			UNION ALL
			SELECT rh.* FROM rewrite_history rh
			INNER JOIN history_tree ht ON rh.parent_rewrite_id = ht.id
		)
		SELECT `+rewriteColumns+` FROM history_tree ORDER BY created_at
	`, projectID)
}

// GetLatestRewrite returns the most recently created entry for the
// project, regardless of tree position.
func (r *Repository) GetLatestRewrite(projectID string) (*models.RewriteHistoryEntry, error) {
	row, err := scanRewrite(r.db.QueryRow(`
		SELECT `+rewriteColumns+` FROM rewrite_history
		WHERE project_id = ? ORDER BY created_at DESC LIMIT 1
	`, projectID).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get latest rewrite for project %s: %w", projectID, err)
	}
	entry, err := row.toModel()
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *Repository) queryRewrites(query string, args ...any) ([]models.RewriteHistoryEntry, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query rewrites: %w", err)
	}
	defer rows.Close()

	entries := make([]models.RewriteHistoryEntry, 0)
	for rows.Next() {
		row, err := scanRewrite(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("query rewrites: %w", err)
		}
		entry, err := row.toModel()
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// DeleteRewrite removes the entry and, through the self-referential
// cascade, its entire subtree.
func (r *Repository) DeleteRewrite(id string) error {
	res, err := r.db.Exec(`DELETE FROM rewrite_history WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete rewrite %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete rewrite %s: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("delete rewrite %s: %w", id, ErrNotFound)
	}
	return nil
}
