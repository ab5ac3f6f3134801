package database

import (
	"database/sql"
	"errors"
	"fmt"

	"nodio/models"
)

// ==================== CREATE CONTENT ====================

const contentColumns = "id, project_id, content_type, content_data, created_at, updated_at"

func scanContent(scan func(...any) error) (contentRow, error) {
	var r contentRow
	err := scan(&r.ID, &r.ProjectID, &r.ContentType, &r.ContentData, &r.CreatedAt, &r.UpdatedAt)
	return r, err
}

func (r *Repository) CreateContent(content *models.CreateContent) error {
	_, err := r.db.Exec(`
		INSERT INTO create_content (id, project_id, content_type, content_data, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, content.ID, content.ProjectID, string(content.ContentType), content.ContentData,
		millis(content.CreatedAt), millis(content.UpdatedAt))
	if err != nil {
		return fmt.Errorf("create content %s: %w", content.ID, err)
	}
	return nil
}

func (r *Repository) GetContentByID(id string) (*models.CreateContent, error) {
	row, err := scanContent(r.db.QueryRow(
		`SELECT `+contentColumns+` FROM create_content WHERE id = ?`, id,
	).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get content %s: %w", id, err)
	}
	content := row.toModel()
	return &content, nil
}

func (r *Repository) GetContentByProject(projectID string) ([]models.CreateContent, error) {
	rows, err := r.db.Query(
		`SELECT `+contentColumns+` FROM create_content WHERE project_id = ? ORDER BY created_at DESC`,
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("get content for project %s: %w", projectID, err)
	}
	defer rows.Close()

	contents := make([]models.CreateContent, 0)
	for rows.Next() {
		row, err := scanContent(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("get content for project %s: %w", projectID, err)
		}
		contents = append(contents, row.toModel())
	}
	return contents, rows.Err()
}

// GetContentByProjectAndType returns the latest content of the given kind.
func (r *Repository) GetContentByProjectAndType(projectID string, contentType models.ContentType) (*models.CreateContent, error) {
	row, err := scanContent(r.db.QueryRow(`
		SELECT `+contentColumns+` FROM create_content
		WHERE project_id = ? AND content_type = ?
		ORDER BY created_at DESC LIMIT 1
	`, projectID, string(contentType)).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get %s content for project %s: %w", contentType, projectID, err)
	}
	content := row.toModel()
	return &content, nil
}

func (r *Repository) UpdateContent(id, contentData string) error {
	res, err := r.db.Exec(
		`UPDATE create_content SET content_data = ?, updated_at = ? WHERE id = ?`,
		contentData, nowMillis(), id,
	)
	if err != nil {
		return fmt.Errorf("update content %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update content %s: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("update content %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *Repository) DeleteContent(id string) error {
	res, err := r.db.Exec(`DELETE FROM create_content WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete content %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete content %s: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("delete content %s: %w", id, ErrNotFound)
	}
	return nil
}
