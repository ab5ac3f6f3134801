package database

import (
	"database/sql"
	"errors"
	"fmt"

	"nodio/models"
)

// ==================== TRANSLATIONS ====================
//
// Many translations per project; (project, target_language) keys the
// "latest" lookup but is not unique, so the full translation history is
// retained.

const translationColumns = "id, project_id, source_text, translated_text, target_language, created_at, updated_at"

func scanTranslation(scan func(...any) error) (translationRow, error) {
	var r translationRow
	err := scan(&r.ID, &r.ProjectID, &r.SourceText, &r.TranslatedText,
		&r.TargetLanguage, &r.CreatedAt, &r.UpdatedAt)
	return r, err
}

func (r *Repository) CreateTranslation(t *models.Translation) error {
	_, err := r.db.Exec(`
		INSERT INTO translations (id, project_id, source_text, translated_text, target_language, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, t.ID, t.ProjectID, t.SourceText, t.TranslatedText, t.TargetLanguage,
		millis(t.CreatedAt), millis(t.UpdatedAt))
	if err != nil {
		return fmt.Errorf("create translation %s: %w", t.ID, err)
	}
	return nil
}

func (r *Repository) GetTranslationByID(id string) (*models.Translation, error) {
	row, err := scanTranslation(r.db.QueryRow(
		`SELECT `+translationColumns+` FROM translations WHERE id = ?`, id,
	).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get translation %s: %w", id, err)
	}
	t := row.toModel()
	return &t, nil
}

func (r *Repository) GetTranslationsByProject(projectID string) ([]models.Translation, error) {
	rows, err := r.db.Query(
		`SELECT `+translationColumns+` FROM translations WHERE project_id = ? ORDER BY updated_at DESC`,
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("get translations for project %s: %w", projectID, err)
	}
	defer rows.Close()

	translations := make([]models.Translation, 0)
	for rows.Next() {
		row, err := scanTranslation(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("get translations for project %s: %w", projectID, err)
		}
		translations = append(translations, row.toModel())
	}
	return translations, rows.Err()
}

// GetTranslationByProjectAndLanguage returns the latest translation of the
// project into targetLanguage.
func (r *Repository) GetTranslationByProjectAndLanguage(projectID, targetLanguage string) (*models.Translation, error) {
	row, err := scanTranslation(r.db.QueryRow(`
		SELECT `+translationColumns+` FROM translations
		WHERE project_id = ? AND target_language = ?
		ORDER BY updated_at DESC LIMIT 1
	`, projectID, targetLanguage).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get %s translation for project %s: %w", targetLanguage, projectID, err)
	}
	t := row.toModel()
	return &t, nil
}

func (r *Repository) UpdateTranslation(id, translatedText string) error {
	res, err := r.db.Exec(
		`UPDATE translations SET translated_text = ?, updated_at = ? WHERE id = ?`,
		translatedText, nowMillis(), id,
	)
	if err != nil {
		return fmt.Errorf("update translation %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update translation %s: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("update translation %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *Repository) DeleteTranslation(id string) error {
	res, err := r.db.Exec(`DELETE FROM translations WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete translation %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete translation %s: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("delete translation %s: %w", id, ErrNotFound)
	}
	return nil
}
