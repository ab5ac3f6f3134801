package database

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"nodio/models"
)

// ==================== TAGS ====================

func scanTag(scan func(...any) error) (tagRow, error) {
	var r tagRow
	err := scan(&r.ID, &r.Name, &r.Color, &r.CreatedAt)
	return r, err
}

func (r *Repository) GetTags() ([]models.Tag, error) {
	rows, err := r.db.Query(`SELECT id, name, color, created_at FROM tags ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("get tags: %w", err)
	}
	defer rows.Close()

	tags := make([]models.Tag, 0)
	for rows.Next() {
		row, err := scanTag(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("get tags: %w", err)
		}
		tags = append(tags, row.toModel())
	}
	return tags, rows.Err()
}

func (r *Repository) GetTagByID(id string) (*models.Tag, error) {
	row, err := scanTag(r.db.QueryRow(
		`SELECT id, name, color, created_at FROM tags WHERE id = ?`, id,
	).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get tag %s: %w", id, err)
	}
	tag := row.toModel()
	return &tag, nil
}

// GetTagByName matches case-insensitively; "Work" and "work" are the same tag.
func (r *Repository) GetTagByName(name string) (*models.Tag, error) {
	row, err := scanTag(r.db.QueryRow(
		`SELECT id, name, color, created_at FROM tags WHERE name = ? COLLATE NOCASE`,
		strings.TrimSpace(name),
	).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get tag %q: %w", name, err)
	}
	tag := row.toModel()
	return &tag, nil
}

func (r *Repository) CreateTag(tag *models.Tag) error {
	_, err := r.db.Exec(`
		INSERT INTO tags (id, name, color, created_at)
		VALUES (?, ?, ?, ?)
	`, tag.ID, tag.Name, tag.Color, millis(tag.CreatedAt))
	if err != nil {
		return fmt.Errorf("create tag %q: %w", tag.Name, err)
	}
	return nil
}

// GetOrCreateTag returns the existing tag under case-insensitive name
// matching, creating it with the supplied fields otherwise.
func (r *Repository) GetOrCreateTag(tag *models.Tag) (*models.Tag, error) {
	existing, err := r.GetTagByName(tag.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}
	if err := r.CreateTag(tag); err != nil {
		return nil, err
	}
	return tag, nil
}

func (r *Repository) UpdateTag(id string, update models.TagUpdate) error {
	current, err := r.GetTagByID(id)
	if err != nil {
		return err
	}
	if current == nil {
		return fmt.Errorf("update tag %s: %w", id, ErrNotFound)
	}

	if update.Name != nil {
		current.Name = *update.Name
	}
	if update.Color != nil {
		current.Color = *update.Color
	}

	_, err = r.db.Exec(
		`UPDATE tags SET name = ?, color = ? WHERE id = ?`,
		current.Name, current.Color, id,
	)
	if err != nil {
		return fmt.Errorf("update tag %s: %w", id, err)
	}
	return nil
}

func (r *Repository) DeleteTag(id string) error {
	if _, err := r.db.Exec(`DELETE FROM tags WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete tag %s: %w", id, err)
	}
	return nil
}
