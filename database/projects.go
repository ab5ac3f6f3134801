package database

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"nodio/models"
)

// ==================== PROJECTS ====================

const projectColumns = "id, title, audio_uri, transcript, folder_id, thumbnail_url, date, created_at, updated_at"

func scanProject(scan func(...any) error) (projectRow, error) {
	var r projectRow
	err := scan(&r.ID, &r.Title, &r.AudioURI, &r.Transcript, &r.FolderID,
		&r.ThumbnailURL, &r.Date, &r.CreatedAt, &r.UpdatedAt)
	return r, err
}

func (r *Repository) GetProjects() ([]models.Project, error) {
	return r.queryProjects(`SELECT `+projectColumns+` FROM projects ORDER BY updated_at DESC`)
}

func (r *Repository) GetProjectByID(id string) (*models.Project, error) {
	row, err := scanProject(r.db.QueryRow(
		`SELECT `+projectColumns+` FROM projects WHERE id = ?`, id,
	).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get project %s: %w", id, err)
	}

	project, err := r.hydrateProject(row)
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// GetProjectsByFolder returns the projects filed under folderID; a nil
// folderID selects unfiled projects.
func (r *Repository) GetProjectsByFolder(folderID *string) ([]models.Project, error) {
	if folderID == nil {
		return r.queryProjects(`SELECT ` + projectColumns + ` FROM projects WHERE folder_id IS NULL ORDER BY updated_at DESC`)
	}
	return r.queryProjects(
		`SELECT `+projectColumns+` FROM projects WHERE folder_id = ? ORDER BY updated_at DESC`,
		*folderID,
	)
}

func (r *Repository) GetProjectsByTag(tagID string) ([]models.Project, error) {
	return r.queryProjects(`
		SELECT p.id, p.title, p.audio_uri, p.transcript, p.folder_id, p.thumbnail_url, p.date, p.created_at, p.updated_at
		FROM projects p
		INNER JOIN project_tags pt ON p.id = pt.project_id
		WHERE pt.tag_id = ?
		ORDER BY p.updated_at DESC
	`, tagID)
}

// SearchProjects matches query case-insensitively against title and transcript.
func (r *Repository) SearchProjects(query string) ([]models.Project, error) {
	term := "%" + strings.ToLower(query) + "%"
	return r.queryProjects(`
		SELECT `+projectColumns+` FROM projects
		WHERE LOWER(title) LIKE ? OR LOWER(transcript) LIKE ?
		ORDER BY updated_at DESC
	`, term, term)
}

func (r *Repository) queryProjects(query string, args ...any) ([]models.Project, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query projects: %w", err)
	}

	var projectRows []projectRow
	for rows.Next() {
		row, err := scanProject(rows.Scan)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("query projects: %w", err)
		}
		projectRows = append(projectRows, row)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("query projects: %w", err)
	}
	rows.Close()

	projects := make([]models.Project, 0, len(projectRows))
	for _, row := range projectRows {
		project, err := r.hydrateProject(row)
		if err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}
	return projects, nil
}

func (r *Repository) hydrateProject(row projectRow) (models.Project, error) {
	tags, err := r.getProjectTagIDs(row.ID)
	if err != nil {
		return models.Project{}, err
	}
	videos, err := r.GetVideosByProject(row.ID)
	if err != nil {
		return models.Project{}, err
	}
	return row.toModel(tags, videos), nil
}

func (r *Repository) getProjectTagIDs(projectID string) ([]string, error) {
	rows, err := r.db.Query(`SELECT tag_id FROM project_tags WHERE project_id = ?`, projectID)
	if err != nil {
		return nil, fmt.Errorf("get tags for project %s: %w", projectID, err)
	}
	defer rows.Close()

	tagIDs := make([]string, 0)
	for rows.Next() {
		var tagID string
		if err := rows.Scan(&tagID); err != nil {
			return nil, fmt.Errorf("get tags for project %s: %w", projectID, err)
		}
		tagIDs = append(tagIDs, tagID)
	}
	return tagIDs, rows.Err()
}

// CreateProject writes the full aggregate in one transaction: the project
// row, then every video with its scenes and scene images in sequence order,
// then the tag junction rows. If any insert fails, none of the rows exist.
func (r *Repository) CreateProject(project *models.Project) error {
	return r.db.WithTx(func(tx *sql.Tx) error {
		row := projectToRow(*project)
		if _, err := tx.Exec(`
			INSERT INTO projects (id, title, audio_uri, transcript, folder_id, thumbnail_url, date, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, row.ID, row.Title, row.AudioURI, row.Transcript, row.FolderID,
			row.ThumbnailURL, row.Date, row.CreatedAt, row.UpdatedAt,
		); err != nil {
			return fmt.Errorf("create project %s: %w", project.ID, err)
		}

		for _, video := range project.Videos {
			if err := insertVideoTx(tx, video); err != nil {
				return err
			}
		}

		for _, tagID := range project.Tags {
			if _, err := tx.Exec(
				`INSERT OR IGNORE INTO project_tags (project_id, tag_id) VALUES (?, ?)`,
				project.ID, tagID,
			); err != nil {
				return fmt.Errorf("tag project %s with %s: %w", project.ID, tagID, err)
			}
		}
		return nil
	})
}

// UpdateProject patches the supplied fields over the current row and
// refreshes updated_at; fields not present in the update are untouched.
func (r *Repository) UpdateProject(id string, update models.ProjectUpdate) error {
	current, err := r.GetProjectByID(id)
	if err != nil {
		return err
	}
	if current == nil {
		return fmt.Errorf("update project %s: %w", id, ErrNotFound)
	}

	if update.Title != nil {
		current.Title = *update.Title
	}
	if update.Transcript != nil {
		current.Transcript = *update.Transcript
	}
	if update.FolderID != nil {
		current.FolderID = update.FolderID
	}
	if update.ThumbnailURL != nil {
		current.ThumbnailURL = *update.ThumbnailURL
	}
	current.UpdatedAt = time.Now()

	row := projectToRow(*current)
	_, err = r.db.Exec(`
		UPDATE projects SET title = ?, transcript = ?, folder_id = ?, thumbnail_url = ?, updated_at = ?
		WHERE id = ?
	`, row.Title, row.Transcript, row.FolderID, row.ThumbnailURL, row.UpdatedAt, id)
	if err != nil {
		return fmt.Errorf("update project %s: %w", id, err)
	}
	return nil
}

func (r *Repository) UpdateProjectTranscript(id, transcript string) error {
	return r.touchProjectColumn(id, "transcript", transcript)
}

func (r *Repository) UpdateProjectTitle(id, title string) error {
	return r.touchProjectColumn(id, "title", strings.TrimSpace(title))
}

func (r *Repository) touchProjectColumn(id, column, value string) error {
	res, err := r.db.Exec(
		`UPDATE projects SET `+column+` = ?, updated_at = ? WHERE id = ?`,
		value, nowMillis(), id,
	)
	if err != nil {
		return fmt.Errorf("update project %s %s: %w", id, column, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update project %s %s: %w", id, column, err)
	}
	if affected == 0 {
		return fmt.Errorf("update project %s: %w", id, ErrNotFound)
	}
	return nil
}

// MoveProjectToFolder files the project under folderID; nil moves it to
// unfiled.
func (r *Repository) MoveProjectToFolder(id string, folderID *string) error {
	res, err := r.db.Exec(
		`UPDATE projects SET folder_id = ?, updated_at = ? WHERE id = ?`,
		nullFromPtr(folderID), nowMillis(), id,
	)
	if err != nil {
		return fmt.Errorf("move project %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("move project %s: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("move project %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *Repository) AddProjectTags(id string, tagIDs []string) error {
	return r.db.WithTx(func(tx *sql.Tx) error {
		for _, tagID := range tagIDs {
			if _, err := tx.Exec(
				`INSERT OR IGNORE INTO project_tags (project_id, tag_id) VALUES (?, ?)`,
				id, tagID,
			); err != nil {
				return fmt.Errorf("tag project %s with %s: %w", id, tagID, err)
			}
		}
		return nil
	})
}

func (r *Repository) RemoveProjectTag(id, tagID string) error {
	if _, err := r.db.Exec(
		`DELETE FROM project_tags WHERE project_id = ? AND tag_id = ?`, id, tagID,
	); err != nil {
		return fmt.Errorf("untag project %s: %w", id, err)
	}
	return nil
}

// DeleteProject removes the project; foreign-key cascades delete every
// owned video, scene, scene image, junction row, and derived-content row.
func (r *Repository) DeleteProject(id string) error {
	res, err := r.db.Exec(`DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete project %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete project %s: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("delete project %s: %w", id, ErrNotFound)
	}
	return nil
}
