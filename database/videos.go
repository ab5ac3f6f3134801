package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"nodio/models"
)

// ==================== VIDEOS ====================

func scanVideo(scan func(...any) error) (videoRow, error) {
	var r videoRow
	err := scan(&r.ID, &r.ProjectID, &r.Title, &r.CreatedAt, &r.UpdatedAt)
	return r, err
}

func (r *Repository) GetVideosByProject(projectID string) ([]models.Video, error) {
	rows, err := r.db.Query(`
		SELECT id, project_id, title, created_at, updated_at
		FROM videos WHERE project_id = ? ORDER BY created_at DESC
	`, projectID)
	if err != nil {
		return nil, fmt.Errorf("get videos for project %s: %w", projectID, err)
	}

	var videoRows []videoRow
	for rows.Next() {
		row, err := scanVideo(rows.Scan)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("get videos for project %s: %w", projectID, err)
		}
		videoRows = append(videoRows, row)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("get videos for project %s: %w", projectID, err)
	}
	rows.Close()

	videos := make([]models.Video, 0, len(videoRows))
	for _, row := range videoRows {
		scenes, err := r.GetScenesByVideo(row.ID)
		if err != nil {
			return nil, err
		}
		videos = append(videos, row.toModel(scenes))
	}
	return videos, nil
}

func (r *Repository) GetVideoByID(id string) (*models.Video, error) {
	row, err := scanVideo(r.db.QueryRow(`
		SELECT id, project_id, title, created_at, updated_at FROM videos WHERE id = ?
	`, id).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get video %s: %w", id, err)
	}

	scenes, err := r.GetScenesByVideo(id)
	if err != nil {
		return nil, err
	}
	video := row.toModel(scenes)
	return &video, nil
}

// CreateVideo inserts the video and its scene tree in one transaction.
func (r *Repository) CreateVideo(video *models.Video) error {
	return r.db.WithTx(func(tx *sql.Tx) error {
		return insertVideoTx(tx, *video)
	})
}

func insertVideoTx(tx *sql.Tx, video models.Video) error {
	if _, err := tx.Exec(`
		INSERT INTO videos (id, project_id, title, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`, video.ID, video.ProjectID, nullFromString(video.Title),
		millis(video.CreatedAt), millis(video.UpdatedAt),
	); err != nil {
		return fmt.Errorf("create video %s: %w", video.ID, err)
	}

	for i, scene := range video.Scenes {
		if err := insertSceneTx(tx, scene, video.ID, i); err != nil {
			return err
		}
	}
	return nil
}

func (r *Repository) UpdateVideo(id string, title *string) error {
	current, err := r.GetVideoByID(id)
	if err != nil {
		return err
	}
	if current == nil {
		return fmt.Errorf("update video %s: %w", id, ErrNotFound)
	}

	if title != nil {
		current.Title = *title
	}
	current.UpdatedAt = time.Now()

	_, err = r.db.Exec(
		`UPDATE videos SET title = ?, updated_at = ? WHERE id = ?`,
		nullFromString(current.Title), millis(current.UpdatedAt), id,
	)
	if err != nil {
		return fmt.Errorf("update video %s: %w", id, err)
	}
	return nil
}

// ReplaceScenes swaps the video's entire scene collection: every existing
// scene row (and, through cascade, its images) is deleted and the supplied
// scenes are reinserted with sequence positions equal to slice position.
// Passing a reordered or filtered slice is how callers reorder or remove
// scenes.
func (r *Repository) ReplaceScenes(videoID string, scenes []models.Scene) error {
	return r.db.WithTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM scenes WHERE video_id = ?`, videoID); err != nil {
			return fmt.Errorf("replace scenes for video %s: %w", videoID, err)
		}
		for i, scene := range scenes {
			if err := insertSceneTx(tx, scene, videoID, i); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *Repository) DeleteVideo(id string) error {
	res, err := r.db.Exec(`DELETE FROM videos WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete video %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete video %s: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("delete video %s: %w", id, ErrNotFound)
	}
	return nil
}
