package database

import (
	"database/sql"
	"fmt"

	"nodio/models"
)

// ==================== SCENES & SCENE IMAGES ====================

func (r *Repository) GetScenesByVideo(videoID string) ([]models.Scene, error) {
	rows, err := r.db.Query(`
		SELECT id, video_id, description, duration, sequence_order, created_at
		FROM scenes WHERE video_id = ? ORDER BY sequence_order
	`, videoID)
	if err != nil {
		return nil, fmt.Errorf("get scenes for video %s: %w", videoID, err)
	}

	var sceneRows []sceneRow
	for rows.Next() {
		var row sceneRow
		if err := rows.Scan(&row.ID, &row.VideoID, &row.Description,
			&row.Duration, &row.SequenceOrder, &row.CreatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("get scenes for video %s: %w", videoID, err)
		}
		sceneRows = append(sceneRows, row)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("get scenes for video %s: %w", videoID, err)
	}
	rows.Close()

	if len(sceneRows) == 0 {
		return []models.Scene{}, nil
	}

	sceneIDs := make([]string, len(sceneRows))
	for i, row := range sceneRows {
		sceneIDs[i] = row.ID
	}
	imagesByScene, err := r.getImagesForScenes(sceneIDs)
	if err != nil {
		return nil, err
	}

	scenes := make([]models.Scene, 0, len(sceneRows))
	for _, row := range sceneRows {
		scenes = append(scenes, row.toModel(imagesByScene[row.ID]))
	}
	return scenes, nil
}

// getImagesForScenes loads every image for the given scenes in one query.
func (r *Repository) getImagesForScenes(sceneIDs []string) (map[string][]models.SceneImage, error) {
	args := make([]any, len(sceneIDs))
	for i, id := range sceneIDs {
		args[i] = id
	}

	rows, err := r.db.Query(`
		SELECT id, scene_id, image_prompt, image_url, sequence_order, created_at
		FROM scene_images WHERE scene_id IN (`+placeholders(len(sceneIDs))+`)
		ORDER BY scene_id, sequence_order
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("get scene images: %w", err)
	}
	defer rows.Close()

	images := make(map[string][]models.SceneImage)
	for rows.Next() {
		var row sceneImageRow
		if err := rows.Scan(&row.ID, &row.SceneID, &row.ImagePrompt,
			&row.ImageURL, &row.SequenceOrder, &row.CreatedAt); err != nil {
			return nil, fmt.Errorf("get scene images: %w", err)
		}
		images[row.SceneID] = append(images[row.SceneID], row.toModel())
	}
	return images, rows.Err()
}

func insertSceneTx(tx *sql.Tx, scene models.Scene, videoID string, sequenceOrder int) error {
	duration := scene.Duration
	if duration == 0 {
		duration = models.DefaultSceneDuration
	}

	if _, err := tx.Exec(`
		INSERT INTO scenes (id, video_id, description, duration, sequence_order, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, scene.ID, videoID, scene.Description, duration, sequenceOrder, nowMillis()); err != nil {
		return fmt.Errorf("create scene %s: %w", scene.ID, err)
	}

	for i, image := range scene.Images {
		if err := insertSceneImageTx(tx, image, scene.ID, i); err != nil {
			return err
		}
	}
	return nil
}

func insertSceneImageTx(tx *sql.Tx, image models.SceneImage, sceneID string, sequenceOrder int) error {
	if _, err := tx.Exec(`
		INSERT INTO scene_images (id, scene_id, image_prompt, image_url, sequence_order, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, image.ID, sceneID, image.ImagePrompt, nullFromString(image.ImageURL),
		sequenceOrder, nowMillis(),
	); err != nil {
		return fmt.Errorf("create scene image %s: %w", image.ID, err)
	}
	return nil
}

// UpdateScene patches description/duration in place. When Images is
// non-nil the scene's whole image collection is replaced, with sequence
// positions taken from slice order, inside the same transaction.
func (r *Repository) UpdateScene(id string, update models.SceneUpdate) error {
	return r.db.WithTx(func(tx *sql.Tx) error {
		var exists int
		err := tx.QueryRow(`SELECT 1 FROM scenes WHERE id = ?`, id).Scan(&exists)
		if err == sql.ErrNoRows {
			return fmt.Errorf("update scene %s: %w", id, ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("update scene %s: %w", id, err)
		}

		if update.Description != nil {
			if _, err := tx.Exec(
				`UPDATE scenes SET description = ? WHERE id = ?`, *update.Description, id,
			); err != nil {
				return fmt.Errorf("update scene %s: %w", id, err)
			}
		}
		if update.Duration != nil {
			if _, err := tx.Exec(
				`UPDATE scenes SET duration = ? WHERE id = ?`, *update.Duration, id,
			); err != nil {
				return fmt.Errorf("update scene %s: %w", id, err)
			}
		}

		if update.Images != nil {
			if _, err := tx.Exec(`DELETE FROM scene_images WHERE scene_id = ?`, id); err != nil {
				return fmt.Errorf("replace images for scene %s: %w", id, err)
			}
			for i, image := range update.Images {
				if err := insertSceneImageTx(tx, image, id, i); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func (r *Repository) DeleteScene(id string) error {
	res, err := r.db.Exec(`DELETE FROM scenes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete scene %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete scene %s: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("delete scene %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *Repository) GetSceneImages(sceneID string) ([]models.SceneImage, error) {
	images, err := r.getImagesForScenes([]string{sceneID})
	if err != nil {
		return nil, err
	}
	result := images[sceneID]
	if result == nil {
		result = []models.SceneImage{}
	}
	return result, nil
}

func (r *Repository) UpdateSceneImage(id string, update models.SceneImageUpdate) error {
	var row sceneImageRow
	err := r.db.QueryRow(`
		SELECT id, scene_id, image_prompt, image_url, sequence_order, created_at
		FROM scene_images WHERE id = ?
	`, id).Scan(&row.ID, &row.SceneID, &row.ImagePrompt, &row.ImageURL,
		&row.SequenceOrder, &row.CreatedAt)
	if err == sql.ErrNoRows {
		return fmt.Errorf("update scene image %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update scene image %s: %w", id, err)
	}

	current := row.toModel()
	if update.ImagePrompt != nil {
		current.ImagePrompt = *update.ImagePrompt
	}
	if update.ImageURL != nil {
		current.ImageURL = *update.ImageURL
	}
	if update.SequenceOrder != nil {
		current.SequenceOrder = *update.SequenceOrder
	}

	_, err = r.db.Exec(`
		UPDATE scene_images SET image_prompt = ?, image_url = ?, sequence_order = ? WHERE id = ?
	`, current.ImagePrompt, nullFromString(current.ImageURL), current.SequenceOrder, id)
	if err != nil {
		return fmt.Errorf("update scene image %s: %w", id, err)
	}
	return nil
}

func (r *Repository) DeleteSceneImage(id string) error {
	res, err := r.db.Exec(`DELETE FROM scene_images WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete scene image %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete scene image %s: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("delete scene image %s: %w", id, ErrNotFound)
	}
	return nil
}
