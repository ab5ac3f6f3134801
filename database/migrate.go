package database

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
)

// Initialize brings the on-disk layout to the current schema version:
// create-and-seed on first open, ordered migrations for a stale store.
// Idempotent; safe to call on every open.
func (db *DB) Initialize() error {
	version, initialized, err := db.recordedSchemaVersion()
	if err != nil {
		return err
	}

	if !initialized {
		return db.createSchema()
	}

	if version > SchemaVersion {
		return fmt.Errorf("database schema version %d is newer than supported version %d", version, SchemaVersion)
	}

	for v := version; v < SchemaVersion; v++ {
		if err := db.migrate(v, v+1); err != nil {
			return err
		}
	}
	return nil
}

// recordedSchemaVersion reads the stored version. The second return is
// false when the store has never been initialized.
func (db *DB) recordedSchemaVersion() (int, bool, error) {
	var name string
	err := db.QueryRow(
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'database_metadata'`,
	).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("check metadata table: %w", err)
	}

	var value string
	err = db.QueryRow(
		`SELECT value FROM database_metadata WHERE key = ?`, schemaVersionKey,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("read schema version: %w", err)
	}

	version, err := strconv.Atoi(value)
	if err != nil {
		return 0, false, fmt.Errorf("parse schema version %q: %w", value, err)
	}
	return version, true, nil
}

// migrate runs one version step atomically: either the whole step commits
// and the recorded version advances, or nothing changed on disk.
//
// The foreign_keys pragma is a no-op inside an open transaction, so it is
// toggled off around the step; the tables a step rewrites are recreated
// with equivalent constraints.
func (db *DB) migrate(from, to int) error {
	var step func(tx *sql.Tx) error
	switch {
	case from == 1 && to == 2:
		step = migrateV1ToV2
	default:
		return fmt.Errorf("no migration path from schema version %d to %d", from, to)
	}

	if _, err := db.Exec("PRAGMA foreign_keys=OFF"); err != nil {
		return fmt.Errorf("disable foreign keys for migration: %w", err)
	}

	err := db.WithTx(func(tx *sql.Tx) error {
		if err := step(tx); err != nil {
			return fmt.Errorf("migrate v%d to v%d: %w", from, to, err)
		}
		if _, err := tx.Exec(
			`UPDATE database_metadata SET value = ? WHERE key = ?`,
			strconv.Itoa(to), schemaVersionKey,
		); err != nil {
			return fmt.Errorf("advance schema version to %d: %w", to, err)
		}
		return nil
	})

	if _, fkErr := db.Exec("PRAGMA foreign_keys=ON"); fkErr != nil && err == nil {
		err = fmt.Errorf("re-enable foreign keys after migration: %w", fkErr)
	}
	return err
}

// migrateV1ToV2 restructures scene ownership. In v1 a scene belonged
// directly to a project and carried a single inline image prompt/url. v2
// introduces videos between projects and scenes, and splits images into
// their own table. For every project this synthesizes one "Main Video",
// re-parents the project's scenes onto it preserving sequence order, and
// creates one scene_images row at position 0 from the legacy image fields.
// SQLite cannot retype a column in place, so the scenes table is rebuilt
// copy-then-swap.
func migrateV1ToV2(tx *sql.Tx) error {
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS videos (
			id TEXT PRIMARY KEY,
			project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
			title TEXT,
			created_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_videos_project ON videos(project_id)`,
		`CREATE TABLE IF NOT EXISTS scene_images (
			id TEXT PRIMARY KEY,
			scene_id TEXT NOT NULL REFERENCES scenes(id) ON DELETE CASCADE,
			image_prompt TEXT NOT NULL,
			image_url TEXT,
			sequence_order INTEGER NOT NULL,
			created_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_scene_images_scene ON scene_images(scene_id)`,
		`CREATE INDEX IF NOT EXISTS idx_scene_images_sequence ON scene_images(scene_id, sequence_order)`,
		`CREATE TABLE scenes_new (
			id TEXT PRIMARY KEY,
			video_id TEXT NOT NULL REFERENCES videos(id) ON DELETE CASCADE,
			description TEXT NOT NULL,
			duration INTEGER NOT NULL DEFAULT 3000,
			sequence_order INTEGER NOT NULL,
			created_at INTEGER NOT NULL
		)`,
		`CREATE INDEX idx_scenes_video ON scenes_new(video_id)`,
		`CREATE INDEX idx_scenes_sequence ON scenes_new(video_id, sequence_order)`,
	}
	for _, stmt := range ddl {
		if _, err := tx.Exec(stmt); err != nil {
			return err
		}
	}

	projectIDs, err := collectIDs(tx, `SELECT id FROM projects`)
	if err != nil {
		return fmt.Errorf("list projects: %w", err)
	}

	for _, projectID := range projectIDs {
		videoID := "video-" + projectID
		now := nowMillis()

		if _, err := tx.Exec(
			`INSERT INTO videos (id, project_id, title, created_at, updated_at)
			 VALUES (?, ?, 'Main Video', ?, ?)`,
			videoID, projectID, now, now,
		); err != nil {
			return fmt.Errorf("create default video for project %s: %w", projectID, err)
		}

		scenes, err := collectLegacyScenes(tx, projectID)
		if err != nil {
			return fmt.Errorf("read legacy scenes for project %s: %w", projectID, err)
		}

		for _, scene := range scenes {
			if _, err := tx.Exec(
				`INSERT INTO scenes_new (id, video_id, description, duration, sequence_order, created_at)
				 VALUES (?, ?, ?, ?, ?, ?)`,
				scene.ID, videoID, scene.Description, scene.Duration, scene.SequenceOrder, scene.CreatedAt,
			); err != nil {
				return fmt.Errorf("re-parent scene %s: %w", scene.ID, err)
			}

			if _, err := tx.Exec(
				`INSERT INTO scene_images (id, scene_id, image_prompt, image_url, sequence_order, created_at)
				 VALUES (?, ?, ?, ?, 0, ?)`,
				"img-"+scene.ID+"-0", scene.ID, scene.ImagePrompt, scene.ImageURL, scene.CreatedAt,
			); err != nil {
				return fmt.Errorf("split image for scene %s: %w", scene.ID, err)
			}
		}
	}

	for _, stmt := range []string{
		`DROP TABLE scenes`,
		`ALTER TABLE scenes_new RENAME TO scenes`,
	} {
		if _, err := tx.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

type legacyScene struct {
	ID            string
	Description   string
	ImagePrompt   string
	ImageURL      sql.NullString
	Duration      int
	SequenceOrder int
	CreatedAt     int64
}

// collectLegacyScenes materializes a project's v1 scenes before any writes;
// a single connection cannot interleave an open cursor with inserts.
func collectLegacyScenes(tx *sql.Tx, projectID string) ([]legacyScene, error) {
	rows, err := tx.Query(
		`SELECT id, description, image_prompt, image_url, duration, sequence_order, created_at
		 FROM scenes WHERE project_id = ? ORDER BY sequence_order`,
		projectID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scenes []legacyScene
	for rows.Next() {
		var s legacyScene
		if err := rows.Scan(&s.ID, &s.Description, &s.ImagePrompt, &s.ImageURL,
			&s.Duration, &s.SequenceOrder, &s.CreatedAt); err != nil {
			return nil, err
		}
		scenes = append(scenes, s)
	}
	return scenes, rows.Err()
}

func collectIDs(tx *sql.Tx, query string, args ...any) ([]string, error) {
	rows, err := tx.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
