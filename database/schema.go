package database

import (
	"database/sql"
	"fmt"

	"nodio/models"
)

// SchemaVersion is the schema version this build of the engine targets.
// Stores recorded at a lower version are migrated on open; a higher
// recorded version is a fatal configuration error.
const SchemaVersion = 2

const schemaVersionKey = "schema_version"

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS folders (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		parent_id TEXT REFERENCES folders(id) ON DELETE CASCADE,
		color TEXT,
		icon TEXT,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_folders_parent ON folders(parent_id)`,

	`CREATE TABLE IF NOT EXISTS tags (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE COLLATE NOCASE,
		color TEXT NOT NULL,
		created_at INTEGER NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS projects (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		audio_uri TEXT NOT NULL,
		transcript TEXT NOT NULL DEFAULT '',
		folder_id TEXT REFERENCES folders(id) ON DELETE SET NULL,
		thumbnail_url TEXT,
		date INTEGER NOT NULL,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_projects_folder ON projects(folder_id)`,
	`CREATE INDEX IF NOT EXISTS idx_projects_updated ON projects(updated_at DESC)`,

	`CREATE TABLE IF NOT EXISTS project_tags (
		project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		tag_id TEXT NOT NULL REFERENCES tags(id) ON DELETE CASCADE,
		PRIMARY KEY (project_id, tag_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_project_tags_tag ON project_tags(tag_id)`,

	`CREATE TABLE IF NOT EXISTS videos (
		id TEXT PRIMARY KEY,
		project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		title TEXT,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_videos_project ON videos(project_id)`,

	`CREATE TABLE IF NOT EXISTS scenes (
		id TEXT PRIMARY KEY,
		video_id TEXT NOT NULL REFERENCES videos(id) ON DELETE CASCADE,
		description TEXT NOT NULL,
		duration INTEGER NOT NULL DEFAULT 3000,
		sequence_order INTEGER NOT NULL,
		created_at INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_scenes_video ON scenes(video_id)`,
	`CREATE INDEX IF NOT EXISTS idx_scenes_sequence ON scenes(video_id, sequence_order)`,

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

	`CREATE TABLE IF NOT EXISTS project_summaries (
		id TEXT PRIMARY KEY,
		project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		summary_text TEXT NOT NULL,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL,
		UNIQUE(project_id)
	)`,

	`CREATE TABLE IF NOT EXISTS audio_bullet_points (
		id TEXT PRIMARY KEY,
		project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		bullet_points_text TEXT NOT NULL,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL,
		UNIQUE(project_id)
	)`,

	`CREATE TABLE IF NOT EXISTS mind_maps (
		id TEXT PRIMARY KEY,
		project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		mind_map_data TEXT NOT NULL,
		image_uri TEXT,
		format TEXT NOT NULL DEFAULT 'text',
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL,
		UNIQUE(project_id)
	)`,

	`CREATE TABLE IF NOT EXISTS journal_entries (
		id TEXT PRIMARY KEY,
		project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		entry_text TEXT NOT NULL,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL,
		UNIQUE(project_id)
	)`,

	`CREATE TABLE IF NOT EXISTS translations (
		id TEXT PRIMARY KEY,
		project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		source_text TEXT NOT NULL,
		translated_text TEXT NOT NULL,
		target_language TEXT NOT NULL,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_translations_project ON translations(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_translations_language ON translations(target_language)`,

	// parent_rewrite_id cascades: deleting an entry removes its subtree, so
	// no dangling parent references can exist.
	`CREATE TABLE IF NOT EXISTS rewrite_history (
		id TEXT PRIMARY KEY,
		project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		transcript_text TEXT NOT NULL,
		rewrite_type TEXT NOT NULL,
		target_language TEXT,
		parent_rewrite_id TEXT REFERENCES rewrite_history(id) ON DELETE CASCADE,
		created_at INTEGER NOT NULL,
		metadata TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_rewrite_project ON rewrite_history(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_rewrite_created ON rewrite_history(created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_rewrite_parent ON rewrite_history(parent_rewrite_id)`,

	`CREATE TABLE IF NOT EXISTS create_content (
		id TEXT PRIMARY KEY,
		project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		content_type TEXT NOT NULL,
		content_data TEXT NOT NULL,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_create_content_project ON create_content(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_create_content_type ON create_content(content_type)`,

	`CREATE TABLE IF NOT EXISTS database_metadata (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`,
}

// createSchema creates every table and the seed data in one transaction, so
// a half-created store can never be observed across restarts.
func (db *DB) createSchema() error {
	return db.WithTx(func(tx *sql.Tx) error {
		for _, stmt := range schemaStatements {
			if _, err := tx.Exec(stmt); err != nil {
				return fmt.Errorf("create schema: %w", err)
			}
		}

		// Seed the sentinel root folder
		now := nowMillis()
		if _, err := tx.Exec(`
			INSERT OR IGNORE INTO folders (id, name, parent_id, created_at, updated_at)
			VALUES (?, 'All Projects', NULL, ?, ?)
		`, models.RootFolderID, now, now); err != nil {
			return fmt.Errorf("seed root folder: %w", err)
		}

		if _, err := tx.Exec(`
			INSERT INTO database_metadata (key, value) VALUES (?, ?)
		`, schemaVersionKey, fmt.Sprint(SchemaVersion)); err != nil {
			return fmt.Errorf("record schema version: %w", err)
		}
		return nil
	})
}
