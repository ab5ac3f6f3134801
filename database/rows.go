package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"nodio/models"
)

// Row structs mirror the persisted column sets exactly; the conversion
// functions below are the only place a row shape and a domain value meet.
// Timestamps are stored as epoch milliseconds.

func nowMillis() int64 {
	return time.Now().UnixMilli()
}

func millis(t time.Time) int64 {
	return t.UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms)
}

func nullFromPtr(p *string) sql.NullString {
	if p == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *p, Valid: true}
}

func ptrFromNull(n sql.NullString) *string {
	if !n.Valid {
		return nil
	}
	s := n.String
	return &s
}

// nullFromString maps the empty string to NULL, for optional text columns
// modeled as plain strings in the domain.
func nullFromString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

type folderRow struct {
	ID        string
	Name      string
	ParentID  sql.NullString
	Color     sql.NullString
	Icon      sql.NullString
	CreatedAt int64
	UpdatedAt int64
}

func (r folderRow) toModel() models.Folder {
	return models.Folder{
		ID:        r.ID,
		Name:      r.Name,
		ParentID:  ptrFromNull(r.ParentID),
		Color:     r.Color.String,
		Icon:      r.Icon.String,
		CreatedAt: fromMillis(r.CreatedAt),
		UpdatedAt: fromMillis(r.UpdatedAt),
	}
}

func folderToRow(f models.Folder) folderRow {
	return folderRow{
		ID:        f.ID,
		Name:      f.Name,
		ParentID:  nullFromPtr(f.ParentID),
		Color:     nullFromString(f.Color),
		Icon:      nullFromString(f.Icon),
		CreatedAt: millis(f.CreatedAt),
		UpdatedAt: millis(f.UpdatedAt),
	}
}

type tagRow struct {
	ID        string
	Name      string
	Color     string
	CreatedAt int64
}

func (r tagRow) toModel() models.Tag {
	return models.Tag{
		ID:        r.ID,
		Name:      r.Name,
		Color:     r.Color,
		CreatedAt: fromMillis(r.CreatedAt),
	}
}

type projectRow struct {
	ID           string
	Title        string
	AudioURI     string
	Transcript   string
	FolderID     sql.NullString
	ThumbnailURL sql.NullString
	Date         int64
	CreatedAt    int64
	UpdatedAt    int64
}

func (r projectRow) toModel(tags []string, videos []models.Video) models.Project {
	return models.Project{
		ID:           r.ID,
		Title:        r.Title,
		AudioURI:     r.AudioURI,
		Transcript:   r.Transcript,
		FolderID:     ptrFromNull(r.FolderID),
		ThumbnailURL: r.ThumbnailURL.String,
		Date:         fromMillis(r.Date),
		Tags:         tags,
		Videos:       videos,
		CreatedAt:    fromMillis(r.CreatedAt),
		UpdatedAt:    fromMillis(r.UpdatedAt),
	}
}

func projectToRow(p models.Project) projectRow {
	return projectRow{
		ID:           p.ID,
		Title:        p.Title,
		AudioURI:     p.AudioURI,
		Transcript:   p.Transcript,
		FolderID:     nullFromPtr(p.FolderID),
		ThumbnailURL: nullFromString(p.ThumbnailURL),
		Date:         millis(p.Date),
		CreatedAt:    millis(p.CreatedAt),
		UpdatedAt:    millis(p.UpdatedAt),
	}
}

type videoRow struct {
	ID        string
	ProjectID string
	Title     sql.NullString
	CreatedAt int64
	UpdatedAt int64
}

func (r videoRow) toModel(scenes []models.Scene) models.Video {
	return models.Video{
		ID:        r.ID,
		ProjectID: r.ProjectID,
		Title:     r.Title.String,
		Scenes:    scenes,
		CreatedAt: fromMillis(r.CreatedAt),
		UpdatedAt: fromMillis(r.UpdatedAt),
	}
}

type sceneRow struct {
	ID            string
	VideoID       string
	Description   string
	Duration      int
	SequenceOrder int
	CreatedAt     int64
}

func (r sceneRow) toModel(images []models.SceneImage) models.Scene {
	return models.Scene{
		ID:          r.ID,
		Description: r.Description,
		Duration:    r.Duration,
		Images:      images,
	}
}

type sceneImageRow struct {
	ID            string
	SceneID       string
	ImagePrompt   string
	ImageURL      sql.NullString
	SequenceOrder int
	CreatedAt     int64
}

func (r sceneImageRow) toModel() models.SceneImage {
	return models.SceneImage{
		ID:            r.ID,
		ImagePrompt:   r.ImagePrompt,
		ImageURL:      r.ImageURL.String,
		SequenceOrder: r.SequenceOrder,
	}
}

type rewriteRow struct {
	ID              string
	ProjectID       string
	TranscriptText  string
	RewriteType     string
	TargetLanguage  sql.NullString
	ParentRewriteID sql.NullString
	CreatedAt       int64
	Metadata        sql.NullString
}

func (r rewriteRow) toModel() (models.RewriteHistoryEntry, error) {
	entry := models.RewriteHistoryEntry{
		ID:              r.ID,
		ProjectID:       r.ProjectID,
		TranscriptText:  r.TranscriptText,
		RewriteType:     models.RewriteType(r.RewriteType),
		TargetLanguage:  ptrFromNull(r.TargetLanguage),
		ParentRewriteID: ptrFromNull(r.ParentRewriteID),
		CreatedAt:       fromMillis(r.CreatedAt),
	}
	if r.Metadata.Valid {
		if err := json.Unmarshal([]byte(r.Metadata.String), &entry.Metadata); err != nil {
			return entry, fmt.Errorf("decode rewrite metadata for %s: %w", r.ID, err)
		}
	}
	return entry, nil
}

func encodeMetadata(metadata map[string]any) (sql.NullString, error) {
	if len(metadata) == 0 {
		return sql.NullString{}, nil
	}
	raw, err := json.Marshal(metadata)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("encode rewrite metadata: %w", err)
	}
	return sql.NullString{String: string(raw), Valid: true}, nil
}

type translationRow struct {
	ID             string
	ProjectID      string
	SourceText     string
	TranslatedText string
	TargetLanguage string
	CreatedAt      int64
	UpdatedAt      int64
}

func (r translationRow) toModel() models.Translation {
	return models.Translation{
		ID:             r.ID,
		ProjectID:      r.ProjectID,
		SourceText:     r.SourceText,
		TranslatedText: r.TranslatedText,
		TargetLanguage: r.TargetLanguage,
		CreatedAt:      fromMillis(r.CreatedAt),
		UpdatedAt:      fromMillis(r.UpdatedAt),
	}
}

type mindMapRow struct {
	ID        string
	ProjectID string
	Data      string
	ImageURI  sql.NullString
	Format    string
	CreatedAt int64
	UpdatedAt int64
}

func (r mindMapRow) toModel() models.MindMap {
	return models.MindMap{
		ID:        r.ID,
		ProjectID: r.ProjectID,
		Data:      r.Data,
		ImageURI:  r.ImageURI.String,
		Format:    models.MindMapFormat(r.Format),
		CreatedAt: fromMillis(r.CreatedAt),
		UpdatedAt: fromMillis(r.UpdatedAt),
	}
}

type contentRow struct {
	ID          string
	ProjectID   string
	ContentType string
	ContentData string
	CreatedAt   int64
	UpdatedAt   int64
}

func (r contentRow) toModel() models.CreateContent {
	return models.CreateContent{
		ID:          r.ID,
		ProjectID:   r.ProjectID,
		ContentType: models.ContentType(r.ContentType),
		ContentData: r.ContentData,
		CreatedAt:   fromMillis(r.CreatedAt),
		UpdatedAt:   fromMillis(r.UpdatedAt),
	}
}
