package models

import "time"

// Per-project derived content. Summary, bullet points, mind map, and
// journal are singletons (at most one row per project, upsert semantics);
// translations, rewrite history, and create-content keep history.

type ProjectSummary struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"project_id"`
	SummaryText string    `json:"summary_text"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type BulletPoints struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	Text      string    `json:"bullet_points_text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type MindMapFormat string

const (
	MindMapFormatText  MindMapFormat = "text"
	MindMapFormatImage MindMapFormat = "image"
)

type MindMap struct {
	ID        string        `json:"id"`
	ProjectID string        `json:"project_id"`
	Data      string        `json:"mind_map_data"`
	ImageURI  string        `json:"image_uri,omitempty"`
	Format    MindMapFormat `json:"format"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

type JournalEntry struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	EntryText string    `json:"entry_text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Translation struct {
	ID             string    `json:"id"`
	ProjectID      string    `json:"project_id"`
	SourceText     string    `json:"source_text"`
	TranslatedText string    `json:"translated_text"`
	TargetLanguage string    `json:"target_language"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type RewriteType string

const (
	RewriteTypeRewrite   RewriteType = "rewrite"
	RewriteTypeTranslate RewriteType = "translate"
	RewriteTypeSummarize RewriteType = "summarize"
	RewriteTypeManual    RewriteType = "manual"
)

// RewriteHistoryEntry is one node in a project's provenance forest. Entries
// with a nil ParentRewriteID are roots. Entries are append-only: there is
// no update, only create and delete. Metadata is caller-defined and stays
// opaque; it is JSON-encoded only at the storage boundary.
type RewriteHistoryEntry struct {
	ID              string         `json:"id"`
	ProjectID       string         `json:"project_id"`
	TranscriptText  string         `json:"transcript_text"`
	RewriteType     RewriteType    `json:"rewrite_type"`
	TargetLanguage  *string        `json:"target_language,omitempty"`
	ParentRewriteID *string        `json:"parent_rewrite_id,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	Metadata        map[string]any `json:"metadata,omitempty"`
}

type ContentType string

const (
	ContentTypeMeetingNotes ContentType = "meeting_notes"
	ContentTypeTodoList     ContentType = "todo_list"
	ContentTypeIllustration ContentType = "illustration"
	ContentTypeVideo        ContentType = "video"
)

type CreateContent struct {
	ID          string      `json:"id"`
	ProjectID   string      `json:"project_id"`
	ContentType ContentType `json:"content_type"`
	ContentData string      `json:"content_data"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

type UpsertMindMapRequest struct {
	Data     string `json:"mind_map_data" validate:"required"`
	ImageURI string `json:"image_uri,omitempty"`
	Format   string `json:"format" validate:"required,oneof=text image"`
}

type CreateRewriteRequest struct {
	TranscriptText  string         `json:"transcript_text" validate:"required"`
	RewriteType     string         `json:"rewrite_type" validate:"required,rewritetype"`
	TargetLanguage  *string        `json:"target_language,omitempty" validate:"omitempty,langcode"`
	ParentRewriteID *string        `json:"parent_rewrite_id,omitempty"`
	Metadata        map[string]any `json:"metadata,omitempty"`
}

type CreateTranslationRequest struct {
	SourceText     string `json:"source_text" validate:"required"`
	TranslatedText string `json:"translated_text" validate:"required"`
	TargetLanguage string `json:"target_language" validate:"required,langcode"`
}

type CreateContentRequest struct {
	ContentType string `json:"content_type" validate:"required,contenttype"`
	ContentData string `json:"content_data" validate:"required"`
}
