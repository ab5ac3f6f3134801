package models

import "time"

// DefaultSceneDuration is used when a scene is stored without an explicit
// duration, in milliseconds.
const DefaultSceneDuration = 3000

// Project is the aggregate root for videos, scenes, scene images, and all
// per-project derived content. Creating one writes the whole graph in a
// single transaction; deleting one cascades through every owned row.
type Project struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	AudioURI     string    `json:"audio_uri"`
	Transcript   string    `json:"transcript"`
	FolderID     *string   `json:"folder_id,omitempty"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	Date         time.Time `json:"date"`
	Tags         []string  `json:"tags"`
	Videos       []Video   `json:"videos"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Video struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	Title     string    `json:"title,omitempty"`
	Scenes    []Scene   `json:"scenes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Scene's position within its video is its index in Video.Scenes; the
// repository assigns sequence_order from slice position on every write.
type Scene struct {
	ID          string       `json:"id"`
	Description string       `json:"description"`
	Duration    int          `json:"duration"`
	Images      []SceneImage `json:"images"`
}

type SceneImage struct {
	ID            string `json:"id"`
	ImagePrompt   string `json:"image_prompt"`
	ImageURL      string `json:"image_url,omitempty"`
	SequenceOrder int    `json:"sequence_order"`
}

type ProjectUpdate struct {
	Title        *string `json:"title,omitempty"`
	Transcript   *string `json:"transcript,omitempty"`
	FolderID     *string `json:"folder_id,omitempty"`
	ThumbnailURL *string `json:"thumbnail_url,omitempty"`
}

type SceneUpdate struct {
	Description *string      `json:"description,omitempty"`
	Duration    *int         `json:"duration,omitempty"`
	Images      []SceneImage `json:"images,omitempty"`
}

type SceneImageUpdate struct {
	ImagePrompt   *string `json:"image_prompt,omitempty"`
	ImageURL      *string `json:"image_url,omitempty"`
	SequenceOrder *int    `json:"sequence_order,omitempty"`
}

type CreateProjectRequest struct {
	Title        string               `json:"title" validate:"required,min=1,max=200"`
	AudioURI     string               `json:"audio_uri" validate:"required"`
	Transcript   string               `json:"transcript"`
	FolderID     *string              `json:"folder_id,omitempty"`
	ThumbnailURL string               `json:"thumbnail_url,omitempty" validate:"omitempty,url"`
	Tags         []string             `json:"tags,omitempty"`
	Videos       []CreateVideoRequest `json:"videos,omitempty"`
}

type CreateVideoRequest struct {
	Title  string               `json:"title,omitempty" validate:"omitempty,max=200"`
	Scenes []CreateSceneRequest `json:"scenes,omitempty" validate:"dive"`
}

type CreateSceneRequest struct {
	Description string                    `json:"description" validate:"required"`
	Duration    int                       `json:"duration" validate:"omitempty,gte=0"`
	Images      []CreateSceneImageRequest `json:"images,omitempty" validate:"dive"`
}

type CreateSceneImageRequest struct {
	ImagePrompt string `json:"image_prompt" validate:"required"`
	ImageURL    string `json:"image_url,omitempty"`
}
