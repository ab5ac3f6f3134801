package models

import "time"

// RootFolderID is the id of the permanent "All Projects" folder seeded at
// initialization. It can never be renamed, reparented, or deleted.
const RootFolderID = "all-projects"

type Folder struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ParentID  *string   `json:"parent_id,omitempty"`
	Color     string    `json:"color,omitempty"`
	Icon      string    `json:"icon,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FolderUpdate carries patch semantics: nil fields are left untouched.
type FolderUpdate struct {
	Name     *string `json:"name,omitempty"`
	ParentID *string `json:"parent_id,omitempty"`
	Color    *string `json:"color,omitempty"`
	Icon     *string `json:"icon,omitempty"`
}

// ProjectDisposition says what happens to projects owned by a folder
// subtree when that subtree is deleted. The caller must pick one; the
// repository never decides implicitly.
type ProjectDisposition string

const (
	// ReassignProjects moves every owned project to "unfiled" (null folder).
	ReassignProjects ProjectDisposition = "reassign"
	// DeleteProjects deletes every owned project and everything it owns.
	DeleteProjects ProjectDisposition = "delete"
)

type CreateFolderRequest struct {
	Name     string  `json:"name" validate:"required,min=1,max=100,foldername"`
	ParentID *string `json:"parent_id,omitempty"`
	Color    string  `json:"color,omitempty" validate:"omitempty,max=30"`
	Icon     string  `json:"icon,omitempty" validate:"omitempty,max=50"`
}

type UpdateFolderRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,min=1,max=100,foldername"`
	ParentID *string `json:"parent_id,omitempty"`
	Color    *string `json:"color,omitempty" validate:"omitempty,max=30"`
	Icon     *string `json:"icon,omitempty" validate:"omitempty,max=50"`
}

type Tag struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
}

type TagUpdate struct {
	Name  *string `json:"name,omitempty"`
	Color *string `json:"color,omitempty"`
}

type CreateTagRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=50"`
	Color string `json:"color" validate:"required,max=30"`
}
