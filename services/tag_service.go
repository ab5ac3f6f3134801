package services

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"nodio/database"
	"nodio/models"
)

// TagService handles business logic for tags
type TagService struct {
	repo TagRepository
}

// NewTagService creates a new tag service
func NewTagService(repo TagRepository) *TagService {
	return &TagService{repo: repo}
}

// List retrieves all tags
func (ts *TagService) List() ([]models.Tag, error) {
	return ts.repo.GetTags()
}

// Get retrieves a single tag
func (ts *TagService) Get(tagID string) (*models.Tag, error) {
	tag, err := ts.repo.GetTagByID(tagID)
	if err != nil {
		return nil, err
	}
	if tag == nil {
		return nil, ErrTagNotFound
	}
	return tag, nil
}

// Create returns the existing tag when the name is already taken under
// case-insensitive matching, creating it otherwise.
func (ts *TagService) Create(req models.CreateTagRequest) (*models.Tag, error) {
	return ts.repo.GetOrCreateTag(&models.Tag{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(req.Name),
		Color:     req.Color,
		CreatedAt: time.Now(),
	})
}

// Update patches an existing tag
func (ts *TagService) Update(tagID string, update models.TagUpdate) error {
	if update.Name != nil {
		trimmed := strings.TrimSpace(*update.Name)
		update.Name = &trimmed
	}
	err := ts.repo.UpdateTag(tagID, update)
	if errors.Is(err, database.ErrNotFound) {
		return ErrTagNotFound
	}
	return err
}

// Delete removes a tag; project associations disappear with it
func (ts *TagService) Delete(tagID string) error {
	return ts.repo.DeleteTag(tagID)
}
