package services

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"nodio/database"
	"nodio/models"
)

// FolderService handles business logic for the folder tree
type FolderService struct {
	repo FolderRepository
}

// NewFolderService creates a new folder service
func NewFolderService(repo FolderRepository) *FolderService {
	return &FolderService{repo: repo}
}

// List retrieves all folders
func (fs *FolderService) List() ([]models.Folder, error) {
	return fs.repo.GetFolders()
}

// Get retrieves a single folder
func (fs *FolderService) Get(folderID string) (*models.Folder, error) {
	folder, err := fs.repo.GetFolderByID(folderID)
	if err != nil {
		return nil, err
	}
	if folder == nil {
		return nil, ErrFolderNotFound
	}
	return folder, nil
}

// Children retrieves a folder's immediate children
func (fs *FolderService) Children(folderID string) ([]models.Folder, error) {
	return fs.repo.GetFoldersByParent(folderID)
}

// Path retrieves the root-to-folder ancestor chain
func (fs *FolderService) Path(folderID string) ([]models.Folder, error) {
	return fs.repo.GetFolderPath(folderID)
}

// Create creates a new folder
func (fs *FolderService) Create(req models.CreateFolderRequest) (*models.Folder, error) {
	if req.ParentID != nil {
		parent, err := fs.repo.GetFolderByID(*req.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, ErrFolderNotFound
		}
	}

	folder := &models.Folder{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(req.Name),
		ParentID:  req.ParentID,
		Color:     req.Color,
		Icon:      req.Icon,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := fs.repo.CreateFolder(folder); err != nil {
		return nil, mapFolderErr(err)
	}
	return folder, nil
}

// Update patches an existing folder
func (fs *FolderService) Update(folderID string, req models.UpdateFolderRequest) error {
	update := models.FolderUpdate{
		Name:     req.Name,
		ParentID: req.ParentID,
		Color:    req.Color,
		Icon:     req.Icon,
	}
	if update.Name != nil {
		trimmed := strings.TrimSpace(*update.Name)
		update.Name = &trimmed
	}
	return mapFolderErr(fs.repo.UpdateFolder(folderID, update))
}

// Delete removes a folder subtree with the chosen project disposition
func (fs *FolderService) Delete(folderID string, disposition models.ProjectDisposition) error {
	return mapFolderErr(fs.repo.DeleteFolder(folderID, disposition))
}

// mapFolderErr translates store errors into service errors
func mapFolderErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, database.ErrNotFound):
		return ErrFolderNotFound
	case errors.Is(err, database.ErrRootFolderImmutable):
		return ErrFolderProtected
	case errors.Is(err, database.ErrFolderCycle):
		return ErrFolderCycle
	}
	return err
}
