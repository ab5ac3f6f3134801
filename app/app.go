package app

import (
	"log/slog"

	"nodio/database"
	"nodio/services"
	"nodio/validator"
)

// App holds all application dependencies
// This struct is the central point for dependency injection
type App struct {
	Repo           *database.Repository
	FolderService  *services.FolderService
	TagService     *services.TagService
	ProjectService *services.ProjectService
	ContentService *services.ContentService
	Validator      *validator.Validator
	Logger         *slog.Logger
}

// New creates a new App instance with all dependencies
func New(repo *database.Repository, logger *slog.Logger) *App {
	return &App{
		Repo:           repo,
		FolderService:  services.NewFolderService(repo),
		TagService:     services.NewTagService(repo),
		ProjectService: services.NewProjectService(repo, repo),
		ContentService: services.NewContentService(repo),
		Validator:      validator.New(),
		Logger:         logger,
	}
}
