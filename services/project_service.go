package services

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"nodio/database"
	"nodio/models"
)

// ProjectService handles business logic for projects and their video trees
type ProjectService struct {
	repo ProjectRepository
	tags TagRepository
}

// NewProjectService creates a new project service
func NewProjectService(repo ProjectRepository, tags TagRepository) *ProjectService {
	return &ProjectService{repo: repo, tags: tags}
}

// List retrieves all projects, most recently updated first
func (ps *ProjectService) List() ([]models.Project, error) {
	return ps.repo.GetProjects()
}

// Get retrieves a fully hydrated project
func (ps *ProjectService) Get(projectID string) (*models.Project, error) {
	project, err := ps.repo.GetProjectByID(projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}
	return project, nil
}

// ListByFolder retrieves projects in a folder; nil means unfiled
func (ps *ProjectService) ListByFolder(folderID *string) ([]models.Project, error) {
	return ps.repo.GetProjectsByFolder(folderID)
}

// ListByTag retrieves projects carrying the given tag
func (ps *ProjectService) ListByTag(tagID string) ([]models.Project, error) {
	return ps.repo.GetProjectsByTag(tagID)
}

// Search retrieves projects whose title or transcript matches the query
func (ps *ProjectService) Search(query string) ([]models.Project, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return ps.repo.GetProjects()
	}
	return ps.repo.SearchProjects(query)
}

// Create builds the full project graph from the request, minting ids for
// the project and every video, scene, and image. Tag names resolve to
// existing tags case-insensitively; unknown names become new tags.
func (ps *ProjectService) Create(req models.CreateProjectRequest) (*models.Project, error) {
	now := time.Now()

	tagIDs, err := ps.resolveTagNames(req.Tags)
	if err != nil {
		return nil, err
	}

	project := &models.Project{
		ID:           uuid.New().String(),
		Title:        strings.TrimSpace(req.Title),
		AudioURI:     req.AudioURI,
		Transcript:   req.Transcript,
		FolderID:     req.FolderID,
		ThumbnailURL: req.ThumbnailURL,
		Date:         now,
		Tags:         tagIDs,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	for _, videoReq := range req.Videos {
		project.Videos = append(project.Videos, models.Video{
			ID:        uuid.New().String(),
			ProjectID: project.ID,
			Title:     videoReq.Title,
			Scenes:    buildScenes(videoReq.Scenes),
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	if err := ps.repo.CreateProject(project); err != nil {
		return nil, err
	}
	return project, nil
}

// Update patches project fields
func (ps *ProjectService) Update(projectID string, update models.ProjectUpdate) error {
	return mapProjectErr(ps.repo.UpdateProject(projectID, update))
}

// UpdateTranscript replaces the project transcript
func (ps *ProjectService) UpdateTranscript(projectID, transcript string) error {
	return mapProjectErr(ps.repo.UpdateProjectTranscript(projectID, transcript))
}

// Rename replaces the project title
func (ps *ProjectService) Rename(projectID, title string) error {
	return mapProjectErr(ps.repo.UpdateProjectTitle(projectID, strings.TrimSpace(title)))
}

// Move reassigns the project to a folder; nil means unfiled
func (ps *ProjectService) Move(projectID string, folderID *string) error {
	return mapProjectErr(ps.repo.MoveProjectToFolder(projectID, folderID))
}

// AddTags attaches tags to the project by name, creating unknown ones
func (ps *ProjectService) AddTags(projectID string, names []string) error {
	tagIDs, err := ps.resolveTagNames(names)
	if err != nil {
		return err
	}
	return mapProjectErr(ps.repo.AddProjectTags(projectID, tagIDs))
}

// RemoveTag detaches one tag from the project
func (ps *ProjectService) RemoveTag(projectID, tagID string) error {
	return mapProjectErr(ps.repo.RemoveProjectTag(projectID, tagID))
}

// Delete removes the project and everything it owns
func (ps *ProjectService) Delete(projectID string) error {
	return mapProjectErr(ps.repo.DeleteProject(projectID))
}

// ==================== VIDEOS & SCENES ====================

// GetVideo retrieves a video with its ordered scenes and images
func (ps *ProjectService) GetVideo(videoID string) (*models.Video, error) {
	video, err := ps.repo.GetVideoByID(videoID)
	if err != nil {
		return nil, err
	}
	if video == nil {
		return nil, ErrVideoNotFound
	}
	return video, nil
}

// AddVideo creates a video under the project
func (ps *ProjectService) AddVideo(projectID string, req models.CreateVideoRequest) (*models.Video, error) {
	now := time.Now()
	video := &models.Video{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Title:     req.Title,
		Scenes:    buildScenes(req.Scenes),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := ps.repo.CreateVideo(video); err != nil {
		return nil, err
	}
	return video, nil
}

// RenameVideo replaces the video title
func (ps *ProjectService) RenameVideo(videoID, title string) error {
	err := ps.repo.UpdateVideo(videoID, &title)
	if errors.Is(err, database.ErrNotFound) {
		return ErrVideoNotFound
	}
	return err
}

// ReplaceScenes swaps the video's whole scene collection; slice order
// becomes the stored order
func (ps *ProjectService) ReplaceScenes(videoID string, reqs []models.CreateSceneRequest) ([]models.Scene, error) {
	scenes := buildScenes(reqs)
	if err := ps.repo.ReplaceScenes(videoID, scenes); err != nil {
		return nil, err
	}
	return scenes, nil
}

// DeleteVideo removes the video and its scenes
func (ps *ProjectService) DeleteVideo(videoID string) error {
	err := ps.repo.DeleteVideo(videoID)
	if errors.Is(err, database.ErrNotFound) {
		return ErrVideoNotFound
	}
	return err
}

// UpdateScene patches a scene, optionally replacing its images
func (ps *ProjectService) UpdateScene(sceneID string, update models.SceneUpdate) error {
	err := ps.repo.UpdateScene(sceneID, update)
	if errors.Is(err, database.ErrNotFound) {
		return ErrSceneNotFound
	}
	return err
}

// DeleteScene removes one scene and its images
func (ps *ProjectService) DeleteScene(sceneID string) error {
	err := ps.repo.DeleteScene(sceneID)
	if errors.Is(err, database.ErrNotFound) {
		return ErrSceneNotFound
	}
	return err
}

// SceneImages retrieves a scene's images in order
func (ps *ProjectService) SceneImages(sceneID string) ([]models.SceneImage, error) {
	return ps.repo.GetSceneImages(sceneID)
}

// UpdateSceneImage patches one image
func (ps *ProjectService) UpdateSceneImage(imageID string, update models.SceneImageUpdate) error {
	err := ps.repo.UpdateSceneImage(imageID, update)
	if errors.Is(err, database.ErrNotFound) {
		return ErrSceneNotFound
	}
	return err
}

// DeleteSceneImage removes one image
func (ps *ProjectService) DeleteSceneImage(imageID string) error {
	err := ps.repo.DeleteSceneImage(imageID)
	if errors.Is(err, database.ErrNotFound) {
		return ErrSceneNotFound
	}
	return err
}

// resolveTagNames maps tag names to ids, creating missing tags
func (ps *ProjectService) resolveTagNames(names []string) ([]string, error) {
	var ids []string
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		tag, err := ps.tags.GetOrCreateTag(&models.Tag{
			ID:        uuid.New().String(),
			Name:      name,
			CreatedAt: time.Now(),
		})
		if err != nil {
			return nil, err
		}
		ids = append(ids, tag.ID)
	}
	return ids, nil
}

func buildScenes(reqs []models.CreateSceneRequest) []models.Scene {
	scenes := make([]models.Scene, 0, len(reqs))
	for _, req := range reqs {
		scene := models.Scene{
			ID:          uuid.New().String(),
			Description: req.Description,
			Duration:    req.Duration,
		}
		for i, imageReq := range req.Images {
			scene.Images = append(scene.Images, models.SceneImage{
				ID:            uuid.New().String(),
				ImagePrompt:   imageReq.ImagePrompt,
				ImageURL:      imageReq.ImageURL,
				SequenceOrder: i,
			})
		}
		scenes = append(scenes, scene)
	}
	return scenes
}

// mapProjectErr translates store errors into service errors
func mapProjectErr(err error) error {
	if errors.Is(err, database.ErrNotFound) {
		return ErrProjectNotFound
	}
	return err
}
