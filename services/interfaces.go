package services

import "nodio/models"

// FolderRepository defines the interface for folder data access
type FolderRepository interface {
	GetFolders() ([]models.Folder, error)
	GetFolderByID(id string) (*models.Folder, error)
	GetFoldersByParent(parentID string) ([]models.Folder, error)
	CreateFolder(folder *models.Folder) error
	UpdateFolder(id string, update models.FolderUpdate) error
	DeleteFolder(id string, disposition models.ProjectDisposition) error
	GetFolderPath(id string) ([]models.Folder, error)
}

// TagRepository defines the interface for tag data access
type TagRepository interface {
	GetTags() ([]models.Tag, error)
	GetTagByID(id string) (*models.Tag, error)
	GetTagByName(name string) (*models.Tag, error)
	GetOrCreateTag(tag *models.Tag) (*models.Tag, error)
	UpdateTag(id string, update models.TagUpdate) error
	DeleteTag(id string) error
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	GetProjects() ([]models.Project, error)
	GetProjectByID(id string) (*models.Project, error)
	GetProjectsByFolder(folderID *string) ([]models.Project, error)
	GetProjectsByTag(tagID string) ([]models.Project, error)
	SearchProjects(query string) ([]models.Project, error)
	CreateProject(project *models.Project) error
	UpdateProject(id string, update models.ProjectUpdate) error
	UpdateProjectTranscript(id, transcript string) error
	UpdateProjectTitle(id, title string) error
	MoveProjectToFolder(id string, folderID *string) error
	AddProjectTags(id string, tagIDs []string) error
	RemoveProjectTag(id, tagID string) error
	DeleteProject(id string) error

	GetVideosByProject(projectID string) ([]models.Video, error)
	GetVideoByID(id string) (*models.Video, error)
	CreateVideo(video *models.Video) error
	UpdateVideo(id string, title *string) error
	ReplaceScenes(videoID string, scenes []models.Scene) error
	DeleteVideo(id string) error
	UpdateScene(id string, update models.SceneUpdate) error
	DeleteScene(id string) error
	GetSceneImages(sceneID string) ([]models.SceneImage, error)
	UpdateSceneImage(id string, update models.SceneImageUpdate) error
	DeleteSceneImage(id string) error
}

// ContentRepository defines the interface for derived-content data access
type ContentRepository interface {
	GetProjectByID(id string) (*models.Project, error)

	GetProjectSummary(projectID string) (*models.ProjectSummary, error)
	UpsertProjectSummary(projectID, summaryText string) error
	DeleteProjectSummary(projectID string) error
	GetBulletPoints(projectID string) (*models.BulletPoints, error)
	UpsertBulletPoints(projectID, text string) error
	DeleteBulletPoints(projectID string) error
	GetMindMap(projectID string) (*models.MindMap, error)
	UpsertMindMap(projectID, data, imageURI string, format models.MindMapFormat) error
	DeleteMindMap(projectID string) error
	GetJournalEntry(projectID string) (*models.JournalEntry, error)
	UpsertJournalEntry(projectID, entryText string) error
	DeleteJournalEntry(projectID string) error

	CreateRewrite(entry *models.RewriteHistoryEntry) error
	GetRewriteByID(id string) (*models.RewriteHistoryEntry, error)
	GetRewritesByProject(projectID string) ([]models.RewriteHistoryEntry, error)
	GetHistoryTree(projectID string) ([]models.RewriteHistoryEntry, error)
	GetLatestRewrite(projectID string) (*models.RewriteHistoryEntry, error)
	DeleteRewrite(id string) error

	CreateTranslation(t *models.Translation) error
	GetTranslationByID(id string) (*models.Translation, error)
	GetTranslationsByProject(projectID string) ([]models.Translation, error)
	GetTranslationByProjectAndLanguage(projectID, targetLanguage string) (*models.Translation, error)
	UpdateTranslation(id, translatedText string) error
	DeleteTranslation(id string) error

	CreateContent(content *models.CreateContent) error
	GetContentByID(id string) (*models.CreateContent, error)
	GetContentByProject(projectID string) ([]models.CreateContent, error)
	GetContentByProjectAndType(projectID string, contentType models.ContentType) (*models.CreateContent, error)
	UpdateContent(id, contentData string) error
	DeleteContent(id string) error
}
