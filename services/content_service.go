package services

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"nodio/database"
	"nodio/models"
)

// ContentService handles business logic for derived project content:
// summaries, bullet points, mind maps, journal entries, rewrite history,
// translations, and generated content.
type ContentService struct {
	repo ContentRepository
}

// NewContentService creates a new content service
func NewContentService(repo ContentRepository) *ContentService {
	return &ContentService{repo: repo}
}

// requireProject verifies the project exists before writing derived rows
func (cs *ContentService) requireProject(projectID string) error {
	project, err := cs.repo.GetProjectByID(projectID)
	if err != nil {
		return err
	}
	if project == nil {
		return ErrProjectNotFound
	}
	return nil
}

// ==================== SINGLETONS ====================

func (cs *ContentService) GetSummary(projectID string) (*models.ProjectSummary, error) {
	return cs.repo.GetProjectSummary(projectID)
}

func (cs *ContentService) SaveSummary(projectID, summaryText string) (*models.ProjectSummary, error) {
	if err := cs.requireProject(projectID); err != nil {
		return nil, err
	}
	if err := cs.repo.UpsertProjectSummary(projectID, summaryText); err != nil {
		return nil, err
	}
	return cs.repo.GetProjectSummary(projectID)
}

func (cs *ContentService) DeleteSummary(projectID string) error {
	return cs.repo.DeleteProjectSummary(projectID)
}

func (cs *ContentService) GetBulletPoints(projectID string) (*models.BulletPoints, error) {
	return cs.repo.GetBulletPoints(projectID)
}

func (cs *ContentService) SaveBulletPoints(projectID, text string) (*models.BulletPoints, error) {
	if err := cs.requireProject(projectID); err != nil {
		return nil, err
	}
	if err := cs.repo.UpsertBulletPoints(projectID, text); err != nil {
		return nil, err
	}
	return cs.repo.GetBulletPoints(projectID)
}

func (cs *ContentService) DeleteBulletPoints(projectID string) error {
	return cs.repo.DeleteBulletPoints(projectID)
}

func (cs *ContentService) GetMindMap(projectID string) (*models.MindMap, error) {
	return cs.repo.GetMindMap(projectID)
}

func (cs *ContentService) SaveMindMap(projectID string, req models.UpsertMindMapRequest) (*models.MindMap, error) {
	if err := cs.requireProject(projectID); err != nil {
		return nil, err
	}
	if err := cs.repo.UpsertMindMap(
		projectID, req.Data, req.ImageURI, models.MindMapFormat(req.Format),
	); err != nil {
		return nil, err
	}
	return cs.repo.GetMindMap(projectID)
}

func (cs *ContentService) DeleteMindMap(projectID string) error {
	return cs.repo.DeleteMindMap(projectID)
}

func (cs *ContentService) GetJournalEntry(projectID string) (*models.JournalEntry, error) {
	return cs.repo.GetJournalEntry(projectID)
}

func (cs *ContentService) SaveJournalEntry(projectID, entryText string) (*models.JournalEntry, error) {
	if err := cs.requireProject(projectID); err != nil {
		return nil, err
	}
	if err := cs.repo.UpsertJournalEntry(projectID, entryText); err != nil {
		return nil, err
	}
	return cs.repo.GetJournalEntry(projectID)
}

func (cs *ContentService) DeleteJournalEntry(projectID string) error {
	return cs.repo.DeleteJournalEntry(projectID)
}

// ==================== REWRITE HISTORY ====================

// CreateRewrite appends one entry to the project's rewrite forest
func (cs *ContentService) CreateRewrite(projectID string, req models.CreateRewriteRequest) (*models.RewriteHistoryEntry, error) {
	if err := cs.requireProject(projectID); err != nil {
		return nil, err
	}

	if req.ParentRewriteID != nil {
		parent, err := cs.repo.GetRewriteByID(*req.ParentRewriteID)
		if err != nil {
			return nil, err
		}
		if parent == nil || parent.ProjectID != projectID {
			return nil, ErrRewriteNotFound
		}
	}

	entry := &models.RewriteHistoryEntry{
		ID:              uuid.New().String(),
		ProjectID:       projectID,
		TranscriptText:  req.TranscriptText,
		RewriteType:     models.RewriteType(req.RewriteType),
		TargetLanguage:  req.TargetLanguage,
		ParentRewriteID: req.ParentRewriteID,
		CreatedAt:       time.Now(),
		Metadata:        req.Metadata,
	}
	if err := cs.repo.CreateRewrite(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// HistoryTree retrieves the full rewrite forest, oldest first
func (cs *ContentService) HistoryTree(projectID string) ([]models.RewriteHistoryEntry, error) {
	return cs.repo.GetHistoryTree(projectID)
}

// RecentRewrites retrieves all entries, newest first
func (cs *ContentService) RecentRewrites(projectID string) ([]models.RewriteHistoryEntry, error) {
	return cs.repo.GetRewritesByProject(projectID)
}

// LatestRewrite retrieves the most recent entry regardless of tree shape
func (cs *ContentService) LatestRewrite(projectID string) (*models.RewriteHistoryEntry, error) {
	return cs.repo.GetLatestRewrite(projectID)
}

// DeleteRewrite removes an entry and its whole subtree
func (cs *ContentService) DeleteRewrite(rewriteID string) error {
	err := cs.repo.DeleteRewrite(rewriteID)
	if errors.Is(err, database.ErrNotFound) {
		return ErrRewriteNotFound
	}
	return err
}

// ==================== TRANSLATIONS ====================

func (cs *ContentService) CreateTranslation(projectID string, req models.CreateTranslationRequest) (*models.Translation, error) {
	if err := cs.requireProject(projectID); err != nil {
		return nil, err
	}

	now := time.Now()
	translation := &models.Translation{
		ID:             uuid.New().String(),
		ProjectID:      projectID,
		SourceText:     req.SourceText,
		TranslatedText: req.TranslatedText,
		TargetLanguage: req.TargetLanguage,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := cs.repo.CreateTranslation(translation); err != nil {
		return nil, err
	}
	return translation, nil
}

func (cs *ContentService) Translations(projectID string) ([]models.Translation, error) {
	return cs.repo.GetTranslationsByProject(projectID)
}

// LatestTranslation retrieves the newest translation into targetLanguage
func (cs *ContentService) LatestTranslation(projectID, targetLanguage string) (*models.Translation, error) {
	return cs.repo.GetTranslationByProjectAndLanguage(projectID, targetLanguage)
}

func (cs *ContentService) UpdateTranslation(translationID, translatedText string) error {
	err := cs.repo.UpdateTranslation(translationID, translatedText)
	if errors.Is(err, database.ErrNotFound) {
		return ErrTranslationNotFound
	}
	return err
}

func (cs *ContentService) DeleteTranslation(translationID string) error {
	err := cs.repo.DeleteTranslation(translationID)
	if errors.Is(err, database.ErrNotFound) {
		return ErrTranslationNotFound
	}
	return err
}

// ==================== GENERATED CONTENT ====================

func (cs *ContentService) CreateContent(projectID string, req models.CreateContentRequest) (*models.CreateContent, error) {
	if err := cs.requireProject(projectID); err != nil {
		return nil, err
	}

	now := time.Now()
	content := &models.CreateContent{
		ID:          uuid.New().String(),
		ProjectID:   projectID,
		ContentType: models.ContentType(req.ContentType),
		ContentData: req.ContentData,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := cs.repo.CreateContent(content); err != nil {
		return nil, err
	}
	return content, nil
}

func (cs *ContentService) Contents(projectID string) ([]models.CreateContent, error) {
	return cs.repo.GetContentByProject(projectID)
}

// LatestContent retrieves the newest content of the given kind
func (cs *ContentService) LatestContent(projectID string, contentType models.ContentType) (*models.CreateContent, error) {
	return cs.repo.GetContentByProjectAndType(projectID, contentType)
}

func (cs *ContentService) UpdateContent(contentID, contentData string) error {
	err := cs.repo.UpdateContent(contentID, contentData)
	if errors.Is(err, database.ErrNotFound) {
		return ErrContentNotFound
	}
	return err
}

func (cs *ContentService) DeleteContent(contentID string) error {
	err := cs.repo.DeleteContent(contentID)
	if errors.Is(err, database.ErrNotFound) {
		return ErrContentNotFound
	}
	return err
}
