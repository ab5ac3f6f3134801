package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nodio/models"
)

func makeTranslation(id, projectID, lang string, createdAt time.Time) *models.Translation {
	return &models.Translation{
		ID:             id,
		ProjectID:      projectID,
		SourceText:     "bonjour ici",
		TranslatedText: "hello there",
		TargetLanguage: lang,
		CreatedAt:      createdAt,
		UpdatedAt:      createdAt,
	}
}

func TestTranslationHistoryPerLanguage(t *testing.T) {
	repo, _, cleanup := setupTestRepo(t)
	defer cleanup()

	require.NoError(t, repo.CreateProject(buildProject("p1", 0, 0, 0)))

	base := time.Now().Add(-time.Minute)
	require.NoError(t, repo.CreateTranslation(makeTranslation("tr1", "p1", "fr", base)))
	require.NoError(t, repo.CreateTranslation(makeTranslation("tr2", "p1", "fr", base.Add(time.Second))))
	require.NoError(t, repo.CreateTranslation(makeTranslation("tr3", "p1", "de", base.Add(2*time.Second))))

	all, err := repo.GetTranslationsByProject("p1")
	require.NoError(t, err)
	require.Len(t, all, 3, "history is retained, not replaced")
	assert.Equal(t, "tr3", all[0].ID)

	latest, err := repo.GetTranslationByProjectAndLanguage("p1", "fr")
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, "tr2", latest.ID)

	missing, err := repo.GetTranslationByProjectAndLanguage("p1", "ja")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestTranslationUpdateAndDelete(t *testing.T) {
	repo, _, cleanup := setupTestRepo(t)
	defer cleanup()

	require.NoError(t, repo.CreateProject(buildProject("p1", 0, 0, 0)))
	require.NoError(t, repo.CreateTranslation(makeTranslation("tr1", "p1", "es", time.Now())))

	require.NoError(t, repo.UpdateTranslation("tr1", "hola por ahi"))
	got, err := repo.GetTranslationByID("tr1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "hola por ahi", got.TranslatedText)
	assert.Equal(t, "bonjour ici", got.SourceText, "source text untouched")

	require.ErrorIs(t, repo.UpdateTranslation("ghost", "x"), ErrNotFound)

	require.NoError(t, repo.DeleteTranslation("tr1"))
	require.ErrorIs(t, repo.DeleteTranslation("tr1"), ErrNotFound)
}

func makeContent(id, projectID string, kind models.ContentType, createdAt time.Time) *models.CreateContent {
	return &models.CreateContent{
		ID:          id,
		ProjectID:   projectID,
		ContentType: kind,
		ContentData: "data of " + id,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
}

func TestContentByProjectAndType(t *testing.T) {
	repo, _, cleanup := setupTestRepo(t)
	defer cleanup()

	require.NoError(t, repo.CreateProject(buildProject("p1", 0, 0, 0)))

	base := time.Now().Add(-time.Minute)
	require.NoError(t, repo.CreateContent(makeContent("c1", "p1", models.ContentTypeTodoList, base)))
	require.NoError(t, repo.CreateContent(makeContent("c2", "p1", models.ContentTypeTodoList, base.Add(time.Second))))
	require.NoError(t, repo.CreateContent(makeContent("c3", "p1", models.ContentTypeMeetingNotes, base.Add(2*time.Second))))

	all, err := repo.GetContentByProject("p1")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "c3", all[0].ID, "newest first")

	latest, err := repo.GetContentByProjectAndType("p1", models.ContentTypeTodoList)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, "c2", latest.ID)

	missing, err := repo.GetContentByProjectAndType("p1", models.ContentTypeVideo)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestContentUpdateAndDelete(t *testing.T) {
	repo, _, cleanup := setupTestRepo(t)
	defer cleanup()

	require.NoError(t, repo.CreateProject(buildProject("p1", 0, 0, 0)))
	require.NoError(t, repo.CreateContent(makeContent("c1", "p1", models.ContentTypeIllustration, time.Now())))

	require.NoError(t, repo.UpdateContent("c1", "revised payload"))
	got, err := repo.GetContentByID("c1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "revised payload", got.ContentData)
	assert.Equal(t, models.ContentTypeIllustration, got.ContentType)

	require.ErrorIs(t, repo.UpdateContent("ghost", "x"), ErrNotFound)

	require.NoError(t, repo.DeleteContent("c1"))
	require.ErrorIs(t, repo.DeleteContent("c1"), ErrNotFound)
}
