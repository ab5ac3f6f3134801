package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nodio/models"
)

func makeRewrite(id, projectID string, parentID *string, createdAt time.Time) *models.RewriteHistoryEntry {
	return &models.RewriteHistoryEntry{
		ID:              id,
		ProjectID:       projectID,
		TranscriptText:  "text of " + id,
		RewriteType:     models.RewriteTypeRewrite,
		ParentRewriteID: parentID,
		CreatedAt:       createdAt,
	}
}

func TestHistoryTree(t *testing.T) {
	repo, _, cleanup := setupTestRepo(t)
	defer cleanup()

	require.NoError(t, repo.CreateProject(buildProject("p1", 0, 0, 0)))

	base := time.Now().Add(-time.Minute)
	root := "r1"
	require.NoError(t, repo.CreateRewrite(makeRewrite("r1", "p1", nil, base)))
	require.NoError(t, repo.CreateRewrite(makeRewrite("r2", "p1", &root, base.Add(time.Second))))
	require.NoError(t, repo.CreateRewrite(makeRewrite("r3", "p1", &root, base.Add(2*time.Second))))

	child := "r2"
	require.NoError(t, repo.CreateRewrite(makeRewrite("r4", "p1", &child, base.Add(3*time.Second))))

	tree, err := repo.GetHistoryTree("p1")
	require.NoError(t, err)
	require.Len(t, tree, 4)
	for i, want := range []string{"r1", "r2", "r3", "r4"} {
		assert.Equal(t, want, tree[i].ID, "creation order")
	}

	latest, err := repo.GetLatestRewrite("p1")
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, "r4", latest.ID, "latest by time, not by tree position")

	recent, err := repo.GetRewritesByProject("p1")
	require.NoError(t, err)
	require.Len(t, recent, 4)
	assert.Equal(t, "r4", recent[0].ID, "flat listing is newest first")
}

func TestDeleteRewriteCascadesSubtree(t *testing.T) {
	repo, db, cleanup := setupTestRepo(t)
	defer cleanup()

	require.NoError(t, repo.CreateProject(buildProject("p1", 0, 0, 0)))

	base := time.Now().Add(-time.Minute)
	root := "r1"
	mid := "r2"
	require.NoError(t, repo.CreateRewrite(makeRewrite("r1", "p1", nil, base)))
	require.NoError(t, repo.CreateRewrite(makeRewrite("r2", "p1", &root, base.Add(time.Second))))
	require.NoError(t, repo.CreateRewrite(makeRewrite("r3", "p1", &mid, base.Add(2*time.Second))))
	require.NoError(t, repo.CreateRewrite(makeRewrite("r4", "p1", &root, base.Add(3*time.Second))))

	require.NoError(t, repo.DeleteRewrite("r2"))

	assert.Equal(t, 0, countRows(t, db, "rewrite_history", "id IN (?, ?)", "r2", "r3"))
	assert.Equal(t, 2, countRows(t, db, "rewrite_history", "project_id = ?", "p1"),
		"siblings outside the subtree survive")

	require.ErrorIs(t, repo.DeleteRewrite("r2"), ErrNotFound)
}

func TestRewriteMetadataRoundTrip(t *testing.T) {
	repo, _, cleanup := setupTestRepo(t)
	defer cleanup()

	require.NoError(t, repo.CreateProject(buildProject("p1", 0, 0, 0)))

	lang := "fr"
	entry := makeRewrite("r1", "p1", nil, time.Now())
	entry.RewriteType = models.RewriteTypeTranslate
	entry.TargetLanguage = &lang
	entry.Metadata = map[string]any{
		"model":       "local",
		"temperature": 0.7,
		"kept_terms":  []any{"nodio", "scene"},
	}
	require.NoError(t, repo.CreateRewrite(entry))

	got, err := repo.GetRewriteByID("r1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, models.RewriteTypeTranslate, got.RewriteType)
	require.NotNil(t, got.TargetLanguage)
	assert.Equal(t, "fr", *got.TargetLanguage)
	assert.Equal(t, entry.Metadata, got.Metadata)

	t.Run("nil metadata stays nil", func(t *testing.T) {
		require.NoError(t, repo.CreateRewrite(makeRewrite("r2", "p1", nil, time.Now())))
		got, err := repo.GetRewriteByID("r2")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Nil(t, got.Metadata)
	})
}

func TestCreateRewriteGuards(t *testing.T) {
	repo, _, cleanup := setupTestRepo(t)
	defer cleanup()

	require.NoError(t, repo.CreateProject(buildProject("p1", 0, 0, 0)))

	t.Run("self parent rejected", func(t *testing.T) {
		self := "r1"
		err := repo.CreateRewrite(makeRewrite("r1", "p1", &self, time.Now()))
		require.Error(t, err)
	})

	t.Run("unknown parent rejected", func(t *testing.T) {
		ghost := "ghost"
		err := repo.CreateRewrite(makeRewrite("r2", "p1", &ghost, time.Now()))
		require.Error(t, err, "foreign key enforcement")
	})

	missing, err := repo.GetRewriteByID("never")
	require.NoError(t, err)
	assert.Nil(t, missing)

	latest, err := repo.GetLatestRewrite("p1")
	require.NoError(t, err)
	assert.Nil(t, latest, "no entries yet")
}
