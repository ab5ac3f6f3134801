package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nodio/models"
)

func TestSummaryUpsertIsSingleton(t *testing.T) {
	repo, db, cleanup := setupTestRepo(t)
	defer cleanup()

	require.NoError(t, repo.CreateProject(buildProject("p1", 0, 0, 0)))

	require.NoError(t, repo.UpsertProjectSummary("p1", "first draft"))
	first, err := repo.GetProjectSummary("p1")
	require.NoError(t, err)
	require.NotNil(t, first)

	time.Sleep(5 * time.Millisecond)
	require.NoError(t, repo.UpsertProjectSummary("p1", "second draft"))

	assert.Equal(t, 1, countRows(t, db, "project_summaries", "project_id = ?", "p1"))

	second, err := repo.GetProjectSummary("p1")
	require.NoError(t, err)
	require.NotNil(t, second)
	assert.Equal(t, "second draft", second.SummaryText)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.CreatedAt, second.CreatedAt, "created_at kept from first write")
	assert.True(t, second.UpdatedAt.After(second.CreatedAt))
}

func TestSummaryLifecycle(t *testing.T) {
	repo, _, cleanup := setupTestRepo(t)
	defer cleanup()

	require.NoError(t, repo.CreateProject(buildProject("p1", 0, 0, 0)))

	got, err := repo.GetProjectSummary("p1")
	require.NoError(t, err)
	assert.Nil(t, got, "no summary yet")

	require.NoError(t, repo.UpsertProjectSummary("p1", "the gist"))
	got, err = repo.GetProjectSummary("p1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "summary-p1", got.ID)

	require.NoError(t, repo.DeleteProjectSummary("p1"))
	got, err = repo.GetProjectSummary("p1")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, repo.DeleteProjectSummary("p1"), "absent delete is a no-op")
}

func TestBulletPointsUpsert(t *testing.T) {
	repo, db, cleanup := setupTestRepo(t)
	defer cleanup()

	require.NoError(t, repo.CreateProject(buildProject("p1", 0, 0, 0)))

	require.NoError(t, repo.UpsertBulletPoints("p1", "- one\n- two"))
	require.NoError(t, repo.UpsertBulletPoints("p1", "- one\n- two\n- three"))
	assert.Equal(t, 1, countRows(t, db, "audio_bullet_points", "project_id = ?", "p1"))

	got, err := repo.GetBulletPoints("p1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "- one\n- two\n- three", got.Text)
	assert.Equal(t, "bullets-p1", got.ID)
}

func TestMindMapUpsert(t *testing.T) {
	repo, db, cleanup := setupTestRepo(t)
	defer cleanup()

	require.NoError(t, repo.CreateProject(buildProject("p1", 0, 0, 0)))

	require.NoError(t, repo.UpsertMindMap("p1", `{"root":"Ideas"}`, "", models.MindMapFormatText))
	require.NoError(t, repo.UpsertMindMap(
		"p1", `{"root":"Ideas","children":[]}`,
		"file:///maps/p1.png", models.MindMapFormatImage,
	))

	assert.Equal(t, 1, countRows(t, db, "mind_maps", "project_id = ?", "p1"))

	got, err := repo.GetMindMap("p1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, `{"root":"Ideas","children":[]}`, got.Data)
	assert.Equal(t, "file:///maps/p1.png", got.ImageURI)
	assert.Equal(t, models.MindMapFormatImage, got.Format)
}

func TestJournalEntryUpsert(t *testing.T) {
	repo, db, cleanup := setupTestRepo(t)
	defer cleanup()

	require.NoError(t, repo.CreateProject(buildProject("p1", 0, 0, 0)))

	require.NoError(t, repo.UpsertJournalEntry("p1", "started recording today"))
	require.NoError(t, repo.UpsertJournalEntry("p1", "finished the first cut"))
	assert.Equal(t, 1, countRows(t, db, "journal_entries", "project_id = ?", "p1"))

	got, err := repo.GetJournalEntry("p1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "finished the first cut", got.EntryText)
}

func TestSingletonsRequireProject(t *testing.T) {
	repo, _, cleanup := setupTestRepo(t)
	defer cleanup()

	err := repo.UpsertProjectSummary("ghost", "orphan")
	require.Error(t, err, "foreign key enforcement rejects orphan rows")
}
