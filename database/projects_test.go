package database

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nodio/models"
)

func buildProject(id string, videos, scenesPerVideo, imagesPerScene int) *models.Project {
	now := time.Now()
	project := &models.Project{
		ID:       id,
		Title:    "Project " + id,
		AudioURI: "file:///audio/" + id + ".m4a",
		Date:     now,
		CreatedAt: now,
		UpdatedAt: now,
	}

	for v := 0; v < videos; v++ {
		video := models.Video{
			ID:        fmt.Sprintf("%s-video-%d", id, v),
			ProjectID: id,
			CreatedAt: now,
			UpdatedAt: now,
		}
		for s := 0; s < scenesPerVideo; s++ {
			scene := models.Scene{
				ID:          fmt.Sprintf("%s-scene-%d", video.ID, s),
				Description: fmt.Sprintf("scene %d", s),
				Duration:    4000,
			}
			for i := 0; i < imagesPerScene; i++ {
				scene.Images = append(scene.Images, models.SceneImage{
					ID:          fmt.Sprintf("%s-img-%d", scene.ID, i),
					ImagePrompt: fmt.Sprintf("prompt %d", i),
				})
			}
			video.Scenes = append(video.Scenes, scene)
		}
		project.Videos = append(project.Videos, video)
	}
	return project
}

func TestCreateProjectAggregate(t *testing.T) {
	repo, db, cleanup := setupTestRepo(t)
	defer cleanup()

	t.Run("writes the full graph", func(t *testing.T) {
		project := buildProject("p1", 2, 2, 2)
		require.NoError(t, repo.CreateProject(project))

		assert.Equal(t, 1, countRows(t, db, "projects", "id = ?", "p1"))
		assert.Equal(t, 2, countRows(t, db, "videos", "project_id = ?", "p1"))
		assert.Equal(t, 4, countRows(t, db, "scenes", ""))
		assert.Equal(t, 8, countRows(t, db, "scene_images", ""))

		got, err := repo.GetProjectByID("p1")
		require.NoError(t, err)
		require.NotNil(t, got)
		require.Len(t, got.Videos, 2)
		require.Len(t, got.Videos[0].Scenes, 2)
		require.Len(t, got.Videos[0].Scenes[0].Images, 2)
	})

	t.Run("is atomic when a late insert fails", func(t *testing.T) {
		project := buildProject("p2", 2, 2, 2)
		// Duplicate the very first image id onto the very last image so the
		// final insert in the chain violates the primary key
		lastVideo := &project.Videos[1]
		lastScene := &lastVideo.Scenes[1]
		lastScene.Images[1].ID = project.Videos[0].Scenes[0].Images[0].ID

		err := repo.CreateProject(project)
		require.Error(t, err)

		assert.Equal(t, 0, countRows(t, db, "projects", "id = ?", "p2"))
		assert.Equal(t, 0, countRows(t, db, "videos", "project_id = ?", "p2"))
		assert.Equal(t, 0, countRows(t, db, "scenes", "id LIKE ?", "p2-%"))
		assert.Equal(t, 0, countRows(t, db, "scene_images", "id LIKE ?", "p2-%"))
	})
}

func TestDeleteProjectCascades(t *testing.T) {
	repo, db, cleanup := setupTestRepo(t)
	defer cleanup()

	project := buildProject("p1", 1, 3, 1)
	require.NoError(t, repo.CreateProject(project))

	require.NoError(t, repo.UpsertProjectSummary("p1", "a summary"))
	require.NoError(t, repo.CreateRewrite(&models.RewriteHistoryEntry{
		ID:             "rw1",
		ProjectID:      "p1",
		TranscriptText: "text",
		RewriteType:    models.RewriteTypeRewrite,
		CreatedAt:      time.Now(),
	}))
	require.NoError(t, repo.CreateTranslation(&models.Translation{
		ID:             "tr1",
		ProjectID:      "p1",
		SourceText:     "hello",
		TranslatedText: "hola",
		TargetLanguage: "es",
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}))

	require.NoError(t, repo.DeleteProject("p1"))

	for _, table := range []string{
		"videos", "translations", "rewrite_history", "project_summaries", "project_tags",
	} {
		assert.Equal(t, 0, countRows(t, db, table, "project_id = ?", "p1"), table)
	}
	assert.Equal(t, 0, countRows(t, db, "scenes", ""))
	assert.Equal(t, 0, countRows(t, db, "scene_images", ""))
}

func TestUpdateProjectPatchSemantics(t *testing.T) {
	repo, _, cleanup := setupTestRepo(t)
	defer cleanup()

	project := buildProject("p1", 0, 0, 0)
	project.Transcript = "original transcript"
	require.NoError(t, repo.CreateProject(project))

	newTitle := "Retitled"
	require.NoError(t, repo.UpdateProject("p1", models.ProjectUpdate{Title: &newTitle}))

	got, err := repo.GetProjectByID("p1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Retitled", got.Title)
	// Fields absent from the patch are untouched
	assert.Equal(t, "original transcript", got.Transcript)
	assert.True(t, got.UpdatedAt.After(got.CreatedAt) || got.UpdatedAt.Equal(got.CreatedAt))

	t.Run("missing project fails with not-found", func(t *testing.T) {
		err := repo.UpdateProject("nope", models.ProjectUpdate{Title: &newTitle})
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestProjectFolderAndTagLookups(t *testing.T) {
	repo, _, cleanup := setupTestRepo(t)
	defer cleanup()

	now := time.Now()
	require.NoError(t, repo.CreateFolder(&models.Folder{
		ID: "f1", Name: "Ideas", CreatedAt: now, UpdatedAt: now,
	}))
	tag := &models.Tag{ID: "t1", Name: "Work", Color: "blue", CreatedAt: now}
	require.NoError(t, repo.CreateTag(tag))

	project := buildProject("p1", 0, 0, 0)
	folderID := "f1"
	project.FolderID = &folderID
	project.Tags = []string{"t1"}
	require.NoError(t, repo.CreateProject(project))

	unfiled := buildProject("p2", 0, 0, 0)
	require.NoError(t, repo.CreateProject(unfiled))

	t.Run("by folder", func(t *testing.T) {
		filed, err := repo.GetProjectsByFolder(&folderID)
		require.NoError(t, err)
		require.Len(t, filed, 1)
		assert.Equal(t, "p1", filed[0].ID)

		loose, err := repo.GetProjectsByFolder(nil)
		require.NoError(t, err)
		require.Len(t, loose, 1)
		assert.Equal(t, "p2", loose[0].ID)
	})

	t.Run("by tag", func(t *testing.T) {
		tagged, err := repo.GetProjectsByTag("t1")
		require.NoError(t, err)
		require.Len(t, tagged, 1)
		assert.Equal(t, "p1", tagged[0].ID)
		assert.Equal(t, []string{"t1"}, tagged[0].Tags)
	})

	t.Run("move to unfiled", func(t *testing.T) {
		require.NoError(t, repo.MoveProjectToFolder("p1", nil))
		got, err := repo.GetProjectByID("p1")
		require.NoError(t, err)
		assert.Nil(t, got.FolderID)
	})

	t.Run("add and remove tags", func(t *testing.T) {
		require.NoError(t, repo.AddProjectTags("p2", []string{"t1"}))
		// Adding the same tag twice is a no-op
		require.NoError(t, repo.AddProjectTags("p2", []string{"t1"}))

		got, err := repo.GetProjectByID("p2")
		require.NoError(t, err)
		assert.Equal(t, []string{"t1"}, got.Tags)

		require.NoError(t, repo.RemoveProjectTag("p2", "t1"))
		got, err = repo.GetProjectByID("p2")
		require.NoError(t, err)
		assert.Empty(t, got.Tags)
	})
}

func TestSearchProjects(t *testing.T) {
	repo, _, cleanup := setupTestRepo(t)
	defer cleanup()

	a := buildProject("p1", 0, 0, 0)
	a.Title = "Morning Standup"
	a.Transcript = "we discussed the roadmap"
	require.NoError(t, repo.CreateProject(a))

	b := buildProject("p2", 0, 0, 0)
	b.Title = "Grocery List"
	b.Transcript = "eggs and milk"
	require.NoError(t, repo.CreateProject(b))

	results, err := repo.SearchProjects("ROADMAP")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "p1", results[0].ID)

	results, err = repo.SearchProjects("nothing matches this")
	require.NoError(t, err)
	assert.Empty(t, results)
}
