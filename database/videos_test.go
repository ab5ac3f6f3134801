package database

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nodio/models"
)

func makeScene(id, description string, imageCount int) models.Scene {
	scene := models.Scene{ID: id, Description: description, Duration: 2500}
	for i := 0; i < imageCount; i++ {
		scene.Images = append(scene.Images, models.SceneImage{
			ID:          fmt.Sprintf("%s-img-%d", id, i),
			ImagePrompt: "prompt for " + id,
		})
	}
	return scene
}

func TestReplaceScenes(t *testing.T) {
	repo, db, cleanup := setupTestRepo(t)
	defer cleanup()

	require.NoError(t, repo.CreateProject(buildProject("p1", 0, 0, 0)))

	now := time.Now()
	video := &models.Video{
		ID:        "v1",
		ProjectID: "p1",
		Title:     "Cut one",
		Scenes: []models.Scene{
			makeScene("sA", "opening", 2),
			makeScene("sB", "middle", 1),
			makeScene("sC", "closing", 2),
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, repo.CreateVideo(video))

	// Reorder and drop: C moves first, B is removed entirely
	require.NoError(t, repo.ReplaceScenes("v1", []models.Scene{
		makeScene("sC", "closing", 2),
		makeScene("sA", "opening", 2),
	}))

	scenes, err := repo.GetScenesByVideo("v1")
	require.NoError(t, err)
	require.Len(t, scenes, 2)
	assert.Equal(t, "sC", scenes[0].ID, "read order follows slice order at write")
	assert.Equal(t, "sA", scenes[1].ID)

	assert.Equal(t, 0, countRows(t, db, "scenes", "id = ?", "sB"))
	assert.Equal(t, 0, countRows(t, db, "scene_images", "scene_id = ?", "sB"),
		"dropped scene takes its images with it")

	t.Run("empty slice clears the video", func(t *testing.T) {
		require.NoError(t, repo.ReplaceScenes("v1", nil))
		scenes, err := repo.GetScenesByVideo("v1")
		require.NoError(t, err)
		assert.Empty(t, scenes)
		assert.Equal(t, 0, countRows(t, db, "scene_images", ""))
	})
}

func TestSceneDefaultDuration(t *testing.T) {
	repo, _, cleanup := setupTestRepo(t)
	defer cleanup()

	require.NoError(t, repo.CreateProject(buildProject("p1", 0, 0, 0)))

	now := time.Now()
	require.NoError(t, repo.CreateVideo(&models.Video{
		ID:        "v1",
		ProjectID: "p1",
		Scenes:    []models.Scene{{ID: "s1", Description: "no duration given"}},
		CreatedAt: now,
		UpdatedAt: now,
	}))

	scenes, err := repo.GetScenesByVideo("v1")
	require.NoError(t, err)
	require.Len(t, scenes, 1)
	assert.Equal(t, models.DefaultSceneDuration, scenes[0].Duration)
}

func TestUpdateScene(t *testing.T) {
	repo, _, cleanup := setupTestRepo(t)
	defer cleanup()

	require.NoError(t, repo.CreateProject(buildProject("p1", 0, 0, 0)))
	now := time.Now()
	require.NoError(t, repo.CreateVideo(&models.Video{
		ID:        "v1",
		ProjectID: "p1",
		Scenes:    []models.Scene{makeScene("s1", "original", 2)},
		CreatedAt: now,
		UpdatedAt: now,
	}))

	t.Run("patches fields without touching images", func(t *testing.T) {
		description := "revised"
		duration := 4000
		require.NoError(t, repo.UpdateScene("s1", models.SceneUpdate{
			Description: &description,
			Duration:    &duration,
		}))

		scenes, err := repo.GetScenesByVideo("v1")
		require.NoError(t, err)
		require.Len(t, scenes, 1)
		assert.Equal(t, "revised", scenes[0].Description)
		assert.Equal(t, 4000, scenes[0].Duration)
		assert.Len(t, scenes[0].Images, 2)
	})

	t.Run("replaces the image collection when given", func(t *testing.T) {
		require.NoError(t, repo.UpdateScene("s1", models.SceneUpdate{
			Images: []models.SceneImage{{ID: "fresh", ImagePrompt: "new look"}},
		}))

		images, err := repo.GetSceneImages("s1")
		require.NoError(t, err)
		require.Len(t, images, 1)
		assert.Equal(t, "fresh", images[0].ID)
		assert.Equal(t, 0, images[0].SequenceOrder)
	})

	t.Run("missing scene", func(t *testing.T) {
		description := "nope"
		err := repo.UpdateScene("ghost", models.SceneUpdate{Description: &description})
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestVideoLifecycle(t *testing.T) {
	repo, db, cleanup := setupTestRepo(t)
	defer cleanup()

	require.NoError(t, repo.CreateProject(buildProject("p1", 0, 0, 0)))
	now := time.Now()
	require.NoError(t, repo.CreateVideo(&models.Video{
		ID:        "v1",
		ProjectID: "p1",
		Title:     "Draft",
		Scenes:    []models.Scene{makeScene("s1", "only scene", 1)},
		CreatedAt: now,
		UpdatedAt: now,
	}))

	title := "Final"
	require.NoError(t, repo.UpdateVideo("v1", &title))
	got, err := repo.GetVideoByID("v1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Final", got.Title)
	assert.Len(t, got.Scenes, 1)

	require.NoError(t, repo.DeleteVideo("v1"))
	assert.Equal(t, 0, countRows(t, db, "scenes", "video_id = ?", "v1"))
	assert.Equal(t, 0, countRows(t, db, "scene_images", ""))

	require.ErrorIs(t, repo.DeleteVideo("v1"), ErrNotFound)
}

func TestSceneImageOperations(t *testing.T) {
	repo, db, cleanup := setupTestRepo(t)
	defer cleanup()

	require.NoError(t, repo.CreateProject(buildProject("p1", 0, 0, 0)))
	now := time.Now()
	require.NoError(t, repo.CreateVideo(&models.Video{
		ID:        "v1",
		ProjectID: "p1",
		Scenes:    []models.Scene{makeScene("s1", "scene", 2)},
		CreatedAt: now,
		UpdatedAt: now,
	}))

	url := "https://cdn.example.com/rendered.png"
	require.NoError(t, repo.UpdateSceneImage("s1-img-0", models.SceneImageUpdate{ImageURL: &url}))

	images, err := repo.GetSceneImages("s1")
	require.NoError(t, err)
	require.Len(t, images, 2)
	assert.Equal(t, url, images[0].ImageURL)
	assert.Equal(t, "prompt for s1", images[0].ImagePrompt, "unpatched field kept")

	require.NoError(t, repo.DeleteSceneImage("s1-img-1"))
	assert.Equal(t, 1, countRows(t, db, "scene_images", "scene_id = ?", "s1"))

	require.ErrorIs(t, repo.DeleteSceneImage("s1-img-1"), ErrNotFound)
}
