package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nodio/handlers"
	"nodio/models"
)

func TestSaveSummary(t *testing.T) {
	application, cleanup := setupTestDB(t)
	defer cleanup()

	fiberApp := setupTestApp()
	fiberApp.Get("/api/projects/:id/summary", handlers.GetSummary(application))
	fiberApp.Put("/api/projects/:id/summary", handlers.SaveSummary(application))

	project, err := application.ProjectService.Create(models.CreateProjectRequest{
		Title: "Kitchen tour",
	})
	require.NoError(t, err)

	t.Run("Unknown project", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/api/projects/ghost/summary",
			jsonBody(t, map[string]interface{}{"summary_text": "text"}))
		req.Header.Set("Content-Type", "application/json")
		resp, err := fiberApp.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("Missing summary text", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/api/projects/"+project.ID+"/summary",
			jsonBody(t, map[string]interface{}{}))
		req.Header.Set("Content-Type", "application/json")
		resp, err := fiberApp.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, decodeBody(t, resp)["error"], "Validation failed")
	})

	t.Run("Save then read back", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/api/projects/"+project.ID+"/summary",
			jsonBody(t, map[string]interface{}{"summary_text": "A short kitchen walkthrough."}))
		req.Header.Set("Content-Type", "application/json")
		resp, err := fiberApp.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		req = httptest.NewRequest(http.MethodGet, "/api/projects/"+project.ID+"/summary", nil)
		resp, err = fiberApp.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		summary := body["summary"].(map[string]interface{})
		assert.Equal(t, "A short kitchen walkthrough.", summary["summary_text"])
		assert.Equal(t, project.ID, summary["project_id"])
	})
}

func TestCreateRewrite(t *testing.T) {
	application, cleanup := setupTestDB(t)
	defer cleanup()

	fiberApp := setupTestApp()
	fiberApp.Post("/api/projects/:id/rewrites", handlers.CreateRewrite(application))

	project, err := application.ProjectService.Create(models.CreateProjectRequest{
		Title: "Script draft",
	})
	require.NoError(t, err)
	other, err := application.ProjectService.Create(models.CreateProjectRequest{
		Title: "Unrelated",
	})
	require.NoError(t, err)

	foreign, err := application.ContentService.CreateRewrite(other.ID, models.CreateRewriteRequest{
		TranscriptText: "foreign entry",
		RewriteType:    "manual",
	})
	require.NoError(t, err)

	tests := []struct {
		name           string
		projectID      string
		requestBody    map[string]interface{}
		expectedStatus int
		expectedError  string
	}{
		{
			name:      "Unknown rewrite type",
			projectID: project.ID,
			requestBody: map[string]interface{}{
				"transcript_text": "hello",
				"rewrite_type":    "paraphrase",
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Validation failed",
		},
		{
			name:      "Unknown project",
			projectID: "ghost",
			requestBody: map[string]interface{}{
				"transcript_text": "hello",
				"rewrite_type":    "manual",
			},
			expectedStatus: http.StatusNotFound,
			expectedError:  "Project not found",
		},
		{
			name:      "Parent from another project",
			projectID: project.ID,
			requestBody: map[string]interface{}{
				"transcript_text":   "hello",
				"rewrite_type":      "rewrite",
				"parent_rewrite_id": foreign.ID,
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Parent rewrite not found",
		},
		{
			name:      "Valid root entry",
			projectID: project.ID,
			requestBody: map[string]interface{}{
				"transcript_text": "first pass",
				"rewrite_type":    "rewrite",
				"target_language": "pt-BR",
			},
			expectedStatus: http.StatusCreated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost,
				"/api/projects/"+tt.projectID+"/rewrites", jsonBody(t, tt.requestBody))
			req.Header.Set("Content-Type", "application/json")
			resp, err := fiberApp.Test(req, -1)
			require.NoError(t, err)

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			body := decodeBody(t, resp)
			if tt.expectedError != "" {
				assert.Contains(t, body["error"], tt.expectedError)
			}
			if tt.expectedStatus == http.StatusCreated {
				rewrite := body["rewrite"].(map[string]interface{})
				assert.Equal(t, project.ID, rewrite["project_id"])
				assert.Equal(t, "rewrite", rewrite["rewrite_type"])
				assert.NotEmpty(t, rewrite["id"])
			}
		})
	}
}
