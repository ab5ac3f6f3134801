package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"nodio/app"
	"nodio/models"
	"nodio/services"
)

// GetProjects lists projects. Optional query parameters narrow the result:
// q searches title and transcript, folder filters by folder id ("unfiled"
// selects projects with no folder), tag filters by tag id.
func GetProjects(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var (
			projects []models.Project
			err      error
		)

		switch {
		case c.Query("q") != "":
			projects, err = a.ProjectService.Search(c.Query("q"))
		case c.Query("folder") == "unfiled":
			projects, err = a.ProjectService.ListByFolder(nil)
		case c.Query("folder") != "":
			folderID := c.Query("folder")
			projects, err = a.ProjectService.ListByFolder(&folderID)
		case c.Query("tag") != "":
			projects, err = a.ProjectService.ListByTag(c.Query("tag"))
		default:
			projects, err = a.ProjectService.List()
		}
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch projects", err)
		}

		return success(c, fiber.Map{"projects": projects})
	}
}

// GetProject retrieves one fully hydrated project
func GetProject(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		project, err := a.ProjectService.Get(c.Params("id"))
		if err != nil {
			if errors.Is(err, services.ErrProjectNotFound) {
				return notFound(c, "Project not found")
			}
			return serverErrorWithDetails(c, "Failed to fetch project", err)
		}
		return success(c, fiber.Map{"project": project})
	}
}

// CreateProject creates a project with its full video tree
func CreateProject(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.CreateProjectRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}

		if err := a.Validator.Validate(&req); err != nil {
			return validationError(c, err)
		}

		project, err := a.ProjectService.Create(req)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to create project", err)
		}

		return created(c, fiber.Map{"project": project})
	}
}

// UpdateProject patches project fields
func UpdateProject(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.ProjectUpdate
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}

		if err := a.ProjectService.Update(c.Params("id"), req); err != nil {
			if errors.Is(err, services.ErrProjectNotFound) {
				return notFound(c, "Project not found")
			}
			return serverErrorWithDetails(c, "Failed to update project", err)
		}

		return success(c, fiber.Map{"message": "Project updated successfully"})
	}
}

// UpdateTranscript replaces the project transcript
func UpdateTranscript(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req struct {
			Transcript string `json:"transcript"`
		}
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}

		if err := a.ProjectService.UpdateTranscript(c.Params("id"), req.Transcript); err != nil {
			if errors.Is(err, services.ErrProjectNotFound) {
				return notFound(c, "Project not found")
			}
			return serverErrorWithDetails(c, "Failed to update transcript", err)
		}

		return success(c, fiber.Map{"message": "Transcript updated successfully"})
	}
}

// RenameProject replaces the project title
func RenameProject(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req struct {
			Title string `json:"title" validate:"required,min=1,max=200"`
		}
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}

		if err := a.Validator.Validate(&req); err != nil {
			return validationError(c, err)
		}

		if err := a.ProjectService.Rename(c.Params("id"), req.Title); err != nil {
			if errors.Is(err, services.ErrProjectNotFound) {
				return notFound(c, "Project not found")
			}
			return serverErrorWithDetails(c, "Failed to rename project", err)
		}

		return success(c, fiber.Map{"message": "Project renamed successfully"})
	}
}

// MoveProject reassigns the project to a folder; null folder_id means unfiled
func MoveProject(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req struct {
			FolderID *string `json:"folder_id"`
		}
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}

		if err := a.ProjectService.Move(c.Params("id"), req.FolderID); err != nil {
			if errors.Is(err, services.ErrProjectNotFound) {
				return notFound(c, "Project not found")
			}
			return serverErrorWithDetails(c, "Failed to move project", err)
		}

		return success(c, fiber.Map{"message": "Project moved successfully"})
	}
}

// AddProjectTags attaches tags by name, creating unknown ones
func AddProjectTags(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req struct {
			Tags []string `json:"tags"`
		}
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
		if len(req.Tags) == 0 {
			return badRequest(c, "tags is required")
		}

		if err := a.ProjectService.AddTags(c.Params("id"), req.Tags); err != nil {
			if errors.Is(err, services.ErrProjectNotFound) {
				return notFound(c, "Project not found")
			}
			return serverErrorWithDetails(c, "Failed to add tags", err)
		}

		return success(c, fiber.Map{"message": "Tags added successfully"})
	}
}

// RemoveProjectTag detaches one tag from the project
func RemoveProjectTag(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := a.ProjectService.RemoveTag(c.Params("id"), c.Params("tagId")); err != nil {
			if errors.Is(err, services.ErrProjectNotFound) {
				return notFound(c, "Project tag not found")
			}
			return serverErrorWithDetails(c, "Failed to remove tag", err)
		}
		return success(c, fiber.Map{"message": "Tag removed successfully"})
	}
}

// DeleteProject removes the project and everything it owns
func DeleteProject(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := a.ProjectService.Delete(c.Params("id")); err != nil {
			if errors.Is(err, services.ErrProjectNotFound) {
				return notFound(c, "Project not found")
			}
			return serverErrorWithDetails(c, "Failed to delete project", err)
		}
		return success(c, fiber.Map{"message": "Project deleted successfully"})
	}
}

// ==================== VIDEOS & SCENES ====================

// GetVideo retrieves a video with its ordered scenes and images
func GetVideo(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		video, err := a.ProjectService.GetVideo(c.Params("id"))
		if err != nil {
			if errors.Is(err, services.ErrVideoNotFound) {
				return notFound(c, "Video not found")
			}
			return serverErrorWithDetails(c, "Failed to fetch video", err)
		}
		return success(c, fiber.Map{"video": video})
	}
}

// CreateVideo adds a video to a project
func CreateVideo(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.CreateVideoRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}

		if err := a.Validator.Validate(&req); err != nil {
			return validationError(c, err)
		}

		video, err := a.ProjectService.AddVideo(c.Params("id"), req)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to create video", err)
		}

		return created(c, fiber.Map{"video": video})
	}
}

// RenameVideo replaces the video title
func RenameVideo(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req struct {
			Title string `json:"title"`
		}
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}

		if err := a.ProjectService.RenameVideo(c.Params("id"), req.Title); err != nil {
			if errors.Is(err, services.ErrVideoNotFound) {
				return notFound(c, "Video not found")
			}
			return serverErrorWithDetails(c, "Failed to update video", err)
		}

		return success(c, fiber.Map{"message": "Video updated successfully"})
	}
}

// ReplaceScenes swaps the video's entire scene collection; request order
// becomes the stored order
func ReplaceScenes(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req struct {
			Scenes []models.CreateSceneRequest `json:"scenes" validate:"dive"`
		}
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}

		if err := a.Validator.Validate(&req); err != nil {
			return validationError(c, err)
		}

		scenes, err := a.ProjectService.ReplaceScenes(c.Params("id"), req.Scenes)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to replace scenes", err)
		}

		return success(c, fiber.Map{"scenes": scenes})
	}
}

// DeleteVideo removes a video and its scenes
func DeleteVideo(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := a.ProjectService.DeleteVideo(c.Params("id")); err != nil {
			if errors.Is(err, services.ErrVideoNotFound) {
				return notFound(c, "Video not found")
			}
			return serverErrorWithDetails(c, "Failed to delete video", err)
		}
		return success(c, fiber.Map{"message": "Video deleted successfully"})
	}
}

// UpdateScene patches a scene; a non-null images array replaces the
// scene's whole image collection
func UpdateScene(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.SceneUpdate
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}

		if err := a.ProjectService.UpdateScene(c.Params("id"), req); err != nil {
			if errors.Is(err, services.ErrSceneNotFound) {
				return notFound(c, "Scene not found")
			}
			return serverErrorWithDetails(c, "Failed to update scene", err)
		}

		return success(c, fiber.Map{"message": "Scene updated successfully"})
	}
}

// DeleteScene removes one scene and its images
func DeleteScene(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := a.ProjectService.DeleteScene(c.Params("id")); err != nil {
			if errors.Is(err, services.ErrSceneNotFound) {
				return notFound(c, "Scene not found")
			}
			return serverErrorWithDetails(c, "Failed to delete scene", err)
		}
		return success(c, fiber.Map{"message": "Scene deleted successfully"})
	}
}

// GetSceneImages retrieves a scene's images in order
func GetSceneImages(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		images, err := a.ProjectService.SceneImages(c.Params("id"))
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch scene images", err)
		}
		return success(c, fiber.Map{"images": images})
	}
}

// UpdateSceneImage patches one scene image
func UpdateSceneImage(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.SceneImageUpdate
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}

		if err := a.ProjectService.UpdateSceneImage(c.Params("id"), req); err != nil {
			if errors.Is(err, services.ErrSceneNotFound) {
				return notFound(c, "Scene image not found")
			}
			return serverErrorWithDetails(c, "Failed to update scene image", err)
		}

		return success(c, fiber.Map{"message": "Scene image updated successfully"})
	}
}

// DeleteSceneImage removes one scene image
func DeleteSceneImage(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := a.ProjectService.DeleteSceneImage(c.Params("id")); err != nil {
			if errors.Is(err, services.ErrSceneNotFound) {
				return notFound(c, "Scene image not found")
			}
			return serverErrorWithDetails(c, "Failed to delete scene image", err)
		}
		return success(c, fiber.Map{"message": "Scene image deleted successfully"})
	}
}
