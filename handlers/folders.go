package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"nodio/app"
	"nodio/models"
	"nodio/services"
)

// GetFolders retrieves the whole folder tree as a flat list
func GetFolders(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		folders, err := a.FolderService.List()
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch folders", err)
		}
		return success(c, fiber.Map{"folders": folders})
	}
}

// GetFolder retrieves one folder with its children and ancestor path
func GetFolder(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		folderID := c.Params("id")

		folder, err := a.FolderService.Get(folderID)
		if err != nil {
			if errors.Is(err, services.ErrFolderNotFound) {
				return notFound(c, "Folder not found")
			}
			return serverErrorWithDetails(c, "Failed to fetch folder", err)
		}

		children, err := a.FolderService.Children(folderID)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch folder children", err)
		}

		path, err := a.FolderService.Path(folderID)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch folder path", err)
		}

		return success(c, fiber.Map{
			"folder":   folder,
			"children": children,
			"path":     path,
		})
	}
}

// CreateFolder creates a new folder
func CreateFolder(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.CreateFolderRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}

		if err := a.Validator.Validate(&req); err != nil {
			return validationError(c, err)
		}

		folder, err := a.FolderService.Create(req)
		if err != nil {
			if errors.Is(err, services.ErrFolderNotFound) {
				return badRequest(c, "Parent folder not found")
			}
			return serverErrorWithDetails(c, "Failed to create folder", err)
		}

		return created(c, fiber.Map{"folder": folder})
	}
}

// UpdateFolder patches an existing folder
func UpdateFolder(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		folderID := c.Params("id")

		var req models.UpdateFolderRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}

		if err := a.Validator.Validate(&req); err != nil {
			return validationError(c, err)
		}

		if err := a.FolderService.Update(folderID, req); err != nil {
			switch {
			case errors.Is(err, services.ErrFolderNotFound):
				return notFound(c, "Folder not found")
			case errors.Is(err, services.ErrFolderProtected):
				return badRequest(c, "The All Projects folder cannot be modified")
			case errors.Is(err, services.ErrFolderCycle):
				return badRequest(c, "A folder cannot be moved under its own descendant")
			}
			return serverErrorWithDetails(c, "Failed to update folder", err)
		}

		return success(c, fiber.Map{"message": "Folder updated successfully"})
	}
}

// DeleteFolder deletes a folder subtree. The projects query parameter
// must be "reassign" or "delete"; there is no default.
func DeleteFolder(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		folderID := c.Params("id")

		disposition := models.ProjectDisposition(c.Query("projects"))
		if disposition != models.ReassignProjects && disposition != models.DeleteProjects {
			return badRequest(c, "projects query parameter must be 'reassign' or 'delete'")
		}

		if err := a.FolderService.Delete(folderID, disposition); err != nil {
			switch {
			case errors.Is(err, services.ErrFolderNotFound):
				return notFound(c, "Folder not found")
			case errors.Is(err, services.ErrFolderProtected):
				return badRequest(c, "The All Projects folder cannot be deleted")
			}
			return serverErrorWithDetails(c, "Failed to delete folder", err)
		}

		return success(c, fiber.Map{"message": "Folder deleted successfully"})
	}
}
