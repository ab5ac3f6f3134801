package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"nodio/app"
	"nodio/models"
	"nodio/services"
)

// GetTags retrieves all tags
func GetTags(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tags, err := a.TagService.List()
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch tags", err)
		}
		return success(c, fiber.Map{"tags": tags})
	}
}

// CreateTag creates a tag, or returns the existing one when the name is
// already taken under case-insensitive matching
func CreateTag(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.CreateTagRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}

		if err := a.Validator.Validate(&req); err != nil {
			return validationError(c, err)
		}

		tag, err := a.TagService.Create(req)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to create tag", err)
		}

		return created(c, fiber.Map{"tag": tag})
	}
}

// UpdateTag patches an existing tag
func UpdateTag(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tagID := c.Params("id")

		var req models.TagUpdate
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}

		if err := a.TagService.Update(tagID, req); err != nil {
			if errors.Is(err, services.ErrTagNotFound) {
				return notFound(c, "Tag not found")
			}
			return serverErrorWithDetails(c, "Failed to update tag", err)
		}

		return success(c, fiber.Map{"message": "Tag updated successfully"})
	}
}

// DeleteTag removes a tag and its project associations
func DeleteTag(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := a.TagService.Delete(c.Params("id")); err != nil {
			return serverErrorWithDetails(c, "Failed to delete tag", err)
		}
		return success(c, fiber.Map{"message": "Tag deleted successfully"})
	}
}
