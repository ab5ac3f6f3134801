package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"nodio/app"
	"nodio/models"
	"nodio/services"
)

// ==================== SINGLETONS ====================

// GetSummary retrieves the project summary, if any
func GetSummary(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		summary, err := a.ContentService.GetSummary(c.Params("id"))
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch summary", err)
		}
		return success(c, fiber.Map{"summary": summary})
	}
}

// SaveSummary creates or replaces the project summary
func SaveSummary(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req struct {
			SummaryText string `json:"summary_text" validate:"required"`
		}
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
		if err := a.Validator.Validate(&req); err != nil {
			return validationError(c, err)
		}

		summary, err := a.ContentService.SaveSummary(c.Params("id"), req.SummaryText)
		if err != nil {
			if errors.Is(err, services.ErrProjectNotFound) {
				return notFound(c, "Project not found")
			}
			return serverErrorWithDetails(c, "Failed to save summary", err)
		}

		return success(c, fiber.Map{"summary": summary})
	}
}

// DeleteSummary removes the project summary
func DeleteSummary(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := a.ContentService.DeleteSummary(c.Params("id")); err != nil {
			return serverErrorWithDetails(c, "Failed to delete summary", err)
		}
		return success(c, fiber.Map{"message": "Summary deleted successfully"})
	}
}

// GetBulletPoints retrieves the project bullet points, if any
func GetBulletPoints(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		bullets, err := a.ContentService.GetBulletPoints(c.Params("id"))
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch bullet points", err)
		}
		return success(c, fiber.Map{"bullet_points": bullets})
	}
}

// SaveBulletPoints creates or replaces the project bullet points
func SaveBulletPoints(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req struct {
			Text string `json:"bullet_points_text" validate:"required"`
		}
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
		if err := a.Validator.Validate(&req); err != nil {
			return validationError(c, err)
		}

		bullets, err := a.ContentService.SaveBulletPoints(c.Params("id"), req.Text)
		if err != nil {
			if errors.Is(err, services.ErrProjectNotFound) {
				return notFound(c, "Project not found")
			}
			return serverErrorWithDetails(c, "Failed to save bullet points", err)
		}

		return success(c, fiber.Map{"bullet_points": bullets})
	}
}

// DeleteBulletPoints removes the project bullet points
func DeleteBulletPoints(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := a.ContentService.DeleteBulletPoints(c.Params("id")); err != nil {
			return serverErrorWithDetails(c, "Failed to delete bullet points", err)
		}
		return success(c, fiber.Map{"message": "Bullet points deleted successfully"})
	}
}

// GetMindMap retrieves the project mind map, if any
func GetMindMap(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		mindMap, err := a.ContentService.GetMindMap(c.Params("id"))
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch mind map", err)
		}
		return success(c, fiber.Map{"mind_map": mindMap})
	}
}

// SaveMindMap creates or replaces the project mind map
func SaveMindMap(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.UpsertMindMapRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
		if err := a.Validator.Validate(&req); err != nil {
			return validationError(c, err)
		}

		mindMap, err := a.ContentService.SaveMindMap(c.Params("id"), req)
		if err != nil {
			if errors.Is(err, services.ErrProjectNotFound) {
				return notFound(c, "Project not found")
			}
			return serverErrorWithDetails(c, "Failed to save mind map", err)
		}

		return success(c, fiber.Map{"mind_map": mindMap})
	}
}

// DeleteMindMap removes the project mind map
func DeleteMindMap(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := a.ContentService.DeleteMindMap(c.Params("id")); err != nil {
			return serverErrorWithDetails(c, "Failed to delete mind map", err)
		}
		return success(c, fiber.Map{"message": "Mind map deleted successfully"})
	}
}

// GetJournalEntry retrieves the project journal entry, if any
func GetJournalEntry(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		entry, err := a.ContentService.GetJournalEntry(c.Params("id"))
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch journal entry", err)
		}
		return success(c, fiber.Map{"journal_entry": entry})
	}
}

// SaveJournalEntry creates or replaces the project journal entry
func SaveJournalEntry(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req struct {
			EntryText string `json:"entry_text" validate:"required"`
		}
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
		if err := a.Validator.Validate(&req); err != nil {
			return validationError(c, err)
		}

		entry, err := a.ContentService.SaveJournalEntry(c.Params("id"), req.EntryText)
		if err != nil {
			if errors.Is(err, services.ErrProjectNotFound) {
				return notFound(c, "Project not found")
			}
			return serverErrorWithDetails(c, "Failed to save journal entry", err)
		}

		return success(c, fiber.Map{"journal_entry": entry})
	}
}

// DeleteJournalEntry removes the project journal entry
func DeleteJournalEntry(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := a.ContentService.DeleteJournalEntry(c.Params("id")); err != nil {
			return serverErrorWithDetails(c, "Failed to delete journal entry", err)
		}
		return success(c, fiber.Map{"message": "Journal entry deleted successfully"})
	}
}

// ==================== REWRITE HISTORY ====================

// CreateRewrite appends one entry to the project's rewrite history
func CreateRewrite(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.CreateRewriteRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
		if err := a.Validator.Validate(&req); err != nil {
			return validationError(c, err)
		}

		entry, err := a.ContentService.CreateRewrite(c.Params("id"), req)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrProjectNotFound):
				return notFound(c, "Project not found")
			case errors.Is(err, services.ErrRewriteNotFound):
				return badRequest(c, "Parent rewrite not found in this project")
			}
			return serverErrorWithDetails(c, "Failed to create rewrite", err)
		}

		return created(c, fiber.Map{"rewrite": entry})
	}
}

// GetHistoryTree retrieves the full rewrite forest, oldest first
func GetHistoryTree(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tree, err := a.ContentService.HistoryTree(c.Params("id"))
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch rewrite history", err)
		}
		return success(c, fiber.Map{"history": tree})
	}
}

// GetLatestRewrite retrieves the most recent entry
func GetLatestRewrite(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		entry, err := a.ContentService.LatestRewrite(c.Params("id"))
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch latest rewrite", err)
		}
		return success(c, fiber.Map{"rewrite": entry})
	}
}

// DeleteRewrite removes an entry and its whole subtree
func DeleteRewrite(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := a.ContentService.DeleteRewrite(c.Params("id")); err != nil {
			if errors.Is(err, services.ErrRewriteNotFound) {
				return notFound(c, "Rewrite not found")
			}
			return serverErrorWithDetails(c, "Failed to delete rewrite", err)
		}
		return success(c, fiber.Map{"message": "Rewrite deleted successfully"})
	}
}

// ==================== TRANSLATIONS ====================

// CreateTranslation records a new translation of the project
func CreateTranslation(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.CreateTranslationRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
		if err := a.Validator.Validate(&req); err != nil {
			return validationError(c, err)
		}

		translation, err := a.ContentService.CreateTranslation(c.Params("id"), req)
		if err != nil {
			if errors.Is(err, services.ErrProjectNotFound) {
				return notFound(c, "Project not found")
			}
			return serverErrorWithDetails(c, "Failed to create translation", err)
		}

		return created(c, fiber.Map{"translation": translation})
	}
}

// GetTranslations lists translations; an optional lang query parameter
// narrows to the newest translation into that language
func GetTranslations(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if lang := c.Query("lang"); lang != "" {
			translation, err := a.ContentService.LatestTranslation(c.Params("id"), lang)
			if err != nil {
				return serverErrorWithDetails(c, "Failed to fetch translation", err)
			}
			return success(c, fiber.Map{"translation": translation})
		}

		translations, err := a.ContentService.Translations(c.Params("id"))
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch translations", err)
		}
		return success(c, fiber.Map{"translations": translations})
	}
}

// UpdateTranslation replaces the translated text
func UpdateTranslation(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req struct {
			TranslatedText string `json:"translated_text" validate:"required"`
		}
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
		if err := a.Validator.Validate(&req); err != nil {
			return validationError(c, err)
		}

		if err := a.ContentService.UpdateTranslation(c.Params("id"), req.TranslatedText); err != nil {
			if errors.Is(err, services.ErrTranslationNotFound) {
				return notFound(c, "Translation not found")
			}
			return serverErrorWithDetails(c, "Failed to update translation", err)
		}

		return success(c, fiber.Map{"message": "Translation updated successfully"})
	}
}

// DeleteTranslation removes one translation
func DeleteTranslation(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := a.ContentService.DeleteTranslation(c.Params("id")); err != nil {
			if errors.Is(err, services.ErrTranslationNotFound) {
				return notFound(c, "Translation not found")
			}
			return serverErrorWithDetails(c, "Failed to delete translation", err)
		}
		return success(c, fiber.Map{"message": "Translation deleted successfully"})
	}
}

// ==================== GENERATED CONTENT ====================

// CreateContent records one generated content payload for a project
func CreateContent(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.CreateContentRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
		if err := a.Validator.Validate(&req); err != nil {
			return validationError(c, err)
		}

		content, err := a.ContentService.CreateContent(c.Params("id"), req)
		if err != nil {
			if errors.Is(err, services.ErrProjectNotFound) {
				return notFound(c, "Project not found")
			}
			return serverErrorWithDetails(c, "Failed to create content", err)
		}

		return created(c, fiber.Map{"content": content})
	}
}

// GetContents lists generated content; an optional type query parameter
// narrows to the newest content of that kind
func GetContents(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if kind := c.Query("type"); kind != "" {
			content, err := a.ContentService.LatestContent(c.Params("id"), models.ContentType(kind))
			if err != nil {
				return serverErrorWithDetails(c, "Failed to fetch content", err)
			}
			return success(c, fiber.Map{"content": content})
		}

		contents, err := a.ContentService.Contents(c.Params("id"))
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch contents", err)
		}
		return success(c, fiber.Map{"contents": contents})
	}
}

// UpdateContent replaces the content payload
func UpdateContent(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req struct {
			ContentData string `json:"content_data" validate:"required"`
		}
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
		if err := a.Validator.Validate(&req); err != nil {
			return validationError(c, err)
		}

		if err := a.ContentService.UpdateContent(c.Params("id"), req.ContentData); err != nil {
			if errors.Is(err, services.ErrContentNotFound) {
				return notFound(c, "Content not found")
			}
			return serverErrorWithDetails(c, "Failed to update content", err)
		}

		return success(c, fiber.Map{"message": "Content updated successfully"})
	}
}

// DeleteContent removes one content row
func DeleteContent(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := a.ContentService.DeleteContent(c.Params("id")); err != nil {
			if errors.Is(err, services.ErrContentNotFound) {
				return notFound(c, "Content not found")
			}
			return serverErrorWithDetails(c, "Failed to delete content", err)
		}
		return success(c, fiber.Map{"message": "Content deleted successfully"})
	}
}
