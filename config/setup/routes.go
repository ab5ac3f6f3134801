package setup

import (
	"github.com/gofiber/fiber/v2"

	"nodio/app"
	"nodio/handlers"
)

// RegisterRoutes registers all application routes
func RegisterRoutes(fiberApp *fiber.App, application *app.App) {

	fiberApp.Get("/health", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"status": "ok"}) })

	api := fiberApp.Group("/api")

	// Folder tree
	api.Get("/folders", handlers.GetFolders(application))
	api.Post("/folders", handlers.CreateFolder(application))
	api.Get("/folders/:id", handlers.GetFolder(application))
	api.Put("/folders/:id", handlers.UpdateFolder(application))
	api.Delete("/folders/:id", handlers.DeleteFolder(application))

	// Tags
	api.Get("/tags", handlers.GetTags(application))
	api.Post("/tags", handlers.CreateTag(application))
	api.Put("/tags/:id", handlers.UpdateTag(application))
	api.Delete("/tags/:id", handlers.DeleteTag(application))

	// Projects
	api.Get("/projects", handlers.GetProjects(application))
	api.Post("/projects", handlers.CreateProject(application))
	api.Get("/projects/:id", handlers.GetProject(application))
	api.Put("/projects/:id", handlers.UpdateProject(application))
	api.Delete("/projects/:id", handlers.DeleteProject(application))
	api.Put("/projects/:id/transcript", handlers.UpdateTranscript(application))
	api.Put("/projects/:id/title", handlers.RenameProject(application))
	api.Put("/projects/:id/folder", handlers.MoveProject(application))
	api.Post("/projects/:id/tags", handlers.AddProjectTags(application))
	api.Delete("/projects/:id/tags/:tagId", handlers.RemoveProjectTag(application))

	// Videos and scenes
	api.Post("/projects/:id/videos", handlers.CreateVideo(application))
	api.Get("/videos/:id", handlers.GetVideo(application))
	api.Put("/videos/:id", handlers.RenameVideo(application))
	api.Put("/videos/:id/scenes", handlers.ReplaceScenes(application))
	api.Delete("/videos/:id", handlers.DeleteVideo(application))
	api.Put("/scenes/:id", handlers.UpdateScene(application))
	api.Delete("/scenes/:id", handlers.DeleteScene(application))
	api.Get("/scenes/:id/images", handlers.GetSceneImages(application))
	api.Put("/scene-images/:id", handlers.UpdateSceneImage(application))
	api.Delete("/scene-images/:id", handlers.DeleteSceneImage(application))

	// Per-project singletons
	api.Get("/projects/:id/summary", handlers.GetSummary(application))
	api.Put("/projects/:id/summary", handlers.SaveSummary(application))
	api.Delete("/projects/:id/summary", handlers.DeleteSummary(application))
	api.Get("/projects/:id/bullet-points", handlers.GetBulletPoints(application))
	api.Put("/projects/:id/bullet-points", handlers.SaveBulletPoints(application))
	api.Delete("/projects/:id/bullet-points", handlers.DeleteBulletPoints(application))
	api.Get("/projects/:id/mind-map", handlers.GetMindMap(application))
	api.Put("/projects/:id/mind-map", handlers.SaveMindMap(application))
	api.Delete("/projects/:id/mind-map", handlers.DeleteMindMap(application))
	api.Get("/projects/:id/journal", handlers.GetJournalEntry(application))
	api.Put("/projects/:id/journal", handlers.SaveJournalEntry(application))
	api.Delete("/projects/:id/journal", handlers.DeleteJournalEntry(application))

	// Rewrite history
	api.Post("/projects/:id/rewrites", handlers.CreateRewrite(application))
	api.Get("/projects/:id/rewrites", handlers.GetHistoryTree(application))
	api.Get("/projects/:id/rewrites/latest", handlers.GetLatestRewrite(application))
	api.Delete("/rewrites/:id", handlers.DeleteRewrite(application))

	// Translations
	api.Post("/projects/:id/translations", handlers.CreateTranslation(application))
	api.Get("/projects/:id/translations", handlers.GetTranslations(application))
	api.Put("/translations/:id", handlers.UpdateTranslation(application))
	api.Delete("/translations/:id", handlers.DeleteTranslation(application))

	// Generated content
	api.Post("/projects/:id/contents", handlers.CreateContent(application))
	api.Get("/projects/:id/contents", handlers.GetContents(application))
	api.Put("/contents/:id", handlers.UpdateContent(application))
	api.Delete("/contents/:id", handlers.DeleteContent(application))
}
