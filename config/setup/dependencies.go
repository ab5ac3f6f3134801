package setup

import (
	"log/slog"

	"nodio/app"
	"nodio/database"
)

// InitDatabase opens the shared SQLite handle and brings the schema to
// the current version
func InitDatabase(dbPath string, logger *slog.Logger) (*database.DB, error) {
	db, err := database.Open(dbPath)
	if err != nil {
		return nil, err
	}

	if err := db.Initialize(); err != nil {
		database.Close()
		return nil, err
	}

	logger.Info("database initialized", "path", dbPath)
	return db, nil
}

// InitApp initializes the application with all dependencies
func InitApp(db *database.DB, logger *slog.Logger) *app.App {
	repo := database.NewRepository(db)

	application := app.New(repo, logger)
	logger.Info("application initialized with dependency injection")

	return application
}

// Shutdown performs graceful shutdown of all services
func Shutdown(logger *slog.Logger) {
	logger.Info("shutting down services...")

	if err := database.Close(); err != nil {
		logger.Error("failed to close database", "error", err)
		return
	}
	logger.Info("database closed")
}
