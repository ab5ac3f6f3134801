package database

import "errors"

// ErrNotFound is wrapped by every repository error caused by an operation
// targeting a missing row, so callers can match with errors.Is.
var ErrNotFound = errors.New("not found")

// ErrFolderCycle is returned when a folder reparent would make the folder
// its own ancestor.
var ErrFolderCycle = errors.New("folder cannot be its own ancestor")

// ErrRootFolderImmutable is returned for any update or delete targeting the
// sentinel root folder, before any store operation runs.
var ErrRootFolderImmutable = errors.New("root folder cannot be modified or deleted")

type Repository struct {
	db *DB
}

func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}
