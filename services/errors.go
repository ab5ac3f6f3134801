package services

import "errors"

// Common service-level errors
var (
	// Folder errors
	ErrFolderNotFound  = errors.New("folder not found")
	ErrFolderProtected = errors.New("folder cannot be modified")
	ErrFolderCycle     = errors.New("folder cannot be moved under its own descendant")

	// Tag errors
	ErrTagNotFound = errors.New("tag not found")

	// Project errors
	ErrProjectNotFound = errors.New("project not found")
	ErrVideoNotFound   = errors.New("video not found")
	ErrSceneNotFound   = errors.New("scene not found")

	// Content errors
	ErrRewriteNotFound     = errors.New("rewrite not found")
	ErrTranslationNotFound = errors.New("translation not found")
	ErrContentNotFound     = errors.New("content not found")
)
