package domain

import "errors"

// Sentinel errors shared between services and transport.
var (
	ErrNotFound             = errors.New("not found")
	ErrSlugExists           = errors.New("slug already exists")
	ErrInvalidProduct       = errors.New("invalid product")
	ErrInvalidContentType   = errors.New("invalid content type")
	ErrMissingBoundary      = errors.New("no boundary found")
	ErrNoFileFound          = errors.New("no file found")
	ErrStorageNotConfigured = errors.New("storage not configured")
	ErrNotEnoughSpace       = errors.New("not enough free space")
	ErrBlobExists           = errors.New("blob already exists")
)
