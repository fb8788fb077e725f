package video

import "errors"

var (
	ErrMissingPublicID     = errors.New("upload record requires a public id")
	ErrDuplicatePublicID   = errors.New("a record with this public id already exists")
	ErrPersistence         = errors.New("failed to persist upload record")
	ErrInvalidOriginalSize = errors.New("originalSize must be a non-negative integer")
	ErrInvalidRecord       = errors.New("invalid upload record")
)
