package repository

import "errors"

var (
	// ErrSetNotFound indicates no menu images were ever stored for a circle
	ErrSetNotFound = errors.New("menu image set not found")

	// ErrImageNotFound indicates an image id is not part of the set
	ErrImageNotFound = errors.New("image not found")

	// ErrCorruptDocument indicates a stored document could not be decoded
	ErrCorruptDocument = errors.New("stored menu image document is corrupt")

	// ErrRepositoryUnavailable indicates the repository is unavailable
	ErrRepositoryUnavailable = errors.New("repository unavailable")
)
