package repository

import (
	"context"

	"go-menu-gallery/pkg/models"
)

// MenuImageRepository persists menu image sets keyed by circle id.
// It stores what it is given; validation is the caller's job.
type MenuImageRepository interface {
	// Get returns the stored document or ErrSetNotFound
	Get(ctx context.Context, circleID string) (*models.MenuImageDocument, error)

	// Put replaces the circle's whole set
	Put(ctx context.Context, doc *models.MenuImageDocument) error

	// Delete removes the circle's set; deleting a missing set is not an error
	Delete(ctx context.Context, circleID string) error

	// Backend names the underlying store for logs and health output
	Backend() string
}
