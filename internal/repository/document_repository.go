package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go-menu-gallery/internal/storage"
	"go-menu-gallery/pkg/models"
)

// documentRepository stores each circle's set as one JSON object
type documentRepository struct {
	store storage.ObjectStore
}

// NewDocumentRepository creates a repository on top of any ObjectStore
func NewDocumentRepository(store storage.ObjectStore) MenuImageRepository {
	return &documentRepository{store: store}
}

// DocumentKey is the object key holding a circle's menu images
func DocumentKey(circleID string) string {
	return fmt.Sprintf("circles/%s/menu-images.json", circleID)
}

func (r *documentRepository) Get(ctx context.Context, circleID string) (*models.MenuImageDocument, error) {
	data, err := r.store.Get(ctx, DocumentKey(circleID))
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, ErrSetNotFound
		}
		return nil, fmt.Errorf("%w: %w", ErrRepositoryUnavailable, err)
	}

	var doc models.MenuImageDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptDocument, err)
	}
	if doc.CircleID == "" {
		doc.CircleID = circleID
	}
	return &doc, nil
}

func (r *documentRepository) Put(ctx context.Context, doc *models.MenuImageDocument) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode menu images: %w", err)
	}
	if err := r.store.Put(ctx, DocumentKey(doc.CircleID), data); err != nil {
		return fmt.Errorf("%w: %w", ErrRepositoryUnavailable, err)
	}
	return nil
}

func (r *documentRepository) Delete(ctx context.Context, circleID string) error {
	if err := r.store.Delete(ctx, DocumentKey(circleID)); err != nil {
		return fmt.Errorf("%w: %w", ErrRepositoryUnavailable, err)
	}
	return nil
}

func (r *documentRepository) Backend() string {
	return r.store.Name()
}
