package validation

import (
	"sort"

	"go-menu-gallery/pkg/models"
)

// Failure reasons reported by ValidateSet, in the order they are checked
const (
	MsgTooManyImages      = "exceeds maximum of 4 images"
	MsgInvalidURL         = "contains invalid URL"
	MsgDuplicateOrder     = "duplicate order values"
	MsgNonContiguousOrder = "order values must be contiguous from zero"
)

// SetValidator enforces the structural rules of a menu image set
type SetValidator struct {
	urls *URLValidator
}

var defaultSetValidator = NewSetValidator(defaultURLValidator)

// NewSetValidator creates a set validator using urls for per-image URL checks
func NewSetValidator(urls *URLValidator) *SetValidator {
	if urls == nil {
		urls = NewURLValidator()
	}
	return &SetValidator{urls: urls}
}

// ValidateSet reports the first rule images violates.
// Checks run as cardinality, per-image URL, order uniqueness, order contiguity.
func (v *SetValidator) ValidateSet(images models.ImageSet) models.ValidationResult {
	if len(images) == 0 {
		return models.Valid()
	}

	if len(images) > models.MaxImages {
		return models.Invalid(MsgTooManyImages)
	}

	for _, img := range images {
		if !v.urls.IsValidImageURL(img.URL) {
			return models.Invalid(MsgInvalidURL)
		}
	}

	seen := make(map[int]struct{}, len(images))
	for _, img := range images {
		if _, dup := seen[img.Order]; dup {
			return models.Invalid(MsgDuplicateOrder)
		}
		seen[img.Order] = struct{}{}
	}

	// Kept apart from the uniqueness check so each failure keeps its own message.
	orders := make([]int, len(images))
	for i, img := range images {
		orders[i] = img.Order
	}
	sort.Ints(orders)
	for i, order := range orders {
		if order != i {
			return models.Invalid(MsgNonContiguousOrder)
		}
	}

	return models.Valid()
}

// ValidateSet checks images using the default storage host
func ValidateSet(images models.ImageSet) models.ValidationResult {
	return defaultSetValidator.ValidateSet(images)
}
