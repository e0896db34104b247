package validation

import (
	"fmt"
	"strings"

	"go-menu-gallery/pkg/models"
)

const (
	// DefaultMaxFileSizeMB is used when no explicit limit is given
	DefaultMaxFileSizeMB = 10

	imageTypePrefix = "image/"

	// MsgNotAnImage is reported for uploads whose media type is not an image
	MsgNotAnImage = "file must be an image"
)

// ValidateFile checks a candidate upload's media type, then its size.
// A maxSizeInMB of zero or less selects DefaultMaxFileSizeMB.
func ValidateFile(file models.FileDescriptor, maxSizeInMB float64) models.ValidationResult {
	if maxSizeInMB <= 0 {
		maxSizeInMB = DefaultMaxFileSizeMB
	}

	if !strings.HasPrefix(file.ContentType, imageTypePrefix) {
		return models.Invalid(MsgNotAnImage)
	}

	maxBytes := maxSizeInMB * 1024 * 1024
	if float64(file.Size) > maxBytes {
		return models.Invalid(fmt.Sprintf("file size must be %gMB or less", maxSizeInMB))
	}

	return models.Valid()
}
