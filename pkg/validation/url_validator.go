package validation

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	apperrors "go-menu-gallery/internal/errors"
)

const (
	// RequiredScheme is the only scheme accepted for stored menu images
	RequiredScheme = "https://"

	// DefaultStorageHostPattern matches the part of a URL after the scheme
	// for objects served from Firebase Storage.
	DefaultStorageHostPattern = `^firebasestorage\.googleapis\.com/.+`
)

// URLValidator handles URL validation logic
type URLValidator struct {
	hostPattern *regexp.Regexp
}

var defaultURLValidator = NewURLValidator()

// NewURLValidator creates a URL validator trusting the default storage host
func NewURLValidator() *URLValidator {
	return &URLValidator{
		hostPattern: regexp.MustCompile(DefaultStorageHostPattern),
	}
}

// NewURLValidatorWithPattern creates a URL validator trusting a custom storage host pattern.
// The pattern is matched against the URL with the https:// prefix removed.
func NewURLValidatorWithPattern(pattern string) (*URLValidator, error) {
	if strings.TrimSpace(pattern) == "" {
		return NewURLValidator(), nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid storage host pattern %q: %w", pattern, err)
	}
	return &URLValidator{hostPattern: re}, nil
}

// IsValidImageURL reports whether imageURL may be stored as a menu image
func (v *URLValidator) IsValidImageURL(imageURL string) bool {
	return v.ValidateImageURL(imageURL) == nil
}

// ValidateImageURL is IsValidImageURL with the reason for rejection
func (v *URLValidator) ValidateImageURL(imageURL string) error {
	if imageURL == "" {
		return apperrors.NewValidationError("URL cannot be empty", nil)
	}

	if !strings.HasPrefix(imageURL, RequiredScheme) {
		return apperrors.NewValidationError("URL scheme not allowed", nil)
	}

	parsedURL, err := url.Parse(imageURL)
	if err != nil {
		return apperrors.NewValidationError("Invalid URL format", err)
	}
	if parsedURL.Host == "" {
		return apperrors.NewValidationError("URL must have a valid host", nil)
	}

	if !v.hostPattern.MatchString(strings.TrimPrefix(imageURL, RequiredScheme)) {
		return apperrors.NewValidationError("URL host not allowed", nil)
	}

	return nil
}

// IsValidImageURL checks imageURL against the default storage host
func IsValidImageURL(imageURL string) bool {
	return defaultURLValidator.IsValidImageURL(imageURL)
}
