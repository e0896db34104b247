package models

// SaveImagesRequest replaces the full menu image set of a circle
type SaveImagesRequest struct {
	Images ImageSet `json:"images"`
}

// AddImageRequest appends one image to the end of a circle's set
type AddImageRequest struct {
	URL      string                 `json:"url" binding:"required,url"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// MoveImageRequest moves an image to a new display position
type MoveImageRequest struct {
	Index *int `json:"index" binding:"required"`
}

// ValidateFileRequest mirrors a file picked for upload
type ValidateFileRequest struct {
	Name        string  `json:"name,omitempty"`
	ContentType string  `json:"content_type"`
	Size        int64   `json:"size" binding:"min=0"`
	MaxSizeMB   float64 `json:"max_size_mb,omitempty"`
}

// ValidateSetRequest carries a candidate set for a dry-run check
type ValidateSetRequest struct {
	Images ImageSet `json:"images"`
}

// ProbeRequest asks the service to inspect a remote image
type ProbeRequest struct {
	URL string `json:"url" binding:"required"`
}

// ProbeResponse describes a remote image and whether it is acceptable
type ProbeResponse struct {
	URL           string           `json:"url"`
	ContentType   string           `json:"content_type"`
	Size          int64            `json:"size"`
	SizeFormatted string           `json:"size_formatted"`
	Validation    ValidationResult `json:"validation"`
}

// ImageCheck is the probe outcome for one stored image
type ImageCheck struct {
	ImageID string         `json:"image_id"`
	URL     string         `json:"url"`
	Probe   *ProbeResponse `json:"probe,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// ImageCheckResponse reports whether every stored image is still reachable and acceptable
type ImageCheckResponse struct {
	CircleID string       `json:"circle_id"`
	Healthy  bool         `json:"healthy"`
	Checks   []ImageCheck `json:"checks"`
}

// ImageSetResponse is returned by every read or write on a circle's set
type ImageSetResponse struct {
	CircleID string   `json:"circle_id"`
	Images   ImageSet `json:"images"`
	Count    int      `json:"count"`
}

// CarouselResponse is a single-position view of a circle's set
type CarouselResponse struct {
	CircleID    string    `json:"circle_id"`
	Position    int       `json:"position"`
	Count       int       `json:"count"`
	HasMultiple bool      `json:"has_multiple"`
	Current     *ImageRef `json:"current,omitempty"`
	NextIndex   int       `json:"next_index"`
	PrevIndex   int       `json:"prev_index"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
