package models

import "time"

// MaxImages is the largest number of menu images a circle may carry
const MaxImages = 4

// ImageRef is one menu image attached to a circle.
// Only URL and Order are interpreted; the remaining fields are carried as-is.
type ImageRef struct {
	ID         string                 `json:"id,omitempty"`
	URL        string                 `json:"url"`
	Order      int                    `json:"order"`
	UploadedAt *time.Time             `json:"uploaded_at,omitempty"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
}

// ImageSet is the ordered collection of menu images for one circle
type ImageSet []ImageRef

// Clone returns a copy of the set that shares no backing array with s
func (s ImageSet) Clone() ImageSet {
	if s == nil {
		return nil
	}
	out := make(ImageSet, len(s))
	copy(out, s)
	return out
}

// FileDescriptor describes a candidate upload: its media type and byte length
type FileDescriptor struct {
	Name        string `json:"name,omitempty"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

// MenuImageDocument is the persisted shape of a circle's menu images
type MenuImageDocument struct {
	CircleID  string    `json:"circle_id"`
	Images    ImageSet  `json:"images"`
	UpdatedAt time.Time `json:"updated_at"`
}
