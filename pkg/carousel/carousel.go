// Package carousel tracks a viewer's position in an ordered menu image set.
//
// A Carousel is plain owned state for one viewing session. It is not safe for
// concurrent use; callers that share one across goroutines must serialize access.
// Rendering layers read Current, Count and HasMultiple after each navigation call.
package carousel

import "go-menu-gallery/pkg/models"

// Carousel is a cursor over an ordered image sequence with circular navigation
type Carousel struct {
	items    models.ImageSet
	position int
}

// New returns a carousel positioned at the first item.
// items is referenced, not copied, and is never modified.
func New(items models.ImageSet) *Carousel {
	return &Carousel{items: items}
}

// Current returns the image at the current position, or false when empty
func (c *Carousel) Current() (models.ImageRef, bool) {
	if len(c.items) == 0 || c.position >= len(c.items) {
		return models.ImageRef{}, false
	}
	return c.items[c.position], true
}

// Position is the zero-based index of the current image
func (c *Carousel) Position() int {
	return c.position
}

// Count is the number of images
func (c *Carousel) Count() int {
	return len(c.items)
}

// HasMultiple reports whether navigation can move at all
func (c *Carousel) HasMultiple() bool {
	return len(c.items) > 1
}

// Next advances one image, wrapping from the last to the first
func (c *Carousel) Next() {
	if len(c.items) <= 1 {
		return
	}
	c.position = (c.position + 1) % len(c.items)
}

// Prev steps back one image, wrapping from the first to the last
func (c *Carousel) Prev() {
	if len(c.items) <= 1 {
		return
	}
	if c.position == 0 {
		c.position = len(c.items) - 1
		return
	}
	c.position--
}

// GoTo jumps to index, clamping out-of-range values to the nearest end
func (c *Carousel) GoTo(index int) {
	switch {
	case len(c.items) == 0, index < 0:
		c.position = 0
	case index >= len(c.items):
		c.position = len(c.items) - 1
	default:
		c.position = index
	}
}

// Reset swaps in a new sequence, keeping the position when it is still in range
func (c *Carousel) Reset(items models.ImageSet) {
	c.items = items
	c.GoTo(c.position)
}
