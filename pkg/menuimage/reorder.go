// Package menuimage holds the ordering and presentation helpers for menu image sets.
package menuimage

import (
	"sort"

	"go-menu-gallery/pkg/models"
)

// Reorder sorts images by their current order and renumbers them 0..n-1.
// Ties keep their input position. The input is left untouched.
func Reorder(images models.ImageSet) models.ImageSet {
	out := make(models.ImageSet, len(images))
	copy(out, images)

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Order < out[j].Order
	})
	for i := range out {
		out[i].Order = i
	}
	return out
}

// Move places the image at index from into position to, clamping to into
// range, and renumbers the result. images must already be in display order.
func Move(images models.ImageSet, from, to int) models.ImageSet {
	out := Reorder(images)
	if from < 0 || from >= len(out) {
		return out
	}
	if to < 0 {
		to = 0
	}
	if to >= len(out) {
		to = len(out) - 1
	}
	if from == to {
		return out
	}

	moved := out[from]
	out = append(out[:from], out[from+1:]...)
	out = append(out[:to], append(models.ImageSet{moved}, out[to:]...)...)
	for i := range out {
		out[i].Order = i
	}
	return out
}

// IndexOf returns the position of the image with the given id, or -1
func IndexOf(images models.ImageSet, id string) int {
	for i, img := range images {
		if img.ID == id {
			return i
		}
	}
	return -1
}
