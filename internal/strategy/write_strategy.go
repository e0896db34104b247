package strategy

import (
	"fmt"

	"go-menu-gallery/pkg/menuimage"
	"go-menu-gallery/pkg/models"
)

// WriteStrategy prepares a submitted set before it is validated and stored
type WriteStrategy interface {
	Prepare(images models.ImageSet) models.ImageSet
	GetStrategyName() string
}

// StrictWriteStrategy stores exactly what was submitted
type StrictWriteStrategy struct{}

// NewStrictWriteStrategy creates a new strict write strategy
func NewStrictWriteStrategy() WriteStrategy {
	return &StrictWriteStrategy{}
}

// Prepare returns a copy of images with order values untouched
func (s *StrictWriteStrategy) Prepare(images models.ImageSet) models.ImageSet {
	out := images.Clone()
	if out == nil {
		out = models.ImageSet{}
	}
	return out
}

// GetStrategyName returns the strategy name
func (s *StrictWriteStrategy) GetStrategyName() string {
	return "strict"
}

// RepairWriteStrategy renumbers order values before validation, so gaps and
// duplicates left by an editor are fixed instead of rejected
type RepairWriteStrategy struct{}

// NewRepairWriteStrategy creates a new repair write strategy
func NewRepairWriteStrategy() WriteStrategy {
	return &RepairWriteStrategy{}
}

// Prepare renumbers images by their current order
func (s *RepairWriteStrategy) Prepare(images models.ImageSet) models.ImageSet {
	return menuimage.Reorder(images)
}

// GetStrategyName returns the strategy name
func (s *RepairWriteStrategy) GetStrategyName() string {
	return "repair"
}

// ForMode maps a configured write mode to its strategy
func ForMode(mode string) (WriteStrategy, error) {
	switch mode {
	case "", "strict":
		return NewStrictWriteStrategy(), nil
	case "repair":
		return NewRepairWriteStrategy(), nil
	default:
		return nil, fmt.Errorf("unsupported write mode: %s", mode)
	}
}
