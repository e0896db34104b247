package carousel

import (
	"fmt"
	"testing"

	"go-menu-gallery/pkg/models"
)

func items(n int) models.ImageSet {
	set := make(models.ImageSet, n)
	for i := range set {
		set[i] = models.ImageRef{ID: fmt.Sprintf("img-%d", i), Order: i}
	}
	return set
}

func TestNew_StartsAtZero(t *testing.T) {
	for n := 0; n <= 4; n++ {
		c := New(items(n))
		if c.Position() != 0 {
			t.Errorf("Expected position 0 for %d items, got %d", n, c.Position())
		}
		if c.Count() != n {
			t.Errorf("Expected count %d, got %d", n, c.Count())
		}
	}
}

func TestCurrent(t *testing.T) {
	if _, ok := New(nil).Current(); ok {
		t.Error("Expected no current image for empty carousel")
	}

	c := New(items(3))
	img, ok := c.Current()
	if !ok || img.ID != "img-0" {
		t.Errorf("Expected img-0, got %+v (ok=%v)", img, ok)
	}
	c.GoTo(2)
	if img, _ := c.Current(); img.ID != "img-2" {
		t.Errorf("Expected img-2, got %s", img.ID)
	}
}

func TestHasMultiple(t *testing.T) {
	tests := map[int]bool{0: false, 1: false, 2: true, 4: true}
	for n, want := range tests {
		if got := New(items(n)).HasMultiple(); got != want {
			t.Errorf("HasMultiple with %d items = %v, want %v", n, got, want)
		}
	}
}

func TestNext_WrapsAround(t *testing.T) {
	c := New(items(3))
	wantPositions := []int{1, 2, 0}
	for i, want := range wantPositions {
		c.Next()
		if c.Position() != want {
			t.Errorf("After %d Next calls expected position %d, got %d", i+1, want, c.Position())
		}
	}
}

func TestPrev_WrapsAround(t *testing.T) {
	c := New(items(3))
	c.Prev()
	if c.Position() != 2 {
		t.Errorf("Expected Prev from 0 to wrap to 2, got %d", c.Position())
	}
	c.Prev()
	if c.Position() != 1 {
		t.Errorf("Expected position 1, got %d", c.Position())
	}
}

func TestNavigation_Degenerate(t *testing.T) {
	for _, n := range []int{0, 1} {
		c := New(items(n))
		for i := 0; i < 3; i++ {
			c.Next()
			c.Prev()
		}
		if c.Position() != 0 {
			t.Errorf("Expected navigation to be inert with %d items, got position %d", n, c.Position())
		}
	}
}

func TestGoTo_Clamps(t *testing.T) {
	c := New(items(4))

	tests := []struct {
		index int
		want  int
	}{
		{-5, 0},
		{99, 3},
		{2, 2},
		{0, 0},
		{3, 3},
		{4, 3},
		{-1, 0},
	}

	for _, tt := range tests {
		c.GoTo(tt.index)
		if c.Position() != tt.want {
			t.Errorf("GoTo(%d) expected position %d, got %d", tt.index, tt.want, c.Position())
		}
	}
}

func TestGoTo_Empty(t *testing.T) {
	c := New(nil)
	c.GoTo(5)
	if c.Position() != 0 {
		t.Errorf("Expected GoTo on empty carousel to force 0, got %d", c.Position())
	}
}

func TestReset(t *testing.T) {
	c := New(items(4))
	c.GoTo(3)

	c.Reset(items(2))
	if c.Position() != 1 {
		t.Errorf("Expected position clamped to 1 after shrink, got %d", c.Position())
	}

	c.Reset(items(4))
	if c.Position() != 1 {
		t.Errorf("Expected position kept at 1 after grow, got %d", c.Position())
	}

	c.Reset(nil)
	if c.Position() != 0 || c.Count() != 0 {
		t.Errorf("Expected empty carousel at 0, got position %d count %d", c.Position(), c.Count())
	}
}

func TestCarousel_DoesNotCopyItems(t *testing.T) {
	set := items(2)
	c := New(set)
	set[0].ID = "edited"
	if img, _ := c.Current(); img.ID != "edited" {
		t.Errorf("Expected carousel to reference caller's items, got %s", img.ID)
	}
}
