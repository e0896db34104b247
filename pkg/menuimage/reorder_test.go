package menuimage

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"go-menu-gallery/pkg/models"
	"go-menu-gallery/pkg/validation"
)

const storageURL = "https://firebasestorage.googleapis.com/v0/b/circle-app.appspot.com/o/menu.png"

func ref(id string, order int) models.ImageRef {
	return models.ImageRef{ID: id, URL: storageURL, Order: order}
}

func ids(set models.ImageSet) []string {
	out := make([]string, len(set))
	for i, img := range set {
		out[i] = img.ID
	}
	return out
}

func orders(set models.ImageSet) []int {
	out := make([]int, len(set))
	for i, img := range set {
		out[i] = img.Order
	}
	return out
}

func TestReorder(t *testing.T) {
	tests := []struct {
		name       string
		input      models.ImageSet
		wantIDs    []string
		wantOrders []int
	}{
		{"empty", models.ImageSet{}, []string{}, []int{}},
		{"nil", nil, []string{}, []int{}},
		{"already contiguous", models.ImageSet{ref("a", 0), ref("b", 1)}, []string{"a", "b"}, []int{0, 1}},
		{"gap after deletion", models.ImageSet{ref("a", 0), ref("c", 2), ref("d", 3)}, []string{"a", "c", "d"}, []int{0, 1, 2}},
		{"shuffled", models.ImageSet{ref("c", 7), ref("a", 1), ref("b", 4)}, []string{"a", "b", "c"}, []int{0, 1, 2}},
		{"ties keep input order", models.ImageSet{ref("x", 1), ref("y", 0), ref("z", 1)}, []string{"y", "x", "z"}, []int{0, 1, 2}},
		{"negative orders", models.ImageSet{ref("a", 0), ref("b", -3)}, []string{"b", "a"}, []int{0, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Reorder(tt.input)
			if diff := cmp.Diff(tt.wantIDs, ids(got)); diff != "" {
				t.Errorf("ids mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantOrders, orders(got)); diff != "" {
				t.Errorf("orders mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReorder_DoesNotMutateInput(t *testing.T) {
	input := models.ImageSet{ref("b", 5), ref("a", 2)}
	_ = Reorder(input)
	if input[0].Order != 5 || input[1].Order != 2 || input[0].ID != "b" {
		t.Errorf("Expected input to be unchanged, got %+v", input)
	}
}

func TestReorder_PreservesMetadata(t *testing.T) {
	img := ref("a", 3)
	img.Metadata = map[string]interface{}{"caption": "set menu"}
	got := Reorder(models.ImageSet{img})
	if got[0].Metadata["caption"] != "set menu" {
		t.Errorf("Expected metadata to pass through, got %+v", got[0].Metadata)
	}
}

func TestReorder_Idempotent(t *testing.T) {
	inputs := []models.ImageSet{
		{},
		{ref("a", 9)},
		{ref("a", 2), ref("b", 2), ref("c", 0)},
		{ref("a", 3), ref("b", 1), ref("c", 8), ref("d", 1)},
	}

	for _, input := range inputs {
		once := Reorder(input)
		twice := Reorder(once)
		if diff := cmp.Diff(once, twice); diff != "" {
			t.Errorf("Reorder not idempotent (-once +twice):\n%s", diff)
		}
	}
}

func TestReorder_ResultValidates(t *testing.T) {
	inputs := []models.ImageSet{
		{ref("a", 0), ref("b", 1), ref("c", 2), ref("d", 3)},
		{ref("a", 3), ref("b", 0)},
		{ref("a", 1), ref("b", 1)},
		{ref("a", 5), ref("b", 10), ref("c", 15)},
	}

	for _, input := range inputs {
		if result := validation.ValidateSet(Reorder(input)); !result.Valid {
			t.Errorf("Expected reordered %v to validate, got %q", orders(input), result.Error)
		}
	}
}

func TestMove(t *testing.T) {
	base := models.ImageSet{ref("a", 0), ref("b", 1), ref("c", 2), ref("d", 3)}

	tests := []struct {
		name    string
		from    int
		to      int
		wantIDs []string
	}{
		{"first to last", 0, 3, []string{"b", "c", "d", "a"}},
		{"last to first", 3, 0, []string{"d", "a", "b", "c"}},
		{"middle down", 1, 2, []string{"a", "c", "b", "d"}},
		{"same position", 2, 2, []string{"a", "b", "c", "d"}},
		{"target clamped high", 0, 99, []string{"b", "c", "d", "a"}},
		{"target clamped low", 2, -4, []string{"c", "a", "b", "d"}},
		{"source out of range", 7, 0, []string{"a", "b", "c", "d"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Move(base, tt.from, tt.to)
			if diff := cmp.Diff(tt.wantIDs, ids(got)); diff != "" {
				t.Errorf("ids mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff([]int{0, 1, 2, 3}, orders(got)); diff != "" {
				t.Errorf("orders mismatch (-want +got):\n%s", diff)
			}
		})
	}

	if diff := cmp.Diff([]string{"a", "b", "c", "d"}, ids(base)); diff != "" {
		t.Errorf("Move mutated its input:\n%s", diff)
	}
}

func TestIndexOf(t *testing.T) {
	set := models.ImageSet{ref("a", 0), ref("b", 1)}
	if IndexOf(set, "b") != 1 {
		t.Error("Expected b at index 1")
	}
	if IndexOf(set, "zzz") != -1 {
		t.Error("Expected -1 for missing id")
	}
}
