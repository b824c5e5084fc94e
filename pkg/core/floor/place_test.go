package floor

import (
	"testing"

	"github.com/matzehuels/cafeplan/pkg/errors"
)

var (
	testTable = Dimension{Width: 120, Height: 60}
	testChair = Dimension{Width: 60, Height: 60}
)

func TestPlaceOrientations(t *testing.T) {
	upright := Rect{W: 120, H: 125}
	sideways := Rect{W: 125, H: 120}

	tests := []struct {
		name      string
		slot      Slot
		wantTable Rect
		wantChair Rect
	}{
		{"0", Slot{Rect: upright, Orientation: Orient0}, Rect{0, 65, 120, 60}, Rect{30, 0, 60, 60}},
		{"90", Slot{Rect: sideways, Orientation: Orient90}, Rect{0, 0, 60, 120}, Rect{65, 30, 60, 60}},
		{"180", Slot{Rect: upright, Orientation: Orient180}, Rect{0, 0, 120, 60}, Rect{30, 65, 60, 60}},
		{"270", Slot{Rect: sideways, Orientation: Orient270}, Rect{65, 0, 60, 120}, Rect{0, 30, 60, 60}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, chair, err := Place(tt.slot, testTable, testChair, 5)
			if err != nil {
				t.Fatalf("Place() error: %v", err)
			}
			if table.Kind != KindTable || table.Rect != tt.wantTable {
				t.Errorf("Place() table = %+v, want %+v", table, tt.wantTable)
			}
			if chair == nil {
				t.Fatalf("Place() dropped the chair, want %+v", tt.wantChair)
			}
			if chair.Kind != KindChair || chair.Rect != tt.wantChair {
				t.Errorf("Place() chair = %+v, want %+v", *chair, tt.wantChair)
			}
			if !tt.slot.Contains(table.Rect) || !tt.slot.Contains(chair.Rect) {
				t.Errorf("Place() entities escape slot %+v", tt.slot.Rect)
			}
			if table.Overlaps(chair.Rect) {
				t.Errorf("Place() table %+v overlaps chair %+v", table.Rect, chair.Rect)
			}
		})
	}
}

func TestPlaceScenarioAFirstSlot(t *testing.T) {
	slot := Slot{Rect: Rect{X: 580, Y: 375, W: 120, H: 125}}
	table, chair, err := Place(slot, testTable, testChair, 5)
	if err != nil {
		t.Fatalf("Place() error: %v", err)
	}
	if want := (Rect{580, 440, 120, 60}); table.Rect != want {
		t.Errorf("Place() table = %+v, want %+v", table.Rect, want)
	}
	if chair == nil {
		t.Fatal("Place() dropped the chair")
	}
	if want := (Rect{610, 375, 60, 60}); chair.Rect != want {
		t.Errorf("Place() chair = %+v, want %+v", chair.Rect, want)
	}
}

func TestPlaceDropsChairOutsideSlot(t *testing.T) {
	slot := Slot{Rect: Rect{X: 0, Y: 0, W: 120, H: 125}}
	table, chair, err := Place(slot, testTable, testChair, 10)
	if err != nil {
		t.Fatalf("Place() error: %v", err)
	}
	if chair != nil {
		t.Errorf("Place() chair = %+v, want nil", *chair)
	}
	if table.Kind != KindTable {
		t.Errorf("Place() table kind = %q, want table", table.Kind)
	}
}

func TestPlaceWideChairDropped(t *testing.T) {
	slot := Slot{Rect: Rect{X: 0, Y: 0, W: 120, H: 125}}
	_, chair, err := Place(slot, testTable, Dimension{Width: 150, Height: 60}, 5)
	if err != nil {
		t.Fatalf("Place() error: %v", err)
	}
	if chair != nil {
		t.Errorf("Place() kept a chair wider than the slot: %+v", *chair)
	}
}

func TestPlaceInvalidOrientation(t *testing.T) {
	slot := Slot{Rect: Rect{W: 120, H: 125}, Orientation: Orientation(45)}
	_, _, err := Place(slot, testTable, testChair, 5)
	if !errors.Is(err, errors.ErrCodeInvalidOrientation) {
		t.Errorf("Place() error = %v, want INVALID_ORIENTATION", err)
	}
}
