package floor

import (
	"reflect"
	"testing"

	"github.com/matzehuels/cafeplan/pkg/errors"
)

func TestRotateRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		room Dimension
		slot Slot
	}{
		{"square room", Dimension{Width: 500, Height: 500}, Slot{Rect: Rect{X: 100, Y: 50, W: 120, H: 125}}},
		{"centred slot", Dimension{Width: 700, Height: 500}, Slot{Rect: Rect{X: 290, Y: 190, W: 120, H: 125}, Orientation: Orient90}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.slot
			for i := 0; i < 4; i++ {
				var err error
				s, err = Rotate(s, 90, tt.room)
				if err != nil {
					t.Fatalf("Rotate() step %d error: %v", i, err)
				}
			}
			if s != tt.slot {
				t.Errorf("4x Rotate(90) = %+v, want %+v", s, tt.slot)
			}

			there, err := Rotate(tt.slot, 90, tt.room)
			if err != nil {
				t.Fatalf("Rotate(90) error: %v", err)
			}
			back, err := Rotate(there, 270, tt.room)
			if err != nil {
				t.Fatalf("Rotate(270) error: %v", err)
			}
			if back != tt.slot {
				t.Errorf("Rotate(90) then Rotate(270) = %+v, want %+v", back, tt.slot)
			}
		})
	}
}

func TestRotateEdgeSlotStaysInRoom(t *testing.T) {
	room := Dimension{Width: 700, Height: 500}
	start := Slot{Rect: Rect{X: 580, Y: 375, W: 120, H: 125}}
	bounds := Rect{W: room.Width, H: room.Height}

	s := start
	for i := 0; i < 4; i++ {
		var err error
		s, err = Rotate(s, 90, room)
		if err != nil {
			t.Fatalf("Rotate() step %d error: %v", i, err)
		}
		if !bounds.Contains(s.Rect) {
			t.Errorf("step %d: %+v leaves the room", i, s.Rect)
		}
	}
	if s.Orientation != start.Orientation {
		t.Errorf("orientation = %v, want %v", s.Orientation, start.Orientation)
	}
	if s == start {
		t.Errorf("4x Rotate(90) of a corner slot returned %+v unchanged, want it shifted by the wall clamp", s)
	}
}

func TestRotate(t *testing.T) {
	room := Dimension{Width: 700, Height: 500}
	slot := Slot{Rect: Rect{X: 580, Y: 375, W: 120, H: 125}}

	tests := []struct {
		angle int
		want  Slot
	}{
		{180, Slot{Rect: Rect{X: 0, Y: 0, W: 120, H: 125}, Orientation: Orient180}},
		{90, Slot{Rect: Rect{X: 475, Y: 0, W: 125, H: 120}, Orientation: Orient90}},
		{270, Slot{Rect: Rect{X: 100, Y: 380, W: 125, H: 120}, Orientation: Orient270}},
	}
	for _, tt := range tests {
		got, err := Rotate(slot, tt.angle, room)
		if err != nil {
			t.Fatalf("Rotate(%d) error: %v", tt.angle, err)
		}
		if got != tt.want {
			t.Errorf("Rotate(%d) = %+v, want %+v", tt.angle, got, tt.want)
		}
		if !room.Bounds().Contains(got.Rect) {
			t.Errorf("Rotate(%d) = %+v, outside room", tt.angle, got.Rect)
		}
	}
}

func TestRotateErrors(t *testing.T) {
	room := Dimension{Width: 700, Height: 500}
	slot := Slot{Rect: Rect{W: 120, H: 125}}

	for _, angle := range []int{0, 45, 360, -90} {
		if _, err := Rotate(slot, angle, room); !errors.Is(err, errors.ErrCodeInvalidOrientation) {
			t.Errorf("Rotate(%d) error = %v, want INVALID_ORIENTATION", angle, err)
		}
	}

	bad := Slot{Rect: Rect{W: 120, H: 125}, Orientation: Orientation(10)}
	if _, err := Rotate(bad, 90, room); !errors.Is(err, errors.ErrCodeInvalidOrientation) {
		t.Errorf("Rotate(bad orientation) error = %v, want INVALID_ORIENTATION", err)
	}

	narrow := Dimension{Width: 700, Height: 100}
	wide := Slot{Rect: Rect{W: 120, H: 90}}
	if _, err := Rotate(wide, 90, narrow); !errors.Is(err, errors.ErrCodePacking) {
		t.Errorf("Rotate(oversized) error = %v, want PACKING_ERROR", err)
	}
}

func TestReverseRow(t *testing.T) {
	room := Dimension{Width: 700, Height: 500}
	slots, err := Pack(room, scenarioTemplate(), WithAisleGap(98), WithInterUnitGap(5))
	if err != nil {
		t.Fatalf("Pack() error: %v", err)
	}
	rows := Rows(slots)
	if len(rows) != 2 || len(rows[0]) != 5 || len(rows[1]) != 5 {
		t.Fatalf("Rows() = %d rows, want 2 rows of 5", len(rows))
	}

	rev, err := ReverseRow(rows[0], room)
	if err != nil {
		t.Fatalf("ReverseRow() error: %v", err)
	}
	for i, s := range rev {
		if s.Orientation != Orient180 {
			t.Errorf("ReverseRow() slot %d orientation = %v, want 180", i, s.Orientation)
		}
		if s.Y != 0 {
			t.Errorf("ReverseRow() slot %d y = %v, want 0", i, s.Y)
		}
		if want := room.Width - rows[0][i].Right(); s.X != want {
			t.Errorf("ReverseRow() slot %d x = %v, want %v", i, s.X, want)
		}
	}

	again, err := ReverseRow(rev, room)
	if err != nil {
		t.Fatalf("ReverseRow() error: %v", err)
	}
	if !reflect.DeepEqual(again, rows[0]) {
		t.Errorf("ReverseRow() twice = %+v, want %+v", again, rows[0])
	}
}

func TestRows(t *testing.T) {
	slots := []Slot{
		{Rect: Rect{X: 10, Y: 5}},
		{Rect: Rect{X: 0, Y: 5}},
		{Rect: Rect{X: 10, Y: 0}},
	}
	rows := Rows(slots)
	if len(rows) != 2 {
		t.Fatalf("Rows() = %d rows, want 2", len(rows))
	}
	if len(rows[0]) != 2 || rows[0][0].X != 10 || rows[0][1].X != 0 {
		t.Errorf("Rows()[0] = %+v, want emission order", rows[0])
	}
	if Rows(nil) != nil {
		t.Errorf("Rows(nil) should be nil")
	}
}
