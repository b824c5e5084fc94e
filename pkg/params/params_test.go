package params

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/cafeplan/pkg/core/floor"
	"github.com/matzehuels/cafeplan/pkg/errors"
)

func TestDefaultRequest(t *testing.T) {
	got, err := Default().Request()
	if err != nil {
		t.Fatalf("Request() error: %v", err)
	}
	if want := floor.DefaultRequest(); !reflect.DeepEqual(got, want) {
		t.Errorf("Default().Request() = %+v, want %+v", got, want)
	}
}

func TestRequestUnits(t *testing.T) {
	p := Default()
	p.Room = Size{Size: "7x5", Unit: "m"}
	p.Aisle = Size{Size: "0.5m"}
	p.SetDesk("150x80", "")

	req, err := p.Request()
	if err != nil {
		t.Fatalf("Request() error: %v", err)
	}
	if req.Room != (floor.Dimension{Width: 700, Height: 500}) {
		t.Errorf("room = %+v, want 700x500", req.Room)
	}
	if req.AisleGap != 50 {
		t.Errorf("aisle = %v, want 50", req.AisleGap)
	}
	if req.Desk == nil || *req.Desk != (floor.Dimension{Width: 150, Height: 80}) {
		t.Errorf("desk = %+v, want 150x80", req.Desk)
	}
}

func TestRequestErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Parameters)
		code   errors.Code
	}{
		{"malformed room", func(p *Parameters) { p.Room.Size = "abc" }, errors.ErrCodeMalformedSize},
		{"scalar table", func(p *Parameters) { p.Table.Size = "120" }, errors.ErrCodeMalformedSize},
		{"pair aisle", func(p *Parameters) { p.Aisle.Size = "1x2" }, errors.ErrCodeMalformedSize},
		{"bad unit", func(p *Parameters) { p.Chair.Unit = "inch" }, errors.ErrCodeInvalidUnit},
		{"zero chair", func(p *Parameters) { p.Chair.Size = "0x60" }, errors.ErrCodeValidation},
		{"empty desk", func(p *Parameters) { p.SetDesk("0x0", "cm") }, errors.ErrCodeValidation},
		{"desk too large", func(p *Parameters) { p.SetDesk("8x1", "m") }, errors.ErrCodeValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Default()
			tt.mutate(&p)
			err := p.Validate()
			if !errors.Is(err, tt.code) {
				t.Errorf("Validate() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestRemoveDesk(t *testing.T) {
	p := Default()
	p.SetDesk("150x80", "cm")
	if !p.HasDesk() {
		t.Fatal("HasDesk() = false after SetDesk")
	}
	p.RemoveDesk()
	if p.HasDesk() {
		t.Error("HasDesk() = true after RemoveDesk")
	}
	req, err := p.Request()
	if err != nil {
		t.Fatalf("Request() error: %v", err)
	}
	if req.Desk != nil {
		t.Errorf("Request().Desk = %+v, want nil", req.Desk)
	}
}

func TestHash(t *testing.T) {
	a := Default()
	b := Default()
	b.Room = Size{Size: "7x5", Unit: "m"}

	ha, err := a.Hash()
	if err != nil {
		t.Fatalf("Hash() error: %v", err)
	}
	hb, err := b.Hash()
	if err != nil {
		t.Fatalf("Hash() error: %v", err)
	}
	if ha != hb {
		t.Errorf("Hash() differs for equal rooms in cm and m: %s vs %s", ha, hb)
	}
	if len(ha) != 64 {
		t.Errorf("Hash() length = %d, want 64", len(ha))
	}

	b.Aisle.Size = "100"
	hc, _ := b.Hash()
	if hc == ha {
		t.Error("Hash() did not change with the aisle gap")
	}
}

func TestDecodeMergesDefaults(t *testing.T) {
	tests := []struct {
		name   string
		format FileFormat
		input  string
	}{
		{"toml", TOML, "[room]\nsize = \"8x6\"\nunit = \"m\"\n\n[desk]\nsize = \"150x80\"\npresent = true\n"},
		{"yaml", YAML, "room:\n  size: 8x6\n  unit: m\ndesk:\n  size: 150x80\n  present: true\n"},
		{"json", JSON, `{"room": {"size": "8x6", "unit": "m"}, "desk": {"size": "150x80", "present": true}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Decode(strings.NewReader(tt.input), tt.format)
			if err != nil {
				t.Fatalf("Decode() error: %v", err)
			}
			if p.Table != Default().Table {
				t.Errorf("table = %+v, want default", p.Table)
			}
			req, err := p.Request()
			if err != nil {
				t.Fatalf("Request() error: %v", err)
			}
			if req.Room.Width != 800 || req.Room.Height != 600 {
				t.Errorf("room = %+v, want 800x600", req.Room)
			}
			if req.Desk == nil || req.Desk.Width != 150 {
				t.Errorf("desk = %+v, want 150x80", req.Desk)
			}
		})
	}
}

func TestDecodeEmpty(t *testing.T) {
	for _, f := range []FileFormat{TOML, YAML, JSON} {
		p, err := Decode(strings.NewReader(""), f)
		if err != nil {
			t.Errorf("Decode(empty %s) error: %v", f, err)
			continue
		}
		if !reflect.DeepEqual(p, Default()) {
			t.Errorf("Decode(empty %s) = %+v, want defaults", f, p)
		}
	}
}

func TestDecodeErrors(t *testing.T) {
	if _, err := Decode(strings.NewReader("room = ["), TOML); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Decode(bad toml) error = %v, want INVALID_INPUT", err)
	}
	if _, err := Decode(strings.NewReader(`{"rooms": {}}`), JSON); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Decode(unknown json field) error = %v, want INVALID_INPUT", err)
	}
	if _, err := Decode(strings.NewReader(`{"room": {"size": "x"}}`), JSON); !errors.Is(err, errors.ErrCodeMalformedSize) {
		t.Errorf("Decode(bad size) error = %v, want MALFORMED_SIZE", err)
	}
	if _, err := Decode(strings.NewReader(""), FileFormat("ini")); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Decode(ini) error = %v, want INVALID_FORMAT", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	p := Default()
	p.SetDesk("1.5x0.8", "m")
	p.Aisle = Size{Size: "110", Unit: "cm"}

	for _, name := range []string{"room.toml", "room.yaml", "room.yml", "room.json"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := p.Save(path); err != nil {
				t.Fatalf("Save() error: %v", err)
			}
			got, err := Load(path)
			if err != nil {
				t.Fatalf("Load() error: %v", err)
			}
			if !reflect.DeepEqual(got, p) {
				t.Errorf("Load() = %+v, want %+v", got, p)
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	p, err := Load("")
	if err != nil || !reflect.DeepEqual(p, Default()) {
		t.Errorf("Load(\"\") = %+v, %v, want defaults", p, err)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Load(missing) error = %v, want NOT_FOUND", err)
	}

	path := filepath.Join(t.TempDir(), "room.ini")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Load(.ini) error = %v, want INVALID_FORMAT", err)
	}
}

func TestExampleRooms(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("..", "..", "examples", "rooms", "*"))
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) == 0 {
		t.Skip("no example rooms")
	}
	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			p, err := Load(path)
			if err != nil {
				t.Fatalf("Load() error: %v", err)
			}
			req, err := p.Request()
			if err != nil {
				t.Fatalf("Request() error: %v", err)
			}
			if _, err := floor.Compute(req); err != nil {
				t.Errorf("Compute() error: %v", err)
			}
		})
	}
}
