package placement

import (
	"testing"

	"github.com/matzehuels/pegplanner/pkg/grid"
)

func TestParseKey(t *testing.T) {
	tests := []struct {
		name string
		want Key
	}{
		{"ArrowLeft", KeyLeft},
		{"ArrowRight", KeyRight},
		{"ArrowUp", KeyUp},
		{"ArrowDown", KeyDown},
		{"left", KeyLeft},
		{"down", KeyDown},
		{"r", KeyRotate},
		{"R", KeyRotate},
		{"Delete", KeyDelete},
		{"Backspace", KeyDelete},
		{"delete", KeyDelete},
		{"backspace", KeyDelete},
		{"x", KeyNone},
		{"", KeyNone},
	}
	for _, tt := range tests {
		if got := ParseKey(tt.name); got != tt.want {
			t.Errorf("ParseKey(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestKeyArrows(t *testing.T) {
	tests := []struct {
		name    string
		start   grid.Cell
		key     Key
		want    grid.Cell
		changed bool
	}{
		{"right", grid.Cell{X: 5, Y: 5}, KeyRight, grid.Cell{X: 6, Y: 5}, true},
		{"left", grid.Cell{X: 5, Y: 5}, KeyLeft, grid.Cell{X: 4, Y: 5}, true},
		{"up", grid.Cell{X: 5, Y: 5}, KeyUp, grid.Cell{X: 5, Y: 4}, true},
		{"down", grid.Cell{X: 5, Y: 5}, KeyDown, grid.Cell{X: 5, Y: 6}, true},
		{"left edge", grid.Cell{X: 0, Y: 5}, KeyLeft, grid.Cell{X: 0, Y: 5}, false},
		{"bottom edge", grid.Cell{X: 5, Y: 22}, KeyDown, grid.Cell{X: 5, Y: 22}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEngine(t)
			l := e.Layout()
			id, _ := l.AddItem("hook-double", tt.start, grid.Rot0)
			l.Select(id)
			if got := e.Key(tt.key); got != tt.changed {
				t.Errorf("Key(%v) = %v, want %v", tt.key, got, tt.changed)
			}
			item, _ := l.Item(id)
			if item.Cell() != tt.want {
				t.Errorf("item at %v, want %v", item.Cell(), tt.want)
			}
		})
	}
}

func TestKeyRotateAndDelete(t *testing.T) {
	e := newEngine(t)
	l := e.Layout()
	id, _ := l.AddItem("hook-long", grid.Cell{X: 23, Y: 0}, grid.Rot0)
	l.Select(id)

	if !e.Key(KeyRotate) {
		t.Fatal("rotate key ignored")
	}
	item, _ := l.Item(id)
	if item.Rotation != grid.Rot90 || item.X != 20 {
		t.Errorf("after rotate item = %+v, want 90° clamped to x=20", item)
	}

	if !e.Key(KeyDelete) {
		t.Fatal("delete key ignored")
	}
	if l.Len() != 0 || l.Selected() != "" {
		t.Errorf("after delete: %d items, selection %q", l.Len(), l.Selected())
	}
}

func TestKeySuppressed(t *testing.T) {
	e := newEngine(t)
	l := e.Layout()
	id, _ := l.AddItem("hook-double", grid.Cell{X: 5, Y: 5}, grid.Rot0)

	if e.Key(KeyRight) {
		t.Error("key handled without a selection")
	}

	e.BeginItemDrag(id, grid.Point{X: origin.X + 5*32, Y: origin.Y + 5*32})
	v := l.Version()
	for _, k := range []Key{KeyRight, KeyRotate, KeyDelete} {
		if e.Key(k) {
			t.Errorf("Key(%v) handled during drag", k)
		}
	}
	if l.Version() != v || l.Len() != 1 {
		t.Error("keys mutated the layout during a drag")
	}

	e.Cancel()
	if e.Key(KeyNone) {
		t.Error("KeyNone handled")
	}
}

func TestNudge(t *testing.T) {
	e := newEngine(t)
	l := e.Layout()
	id, _ := l.AddItem("hook-single", grid.Cell{X: 1, Y: 1}, grid.Rot0)
	if !e.Nudge(id, KeyUp) {
		t.Fatal("Nudge up rejected")
	}
	if item, _ := l.Item(id); item.Cell() != (grid.Cell{X: 1, Y: 0}) {
		t.Errorf("item at %v", item.Cell())
	}
	if e.Nudge(id, KeyUp) {
		t.Error("Nudge off the board accepted")
	}
	if e.Nudge(id, KeyRotate) {
		t.Error("Nudge with a non-arrow key accepted")
	}
}
