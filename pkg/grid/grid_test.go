package grid

import "testing"

func TestPixelToCell(t *testing.T) {
	tests := []struct {
		name  string
		pixel float64
		want  int
	}{
		{name: "origin", pixel: 0, want: 0},
		{name: "just below half", pixel: 15.9, want: 0},
		{name: "half rounds up", pixel: 16, want: 1},
		{name: "exact cell", pixel: 64, want: 2},
		{name: "negative half rounds toward zero", pixel: -16, want: 0},
		{name: "negative past half", pixel: -17, want: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PixelToCell(tt.pixel, 32); got != tt.want {
				t.Errorf("PixelToCell(%v) = %d, want %d", tt.pixel, got, tt.want)
			}
		})
	}
}

func TestCellToPixelRoundTrip(t *testing.T) {
	for c := -3; c <= 30; c++ {
		if got := PixelToCell(CellToPixel(c, 32), 32); got != c {
			t.Errorf("round trip of %d = %d", c, got)
		}
	}
}

func TestFootprint(t *testing.T) {
	s := Size{Width: 2, Height: 7}
	for _, r := range Rotations {
		fp := Footprint(s, r)
		swapped := fp.Width == s.Height && fp.Height == s.Width
		same := fp == s
		if r.SwapsAxes() && !swapped {
			t.Errorf("Footprint(%v, %v) = %v, want swapped", s, r, fp)
		}
		if !r.SwapsAxes() && !same {
			t.Errorf("Footprint(%v, %v) = %v, want unchanged", s, r, fp)
		}
	}
}

func TestFits(t *testing.T) {
	board := Size{Width: 24, Height: 24}
	tests := []struct {
		name string
		at   Cell
		fp   Size
		want bool
	}{
		{name: "origin", at: Cell{0, 0}, fp: Size{2, 2}, want: true},
		{name: "flush bottom right", at: Cell{22, 22}, fp: Size{2, 2}, want: true},
		{name: "overflow right", at: Cell{23, 23}, fp: Size{2, 2}, want: false},
		{name: "negative x", at: Cell{-1, 0}, fp: Size{1, 1}, want: false},
		{name: "negative y", at: Cell{0, -1}, fp: Size{1, 1}, want: false},
		{name: "full width", at: Cell{0, 0}, fp: Size{24, 2}, want: true},
		{name: "wider than board", at: Cell{0, 0}, fp: Size{25, 1}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Fits(tt.at, tt.fp, board); got != tt.want {
				t.Errorf("Fits(%v, %v) = %v, want %v", tt.at, tt.fp, got, tt.want)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	board := Size{Width: 24, Height: 24}
	tests := []struct {
		name string
		at   Cell
		fp   Size
		want Cell
	}{
		{name: "already inside", at: Cell{20, 0}, fp: Size{4, 1}, want: Cell{20, 0}},
		{name: "overflow right", at: Cell{23, 0}, fp: Size{4, 1}, want: Cell{20, 0}},
		{name: "overflow bottom", at: Cell{0, 20}, fp: Size{2, 7}, want: Cell{0, 17}},
		{name: "larger than board", at: Cell{3, 3}, fp: Size{30, 1}, want: Cell{0, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clamp(tt.at, tt.fp, board); got != tt.want {
				t.Errorf("Clamp(%v, %v) = %v, want %v", tt.at, tt.fp, got, tt.want)
			}
		})
	}
}

func TestRotationNext(t *testing.T) {
	r := Rot0
	seen := []Rotation{}
	for i := 0; i < 4; i++ {
		r = r.Next()
		seen = append(seen, r)
	}
	want := []Rotation{Rot90, Rot180, Rot270, Rot0}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("rotation sequence = %v, want %v", seen, want)
		}
	}
}

func TestNormalizeRotation(t *testing.T) {
	tests := map[int]Rotation{
		0:    Rot0,
		90:   Rot90,
		360:  Rot0,
		450:  Rot90,
		-90:  Rot270,
		45:   Rot0,
		-180: Rot180,
	}
	for in, want := range tests {
		if got := NormalizeRotation(in); got != want {
			t.Errorf("NormalizeRotation(%d) = %v, want %v", in, got, want)
		}
	}
}
