package grid

import "fmt"

// Rotation is a clockwise quarter-turn angle in degrees.
type Rotation int

// Supported rotations.
const (
	Rot0   Rotation = 0
	Rot90  Rotation = 90
	Rot180 Rotation = 180
	Rot270 Rotation = 270
)

// Rotations lists every valid rotation in turn order.
var Rotations = []Rotation{Rot0, Rot90, Rot180, Rot270}

// Valid reports whether r is one of the four quarter turns.
func (r Rotation) Valid() bool {
	switch r {
	case Rot0, Rot90, Rot180, Rot270:
		return true
	}
	return false
}

// Next returns r advanced by 90° modulo 360.
func (r Rotation) Next() Rotation {
	return NormalizeRotation(int(r) + 90)
}

// SwapsAxes reports whether r exchanges width and height.
func (r Rotation) SwapsAxes() bool {
	return r == Rot90 || r == Rot270
}

func (r Rotation) String() string { return fmt.Sprintf("%d°", int(r)) }

// NormalizeRotation reduces deg modulo 360 and maps anything that is not a
// multiple of 90 to [Rot0].
func NormalizeRotation(deg int) Rotation {
	deg %= 360
	if deg < 0 {
		deg += 360
	}
	r := Rotation(deg)
	if !r.Valid() {
		return Rot0
	}
	return r
}
