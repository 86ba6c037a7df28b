package grid

import (
	"fmt"
	"math"
)

// DefaultSize is the on-screen size of one cell in pixels.
const DefaultSize = 32.0

// Cell is an integer board position. X grows right, Y grows down.
type Cell struct {
	X, Y int
}

// Add returns c offset by dx, dy.
func (c Cell) Add(dx, dy int) Cell { return Cell{X: c.X + dx, Y: c.Y + dy} }

func (c Cell) String() string { return fmt.Sprintf("(%d,%d)", c.X, c.Y) }

// Point is a pixel position in pointer space.
type Point struct {
	X, Y float64
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// Add returns p + q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Size is a width × height extent in cells.
type Size struct {
	Width, Height int
}

func (s Size) String() string { return fmt.Sprintf("%dx%d", s.Width, s.Height) }

// PixelToCell snaps a pixel offset to the nearest cell index.
// Halves round up (toward +∞), so -16px on a 32px grid snaps to 0, not -1.
func PixelToCell(pixel, gridSize float64) int {
	return int(math.Floor(pixel/gridSize + 0.5))
}

// PointToCell snaps both axes of p with [PixelToCell].
func PointToCell(p Point, gridSize float64) Cell {
	return Cell{X: PixelToCell(p.X, gridSize), Y: PixelToCell(p.Y, gridSize)}
}

// CellToPixel returns the pixel offset of a cell's top-left corner.
func CellToPixel(cell int, gridSize float64) float64 {
	return float64(cell) * gridSize
}

// CellToPoint returns the pixel position of c's top-left corner.
func CellToPoint(c Cell, gridSize float64) Point {
	return Point{X: CellToPixel(c.X, gridSize), Y: CellToPixel(c.Y, gridSize)}
}

// Footprint returns the logical extent of an item of nominal size s under
// rotation r. Quarter turns swap the axes; 0° and 180° leave them unchanged.
func Footprint(s Size, r Rotation) Size {
	if r.SwapsAxes() {
		return Size{Width: s.Height, Height: s.Width}
	}
	return s
}

// Fits reports whether a footprint anchored at at lies fully inside board.
func Fits(at Cell, fp Size, board Size) bool {
	return at.X >= 0 && at.Y >= 0 &&
		at.X+fp.Width <= board.Width &&
		at.Y+fp.Height <= board.Height
}

// Clamp moves at to the largest position not beyond it that keeps fp inside
// board, floored at 0 on each axis. A footprint larger than the board is
// anchored at 0 and still overflows.
func Clamp(at Cell, fp Size, board Size) Cell {
	return Cell{
		X: max(0, min(at.X, board.Width-fp.Width)),
		Y: max(0, min(at.Y, board.Height-fp.Height)),
	}
}
