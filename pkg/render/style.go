package render

import (
	"image/color"
	"strconv"
	"strings"

	"github.com/matzehuels/pegplanner/pkg/grid"
)

// Fixed colors not taken from the catalog.
const (
	selectionColor = "#3b82f6"
	clippedColor   = "#ef4444"
	outlineColor   = "#1f2937"
	labelColor     = "#ffffff"
)

// Option configures rendering.
type Option func(*config)

type config struct {
	cellSize float64
	scale    float64
	labels   bool
	holes    bool
}

func newConfig(opts []Option) config {
	c := config{cellSize: grid.DefaultSize, scale: 2, labels: true, holes: true}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// WithCellSize sets the pixel size of one cell (default 32).
func WithCellSize(px float64) Option {
	return func(c *config) {
		if px > 0 {
			c.cellSize = px
		}
	}
}

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
// SVG output ignores it.
func WithScale(s float64) Option {
	return func(c *config) {
		if s > 0 {
			c.scale = s
		}
	}
}

// WithoutLabels omits item names.
func WithoutLabels() Option { return func(c *config) { c.labels = false } }

// WithoutHoles omits the peg hole grid.
func WithoutHoles() Option { return func(c *config) { c.holes = false } }

// parseHex reads #rgb or #rrggbb. Anything else is opaque gray.
func parseHex(s string) color.RGBA {
	s = strings.TrimPrefix(s, "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if len(s) != 6 || err != nil {
		return color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}

// itemBox is the pixel geometry of one item.
type itemBox struct {
	// X, Y, W, H bound the rotated footprint.
	X, Y, W, H float64
	// CX, CY is the rotation center.
	CX, CY float64
	// NW, NH is the unrotated drawing size.
	NW, NH float64
	Angle  float64
}

func boxFor(cell grid.Cell, nominal, fp grid.Size, rot grid.Rotation, g float64) itemBox {
	x, y := float64(cell.X)*g, float64(cell.Y)*g
	w, h := float64(fp.Width)*g, float64(fp.Height)*g
	return itemBox{
		X: x, Y: y, W: w, H: h,
		CX: x + w/2, CY: y + h/2,
		NW: float64(nominal.Width) * g, NH: float64(nominal.Height) * g,
		Angle: float64(rot),
	}
}
