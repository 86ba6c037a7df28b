package render

import (
	"bytes"
	"fmt"
	"image/color"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/matzehuels/pegplanner/pkg/catalog"
	"github.com/matzehuels/pegplanner/pkg/layout"
)

var (
	labelFont     *truetype.Font
	labelFontErr  error
	labelFontOnce sync.Once
)

func loadLabelFont() (*truetype.Font, error) {
	labelFontOnce.Do(func() {
		labelFont, labelFontErr = truetype.Parse(goregular.TTF)
	})
	return labelFont, labelFontErr
}

// RenderPNG rasterizes v. The image is the board size times the cell size
// times the scale, on an opaque background in the board color.
func RenderPNG(v layout.View, opts ...Option) ([]byte, error) {
	c := newConfig(opts)
	g := c.cellSize
	width := int(float64(v.Board.Width) * g * c.scale)
	height := int(float64(v.Board.Height) * g * c.scale)
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("render png: empty board %dx%d", v.Board.Width, v.Board.Height)
	}

	dc := gg.NewContext(width, height)
	dc.SetColor(parseHex(v.Color.Background))
	dc.Clear()
	dc.Scale(c.scale, c.scale)

	drawTexture(dc, v, g)
	if c.holes {
		dc.SetColor(parseHex(v.Color.Hole))
		for y := 0; y < v.Board.Height; y++ {
			for x := 0; x < v.Board.Width; x++ {
				dc.DrawCircle((float64(x)+0.5)*g, (float64(y)+0.5)*g, g*0.12)
			}
		}
		dc.Fill()
	}

	if c.labels {
		f, err := loadLabelFont()
		if err != nil {
			return nil, fmt.Errorf("failed to parse font: %v", err)
		}
		dc.SetFontFace(truetype.NewFace(f, &truetype.Options{
			Size:    g * 0.3,
			DPI:     72,
			Hinting: font.HintingFull,
		}))
	}

	for _, it := range v.Items {
		drawItemPNG(dc, it, g, c.labels)
	}
	if v.Ghost != nil {
		drawGhostPNG(dc, *v.Ghost, g)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func drawTexture(dc *gg.Context, v layout.View, g float64) {
	t := v.Texture
	if t.Pattern == catalog.PatternNone || t.Opacity <= 0 {
		return
	}
	w := float64(v.Board.Width) * g
	h := float64(v.Board.Height) * g

	dc.Push()
	defer dc.Pop()
	dc.SetLineWidth(1)
	switch t.Pattern {
	case catalog.PatternGrain:
		dc.SetRGBA(0, 0, 0, 0.25*t.Opacity)
		for y := g / 3; y < h; y += g {
			dc.MoveTo(0, y)
			for x := 0.0; x < w; x += g {
				dc.QuadraticTo(x+g/4, y-g/8, x+g/2, y)
				dc.QuadraticTo(x+3*g/4, y+g/8, x+g, y)
			}
			dc.Stroke()
		}
	case catalog.PatternDots:
		dc.SetRGBA(0, 0, 0, 0.3*t.Opacity)
		for y := g / 4; y < h; y += g / 2 {
			for x := g / 4; x < w; x += g / 2 {
				dc.DrawCircle(x, y, 1)
			}
		}
		dc.Fill()
	case catalog.PatternDiagonal:
		dc.SetRGBA(1, 1, 1, 0.3*t.Opacity)
		for d := 0.0; d < w+h; d += g / 2 {
			dc.DrawLine(d, 0, d-h, h)
		}
		dc.Stroke()
	case catalog.PatternBrushed:
		dc.SetRGBA(1, 1, 1, 0.2*t.Opacity)
		for y := 1.0; y < h; y += g / 8 {
			dc.DrawLine(0, y, w, y)
		}
		dc.Stroke()
	}
}

func drawItemPNG(dc *gg.Context, it layout.ViewItem, g float64, labels bool) {
	b := boxFor(it.Cell(), it.Template.Size(), it.Footprint, it.Rotation, g)
	alpha := uint8(0xff)
	if it.Dragging {
		alpha = 0x4c
	}
	fill := withAlpha(parseHex(it.Template.Color), alpha)
	outline := withAlpha(parseHex(outlineColor), alpha)

	dc.Push()
	dc.Translate(b.CX, b.CY)
	dc.Rotate(gg.Radians(b.Angle))
	dc.Translate(-b.NW/2, -b.NH/2)

	dc.DrawRoundedRectangle(1, 1, b.NW-2, b.NH-2, 4)
	dc.SetColor(fill)
	dc.FillPreserve()
	dc.SetColor(outline)
	dc.SetLineWidth(1.5)
	dc.Stroke()

	for _, p := range it.Template.Pegs {
		dc.DrawCircle((float64(p)+0.5)*g, g*0.5, g*0.15)
	}
	dc.Fill()

	if labels {
		dc.SetColor(withAlpha(parseHex(labelColor), alpha))
		dc.DrawStringAnchored(it.Template.Name, b.NW/2, b.NH/2, 0.5, 0.5)
	}
	dc.Pop()

	switch {
	case it.Clipped:
		dc.SetColor(parseHex(clippedColor))
		dc.SetLineWidth(2)
		dc.SetDash(4, 3)
		dc.DrawRectangle(b.X, b.Y, b.W, b.H)
		dc.Stroke()
		dc.SetDash()
	case it.Selected:
		dc.SetColor(parseHex(selectionColor))
		dc.SetLineWidth(3)
		dc.DrawRectangle(b.X-2, b.Y-2, b.W+4, b.H+4)
		dc.Stroke()
	}
}

func drawGhostPNG(dc *gg.Context, gh layout.Ghost, g float64) {
	x, y := float64(gh.Cell.X)*g, float64(gh.Cell.Y)*g
	w, h := float64(gh.Footprint.Width)*g, float64(gh.Footprint.Height)*g
	dc.DrawRoundedRectangle(x, y, w, h, 4)
	dc.SetColor(withAlpha(parseHex(gh.Template.Color), 0x59))
	dc.FillPreserve()
	dc.SetColor(parseHex(selectionColor))
	dc.SetLineWidth(2)
	dc.SetDash(6, 4)
	dc.Stroke()
	dc.SetDash()
}

// withAlpha returns c with alpha a, premultiplied as image/color expects.
func withAlpha(c color.RGBA, a uint8) color.RGBA {
	if a == 0xff {
		return c
	}
	scale := func(v uint8) uint8 { return uint8(uint16(v) * uint16(a) / 0xff) }
	return color.RGBA{R: scale(c.R), G: scale(c.G), B: scale(c.B), A: a}
}
