package render

import (
	"bytes"
	"fmt"
	"html"

	"github.com/matzehuels/pegplanner/pkg/catalog"
	"github.com/matzehuels/pegplanner/pkg/layout"
)

// RenderSVG draws v as an SVG document.
func RenderSVG(v layout.View, opts ...Option) []byte {
	c := newConfig(opts)
	g := c.cellSize
	width := float64(v.Board.Width) * g
	height := float64(v.Board.Height) * g

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.0f %.0f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)

	renderTextureDefs(&buf, v.Texture, g)
	fmt.Fprintf(&buf, `  <rect class="board" x="0" y="0" width="%.0f" height="%.0f" fill="%s"/>`+"\n",
		width, height, v.Color.Background)
	if v.Texture.Pattern != catalog.PatternNone {
		fmt.Fprintf(&buf, `  <rect class="texture" x="0" y="0" width="%.0f" height="%.0f" fill="url(#texture)" opacity="%.2f"/>`+"\n",
			width, height, v.Texture.Opacity)
	}
	if c.holes {
		renderHoles(&buf, v, g)
	}
	for _, it := range v.Items {
		renderItem(&buf, it, g, c.labels)
	}
	if v.Ghost != nil {
		renderGhost(&buf, *v.Ghost, g)
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderTextureDefs(buf *bytes.Buffer, t catalog.BoardTexture, g float64) {
	var body string
	size := g
	switch t.Pattern {
	case catalog.PatternGrain:
		body = fmt.Sprintf(`<path d="M0 %.1f Q %.1f %.1f %.1f %.1f T %.1f %.1f" stroke="#000" stroke-opacity="0.25" fill="none"/>`,
			size/3, size/4, size/5, size/2, size/3, size, size/3)
	case catalog.PatternDots:
		body = fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="1" fill="#000" fill-opacity="0.3"/>`, size/4, size/4)
		size = g / 2
	case catalog.PatternDiagonal:
		body = fmt.Sprintf(`<path d="M0 %.1f L %.1f 0" stroke="#fff" stroke-opacity="0.3"/>`, size/2, size/2)
		size = g / 2
	case catalog.PatternBrushed:
		body = fmt.Sprintf(`<path d="M0 1 H %.1f M0 %.1f H %.1f" stroke="#fff" stroke-opacity="0.2"/>`, size, size/2, size)
		size = g / 4
	default:
		return
	}
	fmt.Fprintf(buf, `  <defs><pattern id="texture" width="%.1f" height="%.1f" patternUnits="userSpaceOnUse">%s</pattern></defs>`+"\n",
		size, size, body)
}

func renderHoles(buf *bytes.Buffer, v layout.View, g float64) {
	r := g * 0.12
	fmt.Fprintf(buf, `  <g class="holes" fill="%s">`+"\n", v.Color.Hole)
	for y := 0; y < v.Board.Height; y++ {
		for x := 0; x < v.Board.Width; x++ {
			fmt.Fprintf(buf, `    <circle cx="%.1f" cy="%.1f" r="%.1f"/>`+"\n",
				(float64(x)+0.5)*g, (float64(y)+0.5)*g, r)
		}
	}
	buf.WriteString("  </g>\n")
}

func renderItem(buf *bytes.Buffer, it layout.ViewItem, g float64, labels bool) {
	b := boxFor(it.Cell(), it.Template.Size(), it.Footprint, it.Rotation, g)
	opacity := 1.0
	if it.Dragging {
		opacity = 0.3
	}

	fmt.Fprintf(buf, `  <g class="item" id="item-%s" data-template="%s" opacity="%.1f">`+"\n",
		html.EscapeString(it.ID), html.EscapeString(it.TemplateID), opacity)
	fmt.Fprintf(buf, `    <g transform="translate(%.1f %.1f) rotate(%.0f) translate(%.1f %.1f)">`+"\n",
		b.CX, b.CY, b.Angle, -b.NW/2, -b.NH/2)
	fmt.Fprintf(buf, `      <rect x="1" y="1" width="%.1f" height="%.1f" rx="4" fill="%s" stroke="%s" stroke-width="1.5"/>`+"\n",
		b.NW-2, b.NH-2, it.Template.Color, outlineColor)
	for _, p := range it.Template.Pegs {
		fmt.Fprintf(buf, `      <circle class="peg" cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>`+"\n",
			(float64(p)+0.5)*g, g*0.5, g*0.15, outlineColor)
	}
	if labels {
		fmt.Fprintf(buf, `      <text x="%.1f" y="%.1f" font-family="sans-serif" font-size="%.0f" fill="%s" text-anchor="middle" dominant-baseline="middle">%s</text>`+"\n",
			b.NW/2, b.NH/2, g*0.3, labelColor, html.EscapeString(it.Template.Name))
	}
	buf.WriteString("    </g>\n")

	switch {
	case it.Clipped:
		fmt.Fprintf(buf, `    <rect class="clipped" x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="none" stroke="%s" stroke-width="2" stroke-dasharray="4 3"/>`+"\n",
			b.X, b.Y, b.W, b.H, clippedColor)
	case it.Selected:
		fmt.Fprintf(buf, `    <rect class="selection" x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="none" stroke="%s" stroke-width="3"/>`+"\n",
			b.X-2, b.Y-2, b.W+4, b.H+4, selectionColor)
	}
	buf.WriteString("  </g>\n")
}

func renderGhost(buf *bytes.Buffer, gh layout.Ghost, g float64) {
	fmt.Fprintf(buf, `  <rect class="ghost" x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="4" fill="%s" fill-opacity="0.35" stroke="%s" stroke-width="2" stroke-dasharray="6 4"/>`+"\n",
		float64(gh.Cell.X)*g, float64(gh.Cell.Y)*g,
		float64(gh.Footprint.Width)*g, float64(gh.Footprint.Height)*g,
		gh.Template.Color, selectionColor)
}
