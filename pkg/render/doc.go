// Package render draws a [layout.View] as SVG or PNG and runs exports.
//
// # Output formats
//
//   - [RenderSVG] writes a self-contained SVG document at one pixel per
//     board pixel (cell size × cells).
//   - [RenderPNG] rasterizes the same drawing with gg at 2x by default,
//     on an opaque background in the active board color.
//   - [RenderPDF] converts the SVG through the external rsvg-convert tool.
//
// Items are drawn at their nominal size and rotated about the center of
// their rotated footprint, so the footprint is what bounds them on the
// board.
//
// # Export
//
// An [Exporter] clears the selection, waits [SettleDelay] for the cleared
// state to render, captures, and restores the selection whatever happens:
//
//	ex := render.Exporter{Capture: func(ctx context.Context) ([]byte, error) {
//	    return render.RenderPNG(l.View(layout.ViewOptions{}))
//	}}
//	err := ex.Export(ctx, l, w)
package render
