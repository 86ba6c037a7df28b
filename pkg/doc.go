// Package pkg provides the core libraries for Pegplanner pegboard layouts.
//
// # Overview
//
// A layout is a board (size, color, texture) with catalog items hung on its
// peg grid. The pkg directory is organized leaves first:
//
//  1. [grid] - Cell and pixel math, rotations, footprints
//  2. [catalog] - Item templates, board sizes, colors and textures
//  3. [layout] - The authoritative model and its render snapshot
//  4. [placement] - Drag, click and keyboard state machine
//  5. [store], [persist] - Key/value backends and the saved record
//  6. [render] - SVG, PNG and PDF output, selection-free export
//  7. [planner] - The controller tying everything together
//
// # Architecture
//
// The typical data flow:
//
//	pointer / key events
//	         ↓
//	    [placement] engine (ghost preview, validation)
//	         ↓
//	    [layout] mutation (version bump)
//	         ↓
//	    [persist] save through a [store] backend
//	         ↓
//	    [render] on demand (SVG/PNG/PDF)
//
// # Quick Start
//
//	import (
//	    "context"
//	    "os"
//
//	    "github.com/matzehuels/pegplanner/pkg/grid"
//	    "github.com/matzehuels/pegplanner/pkg/planner"
//	    "github.com/matzehuels/pegplanner/pkg/store"
//	)
//
//	func main() {
//	    ctx := context.Background()
//	    s, _ := store.NewFileStore("layouts")
//	    defer s.Close()
//
//	    p, _ := planner.Open(ctx, planner.Options{Store: s})
//	    p.Place(ctx, "bin-small", grid.Cell{X: 2, Y: 2})
//	    p.Export(ctx, os.Stdout, planner.FormatSVG)
//	}
//
// [grid]: https://pkg.go.dev/github.com/matzehuels/pegplanner/pkg/grid
// [catalog]: https://pkg.go.dev/github.com/matzehuels/pegplanner/pkg/catalog
// [layout]: https://pkg.go.dev/github.com/matzehuels/pegplanner/pkg/layout
// [placement]: https://pkg.go.dev/github.com/matzehuels/pegplanner/pkg/placement
// [store]: https://pkg.go.dev/github.com/matzehuels/pegplanner/pkg/store
// [persist]: https://pkg.go.dev/github.com/matzehuels/pegplanner/pkg/persist
// [render]: https://pkg.go.dev/github.com/matzehuels/pegplanner/pkg/render
// [planner]: https://pkg.go.dev/github.com/matzehuels/pegplanner/pkg/planner
package pkg
