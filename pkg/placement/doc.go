// Package placement turns pointer and keyboard input into layout mutations.
//
// An [Engine] wraps a [layout.Layout] and tracks at most one drag session.
// Front ends translate their own events into engine calls:
//
//	e := placement.New(l, placement.Config{GridSize: 32})
//	e.BeginPaletteDrag("hook-single", grid.Point{X: 40, Y: 40})
//	e.PointerMove(grid.Point{X: 120, Y: 96}) // ghost preview
//	res := e.PointerUp(grid.Point{X: 120, Y: 96})
//
// Drops snap to the nearest cell and are validated against the board
// bounds using the item's rotated footprint. Invalid drops are discarded;
// the engine always returns to [Idle] on pointer-up.
//
// Keyboard bindings act on the selected item only while no drag is active.
package placement
