// Package layout is the authoritative in-memory model of a pegboard plan.
//
// A [Layout] holds the board configuration, the ordered list of placed items
// (insertion order is paint order, later items draw on top) and the current
// selection. It is mutated only through its named operations:
//
//	l := layout.New(catalog.Default())
//	id, ok := l.AddItem("hook-double", grid.Cell{X: 3, Y: 4}, grid.Rot0)
//	l.MoveItem(id, grid.Cell{X: 4, Y: 4})
//	l.RotateItem(id)
//
// Placements that would leave the board are rejected by returning false and
// leave the layout untouched. Rotation is the one exception: it always
// succeeds and pulls the item back inside the board instead.
//
// Changing the board size never relocates items. Items that no longer fit
// are reported by [Layout.OutOfBounds] and drawn clipped by the renderers.
//
// Every committed change bumps [Layout.Version], which the planner uses to
// decide when to persist. A Layout is not safe for concurrent use.
package layout
