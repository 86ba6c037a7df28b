// Package planner ties the layout model, the placement engine and
// persistence together behind one controller.
//
// A [Planner] owns a single layout. Every entry point, whether a pointer
// [Event] from an interactive front end or a direct operation such as
// [Planner.Rotate], runs synchronously and saves the layout afterwards if
// it changed. A failed save is logged and returned but never rolls back the
// change.
//
//	p, err := planner.Open(ctx, planner.Options{Store: s, Logger: logger})
//	id, ok, err := p.Place(ctx, "hook-single", grid.Cell{X: 3, Y: 4})
//	err = p.Rotate(ctx, id)
//	err = p.Export(ctx, w, planner.FormatPNG)
//
// A Planner is not safe for concurrent use; callers serialize access.
package planner
