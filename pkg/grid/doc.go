// Package grid converts between pointer pixels and board cells and computes
// rotated item footprints.
//
// All layout coordinates are integer cells. A cell is GridSize pixels wide
// on screen; [PixelToCell] snaps a continuous pointer coordinate to the
// nearest gridline, which is what makes drops land where the user expects.
//
// # Footprints
//
// An item's logical footprint is its template size with width and height
// swapped for quarter turns:
//
//	grid.Footprint(grid.Size{Width: 2, Height: 24}, grid.Rot90) // {24 2}
//	grid.Footprint(grid.Size{Width: 2, Height: 24}, grid.Rot180) // {2 24}
//
// [Fits] is the single bounds predicate shared by placement, moves and the
// drag preview.
package grid
