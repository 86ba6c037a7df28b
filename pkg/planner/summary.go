package planner

import (
	"github.com/matzehuels/pegplanner/pkg/catalog"
)

// Summary is the inventory shown by front ends.
type Summary struct {
	Board      catalog.BoardSize
	Color      catalog.BoardColor
	Texture    catalog.BoardTexture
	Items      int
	ByCategory map[catalog.Category]int
	// Clipped lists items that overflow the board after a resize.
	Clipped  []string
	Selected string
}

// Summary counts the placed items.
func (p *Planner) Summary() Summary {
	v := p.View()
	s := Summary{
		Board:      v.Board,
		Color:      v.Color,
		Texture:    v.Texture,
		Items:      len(v.Items),
		ByCategory: make(map[catalog.Category]int),
		Clipped:    p.l.OutOfBounds(),
		Selected:   p.l.Selected(),
	}
	for _, it := range v.Items {
		s.ByCategory[it.Template.Category]++
	}
	return s
}
