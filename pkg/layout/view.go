package layout

import (
	"github.com/matzehuels/pegplanner/pkg/catalog"
	"github.com/matzehuels/pegplanner/pkg/grid"
)

// View is a read-only snapshot of a layout, resolved against the catalog,
// for renderers.
type View struct {
	Board   catalog.BoardSize
	Color   catalog.BoardColor
	Texture catalog.BoardTexture
	Items   []ViewItem
	Ghost   *Ghost
}

// ViewItem is a placed item together with everything needed to draw it.
type ViewItem struct {
	PlacedItem
	Template  catalog.ItemTemplate
	Footprint grid.Size
	Selected  bool
	Dragging  bool // being relocated; renderers hide or fade it
	Clipped   bool // overflows the board after a resize
}

// Ghost is the advisory drop target shown while dragging.
type Ghost struct {
	Template  catalog.ItemTemplate
	Cell      grid.Cell
	Footprint grid.Size
}

// ViewOptions adjusts what [Layout.View] reports.
type ViewOptions struct {
	// DraggingID marks the item currently being relocated.
	DraggingID string
	// HideSelection reports no item as selected, for clean exports.
	HideSelection bool
	// Ghost is copied into the view as-is.
	Ghost *Ghost
}

// View returns a snapshot of the layout. Items whose template no longer
// resolves are left out.
func (l *Layout) View(opts ViewOptions) View {
	color, err := l.cat.Color(l.board.ColorID)
	if err != nil {
		color = l.cat.DefaultColor()
	}
	texture, err := l.cat.Texture(l.board.TextureID)
	if err != nil {
		texture = l.cat.DefaultTexture()
	}

	v := View{
		Board:   l.board.Size,
		Color:   color,
		Texture: texture,
		Items:   make([]ViewItem, 0, len(l.items)),
		Ghost:   opts.Ghost,
	}
	board := l.BoardSize()
	for _, item := range l.items {
		tmpl, err := l.cat.Template(item.TemplateID)
		if err != nil {
			continue
		}
		fp := tmpl.Footprint(item.Rotation)
		v.Items = append(v.Items, ViewItem{
			PlacedItem: item,
			Template:   tmpl,
			Footprint:  fp,
			Selected:   !opts.HideSelection && item.ID == l.selected,
			Dragging:   opts.DraggingID != "" && item.ID == opts.DraggingID,
			Clipped:    !grid.Fits(item.Cell(), fp, board),
		})
	}
	return v
}
