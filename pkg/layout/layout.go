package layout

import (
	"slices"

	"github.com/google/uuid"

	"github.com/matzehuels/pegplanner/pkg/catalog"
	"github.com/matzehuels/pegplanner/pkg/errors"
	"github.com/matzehuels/pegplanner/pkg/grid"
)

// PlacedItem is one template instance on the board. X and Y anchor the
// item's logical footprint at its top-left cell.
type PlacedItem struct {
	ID         string
	TemplateID string
	X, Y       int
	Rotation   grid.Rotation
}

// Cell returns the item's anchor cell.
func (p PlacedItem) Cell() grid.Cell { return grid.Cell{X: p.X, Y: p.Y} }

// BoardConfig is the selected board size, color and texture.
type BoardConfig struct {
	Size      catalog.BoardSize
	ColorID   string
	TextureID string
}

// Option configures a Layout created by [New].
type Option func(*Layout)

// WithIDGenerator replaces the uuid-based item id generator.
func WithIDGenerator(gen func() string) Option {
	return func(l *Layout) {
		if gen != nil {
			l.newID = gen
		}
	}
}

// WithBoard starts the layout with the given board instead of the catalog defaults.
func WithBoard(b BoardConfig) Option {
	return func(l *Layout) { l.board = b }
}

// Layout is the board configuration, the placed items and the selection.
type Layout struct {
	cat      *catalog.Catalog
	board    BoardConfig
	items    []PlacedItem
	selected string
	version  uint64
	newID    func() string
}

// New returns an empty layout on the catalog's default board.
func New(cat *catalog.Catalog, opts ...Option) *Layout {
	l := &Layout{
		cat: cat,
		board: BoardConfig{
			Size:      cat.DefaultBoardSize(),
			ColorID:   cat.DefaultColor().ID,
			TextureID: cat.DefaultTexture().ID,
		},
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Catalog returns the catalog the layout resolves templates against.
func (l *Layout) Catalog() *catalog.Catalog { return l.cat }

// Board returns the board configuration.
func (l *Layout) Board() BoardConfig { return l.board }

// BoardSize returns the board extent in cells.
func (l *Layout) BoardSize() grid.Size { return l.board.Size.Size() }

// Items returns a copy of the placed items in paint order.
func (l *Layout) Items() []PlacedItem { return slices.Clone(l.items) }

// Len returns the number of placed items.
func (l *Layout) Len() int { return len(l.items) }

// Item returns the placed item with the given id.
func (l *Layout) Item(id string) (PlacedItem, bool) {
	if i := l.indexOf(id); i >= 0 {
		return l.items[i], true
	}
	return PlacedItem{}, false
}

// Selected returns the selected item id, or "" when nothing is selected.
func (l *Layout) Selected() string { return l.selected }

// Version increases with every committed change.
func (l *Layout) Version() uint64 { return l.version }

// Footprint returns the item's logical extent under its current rotation.
func (l *Layout) Footprint(item PlacedItem) (grid.Size, error) {
	tmpl, err := l.cat.Template(item.TemplateID)
	if err != nil {
		return grid.Size{}, err
	}
	return tmpl.Footprint(item.Rotation), nil
}

// Fits reports whether a template with rotation rot can be anchored at at.
func (l *Layout) Fits(templateID string, at grid.Cell, rot grid.Rotation) bool {
	tmpl, err := l.cat.Template(templateID)
	if err != nil {
		return false
	}
	return grid.Fits(at, tmpl.Footprint(rot), l.BoardSize())
}

// AddItem places a new item and returns its id. It returns "", false without
// changing anything when the template is unknown or the footprint would
// leave the board.
func (l *Layout) AddItem(templateID string, at grid.Cell, rot grid.Rotation) (string, bool) {
	if !rot.Valid() || !l.Fits(templateID, at, rot) {
		return "", false
	}
	id := l.newID()
	l.items = append(l.items, PlacedItem{
		ID:         id,
		TemplateID: templateID,
		X:          at.X,
		Y:          at.Y,
		Rotation:   rot,
	})
	l.touch()
	return id, true
}

// MoveItem moves an item to at, keeping its rotation. Destinations outside
// the board are rejected. Moving to the current position succeeds without
// counting as a change.
func (l *Layout) MoveItem(id string, at grid.Cell) bool {
	i := l.indexOf(id)
	if i < 0 {
		return false
	}
	item := &l.items[i]
	if !l.Fits(item.TemplateID, at, item.Rotation) {
		return false
	}
	if item.X == at.X && item.Y == at.Y {
		return true
	}
	item.X, item.Y = at.X, at.Y
	l.touch()
	return true
}

// RotateItem turns an item 90° clockwise. If the new footprint would overflow
// the board at the current anchor, the anchor is clamped back inside rather
// than rejecting the turn. It returns false only for an unknown id.
func (l *Layout) RotateItem(id string) bool {
	i := l.indexOf(id)
	if i < 0 {
		return false
	}
	item := &l.items[i]
	tmpl, err := l.cat.Template(item.TemplateID)
	if err != nil {
		return false
	}
	item.Rotation = item.Rotation.Next()
	at := grid.Clamp(item.Cell(), tmpl.Footprint(item.Rotation), l.BoardSize())
	item.X, item.Y = at.X, at.Y
	l.touch()
	return true
}

// RemoveItem deletes an item, clearing the selection if it was selected.
func (l *Layout) RemoveItem(id string) bool {
	i := l.indexOf(id)
	if i < 0 {
		return false
	}
	l.items = slices.Delete(l.items, i, i+1)
	if l.selected == id {
		l.selected = ""
	}
	l.touch()
	return true
}

// Clear removes every item and the selection.
func (l *Layout) Clear() {
	if len(l.items) == 0 && l.selected == "" {
		return
	}
	l.items = nil
	l.selected = ""
	l.touch()
}

// Select sets the selection. An empty id clears it; an unknown id is
// rejected and leaves the selection unchanged.
func (l *Layout) Select(id string) bool {
	if id != "" && l.indexOf(id) < 0 {
		return false
	}
	if l.selected != id {
		l.selected = id
		l.touch()
	}
	return true
}

// SetBoardSize switches the board dimensions. Existing items keep their
// positions even if they no longer fit.
func (l *Layout) SetBoardSize(id string) error {
	size, err := l.cat.BoardSize(id)
	if err != nil {
		return err
	}
	if l.board.Size != size {
		l.board.Size = size
		l.touch()
	}
	return nil
}

// SetColor switches the board color.
func (l *Layout) SetColor(id string) error {
	if _, err := l.cat.Color(id); err != nil {
		return err
	}
	if l.board.ColorID != id {
		l.board.ColorID = id
		l.touch()
	}
	return nil
}

// SetTexture switches the board texture.
func (l *Layout) SetTexture(id string) error {
	if _, err := l.cat.Texture(id); err != nil {
		return err
	}
	if l.board.TextureID != id {
		l.board.TextureID = id
		l.touch()
	}
	return nil
}

// OutOfBounds returns the ids of items whose footprint no longer fits the
// board, which only happens after the board was made smaller.
func (l *Layout) OutOfBounds() []string {
	var ids []string
	board := l.BoardSize()
	for _, item := range l.items {
		fp, err := l.Footprint(item)
		if err != nil || !grid.Fits(item.Cell(), fp, board) {
			ids = append(ids, item.ID)
		}
	}
	return ids
}

// Restore replaces the whole layout state, as read back from storage.
// Items with unknown templates or duplicate ids are skipped and returned;
// a selection that does not resolve is dropped.
func (l *Layout) Restore(board BoardConfig, items []PlacedItem, selected string) (skipped []PlacedItem, err error) {
	if _, err := l.cat.BoardSize(board.Size.ID); err != nil {
		return nil, err
	}
	if _, err := l.cat.Color(board.ColorID); err != nil {
		return nil, err
	}
	if _, err := l.cat.Texture(board.TextureID); err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(items))
	kept := make([]PlacedItem, 0, len(items))
	for _, item := range items {
		if !l.cat.HasTemplate(item.TemplateID) || item.ID == "" || seen[item.ID] {
			skipped = append(skipped, item)
			continue
		}
		item.Rotation = grid.NormalizeRotation(int(item.Rotation))
		seen[item.ID] = true
		kept = append(kept, item)
	}

	l.board = board
	l.items = kept
	l.selected = ""
	if seen[selected] {
		l.selected = selected
	}
	l.touch()
	return skipped, nil
}

// NewID returns a fresh item id from the layout's generator.
func (l *Layout) NewID() string { return l.newID() }

// ErrItemNotFound builds the coded error returned by callers that need to
// report a missing item rather than a silent rejection.
func ErrItemNotFound(id string) error {
	return errors.New(errors.ErrCodeItemNotFound, "no placed item %q", id)
}

func (l *Layout) indexOf(id string) int {
	if id == "" {
		return -1
	}
	return slices.IndexFunc(l.items, func(it PlacedItem) bool { return it.ID == id })
}

func (l *Layout) touch() { l.version++ }
