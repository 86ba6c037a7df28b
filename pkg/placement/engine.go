package placement

import (
	"fmt"

	"github.com/matzehuels/pegplanner/pkg/catalog"
	"github.com/matzehuels/pegplanner/pkg/grid"
	"github.com/matzehuels/pegplanner/pkg/layout"
)

// State is the drag state of an [Engine].
type State int

const (
	Idle State = iota
	DraggingNew
	DraggingExisting
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case DraggingNew:
		return "dragging-new"
	case DraggingExisting:
		return "dragging-existing"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Config holds the pointer-space geometry of the board.
type Config struct {
	// GridSize is the pixel size of one cell. Zero means [grid.DefaultSize].
	GridSize float64
	// Origin is the board's top-left corner in pointer space.
	Origin grid.Point
}

// Session describes the drag in progress.
type Session struct {
	Kind       State
	TemplateID string // set for DraggingNew
	ItemID     string // set for DraggingExisting
	Offset     grid.Point // pointer minus the dragged item's top-left pixel
	From       grid.Cell  // pre-drag cell of an existing item
	Rotation   grid.Rotation
	Pointer    grid.Point
}

// Preview is the advisory ghost shown while dragging.
type Preview struct {
	Active    bool
	Template  catalog.ItemTemplate
	Cell      grid.Cell
	Footprint grid.Size
	// Visible reports whether a drop at Cell would be accepted.
	Visible bool
}

// Outcome classifies what a pointer-up did.
type Outcome int

const (
	NoDrag Outcome = iota
	Placed
	Moved
	Rejected
)

func (o Outcome) String() string {
	switch o {
	case NoDrag:
		return "no-drag"
	case Placed:
		return "placed"
	case Moved:
		return "moved"
	case Rejected:
		return "rejected"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// Result reports the effect of [Engine.PointerUp].
type Result struct {
	Outcome Outcome
	ItemID  string
	Cell    grid.Cell
}

// Committed reports whether the layout was changed.
func (r Result) Committed() bool { return r.Outcome == Placed || r.Outcome == Moved }

// Engine is the drag/keyboard/click state machine over a layout.
// It is not safe for concurrent use.
type Engine struct {
	l       *layout.Layout
	cfg     Config
	session *Session
	preview Preview
}

// New returns an idle engine over l.
func New(l *layout.Layout, cfg Config) *Engine {
	if cfg.GridSize <= 0 {
		cfg.GridSize = grid.DefaultSize
	}
	return &Engine{l: l, cfg: cfg}
}

// Layout returns the layout the engine mutates.
func (e *Engine) Layout() *layout.Layout { return e.l }

// GridSize returns the cell size in pixels.
func (e *Engine) GridSize() float64 { return e.cfg.GridSize }

// Origin returns the board origin in pointer space.
func (e *Engine) Origin() grid.Point { return e.cfg.Origin }

// SetOrigin moves the board origin, for front ends whose board scrolls.
func (e *Engine) SetOrigin(p grid.Point) { e.cfg.Origin = p }

// State returns the current drag state.
func (e *Engine) State() State {
	if e.session == nil {
		return Idle
	}
	return e.session.Kind
}

// Dragging returns the active session, if any.
func (e *Engine) Dragging() (Session, bool) {
	if e.session == nil {
		return Session{}, false
	}
	return *e.session, true
}

// DraggingItemID returns the id of the placed item being relocated, or "".
func (e *Engine) DraggingItemID() string {
	if e.session == nil || e.session.Kind != DraggingExisting {
		return ""
	}
	return e.session.ItemID
}

// Preview returns the last computed ghost.
func (e *Engine) Preview() Preview { return e.preview }

// Ghost returns the preview as a view ghost, or nil when nothing should be drawn.
func (e *Engine) Ghost() *layout.Ghost {
	if !e.preview.Active || !e.preview.Visible {
		return nil
	}
	return &layout.Ghost{
		Template:  e.preview.Template,
		Cell:      e.preview.Cell,
		Footprint: e.preview.Footprint,
	}
}

// BeginPaletteDrag starts dragging a new item from the palette. The drag
// handle is taken to be the center of the item's first cell. Starting a
// palette drag clears the selection.
func (e *Engine) BeginPaletteDrag(templateID string, pointer grid.Point) bool {
	if e.session != nil {
		return false
	}
	tmpl, err := e.l.Catalog().Template(templateID)
	if err != nil {
		return false
	}
	half := e.cfg.GridSize / 2
	e.session = &Session{
		Kind:       DraggingNew,
		TemplateID: tmpl.ID,
		Offset:     grid.Point{X: half, Y: half},
		Rotation:   tmpl.DefaultRotation,
		Pointer:    pointer,
	}
	e.l.Select("")
	e.recompute()
	return true
}

// BeginItemDrag starts relocating a placed item and selects it. The offset
// keeps the pixel under the pointer fixed relative to the item.
func (e *Engine) BeginItemDrag(itemID string, pointer grid.Point) bool {
	if e.session != nil {
		return false
	}
	item, ok := e.l.Item(itemID)
	if !ok {
		return false
	}
	topLeft := e.cfg.Origin.Add(grid.CellToPoint(item.Cell(), e.cfg.GridSize))
	e.session = &Session{
		Kind:     DraggingExisting,
		ItemID:   item.ID,
		Offset:   pointer.Sub(topLeft),
		From:     item.Cell(),
		Rotation: item.Rotation,
		Pointer:  pointer,
	}
	e.l.Select(item.ID)
	e.recompute()
	return true
}

// PointerMove updates the ghost preview. It is a no-op when idle.
func (e *Engine) PointerMove(pointer grid.Point) Preview {
	if e.session == nil {
		return e.preview
	}
	e.session.Pointer = pointer
	e.recompute()
	return e.preview
}

// PointerUp ends the drag, committing the drop if it fits. The engine is
// idle afterwards whatever the outcome.
func (e *Engine) PointerUp(pointer grid.Point) Result {
	s := e.session
	if s == nil {
		return Result{Outcome: NoDrag}
	}
	e.session = nil
	e.preview = Preview{}

	cell := e.target(pointer, s.Offset)
	switch s.Kind {
	case DraggingNew:
		id, ok := e.l.AddItem(s.TemplateID, cell, s.Rotation)
		if !ok {
			return Result{Outcome: Rejected, Cell: cell}
		}
		e.l.Select(id)
		return Result{Outcome: Placed, ItemID: id, Cell: cell}
	case DraggingExisting:
		if !e.l.MoveItem(s.ItemID, cell) {
			return Result{Outcome: Rejected, ItemID: s.ItemID, Cell: cell}
		}
		return Result{Outcome: Moved, ItemID: s.ItemID, Cell: cell}
	}
	return Result{Outcome: NoDrag}
}

// Cancel abandons the drag without committing anything.
func (e *Engine) Cancel() {
	e.session = nil
	e.preview = Preview{}
}

// ClickItem selects a placed item.
func (e *Engine) ClickItem(id string) bool {
	if e.session != nil {
		return false
	}
	return e.l.Select(id)
}

// ClickEmpty clears the selection.
func (e *Engine) ClickEmpty() {
	if e.session != nil {
		return
	}
	e.l.Select("")
}

// target snaps a pointer position to the cell the dragged item's top-left
// corner would land on.
func (e *Engine) target(pointer, offset grid.Point) grid.Cell {
	return grid.PointToCell(pointer.Sub(e.cfg.Origin).Sub(offset), e.cfg.GridSize)
}

func (e *Engine) recompute() {
	s := e.session
	var tmpl catalog.ItemTemplate
	var err error
	switch s.Kind {
	case DraggingNew:
		tmpl, err = e.l.Catalog().Template(s.TemplateID)
	case DraggingExisting:
		item, ok := e.l.Item(s.ItemID)
		if !ok {
			e.preview = Preview{}
			return
		}
		tmpl, err = e.l.Catalog().Template(item.TemplateID)
	}
	if err != nil {
		e.preview = Preview{}
		return
	}
	cell := e.target(s.Pointer, s.Offset)
	fp := tmpl.Footprint(s.Rotation)
	e.preview = Preview{
		Active:    true,
		Template:  tmpl,
		Cell:      cell,
		Footprint: fp,
		Visible:   grid.Fits(cell, fp, e.l.BoardSize()),
	}
}
