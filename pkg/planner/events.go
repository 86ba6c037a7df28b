package planner

import (
	"fmt"

	"github.com/matzehuels/pegplanner/pkg/grid"
)

// EventKind identifies a front-end input event.
type EventKind int

const (
	// PaletteDown starts dragging a new item; TemplateID is required.
	PaletteDown EventKind = iota
	// ItemDown starts dragging a placed item; ItemID is required.
	ItemDown
	PointerMove
	PointerUp
	// KeyDown carries a key name in Key, e.g. "ArrowLeft" or "r".
	KeyDown
	// ClickItem selects ItemID without dragging.
	ClickItem
	// ClickEmpty clears the selection.
	ClickEmpty
	// Cancel abandons the drag in progress.
	Cancel
)

var eventNames = [...]string{"palette-down", "item-down", "pointer-move", "pointer-up", "key-down", "click-item", "click-empty", "cancel"}

func (k EventKind) String() string {
	if int(k) >= 0 && int(k) < len(eventNames) {
		return eventNames[k]
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// Event is one input event in pointer space.
type Event struct {
	Kind       EventKind
	Pointer    grid.Point
	TemplateID string
	ItemID     string
	Key        string
}
