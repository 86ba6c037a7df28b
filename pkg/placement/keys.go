package placement

// Key is a keyboard command understood by the engine.
type Key int

const (
	KeyNone Key = iota
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyRotate
	KeyDelete
)

var keyNames = map[string]Key{
	"ArrowLeft":  KeyLeft,
	"ArrowRight": KeyRight,
	"ArrowUp":    KeyUp,
	"ArrowDown":  KeyDown,
	"left":       KeyLeft,
	"right":      KeyRight,
	"up":         KeyUp,
	"down":       KeyDown,
	"r":          KeyRotate,
	"R":          KeyRotate,
	"Delete":     KeyDelete,
	"Backspace":  KeyDelete,
	"delete":     KeyDelete,
	"backspace":  KeyDelete,
}

// ParseKey maps browser key names (ArrowLeft, Delete, Backspace) and
// terminal key names (left, r, delete, backspace) to a Key. Anything else
// is KeyNone.
func ParseKey(name string) Key {
	return keyNames[name]
}

// Delta returns the one-cell step of an arrow key.
func (k Key) Delta() (dx, dy int) {
	switch k {
	case KeyLeft:
		return -1, 0
	case KeyRight:
		return 1, 0
	case KeyUp:
		return 0, -1
	case KeyDown:
		return 0, 1
	}
	return 0, 0
}

func (k Key) String() string {
	switch k {
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyRotate:
		return "rotate"
	case KeyDelete:
		return "delete"
	}
	return "none"
}

// Key applies a keyboard command to the selected item and reports whether
// the layout changed. Keys are ignored while dragging or with no selection.
// Arrow moves that would leave the board are dropped.
func (e *Engine) Key(k Key) bool {
	if e.session != nil {
		return false
	}
	id := e.l.Selected()
	if id == "" {
		return false
	}
	item, ok := e.l.Item(id)
	if !ok {
		return false
	}
	switch k {
	case KeyLeft, KeyRight, KeyUp, KeyDown:
		dx, dy := k.Delta()
		before := e.l.Version()
		e.l.MoveItem(id, item.Cell().Add(dx, dy))
		return e.l.Version() != before
	case KeyRotate:
		return e.l.RotateItem(id)
	case KeyDelete:
		if !e.l.RemoveItem(id) {
			return false
		}
		e.l.Select("")
		return true
	}
	return false
}

// Nudge moves an item by one cell in the direction of an arrow key without
// going through the selection.
func (e *Engine) Nudge(id string, k Key) bool {
	dx, dy := k.Delta()
	if dx == 0 && dy == 0 {
		return false
	}
	item, ok := e.l.Item(id)
	if !ok {
		return false
	}
	return e.l.MoveItem(id, item.Cell().Add(dx, dy))
}
