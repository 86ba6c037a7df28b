package cli

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/pegplanner/pkg/grid"
	"github.com/matzehuels/pegplanner/pkg/planner"
	"github.com/matzehuels/pegplanner/pkg/store"
)

func newTestEditor(t *testing.T) editorModel {
	t.Helper()
	p, err := planner.Open(context.Background(), planner.Options{
		Store:       store.NewMemoryStore(),
		ExportDelay: -1,
	})
	if err != nil {
		t.Fatal(err)
	}
	return newEditorModel(context.Background(), p, t.TempDir())
}

func send(m editorModel, msgs ...tea.Msg) editorModel {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(editorModel)
	}
	return m
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func motion(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft}
}

func release(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}
}

// screen returns the terminal position of a board cell.
func screen(c grid.Cell) (int, int) {
	return c.X * editorCellCols, c.Y + editorBoardTop
}

func TestEditorPaletteDrag(t *testing.T) {
	m := newTestEditor(t)
	px, py := m.paletteLeft(), editorBoardTop // first palette row: hook-single
	x, y := screen(grid.Cell{X: 5, Y: 4})

	m = send(m, press(px, py), motion(x, y))
	if v := m.p.View(); v.Ghost == nil || v.Ghost.Cell != (grid.Cell{X: 5, Y: 4}) {
		t.Fatalf("ghost = %+v", v.Ghost)
	}
	if !strings.Contains(m.View(), "░░") {
		t.Error("ghost not drawn")
	}

	m = send(m, release(x, y))
	items := m.p.Layout().Items()
	if len(items) != 1 || items[0].TemplateID != "hook-single" || items[0].Cell() != (grid.Cell{X: 5, Y: 4}) {
		t.Fatalf("items = %+v", items)
	}
	if m.p.Layout().Selected() != items[0].ID {
		t.Error("dropped item not selected")
	}
}

func TestEditorItemDrag(t *testing.T) {
	m := newTestEditor(t)
	id, _, _ := m.p.Place(context.Background(), "hook-double", grid.Cell{X: 1, Y: 1})

	from := grid.Cell{X: 2, Y: 2} // inside the item, not its anchor
	x0, y0 := screen(from)
	x1, y1 := screen(grid.Cell{X: 10, Y: 8})
	m = send(m, press(x0, y0), motion(x1, y1), release(x1, y1))

	item, _ := m.p.Layout().Item(id)
	if item.Cell() != (grid.Cell{X: 9, Y: 7}) {
		t.Errorf("item dragged to %v, want (9,7)", item.Cell())
	}

	// A drop off the board is rejected and reported.
	x0, y0 = screen(grid.Cell{X: 9, Y: 7})
	m = send(m, press(x0, y0), motion(x0, 40), release(x0, 40))
	if item, _ := m.p.Layout().Item(id); item.Cell() != (grid.Cell{X: 9, Y: 7}) {
		t.Errorf("rejected drop moved item to %v", item.Cell())
	}
	if !m.statusErr {
		t.Error("rejected drop not reported")
	}
}

func TestEditorKeys(t *testing.T) {
	m := newTestEditor(t)
	m = send(m, tea.KeyMsg{Type: tea.KeyEnter})
	items := m.p.Layout().Items()
	if len(items) != 1 || m.p.Layout().Selected() != items[0].ID {
		t.Fatalf("enter did not place and select: %+v", items)
	}
	id := items[0].ID

	m = send(m, tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyDown}, runeKey("r"))
	item, _ := m.p.Layout().Item(id)
	if item.Cell() != (grid.Cell{X: 1, Y: 1}) || item.Rotation != grid.Rot90 {
		t.Errorf("after keys item = %+v", item)
	}

	m = send(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.p.Layout().Selected() != "" {
		t.Error("esc did not clear the selection")
	}
	m = send(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.p.Layout().Selected() != id {
		t.Error("tab did not select")
	}
	m = send(m, tea.KeyMsg{Type: tea.KeyDelete})
	if m.p.Layout().Len() != 0 {
		t.Error("delete did not remove")
	}
}

func TestEditorClearNeedsConfirmation(t *testing.T) {
	m := newTestEditor(t)
	m.p.Place(context.Background(), "hook-single", grid.Cell{})

	m = send(m, runeKey("c"), runeKey("x"), runeKey("c"))
	if m.p.Layout().Len() != 1 {
		t.Fatal("interrupted confirmation cleared the board")
	}
	m = send(m, runeKey("c"))
	if m.p.Layout().Len() != 0 {
		t.Error("c twice did not clear")
	}
}

func TestEditorBoardCycling(t *testing.T) {
	m := newTestEditor(t)
	board := m.p.Layout().Board()

	m = send(m, runeKey("b"), runeKey("o"), runeKey("t"))
	next := m.p.Layout().Board()
	if next.Size.ID == board.Size.ID || next.ColorID == board.ColorID || next.TextureID == board.TextureID {
		t.Errorf("board did not cycle: %+v -> %+v", board, next)
	}
}

func TestEditorPaletteScroll(t *testing.T) {
	m := newTestEditor(t)
	m = send(m, runeKey("k"))
	if m.paletteIdx != len(m.palette)-1 {
		t.Errorf("k from top = %d, want wrap to last", m.paletteIdx)
	}
	if m.paletteTop == 0 {
		t.Error("palette did not scroll to the last entry")
	}
	if !strings.Contains(m.View(), m.palette[m.paletteIdx].Name) {
		t.Error("selected palette entry not visible")
	}
}

func TestEditorExport(t *testing.T) {
	m := newTestEditor(t)
	m = send(m, runeKey("e"))
	if m.statusErr || !strings.Contains(m.status, "pegboard-layout.png") {
		t.Errorf("status = %q", m.status)
	}
}

func TestEditorQuit(t *testing.T) {
	m := newTestEditor(t)
	_, cmd := m.Update(runeKey("q"))
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
}

func TestItemLabel(t *testing.T) {
	tests := map[string]string{"J-Hook": "J-", "Parts Bin": "PA", "x": "X ", "": "  "}
	for in, want := range tests {
		if got := itemLabel(in); got != want {
			t.Errorf("itemLabel(%q) = %q, want %q", in, got, want)
		}
	}
}
