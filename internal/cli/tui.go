package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pegplanner/pkg/catalog"
	"github.com/matzehuels/pegplanner/pkg/grid"
	"github.com/matzehuels/pegplanner/pkg/layout"
	"github.com/matzehuels/pegplanner/pkg/placement"
	"github.com/matzehuels/pegplanner/pkg/planner"
)

// Screen geometry of the editor. Each board cell is two terminal columns
// wide and one row high.
const (
	editorBoardTop = 3
	editorCellCols = 2
	editorGap      = 3
)

// Editor styles
var (
	paletteSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	paletteNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	paletteDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// editCommand opens the interactive board editor.
func (c *CLI) editCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Edit the board interactively (mouse and keyboard)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withSession(cmd, func(s *session) error {
				// Log lines would tear the alternate screen.
				c.Logger.SetOutput(io.Discard)
				defer c.Logger.SetOutput(c.logOut)

				m := newEditorModel(cmd.Context(), s.Planner, s.cfg.Export.Dir)
				final, err := tea.NewProgram(m,
					tea.WithAltScreen(),
					tea.WithMouseCellMotion(),
					tea.WithContext(cmd.Context()),
				).Run()
				if err != nil {
					return err
				}
				if em, ok := final.(editorModel); ok && em.saveErr != nil {
					printWarning(c.out, "last change was not saved: %v", em.saveErr)
				}
				printSuccess(c.out, "%d item(s) on the %s board", s.Layout().Len(), s.Layout().Board().Size.Label)
				return nil
			})
		},
	}
}

// =============================================================================
// editorModel - Interactive board editor
// =============================================================================

// editorModel drives a planner from terminal input. Pointer events are
// translated to the planner's pixel space, so mouse drags go through the
// same placement engine as any other front end.
type editorModel struct {
	ctx       context.Context
	p         *planner.Planner
	exportDir string

	palette    []catalog.ItemTemplate
	paletteIdx int
	paletteTop int

	confirmClear bool
	status       string
	statusErr    bool
	saveErr      error
}

func newEditorModel(ctx context.Context, p *planner.Planner, exportDir string) editorModel {
	return editorModel{
		ctx:       ctx,
		p:         p,
		exportDir: exportDir,
		palette:   p.Catalog().Templates(),
	}
}

func (m editorModel) Init() tea.Cmd {
	return nil
}

func (m editorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.key(msg)
	case tea.MouseMsg:
		m.mouse(msg)
	}
	return m, nil
}

func (m editorModel) key(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := msg.String()
	if k != "c" {
		m.confirmClear = false
	}

	switch k {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		if m.p.Engine().State() != placement.Idle {
			m.handle(planner.Event{Kind: planner.Cancel})
		} else {
			m.handle(planner.Event{Kind: planner.ClickEmpty})
		}
	case "left", "right", "up", "down", "r", "delete", "backspace":
		m.handle(planner.Event{Kind: planner.KeyDown, Key: k})
	case "tab", "shift+tab":
		m.cycleSelection(k == "tab")
	case "j":
		m.movePalette(1)
	case "k":
		m.movePalette(-1)
	case "enter":
		m.placeFromPalette()
	case "c":
		if !m.confirmClear {
			m.confirmClear = true
			m.setStatus(false, "press c again to remove all %d item(s)", m.p.Layout().Len())
			break
		}
		m.confirmClear = false
		m.apply(m.p.Clear(m.ctx))
		if m.saveErr == nil {
			m.setStatus(false, "board cleared")
		}
	case "b":
		m.cycleBoard()
	case "o":
		m.cycleColor()
	case "t":
		m.cycleTexture()
	case "e":
		path, err := m.p.ExportFile(m.ctx, m.exportDir)
		if err != nil {
			m.setStatus(true, "export failed: %v", err)
			break
		}
		m.setStatus(false, "exported %s", path)
	}
	return m, nil
}

func (m *editorModel) mouse(msg tea.MouseMsg) {
	pointer := m.pointer(msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		if idx, ok := m.paletteAt(msg.X, msg.Y); ok {
			m.paletteIdx = idx
			m.handle(planner.Event{Kind: planner.PaletteDown, TemplateID: m.palette[idx].ID, Pointer: pointer})
			return
		}
		cell, onBoard := m.boardCell(msg.X, msg.Y)
		if !onBoard {
			return
		}
		if id := m.itemAt(cell); id != "" {
			m.handle(planner.Event{Kind: planner.ItemDown, ItemID: id, Pointer: pointer})
		} else {
			m.handle(planner.Event{Kind: planner.ClickEmpty})
		}
	case tea.MouseActionMotion:
		if m.p.Engine().State() != placement.Idle {
			m.handle(planner.Event{Kind: planner.PointerMove, Pointer: pointer})
		}
	case tea.MouseActionRelease:
		if m.p.Engine().State() == placement.Idle {
			return
		}
		ok := m.handle(planner.Event{Kind: planner.PointerUp, Pointer: pointer})
		if !ok && m.saveErr == nil {
			m.setStatus(true, "does not fit there")
		}
	}
}

// handle forwards ev and records save failures.
func (m *editorModel) handle(ev planner.Event) bool {
	ok, err := m.p.Handle(m.ctx, ev)
	m.apply(err)
	if ok && err == nil && ev.Kind != planner.PointerMove {
		m.status = ""
	}
	return ok
}

func (m *editorModel) apply(err error) {
	m.saveErr = err
	if err != nil {
		m.setStatus(true, "%v", err)
	}
}

func (m *editorModel) setStatus(isErr bool, format string, args ...any) {
	m.status = fmt.Sprintf(format, args...)
	m.statusErr = isErr
}

func (m *editorModel) placeFromPalette() {
	if len(m.palette) == 0 {
		return
	}
	tmpl := m.palette[m.paletteIdx]
	id, ok, err := m.p.Place(m.ctx, tmpl.ID, grid.Cell{})
	m.apply(err)
	if !ok {
		if err == nil {
			m.setStatus(true, "%s does not fit on this board", tmpl.Name)
		}
		return
	}
	m.apply(m.p.Select(m.ctx, id))
	m.setStatus(false, "placed %s, use the arrow keys to move it", tmpl.Name)
}

func (m *editorModel) movePalette(delta int) {
	n := len(m.palette)
	if n == 0 {
		return
	}
	m.paletteIdx = (m.paletteIdx + delta + n) % n
	rows := m.paletteRows()
	if m.paletteIdx < m.paletteTop {
		m.paletteTop = m.paletteIdx
	}
	if m.paletteIdx >= m.paletteTop+rows {
		m.paletteTop = m.paletteIdx - rows + 1
	}
}

func (m *editorModel) cycleSelection(forward bool) {
	items := m.p.Layout().Items()
	if len(items) == 0 {
		return
	}
	idx := -1
	for i, it := range items {
		if it.ID == m.p.Layout().Selected() {
			idx = i
		}
	}
	switch {
	case idx < 0:
		idx = 0
	case forward:
		idx = (idx + 1) % len(items)
	default:
		idx = (idx - 1 + len(items)) % len(items)
	}
	m.handle(planner.Event{Kind: planner.ClickItem, ItemID: items[idx].ID})
}

func (m *editorModel) cycleBoard() {
	sizes := m.p.Catalog().BoardSizes()
	next := nextID(len(sizes), func(i int) string { return sizes[i].ID }, m.p.Layout().Board().Size.ID)
	m.apply(m.p.SetBoardSize(m.ctx, next))
	if n := len(m.p.Layout().OutOfBounds()); n > 0 && m.saveErr == nil {
		m.setStatus(true, "%d item(s) hang off the board", n)
	}
}

func (m *editorModel) cycleColor() {
	colors := m.p.Catalog().Colors()
	m.apply(m.p.SetColor(m.ctx, nextID(len(colors), func(i int) string { return colors[i].ID }, m.p.Layout().Board().ColorID)))
}

func (m *editorModel) cycleTexture() {
	textures := m.p.Catalog().Textures()
	m.apply(m.p.SetTexture(m.ctx, nextID(len(textures), func(i int) string { return textures[i].ID }, m.p.Layout().Board().TextureID)))
}

// nextID returns the id after current, wrapping around.
func nextID(n int, id func(int) string, current string) string {
	for i := 0; i < n; i++ {
		if id(i) == current {
			return id((i + 1) % n)
		}
	}
	return id(0)
}

// =============================================================================
// Hit testing
// =============================================================================

// pointer maps a terminal position to the planner's pixel space.
func (m editorModel) pointer(x, y int) grid.Point {
	g := m.p.Engine().GridSize()
	return grid.Point{
		X: float64(x) / editorCellCols * g,
		Y: float64(y-editorBoardTop) * g,
	}
}

func (m editorModel) boardCell(x, y int) (grid.Cell, bool) {
	size := m.p.Layout().BoardSize()
	cell := grid.Cell{X: x / editorCellCols, Y: y - editorBoardTop}
	return cell, x >= 0 && cell.X < size.Width && cell.Y >= 0 && cell.Y < size.Height
}

func (m editorModel) paletteLeft() int {
	return m.p.Layout().BoardSize().Width*editorCellCols + editorGap
}

func (m editorModel) paletteRows() int {
	rows := m.p.Layout().BoardSize().Height
	if rows < 5 {
		rows = 5
	}
	return rows
}

func (m editorModel) paletteAt(x, y int) (int, bool) {
	if x < m.paletteLeft() {
		return 0, false
	}
	row := y - editorBoardTop
	idx := m.paletteTop + row
	if row < 0 || row >= m.paletteRows() || idx >= len(m.palette) {
		return 0, false
	}
	return idx, true
}

// itemAt returns the topmost item covering cell.
func (m editorModel) itemAt(cell grid.Cell) string {
	items := m.p.View().Items
	for i := len(items) - 1; i >= 0; i-- {
		if covers(items[i].Cell(), items[i].Footprint, cell) {
			return items[i].ID
		}
	}
	return ""
}

func covers(at grid.Cell, fp grid.Size, c grid.Cell) bool {
	return c.X >= at.X && c.X < at.X+fp.Width && c.Y >= at.Y && c.Y < at.Y+fp.Height
}

// =============================================================================
// Rendering
// =============================================================================

func (m editorModel) View() string {
	v := m.p.View()

	var b strings.Builder
	b.WriteString(StyleTitle.Render("Pegboard") + " " + StyleDim.Render(fmt.Sprintf("%s · %s · %s", v.Board.Label, v.Color.Label, v.Texture.Label)))
	b.WriteString("\n")
	b.WriteString(paletteDimStyle.Render("drag to place · arrows move · r rotate · del remove · tab select · j/k/⏎ palette · b/o/t board · e export · c c clear · q quit"))
	b.WriteString("\n\n")

	gap := strings.Repeat(" ", editorGap)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderBoard(v), gap, m.renderPalette()))
	b.WriteString("\n\n")

	switch {
	case m.status == "":
		b.WriteString(StyleDim.Render(m.selectionLine(v)))
	case m.statusErr:
		b.WriteString(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(m.status))
	default:
		b.WriteString(styleIconInfo.Render(iconInfo) + " " + m.status)
	}
	return b.String()
}

func (m editorModel) selectionLine(v layout.View) string {
	for _, it := range v.Items {
		if it.Selected {
			return fmt.Sprintf("%s %s at %s, %s", iconSelected, it.Template.Name, it.Cell(), it.Rotation)
		}
	}
	return fmt.Sprintf("%d item(s)", len(v.Items))
}

// renderBoard draws one styled two-column block per cell. Later items
// paint over earlier ones.
func (m editorModel) renderBoard(v layout.View) string {
	w, h := v.Board.Width, v.Board.Height
	owner := make([]int, w*h)
	for i := range owner {
		owner[i] = -1
	}
	for i, it := range v.Items {
		for y := it.Y; y < it.Y+it.Footprint.Height; y++ {
			for x := it.X; x < it.X+it.Footprint.Width; x++ {
				if x >= 0 && x < w && y >= 0 && y < h {
					owner[y*w+x] = i
				}
			}
		}
	}

	empty := lipgloss.NewStyle().Background(lipgloss.Color(v.Color.Background)).Foreground(lipgloss.Color(v.Color.Hole))
	var ghost lipgloss.Style
	if v.Ghost != nil {
		ghost = empty.Foreground(lipgloss.Color(v.Ghost.Template.Color))
	}

	var b strings.Builder
	for y := 0; y < h; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < w; x++ {
			cell := grid.Cell{X: x, Y: y}
			if v.Ghost != nil && covers(v.Ghost.Cell, v.Ghost.Footprint, cell) {
				b.WriteString(ghost.Render("░░"))
				continue
			}
			i := owner[y*w+x]
			if i < 0 {
				b.WriteString(empty.Render(" ·"))
				continue
			}
			it := v.Items[i]
			style := lipgloss.NewStyle().Background(lipgloss.Color(it.Template.Color)).Foreground(lipgloss.Color(v.Color.Background))
			switch {
			case it.Dragging:
				style = style.Background(colorDim)
			case it.Selected:
				style = style.Bold(true).Underline(true).Foreground(colorCyan)
			}
			label := "  "
			if cell == it.Cell() {
				label = itemLabel(it.Template.Name)
			}
			b.WriteString(style.Render(label))
		}
	}
	return b.String()
}

func (m editorModel) renderPalette() string {
	var b strings.Builder
	end := min(m.paletteTop+m.paletteRows(), len(m.palette))
	for i := m.paletteTop; i < end; i++ {
		t := m.palette[i]
		cursor := "  "
		style := paletteNormalStyle
		if i == m.paletteIdx {
			cursor = "▸ "
			style = paletteSelectedStyle
		}
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(t.Color)).Render("██")
		b.WriteString(cursor + swatch + " " + style.Render(fmt.Sprintf("%-18s", t.Name)) + paletteDimStyle.Render(t.Size().String()))
		if i < end-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// itemLabel is the two-letter tag drawn on an item's anchor cell.
func itemLabel(name string) string {
	r := []rune(strings.ToUpper(strings.ReplaceAll(name, " ", "")))
	switch len(r) {
	case 0:
		return "  "
	case 1:
		return string(r) + " "
	}
	return string(r[:2])
}
