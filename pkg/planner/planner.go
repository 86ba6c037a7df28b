package planner

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pegplanner/pkg/catalog"
	perrors "github.com/matzehuels/pegplanner/pkg/errors"
	"github.com/matzehuels/pegplanner/pkg/grid"
	"github.com/matzehuels/pegplanner/pkg/layout"
	"github.com/matzehuels/pegplanner/pkg/observability"
	"github.com/matzehuels/pegplanner/pkg/persist"
	"github.com/matzehuels/pegplanner/pkg/placement"
	"github.com/matzehuels/pegplanner/pkg/render"
	"github.com/matzehuels/pegplanner/pkg/store"
)

// Export formats.
const (
	FormatPNG  = "png"
	FormatSVG  = "svg"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// Formats lists the supported export formats.
var Formats = []string{FormatPNG, FormatSVG, FormatPDF, FormatJSON}

// Options configures [Open].
type Options struct {
	// Store holds the saved layout. Nil means an in-memory store.
	Store store.Store
	// Catalog resolves ids. Nil means [catalog.Default].
	Catalog *catalog.Catalog
	// Key is the store key. Empty means [persist.DefaultKey].
	Key string
	// GridSize and Origin describe the board in pointer space.
	GridSize float64
	Origin   grid.Point
	// Scale is the PNG export scale. Zero means 2.
	Scale float64
	// ExportDelay overrides [render.SettleDelay]. Negative disables it.
	ExportDelay time.Duration
	Logger      *log.Logger
	// LayoutOptions are passed to every layout the planner creates.
	LayoutOptions []layout.Option
}

// Planner is the controller for one layout.
type Planner struct {
	opts    Options
	cat     *catalog.Catalog
	l       *layout.Layout
	engine  *placement.Engine
	persist *persist.Adapter
	logger  *log.Logger
	report  persist.LoadReport
}

// Open loads the saved layout, substituting the default layout when there
// is none or it is unreadable. It fails only on invalid options.
func Open(ctx context.Context, opts Options) (*Planner, error) {
	if opts.Store == nil {
		opts.Store = store.NewMemoryStore()
	}
	if opts.Catalog == nil {
		opts.Catalog = catalog.Default()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Key == "" {
		opts.Key = persist.DefaultKey
	}
	if err := perrors.ValidateStoreKey(opts.Key); err != nil {
		return nil, err
	}
	if opts.Scale <= 0 {
		opts.Scale = 2
	}
	if opts.GridSize <= 0 {
		opts.GridSize = grid.DefaultSize
	}

	p := &Planner{
		opts:   opts,
		cat:    opts.Catalog,
		logger: opts.Logger,
		persist: persist.New(opts.Store, opts.Catalog,
			persist.WithKey(opts.Key),
			persist.WithLogger(opts.Logger),
			persist.WithLayoutOptions(opts.LayoutOptions...)),
	}
	p.Reload(ctx)
	return p, nil
}

// Reload replaces the in-memory layout with the stored one. Any drag in
// progress is dropped.
func (p *Planner) Reload(ctx context.Context) persist.LoadReport {
	p.l, p.report = p.persist.Load(ctx)
	p.engine = placement.New(p.l, placement.Config{GridSize: p.opts.GridSize, Origin: p.opts.Origin})
	return p.report
}

// Catalog returns the catalog.
func (p *Planner) Catalog() *catalog.Catalog { return p.cat }

// Layout returns the live layout. Mutating it directly bypasses saving.
func (p *Planner) Layout() *layout.Layout { return p.l }

// Engine returns the placement engine.
func (p *Planner) Engine() *placement.Engine { return p.engine }

// LoadReport describes the last load.
func (p *Planner) LoadReport() persist.LoadReport { return p.report }

// Key returns the store key.
func (p *Planner) Key() string { return p.persist.Key() }

// View returns the render snapshot, including the dragged item and ghost.
func (p *Planner) View() layout.View {
	return p.l.View(layout.ViewOptions{
		DraggingID: p.engine.DraggingItemID(),
		Ghost:      p.engine.Ghost(),
	})
}

// Handle applies a front-end event. It reports whether the event was
// accepted; the error is a save failure or an unknown event kind.
func (p *Planner) Handle(ctx context.Context, ev Event) (bool, error) {
	before := p.l.Version()
	var ok bool
	switch ev.Kind {
	case PaletteDown:
		ok = p.engine.BeginPaletteDrag(ev.TemplateID, ev.Pointer)
	case ItemDown:
		ok = p.engine.BeginItemDrag(ev.ItemID, ev.Pointer)
	case PointerMove:
		ok = p.engine.PointerMove(ev.Pointer).Active
	case PointerUp:
		res := p.engine.PointerUp(ev.Pointer)
		ok = res.Committed()
		if res.Outcome == placement.Rejected {
			p.logger.Debug("drop rejected", "cell", res.Cell, "item", res.ItemID)
		}
	case KeyDown:
		ok = p.engine.Key(placement.ParseKey(ev.Key))
	case ClickItem:
		ok = p.engine.ClickItem(ev.ItemID)
	case ClickEmpty:
		p.engine.ClickEmpty()
		ok = true
	case Cancel:
		ok = p.engine.State() != placement.Idle
		p.engine.Cancel()
	default:
		return false, perrors.New(perrors.ErrCodeInvalidInput, "unknown event %v", ev.Kind)
	}
	return ok, p.commit(ctx, ev.Kind.String(), before, ok)
}

// Place adds a template at at with its default rotation.
func (p *Planner) Place(ctx context.Context, templateID string, at grid.Cell) (string, bool, error) {
	tmpl, err := p.cat.Template(templateID)
	if err != nil {
		return "", false, err
	}
	return p.PlaceRotated(ctx, templateID, at, tmpl.DefaultRotation)
}

// PlaceRotated adds a template at at with rotation rot. A placement outside
// the board returns ok == false and no error.
func (p *Planner) PlaceRotated(ctx context.Context, templateID string, at grid.Cell, rot grid.Rotation) (string, bool, error) {
	if err := p.idle(); err != nil {
		return "", false, err
	}
	if _, err := p.cat.Template(templateID); err != nil {
		return "", false, err
	}
	if !rot.Valid() {
		return "", false, perrors.New(perrors.ErrCodeInvalidInput, "rotation must be 0, 90, 180 or 270, got %d", int(rot))
	}
	before := p.l.Version()
	id, ok := p.l.AddItem(templateID, at, rot)
	return id, ok, p.commit(ctx, "place", before, ok)
}

// Move moves an item. A destination outside the board returns false.
func (p *Planner) Move(ctx context.Context, id string, at grid.Cell) (bool, error) {
	if err := p.existing(id); err != nil {
		return false, err
	}
	before := p.l.Version()
	ok := p.l.MoveItem(id, at)
	return ok, p.commit(ctx, "move", before, ok)
}

// Nudge moves an item one cell in direction, a key name such as "left"
// or "ArrowUp".
func (p *Planner) Nudge(ctx context.Context, id, direction string) (bool, error) {
	k := placement.ParseKey(direction)
	if dx, dy := k.Delta(); dx == 0 && dy == 0 {
		return false, perrors.New(perrors.ErrCodeInvalidInput, "unknown direction %q (want left, right, up or down)", direction)
	}
	if err := p.existing(id); err != nil {
		return false, err
	}
	before := p.l.Version()
	ok := p.engine.Nudge(id, k)
	return ok, p.commit(ctx, "nudge", before, ok)
}

// Rotate turns an item 90° clockwise, clamping it back onto the board.
func (p *Planner) Rotate(ctx context.Context, id string) error {
	if err := p.existing(id); err != nil {
		return err
	}
	before := p.l.Version()
	ok := p.l.RotateItem(id)
	return p.commit(ctx, "rotate", before, ok)
}

// Remove deletes an item.
func (p *Planner) Remove(ctx context.Context, id string) error {
	if err := p.existing(id); err != nil {
		return err
	}
	before := p.l.Version()
	ok := p.l.RemoveItem(id)
	return p.commit(ctx, "remove", before, ok)
}

// Clear removes every item.
func (p *Planner) Clear(ctx context.Context) error {
	if err := p.idle(); err != nil {
		return err
	}
	before := p.l.Version()
	p.l.Clear()
	return p.commit(ctx, "clear", before, true)
}

// Select sets the selection; "" clears it.
func (p *Planner) Select(ctx context.Context, id string) error {
	if id != "" {
		if err := p.existing(id); err != nil {
			return err
		}
	}
	before := p.l.Version()
	ok := p.l.Select(id)
	return p.commit(ctx, "select", before, ok)
}

// SetBoardSize switches the board size. Items are never relocated.
func (p *Planner) SetBoardSize(ctx context.Context, id string) error {
	before := p.l.Version()
	if err := p.l.SetBoardSize(id); err != nil {
		return err
	}
	if clipped := p.l.OutOfBounds(); len(clipped) > 0 {
		p.logger.Warn("items no longer fit the board", "board", id, "items", len(clipped))
	}
	return p.commit(ctx, "board-size", before, true)
}

// SetColor switches the board color.
func (p *Planner) SetColor(ctx context.Context, id string) error {
	before := p.l.Version()
	if err := p.l.SetColor(id); err != nil {
		return err
	}
	return p.commit(ctx, "color", before, true)
}

// SetTexture switches the board texture.
func (p *Planner) SetTexture(ctx context.Context, id string) error {
	before := p.l.Version()
	if err := p.l.SetTexture(id); err != nil {
		return err
	}
	return p.commit(ctx, "texture", before, true)
}

// Export writes the layout in format to w. Image formats are captured with
// the selection suspended.
func (p *Planner) Export(ctx context.Context, w io.Writer, format string) error {
	format = strings.ToLower(format)
	if format == FormatJSON {
		data, err := persist.Encode(p.l)
		if err != nil {
			return perrors.Wrap(perrors.ErrCodeExportFailed, err, "encode layout")
		}
		_, err = w.Write(append(data, '\n'))
		return err
	}
	ex, err := p.exporter(format)
	if err != nil {
		return err
	}
	before := p.l.Version()
	err = ex.Export(ctx, p.l, w)
	return firstErr(err, p.commit(ctx, "export", before, err == nil))
}

// ExportFile writes a PNG to dir under [render.ExportFilename] and returns
// its path.
func (p *Planner) ExportFile(ctx context.Context, dir string) (string, error) {
	ex, err := p.exporter(FormatPNG)
	if err != nil {
		return "", err
	}
	before := p.l.Version()
	path, err := ex.ExportFile(ctx, p.l, dir, render.ExportFilename)
	return path, firstErr(err, p.commit(ctx, "export", before, err == nil))
}

func (p *Planner) exporter(format string) (*render.Exporter, error) {
	if err := p.idle(); err != nil {
		return nil, err
	}
	var capture render.CaptureFunc
	switch format {
	case FormatPNG:
		capture = func(context.Context) ([]byte, error) {
			return render.RenderPNG(p.l.View(layout.ViewOptions{}), render.WithScale(p.opts.Scale), render.WithCellSize(p.opts.GridSize))
		}
	case FormatSVG:
		capture = func(context.Context) ([]byte, error) {
			return render.RenderSVG(p.l.View(layout.ViewOptions{}), render.WithCellSize(p.opts.GridSize)), nil
		}
	case FormatPDF:
		if !render.PDFAvailable() {
			return nil, perrors.New(perrors.ErrCodeUnsupported, "pdf export needs rsvg-convert on PATH")
		}
		capture = func(ctx context.Context) ([]byte, error) {
			return render.RenderPDF(ctx, p.l.View(layout.ViewOptions{}), render.WithCellSize(p.opts.GridSize))
		}
	default:
		return nil, perrors.New(perrors.ErrCodeInvalidInput, "unsupported format %q (want one of %s)", format, strings.Join(Formats, ", "))
	}
	return &render.Exporter{Delay: p.opts.ExportDelay, Capture: capture, Format: format}, nil
}

// Render returns the current board as SVG or PNG without touching the
// selection, for previews.
func (p *Planner) Render(format string) ([]byte, error) {
	v := p.View()
	switch strings.ToLower(format) {
	case FormatSVG:
		return render.RenderSVG(v, render.WithCellSize(p.opts.GridSize)), nil
	case FormatPNG:
		return render.RenderPNG(v, render.WithScale(p.opts.Scale), render.WithCellSize(p.opts.GridSize))
	case FormatJSON:
		return persist.Encode(p.l)
	}
	return nil, perrors.New(perrors.ErrCodeInvalidInput, "unsupported preview format %q", format)
}

// commit emits hooks and saves if the layout version moved.
func (p *Planner) commit(ctx context.Context, op string, before uint64, accepted bool) error {
	if !accepted {
		observability.Planner().OnReject(ctx, op)
	}
	if p.l.Version() == before {
		return nil
	}
	observability.Planner().OnCommit(ctx, op, p.l.Version())
	if err := p.persist.Save(ctx, p.l); err != nil {
		p.logger.Error("layout changed but could not be saved", "op", op, "err", err)
		return err
	}
	return nil
}

func (p *Planner) existing(id string) error {
	if err := p.idle(); err != nil {
		return err
	}
	if _, ok := p.l.Item(id); !ok {
		return layout.ErrItemNotFound(id)
	}
	return nil
}

func (p *Planner) idle() error {
	if p.engine.State() != placement.Idle {
		return perrors.New(perrors.ErrCodeDragActive, "a drag is in progress")
	}
	return nil
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
