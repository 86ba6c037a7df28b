package render

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	perrors "github.com/matzehuels/pegplanner/pkg/errors"
	"github.com/matzehuels/pegplanner/pkg/observability"
)

// SettleDelay is how long an export waits after clearing the selection so
// that front ends can redraw the board without the highlight first.
const SettleDelay = 100 * time.Millisecond

// ExportFilename is the fixed name of exported images. Repeated exports
// overwrite it.
const ExportFilename = "pegboard-layout.png"

// Selection is the selection state an export suspends.
// [*layout.Layout] implements it.
type Selection interface {
	Selected() string
	Select(id string) bool
}

// CaptureFunc produces the exported bytes. It runs after the selection was
// cleared and the settle delay elapsed.
type CaptureFunc func(ctx context.Context) ([]byte, error)

// Exporter runs one capture with the selection suspended.
type Exporter struct {
	// Delay overrides SettleDelay. Negative means no wait.
	Delay time.Duration
	// Capture renders the board.
	Capture CaptureFunc
	// Format names the output for hooks ("png", "svg", ...).
	Format string
}

func (e *Exporter) delay() time.Duration {
	switch {
	case e.Delay < 0:
		return 0
	case e.Delay == 0:
		return SettleDelay
	}
	return e.Delay
}

// Export clears the selection, waits for the settle delay, captures and
// writes the result to w. The previous selection is restored on every
// path, including cancellation and capture failure. The layout is not
// otherwise touched.
func (e *Exporter) Export(ctx context.Context, sel Selection, w io.Writer) (err error) {
	start := time.Now()
	format := e.Format
	if format == "" {
		format = "png"
	}
	observability.Export().OnExportStart(ctx, format)
	size := 0
	defer func() {
		observability.Export().OnExportComplete(ctx, format, size, time.Since(start), err)
	}()

	prev := sel.Selected()
	sel.Select("")
	defer sel.Select(prev)

	if d := e.delay(); d > 0 {
		timer := time.NewTimer(d)
		select {
		case <-ctx.Done():
			timer.Stop()
			return perrors.Wrap(perrors.ErrCodeExportFailed, ctx.Err(), "export cancelled")
		case <-timer.C:
		}
	}

	if e.Capture == nil {
		return perrors.New(perrors.ErrCodeExportFailed, "no capture configured")
	}
	data, err := e.Capture(ctx)
	if err != nil {
		return perrors.Wrap(perrors.ErrCodeExportFailed, err, "capture %s", format)
	}
	n, err := w.Write(data)
	size = n
	if err != nil {
		return perrors.Wrap(perrors.ErrCodeExportFailed, err, "write %s", format)
	}
	return nil
}

// ExportFile exports into dir/name, replacing any earlier export, and
// returns the written path. An empty name means ExportFilename.
func (e *Exporter) ExportFile(ctx context.Context, sel Selection, dir, name string) (string, error) {
	if name == "" {
		name = ExportFilename
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", perrors.Wrap(perrors.ErrCodeExportFailed, err, "create %s", dir)
	}
	path := filepath.Join(dir, name)
	f, err := os.CreateTemp(dir, ".export-*")
	if err != nil {
		return "", perrors.Wrap(perrors.ErrCodeExportFailed, err, "create %s", path)
	}
	if err := f.Chmod(0644); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", perrors.Wrap(perrors.ErrCodeExportFailed, err, "create %s", path)
	}
	if err := e.Export(ctx, sel, f); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", perrors.Wrap(perrors.ErrCodeExportFailed, err, "write %s", path)
	}
	if err := os.Rename(f.Name(), path); err != nil {
		os.Remove(f.Name())
		return "", perrors.Wrap(perrors.ErrCodeExportFailed, err, "write %s", path)
	}
	return path, nil
}
