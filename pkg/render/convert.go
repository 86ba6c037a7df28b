package render

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"

	perrors "github.com/matzehuels/pegplanner/pkg/errors"
	"github.com/matzehuels/pegplanner/pkg/layout"
)

// rsvgTool is the external converter used for PDF output.
const rsvgTool = "rsvg-convert"

// PDFAvailable reports whether rsvg-convert is on PATH.
func PDFAvailable() bool {
	_, err := exec.LookPath(rsvgTool)
	return err == nil
}

// RenderPDF draws v as SVG and converts it to a single-page PDF.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, v layout.View, opts ...Option) ([]byte, error) {
	if !PDFAvailable() {
		return nil, perrors.New(perrors.ErrCodeUnsupported, "pdf export requires librsvg. Install with:\n  macOS:  brew install librsvg\n  Linux:  apt install librsvg2-bin")
	}
	cmd := exec.CommandContext(ctx, rsvgTool, "-f", "pdf")
	cmd.Stdin = bytes.NewReader(RenderSVG(v, opts...))

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%s: %v: %s", rsvgTool, err, errBuf.String())
	}
	return out.Bytes(), nil
}
