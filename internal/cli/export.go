package cli

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	perrors "github.com/matzehuels/pegplanner/pkg/errors"
	"github.com/matzehuels/pegplanner/pkg/planner"
	"github.com/matzehuels/pegplanner/pkg/render"
)

// exportCommand writes the board as an image or as the saved JSON record.
func (c *CLI) exportCommand() *cobra.Command {
	var output, format string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the board as PNG, SVG, PDF or JSON",
		Long: `Export the board.

Without --output the image is written to the export directory as
pegboard-layout.png (or .svg, .pdf, .json), replacing any earlier export.
Use --output - to write to stdout. PDF export needs rsvg-convert.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format = exportFormat(format, output)
			if !slices.Contains(planner.Formats, format) {
				return perrors.New(perrors.ErrCodeInvalidInput, "unsupported format %q (want one of %s)", format, strings.Join(planner.Formats, ", "))
			}
			if format == planner.FormatPDF && !render.PDFAvailable() {
				return perrors.New(perrors.ErrCodeUnsupported, "PDF export needs rsvg-convert on PATH")
			}

			return c.withSession(cmd, func(s *session) error {
				ctx := cmd.Context()
				prog := newProgress(c.Logger)

				if output == "-" {
					return s.Export(ctx, c.out, format)
				}

				if output == "" && format == planner.FormatPNG {
					path, err := s.ExportFile(ctx, s.cfg.Export.Dir)
					if err != nil {
						return err
					}
					prog.done("Exported board")
					printFile(c.out, path)
					return nil
				}

				path := output
				if path == "" {
					path = filepath.Join(s.cfg.Export.Dir, strings.TrimSuffix(render.ExportFilename, ".png")+"."+format)
				}
				if dir := filepath.Dir(path); dir != "." {
					if err := os.MkdirAll(dir, 0755); err != nil {
						return perrors.Wrap(perrors.ErrCodeExportFailed, err, "create %s", dir)
					}
				}
				f, err := os.Create(path)
				if err != nil {
					return perrors.Wrap(perrors.ErrCodeExportFailed, err, "create %s", path)
				}
				if err := s.Export(ctx, f, format); err != nil {
					f.Close()
					os.Remove(path)
					return err
				}
				if err := f.Close(); err != nil {
					return perrors.Wrap(perrors.ErrCodeExportFailed, err, "write %s", path)
				}
				prog.done("Exported board")
				printFile(c.out, path)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, or - for stdout")
	cmd.Flags().StringVarP(&format, "format", "f", "", "png, svg, pdf or json (default: from --output, else png)")

	return cmd
}

// exportFormat picks the format from the flag, then the output extension.
func exportFormat(format, output string) string {
	if format != "" {
		return strings.ToLower(format)
	}
	if ext := strings.TrimPrefix(filepath.Ext(output), "."); ext != "" {
		return strings.ToLower(ext)
	}
	return planner.FormatPNG
}
