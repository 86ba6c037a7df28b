package cli

import (
	"fmt"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pegplanner/pkg/catalog"
	perrors "github.com/matzehuels/pegplanner/pkg/errors"
	"github.com/matzehuels/pegplanner/pkg/grid"
	"github.com/matzehuels/pegplanner/pkg/planner"
)

// withSession opens the planner for the duration of fn.
func (c *CLI) withSession(cmd *cobra.Command, fn func(s *session) error) error {
	s, err := c.open(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(s)
}

// catalogCommand lists templates and board options.
func (c *CLI) catalogCommand() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List item templates and board options",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			cat, err := loadCatalog(cfg.Catalog)
			if err != nil {
				return err
			}

			templates := cat.Templates()
			if category != "" {
				if !slices.Contains(catalog.Categories, catalog.Category(category)) {
					return perrors.New(perrors.ErrCodeInvalidInput, "unknown category %q", category)
				}
				templates = cat.TemplatesIn(catalog.Category(category))
			}

			rows := make([][]string, 0, len(templates))
			for _, t := range templates {
				rows = append(rows, []string{
					t.ID, t.Name, string(t.Category), t.Size().String(), joinInts(t.Pegs), t.DefaultRotation.String(),
				})
			}
			printTable(c.out, []string{"ID", "Name", "Category", "Size", "Pegs", "Rotation"}, rows, nil)
			if category != "" {
				return nil
			}

			fmt.Fprintln(c.out)
			fmt.Fprintln(c.out, StyleTitle.Render("Boards"))
			for _, b := range cat.BoardSizes() {
				printKeyValue(c.out, b.ID, b.Label)
			}
			fmt.Fprintln(c.out, StyleTitle.Render("Colors"))
			for _, col := range cat.Colors() {
				printKeyValue(c.out, col.ID, col.Label+" "+StyleDim.Render(col.Background))
			}
			fmt.Fprintln(c.out, StyleTitle.Render("Textures"))
			for _, tex := range cat.Textures() {
				printKeyValue(c.out, tex.ID, tex.Label)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "only list templates in this category")
	cmd.RegisterFlagCompletionFunc("category", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		names := make([]string, len(catalog.Categories))
		for i, cat := range catalog.Categories {
			names[i] = string(cat)
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// showCommand prints the board and its items.
func (c *CLI) showCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current layout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withSession(cmd, func(s *session) error {
				sum := s.Summary()
				printKeyValue(c.out, "Board", sum.Board.Label)
				printKeyValue(c.out, "Color", sum.Color.Label)
				printKeyValue(c.out, "Texture", sum.Texture.Label)
				printKeyValue(c.out, "Items", strconv.Itoa(sum.Items))
				for _, cat := range catalog.Categories {
					if n := sum.ByCategory[cat]; n > 0 {
						printDetail(c.out, "%s: %d", cat, n)
					}
				}
				if sum.Items == 0 {
					printNextStep(c.out, "Place an item", appName+" place hook-single 0 0")
					return nil
				}

				view := s.View()
				rows := make([][]string, 0, len(view.Items))
				for _, it := range view.Items {
					mark := ""
					switch {
					case it.Clipped:
						mark = "off board"
					case it.Selected:
						mark = iconSelected
					}
					rows = append(rows, []string{
						shortID(it.ID), it.Template.Name, it.Cell().String(), it.Rotation.String(), it.Footprint.String(), mark,
					})
				}
				fmt.Fprintln(c.out)
				printTable(c.out, []string{"ID", "Item", "Cell", "Rotation", "Footprint", ""}, rows, func(row int) bool {
					return view.Items[row].Clipped
				})
				if len(sum.Clipped) > 0 {
					printWarning(c.out, "%d item(s) hang off the %s board", len(sum.Clipped), sum.Board.Label)
				}
				return nil
			})
		},
	}
}

// placeCommand adds an item.
func (c *CLI) placeCommand() *cobra.Command {
	var rotation int

	cmd := &cobra.Command{
		Use:   "place <template> <x> <y>",
		Short: "Place an item with its top-left corner at cell x,y",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			at, err := parseCell(args[1], args[2])
			if err != nil {
				return err
			}
			return c.withSession(cmd, func(s *session) error {
				var (
					id string
					ok bool
				)
				if cmd.Flags().Changed("rotation") {
					id, ok, err = s.PlaceRotated(cmd.Context(), args[0], at, grid.Rotation(rotation))
				} else {
					id, ok, err = s.Place(cmd.Context(), args[0], at)
				}
				if !ok && err == nil {
					printWarning(c.out, "%s does not fit at %s on the %s board", args[0], at, s.Layout().Board().Size.Label)
					return nil
				}
				if ok {
					printSuccess(c.out, "Placed %s at %s", args[0], at)
					printDetail(c.out, "id %s", id)
				}
				return err
			})
		},
	}

	cmd.Flags().IntVar(&rotation, "rotation", 0, "rotation in degrees: 0, 90, 180 or 270 (default: the template's)")
	cmd.ValidArgsFunction = func(cmd *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		var ids []string
		for _, t := range catalog.Default().Templates() {
			ids = append(ids, t.ID+"\t"+t.Name)
		}
		return ids, cobra.ShellCompDirectiveNoFileComp
	}

	return cmd
}

// moveCommand relocates an item.
func (c *CLI) moveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "move <id> <x> <y>",
		Short: "Move an item to cell x,y",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			at, err := parseCell(args[1], args[2])
			if err != nil {
				return err
			}
			return c.withSession(cmd, func(s *session) error {
				id, err := resolveID(s.Planner, args[0])
				if err != nil {
					return err
				}
				ok, err := s.Move(cmd.Context(), id, at)
				return c.report(ok, err, "Moved %s to %s", "%s does not fit at %s", shortID(id), at)
			})
		},
	}
}

// nudgeCommand moves an item by one cell.
func (c *CLI) nudgeCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "nudge <id> <left|right|up|down>",
		Short:     "Move an item one cell",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"left", "right", "up", "down"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withSession(cmd, func(s *session) error {
				id, err := resolveID(s.Planner, args[0])
				if err != nil {
					return err
				}
				ok, err := s.Nudge(cmd.Context(), id, args[1])
				return c.report(ok, err, "Nudged %s %s", "%s cannot move %s, it would leave the board", shortID(id), args[1])
			})
		},
	}
}

// rotateCommand turns an item clockwise.
func (c *CLI) rotateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rotate <id>",
		Short: "Rotate an item 90° clockwise",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withSession(cmd, func(s *session) error {
				id, err := resolveID(s.Planner, args[0])
				if err != nil {
					return err
				}
				if err := s.Rotate(cmd.Context(), id); err != nil {
					return err
				}
				item, _ := s.Layout().Item(id)
				printSuccess(c.out, "Rotated %s to %s", shortID(id), item.Rotation)
				return nil
			})
		},
	}
}

// removeCommand deletes an item.
func (c *CLI) removeCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm"},
		Short:   "Remove an item",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withSession(cmd, func(s *session) error {
				id, err := resolveID(s.Planner, args[0])
				if err != nil {
					return err
				}
				if err := s.Remove(cmd.Context(), id); err != nil {
					return err
				}
				printSuccess(c.out, "Removed %s", shortID(id))
				return nil
			})
		},
	}
}

// clearCommand removes every item.
func (c *CLI) clearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every item from the board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withSession(cmd, func(s *session) error {
				n := s.Layout().Len()
				if err := s.Clear(cmd.Context()); err != nil {
					return err
				}
				printSuccess(c.out, "Cleared %d item(s)", n)
				return nil
			})
		},
	}
}

// boardCommand changes the board size, color or texture.
func (c *CLI) boardCommand() *cobra.Command {
	var size, color, texture string

	cmd := &cobra.Command{
		Use:   "board",
		Short: "Show or change the board size, color and texture",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withSession(cmd, func(s *session) error {
				ctx := cmd.Context()
				if size != "" {
					if err := s.SetBoardSize(ctx, size); err != nil {
						return err
					}
					if clipped := s.Layout().OutOfBounds(); len(clipped) > 0 {
						printWarning(c.out, "%d item(s) hang off the new board; move them back or remove them", len(clipped))
					}
				}
				if color != "" {
					if err := s.SetColor(ctx, color); err != nil {
						return err
					}
				}
				if texture != "" {
					if err := s.SetTexture(ctx, texture); err != nil {
						return err
					}
				}

				sum := s.Summary()
				printKeyValue(c.out, "Board", sum.Board.ID+" "+StyleDim.Render(sum.Board.Label))
				printKeyValue(c.out, "Color", sum.Color.ID+" "+StyleDim.Render(sum.Color.Label))
				printKeyValue(c.out, "Texture", sum.Texture.ID+" "+StyleDim.Render(sum.Texture.Label))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&size, "size", "", "board size id, e.g. 36x24")
	cmd.Flags().StringVar(&color, "color", "", "board color id")
	cmd.Flags().StringVar(&texture, "texture", "", "board texture id")

	return cmd
}

// configCommand inspects the config file.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.configPath != "" {
				fmt.Fprintln(c.out, c.configPath)
				return nil
			}
			dir, err := configDir()
			if err != nil {
				return fmt.Errorf("get config dir: %w", err)
			}
			fmt.Fprintln(c.out, filepath.Join(dir, configFile))
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			return cfg.encode(c.out)
		},
	})

	return cmd
}

// report prints the outcome of an operation that may be rejected.
func (c *CLI) report(ok bool, err error, success, rejected string, args ...any) error {
	if err != nil {
		return err
	}
	if ok {
		printSuccess(c.out, success, args...)
	} else {
		printWarning(c.out, rejected, args...)
	}
	return nil
}

// resolveID expands a unique id prefix, as printed by show, to the full id.
func resolveID(p *planner.Planner, prefix string) (string, error) {
	if err := perrors.ValidateID("item", prefix); err != nil {
		return "", err
	}
	if _, ok := p.Layout().Item(prefix); ok {
		return prefix, nil
	}
	var matches []string
	for _, it := range p.Layout().Items() {
		if strings.HasPrefix(it.ID, prefix) {
			matches = append(matches, it.ID)
		}
	}
	switch len(matches) {
	case 0:
		return prefix, nil
	case 1:
		return matches[0], nil
	}
	return "", perrors.New(perrors.ErrCodeInvalidInput, "id prefix %q matches %d items", prefix, len(matches))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func parseCell(xs, ys string) (grid.Cell, error) {
	x, err := strconv.Atoi(xs)
	if err != nil {
		return grid.Cell{}, perrors.New(perrors.ErrCodeInvalidInput, "x must be an integer, got %q", xs)
	}
	y, err := strconv.Atoi(ys)
	if err != nil {
		return grid.Cell{}, perrors.New(perrors.ErrCodeInvalidInput, "y must be an integer, got %q", ys)
	}
	return grid.Cell{X: x, Y: y}, nil
}
