// Package catalog holds the static set of item templates and board options.
//
// Catalog ids are foreign keys: placed items and persisted layouts refer to
// templates, board sizes, colors and textures by id, so entries must never be
// removed or renamed without a migration. Every lookup goes through a
// [Catalog] method that returns a coded error for unknown ids instead of a
// zero value.
package catalog

import (
	"slices"

	"github.com/matzehuels/pegplanner/pkg/errors"
	"github.com/matzehuels/pegplanner/pkg/grid"
)

// Category groups templates in the palette.
type Category string

// Palette categories.
const (
	CategoryHooks       Category = "hooks"
	CategoryBins        Category = "bins"
	CategoryTools       Category = "tools"
	CategorySpecialized Category = "specialized"
	CategoryProps       Category = "props"
)

// Categories lists the categories in palette order.
var Categories = []Category{CategoryHooks, CategoryTools, CategoryBins, CategorySpecialized, CategoryProps}

// ItemTemplate describes one kind of item that can be placed on the board.
type ItemTemplate struct {
	ID       string   `toml:"id" json:"id"`
	Name     string   `toml:"name" json:"name"`
	Category Category `toml:"category" json:"category"`
	Width    int      `toml:"width" json:"width"`   // unrotated, in cells
	Height   int      `toml:"height" json:"height"` // unrotated, in cells
	Color    string   `toml:"color" json:"color"`
	Icon     string   `toml:"icon" json:"icon"`
	Pegs     []int    `toml:"pegs" json:"pegs,omitempty"` // column offsets within Width

	// DefaultRotation is applied when the template is dropped from the palette.
	DefaultRotation grid.Rotation `toml:"default_rotation" json:"defaultRotation,omitempty"`
}

// Size returns the unrotated extent of the template.
func (t ItemTemplate) Size() grid.Size {
	return grid.Size{Width: t.Width, Height: t.Height}
}

// Footprint returns the template's extent under rotation r.
func (t ItemTemplate) Footprint(r grid.Rotation) grid.Size {
	return grid.Footprint(t.Size(), r)
}

// BoardSize is one of the selectable board dimensions.
type BoardSize struct {
	ID     string `toml:"id" json:"id"`
	Label  string `toml:"label" json:"label"`
	Width  int    `toml:"width" json:"width"`
	Height int    `toml:"height" json:"height"`
}

// Size returns the board extent in cells.
func (b BoardSize) Size() grid.Size {
	return grid.Size{Width: b.Width, Height: b.Height}
}

// BoardColor is a board material color.
type BoardColor struct {
	ID         string `toml:"id" json:"id"`
	Label      string `toml:"label" json:"label"`
	Background string `toml:"background" json:"background"`
	Hole       string `toml:"hole" json:"hole"`
}

// Pattern names a texture overlay drawn by the renderers.
type Pattern string

// Texture patterns.
const (
	PatternNone     Pattern = "none"
	PatternGrain    Pattern = "grain"
	PatternDots     Pattern = "dots"
	PatternDiagonal Pattern = "diagonal"
	PatternBrushed  Pattern = "brushed"
)

// BoardTexture is a board surface finish.
type BoardTexture struct {
	ID      string  `toml:"id" json:"id"`
	Label   string  `toml:"label" json:"label"`
	Pattern Pattern `toml:"pattern" json:"pattern"`
	Opacity float64 `toml:"opacity" json:"opacity"`
}

// Catalog is an immutable, indexed set of templates and board options.
// Construct it with [New] or [Default]; the zero value is empty.
type Catalog struct {
	templates []ItemTemplate
	sizes     []BoardSize
	colors    []BoardColor
	textures  []BoardTexture

	templateIdx map[string]int
	sizeIdx     map[string]int
	colorIdx    map[string]int
	textureIdx  map[string]int
}

// New builds a catalog from the given entries. Every list must be non-empty,
// ids must be unique within their list, and template dimensions positive.
func New(templates []ItemTemplate, sizes []BoardSize, colors []BoardColor, textures []BoardTexture) (*Catalog, error) {
	if len(templates) == 0 || len(sizes) == 0 || len(colors) == 0 || len(textures) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "catalog needs at least one template, board size, color and texture")
	}
	c := &Catalog{
		templates: slices.Clone(templates),
		sizes:     slices.Clone(sizes),
		colors:    slices.Clone(colors),
		textures:  slices.Clone(textures),
	}
	var err error
	if c.templateIdx, err = index(c.templates, func(t ItemTemplate) string { return t.ID }, "template"); err != nil {
		return nil, err
	}
	if c.sizeIdx, err = index(c.sizes, func(b BoardSize) string { return b.ID }, "board size"); err != nil {
		return nil, err
	}
	if c.colorIdx, err = index(c.colors, func(b BoardColor) string { return b.ID }, "color"); err != nil {
		return nil, err
	}
	if c.textureIdx, err = index(c.textures, func(b BoardTexture) string { return b.ID }, "texture"); err != nil {
		return nil, err
	}
	for i := range c.templates {
		if err := validateTemplate(&c.templates[i]); err != nil {
			return nil, err
		}
	}
	for _, s := range c.sizes {
		if s.Width <= 0 || s.Height <= 0 {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "board size %q has non-positive dimensions", s.ID)
		}
	}
	return c, nil
}

func index[T any](items []T, id func(T) string, kind string) (map[string]int, error) {
	idx := make(map[string]int, len(items))
	for i, it := range items {
		key := id(it)
		if err := errors.ValidateID(kind, key); err != nil {
			return nil, err
		}
		if _, dup := idx[key]; dup {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "duplicate %s id %q", kind, key)
		}
		idx[key] = i
	}
	return idx, nil
}

func validateTemplate(t *ItemTemplate) error {
	if t.Width <= 0 || t.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "template %q has non-positive dimensions", t.ID)
	}
	if !t.DefaultRotation.Valid() {
		return errors.New(errors.ErrCodeInvalidConfig, "template %q has invalid default rotation %d", t.ID, int(t.DefaultRotation))
	}
	for _, p := range t.Pegs {
		if p < 0 || p >= t.Width {
			return errors.New(errors.ErrCodeInvalidConfig, "template %q peg %d outside width %d", t.ID, p, t.Width)
		}
	}
	if t.Category == "" {
		t.Category = CategorySpecialized
	}
	return nil
}

// Template resolves a template id.
func (c *Catalog) Template(id string) (ItemTemplate, error) {
	if i, ok := c.templateIdx[id]; ok {
		return c.templates[i], nil
	}
	return ItemTemplate{}, errors.New(errors.ErrCodeUnknownTemplate, "unknown template %q", id)
}

// HasTemplate reports whether id resolves to a template.
func (c *Catalog) HasTemplate(id string) bool {
	_, ok := c.templateIdx[id]
	return ok
}

// Templates returns all templates in catalog order.
func (c *Catalog) Templates() []ItemTemplate {
	return slices.Clone(c.templates)
}

// TemplatesIn returns the templates of one category in catalog order.
func (c *Catalog) TemplatesIn(cat Category) []ItemTemplate {
	var out []ItemTemplate
	for _, t := range c.templates {
		if t.Category == cat {
			out = append(out, t)
		}
	}
	return out
}

// BoardSize resolves a board size id.
func (c *Catalog) BoardSize(id string) (BoardSize, error) {
	if i, ok := c.sizeIdx[id]; ok {
		return c.sizes[i], nil
	}
	return BoardSize{}, errors.New(errors.ErrCodeUnknownBoardSize, "unknown board size %q", id)
}

// BoardSizes returns all board sizes in catalog order.
func (c *Catalog) BoardSizes() []BoardSize { return slices.Clone(c.sizes) }

// DefaultBoardSize returns the first board size.
func (c *Catalog) DefaultBoardSize() BoardSize { return c.sizes[0] }

// Color resolves a board color id.
func (c *Catalog) Color(id string) (BoardColor, error) {
	if i, ok := c.colorIdx[id]; ok {
		return c.colors[i], nil
	}
	return BoardColor{}, errors.New(errors.ErrCodeUnknownColor, "unknown board color %q", id)
}

// Colors returns all board colors in catalog order.
func (c *Catalog) Colors() []BoardColor { return slices.Clone(c.colors) }

// DefaultColor returns the first board color.
func (c *Catalog) DefaultColor() BoardColor { return c.colors[0] }

// Texture resolves a board texture id.
func (c *Catalog) Texture(id string) (BoardTexture, error) {
	if i, ok := c.textureIdx[id]; ok {
		return c.textures[i], nil
	}
	return BoardTexture{}, errors.New(errors.ErrCodeUnknownTexture, "unknown board texture %q", id)
}

// Textures returns all board textures in catalog order.
func (c *Catalog) Textures() []BoardTexture { return slices.Clone(c.textures) }

// DefaultTexture returns the first board texture.
func (c *Catalog) DefaultTexture() BoardTexture { return c.textures[0] }
