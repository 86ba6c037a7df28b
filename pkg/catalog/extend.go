package catalog

import (
	"io"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/pegplanner/pkg/errors"
)

// Extension is the TOML document accepted by [Extend]. Entries are appended
// after the built-in ones, so the built-in defaults stay first.
//
//	[[templates]]
//	id = "bin-deep"
//	name = "Deep Bin"
//	category = "bins"
//	width = 6
//	height = 6
//	color = "#f97316"
//	icon = "bin"
//	pegs = [0, 5]
type Extension struct {
	Templates []ItemTemplate `toml:"templates"`
	Sizes     []BoardSize    `toml:"sizes"`
	Colors    []BoardColor   `toml:"colors"`
	Textures  []BoardTexture `toml:"textures"`
}

// DecodeExtension parses an extension document.
func DecodeExtension(r io.Reader) (Extension, error) {
	var ext Extension
	md, err := toml.NewDecoder(r).Decode(&ext)
	if err != nil {
		return Extension{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse catalog extension")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Extension{}, errors.New(errors.ErrCodeInvalidConfig, "unknown catalog field %q", undecoded[0].String())
	}
	return ext, nil
}

// Extend returns a new catalog holding base's entries followed by ext's.
// Redefining an existing id is an error, since persisted layouts already
// point at the original entry.
func Extend(base *Catalog, ext Extension) (*Catalog, error) {
	return New(
		append(base.Templates(), ext.Templates...),
		append(base.BoardSizes(), ext.Sizes...),
		append(base.Colors(), ext.Colors...),
		append(base.Textures(), ext.Textures...),
	)
}
