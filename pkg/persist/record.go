package persist

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/matzehuels/pegplanner/pkg/catalog"
	"github.com/matzehuels/pegplanner/pkg/grid"
	"github.com/matzehuels/pegplanner/pkg/layout"
)

// Record is the stored form of a layout. Catalog ids are foreign keys into
// the template, board size, color and texture lists.
type Record struct {
	BoardSizeID string       `json:"boardSizeId"`
	Items       []ItemRecord `json:"items"`
	ColorID     string       `json:"colorId"`
	TextureID   string       `json:"textureId"`
}

// ItemRecord is one placed item.
type ItemRecord struct {
	ID         string `json:"id"`
	TemplateID string `json:"templateId"`
	X          int    `json:"x"`
	Y          int    `json:"y"`
	Rotation   int    `json:"rotation"`
}

// FromLayout builds the record for l. Selection is not stored.
func FromLayout(l *layout.Layout) Record {
	b := l.Board()
	rec := Record{
		BoardSizeID: b.Size.ID,
		ColorID:     b.ColorID,
		TextureID:   b.TextureID,
		Items:       make([]ItemRecord, 0, l.Len()),
	}
	for _, it := range l.Items() {
		rec.Items = append(rec.Items, ItemRecord{
			ID:         it.ID,
			TemplateID: it.TemplateID,
			X:          it.X,
			Y:          it.Y,
			Rotation:   int(it.Rotation),
		})
	}
	return rec
}

// Encode serializes l.
func Encode(l *layout.Layout) ([]byte, error) {
	return json.Marshal(FromLayout(l))
}

// maxCoord bounds stored cell coordinates. Anything larger is not a real
// placement and would not survive the conversion to int.
const maxCoord = 1 << 20

// fields is a JSON object decoded one key at a time, so a single bad value
// costs only that value.
type fields map[string]json.RawMessage

func (f fields) missing(key string) bool {
	msg, ok := f[key]
	return !ok || string(msg) == "null"
}

// str returns the string under key. ok is false when the key is missing or
// null; err is set when the value is not a string.
func (f fields) str(key string) (v string, ok bool, err error) {
	if f.missing(key) {
		return "", false, nil
	}
	if err := json.Unmarshal(f[key], &v); err != nil {
		return "", false, err
	}
	return v, true, nil
}

// num is str for numbers.
func (f fields) num(key string) (v float64, ok bool, err error) {
	if f.missing(key) {
		return 0, false, nil
	}
	if err := json.Unmarshal(f[key], &v); err != nil {
		return 0, false, err
	}
	return v, true, nil
}

// wholeCell converts a stored coordinate, refusing fractions and values
// outside maxCoord.
func wholeCell(v float64) (int, bool) {
	if v != math.Trunc(v) || math.Abs(v) > maxCoord {
		return 0, false
	}
	return int(v), true
}

// Decode rebuilds a layout from data, filling missing, mistyped or unknown
// fields with catalog defaults. It fails only when data is not a JSON object
// at all.
func Decode(data []byte, cat *catalog.Catalog, opts ...layout.Option) (*layout.Layout, LoadReport, error) {
	var rep LoadReport
	var raw fields
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, rep, fmt.Errorf("decode layout record: %w", err)
	}
	if raw == nil {
		return nil, rep, fmt.Errorf("decode layout record: not an object")
	}

	l := layout.New(cat, opts...)
	board := l.Board()

	sizeKey := "boardSizeId"
	if raw.missing(sizeKey) && !raw.missing("size") {
		sizeKey = "size"
		rep.warn("legacy size key read as boardSizeId")
	}
	sizeID, ok, err := raw.str(sizeKey)
	switch {
	case err != nil:
		rep.warn("%s is not a string, using %s", sizeKey, board.Size.ID)
		rep.fill("boardSizeId")
	case !ok:
		rep.fill("boardSizeId")
	default:
		if size, err := cat.BoardSize(sizeID); err == nil {
			board.Size = size
		} else {
			rep.warn("unknown board size %q, using %s", sizeID, board.Size.ID)
			rep.fill("boardSizeId")
		}
	}

	colorID, ok, err := raw.str("colorId")
	switch {
	case err != nil:
		rep.warn("colorId is not a string, using %s", board.ColorID)
		rep.fill("colorId")
	case !ok || colorID == "":
		rep.fill("colorId")
	default:
		if _, err := cat.Color(colorID); err == nil {
			board.ColorID = colorID
		} else {
			rep.warn("unknown color %q, using %s", colorID, board.ColorID)
			rep.fill("colorId")
		}
	}

	textureID, ok, err := raw.str("textureId")
	switch {
	case err != nil:
		rep.warn("textureId is not a string, using %s", board.TextureID)
		rep.fill("textureId")
	case !ok || textureID == "":
		rep.fill("textureId")
	default:
		if _, err := cat.Texture(textureID); err == nil {
			board.TextureID = textureID
		} else {
			rep.warn("unknown texture %q, using %s", textureID, board.TextureID)
			rep.fill("textureId")
		}
	}

	var rawItems []json.RawMessage
	if !raw.missing("items") {
		if err := json.Unmarshal(raw["items"], &rawItems); err != nil {
			rep.warn("items is not a list, starting with no items")
			rawItems = nil
		}
	}

	items := make([]layout.PlacedItem, 0, len(rawItems))
	for i, msg := range rawItems {
		if it, ok := decodeItem(l, cat, &rep, i, msg); ok {
			items = append(items, it)
		}
	}

	skipped, err := l.Restore(board, items, "")
	if err != nil {
		return nil, rep, err
	}
	for _, s := range skipped {
		rep.drop("item %q: duplicate id", s.ID)
	}
	return l, rep, nil
}

func decodeItem(l *layout.Layout, cat *catalog.Catalog, rep *LoadReport, i int, msg json.RawMessage) (layout.PlacedItem, bool) {
	var f fields
	if err := json.Unmarshal(msg, &f); err != nil || f == nil {
		rep.drop("item %d: not an object", i)
		return layout.PlacedItem{}, false
	}

	templateID, ok, err := f.str("templateId")
	switch {
	case err != nil:
		rep.drop("item %d: templateId is not a string", i)
		return layout.PlacedItem{}, false
	case !ok || templateID == "":
		rep.drop("item %d: missing templateId", i)
		return layout.PlacedItem{}, false
	case !cat.HasTemplate(templateID):
		rep.drop("item %d: unknown template %q", i, templateID)
		return layout.PlacedItem{}, false
	}

	x, okX, errX := f.num("x")
	y, okY, errY := f.num("y")
	if errX != nil || errY != nil {
		rep.drop("item %d: position is not a number", i)
		return layout.PlacedItem{}, false
	}
	if !okX || !okY {
		rep.drop("item %d: missing position", i)
		return layout.PlacedItem{}, false
	}
	cx, okX := wholeCell(x)
	cy, okY := wholeCell(y)
	if !okX || !okY {
		rep.drop("item %d: position (%v, %v) is not a whole cell", i, x, y)
		return layout.PlacedItem{}, false
	}

	p := layout.PlacedItem{TemplateID: templateID, X: cx, Y: cy}
	if id, ok, err := f.str("id"); err == nil && ok && id != "" {
		p.ID = id
	} else {
		p.ID = l.NewID()
		rep.fill(fmt.Sprintf("items[%d].id", i))
	}
	if rot, ok, err := f.num("rotation"); err == nil && ok && math.Abs(rot) <= maxCoord {
		p.Rotation = grid.NormalizeRotation(int(rot))
	} else {
		rep.fill(fmt.Sprintf("items[%d].rotation", i))
	}
	return p, true
}
