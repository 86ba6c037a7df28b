package catalog

import (
	"sync"

	"github.com/matzehuels/pegplanner/pkg/grid"
)

// Board options shipped with the application. The first entry of each list
// is the default used for new and partially persisted layouts.
var (
	builtinSizes = []BoardSize{
		{ID: "24x24", Label: `24" x 24"`, Width: 24, Height: 24},
		{ID: "24x48", Label: `24" x 48"`, Width: 48, Height: 24},
		{ID: "48x48", Label: `48" x 48"`, Width: 48, Height: 48},
		{ID: "36x24", Label: `36" x 24"`, Width: 36, Height: 24},
	}

	builtinColors = []BoardColor{
		{ID: "white", Label: "Classic White", Background: "#fdfdfd", Hole: "#cbd5e1"},
		{ID: "brown", Label: "Hardboard Brown", Background: "#5d4037", Hole: "#3e2723"},
		{ID: "gray", Label: "Modern Gray", Background: "#334155", Hole: "#1e293b"},
		{ID: "black", Label: "Stealth Black", Background: "#0f172a", Hole: "#000000"},
		{ID: "blue", Label: "Pro Blue", Background: "#1e40af", Hole: "#172554"},
		{ID: "red", Label: "Toolbox Red", Background: "#991b1b", Hole: "#450a0a"},
		{ID: "green", Label: "Shop Green", Background: "#065f46", Hole: "#022c22"},
		{ID: "yellow", Label: "Safety Yellow", Background: "#ca8a04", Hole: "#713f12"},
	}

	builtinTextures = []BoardTexture{
		{ID: "plain", Label: "Smooth", Pattern: PatternNone, Opacity: 0},
		{ID: "wood", Label: "Wood Grain", Pattern: PatternGrain, Opacity: 0.6},
		{ID: "hardboard", Label: "Pressboard", Pattern: PatternDots, Opacity: 0.3},
		{ID: "painted", Label: "Painted", Pattern: PatternDiagonal, Opacity: 0.5},
		{ID: "brushed", Label: "Brushed Metal", Pattern: PatternBrushed, Opacity: 0.3},
	}
)

const (
	metal = "#cbd5e1"
	steel = "#475569"
	slate = "#334155"
	ink   = "#1e293b"
)

var builtinTemplates = []ItemTemplate{
	// Hooks
	{ID: "hook-single", Name: "J-Hook", Category: CategoryHooks, Width: 1, Height: 2, Color: metal, Icon: "hook", Pegs: []int{0}},
	{ID: "hook-double", Name: "Double Hook", Category: CategoryHooks, Width: 2, Height: 2, Color: metal, Icon: "hook-double", Pegs: []int{0, 1}},
	{ID: "hook-long", Name: "Straight Hook", Category: CategoryHooks, Width: 1, Height: 4, Color: metal, Icon: "hook-long", Pegs: []int{0}},
	{ID: "hook-loop", Name: "Loop Hook", Category: CategoryHooks, Width: 2, Height: 2, Color: metal, Icon: "loop", Pegs: []int{0, 1}},
	{ID: "hook-pliers", Name: "Pliers Holder", Category: CategoryHooks, Width: 2, Height: 2, Color: metal, Icon: "pliers-holder", Pegs: []int{0, 1}},
	{ID: "rack-screwdriver", Name: "Screwdriver Rack", Category: CategoryHooks, Width: 6, Height: 2, Color: metal, Icon: "screwdriver-rack", Pegs: []int{0, 5}},
	{ID: "rack-multi", Name: "Multi-Tool Rack", Category: CategoryHooks, Width: 8, Height: 2, Color: metal, Icon: "multi-rack", Pegs: []int{0, 7}},

	// Bins and specialized holders
	{ID: "bin-small", Name: "Parts Bin", Category: CategoryBins, Width: 4, Height: 4, Color: "#ef4444", Icon: "bin", Pegs: []int{0, 3}},
	{ID: "bin-large", Name: "Large Bin", Category: CategoryBins, Width: 8, Height: 5, Color: "#3b82f6", Icon: "bin", Pegs: []int{0, 7}},
	{ID: "shelf", Name: "Utility Shelf", Category: CategorySpecialized, Width: 12, Height: 3, Color: "#10b981", Icon: "shelf", Pegs: []int{0, 11}},
	{ID: "mag-strip", Name: "Magnetic Strip", Category: CategorySpecialized, Width: 10, Height: 1, Color: slate, Icon: "mag-strip", Pegs: []int{0, 9}},
	{ID: "paper-towel", Name: "Towel Holder", Category: CategorySpecialized, Width: 12, Height: 4, Color: metal, Icon: "paper-towel", Pegs: []int{0, 11}},
	{ID: "cord-organizer", Name: "Cord Wrap", Category: CategorySpecialized, Width: 3, Height: 3, Color: metal, Icon: "cord-wrap", Pegs: []int{1}},

	// Tools
	{ID: "tool-hammer", Name: "Hammer", Category: CategoryTools, Width: 4, Height: 12, Color: steel, Icon: "hammer", Pegs: []int{1, 2}},
	{ID: "tool-mallet", Name: "Rubber Mallet", Category: CategoryTools, Width: 4, Height: 10, Color: ink, Icon: "mallet", Pegs: []int{1, 2}},
	{ID: "tool-screwdriver", Name: "Screwdriver", Category: CategoryTools, Width: 1, Height: 4, Color: steel, Icon: "screwdriver", Pegs: []int{0}},
	{ID: "tool-wrench", Name: "Comb. Wrench", Category: CategoryTools, Width: 2, Height: 7, Color: steel, Icon: "wrench", Pegs: []int{0}},
	{ID: "tool-adjwrench", Name: "Adjustable Wrench", Category: CategoryTools, Width: 2, Height: 8, Color: steel, Icon: "adj-wrench", Pegs: []int{0}},
	{ID: "tool-drill", Name: "Power Drill", Category: CategoryTools, Width: 6, Height: 8, Color: steel, Icon: "drill", Pegs: []int{2, 3}},
	{ID: "tool-saw", Name: "Hand Saw", Category: CategoryTools, Width: 16, Height: 5, Color: steel, Icon: "saw", Pegs: []int{4, 12}},
	{ID: "tool-pliers", Name: "Pliers", Category: CategoryTools, Width: 3, Height: 6, Color: steel, Icon: "pliers", Pegs: []int{1}},
	{ID: "tool-wirecutters", Name: "Wire Cutters", Category: CategoryTools, Width: 3, Height: 6, Color: steel, Icon: "wire-cutters", Pegs: []int{1}},
	{ID: "tool-level", Name: "Torpedo Level", Category: CategoryTools, Width: 8, Height: 2, Color: "#facc15", Icon: "level", Pegs: []int{0, 7}},
	{ID: "tool-tape", Name: "Tape Measure", Category: CategoryTools, Width: 3, Height: 3, Color: "#facc15", Icon: "tape-measure", Pegs: []int{1}},
	{ID: "tool-utility", Name: "Utility Knife", Category: CategoryTools, Width: 1, Height: 5, Color: "#ef4444", Icon: "utility-knife", Pegs: []int{0}},
	{ID: "tool-square", Name: "Framing Square", Category: CategoryTools, Width: 12, Height: 8, Color: "#94a3b8", Icon: "square", Pegs: []int{0, 11}},

	// Props
	{ID: "prop-pistol", Name: "Handgun Prop", Category: CategoryProps, Width: 6, Height: 4, Color: slate, Icon: "prop-pistol", Pegs: []int{2, 5}},
	{ID: "prop-rifle", Name: "Assault Rifle", Category: CategoryProps, Width: 18, Height: 6, Color: ink, Icon: "prop-rifle", Pegs: []int{4, 14}},
	{ID: "prop-shotgun", Name: "Tactical Shotgun", Category: CategoryProps, Width: 20, Height: 4, Color: ink, Icon: "prop-shotgun", Pegs: []int{4, 16}},
	{ID: "prop-dagger", Name: "Combat Dagger", Category: CategoryProps, Width: 2, Height: 8, Color: steel, Icon: "prop-dagger", Pegs: []int{0, 1}},
	{ID: "prop-bowie", Name: "Bowie Knife", Category: CategoryProps, Width: 3, Height: 10, Color: steel, Icon: "prop-bowie", Pegs: []int{1}},
	// The katana hangs along its long axis, so it leaves the palette already turned.
	{ID: "prop-katana", Name: "Katana Prop", Category: CategoryProps, Width: 2, Height: 24, Color: ink, Icon: "prop-katana", Pegs: []int{0}, DefaultRotation: grid.Rot90},
	{ID: "prop-needler", Name: "Type-33 Needler", Category: CategoryProps, Width: 12, Height: 10, Color: "#5b21b6", Icon: "prop-needler", Pegs: []int{2, 9}},
}

var (
	defaultOnce sync.Once
	defaultCat  *Catalog
)

// Default returns the built-in catalog. The result is shared and read-only.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := New(builtinTemplates, builtinSizes, builtinColors, builtinTextures)
		if err != nil {
			panic("catalog: invalid built-in catalog: " + err.Error())
		}
		defaultCat = c
	})
	return defaultCat
}
