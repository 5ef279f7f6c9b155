package render

import "image/color"

// Resource point colours, indexed by (itemKind-1) mod len.
var resourcePalette = []color.RGBA{
	{R: 220, G: 20, B: 60, A: 255},  // crimson
	{R: 30, G: 144, B: 255, A: 255}, // dodger blue
	{R: 46, G: 204, B: 113, A: 255}, // emerald
	{R: 255, G: 152, B: 0, A: 255},  // orange
}

// Building colours, indexed by position in the static building list.
var buildingPalette = []color.RGBA{
	{R: 142, G: 36, B: 170, A: 255},
	{R: 0, G: 172, B: 193, A: 255},
	{R: 255, G: 202, B: 40, A: 255},
	{R: 233, G: 30, B: 99, A: 255},
	{R: 0, G: 121, B: 107, A: 255},
	{R: 205, G: 102, B: 29, A: 255},
}

// npcPrimary is handed out once, in order, to the first slots seen.
var npcPrimary = []color.RGBA{
	{R: 66, G: 133, B: 244, A: 255},
	{R: 52, G: 168, B: 83, A: 255},
	{R: 251, G: 188, B: 5, A: 255},
	{R: 234, G: 67, B: 53, A: 255},
	{R: 171, G: 71, B: 188, A: 255},
	{R: 0, G: 188, B: 212, A: 255},
	{R: 255, G: 112, B: 67, A: 255},
	{R: 124, G: 179, B: 66, A: 255},
	{R: 57, G: 73, B: 171, A: 255},
}

// npcSecondary cycles forever once the primary palette is used up.
var npcSecondary = []color.RGBA{
	{R: 230, G: 57, B: 70, A: 255},   // red
	{R: 29, G: 161, B: 242, A: 255},  // blue
	{R: 67, G: 160, B: 71, A: 255},   // green
	{R: 255, G: 193, B: 7, A: 255},   // amber
	{R: 156, G: 39, B: 176, A: 255},  // purple
	{R: 0, G: 150, B: 136, A: 255},   // teal
	{R: 255, G: 87, B: 34, A: 255},   // deep orange
	{R: 121, G: 85, B: 72, A: 255},   // brown
	{R: 63, G: 81, B: 181, A: 255},   // indigo
	{R: 0, G: 188, B: 212, A: 255},   // cyan
}

var (
	colorBlack      = color.RGBA{A: 255}
	colorBackground = color.RGBA{R: 245, G: 245, B: 245, A: 255}
)

// ResourceColor returns the marker colour for a raw material kind. Kinds are
// 1-based; any integer is accepted.
func ResourceColor(itemKind int) color.RGBA {
	return resourcePalette[mod(itemKind-1, len(resourcePalette))]
}

// BuildingColor returns the marker colour for the building at position i of
// the static building list.
func BuildingColor(i int) color.RGBA {
	return buildingPalette[mod(i, len(buildingPalette))]
}

func mod(a, n int) int {
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}

// ColorAssigner hands out a stable colour per NPC positional slot. Slots are
// assigned in order the first time a frame with that many NPCs is seen;
// colours come from the primary palette first and then cycle through the
// secondary palette.
//
// Slots are positions within a tick line, not agent identities. If the log
// reorders NPCs between ticks, one colour can follow different agents.
type ColorAssigner struct {
	assigned []color.RGBA
}

// NewColorAssigner returns an empty assigner.
func NewColorAssigner() *ColorAssigner {
	return &ColorAssigner{}
}

// Observe makes sure slots [0, n) have colours.
func (a *ColorAssigner) Observe(n int) {
	for len(a.assigned) < n {
		k := len(a.assigned)
		if k < len(npcPrimary) {
			a.assigned = append(a.assigned, npcPrimary[k])
			continue
		}
		a.assigned = append(a.assigned, npcSecondary[(k-len(npcPrimary))%len(npcSecondary)])
	}
}

// Color returns the colour of slot, assigning it (and every slot below it)
// on first use. Negative slots get black.
func (a *ColorAssigner) Color(slot int) color.RGBA {
	if slot < 0 {
		return colorBlack
	}
	a.Observe(slot + 1)
	return a.assigned[slot]
}

// Len returns the number of slots assigned so far.
func (a *ColorAssigner) Len() int {
	return len(a.assigned)
}
