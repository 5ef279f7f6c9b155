package render

import (
	"math"

	"github.com/Garsondee/Settlement-Replay/internal/replay"
)

// Mapping projects world cells onto a pixel surface. It is computed once per
// session from the static world bounds and shared by every frame.
type Mapping struct {
	bounds  replay.Bounds
	scale   float64
	offsetX float64
	offsetY float64
}

// NewMapping fits bounds into a w×h surface with margin pixels on every side,
// keeping the aspect ratio. With center set the scaled world sits in the
// middle of the free area; otherwise it hugs the top-left margin corner.
func NewMapping(bounds replay.Bounds, w, h, margin int, center bool) Mapping {
	worldW := float64(bounds.Width())
	worldH := float64(bounds.Height())
	innerW := float64(w - 2*margin)
	innerH := float64(h - 2*margin)

	scale := math.Min(innerW/worldW, innerH/worldH)
	if scale <= 0 || math.IsNaN(scale) {
		scale = 1
	}

	m := Mapping{
		bounds:  bounds,
		scale:   scale,
		offsetX: float64(margin),
		offsetY: float64(margin),
	}
	if center {
		m.offsetX += (innerW - worldW*scale) / 2
		m.offsetY += (innerH - worldH*scale) / 2
	}
	return m
}

// Scale returns the number of pixels per world cell.
func (m Mapping) Scale() float64 { return m.scale }

// Offset returns the pixel position of the world's (minX, minY) corner.
func (m Mapping) Offset() (float64, float64) { return m.offsetX, m.offsetY }

// Bounds returns the world box the mapping was built for.
func (m Mapping) Bounds() replay.Bounds { return m.bounds }

// ToScreen converts a world cell to integer pixel coordinates.
func (m Mapping) ToScreen(x, y int) (int, int) {
	sx := m.offsetX + float64(x-m.bounds.MinX)*m.scale
	sy := m.offsetY + float64(y-m.bounds.MinY)*m.scale
	return int(sx), int(sy)
}

// ToWorld is the inverse of ToScreen, returning fractional world
// coordinates for picking.
func (m Mapping) ToWorld(sx, sy int) (float64, float64) {
	wx := (float64(sx)-m.offsetX)/m.scale + float64(m.bounds.MinX)
	wy := (float64(sy)-m.offsetY)/m.scale + float64(m.bounds.MinY)
	return wx, wy
}
