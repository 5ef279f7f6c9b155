package render

import (
	"math"
	"testing"

	"github.com/Garsondee/Settlement-Replay/internal/replay"
)

var squareWorld = replay.Bounds{MinX: 0, MaxX: 9, MinY: 0, MaxY: 9}

func TestMapping_CornersStayInsideMargins(t *testing.T) {
	m := NewMapping(squareWorld, 1000, 1000, 40, false)

	x, y := m.ToScreen(squareWorld.MinX, squareWorld.MinY)
	if abs(x-40) > 1 || abs(y-40) > 1 {
		t.Fatalf("min corner at (%d,%d), want within 1px of (40,40)", x, y)
	}
	x, y = m.ToScreen(squareWorld.MaxX, squareWorld.MaxY)
	if x < 40 || x > 960 || y < 40 || y > 960 {
		t.Fatalf("max corner at (%d,%d) escapes the margin box", x, y)
	}
	if m.Scale() != 92 {
		t.Fatalf("scale = %v, want 92", m.Scale())
	}
}

func TestMapping_CenterOffsetsTheShortAxis(t *testing.T) {
	m := NewMapping(squareWorld, 2560, 1600, 40, true)
	if m.Scale() != 152 {
		t.Fatalf("scale = %v, want 152", m.Scale())
	}
	ox, oy := m.Offset()
	if ox != 520 || oy != 40 {
		t.Fatalf("offset = (%v,%v), want (520,40)", ox, oy)
	}

	plain := NewMapping(squareWorld, 2560, 1600, 40, false)
	if ox, _ := plain.Offset(); ox != 40 {
		t.Fatalf("uncentered offset x = %v, want margin 40", ox)
	}
}

func TestMapping_NegativeBounds(t *testing.T) {
	b := replay.Bounds{MinX: -5, MaxX: 4, MinY: -5, MaxY: 4}
	m := NewMapping(b, 1000, 1000, 40, false)
	if x, y := m.ToScreen(-5, -5); x != 40 || y != 40 {
		t.Fatalf("(-5,-5) -> (%d,%d), want (40,40)", x, y)
	}
}

func TestMapping_ToWorldInvertsToScreen(t *testing.T) {
	m := NewMapping(squareWorld, 2560, 1600, 40, true)
	for _, p := range []replay.Point{{X: 0, Y: 0}, {X: 3, Y: 4}, {X: 9, Y: 9}} {
		sx, sy := m.ToScreen(p.X, p.Y)
		wx, wy := m.ToWorld(sx, sy)
		if math.Abs(wx-float64(p.X)) > 0.01 || math.Abs(wy-float64(p.Y)) > 0.01 {
			t.Fatalf("round trip %v -> (%d,%d) -> (%.2f,%.2f)", p, sx, sy, wx, wy)
		}
	}
}

func TestMapping_DegenerateSurface(t *testing.T) {
	m := NewMapping(squareWorld, 10, 10, 40, false)
	if m.Scale() != 1 {
		t.Fatalf("margin larger than surface should fall back to scale 1, got %v", m.Scale())
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
