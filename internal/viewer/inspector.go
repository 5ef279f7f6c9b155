package viewer

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Settlement-Replay/internal/render"
	"github.com/Garsondee/Settlement-Replay/internal/replay"
)

// Inspector panel, rendered into an offscreen buffer at 1x then blitted at
// the HUD scale.
const (
	inspBufW  = 180
	inspBufH  = 96
	inspPad   = 4
	inspLineH = 14
)

// Inspector holds the selected NPC slot, -1 when nothing is selected.
type Inspector struct {
	selected int
	buf      *ebiten.Image
}

// Selected returns the inspected slot or -1.
func (in *Inspector) Selected() int { return in.selected }

// pickSlot returns the NPC slot nearest to screen point (mx, my) within
// radius pixels, or -1.
func pickSlot(f *replay.Frame, m render.Mapping, mx, my int, radius float64) int {
	wx, wy := m.ToWorld(mx, my)
	r := radius / m.Scale()
	best := r * r
	hit := -1
	for slot, p := range f.NPCs {
		dx := float64(p.X) - wx
		dy := float64(p.Y) - wy
		// Avoid sqrt by comparing squared distances.
		if d2 := dx*dx + dy*dy; d2 <= best {
			best = d2
			hit = slot
		}
	}
	return hit
}

// handleInspectorClick selects the NPC under the cursor, or clears the
// selection when the click hits empty space.
func (v *Viewer) handleInspectorClick(mx, my int) bool {
	radius := math.Max(float64(v.profile.NPCRadius)*1.5, 6)
	v.inspector.selected = pickSlot(v.Frame(), v.renderer.Mapping(), mx, my, radius)
	return v.inspector.selected >= 0
}

// inspectorLines describes the selected slot in the current frame.
func (v *Viewer) inspectorLines() []string {
	slot := v.inspector.selected
	if slot < 0 {
		return nil
	}
	f := v.Frame()
	lines := []string{fmt.Sprintf("[ NPC slot %d ]", slot)}
	if slot >= len(f.NPCs) {
		return append(lines, fmt.Sprintf("not present at tick %d", f.Tick))
	}
	p := f.NPCs[slot]
	c := v.renderer.Colors().Color(slot)
	lines = append(lines,
		fmt.Sprintf("pos: %s", p),
		fmt.Sprintf("colour: #%02x%02x%02x", c.R, c.G, c.B),
	)
	if slot < len(f.Tasks) {
		lines = append(lines, "task: "+f.Tasks[slot])
	} else {
		lines = append(lines, "task: -")
	}
	return lines
}

// drawInspector renders the inspector panel bottom-right, above the task
// column.
func (v *Viewer) drawInspector(screen *ebiten.Image) {
	lines := v.inspectorLines()
	if lines == nil {
		return
	}
	if v.inspector.buf == nil {
		v.inspector.buf = ebiten.NewImage(inspBufW, inspBufH)
	}
	buf := v.inspector.buf
	buf.Clear()

	bw, bh := float32(inspBufW), float32(inspBufH)
	vector.FillRect(buf, 0, 0, bw, bh, color.RGBA{R: 20, G: 20, B: 24, A: 220}, false)
	vector.StrokeRect(buf, 0, 0, bw, bh, 1.0, color.RGBA{R: 90, G: 90, B: 110, A: 255}, false)

	slot := v.inspector.selected
	ly := inspPad
	for i, line := range lines {
		ebitenutil.DebugPrintAt(buf, line, inspPad, ly)
		if i == 0 {
			// Colour swatch next to the title.
			vector.FillRect(buf, bw-inspPad-10, float32(ly+3), 10, 10, v.renderer.Colors().Color(slot), false)
		}
		ly += inspLineH
	}

	scale := v.hudScale
	px := v.profile.Width - inspBufW*scale - v.profile.TextPad
	py := v.profile.Height - v.profile.ItemsHeight - inspBufH*scale - v.profile.TextPad
	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(float64(scale), float64(scale))
	opts.GeoM.Translate(float64(px), float64(py))
	screen.DrawImage(buf, opts)
}
