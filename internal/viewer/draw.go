package viewer

import (
	"bytes"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/Garsondee/Settlement-Replay/internal/logger"
	"github.com/Garsondee/Settlement-Replay/internal/render"
)

// fontCache hands out Go Regular faces by pixel size.
type fontCache struct {
	src   *text.GoTextFaceSource
	faces map[int]*text.GoTextFace
}

func newFontCache() *fontCache {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		// Labels are skipped without a face; shapes still draw.
		logger.Log.WithError(err).Error("load Go Regular font")
	}
	return &fontCache{src: src, faces: map[int]*text.GoTextFace{}}
}

func (fc *fontCache) face(size int) *text.GoTextFace {
	if fc.src == nil {
		return nil
	}
	f, ok := fc.faces[size]
	if !ok {
		f = &text.GoTextFace{Source: fc.src, Size: float64(size)}
		fc.faces[size] = f
	}
	return f
}

// drawCommand executes one render command on screen.
func (v *Viewer) drawCommand(screen *ebiten.Image, c render.Command) {
	x, y := float32(c.X), float32(c.Y)
	size := float32(c.Size)
	stroke := float32(max(1, c.StrokeWidth))

	switch c.Shape {
	case render.ShapeTriangle:
		var path vector.Path
		path.MoveTo(x, y-size)
		path.LineTo(x-size, y+size)
		path.LineTo(x+size, y+size)
		path.Close()
		op := &vector.DrawPathOptions{AntiAlias: true}
		op.ColorScale.ScaleWithColor(c.Color)
		if c.Fill {
			vector.FillPath(screen, &path, &vector.FillOptions{}, op)
		} else {
			vector.StrokePath(screen, &path, &vector.StrokeOptions{Width: stroke, LineJoin: vector.LineJoinMiter}, op)
		}

	case render.ShapeSquare:
		half := size / 2
		if c.Fill {
			vector.FillRect(screen, x-half, y-half, size, size, c.Color, false)
		} else {
			vector.StrokeRect(screen, x-half, y-half, size, size, stroke, c.Color, false)
		}

	case render.ShapeCircle:
		if c.Fill {
			vector.FillCircle(screen, x, y, size, c.Color, true)
		} else {
			vector.StrokeCircle(screen, x, y, size, stroke, c.Color, true)
		}

	case render.ShapeText:
		v.drawText(screen, c.Text, c.X, c.Y, c.FontSize, c.Color, c.Align)
	}
}

func (v *Viewer) drawText(screen *ebiten.Image, s string, x, y, size int, clr color.Color, align render.Align) {
	face := v.fonts.face(size)
	if face == nil {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(clr)
	if align == render.AlignCenter {
		op.PrimaryAlign = text.AlignCenter
	}
	text.Draw(screen, s, face, op)
}

// drawSelection rings the inspected NPC so it can be followed by eye.
func (v *Viewer) drawSelection(screen *ebiten.Image) {
	slot := v.inspector.selected
	f := v.Frame()
	if slot < 0 || slot >= len(f.NPCs) {
		return
	}
	p := f.NPCs[slot]
	x, y := v.renderer.Mapping().ToScreen(p.X, p.Y)
	r := float32(v.profile.NPCRadius) * 1.8
	vector.StrokeCircle(screen, float32(x), float32(y), r, 2, color.RGBA{A: 255}, true)
}
