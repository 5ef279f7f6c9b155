package viewer

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Settlement-Replay/internal/playback"
)

// Debug font metrics at 1x.
const (
	debugLineH = 16
	debugCharW = 6
)

// hudLines is the playback status and key legend.
func (v *Viewer) hudLines() []string {
	c := v.ctrl
	state := "PLAY"
	if c.Paused() {
		state = "PAUSED"
	}
	lo, hi := c.RateBounds()
	lines := []string{
		fmt.Sprintf("%s  frame %d/%d  tick %d", state, c.Index()+1, c.Len(), v.Frame().Tick),
		fmt.Sprintf("%d fps [%d..%d]  step %d  %s / %s", c.Rate(), lo, hi, c.StepSize(),
			playback.FormatDuration(c.Elapsed()), playback.FormatDuration(c.Total())),
		"Space/P=play  <-/->=step  Up/Down=speed",
		"Home/End=jump  R=reset speed  C=copy",
		"click=inspect  H=hide  Esc/Q=quit",
	}
	if v.status != "" {
		lines = append(lines, v.status)
	}
	return lines
}

// drawHUD renders the HUD into hudBuf at 1x and blits it at hudScale just
// under the tick label.
func (v *Viewer) drawHUD(screen *ebiten.Image) {
	lines := v.hudLines()

	const padX = 5
	const padY = 4
	maxLen := 0
	for _, l := range lines {
		maxLen = max(maxLen, len(l))
	}
	boxW := float32(maxLen*debugCharW + padX*2)
	boxH := float32(len(lines)*debugLineH + padY*2)

	if v.hudBuf == nil {
		v.hudBuf = ebiten.NewImage(v.profile.Width/v.hudScale, v.profile.Height/v.hudScale)
	}
	v.hudBuf.Clear()
	vector.FillRect(v.hudBuf, 0, 0, boxW, boxH, color.RGBA{R: 30, G: 30, B: 30, A: 190}, false)
	vector.StrokeRect(v.hudBuf, 0, 0, boxW, boxH, 1.0, color.RGBA{R: 90, G: 90, B: 90, A: 200}, false)
	for i, line := range lines {
		ebitenutil.DebugPrintAt(v.hudBuf, line, padX, padY+i*debugLineH)
	}

	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(float64(v.hudScale), float64(v.hudScale))
	opts.GeoM.Translate(float64(v.profile.TextPad), float64(v.profile.TextPad+v.profile.TitleFontSize+v.profile.TextPad))
	screen.DrawImage(v.hudBuf, opts)
}
