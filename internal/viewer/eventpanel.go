package viewer

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Settlement-Replay/internal/render"
	"github.com/Garsondee/Settlement-Replay/internal/replay"
)

const (
	eventPanelEntries = 12
	eventPanelWidth   = 220
	eventLineHeight   = 14
)

// EventPanel shows the most recent build events visible as of the frame on
// screen. The event log is read-only, so the panel keeps a window onto it
// rather than a copy.
type EventPanel struct {
	capacity int
	shown    []replay.Event
	frame    int // frame index the panel was last synced to
}

// NewEventPanel creates a panel showing at most capacity events.
func NewEventPanel(capacity int) *EventPanel {
	return &EventPanel{capacity: max(1, capacity), frame: -1}
}

// Recent returns the shown events in chronological order (oldest first).
func (ep *EventPanel) Recent() []replay.Event {
	return ep.shown
}

// Sync points the panel at the last capacity events reflected in frame
// frameIndex. Seeking in either direction lands on the same window.
func (ep *EventPanel) Sync(log *replay.EventLog, frameIndex int) {
	if frameIndex == ep.frame {
		return
	}
	visible := log.Before(frameIndex)
	ep.shown = visible[max(0, len(visible)-ep.capacity):]
	ep.frame = frameIndex
}

// Draw renders the panel in the bottom-centre of the surface.
func (ep *EventPanel) Draw(screen *ebiten.Image, p render.Profile) {
	h := eventLineHeight*(ep.capacity+1) + 6
	x := p.Width/2 - eventPanelWidth/2
	y := p.Height - h - p.TextPad

	vector.FillRect(screen, float32(x), float32(y), eventPanelWidth, float32(h), color.RGBA{R: 20, G: 24, B: 20, A: 200}, false)
	vector.StrokeLine(screen, float32(x), float32(y+eventLineHeight+2), float32(x+eventPanelWidth), float32(y+eventLineHeight+2), 1.0, color.RGBA{R: 80, G: 110, B: 80, A: 200}, false)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("BUILD EVENTS (%d)", len(ep.shown)), x+6, y)

	ly := y + eventLineHeight + 4
	for _, e := range ep.shown {
		ebitenutil.DebugPrintAt(screen, e.String(), x+6, ly)
		ly += eventLineHeight
	}
}
