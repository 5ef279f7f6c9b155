// Package viewer is the interactive replay window: an ebiten.Game that feeds
// the playback clock, executes render commands and overlays the HUD, the
// build-event panel and the NPC inspector.
package viewer

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"

	"github.com/Garsondee/Settlement-Replay/internal/logger"
	"github.com/Garsondee/Settlement-Replay/internal/playback"
	"github.com/Garsondee/Settlement-Replay/internal/render"
	"github.com/Garsondee/Settlement-Replay/internal/replay"
)

// Viewer implements ebiten.Game over one parsed replay.
type Viewer struct {
	rep      *replay.Replay
	profile  render.Profile
	ctrl     *playback.Controller
	renderer *render.Renderer
	labels   render.Labeler
	fonts    *fontCache

	showHUD       bool
	prevKeys      map[ebiten.Key]bool
	prevMouseLeft bool

	events    *EventPanel
	inspector Inspector
	copyText  func(string) error

	// Offscreen buffer for HUD text, rendered at 1x then blitted at hudScale.
	hudBuf   *ebiten.Image
	hudScale int

	status    string // transient message shown in the HUD
	statusTTL int    // ticks until status clears
}

// Option configures a Viewer.
type Option func(*Viewer)

// WithLabels names items in the item block and frame reports.
func WithLabels(l render.Labeler) Option {
	return func(v *Viewer) {
		v.labels = l
	}
}

// WithClipboard replaces the system clipboard writer.
func WithClipboard(write func(string) error) Option {
	return func(v *Viewer) {
		v.copyText = write
	}
}

// New builds a viewer for rep laid out by profile. It refuses an empty
// replay with replay.ErrEmptyReplay.
func New(rep *replay.Replay, profile render.Profile, opts ...Option) (*Viewer, error) {
	if err := rep.RequireFrames(); err != nil {
		return nil, err
	}
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	ctrl, err := playback.New(rep.Len(),
		playback.WithStepSize(profile.StepSize),
		playback.WithRate(profile.FPS),
		playback.WithRateBounds(profile.MinFPS, profile.MaxFPS),
		playback.WithRateStep(profile.FPSStep),
	)
	if err != nil {
		return nil, err
	}

	v := &Viewer{
		rep:      rep,
		profile:  profile,
		ctrl:     ctrl,
		showHUD:  true,
		prevKeys: make(map[ebiten.Key]bool),
		events:   NewEventPanel(eventPanelEntries),
		copyText: writeClipboard,
		hudScale: max(1, profile.FontSize/16),
	}
	v.inspector.selected = -1
	for _, o := range opts {
		o(v)
	}

	var ropts []render.Option
	if v.labels != nil {
		ropts = append(ropts, render.WithLabels(v.labels))
	}
	v.renderer = render.New(profile, rep.World, ropts...)
	v.fonts = newFontCache()
	v.events.Sync(rep.Events, 0)

	logger.Log.WithFields(logrus.Fields{
		"profile": profile.Name,
		"frames":  rep.Len(),
		"step":    ctrl.StepSize(),
		"fps":     ctrl.Rate(),
		"loop":    playback.FormatDuration(ctrl.Total()),
	}).Info("viewer ready")
	return v, nil
}

// Controller exposes the playback state.
func (v *Viewer) Controller() *playback.Controller { return v.ctrl }

// Frame returns the frame currently on screen.
func (v *Viewer) Frame() *replay.Frame { return v.rep.Frame(v.ctrl.Index()) }

// Update polls input and runs the playback clock for one game tick.
func (v *Viewer) Update() error {
	if err := v.handleInput(); err != nil {
		return err
	}
	v.tick(time.Second / time.Duration(ebiten.TPS()))
	return nil
}

// tick advances the clock by dt and refreshes everything derived from the
// current frame index.
func (v *Viewer) tick(dt time.Duration) {
	v.ctrl.Update(dt)
	v.events.Sync(v.rep.Events, v.ctrl.Index())
	if v.statusTTL > 0 {
		v.statusTTL--
		if v.statusTTL == 0 {
			v.status = ""
		}
	}
}

// Draw renders the current frame and the overlays.
func (v *Viewer) Draw(screen *ebiten.Image) {
	screen.Fill(render.Background())
	for _, cmd := range v.renderer.Frame(v.Frame()) {
		v.drawCommand(screen, cmd)
	}
	v.drawSelection(screen)
	v.events.Draw(screen, v.profile)
	if v.showHUD {
		v.drawHUD(screen)
	}
	v.drawInspector(screen)
}

// Layout fixes the logical surface to the profile size.
func (v *Viewer) Layout(_, _ int) (int, int) {
	return v.profile.Width, v.profile.Height
}

// Run opens the window and blocks until the viewer quits. Quitting from
// the keyboard returns nil.
func Run(v *Viewer) error {
	ebiten.SetWindowSize(v.profile.Width, v.profile.Height)
	ebiten.SetWindowTitle("Settlement Replay")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(v)
}

func (v *Viewer) flash(msg string) {
	v.status = msg
	v.statusTTL = 2 * ebiten.DefaultTPS
}
