package viewer

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/Settlement-Replay/internal/render"
	"github.com/Garsondee/Settlement-Replay/internal/replay"
)

func testReplay() *replay.Replay {
	opts := []replay.LogOption{
		replay.WithStorage(0, 0),
		replay.WithBuilding(1, "WoodenHut", 9, 9),
		replay.WithBuilding(2, "SmeltingHut", 5, 0),
	}
	for tick := 0; tick < 6; tick++ {
		opts = append(opts, replay.WithTick(replay.TickSpec{
			Tick:  tick,
			NPCs:  []replay.Point{{X: tick, Y: 0}, {X: 9, Y: 9}},
			Tasks: []string{"gather", "build"},
		}))
		if tick == 1 {
			opts = append(opts, replay.WithBuilt(1, tick))
		}
		if tick == 3 {
			opts = append(opts, replay.WithBuilt(2, tick))
		}
	}
	return replay.ParseString(replay.BuildLog(opts...))
}

func newTestViewer(t *testing.T, opts ...Option) *Viewer {
	t.Helper()
	p, _ := render.Preset(render.ProfileStandard)
	v, err := New(testReplay(), p, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return v
}

func TestNew_RefusesEmptyReplay(t *testing.T) {
	p, _ := render.Preset(render.ProfileStandard)
	_, err := New(replay.ParseString("no header here\n"), p)
	if !errors.Is(err, replay.ErrEmptyReplay) {
		t.Fatalf("expected ErrEmptyReplay, got %v", err)
	}
}

func TestNew_RejectsInvalidProfile(t *testing.T) {
	p, _ := render.Preset(render.ProfileStandard)
	p.Width = 0
	if _, err := New(testReplay(), p); err == nil {
		t.Fatal("invalid profile should be rejected")
	}
}

func TestApply_Navigation(t *testing.T) {
	v := newTestViewer(t)
	c := v.Controller()

	v.apply(actLast)
	if c.Index() != 5 {
		t.Fatalf("End -> %d, want 5", c.Index())
	}
	v.apply(actStepForward)
	if c.Index() != 5 {
		t.Fatal("step forward at the last frame should clamp")
	}
	v.apply(actStepBack)
	v.apply(actFirst)
	v.apply(actStepBack)
	if c.Index() != 0 {
		t.Fatalf("index = %d, want 0", c.Index())
	}
}

func TestApply_PauseAndSpeed(t *testing.T) {
	v := newTestViewer(t)
	c := v.Controller()

	v.apply(actTogglePause)
	if !c.Paused() {
		t.Fatal("toggle should pause")
	}
	v.tick(time.Second)
	if c.Index() != 0 {
		t.Fatal("paused viewer should not advance")
	}

	v.apply(actFaster)
	if c.Rate() != 35 {
		t.Fatalf("rate = %d, want 35", c.Rate())
	}
	v.apply(actSlower)
	v.apply(actSlower)
	v.apply(actResetRate)
	if c.Rate() != 30 {
		t.Fatalf("reset rate = %d, want 30", c.Rate())
	}

	v.apply(actTogglePause)
	v.tick(100 * time.Millisecond)
	if c.Index() != 3 {
		t.Fatalf("100ms at 30fps should advance 3 frames, got %d", c.Index())
	}
}

func TestApply_ToggleHUDAndQuit(t *testing.T) {
	v := newTestViewer(t)
	v.apply(actToggleHUD)
	if v.showHUD {
		t.Fatal("H should hide the HUD")
	}
	if err := v.apply(actQuit); !errors.Is(err, ebiten.Termination) {
		t.Fatalf("quit should return ebiten.Termination, got %v", err)
	}
}

func TestCopyReport(t *testing.T) {
	var copied string
	v := newTestViewer(t, WithClipboard(func(s string) error {
		copied = s
		return nil
	}))
	v.apply(actLast)
	v.apply(actCopyReport)
	if !strings.Contains(copied, "tick=5") || !strings.Contains(copied, "built  B2") {
		t.Fatalf("clipboard got:\n%s", copied)
	}
	if v.status != "frame report copied" {
		t.Fatalf("status = %q", v.status)
	}
}

func TestCopyReport_Failure(t *testing.T) {
	v := newTestViewer(t, WithClipboard(func(string) error { return errors.New("no clipboard") }))
	v.apply(actCopyReport)
	if !strings.HasPrefix(v.status, "copy failed") {
		t.Fatalf("status = %q", v.status)
	}
	for i := 0; i < 2*ebiten.DefaultTPS; i++ {
		v.tick(0)
	}
	if v.status != "" {
		t.Fatal("status should clear after its timeout")
	}
}

func TestHUDLines(t *testing.T) {
	v := newTestViewer(t)
	v.apply(actTogglePause)
	lines := v.hudLines()
	if !strings.HasPrefix(lines[0], "PAUSED  frame 1/6  tick 0") {
		t.Fatalf("status line = %q", lines[0])
	}
	if !strings.Contains(lines[1], "30 fps [5..120]  step 1") {
		t.Fatalf("rate line = %q", lines[1])
	}
}

func TestInspector_PickAndDescribe(t *testing.T) {
	v := newTestViewer(t)
	m := v.renderer.Mapping()

	x, y := m.ToScreen(9, 9)
	if !v.handleInspectorClick(x+2, y-1) {
		t.Fatal("click next to slot 1 should select it")
	}
	if v.inspector.Selected() != 1 {
		t.Fatalf("selected = %d, want 1", v.inspector.Selected())
	}
	lines := v.inspectorLines()
	if lines[0] != "[ NPC slot 1 ]" || lines[1] != "pos: (9,9)" || lines[3] != "task: build" {
		t.Fatalf("inspector = %q", lines)
	}

	if v.handleInspectorClick(m.ToScreen(5, 5)) {
		t.Fatal("click on empty ground should clear the selection")
	}
	if v.inspectorLines() != nil {
		t.Fatal("no selection means no inspector lines")
	}
}

func TestPickSlot_Nearest(t *testing.T) {
	f := &replay.Frame{NPCs: []replay.Point{{X: 0, Y: 0}, {X: 1, Y: 0}}}
	m := render.NewMapping(replay.Bounds{MinX: 0, MaxX: 9, MinY: 0, MaxY: 9}, 1000, 1000, 40, false)
	x, y := m.ToScreen(1, 0)
	if got := pickSlot(f, m, x-10, y, 40); got != 1 {
		t.Fatalf("picked %d, want 1", got)
	}
}
