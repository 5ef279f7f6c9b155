package replay

import (
	"reflect"
	"strings"
	"testing"
)

const exampleLog = "ResourcePoints:\n" +
	"RP 1 item 1 at (0,0)\n" +
	"Buildings:\n" +
	"B 256 Storage at (0,0)\n" +
	"[Tick 0] NPCs: (1,1) I1:5/0\n" +
	"built building 256 at tick 0\n" +
	"[Tick 1] NPCs: (2,2) I1:5/1"

func TestParse_ExampleLog(t *testing.T) {
	rep, err := Parse(strings.NewReader(exampleLog))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if rep.Len() != 2 {
		t.Fatalf("expected 2 frames, got %d", rep.Len())
	}
	f0, f1 := rep.Frame(0), rep.Frame(1)
	if !f0.Completion.Done(StorageID) {
		t.Fatal("storage should be complete in frame 0")
	}
	if f0.Held(1) != 0 || f0.Need(1) != 5 {
		t.Fatalf("frame 0 item 1: need=%d held=%d, want 5/0", f0.Need(1), f0.Held(1))
	}
	if !reflect.DeepEqual(f1.NPCs, []Point{{2, 2}}) {
		t.Fatalf("frame 1 npcs = %v, want [(2,2)]", f1.NPCs)
	}
	if f1.Held(1) != 1 {
		t.Fatalf("frame 1 inventory of item 1 = %d, want 1", f1.Held(1))
	}
	if len(rep.World.ResourcePoints()) != 1 || len(rep.World.Buildings()) != 1 {
		t.Fatalf("world: %d resource points, %d buildings", len(rep.World.ResourcePoints()), len(rep.World.Buildings()))
	}
}

func TestParse_FrameCountMatchesTickLines(t *testing.T) {
	text := BuildLog(
		WithResourcePoint(1, 2, 3, 4),
		WithStorage(0, 0),
		WithTick(TickSpec{Tick: 0}),
		WithBodyLine("some unrelated chatter"),
		WithTick(TickSpec{Tick: 2, NPCs: []Point{{1, 1}}}),
		WithBodyLine("[Tick 3] broken line without npc marker"),
		WithTick(TickSpec{Tick: 5}),
	)
	rep := ParseString(text)
	if rep.Len() != 3 {
		t.Fatalf("expected 3 frames, got %d", rep.Len())
	}
	prev := -1
	for i, f := range rep.Frames {
		if f.Tick < prev {
			t.Fatalf("frame %d tick %d decreases from %d", i, f.Tick, prev)
		}
		prev = f.Tick
	}
	if rep.Stats.Skipped != 2 {
		t.Fatalf("expected 2 skipped lines, got %d", rep.Stats.Skipped)
	}
}

func TestParse_CompletionIsMonotonic(t *testing.T) {
	text := BuildLog(
		WithStorage(0, 0),
		WithBuilding(1, "WoodenHut", 5, 5),
		WithBuilding(2, "SmeltingHut", 6, 6),
		WithTick(TickSpec{Tick: 0}),
		WithBuilt(1, 0),
		WithTick(TickSpec{Tick: 1}),
		WithTick(TickSpec{Tick: 2}),
		WithBuilt(2, 2),
		WithBuilt(1, 2),
		WithTick(TickSpec{Tick: 3}),
	)
	rep := ParseString(text)
	if rep.Len() != 4 {
		t.Fatalf("expected 4 frames, got %d", rep.Len())
	}
	for _, id := range []int{1, 2, StorageID} {
		seen := false
		for i := range rep.Frames {
			done := rep.Frames[i].Completion.Done(id)
			if seen && !done {
				t.Fatalf("building %d reverted to incomplete at frame %d", id, i)
			}
			seen = seen || done
		}
	}
	if rep.Frame(0).Completion.Done(1) {
		t.Fatal("building 1 should be incomplete before its event")
	}
	if !rep.Frame(1).Completion.Done(1) {
		t.Fatal("building 1 should be complete after its event")
	}
	if rep.Frame(2).Completion.Done(2) || !rep.Frame(3).Completion.Done(2) {
		t.Fatal("building 2 should complete between frames 2 and 3")
	}
}

func TestParse_SnapshotsDoNotAlias(t *testing.T) {
	text := BuildLog(
		WithBuilding(7, "GlassHut", 1, 1),
		WithTick(TickSpec{Tick: 0}),
		WithBuilt(7, 0),
		WithTick(TickSpec{Tick: 1}),
	)
	rep := ParseString(text)
	if rep.Frame(0).Completion.Done(7) {
		t.Fatal("a later event leaked into frame 0's snapshot")
	}
}

func TestParse_StorageAlwaysCompleteInFirstFrame(t *testing.T) {
	logs := []string{
		exampleLog,
		BuildLog(WithTick(TickSpec{Tick: 0})),
		BuildLog(WithBuilding(1, "WoodenHut", 2, 2), WithTick(TickSpec{Tick: 9})),
	}
	for i, text := range logs {
		rep := ParseString(text)
		if rep.Empty() {
			t.Fatalf("log %d produced no frames", i)
		}
		if !rep.Frame(0).Completion.Done(StorageID) {
			t.Fatalf("log %d: storage incomplete in frame 0", i)
		}
	}
}

func TestParse_Idempotent(t *testing.T) {
	text := BuildLog(
		WithResourcePoint(1, 1, 0, 0),
		WithResourcePoint(2, 3, 9, -4),
		WithStorage(1, 1),
		WithBuilding(1, "Wooden Hut", 4, 4),
		WithTick(TickSpec{Tick: 0, NPCs: []Point{{1, 1}, {2, 2}}, Items: [][3]int{{1, 5, 0}}}),
		WithBuilt(1, 0),
		WithTick(TickSpec{Tick: 1, NPCs: []Point{{3, 3}}, Tasks: []string{"gather", "build"}}),
	)
	a := ParseString(text)
	b := ParseString(text)
	if !reflect.DeepEqual(a.World, b.World) {
		t.Fatal("worlds differ between parses")
	}
	if !reflect.DeepEqual(a.Frames, b.Frames) {
		t.Fatal("frames differ between parses")
	}
}

func TestParse_BuildingNameWithSpaces(t *testing.T) {
	rep := ParseString("ResourcePoints:\nBuildings:\nB 3 Blacksmith Hut North at (12,-3)\n[Tick 0] NPCs:")
	b, ok := rep.World.Building(3)
	if !ok {
		t.Fatal("building 3 not parsed")
	}
	if b.Name != "Blacksmith Hut North" {
		t.Fatalf("name = %q", b.Name)
	}
	if b.X != 12 || b.Y != -3 {
		t.Fatalf("position = (%d,%d), want (12,-3)", b.X, b.Y)
	}
	if b.InitiallyCompleted {
		t.Fatal("ordinary building should start incomplete")
	}
	if rep.Len() != 1 || len(rep.Frame(0).NPCs) != 0 {
		t.Fatalf("expected one frame without npcs, got %d frames", rep.Len())
	}
}

func TestParse_FirstTickLineEndsHeader(t *testing.T) {
	rep := ParseString("ResourcePoints:\nBuildings:\nB 1 Hut at (0,0)\n[Tick 4] NPCs: (1,2) (3,4)\nB 2 Late at (5,5)")
	if rep.Len() != 1 || rep.Frame(0).Tick != 4 {
		t.Fatalf("the transition line should be a tick record, got %d frames", rep.Len())
	}
	if _, ok := rep.World.Building(2); ok {
		t.Fatal("building lines after the body starts must be ignored")
	}
	want := []Point{{1, 2}, {3, 4}}
	if !reflect.DeepEqual(rep.Frame(0).NPCs, want) {
		t.Fatalf("npcs = %v, want %v", rep.Frame(0).NPCs, want)
	}
}

func TestParse_NoHeaderMeansNoFrames(t *testing.T) {
	rep := ParseString("[Tick 0] NPCs: (1,1)\n[Tick 1] NPCs: (1,2)")
	if !rep.Empty() {
		t.Fatalf("expected no frames without section headers, got %d", rep.Len())
	}
	if err := rep.RequireFrames(); err != ErrEmptyReplay {
		t.Fatalf("RequireFrames = %v, want ErrEmptyReplay", err)
	}
}

func TestParse_Tasks(t *testing.T) {
	text := BuildLog(
		WithTick(TickSpec{Tick: 0, Tasks: []string{}}),
		WithTick(TickSpec{Tick: 1, Tasks: []string{"gather:1", "craft:5"}}),
		WithBodyLine("[Tick 2] NPCs: (0,0) Tasks:"),
		WithTick(TickSpec{Tick: 3}),
	)
	rep := ParseString(text)
	if rep.Len() != 4 {
		t.Fatalf("expected 4 frames, got %d", rep.Len())
	}
	if len(rep.Frame(0).Tasks) != 0 {
		t.Fatalf("\"Tasks: None\" should mean no tasks, got %v", rep.Frame(0).Tasks)
	}
	if !reflect.DeepEqual(rep.Frame(1).Tasks, []string{"gather:1", "craft:5"}) {
		t.Fatalf("tasks = %v", rep.Frame(1).Tasks)
	}
	if len(rep.Frame(2).Tasks) != 0 || len(rep.Frame(3).Tasks) != 0 {
		t.Fatal("empty or absent task sections should mean no tasks")
	}
}

func TestParse_ItemCounters(t *testing.T) {
	rep := ParseString(BuildLog(WithTick(TickSpec{
		Tick:  0,
		NPCs:  []Point{{-2, 7}},
		Items: [][3]int{{1, 20, 3}, {5, 0, 12}},
	})))
	f := rep.Frame(0)
	if f.Need(1) != 20 || f.Held(1) != 3 {
		t.Fatalf("item 1: need=%d held=%d", f.Need(1), f.Held(1))
	}
	if f.Need(5) != 0 || f.Held(5) != 12 {
		t.Fatalf("item 5: need=%d held=%d", f.Need(5), f.Held(5))
	}
	if f.Need(9) != 0 || f.Held(9) != 0 {
		t.Fatal("unlisted items should read as zero")
	}
	if !reflect.DeepEqual(f.ItemIDs(), []int{1, 5}) {
		t.Fatalf("item ids = %v", f.ItemIDs())
	}
	if !reflect.DeepEqual(f.NPCs, []Point{{-2, 7}}) {
		t.Fatalf("negative coordinates not kept: %v", f.NPCs)
	}
}

func TestParse_BuiltLineIsNeverATick(t *testing.T) {
	rep := ParseString(BuildLog(
		WithTick(TickSpec{Tick: 0}),
		WithBodyLine("[Tick 1] NPCs: (1,1) built building 4"),
		WithBodyLine("built building soon"),
	))
	if rep.Len() != 1 {
		t.Fatalf("event lines must not produce frames, got %d", rep.Len())
	}
	if rep.Events.Len() != 1 || rep.Events.Entries()[0].BuildingID != 4 {
		t.Fatalf("events = %s", rep.Events.Format())
	}
}

func TestParse_EventLog(t *testing.T) {
	rep := ParseString(BuildLog(
		WithBuilding(1, "WoodenHut", 0, 0),
		WithBuilding(2, "GlassHut", 0, 0),
		WithTick(TickSpec{Tick: 10}),
		WithBodyLine("NPC 3 built building 1"),
		WithTick(TickSpec{Tick: 11}),
		WithBuilt(2, 11),
	))
	ev := rep.Events.Entries()
	if len(ev) != 2 {
		t.Fatalf("expected 2 events, got %d", len(ev))
	}
	if ev[0].Tick != 10 || ev[0].FrameIndex != 1 {
		t.Fatalf("event without tick suffix should take the previous tick: %+v", ev[0])
	}
	if ev[1].Tick != 11 || ev[1].FrameIndex != 2 {
		t.Fatalf("event 2 = %+v", ev[1])
	}
	if got := rep.Events.Before(1); len(got) != 1 {
		t.Fatalf("Before(1) = %d events, want 1", len(got))
	}
	if first, ok := rep.Events.FirstCompletion(2); !ok || first.Line == 0 {
		t.Fatalf("FirstCompletion(2) = %+v, %v", first, ok)
	}
	if _, ok := rep.Events.FirstCompletion(99); ok {
		t.Fatal("unknown building should have no completion")
	}
}

func TestParse_DuplicateBuildingKeepsSlot(t *testing.T) {
	rep := ParseString("ResourcePoints:\nBuildings:\nB 1 A at (0,0)\nB 2 B at (1,1)\nB 1 C at (2,2)\n[Tick 0] NPCs:")
	bs := rep.World.Buildings()
	if len(bs) != 2 {
		t.Fatalf("expected 2 buildings, got %d", len(bs))
	}
	if bs[0].Name != "C" || rep.World.BuildingIndex(1) != 0 {
		t.Fatalf("duplicate should replace in place, got %+v", bs)
	}
}

func TestParse_CRLF(t *testing.T) {
	text := strings.ReplaceAll(exampleLog, "\n", "\r\n")
	rep := ParseString(text)
	if rep.Len() != 2 {
		t.Fatalf("expected 2 frames with CRLF endings, got %d", rep.Len())
	}
}

func TestReplay_IndexAtTick(t *testing.T) {
	rep := ParseString(BuildLog(
		WithTick(TickSpec{Tick: 3}),
		WithTick(TickSpec{Tick: 5}),
		WithTick(TickSpec{Tick: 9}),
	))
	cases := map[int]int{0: 0, 3: 0, 4: 0, 5: 1, 8: 1, 9: 2, 100: 2}
	for tick, want := range cases {
		if got := rep.IndexAtTick(tick); got != want {
			t.Fatalf("IndexAtTick(%d) = %d, want %d", tick, got, want)
		}
	}
}

func TestParse_OversizedNumbersAreSkipped(t *testing.T) {
	rep := ParseString("ResourcePoints:\n" +
		"RP 99999999999999999999 item 1 at (0,0)\n" +
		"RP 2 item 1 at (3,3)\n" +
		"Buildings:\n" +
		"B 99999999999999999999 Hut at (1,1)\n" +
		"[Tick 5] NPCs: (1,1)\n" +
		"[Tick 99999999999999999999] NPCs: (2,2)\n" +
		"[Tick 6] NPCs: (99999999999999999999,2)\n" +
		"built building 99999999999999999999\n" +
		"[Tick 7] NPCs: (3,3) I1:2/99999999999999999999\n" +
		"[Tick 8] NPCs: (4,4)")

	rps := rep.World.ResourcePoints()
	if len(rps) != 1 || rps[0].ID != 2 {
		t.Fatalf("resource points = %+v, want only id 2", rps)
	}
	if len(rep.World.Buildings()) != 0 {
		t.Fatalf("oversized building id should not be declared: %+v", rep.World.Buildings())
	}
	var ticks []int
	for _, f := range rep.Frames {
		ticks = append(ticks, f.Tick)
	}
	if !reflect.DeepEqual(ticks, []int{5, 8}) {
		t.Fatalf("ticks = %v, want [5 8]", ticks)
	}
	if rep.Events.Len() != 0 {
		t.Fatalf("oversized event id should not be recorded: %s", rep.Events.Format())
	}
	if rep.Stats.Skipped != 6 {
		t.Fatalf("expected 6 skipped lines, got %d", rep.Stats.Skipped)
	}
}

func TestParse_MalformedTransitionLineIsSkipped(t *testing.T) {
	rep := ParseString("ResourcePoints:\nBuildings:\n[Tick 3] garbage\n[Tick 4] NPCs: (1,1)")
	if rep.Len() != 1 || rep.Frame(0).Tick != 4 {
		t.Fatalf("expected only tick 4, got %d frames", rep.Len())
	}
	if rep.Stats.Skipped != 1 {
		t.Fatalf("expected the malformed transition line to be skipped, got %d", rep.Stats.Skipped)
	}
}

func TestParse_HeadersAreNotSkipped(t *testing.T) {
	rep := ParseString("preamble\nResourcePoints:\nBuildings:\nBuildings:\n[Tick 0] NPCs:")
	// "preamble" and the second "Buildings:" are ignored lines.
	if rep.Stats.Skipped != 2 {
		t.Fatalf("expected 2 skipped lines, got %d", rep.Stats.Skipped)
	}
}

func TestEventLog_Filter(t *testing.T) {
	rep := ParseString(BuildLog(
		WithTick(TickSpec{Tick: 0}),
		WithBuilt(1, 0),
		WithBuilt(2, 0),
		WithTick(TickSpec{Tick: 1}),
		WithBuilt(1, 1),
	))
	got := rep.Events.Filter(1)
	if len(got) != 2 || got[0].Tick != 0 || got[1].Tick != 1 {
		t.Fatalf("Filter(1) = %+v", got)
	}
	if len(rep.Events.Filter(3)) != 0 {
		t.Fatal("Filter on an unknown building should be empty")
	}
}

func TestCompletion_IDsAndCount(t *testing.T) {
	rep := ParseString(BuildLog(
		WithStorage(0, 0),
		WithBuilding(4, "WoodenHut", 1, 1),
		WithBuilding(2, "GlassHut", 2, 2),
		WithTick(TickSpec{Tick: 0}),
		WithBuilt(9, 0),
		WithTick(TickSpec{Tick: 1}),
	))
	c0, c1 := rep.Frame(0).Completion, rep.Frame(1).Completion
	if !reflect.DeepEqual(c0.IDs(), []int{2, 4, StorageID}) {
		t.Fatalf("frame 0 ids = %v", c0.IDs())
	}
	if c0.Count() != 1 {
		t.Fatalf("frame 0 count = %d, want storage only", c0.Count())
	}
	if !reflect.DeepEqual(c1.IDs(), []int{2, 4, 9, StorageID}) || c1.Count() != 2 {
		t.Fatalf("frame 1 ids = %v count = %d", c1.IDs(), c1.Count())
	}
}
