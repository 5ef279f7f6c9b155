package render

import (
	"fmt"
	"strings"

	"github.com/Garsondee/Settlement-Replay/internal/replay"
)

// reportEvents is how many recent build events a frame report lists.
const reportEvents = 8

// FrameReport renders frame index of rep as plain text: tick, NPC positions
// by slot, building completion, items, tasks and the build events seen so
// far. selected marks one NPC slot (-1 for none). labels may be nil.
func FrameReport(rep *replay.Replay, index, selected int, labels Labeler) string {
	if index < 0 || index >= rep.Len() {
		return ""
	}
	f := rep.Frame(index)

	var b strings.Builder
	fmt.Fprintf(&b, "--- Settlement replay frame report ---\n")
	fmt.Fprintf(&b, "frame=%d/%d tick=%d npcs=%d tasks=%d\n\n", index, rep.Len()-1, f.Tick, len(f.NPCs), len(f.Tasks))

	b.WriteString("== NPCs ==\n")
	if len(f.NPCs) == 0 {
		b.WriteString("(none)\n")
	}
	bounds := rep.World.Bounds()
	for slot, p := range f.NPCs {
		mark := " "
		if slot == selected {
			mark = "*"
		}
		fmt.Fprintf(&b, "%s slot %02d at %s", mark, slot, p)
		if !bounds.Contains(p.X, p.Y) {
			b.WriteString(" off-map")
		}
		b.WriteByte('\n')
	}
	b.WriteByte('\n')

	b.WriteString("== Buildings ==\n")
	done := 0
	for _, bd := range rep.World.Buildings() {
		state := "pending"
		if f.BuildingDone(bd) {
			state = "done"
			done++
		}
		fmt.Fprintf(&b, "  B%-3d %-20s %-8s at (%d,%d)\n", bd.ID, bd.Name, state, bd.X, bd.Y)
	}
	fmt.Fprintf(&b, "complete: %d/%d\n", done, len(rep.World.Buildings()))
	if ids := rep.World.Undeclared(f.Completion); len(ids) > 0 {
		b.WriteString("undeclared built:")
		for _, id := range ids {
			fmt.Fprintf(&b, " B%d", id)
		}
		b.WriteByte('\n')
	}
	b.WriteByte('\n')

	b.WriteString("== Items ==\n")
	for _, line := range ItemLines(f, labels, 0) {
		b.WriteString("  ")
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteByte('\n')

	if len(f.Tasks) > 0 {
		b.WriteString("== Tasks ==\n")
		for _, t := range f.Tasks {
			b.WriteString("  - ")
			b.WriteString(t)
			b.WriteByte('\n')
		}
		b.WriteByte('\n')
	}

	events := rep.Events.Before(index)
	b.WriteString("== Recent events ==\n")
	if len(events) == 0 {
		b.WriteString("(no build events yet)\n")
	}
	if len(events) > reportEvents {
		events = events[len(events)-reportEvents:]
	}
	for _, e := range events {
		b.WriteString("  ")
		b.WriteString(e.String())
		if bd, ok := rep.World.Building(e.BuildingID); ok {
			b.WriteString(" " + bd.Name)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
