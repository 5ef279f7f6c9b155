// Command replay-report prints a headless summary of a settlement simulation
// log, or the full report for a single frame.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/Garsondee/Settlement-Replay/internal/gamedata"
	"github.com/Garsondee/Settlement-Replay/internal/logger"
	"github.com/Garsondee/Settlement-Replay/internal/playback"
	"github.com/Garsondee/Settlement-Replay/internal/render"
	"github.com/Garsondee/Settlement-Replay/internal/replay"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

type options struct {
	logPath  string
	gameData string
	builtin  bool
	catalog  bool
	frame    int
	tick     int
	step     int
	fps      int
	logLevel string
}

func parseFlags(args []string) (options, error) {
	var o options
	fs := flag.NewFlagSet("replay-report", flag.ContinueOnError)
	fs.StringVar(&o.logPath, "log", "Simulation.log", "simulation log (.log, .gz or .zst)")
	fs.StringVar(&o.gameData, "gamedata", "", "game_data.db for item names")
	fs.BoolVar(&o.builtin, "builtin-names", false, "use the built-in item catalog for names")
	fs.BoolVar(&o.catalog, "catalog", false, "append building materials and recipes from the item catalog")
	fs.IntVar(&o.frame, "frame", -1, "print the report for this frame index instead of the summary")
	fs.IntVar(&o.tick, "tick", -1, "print the report for the frame shown at this tick instead of the summary")
	fs.IntVar(&o.step, "step", 1, "frames per render tick for the playback estimate")
	fs.IntVar(&o.fps, "fps", playback.DefaultRate, "render ticks per second for the playback estimate")
	fs.StringVar(&o.logLevel, "log-level", "warn", "logrus level")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if o.step <= 0 {
		return o, fmt.Errorf("-step must be > 0")
	}
	if o.fps <= 0 {
		return o, fmt.Errorf("-fps must be > 0")
	}
	if o.frame >= 0 && o.tick >= 0 {
		return o, fmt.Errorf("-frame and -tick are mutually exclusive")
	}
	if o.catalog && o.gameData == "" && !o.builtin {
		return o, fmt.Errorf("-catalog needs -gamedata or -builtin-names")
	}
	return o, nil
}

func run(args []string, out io.Writer) error {
	o, err := parseFlags(args)
	if err != nil {
		return err
	}
	logger.InitTo(os.Stderr, o.logLevel, "text")

	cat, err := loadCatalog(o)
	if err != nil {
		return err
	}
	var labels render.Labeler
	if cat != nil {
		labels = cat
	}
	rep, err := replay.Load(o.logPath)
	if err != nil {
		return err
	}

	frame := o.frame
	if o.tick >= 0 {
		if rep.Empty() {
			return replay.ErrEmptyReplay
		}
		frame = rep.IndexAtTick(o.tick)
	}
	if frame >= 0 {
		if frame >= rep.Len() {
			return fmt.Errorf("frame %d out of range (replay has %d frames)", frame, rep.Len())
		}
		_, err := io.WriteString(out, render.FrameReport(rep, frame, -1, labels))
		return err
	}

	var size uint64
	if st, err := os.Stat(o.logPath); err == nil {
		size = uint64(st.Size())
	}
	if err := printSummary(out, o, size, rep, labels); err != nil {
		return err
	}
	if o.catalog {
		printCatalog(out, cat)
	}
	return nil
}

func loadCatalog(o options) (*gamedata.Catalog, error) {
	switch {
	case o.gameData != "":
		return gamedata.Open(context.Background(), o.gameData)
	case o.builtin:
		return gamedata.Default(), nil
	}
	return nil, nil
}

func printSummary(out io.Writer, o options, size uint64, rep *replay.Replay, labels render.Labeler) error {
	s := replay.Summarize(rep)

	fmt.Fprintf(out, "=== Settlement Replay Report ===\n")
	fmt.Fprintf(out, "source=%s size=%s\n", o.logPath, humanize.Bytes(size))
	fmt.Fprintf(out, "frames=%s ticks=%d..%d max_npcs=%d task_frames=%s events=%d skipped=%d\n",
		humanize.Comma(int64(s.Frames)), s.FirstTick, s.LastTick, s.MaxNPCs,
		humanize.Comma(int64(s.TaskFrames)), s.Events, s.Skipped)

	if s.Frames > 0 {
		ctrl, err := playback.New(s.Frames,
			playback.WithStepSize(o.step),
			playback.WithRateBounds(1, max(o.fps, playback.DefaultMaxRate)),
			playback.WithRate(o.fps),
		)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "playback=%s at %d fps (step %d)\n", playback.FormatDuration(ctrl.Total()), ctrl.Rate(), ctrl.StepSize())
	} else {
		fmt.Fprintln(out, "playback=none (no frames)")
	}

	fmt.Fprintf(out, "\n== Build timeline ==\n")
	for _, bp := range s.Buildings {
		when := "never"
		if bp.Frame >= 0 {
			when = fmt.Sprintf("tick %d (frame %d)", bp.Tick, bp.Frame)
		}
		fmt.Fprintf(out, "  B%-3d %-20s %s", bp.Building.ID, bp.Building.Name, when)
		if bp.Events > 0 {
			fmt.Fprintf(out, " events=%d first_logged=%d", bp.Events, bp.LoggedTick)
		}
		fmt.Fprintln(out)
	}
	fmt.Fprintf(out, "complete: %d/%d\n", s.Completed(), len(s.Buildings))
	if len(s.Undeclared) > 0 {
		fmt.Fprintf(out, "undeclared built: %v\n", s.Undeclared)
	}
	if s.Frames > 0 {
		fmt.Fprintf(out, "completion entries done: %d\n", s.FinalDone)
	}

	fmt.Fprintf(out, "\n== Final items ==\n")
	if len(s.FinalItems) == 0 {
		fmt.Fprintln(out, "  (none)")
	}
	for _, it := range s.FinalItems {
		name := ""
		if labels != nil {
			if n, ok := labels.ItemName(it.ID); ok {
				name = " " + n
			}
		}
		fmt.Fprintf(out, "  I%d%s = %d (need %d)\n", it.ID, name, it.Held, it.Need)
	}
	return nil
}

// printCatalog lists every building's bill of materials and every recipe.
func printCatalog(out io.Writer, cat *gamedata.Catalog) {
	name := func(id int) string {
		if n, ok := cat.ItemName(id); ok {
			return n
		}
		return fmt.Sprintf("I%d", id)
	}

	fmt.Fprintf(out, "\n== Building materials ==\n")
	for _, bd := range cat.Buildings {
		label, _ := cat.BuildingName(bd.ID)
		fmt.Fprintf(out, "  %s:", label)
		mats := cat.MaterialsFor(bd.ID)
		if len(mats) == 0 {
			fmt.Fprint(out, " nothing")
		}
		for _, m := range mats {
			fmt.Fprintf(out, " %dx %s", m.Quantity, name(m.ItemID))
		}
		fmt.Fprintln(out)
	}

	fmt.Fprintf(out, "\n== Recipes ==\n")
	for _, id := range cat.RecipeItems() {
		r, _ := cat.Recipe(id)
		fmt.Fprintf(out, "  %s x%d <-", name(r.ItemID), r.Produced)
		for _, in := range r.Inputs {
			fmt.Fprintf(out, " %dx %s", in.Quantity, name(in.ItemID))
		}
		fmt.Fprintf(out, " (%d ticks)\n", r.ProductionTime)
	}
}
