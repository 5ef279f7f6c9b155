package replay

// BuildingProgress records when a building first shows as complete.
type BuildingProgress struct {
	Building   Building
	Frame      int // first frame with the building complete, -1 if never
	Tick       int // tick of that frame, -1 if never
	LoggedTick int // tick of the first build event, -1 if none
	Events     int // build events naming the building
}

// ItemCount is one item's need and stored quantity in a frame.
type ItemCount struct {
	ID   int
	Need int
	Held int
}

// Summary captures replay-wide figures for headless reporting.
type Summary struct {
	Frames     int
	FirstTick  int
	LastTick   int
	MaxNPCs    int
	TaskFrames int // frames that carry at least one task label
	Events     int
	Skipped    int
	Buildings  []BuildingProgress // static list order
	FinalItems []ItemCount        // last frame, sorted by item id
	FinalDone  int                // completion entries done in the last frame, storage included
	Undeclared []int              // built ids never declared as buildings, last frame
}

// Summarize walks every frame once. An empty replay yields a summary with
// zero frames and ticks of -1.
func Summarize(r *Replay) Summary {
	s := Summary{
		Frames:    r.Len(),
		FirstTick: -1,
		LastTick:  -1,
		MaxNPCs:   r.MaxNPCs(),
		Events:    r.Events.Len(),
		Skipped:   r.Stats.Skipped,
	}

	buildings := r.World.Buildings()
	s.Buildings = make([]BuildingProgress, len(buildings))
	for i, b := range buildings {
		bp := BuildingProgress{Building: b, Frame: -1, Tick: -1, LoggedTick: -1}
		bp.Events = len(r.Events.Filter(b.ID))
		if e, ok := r.Events.FirstCompletion(b.ID); ok {
			bp.LoggedTick = e.Tick
		}
		s.Buildings[i] = bp
	}

	for i := range r.Frames {
		f := &r.Frames[i]
		if len(f.Tasks) > 0 {
			s.TaskFrames++
		}
		for j := range s.Buildings {
			bp := &s.Buildings[j]
			if bp.Frame < 0 && f.BuildingDone(bp.Building) {
				bp.Frame = i
				bp.Tick = f.Tick
			}
		}
	}

	if r.Empty() {
		return s
	}
	first, last := r.Frame(0), r.Frame(r.Len()-1)
	s.FirstTick = first.Tick
	s.LastTick = last.Tick
	s.FinalDone = last.Completion.Count()
	s.Undeclared = r.World.Undeclared(last.Completion)
	for _, id := range last.ItemIDs() {
		s.FinalItems = append(s.FinalItems, ItemCount{ID: id, Need: last.Need(id), Held: last.Held(id)})
	}
	return s
}

// Completed returns how many buildings finished at some point.
func (s Summary) Completed() int {
	n := 0
	for _, bp := range s.Buildings {
		if bp.Frame >= 0 {
			n++
		}
	}
	return n
}
