package replay

import (
	"fmt"
	"sort"
)

// StorageID is the building id of the settlement storage. It exists from the
// first tick and is always complete.
const StorageID = 256

// Point is an integer world coordinate.
type Point struct {
	X, Y int
}

// String formats the point the way the log writes it: "(x,y)".
func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// ResourcePoint is a fixed-location source of one raw material kind.
type ResourcePoint struct {
	ID       int
	ItemKind int
	X, Y     int
}

// Building is the static description of a building site. Completion is a
// per-frame fact (see Completion); the Building itself never changes.
type Building struct {
	ID                 int
	Name               string
	X, Y               int
	InitiallyCompleted bool
}

// IsStorage reports whether b is the storage sentinel.
func (b Building) IsStorage() bool {
	return b.ID == StorageID
}

// Completion is the cumulative building-completion state as of one tick.
// The zero value reports only the storage sentinel as complete.
type Completion struct {
	done map[int]bool
}

func newCompletion() Completion {
	return Completion{done: map[int]bool{StorageID: true}}
}

// clone returns an independent copy so later events cannot reach back into
// frames that were already emitted.
func (c Completion) clone() Completion {
	out := make(map[int]bool, len(c.done)+1)
	for id, v := range c.done {
		out[id] = v
	}
	return Completion{done: out}
}

// Done reports whether building id is complete. Unknown ids are incomplete,
// except the storage sentinel which is always complete.
func (c Completion) Done(id int) bool {
	if id == StorageID {
		return true
	}
	return c.done[id]
}

// Known reports whether id has an entry (declared building or build event).
func (c Completion) Known(id int) bool {
	_, ok := c.done[id]
	return ok
}

// IDs returns every building id with an entry, sorted ascending.
func (c Completion) IDs() []int {
	ids := make([]int, 0, len(c.done))
	for id := range c.done {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Count returns how many known buildings are complete.
func (c Completion) Count() int {
	n := 0
	for id := range c.done {
		if c.Done(id) {
			n++
		}
	}
	return n
}

// Frame is one parsed tick. Frames are built once by the parser and must be
// treated as read-only afterwards; every frame is renderable on its own.
type Frame struct {
	Tick       int
	NPCs       []Point     // index is the positional slot, not an agent id
	Needs      map[int]int // item id -> quantity still needed
	Inventory  map[int]int // item id -> quantity in storage
	Tasks      []string
	Completion Completion
}

// Need returns the outstanding need for item, zero if unlisted.
func (f *Frame) Need(item int) int {
	return f.Needs[item]
}

// Held returns the stored quantity of item, zero if unlisted.
func (f *Frame) Held(item int) int {
	return f.Inventory[item]
}

// ItemIDs returns the union of item ids present in needs or inventory,
// sorted ascending.
func (f *Frame) ItemIDs() []int {
	seen := make(map[int]struct{}, len(f.Needs)+len(f.Inventory))
	for id := range f.Needs {
		seen[id] = struct{}{}
	}
	for id := range f.Inventory {
		seen[id] = struct{}{}
	}
	ids := make([]int, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// BuildingDone reports whether b is complete as of this frame, falling back
// to the building's initial state when the frame carries no entry for it.
func (f *Frame) BuildingDone(b Building) bool {
	if f.Completion.Known(b.ID) {
		return f.Completion.Done(b.ID)
	}
	return b.InitiallyCompleted || f.Completion.Done(b.ID)
}
