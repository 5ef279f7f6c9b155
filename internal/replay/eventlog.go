package replay

import (
	"fmt"
	"strings"
)

// Event is one "built building" line recorded while parsing the body.
type Event struct {
	Line       int // 1-based line number in the source
	Tick       int // "at tick N" when present, else the preceding tick record, -1 if none
	FrameIndex int // first frame whose completion snapshot reflects the event
	BuildingID int
}

// String formats the event as a fixed-width log line.
//
//	[T=042] f=0042  built  B3
func (e Event) String() string {
	return fmt.Sprintf("[T=%03d] f=%04d  built  B%d", e.Tick, e.FrameIndex, e.BuildingID)
}

// EventLog collects build events in source order. It is filled by the
// parser and read-only afterwards.
type EventLog struct {
	entries []Event
}

func (el *EventLog) add(e Event) {
	el.entries = append(el.entries, e)
}

// Entries returns all recorded events.
func (el *EventLog) Entries() []Event {
	if el == nil {
		return nil
	}
	return el.entries
}

// Len returns the number of recorded events.
func (el *EventLog) Len() int {
	if el == nil {
		return 0
	}
	return len(el.entries)
}

// Filter returns events for one building id.
func (el *EventLog) Filter(buildingID int) []Event {
	var out []Event
	for _, e := range el.Entries() {
		if e.BuildingID == buildingID {
			out = append(out, e)
		}
	}
	return out
}

// Before returns the events already reflected in frame frameIndex, i.e.
// those with FrameIndex <= frameIndex, oldest first.
func (el *EventLog) Before(frameIndex int) []Event {
	entries := el.Entries()
	// Entries are appended in parse order, so FrameIndex is non-decreasing.
	n := 0
	for n < len(entries) && entries[n].FrameIndex <= frameIndex {
		n++
	}
	return entries[:n]
}

// FirstCompletion returns the earliest build event for buildingID, or false
// if the building was never reported built.
func (el *EventLog) FirstCompletion(buildingID int) (Event, bool) {
	for _, e := range el.Entries() {
		if e.BuildingID == buildingID {
			return e, true
		}
	}
	return Event{}, false
}

// Format returns the full log as a single string for t.Log output.
func (el *EventLog) Format() string {
	var sb strings.Builder
	for _, e := range el.Entries() {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
