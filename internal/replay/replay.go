// Package replay turns a recorded settlement-simulation log into a static
// world and an ordered sequence of immutable frames.
package replay

import (
	"errors"
	"sort"
)

var (
	// ErrEmptyReplay reports a log that yielded no tick records.
	ErrEmptyReplay = errors.New("replay: no frames")
	// ErrMissingSource reports a log that could not be opened or read.
	ErrMissingSource = errors.New("replay: log source unavailable")
)

// Replay is the parser output: static world, frames in parse order, and the
// build events seen between them. Nothing in a Replay changes after Parse
// returns, so it can be shared freely between readers.
type Replay struct {
	World  *World
	Frames []Frame
	Events *EventLog
	Stats  Stats
}

// Len returns the number of frames.
func (r *Replay) Len() int {
	return len(r.Frames)
}

// Empty reports whether the log produced no frames.
func (r *Replay) Empty() bool {
	return len(r.Frames) == 0
}

// RequireFrames returns ErrEmptyReplay when there is nothing to play.
func (r *Replay) RequireFrames() error {
	if r.Empty() {
		return ErrEmptyReplay
	}
	return nil
}

// Frame returns frame i. i must be a valid index.
func (r *Replay) Frame(i int) *Frame {
	return &r.Frames[i]
}

// IndexAtTick returns the index of the last frame whose tick is <= tick.
// Ticks before the first frame map to 0.
func (r *Replay) IndexAtTick(tick int) int {
	i := sort.Search(len(r.Frames), func(i int) bool {
		return r.Frames[i].Tick > tick
	})
	if i == 0 {
		return 0
	}
	return i - 1
}

// MaxNPCs returns the largest NPC count of any frame.
func (r *Replay) MaxNPCs() int {
	n := 0
	for i := range r.Frames {
		n = max(n, len(r.Frames[i].NPCs))
	}
	return n
}
