// Package playback steps through a fixed-length frame sequence: looping
// playback, manual single-stepping, pausing and a variable frame rate.
package playback

import (
	"time"

	"github.com/hako/durafmt"

	"github.com/Garsondee/Settlement-Replay/internal/replay"
)

// Defaults match the standard viewer profile.
const (
	DefaultRate     = 30
	DefaultMinRate  = 5
	DefaultMaxRate  = 120
	DefaultRateStep = 5
)

// Controller owns the current frame index and the playback clock. It only
// knows the number of frames, never their contents.
type Controller struct {
	frameCount int
	index      int
	paused     bool
	stepSize   int

	rate     int // frames of the render clock per second
	baseRate int
	minRate  int
	maxRate  int
	rateStep int

	accum float64 // fractional render-clock ticks not yet consumed
}

// Option configures a Controller in New.
type Option func(*Controller)

// WithStepSize sets how many frames one render-clock tick advances.
// Values below 1 are treated as 1.
func WithStepSize(n int) Option {
	return func(c *Controller) {
		c.stepSize = max(1, n)
	}
}

// WithRate sets the starting render rate in frames per second.
func WithRate(fps int) Option {
	return func(c *Controller) {
		c.rate = fps
	}
}

// WithRateBounds sets the inclusive render-rate range.
func WithRateBounds(minFPS, maxFPS int) Option {
	return func(c *Controller) {
		c.minRate = max(1, minFPS)
		c.maxRate = max(c.minRate, maxFPS)
	}
}

// WithRateStep sets the increment used by IncreaseRate and DecreaseRate.
func WithRateStep(step int) Option {
	return func(c *Controller) {
		c.rateStep = max(1, step)
	}
}

// WithPaused starts the controller paused.
func WithPaused() Option {
	return func(c *Controller) {
		c.paused = true
	}
}

// New returns a controller positioned on frame 0. It refuses to operate on
// an empty sequence and returns replay.ErrEmptyReplay instead.
func New(frameCount int, opts ...Option) (*Controller, error) {
	if frameCount <= 0 {
		return nil, replay.ErrEmptyReplay
	}
	c := &Controller{
		frameCount: frameCount,
		stepSize:   1,
		rate:       DefaultRate,
		minRate:    DefaultMinRate,
		maxRate:    DefaultMaxRate,
		rateStep:   DefaultRateStep,
	}
	for _, o := range opts {
		o(c)
	}
	c.rate = c.clampRate(c.rate)
	c.baseRate = c.rate
	return c, nil
}

// Index returns the current frame index, always in [0, Len()).
func (c *Controller) Index() int { return c.index }

// Len returns the number of frames.
func (c *Controller) Len() int { return c.frameCount }

// Paused reports whether automatic advance is held.
func (c *Controller) Paused() bool { return c.paused }

// StepSize returns the frames advanced per render-clock tick.
func (c *Controller) StepSize() int { return c.stepSize }

// Rate returns the render rate in frames per second.
func (c *Controller) Rate() int { return c.rate }

// RateBounds returns the inclusive render-rate range.
func (c *Controller) RateBounds() (int, int) { return c.minRate, c.maxRate }

// Advance moves stepSize frames forward unless paused, wrapping from the
// end back to the start.
func (c *Controller) Advance() {
	if c.paused {
		return
	}
	c.index = (c.index + c.stepSize) % c.frameCount
}

// StepForward moves one frame forward, stopping at the last frame.
func (c *Controller) StepForward() {
	c.Seek(c.index + 1)
}

// StepBack moves one frame back, stopping at the first frame.
func (c *Controller) StepBack() {
	c.Seek(c.index - 1)
}

// Seek jumps to frame i, clamped to the valid range.
func (c *Controller) Seek(i int) {
	c.index = min(max(i, 0), c.frameCount-1)
}

// First jumps to the first frame.
func (c *Controller) First() { c.Seek(0) }

// Last jumps to the last frame.
func (c *Controller) Last() { c.Seek(c.frameCount - 1) }

// TogglePause flips the paused flag.
func (c *Controller) TogglePause() {
	c.paused = !c.paused
	c.accum = 0
}

// IncreaseRate raises the render rate by one step, up to the maximum.
func (c *Controller) IncreaseRate() {
	c.rate = c.clampRate(c.rate + c.rateStep)
}

// DecreaseRate lowers the render rate by one step, down to the minimum.
func (c *Controller) DecreaseRate() {
	c.rate = c.clampRate(c.rate - c.rateStep)
}

// ResetRate restores the starting render rate.
func (c *Controller) ResetRate() {
	c.rate = c.baseRate
}

func (c *Controller) clampRate(fps int) int {
	return min(max(fps, c.minRate), c.maxRate)
}

// Update runs the render clock for dt and returns how many times Advance
// was called. A paused controller does not bank time.
func (c *Controller) Update(dt time.Duration) int {
	if c.paused || dt <= 0 {
		return 0
	}
	c.accum += dt.Seconds() * float64(c.rate)
	n := 0
	for c.accum >= 1.0 {
		c.accum -= 1.0
		c.Advance()
		n++
	}
	return n
}

// Total returns how long one full loop takes at the current rate and step.
func (c *Controller) Total() time.Duration {
	ticks := (c.frameCount + c.stepSize - 1) / c.stepSize
	return time.Duration(ticks) * time.Second / time.Duration(c.rate)
}

// Elapsed returns the playback time up to the current frame.
func (c *Controller) Elapsed() time.Duration {
	ticks := c.index / c.stepSize
	return time.Duration(ticks) * time.Second / time.Duration(c.rate)
}

var shortUnits, _ = durafmt.DefaultUnitsCoder.Decode("y:yrs,wk:wks,d:d,h:h,m:m,s:s,ms:ms,us:us")

// FormatDuration renders d with its two largest units in short form.
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return "0s"
	}
	return durafmt.Parse(d.Round(time.Second)).LimitFirstN(2).Format(shortUnits)
}
