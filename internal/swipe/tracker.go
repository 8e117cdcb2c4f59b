package swipe

import (
	"math"
	"time"
)

const (
	// velocityWindow bounds how far back move samples count towards the
	// velocity estimate.
	velocityWindow = 100 * time.Millisecond
	maxSamples     = 8
)

type sample struct {
	dx float64
	at time.Duration
}

// Tracker turns the raw drag of a single row into a normalized progress
// value and a provisional direction.
type Tracker struct {
	width float64
	state State

	samples [maxSamples]sample
	head    int
	count   int
}

// NewTracker creates a tracker for a row of the given width. A width of
// zero means the row has not been laid out yet; progress stays 0 until
// SetWidth is called with a positive value.
func NewTracker(width float64) *Tracker {
	return &Tracker{width: width}
}

// SetWidth updates the row width used to normalize displacement.
func (t *Tracker) SetWidth(width float64) {
	t.width = width
}

// Width returns the current row width.
func (t *Tracker) Width() float64 {
	return t.width
}

// State returns the current rendering state.
func (t *Tracker) State() State {
	return t.state
}

// Start begins a drag: the phase becomes Dragging and progress is reset.
func (t *Tracker) Start() {
	t.state = State{Phase: Dragging}
	t.head, t.count = 0, 0
}

// Move records the cumulative horizontal displacement dx at elapsed time
// since Start. Moves outside Dragging are ignored.
func (t *Tracker) Move(dx float64, elapsed time.Duration) State {
	if t.state.Phase != Dragging {
		return t.state
	}
	if math.IsNaN(dx) || math.IsInf(dx, 0) {
		dx = 0
	}

	t.state.Progress = Progress(dx, t.width)
	t.state.Direction = None
	if t.state.Progress > 0 {
		if dx > 0 {
			t.state.Direction = LeftToRight
		} else {
			t.state.Direction = RightToLeft
		}
	}

	t.samples[t.head] = sample{dx: dx, at: elapsed}
	t.head = (t.head + 1) % maxSamples
	if t.count < maxSamples {
		t.count++
	}
	return t.state
}

// End moves the tracker to Resolving and returns what the commit policy
// needs to decide.
func (t *Tracker) End() (Direction, float64) {
	t.state.Phase = Resolving
	return t.state.Direction, t.state.Progress
}

// Reset returns the tracker to Idle with no progress.
func (t *Tracker) Reset() {
	t.state = State{Phase: Idle}
	t.head, t.count = 0, 0
}

func (t *Tracker) setPhase(p Phase) {
	t.state.Phase = p
}

// Velocity estimates the signed horizontal velocity, in displacement units
// per second, from the move samples of the last 100ms ending at the newest
// sample.
func (t *Tracker) Velocity() float64 {
	if t.count < 2 {
		return 0
	}
	newest := t.sampleAt(0)
	oldest := newest
	for i := 1; i < t.count; i++ {
		s := t.sampleAt(i)
		if newest.at-s.at > velocityWindow {
			break
		}
		oldest = s
	}
	dt := (newest.at - oldest.at).Seconds()
	if dt <= 0 {
		return 0
	}
	return (newest.dx - oldest.dx) / dt
}

// VelocityAt is Velocity for a release at elapsed. A pointer that rested
// longer than the sampling window before release has no velocity.
func (t *Tracker) VelocityAt(elapsed time.Duration) float64 {
	if t.count == 0 {
		return 0
	}
	if elapsed-t.sampleAt(0).at > velocityWindow {
		return 0
	}
	return t.Velocity()
}

// sampleAt returns the i-th most recent sample.
func (t *Tracker) sampleAt(i int) sample {
	idx := (t.head - 1 - i + 2*maxSamples) % maxSamples
	return t.samples[idx]
}

// Progress normalizes a displacement against a row width into [0, 1].
// Unknown (zero, negative or non-finite) widths yield 0.
func Progress(dx, width float64) float64 {
	if width <= 0 || math.IsNaN(width) || math.IsInf(width, 0) {
		return 0
	}
	if math.IsNaN(dx) || math.IsInf(dx, 0) {
		return 0
	}
	p := math.Abs(dx) / width
	if p > 1 {
		return 1
	}
	return p
}
