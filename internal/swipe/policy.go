package swipe

import (
	"fmt"
	"math"
)

const (
	// DefaultCommitThreshold is the progress a slow release must exceed.
	DefaultCommitThreshold = 0.5
	// DefaultFlingVelocity is in displacement units per second. Pointer
	// hosts report pixels, so this is 1000px/s.
	DefaultFlingVelocity = 1000.0
	// DefaultMinProgress is the displacement below which a gesture has no
	// direction worth acting on, whatever its velocity.
	DefaultMinProgress = 0.01
)

// Policy decides whether a released gesture commits.
type Policy struct {
	Threshold     float64
	FlingVelocity float64
	MinProgress   float64
}

// DefaultPolicy returns the policy used when nothing is configured.
func DefaultPolicy() Policy {
	return Policy{
		Threshold:     DefaultCommitThreshold,
		FlingVelocity: DefaultFlingVelocity,
		MinProgress:   DefaultMinProgress,
	}
}

// Validate checks that the thresholds describe a usable policy.
func (p Policy) Validate() error {
	if !(p.Threshold > 0 && p.Threshold < 1) {
		return fmt.Errorf("commit threshold must be in (0, 1), got %v", p.Threshold)
	}
	if !(p.FlingVelocity > 0) || math.IsInf(p.FlingVelocity, 0) {
		return fmt.Errorf("fling velocity must be positive, got %v", p.FlingVelocity)
	}
	if p.MinProgress < 0 || p.MinProgress >= p.Threshold {
		return fmt.Errorf("min progress must be in [0, threshold), got %v", p.MinProgress)
	}
	return nil
}

// Decide returns Commit(direction) when progress exceeds the threshold or
// the velocity component along direction exceeds the fling velocity, and
// Cancel otherwise. Velocity is signed along the x axis, so a fast fling
// against the drag direction cancels instead of committing.
func (p Policy) Decide(direction Direction, progress, velocity float64) Decision {
	if direction != LeftToRight && direction != RightToLeft {
		return Cancel
	}
	if math.IsNaN(progress) || progress <= 0 || progress < p.MinProgress {
		return Cancel
	}
	if progress > p.Threshold {
		return CommitTo(direction)
	}
	if along(direction, velocity) > p.FlingVelocity {
		return CommitTo(direction)
	}
	return Cancel
}

// along projects an x velocity onto direction.
func along(direction Direction, velocity float64) float64 {
	if math.IsNaN(velocity) {
		return 0
	}
	if direction == RightToLeft {
		return -velocity
	}
	return velocity
}
