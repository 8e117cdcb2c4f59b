// Package swipe implements the swipe-to-act interaction engine used by the
// project list: a gesture tracker, a commit policy, a per-row controller
// and a coordinator that keys controllers by item id.
//
// Everything in this package runs on the host's UI goroutine. Nothing here
// blocks and nothing here mutates the item list; committed gestures are
// reported through callbacks and the row always settles back to Idle.
package swipe

import "fmt"

// Direction is the horizontal direction of a swipe.
type Direction int

const (
	// None means no displacement yet, or displacement too small to matter.
	None Direction = iota
	// LeftToRight is a swipe towards the right edge (dx > 0).
	LeftToRight
	// RightToLeft is a swipe towards the left edge (dx < 0).
	RightToLeft
)

func (d Direction) String() string {
	switch d {
	case None:
		return "none"
	case LeftToRight:
		return "left-to-right"
	case RightToLeft:
		return "right-to-left"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// Phase is the lifecycle phase of a row's gesture.
type Phase int

const (
	Idle Phase = iota
	Dragging
	Resolving
	// Settling is entered right before a row is forced back to Idle.
	Settling
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	case Resolving:
		return "resolving"
	case Settling:
		return "settling"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// State is what the engine exposes for rendering one row.
type State struct {
	Phase     Phase
	Direction Direction
	Progress  float64
}

// Settled reports whether the row is at rest.
func (s State) Settled() bool {
	return s.Phase == Idle && s.Progress == 0
}

// Decision is the outcome of a released gesture. The zero value is a cancel.
type Decision struct {
	Commit    bool
	Direction Direction
}

// Cancel is the decision that fires no action.
var Cancel = Decision{}

// CommitTo returns a commit decision for d.
func CommitTo(d Direction) Decision {
	return Decision{Commit: true, Direction: d}
}

func (d Decision) String() string {
	if !d.Commit {
		return "cancel"
	}
	return "commit(" + d.Direction.String() + ")"
}

// Action is what a committed direction is bound to.
type Action int

const (
	ActionNone Action = iota
	ActionDelete
	ActionEdit
)

func (a Action) String() string {
	switch a {
	case ActionDelete:
		return "Delete"
	case ActionEdit:
		return "Edit"
	default:
		return ""
	}
}

// Bindings maps each committed direction to an action.
type Bindings struct {
	LeftToRight Action
	RightToLeft Action
}

// DefaultBindings deletes on a rightward swipe and edits on a leftward one.
func DefaultBindings() Bindings {
	return Bindings{LeftToRight: ActionDelete, RightToLeft: ActionEdit}
}

// Mirrored returns b with the two directions swapped.
func (b Bindings) Mirrored() Bindings {
	return Bindings{LeftToRight: b.RightToLeft, RightToLeft: b.LeftToRight}
}

// For returns the action bound to d.
func (b Bindings) For(d Direction) Action {
	switch d {
	case LeftToRight:
		return b.LeftToRight
	case RightToLeft:
		return b.RightToLeft
	default:
		return ActionNone
	}
}
