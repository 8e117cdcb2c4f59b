package swipe

import "time"

// Controller is the state machine of one row:
//
//	Idle -> Dragging -> Resolving -> Settling -> Idle
//
// A controller fires at most one action per gesture and always ends the
// gesture at Idle with zero progress; removing the item is left to whoever
// handles the action.
type Controller struct {
	key      string
	tracker  *Tracker
	policy   Policy
	bindings Bindings
	fire     func(Action)
	observer func(State)
	detached bool
}

// NewController creates an idle controller. fire is called with the bound
// action when a gesture commits; it may be nil.
func NewController(key string, policy Policy, bindings Bindings, fire func(Action)) *Controller {
	return &Controller{
		key:      key,
		tracker:  NewTracker(0),
		policy:   policy,
		bindings: bindings,
		fire:     fire,
	}
}

// Key returns the item key the controller was created for.
func (c *Controller) Key() string {
	return c.key
}

// State returns the row's current rendering state.
func (c *Controller) State() State {
	return c.tracker.State()
}

// SetWidth updates the row width once the host has laid the row out.
func (c *Controller) SetWidth(width float64) {
	c.tracker.SetWidth(width)
}

// Observe registers fn to be called after every state change.
func (c *Controller) Observe(fn func(State)) {
	c.observer = fn
}

// Detached reports whether the controller was discarded.
func (c *Controller) Detached() bool {
	return c.detached
}

// Begin starts a gesture. It is a no-op unless the row is Idle, so a second
// start while dragging keeps the first gesture intact.
func (c *Controller) Begin() {
	if c.detached || c.tracker.State().Phase != Idle {
		return
	}
	c.tracker.Start()
	c.notify()
}

// Update feeds the cumulative displacement of the current gesture. It is
// ignored outside Dragging.
func (c *Controller) Update(dx float64, elapsed time.Duration) {
	if c.detached || c.tracker.State().Phase != Dragging {
		return
	}
	c.tracker.Move(dx, elapsed)
	c.notify()
}

// Release ends the gesture with the given x velocity. On commit the action
// bound to the direction is fired synchronously, exactly once. The row
// settles to Idle afterwards even if the action panics.
func (c *Controller) Release(velocity float64) Decision {
	if c.detached || c.tracker.State().Phase != Dragging {
		return Cancel
	}
	direction, progress := c.tracker.End()
	c.notify()
	defer c.settle()

	decision := c.policy.Decide(direction, progress, velocity)
	if decision.Commit {
		if action := c.bindings.For(decision.Direction); action != ActionNone && c.fire != nil {
			c.fire(action)
		}
	}
	return decision
}

// ReleaseTracked ends the gesture at elapsed using the tracker's own
// velocity estimate, for hosts that cannot report one.
func (c *Controller) ReleaseTracked(elapsed time.Duration) Decision {
	return c.Release(c.tracker.VelocityAt(elapsed))
}

// Cancel drops the gesture from any phase without firing an action.
func (c *Controller) Cancel() {
	if c.tracker.State() == (State{}) {
		return
	}
	c.tracker.Reset()
	c.notify()
}

// Detach discards the controller: state is reset and every later event is
// ignored, so no callback can fire for an item that left the list.
func (c *Controller) Detach() {
	c.detached = true
	c.tracker.Reset()
	c.fire = nil
	c.observer = nil
}

func (c *Controller) settle() {
	if c.tracker.State().Phase == Idle {
		// cancelled from inside the action
		return
	}
	c.tracker.setPhase(Settling)
	c.notify()
	c.tracker.Reset()
	c.notify()
}

func (c *Controller) notify() {
	if c.observer != nil {
		c.observer(c.tracker.State())
	}
}
