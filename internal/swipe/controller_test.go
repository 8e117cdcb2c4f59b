package swipe

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type firedActions struct {
	actions []Action
}

func (f *firedActions) fire(a Action) {
	f.actions = append(f.actions, a)
}

func newTestController(width float64) (*Controller, *firedActions) {
	fired := &firedActions{}
	c := NewController("p1", DefaultPolicy(), DefaultBindings(), fired.fire)
	c.SetWidth(width)
	return c, fired
}

func TestControllerScenarios(t *testing.T) {
	t.Run("slow drag past threshold deletes", func(t *testing.T) {
		c, fired := newTestController(300)
		c.Begin()
		c.Update(100, 100*time.Millisecond)
		c.Update(200, 400*time.Millisecond)
		assert.InDelta(t, 0.667, c.State().Progress, 0.001)

		d := c.Release(50)
		assert.Equal(t, CommitTo(LeftToRight), d)
		assert.Equal(t, []Action{ActionDelete}, fired.actions)
		assert.Equal(t, State{Phase: Idle}, c.State())
	})

	t.Run("short slow drag cancels", func(t *testing.T) {
		c, fired := newTestController(300)
		c.Begin()
		c.Update(-90, 300*time.Millisecond)
		assert.InDelta(t, 0.3, c.State().Progress, 1e-9)

		d := c.Release(-100)
		assert.Equal(t, Cancel, d)
		assert.Empty(t, fired.actions)
		assert.True(t, c.State().Settled())
	})

	t.Run("fling commits despite low progress", func(t *testing.T) {
		c, fired := newTestController(300)
		c.Begin()
		c.Update(10, 5*time.Millisecond)

		d := c.Release(3000)
		assert.Equal(t, CommitTo(LeftToRight), d)
		assert.Equal(t, []Action{ActionDelete}, fired.actions)
		assert.True(t, c.State().Settled())
	})

	t.Run("second begin is a no-op", func(t *testing.T) {
		c, _ := newTestController(300)
		c.Begin()
		c.Update(120, 50*time.Millisecond)
		before := c.State()

		c.Begin()
		assert.Equal(t, before, c.State())
		assert.Equal(t, Dragging, c.State().Phase)
	})

	t.Run("leftward commit edits", func(t *testing.T) {
		c, fired := newTestController(300)
		c.Begin()
		c.Update(-240, 200*time.Millisecond)
		assert.Equal(t, CommitTo(RightToLeft), c.Release(0))
		assert.Equal(t, []Action{ActionEdit}, fired.actions)
	})
}

func TestControllerMirroredBindings(t *testing.T) {
	fired := &firedActions{}
	c := NewController("p1", DefaultPolicy(), DefaultBindings().Mirrored(), fired.fire)
	c.SetWidth(100)
	c.Begin()
	c.Update(90, 10*time.Millisecond)
	c.Release(0)
	assert.Equal(t, []Action{ActionEdit}, fired.actions)
}

func TestControllerAlwaysSettles(t *testing.T) {
	widths := []float64{0, 50, 300}
	paths := [][]float64{
		{},
		{0},
		{10, 20, 30},
		{-10, -200, -400},
		{100, -100, 250},
		{1e9},
	}
	for _, width := range widths {
		for _, path := range paths {
			for _, release := range []bool{true, false} {
				c, fired := newTestController(width)
				c.Begin()
				for i, dx := range path {
					c.Update(dx, time.Duration(i+1)*time.Millisecond)
				}
				if release {
					c.Release(float64(len(path)) * 700)
				} else {
					c.Cancel()
					assert.Empty(t, fired.actions)
				}
				assert.Equal(t, State{Phase: Idle}, c.State(), "width=%v path=%v release=%v", width, path, release)
				assert.LessOrEqual(t, len(fired.actions), 1)
			}
		}
	}
}

func TestControllerIgnoresOutOfOrderEvents(t *testing.T) {
	c, fired := newTestController(300)

	c.Update(250, time.Millisecond)
	assert.Equal(t, State{}, c.State())
	assert.Equal(t, Cancel, c.Release(5000))
	assert.Empty(t, fired.actions)

	c.Begin()
	c.Update(250, time.Millisecond)
	c.Release(0)
	// duplicate terminal event
	c.Release(0)
	c.Update(250, 2*time.Millisecond)
	assert.Equal(t, []Action{ActionDelete}, fired.actions)
	assert.True(t, c.State().Settled())
}

func TestControllerCancelMidGesture(t *testing.T) {
	c, fired := newTestController(300)
	c.Begin()
	c.Update(280, 10*time.Millisecond)
	c.Cancel()

	assert.True(t, c.State().Settled())
	assert.Equal(t, Cancel, c.Release(0), "release after cancel is ignored")
	assert.Empty(t, fired.actions)

	// the row is usable again
	c.Begin()
	assert.Equal(t, Dragging, c.State().Phase)
}

func TestControllerSettlesWhenActionPanics(t *testing.T) {
	boom := errors.New("store unavailable")
	c := NewController("p1", DefaultPolicy(), DefaultBindings(), func(Action) {
		panic(boom)
	})
	c.SetWidth(300)
	c.Begin()
	c.Update(290, 10*time.Millisecond)

	assert.PanicsWithError(t, boom.Error(), func() { c.Release(0) })
	assert.Equal(t, State{Phase: Idle}, c.State())
}

func TestControllerReentrantAction(t *testing.T) {
	var c *Controller
	calls := 0
	c = NewController("p1", DefaultPolicy(), DefaultBindings(), func(Action) {
		calls++
		assert.Equal(t, Resolving, c.State().Phase)
		// a handler poking the row must not trigger a second action
		c.Begin()
		c.Update(300, time.Second)
		c.Release(0)
	})
	c.SetWidth(300)
	c.Begin()
	c.Update(300, 10*time.Millisecond)
	c.Release(0)

	assert.Equal(t, 1, calls)
	assert.True(t, c.State().Settled())
}

func TestControllerObserver(t *testing.T) {
	c, _ := newTestController(300)
	var phases []Phase
	var progress []float64
	c.Observe(func(s State) {
		phases = append(phases, s.Phase)
		progress = append(progress, s.Progress)
	})

	c.Begin()
	c.Update(60, 10*time.Millisecond)
	c.Update(180, 20*time.Millisecond)
	c.Release(0)

	assert.Equal(t, []Phase{Dragging, Dragging, Dragging, Resolving, Settling, Idle}, phases)
	require.Len(t, progress, 6)
	assert.InDelta(t, 0.2, progress[1], 1e-9)
	assert.InDelta(t, 0.6, progress[2], 1e-9)
	assert.Zero(t, progress[5])
}

func TestControllerReleaseTracked(t *testing.T) {
	c, fired := newTestController(80)
	c.Begin()
	c.Update(1, 0)
	c.Update(6, 20*time.Millisecond)

	// 250 cells/s but well under the threshold; nothing commits with the
	// default pixel fling velocity
	assert.Equal(t, Cancel, c.ReleaseTracked(25*time.Millisecond))
	assert.Empty(t, fired.actions)

	terminal := Policy{Threshold: 0.5, FlingVelocity: 80, MinProgress: 0.01}
	c = NewController("p1", terminal, DefaultBindings(), fired.fire)
	c.SetWidth(80)
	c.Begin()
	c.Update(1, 0)
	c.Update(6, 20*time.Millisecond)
	assert.Equal(t, CommitTo(LeftToRight), c.ReleaseTracked(25*time.Millisecond))
	assert.Equal(t, []Action{ActionDelete}, fired.actions)
}

func TestControllerDetach(t *testing.T) {
	c, fired := newTestController(300)
	observed := 0
	c.Observe(func(State) { observed++ })

	c.Begin()
	c.Update(280, 10*time.Millisecond)
	observed = 0
	c.Detach()

	assert.True(t, c.Detached())
	assert.True(t, c.State().Settled())
	assert.Equal(t, Cancel, c.Release(9000))
	c.Begin()
	c.Update(280, 20*time.Millisecond)
	assert.Equal(t, Cancel, c.Release(9000))

	assert.Empty(t, fired.actions)
	assert.Zero(t, observed)
	assert.Equal(t, State{}, c.State())
}
