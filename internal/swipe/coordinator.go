package swipe

import "aicoder/pkg/types"

// Handlers receive committed gestures. Both are fire-and-forget.
type Handlers struct {
	OnDelete func(types.ListItem)
	OnEdit   func(types.ListItem)
}

// Row is one rendered row: the item plus what the engine says about it.
type Row struct {
	Item    types.ListItem
	State   State
	Overlay Overlay
}

// Coordinator owns the rows of a list and one controller per item id.
// Controllers for ids that leave the list are detached and dropped on the
// next SetItems.
type Coordinator struct {
	policy   Policy
	bindings Bindings
	handlers Handlers
	width    float64

	items       []types.ListItem
	byID        map[string]types.ListItem
	controllers map[string]*Controller
	observer    func(id string, s State)
}

// NewCoordinator creates an empty coordinator.
func NewCoordinator(policy Policy, bindings Bindings, handlers Handlers) *Coordinator {
	return &Coordinator{
		policy:      policy,
		bindings:    bindings,
		handlers:    handlers,
		byID:        make(map[string]types.ListItem),
		controllers: make(map[string]*Controller),
	}
}

// Bindings returns the direction to action mapping in use.
func (c *Coordinator) Bindings() Bindings {
	return c.bindings
}

// Observe registers fn to be called whenever any row's state changes.
func (c *Coordinator) Observe(fn func(id string, s State)) {
	c.observer = fn
}

// SetItems replaces the source list. Order is kept as given; for repeated
// ids only the first occurrence is used.
func (c *Coordinator) SetItems(items []types.ListItem) {
	next := make([]types.ListItem, 0, len(items))
	byID := make(map[string]types.ListItem, len(items))
	for _, it := range items {
		if _, dup := byID[it.ID]; dup {
			continue
		}
		byID[it.ID] = it
		next = append(next, it)
	}

	for id, ctrl := range c.controllers {
		if _, ok := byID[id]; !ok {
			ctrl.Detach()
			delete(c.controllers, id)
		}
	}
	for _, it := range next {
		if _, ok := c.controllers[it.ID]; !ok {
			c.controllers[it.ID] = c.newController(it.ID)
		}
	}

	c.items = next
	c.byID = byID
}

// Items returns the current rows' items in order.
func (c *Coordinator) Items() []types.ListItem {
	out := make([]types.ListItem, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of rows.
func (c *Coordinator) Len() int {
	return len(c.items)
}

// SetRowWidth sets the laid-out width of every row.
func (c *Coordinator) SetRowWidth(width float64) {
	c.width = width
	for _, ctrl := range c.controllers {
		ctrl.SetWidth(width)
	}
}

// Controller returns the controller for id, or nil if id is not listed.
func (c *Coordinator) Controller(id string) *Controller {
	return c.controllers[id]
}

// Rows returns the render model of every row in list order.
func (c *Coordinator) Rows() []Row {
	rows := make([]Row, 0, len(c.items))
	for _, it := range c.items {
		st := c.controllers[it.ID].State()
		rows = append(rows, Row{
			Item:    it,
			State:   st,
			Overlay: OverlayFor(st, c.bindings),
		})
	}
	return rows
}

// CancelAll cancels every in-flight gesture, e.g. when the list scrolls.
func (c *Coordinator) CancelAll() {
	for _, ctrl := range c.controllers {
		ctrl.Cancel()
	}
}

func (c *Coordinator) newController(id string) *Controller {
	ctrl := NewController(id, c.policy, c.bindings, func(a Action) {
		c.dispatch(id, a)
	})
	ctrl.SetWidth(c.width)
	ctrl.Observe(func(s State) {
		if c.observer != nil {
			c.observer(id, s)
		}
	})
	return ctrl
}

func (c *Coordinator) dispatch(id string, a Action) {
	item, ok := c.byID[id]
	if !ok {
		return
	}
	switch a {
	case ActionDelete:
		if c.handlers.OnDelete != nil {
			c.handlers.OnDelete(item)
		}
	case ActionEdit:
		if c.handlers.OnEdit != nil {
			c.handlers.OnEdit(item)
		}
	}
}
