//go:build !nogui

package gui

import (
	"image/color"
	"sync"
	"time"

	"aicoder/internal/swipe"
	"aicoder/pkg/types"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// scrollSlop is how far, in pixels, a swipe may drift vertically before it
// is handed to the list as a scroll.
const scrollSlop = 8

type dragAxis int

const (
	axisNone dragAxis = iota
	axisSwipe
	axisScroll
)

// SwipeRow is one project row. Horizontal drags are fed to the row's swipe
// controller; mostly vertical drags scroll the list instead. The directional
// band and the sliding content are drawn from the last state the controller
// reported.
type SwipeRow struct {
	widget.BaseWidget

	ctrl     *swipe.Controller
	bindings swipe.Bindings
	colors   palette
	now      func() time.Time
	scrollBy func(dy float32)

	// lock is the app lock every controller call runs under.
	lock   sync.Locker
	axis   dragAxis
	dx, dy float32
	start  time.Time

	// propertyLock guards what the renderer reads.
	propertyLock sync.RWMutex
	item         types.ListItem
	state        swipe.State
}

var _ fyne.Draggable = (*SwipeRow)(nil)

func newSwipeRow(item types.ListItem, ctrl *swipe.Controller, bindings swipe.Bindings, colors palette, now func() time.Time, lock sync.Locker, scrollBy func(dy float32)) *SwipeRow {
	r := &SwipeRow{
		item:     item,
		ctrl:     ctrl,
		bindings: bindings,
		colors:   colors,
		now:      now,
		lock:     lock,
		scrollBy: scrollBy,
	}
	r.ExtendBaseWidget(r)
	return r
}

// Item returns the project shown by the row.
func (r *SwipeRow) Item() types.ListItem {
	r.propertyLock.RLock()
	defer r.propertyLock.RUnlock()
	return r.item
}

func (r *SwipeRow) setItem(item types.ListItem) {
	r.propertyLock.Lock()
	r.item = item
	r.propertyLock.Unlock()
	r.Refresh()
}

// setState records a state reported by the controller and redraws.
func (r *SwipeRow) setState(st swipe.State) {
	r.propertyLock.Lock()
	r.state = st
	r.propertyLock.Unlock()
	r.Refresh()
}

func (r *SwipeRow) snapshot() (types.ListItem, swipe.Overlay) {
	r.propertyLock.RLock()
	defer r.propertyLock.RUnlock()
	return r.item, swipe.OverlayFor(r.state, r.bindings)
}

// Dragged implements fyne.Draggable.
func (r *SwipeRow) Dragged(e *fyne.DragEvent) {
	if dy, scroll := r.track(e); scroll && r.scrollBy != nil {
		r.scrollBy(dy)
	}
}

// track feeds e to the controller. It returns the vertical distance to
// scroll by when the drag belongs to the list.
func (r *SwipeRow) track(e *fyne.DragEvent) (float32, bool) {
	r.lock.Lock()
	defer r.lock.Unlock()

	if r.axis == axisNone {
		r.dx, r.dy = 0, 0
		r.start = r.now()
	}
	r.dx += e.Dragged.DX
	r.dy += e.Dragged.DY

	switch r.axis {
	case axisNone:
		if abs32(r.dy) > abs32(r.dx) {
			r.axis = axisScroll
			return r.dy, true
		}
		r.axis = axisSwipe
		r.ctrl.Begin()
	case axisScroll:
		return e.Dragged.DY, true
	case axisSwipe:
		if abs32(r.dy) > abs32(r.dx) && abs32(r.dy) > scrollSlop {
			r.ctrl.Cancel()
			r.axis = axisScroll
			return r.dy, true
		}
	}
	r.ctrl.SetWidth(float64(r.Size().Width))
	r.ctrl.Update(float64(r.dx), r.now().Sub(r.start))
	return 0, false
}

// DragEnd implements fyne.Draggable.
func (r *SwipeRow) DragEnd() {
	r.lock.Lock()
	defer r.lock.Unlock()
	axis := r.axis
	r.axis = axisNone
	if axis != axisSwipe {
		return
	}
	r.ctrl.ReleaseTracked(r.now().Sub(r.start))
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func (r *SwipeRow) CreateRenderer() fyne.WidgetRenderer {
	item, _ := r.snapshot()
	bg := canvas.NewRectangle(r.colors.row)
	band := canvas.NewRectangle(color.Transparent)
	label := canvas.NewText("", color.White)
	label.TextStyle = fyne.TextStyle{Bold: true}
	name := canvas.NewText(item.Name, r.colors.text)
	date := canvas.NewText(item.Date, r.colors.muted)
	date.TextSize = theme.CaptionTextSize()

	rr := &swipeRowRenderer{row: r, bg: bg, band: band, label: label, name: name, date: date}
	rr.Refresh()
	return rr
}

// swipeRowRenderer may be laid out from the draw loop while a reload
// refreshes it from the store watcher, so mu serialises both.
type swipeRowRenderer struct {
	mu    sync.Mutex
	row   *SwipeRow
	ov    swipe.Overlay
	bg    *canvas.Rectangle
	band  *canvas.Rectangle
	label *canvas.Text
	name  *canvas.Text
	date  *canvas.Text
}

func (rr *swipeRowRenderer) Layout(size fyne.Size) {
	rr.mu.Lock()
	defer rr.mu.Unlock()
	rr.layout(size)
}

func (rr *swipeRowRenderer) layout(size fyne.Size) {
	rr.bg.Resize(size)
	rr.bg.Move(fyne.NewPos(0, 0))

	ov := rr.ov
	bandW := float32(0)
	if ov.Visible {
		bandW = float32(ov.Fraction) * size.Width
	}
	bandX := float32(0)
	shift := bandW
	if ov.Anchor == swipe.AnchorEnd {
		bandX = size.Width - bandW
		shift = -bandW
	}
	rr.band.Resize(fyne.NewSize(bandW, size.Height))
	rr.band.Move(fyne.NewPos(bandX, 0))

	pad := theme.Padding() * 2
	labelSize := rr.label.MinSize()
	rr.label.Move(fyne.NewPos(bandX+pad, (size.Height-labelSize.Height)/2))
	rr.label.Resize(labelSize)

	nameSize := rr.name.MinSize()
	rr.name.Move(fyne.NewPos(pad+shift, (size.Height-nameSize.Height)/2))
	rr.name.Resize(nameSize)
	dateSize := rr.date.MinSize()
	rr.date.Move(fyne.NewPos(size.Width-dateSize.Width-pad+shift, (size.Height-dateSize.Height)/2))
	rr.date.Resize(dateSize)
}

func (rr *swipeRowRenderer) MinSize() fyne.Size {
	rr.mu.Lock()
	defer rr.mu.Unlock()
	pad := theme.Padding() * 2
	name, date := rr.name.MinSize(), rr.date.MinSize()
	return fyne.NewSize(name.Width+date.Width+3*pad, name.Height+2*pad)
}

func (rr *swipeRowRenderer) Refresh() {
	r := rr.row
	item, ov := r.snapshot()

	rr.mu.Lock()
	rr.ov = ov
	rr.name.Text = item.Name
	rr.date.Text = item.Date
	rr.label.Text = ""
	rr.band.FillColor = color.Transparent
	if ov.Visible {
		c := r.colors.edit
		if ov.Action == swipe.ActionDelete {
			c = r.colors.delete
		}
		rr.band.FillColor = withAlpha(c, ov.Fraction)
		rr.label.Text = ov.Label
	}
	rr.layout(r.Size())
	rr.mu.Unlock()

	for _, o := range rr.Objects() {
		o.Refresh()
	}
}

func (rr *swipeRowRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{rr.bg, rr.band, rr.name, rr.date, rr.label}
}

func (rr *swipeRowRenderer) Destroy() {}

// withAlpha fades c in with the swipe progress.
func withAlpha(c color.Color, fraction float64) color.Color {
	r, g, b, _ := c.RGBA()
	a := 0.35 + 0.65*fraction
	if a > 1 {
		a = 1
	}
	return color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a * 255)}
}
