//go:build !nogui

package gui

import (
	"context"
	"fmt"
	"sync"
	"time"

	"aicoder/internal/config"
	"aicoder/internal/log"
	"aicoder/internal/store"
	"aicoder/internal/swipe"
	"aicoder/internal/watch"
	"aicoder/pkg/types"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

const ioTimeout = 5 * time.Second

// App is the GUI application
type App struct {
	fyneApp    fyne.App
	mainWindow fyne.Window
	cfg        *config.Config
	repo       store.Repository
	watcher    *watch.Watcher
	now        func() time.Time
	colors     palette

	// mu guards everything below; store reloads arrive from the watcher
	// goroutine.
	mu       sync.Mutex
	coord    *swipe.Coordinator
	projects []types.Project
	matcher  *store.Matcher
	rows     map[string]*SwipeRow

	list   *fyne.Container
	scroll *container.Scroll
	status *widget.Label
	filter *widget.Entry
}

// NewApp creates a new GUI application
func NewApp(cfg *config.Config, repo store.Repository, watcher *watch.Watcher) *App {
	return newApp(app.NewWithID("io.github.aicoder"), cfg, repo, watcher)
}

func newApp(fyneApp fyne.App, cfg *config.Config, repo store.Repository, watcher *watch.Watcher) *App {
	a := &App{
		fyneApp: fyneApp,
		cfg:     cfg,
		repo:    repo,
		watcher: watcher,
		now:     time.Now,
		colors:  newPalette(cfg.UI.Colors),
		rows:    make(map[string]*SwipeRow),
	}
	a.coord = swipe.NewCoordinator(cfg.Policy(false), cfg.Bindings(), swipe.Handlers{
		OnDelete: a.confirmDelete,
		OnEdit:   a.showRenameDialog,
	})
	a.coord.Observe(func(id string, st swipe.State) {
		if row := a.rows[id]; row != nil {
			row.setState(st)
		}
	})

	a.mainWindow = a.fyneApp.NewWindow("Projects")
	a.mainWindow.SetContent(a.buildUI())
	a.mainWindow.Resize(fyne.NewSize(420, 640))
	return a
}

// GetMainWindow returns the main window instance
func (a *App) GetMainWindow() fyne.Window {
	return a.mainWindow
}

// Run loads the projects and blocks until the window is closed.
func (a *App) Run() {
	a.Reload()
	if a.watcher != nil {
		go a.followStore()
	}
	a.mainWindow.ShowAndRun()
}

// ShowError shows an error dialog.
func (a *App) ShowError(title string, err error) {
	log.LogWithError(err).Error(title)
	dialog.ShowError(fmt.Errorf("%s: %w", title, err), a.mainWindow)
}

// ShowInfo shows an information dialog.
func (a *App) ShowInfo(message string) {
	dialog.ShowInformation("Projects", message, a.mainWindow)
}

func (a *App) buildUI() fyne.CanvasObject {
	a.status = widget.NewLabel("")
	a.filter = widget.NewEntry()
	a.filter.SetPlaceHolder("Filter, e.g. *api*")
	a.filter.OnChanged = a.setFilter

	add := widget.NewButtonWithIcon("", theme.ContentAddIcon(), a.showAddDialog)
	reload := widget.NewButtonWithIcon("", theme.ViewRefreshIcon(), a.Reload)
	header := container.NewBorder(nil, nil, nil, container.NewHBox(add, reload), a.filter)

	a.list = container.NewVBox()
	a.scroll = container.NewVScroll(a.list)
	a.scroll.OnScrolled = func(fyne.Position) {
		a.mu.Lock()
		defer a.mu.Unlock()
		a.coord.CancelAll()
	}

	return container.NewBorder(header, a.status, nil, nil, a.scroll)
}

// scrollBy scrolls the list for a vertical drag that started on a row. The
// rows are the innermost draggables, so the scroll container never sees
// touch drags on its own.
func (a *App) scrollBy(dy float32) {
	a.mu.Lock()
	a.coord.CancelAll()
	limit := a.list.MinSize().Height - a.scroll.Size().Height
	a.mu.Unlock()

	y := a.scroll.Offset.Y - dy
	if y > limit {
		y = limit
	}
	if y < 0 {
		y = 0
	}
	if y == a.scroll.Offset.Y {
		return
	}
	a.scroll.Offset.Y = y
	a.scroll.Refresh()
}

// Reload reads the store and refreshes the list.
func (a *App) Reload() {
	ctx, cancel := context.WithTimeout(context.Background(), ioTimeout)
	defer cancel()
	projects, err := a.repo.List(ctx)
	if err != nil {
		a.ShowError("Failed to load projects", err)
		return
	}

	a.mu.Lock()
	a.projects = projects
	a.applyFilterLocked()
	a.mu.Unlock()
}

func (a *App) followStore() {
	for change := range a.watcher.Changes() {
		log.LogWithFields(log.F("file", change.Path)).Debug("Store changed on disk")
		a.Reload()
	}
}

func (a *App) setFilter(pattern string) {
	matcher, err := store.NewMatcher(pattern)
	if err != nil {
		a.status.SetText(err.Error())
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.matcher = matcher
	a.applyFilterLocked()
}

// applyFilterLocked pushes the filtered projects into the coordinator and
// rebuilds the row widgets, reusing the widget of every surviving id.
func (a *App) applyFilterLocked() {
	projects := a.projects
	if a.matcher != nil {
		projects = a.matcher.Filter(projects)
	}
	items := types.ListItems(projects)
	a.coord.SetItems(items)

	rows := make(map[string]*SwipeRow, len(items))
	objects := make([]fyne.CanvasObject, 0, len(items))
	for _, it := range a.coord.Items() {
		row, ok := a.rows[it.ID]
		if ok {
			row.setItem(it)
		} else {
			row = newSwipeRow(it, a.coord.Controller(it.ID), a.coord.Bindings(), a.colors, a.now, &a.mu, a.scrollBy)
		}
		rows[it.ID] = row
		objects = append(objects, row)
	}
	a.rows = rows
	a.list.Objects = objects
	a.list.Refresh()
	a.status.SetText(fmt.Sprintf("%d of %d projects", len(items), len(a.projects)))
}

// Row returns the widget showing id, or nil.
func (a *App) Row(id string) *SwipeRow {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.rows[id]
}

// Rows returns the row widgets in list order.
func (a *App) Rows() []*SwipeRow {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]*SwipeRow, 0, len(a.list.Objects))
	for _, o := range a.list.Objects {
		out = append(out, o.(*SwipeRow))
	}
	return out
}

func (a *App) confirmDelete(item types.ListItem) {
	if !a.cfg.UI.ConfirmDelete {
		a.deleteProject(item)
		return
	}
	dialog.ShowConfirm("Delete project", fmt.Sprintf("Delete %q?", item.Name), func(ok bool) {
		if ok {
			a.deleteProject(item)
		}
	}, a.mainWindow)
}

func (a *App) showRenameDialog(item types.ListItem) {
	entry := widget.NewEntry()
	entry.SetText(item.Name)
	items := []*widget.FormItem{widget.NewFormItem("Title", entry)}
	dialog.ShowForm("Rename project", "Rename", "Cancel", items, func(ok bool) {
		if ok {
			a.renameProject(item, entry.Text)
		}
	}, a.mainWindow)
}

func (a *App) showAddDialog() {
	entry := widget.NewEntry()
	entry.SetPlaceHolder("Title")
	items := []*widget.FormItem{widget.NewFormItem("Title", entry)}
	dialog.ShowForm("New project", "Add", "Cancel", items, func(ok bool) {
		if ok {
			a.addProject(entry.Text)
		}
	}, a.mainWindow)
}

// Store calls run after the gesture has settled, on their own goroutine,
// so the handler never re-enters the coordinator.

func (a *App) deleteProject(item types.ListItem) {
	go a.storeCall("Delete failed", func(ctx context.Context) error {
		return a.repo.Delete(ctx, item.ID)
	})
}

func (a *App) renameProject(item types.ListItem, title string) {
	go a.storeCall("Rename failed", func(ctx context.Context) error {
		return a.repo.Rename(ctx, item.ID, title)
	})
}

func (a *App) addProject(title string) {
	go a.storeCall("Add failed", func(ctx context.Context) error {
		_, err := a.repo.Add(ctx, title, nil)
		return err
	})
}

func (a *App) storeCall(what string, fn func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), ioTimeout)
	defer cancel()
	if err := fn(ctx); err != nil {
		a.ShowError(what, err)
		return
	}
	a.Reload()
}
