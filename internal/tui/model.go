package tui

import (
	"context"
	"fmt"
	"time"

	"aicoder/internal/config"
	"aicoder/internal/log"
	"aicoder/internal/store"
	"aicoder/internal/swipe"
	"aicoder/internal/tui/common"
	"aicoder/internal/tui/components"
	"aicoder/internal/tui/messages"
	"aicoder/internal/tui/styles"
	"aicoder/internal/tui/views"
	"aicoder/internal/watch"
	"aicoder/pkg/types"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Screen layout, in terminal cells.
const (
	listTop     = 2 // title line and a blank line
	footerLines = 3 // prompt, status and help
	padX        = 1 // horizontal padding of styles.App
)

const ioTimeout = 5 * time.Second

// fired is an action the swipe engine committed during the current update.
type fired struct {
	action swipe.Action
	item   types.ListItem
}

// gesture is the row drag in flight, from the mouse or the keyboard.
type gesture struct {
	id       string
	keyboard bool
	startX   int
	dx       float64
	start    time.Time
}

type Model struct {
	repo    store.Repository
	cfg     *config.Config
	watcher *watch.Watcher
	now     func() time.Time

	coord    *swipe.Coordinator
	projects []types.Project
	matcher  *store.Matcher

	// View state
	mode     common.Mode
	cursor   int
	offset   int
	width    int
	height   int
	drag     *gesture
	pending  types.ListItem
	prompt   *components.Prompt
	status   *components.StatusBar
	help     help.Model
	keys     KeyMap
	styles   styles.Styles
	showHelp bool
	notice   string

	fired []fired
}

// Option configures a Model.
type Option func(*Model)

// WithWatcher reloads the list whenever w reports a store change.
func WithWatcher(w *watch.Watcher) Option {
	return func(m *Model) { m.watcher = w }
}

// WithClock replaces time.Now for gesture timing.
func WithClock(now func() time.Time) Option {
	return func(m *Model) { m.now = now }
}

// New creates the project list model over repo.
func New(repo store.Repository, cfg *config.Config, opts ...Option) *Model {
	if cfg == nil {
		cfg = config.New()
	}
	st := styles.New(cfg.UI.Colors)
	m := &Model{
		repo:   repo,
		cfg:    cfg,
		now:    time.Now,
		mode:   common.Normal,
		status: components.NewStatusBar(st.Help, st.Error),
		help:   help.New(),
		keys:   DefaultKeyMap(),
		styles: st,
		width:  80,
		height: 24,
	}
	for _, opt := range opts {
		opt(m)
	}

	m.coord = swipe.NewCoordinator(cfg.Policy(true), cfg.Bindings(), swipe.Handlers{
		OnDelete: func(it types.ListItem) { m.fired = append(m.fired, fired{swipe.ActionDelete, it}) },
		OnEdit:   func(it types.ListItem) { m.fired = append(m.fired, fired{swipe.ActionEdit, it}) },
	})
	m.coord.SetRowWidth(float64(m.RowWidth()))
	return m
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.reload()}
	if m.watcher != nil {
		cmds = append(cmds, waitForChange(m.watcher))
	}
	return tea.Batch(cmds...)
}

// View implements tea.Model
func (m *Model) View() string {
	return views.RenderMainView(m, m.styles)
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.coord.SetRowWidth(float64(m.RowWidth()))
		if m.prompt != nil {
			m.prompt.SetWidth(m.RowWidth() - 12)
		}
		m.scrollToCursor()
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case tea.MouseMsg:
		return m, m.handleMouse(tea.MouseEvent(msg))

	case messages.ProjectsLoadedMsg:
		m.status.SetLoading(false)
		if msg.Err != nil {
			log.LogWithError(msg.Err).Error("Failed to load projects")
			m.status.SetError(msg.Err.Error())
			return m, nil
		}
		m.projects = msg.Projects
		m.applyFilter()
		return m, nil

	case messages.StoreChangedMsg:
		log.LogWithFields(log.F("file", msg.Change.Path), log.F("op", msg.Change.Op.String())).Debug("Store changed on disk")
		return m, tea.Batch(m.reload(), waitForChange(m.watcher))

	case messages.ProjectDeletedMsg:
		if msg.Err != nil {
			return m, m.fail("Delete failed", msg.Err)
		}
		m.notice = fmt.Sprintf("Deleted %q", msg.Project.Name)
		return m, m.reload()

	case messages.ProjectRenamedMsg:
		if msg.Err != nil {
			return m, m.fail("Rename failed", msg.Err)
		}
		m.notice = fmt.Sprintf("Renamed %q to %q", msg.Project.Name, msg.Title)
		return m, m.reload()

	case messages.ProjectAddedMsg:
		if msg.Err != nil {
			return m, m.fail("Add failed", msg.Err)
		}
		m.notice = fmt.Sprintf("Added %q", msg.Project.Title)
		return m, m.reload()

	case messages.ErrorMsg:
		return m, m.fail("Error", msg.Err)
	}

	if cmd := m.status.Update(msg); cmd != nil {
		return m, cmd
	}
	if m.prompt != nil {
		return m, m.prompt.Update(msg)
	}
	return m, nil
}

func (m *Model) fail(what string, err error) tea.Cmd {
	m.status.SetLoading(false)
	log.LogWithError(err).Error(what)
	m.status.SetError(fmt.Sprintf("%s: %v", what, err))
	return nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyCtrlC {
		return tea.Quit
	}
	switch m.mode {
	case common.Confirm:
		return m.handleConfirmKeys(msg)
	case common.Rename, common.Add, common.Filter:
		return m.handlePromptKeys(msg)
	default:
		return m.handleNormalKeys(msg)
	}
}

func (m *Model) handleNormalKeys(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.cancelGesture()
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.cancelGesture()
		m.moveCursor(1)
	case key.Matches(msg, m.keys.SwipeLeft):
		m.nudge(-1)
	case key.Matches(msg, m.keys.SwipeRight):
		m.nudge(1)
	case key.Matches(msg, m.keys.Release):
		return m.releaseKeyboard()
	case key.Matches(msg, m.keys.Cancel):
		m.cancelGesture()
	case key.Matches(msg, m.keys.Reload):
		return m.reload()
	case key.Matches(msg, m.keys.Add):
		m.cancelGesture()
		m.openPrompt(common.Add, "New project:", "", "title")
	case key.Matches(msg, m.keys.Filter):
		m.cancelGesture()
		pattern := ""
		if m.matcher != nil {
			pattern = m.matcher.Pattern()
		}
		m.openPrompt(common.Filter, "Filter:", pattern, "glob, e.g. *api*")
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
	}
	return nil
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Yes):
		item := m.pending
		m.closePrompt()
		return m.startIO(deleteProject(m.repo, item), "Deleting")
	case key.Matches(msg, m.keys.No):
		m.status.SetText(fmt.Sprintf("Kept %q", m.pending.Name))
		m.closePrompt()
	}
	return nil
}

func (m *Model) handlePromptKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.closePrompt()
		return nil
	case tea.KeyEnter:
		return m.submitPrompt()
	}
	return m.prompt.Update(msg)
}

func (m *Model) submitPrompt() tea.Cmd {
	value := m.prompt.Value()
	mode, item := m.mode, m.pending
	m.closePrompt()

	switch mode {
	case common.Rename:
		return m.startIO(renameProject(m.repo, item, value), "Renaming")
	case common.Add:
		return m.startIO(addProject(m.repo, value), "Adding")
	case common.Filter:
		matcher, err := store.NewMatcher(value)
		if err != nil {
			m.status.SetError(err.Error())
			return nil
		}
		m.matcher = matcher
		if value == "" {
			m.matcher = nil
		}
		m.cursor, m.offset = 0, 0
		m.applyFilter()
	}
	return nil
}

func (m *Model) openPrompt(mode common.Mode, label, value, placeholder string) {
	m.mode = mode
	m.prompt = components.NewPrompt(label, value, placeholder, m.styles.Prompt)
	m.prompt.SetWidth(m.RowWidth() - 12)
}

func (m *Model) closePrompt() {
	m.mode = common.Normal
	m.prompt = nil
	m.pending = types.ListItem{}
}

func (m *Model) handleMouse(ev tea.MouseEvent) tea.Cmd {
	if m.mode != common.Normal {
		return nil
	}
	if ev.IsWheel() {
		m.cancelGesture()
		switch ev.Button {
		case tea.MouseButtonWheelUp:
			m.scroll(-1)
		case tea.MouseButtonWheelDown:
			m.scroll(1)
		}
		return nil
	}

	switch ev.Action {
	case tea.MouseActionPress:
		// a press while dragging means the release was lost
		m.cancelGesture()
		if ev.Button != tea.MouseButtonLeft {
			return nil
		}
		idx, ok := m.rowAt(ev.Y)
		if !ok {
			return nil
		}
		m.cursor = idx
		id := m.coord.Items()[idx].ID
		m.coord.Controller(id).Begin()
		m.drag = &gesture{id: id, startX: ev.X, start: m.now()}

	case tea.MouseActionMotion:
		if ctrl := m.mouseController(); ctrl != nil {
			m.drag.dx = float64(ev.X - m.drag.startX)
			ctrl.Update(m.drag.dx, m.now().Sub(m.drag.start))
		}

	case tea.MouseActionRelease:
		ctrl := m.mouseController()
		if ctrl == nil {
			return nil
		}
		elapsed := m.now().Sub(m.drag.start)
		ctrl.Update(float64(ev.X-m.drag.startX), elapsed)
		m.drag = nil
		decision := ctrl.ReleaseTracked(elapsed)
		log.LogWithFields(log.F("id", ctrl.Key()), log.F("decision", decision.String())).Debug("Mouse swipe released")
		return m.takeFired()
	}
	return nil
}

func (m *Model) mouseController() *swipe.Controller {
	if m.drag == nil || m.drag.keyboard {
		return nil
	}
	return m.coord.Controller(m.drag.id)
}

// nudge moves the selected row a quarter of its width, starting a keyboard
// gesture if none is in flight.
func (m *Model) nudge(sign float64) {
	items := m.coord.Items()
	if len(items) == 0 {
		return
	}
	id := items[m.cursor].ID
	ctrl := m.coord.Controller(id)
	if m.drag == nil || m.drag.id != id || !m.drag.keyboard {
		m.cancelGesture()
		ctrl.Begin()
		m.drag = &gesture{id: id, keyboard: true, start: m.now()}
	}

	width := float64(m.RowWidth())
	m.drag.dx += sign * width / 4
	if m.drag.dx > width {
		m.drag.dx = width
	} else if m.drag.dx < -width {
		m.drag.dx = -width
	}
	ctrl.Update(m.drag.dx, m.now().Sub(m.drag.start))
}

// releaseKeyboard ends a keyboard gesture. Key presses carry no fling, so
// only the distance decides.
func (m *Model) releaseKeyboard() tea.Cmd {
	if m.drag == nil || !m.drag.keyboard {
		return nil
	}
	ctrl := m.coord.Controller(m.drag.id)
	m.drag = nil
	if ctrl == nil {
		return nil
	}
	decision := ctrl.Release(0)
	log.LogWithFields(log.F("id", ctrl.Key()), log.F("decision", decision.String())).Debug("Keyboard swipe released")
	return m.takeFired()
}

func (m *Model) cancelGesture() {
	if m.drag == nil {
		return
	}
	if ctrl := m.coord.Controller(m.drag.id); ctrl != nil {
		ctrl.Cancel()
	}
	m.drag = nil
}

// takeFired turns the actions committed by the engine into prompts or
// store commands.
func (m *Model) takeFired() tea.Cmd {
	actions := m.fired
	m.fired = nil

	var cmds []tea.Cmd
	for _, f := range actions {
		switch f.action {
		case swipe.ActionDelete:
			if m.cfg.UI.ConfirmDelete {
				m.mode = common.Confirm
				m.pending = f.item
				continue
			}
			cmds = append(cmds, m.startIO(deleteProject(m.repo, f.item), "Deleting"))
		case swipe.ActionEdit:
			m.openPrompt(common.Rename, "Rename:", f.item.Name, "title")
			m.pending = f.item
		}
	}
	return tea.Batch(cmds...)
}

func (m *Model) startIO(cmd tea.Cmd, what string) tea.Cmd {
	m.status.SetText(what + "…")
	m.status.SetLoading(true)
	return tea.Batch(cmd, m.status.Tick())
}

func (m *Model) reload() tea.Cmd {
	return m.startIO(loadProjects(m.repo), "Loading")
}

// applyFilter pushes the filtered projects into the coordinator. Rows that
// disappear take their in-flight gesture with them.
func (m *Model) applyFilter() {
	projects := m.projects
	if m.matcher != nil {
		projects = m.matcher.Filter(projects)
	}
	m.coord.SetItems(types.ListItems(projects))
	text := fmt.Sprintf("%d of %d projects", m.coord.Len(), len(m.projects))
	if m.notice != "" {
		text, m.notice = m.notice, ""
	}
	m.status.SetText(text)

	if m.drag != nil && m.coord.Controller(m.drag.id) == nil {
		m.drag = nil
	}
	if (m.mode == common.Confirm || m.mode == common.Rename) && m.coord.Controller(m.pending.ID) == nil {
		m.status.SetText(fmt.Sprintf("%q was removed", m.pending.Name))
		m.closePrompt()
	}
	m.moveCursor(0)
}

func (m *Model) moveCursor(delta int) {
	n := m.coord.Len()
	m.cursor += delta
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.scrollToCursor()
}

func (m *Model) scroll(delta int) {
	maxOffset := m.coord.Len() - m.VisibleRows()
	m.offset += delta
	if m.offset > maxOffset {
		m.offset = maxOffset
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func (m *Model) scrollToCursor() {
	visible := m.VisibleRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+visible {
		m.offset = m.cursor - visible + 1
	}
	m.scroll(0)
}

func (m *Model) rowAt(y int) (int, bool) {
	line := y - listTop
	if line < 0 || line >= m.VisibleRows() {
		return 0, false
	}
	idx := m.offset + line
	if idx >= m.coord.Len() {
		return 0, false
	}
	return idx, true
}

// Commands

func loadProjects(repo store.Repository) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), ioTimeout)
		defer cancel()
		projects, err := repo.List(ctx)
		return messages.ProjectsLoadedMsg{Projects: projects, Err: err}
	}
}

func deleteProject(repo store.Repository, item types.ListItem) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), ioTimeout)
		defer cancel()
		err := repo.Delete(ctx, item.ID)
		return messages.ProjectDeletedMsg{Project: item, Err: err}
	}
}

func renameProject(repo store.Repository, item types.ListItem, title string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), ioTimeout)
		defer cancel()
		err := repo.Rename(ctx, item.ID, title)
		return messages.ProjectRenamedMsg{Project: item, Title: title, Err: err}
	}
}

func addProject(repo store.Repository, title string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), ioTimeout)
		defer cancel()
		p, err := repo.Add(ctx, title, nil)
		return messages.ProjectAddedMsg{Project: p, Err: err}
	}
}

func waitForChange(w *watch.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		change, ok := <-w.Changes()
		if !ok {
			return nil
		}
		return messages.StoreChangedMsg{Change: change}
	}
}

// Getters

func (m *Model) Rows() []swipe.Row {
	return m.coord.Rows()
}

func (m *Model) Cursor() int {
	return m.cursor
}

func (m *Model) Offset() int {
	return m.offset
}

func (m *Model) Mode() common.Mode {
	return m.mode
}

func (m *Model) Total() int {
	return len(m.projects)
}

func (m *Model) Filter() string {
	if m.matcher == nil {
		return ""
	}
	return m.matcher.Pattern()
}

// RowWidth is the width of a list row in cells.
func (m *Model) RowWidth() int {
	if w := m.width - 2*padX; w > 0 {
		return w
	}
	return 1
}

// VisibleRows is how many rows fit between the header and the footer.
func (m *Model) VisibleRows() int {
	if n := m.height - listTop - footerLines; n > 0 {
		return n
	}
	return 1
}

func (m *Model) HelpView() string {
	return m.help.View(m.keys)
}

func (m *Model) Prompt() string {
	switch {
	case m.mode == common.Confirm:
		return m.styles.Error.Render(fmt.Sprintf("Delete %q? (y/n)", m.pending.Name))
	case m.prompt != nil:
		return m.prompt.View()
	}
	return ""
}

func (m *Model) Status() string {
	return m.status.View()
}

// StatusText is the raw status line, without styling.
func (m *Model) StatusText() string {
	return m.status.Text()
}

// Coordinator exposes the swipe engine driving the rows.
func (m *Model) Coordinator() *swipe.Coordinator {
	return m.coord
}
