package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/lanes/internal/models"
	"github.com/desertthunder/lanes/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	BoardView ViewState = iota
	FormView
	ConfirmView
)

// Model represents the TUI application state.
type Model struct {
	ctx     context.Context
	view    ViewState
	board   tasks.Board
	updates <-chan tasks.State
	state   tasks.State
	lanes   []list.Model
	focus   int
	follow  int // ID of a task being moved; the cursor lands on it
	form    taskForm
	confirm *models.Task
	status  string
	err     error
	width   int
	height  int
	help    help.Model
	keys    keyMap
}

// NewModel creates a new TUI model over board.
//
// updates should be the channel passed as [tasks.Options.Updates]; it may be nil.
func NewModel(ctx context.Context, board tasks.Board, updates <-chan tasks.State) *Model {
	lanes := make([]list.Model, len(models.Statuses))
	for i, status := range models.Statuses {
		lanes[i] = newLane(status)
	}

	return &Model{
		ctx:     ctx,
		view:    BoardView,
		board:   board,
		updates: updates,
		lanes:   lanes,
		help:    help.New(),
		keys:    newKeyMap(),
	}
}

// Init initializes the TUI by fetching the board.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.fetchAll(), m.waitForUpdate())
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case BoardView:
			return m.handleBoardKeys(msg)
		case FormView:
			return m.handleFormKeys(msg)
		case ConfirmView:
			return m.handleConfirmKeys(msg)
		}

	case Msg:
		switch msg.kind {
		case MsgStateUpdated:
			m.applyState(msg.data.(tasks.State))
			return m, m.waitForUpdate()
		case MsgOpFinished:
			res := msg.data.(opResult)
			m.err = res.err
			m.status = ""
			if res.err == nil {
				m.status = res.summary
			}
			m.applyState(m.board.State())
			m.follow = 0
			return m, nil
		}
	}

	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case FormView:
		return m.renderForm()
	case ConfirmView:
		return m.renderConfirm()
	default:
		return m.renderBoard()
	}
}

// Focused returns the status of the focused lane.
func (m *Model) Focused() models.Status {
	return models.Statuses[m.focus]
}

// Selected returns the task under the cursor in the focused lane.
func (m *Model) Selected() (models.Task, bool) {
	item, ok := m.lanes[m.focus].SelectedItem().(taskItem)
	if !ok {
		return models.Task{}, false
	}
	return item.task, true
}

func (m *Model) resize() {
	laneWidth := max((m.width-2*len(m.lanes))/len(m.lanes)-2, 10)
	laneHeight := max(m.height-8, 5)
	for i := range m.lanes {
		m.lanes[i].SetSize(laneWidth, laneHeight)
	}
}

// applyState rebuilds every lane from state, keeping each cursor in range.
// A task being moved keeps the cursor and focus, including after a rollback.
func (m *Model) applyState(state tasks.State) {
	m.state = state
	lanes := state.Lanes()
	for i, status := range models.Statuses {
		items := taskItems(lanes[status])
		m.lanes[i].SetItems(items)
		m.lanes[i].Title = fmt.Sprintf("%s (%d)", status.Label(), len(items))
		if idx := m.lanes[i].Index(); idx >= len(items) && len(items) > 0 {
			m.lanes[i].Select(len(items) - 1)
		}
		if m.follow == 0 {
			continue
		}
		for j, item := range items {
			if item.(taskItem).task.ID == m.follow {
				m.focus = i
				m.lanes[i].Select(j)
			}
		}
	}
}

func (m *Model) handleBoardKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.moveLeft):
		return m, m.shift(-1)
	case key.Matches(msg, m.keys.moveRight):
		return m, m.shift(1)
	case key.Matches(msg, m.keys.left):
		m.focus = max(m.focus-1, 0)
		return m, nil
	case key.Matches(msg, m.keys.right):
		m.focus = min(m.focus+1, len(m.lanes)-1)
		return m, nil
	case key.Matches(msg, m.keys.pending):
		return m, m.moveTo(models.Pending)
	case key.Matches(msg, m.keys.inProgress):
		return m, m.moveTo(models.InProgress)
	case key.Matches(msg, m.keys.completed):
		return m, m.moveTo(models.Completed)
	case key.Matches(msg, m.keys.retry):
		return m, m.fetchAll()
	case key.Matches(msg, m.keys.create):
		m.board.SetEditingTask(nil)
		m.form = newTaskForm(nil)
		m.view = FormView
		return m, nil
	case key.Matches(msg, m.keys.edit):
		task, ok := m.Selected()
		if !ok {
			return m, nil
		}
		m.board.SetEditingTask(&task)
		m.form = newTaskForm(&task)
		m.view = FormView
		return m, nil
	case key.Matches(msg, m.keys.remove):
		task, ok := m.Selected()
		if !ok {
			return m, nil
		}
		m.confirm = &task
		m.view = ConfirmView
		return m, nil
	case key.Matches(msg, m.keys.up), key.Matches(msg, m.keys.down):
		var cmd tea.Cmd
		m.lanes[m.focus], cmd = m.lanes[m.focus].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c":
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.closeForm()
		return m, nil
	case key.Matches(msg, m.keys.nextField):
		m.form.toggleFocus()
		return m, nil
	case key.Matches(msg, m.keys.submit):
		if !m.form.validate() {
			return m, nil
		}
		form := m.form
		m.closeForm()
		if form.editing == nil {
			return m, m.create(form.draft())
		}
		patch := form.patch()
		if patch.Empty() {
			return m, nil
		}
		return m, m.update(form.editing.ID, patch)
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.update(msg)
	return m, cmd
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c":
		return m, tea.Quit
	case key.Matches(msg, m.keys.yes):
		task := m.confirm
		m.confirm = nil
		m.view = BoardView
		if task == nil {
			return m, nil
		}
		return m, m.remove(task.ID)
	case key.Matches(msg, m.keys.no):
		m.confirm = nil
		m.view = BoardView
	}
	return m, nil
}

func (m *Model) closeForm() {
	m.board.SetEditingTask(nil)
	m.view = BoardView
}

// shift moves the selected task one lane left or right and keeps focus on it.
func (m *Model) shift(by int) tea.Cmd {
	task, ok := m.Selected()
	if !ok {
		return nil
	}
	target := task.Status.Next()
	if by < 0 {
		target = task.Status.Prev()
	}
	if target == task.Status {
		return nil
	}
	m.focus = min(max(m.focus+by, 0), len(m.lanes)-1)
	m.follow = task.ID
	return m.update(task.ID, models.StatusPatch(target))
}

func (m *Model) moveTo(status models.Status) tea.Cmd {
	task, ok := m.Selected()
	if !ok || task.Status == status {
		return nil
	}
	return m.update(task.ID, models.StatusPatch(status))
}

func (m *Model) fetchAll() tea.Cmd {
	return func() tea.Msg {
		err := m.board.FetchAll(m.ctx)
		return opFinishedMsg(tasks.OpFetch, "Board refreshed", err)
	}
}

func (m *Model) create(draft models.Draft) tea.Cmd {
	return func() tea.Msg {
		task, err := m.board.Create(m.ctx, draft)
		return opFinishedMsg(tasks.OpCreate, fmt.Sprintf("Created #%d", task.ID), err)
	}
}

func (m *Model) update(id int, patch models.Patch) tea.Cmd {
	return func() tea.Msg {
		task, err := m.board.Update(m.ctx, id, patch)
		return opFinishedMsg(tasks.OpUpdate, fmt.Sprintf("Saved #%d (%s)", id, task.Status.Label()), err)
	}
}

func (m *Model) remove(id int) tea.Cmd {
	return func() tea.Msg {
		err := m.board.Remove(m.ctx, id)
		return opFinishedMsg(tasks.OpRemove, fmt.Sprintf("Deleted #%d", id), err)
	}
}

// waitForUpdate blocks on the next published state.
func (m *Model) waitForUpdate() tea.Cmd {
	if m.updates == nil {
		return nil
	}
	return func() tea.Msg {
		state, ok := <-m.updates
		if !ok {
			return nil
		}
		return stateUpdatedMsg(state)
	}
}

func (m *Model) renderBoard() string {
	columns := make([]string, len(m.lanes))
	for i := range m.lanes {
		columns[i] = styles.laneStyle(i == m.focus).Render(m.lanes[i].View())
	}

	var b strings.Builder
	b.WriteString(styles.title.Render("Lanes"))
	if m.state.Loading {
		b.WriteString(styles.warn.Render("  loading..."))
	}
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, columns...))
	b.WriteString("\n")

	switch {
	case m.err != nil:
		b.WriteString(styles.err.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString(styles.help.Render("  (r to retry)"))
	case m.status != "":
		b.WriteString(styles.ok.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(m.help.ShortHelpView(m.keys.ShortHelp()))
	return b.String()
}

func (m *Model) renderForm() string {
	helpKeys := []key.Binding{m.keys.submit, m.keys.nextField, m.keys.back}
	return fmt.Sprintf("%s\n%s", m.form.view(), m.help.ShortHelpView(helpKeys))
}

func (m *Model) renderConfirm() string {
	if m.confirm == nil {
		return ""
	}
	title := styles.title.Render(fmt.Sprintf("Delete #%d '%s'?", m.confirm.ID, m.confirm.Title))
	helpKeys := []key.Binding{m.keys.yes, m.keys.no}
	return fmt.Sprintf("%s\n%s", title, m.help.ShortHelpView(helpKeys))
}
