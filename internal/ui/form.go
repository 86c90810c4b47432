package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/lanes/internal/models"
)

// taskForm edits the title and description of a new or existing task.
type taskForm struct {
	editing *models.Task // nil when creating
	title   textinput.Model
	desc    textinput.Model
	focus   int
	err     string
}

func newTaskForm(editing *models.Task) taskForm {
	title := textinput.New()
	title.Placeholder = "What needs doing?"
	title.Prompt = "Title: "
	title.CharLimit = 200

	desc := textinput.New()
	desc.Placeholder = "Optional details"
	desc.Prompt = "Description: "
	desc.CharLimit = 500

	if editing != nil {
		title.SetValue(editing.Title)
		desc.SetValue(editing.Description)
	}
	title.Focus()

	return taskForm{editing: editing, title: title, desc: desc}
}

func (f *taskForm) toggleFocus() {
	f.focus = (f.focus + 1) % 2
	if f.focus == 0 {
		f.title.Focus()
		f.desc.Blur()
	} else {
		f.desc.Focus()
		f.title.Blur()
	}
}

// validate records an inline error and reports whether the form can be submitted.
func (f *taskForm) validate() bool {
	if strings.TrimSpace(f.title.Value()) == "" {
		f.err = "Title is required"
		return false
	}
	f.err = ""
	return true
}

func (f taskForm) draft() models.Draft {
	return models.Draft{
		Title:       strings.TrimSpace(f.title.Value()),
		Description: strings.TrimSpace(f.desc.Value()),
		Status:      models.Pending,
	}
}

// patch returns only the fields that changed.
func (f taskForm) patch() models.Patch {
	var p models.Patch
	title := strings.TrimSpace(f.title.Value())
	desc := strings.TrimSpace(f.desc.Value())
	if f.editing == nil || title != f.editing.Title {
		p.Title = &title
	}
	if f.editing == nil || desc != f.editing.Description {
		p.Description = &desc
	}
	return p
}

func (f taskForm) update(msg tea.Msg) (taskForm, tea.Cmd) {
	var cmd tea.Cmd
	if f.focus == 0 {
		f.title, cmd = f.title.Update(msg)
	} else {
		f.desc, cmd = f.desc.Update(msg)
	}
	return f, cmd
}

func (f taskForm) view() string {
	heading := "New task"
	if f.editing != nil {
		heading = "Edit task #" + strconv.Itoa(f.editing.ID)
	}

	var b strings.Builder
	b.WriteString(styles.title.Render(heading))
	b.WriteString("\n")
	b.WriteString(f.title.View())
	b.WriteString("\n")
	b.WriteString(f.desc.View())
	b.WriteString("\n")
	if f.err != "" {
		b.WriteString("\n")
		b.WriteString(styles.err.Render(f.err))
		b.WriteString("\n")
	}
	return b.String()
}
