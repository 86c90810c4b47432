package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/lanes/internal/models"
)

var _ list.DefaultItem = taskItem{}

// taskItem wraps [models.Task] to implement [list.Item].
type taskItem struct {
	task models.Task
}

func (i taskItem) FilterValue() string { return i.task.Title }
func (i taskItem) Title() string       { return fmt.Sprintf("#%d %s", i.task.ID, i.task.Title) }
func (i taskItem) Description() string { return i.task.Description }

func taskItems(tasks []models.Task) []list.Item {
	items := make([]list.Item, len(tasks))
	for i, t := range tasks {
		items[i] = taskItem{task: t}
	}
	return items
}

// newLane creates the list for one status column.
//
// Filtering and the list's own help are off; the board owns those keys.
func newLane(status models.Status) list.Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(laneColors[status]).
		BorderForeground(laneColors[status])
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.BorderForeground(laneColors[status])

	l := list.New(nil, delegate, 0, 0)
	l.Title = status.Label()
	l.Styles.Title = l.Styles.Title.Background(laneColors[status])
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.DisableQuitKeybindings()
	return l
}
