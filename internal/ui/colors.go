package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/lanes/internal/models"
)

var styles = NewPalette("#7D56F4", "#04B575", "#FF0000", "#FFA500", "#626262")

// laneColors gives each lane its accent color, in [models.Statuses] order.
var laneColors = map[models.Status]lipgloss.Color{
	models.Pending:    lipgloss.Color("#FFA500"),
	models.InProgress: lipgloss.Color("#7D56F4"),
	models.Completed:  lipgloss.Color("#04B575"),
}

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title   lipgloss.Style
	ok      lipgloss.Style
	err     lipgloss.Style
	warn    lipgloss.Style
	help    lipgloss.Style
	lane    lipgloss.Style
	focused lipgloss.Style
}

func NewPalette(t, s, e, w, h string) *Palette {
	lane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(h)).
		Padding(0, 1)

	return &Palette{
		title:   NewBold(t).MarginBottom(1),
		ok:      NewBold(s),
		err:     NewBold(e),
		warn:    NewStyle(w),
		help:    NewEm(h),
		lane:    lane,
		focused: lane.BorderForeground(lipgloss.Color(t)),
	}
}

// laneStyle returns the border style for a lane.
func (p *Palette) laneStyle(focused bool) lipgloss.Style {
	if focused {
		return p.focused
	}
	return p.lane
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}
