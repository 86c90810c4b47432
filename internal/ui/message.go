package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/lanes/internal/tasks"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgStateUpdated MsgKind = iota
	MsgOpFinished
)

// opResult is the payload of [MsgOpFinished].
type opResult struct {
	op      tasks.Op
	summary string
	err     error
}

// stateUpdatedMsg is the constructor for [MsgStateUpdated]
func stateUpdatedMsg(state tasks.State) Msg {
	return Msg{kind: MsgStateUpdated, data: state}
}

// opFinishedMsg is the constructor for [MsgOpFinished]
func opFinishedMsg(op tasks.Op, summary string, err error) Msg {
	return Msg{kind: MsgOpFinished, data: opResult{op: op, summary: summary, err: err}}
}
