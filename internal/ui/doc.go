// Package ui implements the interactive task board using bubbletea's Elm architecture.
//
// The TUI has three views:
//  1. [BoardView] : three lanes side by side (pending, in progress, completed)
//  2. [FormView] : create or edit a task's title and description
//  3. [ConfirmView] : confirm a delete
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// Board operations run as commands against a [tasks.Board]; the synchronizer publishes each new state on a channel,
// which the model drains with a waiting command so optimistic moves show up before the remote call returns.
//
// Keyboard navigation uses vim-style bindings (h/j/k/l, H/L to move a task, 1/2/3 to set its lane, n/e/d, r, q)
// with contextual help displayed via charmbracelet/bubbles/help.
package ui
