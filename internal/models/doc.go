// Package models defines the task board's domain types and the remote records they map from.
//
// The package contains two categories of types:
//
// 1. Board types: what the synchronizer and the presentation work with
//   - [Task] : a card on the board, placed in a lane by its [Status]
//   - [Draft] : input for creating a task
//   - [Patch] : a partial update; nil fields are left untouched
//
// 2. Remote records: the JSON shapes of the todo list API
//   - [Todo] : a single record ({id, todo, completed, userId})
//   - [TodoPage] : the list envelope ({todos, total, skip, limit})
//   - [NewTodo], [TodoUpdate] : request bodies for create and update
//   - [DeletedTodo] : the delete acknowledgement
//
// The remote API only knows a completed flag. [FromTodo] derives a status from it and [Task.Completed]
// mirrors the status back, so the lane a card sits in and the flag sent to the server never disagree
// once a remote call has settled.
package models
