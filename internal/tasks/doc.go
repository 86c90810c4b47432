// Package tasks keeps the board's in-memory task collection in step with the remote todo list API.
//
// # Core Operations
//
// The [Synchronizer] exposes five operations:
//
//  1. [Synchronizer.FetchAll] : replaces the collection with the first page of remote records
//  2. [Synchronizer.Create] : adds a task once the remote store has assigned it an ID (not optimistic)
//  3. [Synchronizer.Update] : applies a patch optimistically, then reconciles or rolls back
//  4. [Synchronizer.Remove] : drops a task once the remote delete succeeds (not optimistic)
//  5. [Synchronizer.SetEditingTask] : marks the task open in the edit form (local only)
//
// Every failure is returned as a [*SyncError] and its message is recorded in [State.Err].
//
// # State
//
// All mutation goes through the pure [Reduce] function. The synchronizer holds its lock only while
// reducing, never across a network call, so independent operations interleave in the order their
// responses arrive. Two updates racing on the same ID resolve as "last response wins".
//
// # Optimistic Updates
//
// [Transact] runs an update as a small saga: snapshot, apply, publish, call the remote, then commit the
// reconciled task or restore the snapshot. It returns an [Outcome] describing which branch was taken.
//
// # Change Notification
//
// When [Options.Updates] is set, every new [State] is offered to it with a non-blocking send so a
// slow reader never stalls an operation.
package tasks
