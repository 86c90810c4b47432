package tasks

import (
	"context"

	"github.com/desertthunder/lanes/internal/models"
)

// RemoteUpdate sends the optimistic task to the remote store and returns the stored record.
type RemoteUpdate func(ctx context.Context, optimistic models.Task) (*models.Todo, error)

// Publish makes a task visible in local state.
type Publish func(models.Task)

// Outcome is the result of [Transact]: either the reconciled task was committed,
// or the original was restored and Err holds the remote failure.
type Outcome struct {
	Committed bool
	Task      models.Task // Visible task once Transact returns
	Original  models.Task // Snapshot taken before the patch was applied
	Err       error
}

// Transact applies patch to current optimistically and settles it against the remote store.
//
// publish is called with the optimistic task before remote runs, then with either the
// reconciled task or the original snapshot.
func Transact(ctx context.Context, current models.Task, patch models.Patch, remote RemoteUpdate, publish Publish) Outcome {
	original := current
	optimistic := current.Apply(patch)
	publish(optimistic)

	todo, err := remote(ctx, optimistic)
	if err != nil {
		publish(original)
		return Outcome{Task: original, Original: original, Err: err}
	}

	final := optimistic
	if todo != nil {
		final = optimistic.Reconcile(*todo)
	}
	publish(final)
	return Outcome{Committed: true, Task: final, Original: original}
}
