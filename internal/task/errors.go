package task

import "errors"

var (
	// ErrTaskNotFound is returned by Complete when no task with the given
	// ID exists under the owner. Delete never returns it: deleting a
	// missing task is a silent success.
	ErrTaskNotFound = errors.New("task not found")

	// ErrStoreCorrupt means the persisted task collection could not be
	// decoded. Unlike the credential store, the task store refuses to
	// treat a corrupt file as empty: the next rewrite would silently
	// discard every task.
	ErrStoreCorrupt = errors.New("task store is corrupt")
)
