package task

// TaskRepositoryInterface is the durable task collection. Implementations
// must serialize Add with every other ID-assigning call so IDs stay unique
// across the whole store, and serialize all mutations so a load-mutate-
// persist cycle never interleaves with another writer.
type TaskRepositoryInterface interface {
	// List returns the owner's tasks in insertion order.
	List(owner string) ([]*Task, error)
	// Add assigns the next global ID (max of all existing IDs plus one)
	// and persists the new task with Completed false.
	Add(owner, description, dueDate string) (*Task, error)
	// Complete marks the task done. A missing (owner, id) pair is an
	// ErrTaskNotFound, not a no-op.
	Complete(owner string, id int) error
	// Delete removes the task if present; absence is a silent success.
	Delete(owner string, id int) error
}
