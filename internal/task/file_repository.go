package task

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/sirupsen/logrus"

	"tasktracker/internal/filex"
)

// FileTaskRepository persists the whole task collection as one JSON file.
// Mutations are full-collection rewrites behind the write lock, with the
// file replaced atomically so concurrent readers never see a partial
// rewrite.
type FileTaskRepository struct {
	path string
	mu   sync.RWMutex
}

func NewFileTaskRepository(path string) *FileTaskRepository {
	return &FileTaskRepository{path: path}
}

func (r *FileTaskRepository) List(owner string) ([]*Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all, err := r.load()
	if err != nil {
		return nil, err
	}

	var tasks []*Task
	for _, t := range all {
		if t.Owner == owner {
			tasks = append(tasks, t)
		}
	}
	return tasks, nil
}

func (r *FileTaskRepository) Add(owner, description, dueDate string) (*Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.load()
	if err != nil {
		return nil, err
	}

	// The next ID is the maximum across every owner's tasks plus one, so
	// IDs are unique across the whole store.
	maxID := 0
	for _, t := range all {
		if t.ID > maxID {
			maxID = t.ID
		}
	}

	task := &Task{
		ID:          maxID + 1,
		Description: description,
		DueDate:     dueDate,
		Completed:   false,
		Owner:       owner,
	}

	all = append(all, task)
	if err := r.persist(all); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"task_id": task.ID,
		"owner":   owner,
	}).Info("Task added")
	return task, nil
}

func (r *FileTaskRepository) Complete(owner string, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.load()
	if err != nil {
		return err
	}

	for _, t := range all {
		if t.Owner == owner && t.ID == id {
			t.Completed = true
			if err := r.persist(all); err != nil {
				return err
			}
			logrus.WithFields(logrus.Fields{
				"task_id": id,
				"owner":   owner,
			}).Info("Task completed")
			return nil
		}
	}

	logrus.WithFields(logrus.Fields{
		"task_id": id,
		"owner":   owner,
	}).Warn("Task to complete not found")
	return ErrTaskNotFound
}

func (r *FileTaskRepository) Delete(owner string, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.load()
	if err != nil {
		return err
	}

	kept := all[:0]
	removed := false
	for _, t := range all {
		if t.Owner == owner && t.ID == id {
			removed = true
			continue
		}
		kept = append(kept, t)
	}

	// Deleting a missing task is a success, and skipping the rewrite
	// leaves the collection untouched.
	if !removed {
		return nil
	}

	if err := r.persist(kept); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"task_id": id,
		"owner":   owner,
	}).Info("Task deleted")
	return nil
}

// load reads the full task collection. A missing file is an empty store;
// a corrupt file fails the operation instead of being rewritten as empty.
func (r *FileTaskRepository) load() ([]*Task, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read task store: %w", err)
	}

	var tasks []*Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		logrus.WithError(err).WithField("path", r.path).Error("Task store is corrupt")
		return nil, ErrStoreCorrupt
	}
	return tasks, nil
}

func (r *FileTaskRepository) persist(tasks []*Task) error {
	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return fmt.Errorf("encode task store: %w", err)
	}
	if err := filex.WriteFileAtomic(r.path, data); err != nil {
		return fmt.Errorf("persist task store: %w", err)
	}
	return nil
}
