package task

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) *FileTaskRepository {
	t.Helper()
	return NewFileTaskRepository(filepath.Join(t.TempDir(), "tasks.json"))
}

func TestAdd_AssignsSequentialIDs(t *testing.T) {
	repo := newTestRepo(t)

	first, err := repo.Add("alice", "Buy groceries", "2024-11-10")
	require.NoError(t, err)
	assert.Equal(t, 1, first.ID)
	assert.False(t, first.Completed)

	second, err := repo.Add("alice", "Finish report", "2024-11-15")
	require.NoError(t, err)
	assert.Equal(t, 2, second.ID)
}

func TestAdd_IDsGlobalAcrossOwners(t *testing.T) {
	repo := newTestRepo(t)

	first, err := repo.Add("alice", "Alice task", "2024-11-10")
	require.NoError(t, err)
	second, err := repo.Add("bob", "Bob task", "2024-11-11")
	require.NoError(t, err)
	third, err := repo.Add("alice", "Another alice task", "2024-11-12")
	require.NoError(t, err)

	// One counter across the whole store, not one per owner.
	assert.Equal(t, 1, first.ID)
	assert.Equal(t, 2, second.ID)
	assert.Equal(t, 3, third.ID)
}

func TestAdd_ConcurrentIDsUnique(t *testing.T) {
	repo := newTestRepo(t)

	const n = 20
	var wg sync.WaitGroup
	ids := make(chan int, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			task, err := repo.Add("alice", "concurrent", "2024-11-10")
			if assert.NoError(t, err) {
				ids <- task.ID
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int]bool)
	for id := range ids {
		assert.False(t, seen[id], "duplicate task ID %d", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)
}

func TestList_RoundTrip(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.Add("alice", "Buy groceries", "2024-11-10")
	require.NoError(t, err)

	tasks, err := repo.List("alice")
	require.NoError(t, err)
	require.Len(t, tasks, 1)

	assert.Equal(t, "Buy groceries", tasks[0].Description)
	assert.Equal(t, "2024-11-10", tasks[0].DueDate)
	assert.Equal(t, "alice", tasks[0].Owner)
	assert.False(t, tasks[0].Completed)
}

func TestList_FiltersByOwnerInInsertionOrder(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.Add("alice", "first", "2024-11-10")
	require.NoError(t, err)
	_, err = repo.Add("bob", "bob task", "2024-11-10")
	require.NoError(t, err)
	_, err = repo.Add("alice", "second", "2024-11-11")
	require.NoError(t, err)

	tasks, err := repo.List("alice")
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "first", tasks[0].Description)
	assert.Equal(t, "second", tasks[1].Description)

	none, err := repo.List("carol")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestList_MissingFileIsEmptyStore(t *testing.T) {
	repo := newTestRepo(t)

	tasks, err := repo.List("alice")
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestComplete(t *testing.T) {
	repo := newTestRepo(t)

	task, err := repo.Add("alice", "Buy groceries", "2024-11-10")
	require.NoError(t, err)

	require.NoError(t, repo.Complete("alice", task.ID))

	tasks, err := repo.List("alice")
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.True(t, tasks[0].Completed)

	// Completing again keeps the task completed.
	require.NoError(t, repo.Complete("alice", task.ID))
	tasks, err = repo.List("alice")
	require.NoError(t, err)
	assert.True(t, tasks[0].Completed)
}

func TestComplete_MissingTaskIsReported(t *testing.T) {
	repo := newTestRepo(t)

	err := repo.Complete("alice", 999)
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestComplete_WrongOwnerIsReported(t *testing.T) {
	repo := newTestRepo(t)

	task, err := repo.Add("alice", "Buy groceries", "2024-11-10")
	require.NoError(t, err)

	err = repo.Complete("bob", task.ID)
	assert.ErrorIs(t, err, ErrTaskNotFound)

	// Alice's task is untouched.
	tasks, err := repo.List("alice")
	require.NoError(t, err)
	assert.False(t, tasks[0].Completed)
}

func TestDelete(t *testing.T) {
	repo := newTestRepo(t)

	task, err := repo.Add("alice", "Buy groceries", "2024-11-10")
	require.NoError(t, err)

	require.NoError(t, repo.Delete("alice", task.ID))

	tasks, err := repo.List("alice")
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestDelete_MissingTaskIsSilentSuccess(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.Add("alice", "Buy groceries", "2024-11-10")
	require.NoError(t, err)

	require.NoError(t, repo.Delete("alice", 999))

	// The collection is unchanged.
	tasks, err := repo.List("alice")
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
}

func TestDelete_DoesNotReuseIDs(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.Add("alice", "first", "2024-11-10")
	require.NoError(t, err)
	second, err := repo.Add("alice", "second", "2024-11-11")
	require.NoError(t, err)

	require.NoError(t, repo.Delete("alice", 1))

	third, err := repo.Add("alice", "third", "2024-11-12")
	require.NoError(t, err)

	// max(existing)+1 with task 2 still present.
	assert.Equal(t, second.ID+1, third.ID)
}

func TestPersistence_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")

	repo := NewFileTaskRepository(path)
	task, err := repo.Add("alice", "Buy groceries", "2024-11-10")
	require.NoError(t, err)
	require.NoError(t, repo.Complete("alice", task.ID))

	reopened := NewFileTaskRepository(path)
	tasks, err := reopened.List("alice")
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, task.ID, tasks[0].ID)
	assert.True(t, tasks[0].Completed)
}

func TestCorruptStore_FailsInsteadOfWiping(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	repo := NewFileTaskRepository(path)

	_, err := repo.List("alice")
	assert.ErrorIs(t, err, ErrStoreCorrupt)

	_, err = repo.Add("alice", "task", "2024-11-10")
	assert.ErrorIs(t, err, ErrStoreCorrupt)

	// The corrupt file was not rewritten.
	data, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, "{not json", string(data))
}

// The end-to-end flow: add two tasks, complete the first, delete the
// second.
func TestTaskLifecycle(t *testing.T) {
	repo := newTestRepo(t)

	first, err := repo.Add("alice", "Buy groceries", "2024-11-10")
	require.NoError(t, err)
	assert.Equal(t, 1, first.ID)

	second, err := repo.Add("alice", "Finish report", "2024-11-15")
	require.NoError(t, err)
	assert.Equal(t, 2, second.ID)

	require.NoError(t, repo.Complete("alice", first.ID))

	tasks, err := repo.List("alice")
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.True(t, tasks[0].Completed)
	assert.False(t, tasks[1].Completed)

	require.NoError(t, repo.Delete("alice", second.ID))

	tasks, err = repo.List("alice")
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, first.ID, tasks[0].ID)
	assert.True(t, tasks[0].Completed)
}
