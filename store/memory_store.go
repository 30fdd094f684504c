package store

import (
	"sort"
	"sync"
	"time"

	"github.com/tidytask/tidytask/models"
	"github.com/tidytask/tidytask/types"
)

// MemoryTaskStore implements the TaskStore interface with a mutex-guarded
// in-memory map. All state is lost on process exit.
type MemoryTaskStore struct {
	mu     sync.RWMutex
	tasks  map[int64]models.Task
	nextID int64
	now    func() time.Time
}

// NewMemoryTaskStore creates an empty in-memory task store.
func NewMemoryTaskStore() *MemoryTaskStore {
	return &MemoryTaskStore{
		tasks:  make(map[int64]models.Task),
		nextID: 1,
		now:    time.Now,
	}
}

// Create assigns the next id and both timestamps, then inserts the task.
func (s *MemoryTaskStore) Create(task models.Task) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	task.ID = s.nextID
	s.nextID++
	task.CreatedAt = now
	task.UpdatedAt = now

	stored := task.Clone()
	s.tasks[stored.ID] = stored
	return stored.Clone(), nil
}

// Get returns a copy of the task with the given id.
func (s *MemoryTaskStore) Get(id int64) (models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	task, ok := s.tasks[id]
	if !ok {
		return models.Task{}, &types.NotFoundError{ID: id}
	}
	return task.Clone(), nil
}

// Update applies mutate to a copy of the stored task under the write lock,
// restores the store-owned fields, refreshes UpdatedAt, and swaps the result
// in. No reader can observe a partially-mutated task.
func (s *MemoryTaskStore) Update(id int64, mutate func(*models.Task)) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.tasks[id]
	if !ok {
		return models.Task{}, &types.NotFoundError{ID: id}
	}

	next := current.Clone()
	mutate(&next)

	next.ID = current.ID
	next.CreatedAt = current.CreatedAt
	next.UpdatedAt = s.now()
	if next.UpdatedAt.Before(next.CreatedAt) {
		// Clock went backwards; keep updatedAt >= createdAt.
		next.UpdatedAt = next.CreatedAt
	}

	s.tasks[id] = next
	return next.Clone(), nil
}

// Delete removes the task permanently. The id is never handed out again.
func (s *MemoryTaskStore) Delete(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[id]; !ok {
		return &types.NotFoundError{ID: id}
	}
	delete(s.tasks, id)
	return nil
}

// List returns a snapshot of all tasks in insertion order. Ids are monotonic,
// so ascending id order is insertion order.
func (s *MemoryTaskStore) List() ([]models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Task, 0, len(s.tasks))
	for _, task := range s.tasks {
		out = append(out, task.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Count returns the number of tasks currently held.
func (s *MemoryTaskStore) Count() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks), nil
}
