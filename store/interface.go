package store

import "github.com/tidytask/tidytask/models"

// TaskStore defines the contract for the authoritative task collection.
//
// The store owns identity and atomicity and nothing else: it assigns ids,
// serializes operations on the same task, and hands out copies rather than
// aliases. Validation of field contents is the service layer's job, so the
// only error a store reports for a well-formed call is a
// types.NotFoundError.
type TaskStore interface {
	// Create assigns the next unused id and both timestamps, inserts the
	// task, and returns the stored copy. Ids increase monotonically and are
	// never reused within a process lifetime, even after deletes.
	Create(task models.Task) (models.Task, error)

	// Get returns a copy of the task with the given id.
	Get(id int64) (models.Task, error)

	// Update applies mutate to the stored task atomically and refreshes
	// UpdatedAt. The mutator must not retain the *models.Task beyond the
	// call. Identity and CreatedAt are store-owned and survive any mutation.
	Update(id int64, mutate func(*models.Task)) (models.Task, error)

	// Delete removes the task permanently. There is no soft-delete.
	Delete(id int64) error

	// List returns a point-in-time snapshot of every task in insertion
	// order. Callers may iterate the result while concurrent mutations
	// happen elsewhere.
	List() ([]models.Task, error)

	// Count returns the number of tasks currently held.
	Count() (int, error)
}
