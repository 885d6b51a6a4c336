package storage

import (
	"context"
	"fmt"
	"sync"
)

// Record is any entity persisted in a collection. Ids are unique within a
// collection; uniqueness is the caller's responsibility.
type Record interface {
	GetID() string
}

// Collection is a typed handle on one named collection. Every operation holds
// the collection's gate for its full read-modify-write.
type Collection[T Record] struct {
	name string
	path string
	gate *sync.Mutex
}

// NewCollection returns a handle on the named collection. Handles for the same
// name share one gate.
func NewCollection[T Record](s *Store, name string) *Collection[T] {
	return &Collection[T]{
		name: name,
		path: s.path(name),
		gate: s.gate(name),
	}
}

// Name returns the collection name.
func (c *Collection[T]) Name() string {
	return c.name
}

func (c *Collection[T]) load() ([]T, error) {
	records, err := readDocument[T](c.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read collection %s: %w", c.name, err)
	}
	return records, nil
}

func (c *Collection[T]) save(records []T) error {
	if err := writeDocument(c.path, records); err != nil {
		return fmt.Errorf("failed to write collection %s: %w", c.name, err)
	}
	return nil
}

// Modify runs fn over the current contents under the gate and persists the
// returned slice when fn reports a change.
func (c *Collection[T]) Modify(ctx context.Context, fn func(records []T) ([]T, bool, error)) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.gate.Lock()
	defer c.gate.Unlock()

	records, err := c.load()
	if err != nil {
		return err
	}

	updated, changed, err := fn(records)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}
	return c.save(updated)
}

func (c *Collection[T]) read(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.gate.Lock()
	defer c.gate.Unlock()

	return c.load()
}

// GetAll returns a snapshot of the whole collection.
func (c *Collection[T]) GetAll(ctx context.Context) ([]T, error) {
	return c.read(ctx)
}

// GetByID returns the first record with the given id.
func (c *Collection[T]) GetByID(ctx context.Context, id string) (T, bool, error) {
	var zero T
	records, err := c.read(ctx)
	if err != nil {
		return zero, false, err
	}
	for _, r := range records {
		if r.GetID() == id {
			return r, true, nil
		}
	}
	return zero, false, nil
}

// FindBy returns every record matching the predicate, in insertion order.
func (c *Collection[T]) FindBy(ctx context.Context, match func(T) bool) ([]T, error) {
	records, err := c.read(ctx)
	if err != nil {
		return nil, err
	}
	found := make([]T, 0)
	for _, r := range records {
		if match(r) {
			found = append(found, r)
		}
	}
	return found, nil
}

// Count returns the number of records.
func (c *Collection[T]) Count(ctx context.Context) (int, error) {
	records, err := c.read(ctx)
	if err != nil {
		return 0, err
	}
	return len(records), nil
}

// Create appends a record.
func (c *Collection[T]) Create(ctx context.Context, record T) (T, error) {
	err := c.Modify(ctx, func(records []T) ([]T, bool, error) {
		return append(records, record), true, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return record, nil
}

// Update replaces the first record with the given id. It reports false when
// no such record exists.
func (c *Collection[T]) Update(ctx context.Context, id string, record T) (bool, error) {
	found := false
	err := c.Modify(ctx, func(records []T) ([]T, bool, error) {
		for i := range records {
			if records[i].GetID() == id {
				records[i] = record
				found = true
				return records, true, nil
			}
		}
		return records, false, nil
	})
	return found, err
}

// Patch applies mutate to the first record with the given id and persists it
// within a single read-modify-write. An error from mutate aborts the write.
func (c *Collection[T]) Patch(ctx context.Context, id string, mutate func(*T) error) (T, bool, error) {
	var (
		result T
		found  bool
	)
	err := c.Modify(ctx, func(records []T) ([]T, bool, error) {
		for i := range records {
			if records[i].GetID() != id {
				continue
			}
			if err := mutate(&records[i]); err != nil {
				return nil, false, err
			}
			result = records[i]
			found = true
			return records, true, nil
		}
		return records, false, nil
	})
	return result, found, err
}

// UpdateBy applies mutate to every record matching the predicate and returns
// how many were changed.
func (c *Collection[T]) UpdateBy(ctx context.Context, match func(T) bool, mutate func(*T)) (int, error) {
	n := 0
	err := c.Modify(ctx, func(records []T) ([]T, bool, error) {
		for i := range records {
			if match(records[i]) {
				mutate(&records[i])
				n++
			}
		}
		return records, n > 0, nil
	})
	return n, err
}

// Delete removes the first record with the given id and reports whether one
// was removed.
func (c *Collection[T]) Delete(ctx context.Context, id string) (bool, error) {
	removed := false
	err := c.Modify(ctx, func(records []T) ([]T, bool, error) {
		for i := range records {
			if records[i].GetID() == id {
				removed = true
				return append(records[:i], records[i+1:]...), true, nil
			}
		}
		return records, false, nil
	})
	return removed, err
}

// DeleteBy removes every record matching the predicate and returns how many
// were removed.
func (c *Collection[T]) DeleteBy(ctx context.Context, match func(T) bool) (int, error) {
	n := 0
	err := c.Modify(ctx, func(records []T) ([]T, bool, error) {
		kept := records[:0]
		for _, r := range records {
			if match(r) {
				n++
				continue
			}
			kept = append(kept, r)
		}
		return kept, n > 0, nil
	})
	return n, err
}

// Clear empties the collection.
func (c *Collection[T]) Clear(ctx context.Context) error {
	return c.Modify(ctx, func([]T) ([]T, bool, error) {
		return []T{}, true, nil
	})
}
