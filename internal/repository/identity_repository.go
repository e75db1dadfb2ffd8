package repository

import (
	"fmt"
	"sync"

	appErrors "github.com/noah-isme/uni-records-api/pkg/errors"
)

// Identifiable is the capability stored entities expose: a unique string
// identifier within their repository.
type Identifiable interface {
	Identifier() string
}

// IdentityRepository is a generic in-memory store keyed by each item's
// identifier. It owns the canonical entity instances; every other component
// references items by identifier and resolves them here. A coarse RWMutex
// per instance guards concurrent access from the HTTP layer.
type IdentityRepository[T Identifiable] struct {
	mu    sync.RWMutex
	items map[string]T
	order []string
}

// NewIdentityRepository builds an empty repository.
func NewIdentityRepository[T Identifiable]() *IdentityRepository[T] {
	return &IdentityRepository[T]{items: make(map[string]T)}
}

// Add inserts an item, failing with DUPLICATE_KEY when its identifier is
// already present.
func (r *IdentityRepository[T]) Add(item T) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := item.Identifier()
	if _, exists := r.items[id]; exists {
		return appErrors.Clone(appErrors.ErrDuplicateKey,
			fmt.Sprintf("an item with identifier '%s' already exists", id))
	}
	r.items[id] = item
	r.order = append(r.order, id)
	return nil
}

// Remove deletes the item with the given identifier, reporting whether one
// was present. Removing a missing identifier is a no-op, not an error.
func (r *IdentityRepository[T]) Remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[id]; !exists {
		return false
	}
	delete(r.items, id)
	for i, key := range r.order {
		if key == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

// FindByID returns the item with the given identifier and whether it exists.
func (r *IdentityRepository[T]) FindByID(id string) (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	return item, ok
}

// All returns a snapshot of the stored items in insertion order.
func (r *IdentityRepository[T]) All() []T {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]T, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, r.items[id])
	}
	return result
}

// FindWhere returns all items satisfying the predicate, in insertion order.
func (r *IdentityRepository[T]) FindWhere(predicate func(T) bool) []T {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []T
	for _, id := range r.order {
		if item := r.items[id]; predicate(item) {
			result = append(result, item)
		}
	}
	return result
}

// Len returns the number of stored items.
func (r *IdentityRepository[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}
