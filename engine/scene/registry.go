package scene

import (
	"fmt"
	"iter"
	"slices"

	"github.com/spaghettifunk/anima2d/engine/core"
	"github.com/spaghettifunk/anima2d/engine/renderer/metadata"
)

// Handle refers to an entity by position plus the generation it was minted
// for. Removing an entity shifts every later index down, the generation
// lets Lookup notice and Resolve recover.
type Handle struct {
	Index      int
	Generation uint64
}

/**
 * @brief The ordered set of entities. Insertion order is draw order.
 */
type Registry struct {
	backend        metadata.RendererBackend
	entities       []*Entity
	nextGeneration uint64
}

func NewRegistry(backend metadata.RendererBackend) *Registry {
	return &Registry{
		backend:  backend,
		entities: []*Entity{},
	}
}

// Add appends an empty entity with identity transform.
func (r *Registry) Add() (*Entity, Handle) {
	r.nextGeneration++
	e := newEntity(r.backend, r.nextGeneration)
	r.entities = append(r.entities, e)
	return e, Handle{Index: len(r.entities) - 1, Generation: e.generation}
}

func (r *Registry) Get(index int) (*Entity, bool) {
	if index < 0 || index >= len(r.entities) {
		return nil, false
	}
	return r.entities[index], true
}

// GetUnchecked panics when index is out of range.
func (r *Registry) GetUnchecked(index int) *Entity {
	return r.entities[index]
}

// Lookup returns the entity h was minted for, or ErrStaleHandle if the
// slot now holds something else.
func (r *Registry) Lookup(h Handle) (*Entity, error) {
	e, ok := r.Get(h.Index)
	if !ok || e.generation != h.Generation {
		return nil, fmt.Errorf("%w: index %d generation %d", core.ErrStaleHandle, h.Index, h.Generation)
	}
	return e, nil
}

// Resolve returns an up to date handle for the entity h was minted for.
func (r *Registry) Resolve(h Handle) (Handle, error) {
	if _, err := r.Lookup(h); err == nil {
		return h, nil
	}
	for i, e := range r.entities {
		if e.generation == h.Generation {
			return Handle{Index: i, Generation: h.Generation}, nil
		}
	}
	return h, fmt.Errorf("%w: generation %d", core.ErrEntityNotFound, h.Generation)
}

// HandleOf returns the current handle of e.
func (r *Registry) HandleOf(e *Entity) (Handle, bool) {
	for i, other := range r.entities {
		if other == e {
			return Handle{Index: i, Generation: e.generation}, true
		}
	}
	return Handle{}, false
}

// Remove destroys the entity at index and shifts the later ones down.
// The caller must not remove an entity the GPU may still be drawing.
func (r *Registry) Remove(index int) error {
	e, ok := r.Get(index)
	if !ok {
		return fmt.Errorf("%w: index %d of %d", core.ErrEntityNotFound, index, len(r.entities))
	}
	e.Destroy()
	// slices.Delete zeroes the vacated tail slot
	r.entities = slices.Delete(r.entities, index, index+1)
	return nil
}

func (r *Registry) RemoveHandle(h Handle) error {
	current, err := r.Resolve(h)
	if err != nil {
		return err
	}
	return r.Remove(current.Index)
}

func (r *Registry) Len() int {
	return len(r.entities)
}

// All iterates entities in draw order.
func (r *Registry) All() iter.Seq2[int, *Entity] {
	return func(yield func(int, *Entity) bool) {
		for i, e := range r.entities {
			if !yield(i, e) {
				return
			}
		}
	}
}

// Update runs the behavior of every entity, in draw order.
func (r *Registry) Update() {
	for _, e := range r.entities {
		if e.behavior != nil {
			e.behavior.Update(e)
		}
	}
}

// Clear destroys every entity.
func (r *Registry) Clear() {
	for _, e := range r.entities {
		e.Destroy()
	}
	clear(r.entities)
	r.entities = r.entities[:0]
}
