// Package registry implements the two-level ModelService factory (C11): a
// Builder takes one-time configuration parameters and produces a Service; a
// Service takes a per-query document and produces a per-query model
// instance. This lets expensive one-time I/O (reading rate tables, loading
// predictors) happen at process start while per-query parameters stay
// cheap, and lets configuration select among registered model types by a
// string tag.
//
// Grounded on the pack's OCM plugin-manager registries (e.g.
// bindings/go/plugin/manager/registries/resource/registry.go): a
// mutex-guarded map from a string/type key to a registered factory, with a
// registration-collision error and an unknown-key error.
package registry

import (
	"errors"
	"fmt"
	"sync"

	"github.com/routeengine/compass/doc"
)

// Sentinel errors for registry operations.
var (
	// ErrUnknownModelType indicates configuration named a type tag with no registered Builder.
	ErrUnknownModelType = errors.New("registry: unknown model type")

	// ErrDuplicateModelType indicates Register was called twice for the same tag.
	ErrDuplicateModelType = errors.New("registry: model type already registered")
)

// Service builds one per-query model instance from the query document.
type Service[T any] func(query doc.Document) (T, error)

// Builder builds a Service from one-time configuration parameters.
type Builder[T any] func(params doc.Document) (Service[T], error)

// Registry is a string-tag-keyed store of Builders for one model family
// (T is the per-query model type the family produces, e.g. traversal.Model).
type Registry[T any] struct {
	mu       sync.Mutex
	builders map[string]Builder[T]
}

// New returns an empty Registry.
func New[T any]() *Registry[T] {
	return &Registry[T]{builders: make(map[string]Builder[T])}
}

// Register adds a Builder under the given type tag. Fails
// ErrDuplicateModelType if tag is already registered.
func (r *Registry[T]) Register(tag string, b Builder[T]) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.builders[tag]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateModelType, tag)
	}
	r.builders[tag] = b

	return nil
}

// Build looks up the Builder registered under tag and invokes it with
// params, producing a Service. Fails ErrUnknownModelType if tag is unregistered.
func (r *Registry[T]) Build(tag string, params doc.Document) (Service[T], error) {
	r.mu.Lock()
	b, ok := r.builders[tag]
	r.mu.Unlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownModelType, tag)
	}

	return b(params)
}
