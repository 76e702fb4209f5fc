package registry_test

import (
	"errors"
	"testing"

	"github.com/routeengine/compass/doc"
	"github.com/routeengine/compass/registry"
	"github.com/routeengine/compass/traversal"
)

func TestRegistry_UnknownTag(t *testing.T) {
	r := registry.New[traversal.Model]()
	if _, err := r.Build("does-not-exist", nil); !errors.Is(err, registry.ErrUnknownModelType) {
		t.Fatalf("got %v, want ErrUnknownModelType", err)
	}
}

func TestRegistry_DuplicateRegistration(t *testing.T) {
	r := registry.New[traversal.Model]()
	b := registry.Builder[traversal.Model](func(params doc.Document) (registry.Service[traversal.Model], error) {
		return func(query doc.Document) (traversal.Model, error) {
			return traversal.NewDistanceOnly(), nil
		}, nil
	})

	if err := r.Register("distance_only", b); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := r.Register("distance_only", b); !errors.Is(err, registry.ErrDuplicateModelType) {
		t.Fatalf("got %v, want ErrDuplicateModelType", err)
	}
}

func TestRegistry_BuildAndServe(t *testing.T) {
	r := registry.New[traversal.Model]()
	err := r.Register("distance_only", func(params doc.Document) (registry.Service[traversal.Model], error) {
		return func(query doc.Document) (traversal.Model, error) {
			return traversal.NewDistanceOnly(), nil
		}, nil
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	svc, err := r.Build("distance_only", nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	m, err := svc(nil)
	if err != nil {
		t.Fatalf("service call: %v", err)
	}
	if m == nil {
		t.Fatalf("service returned nil model")
	}
}
