package state_test

import (
	"errors"
	"testing"

	"github.com/routeengine/compass/state"
)

func TestExtend_DuplicateName(t *testing.T) {
	m, err := state.Empty().Extend(state.Feature{Name: "distance"})
	if err != nil {
		t.Fatalf("Extend: %v", err)
	}
	if _, err := m.Extend(state.Feature{Name: "distance"}); !errors.Is(err, state.ErrDuplicateFeature) {
		t.Fatalf("got %v, want ErrDuplicateFeature", err)
	}
}

func TestInitialStateAndAccessors(t *testing.T) {
	m, err := state.Empty().Extend(
		state.Feature{Name: "distance", Initial: 0},
		state.Feature{Name: "soc", Initial: 100, HasBounds: true, Lo: 0, Hi: 100},
	)
	if err != nil {
		t.Fatalf("Extend: %v", err)
	}

	v := m.InitialState()
	if got, _ := m.GetValue(v, "soc"); got != 100 {
		t.Fatalf("soc = %v, want 100", got)
	}

	if err := m.UpdateAddBounded(v, "soc", -150, 0, 100); err != nil {
		t.Fatalf("UpdateAddBounded: %v", err)
	}
	if got, _ := m.GetValue(v, "soc"); got != 0 {
		t.Fatalf("soc after clamp = %v, want 0", got)
	}

	if err := m.UpdateAdd(v, "distance", 42); err != nil {
		t.Fatalf("UpdateAdd: %v", err)
	}
	if got, _ := m.GetValue(v, "distance"); got != 42 {
		t.Fatalf("distance = %v, want 42", got)
	}

	if _, err := m.GetValue(v, "missing"); !errors.Is(err, state.ErrFeatureNotFound) {
		t.Fatalf("got %v, want ErrFeatureNotFound", err)
	}
}

func TestExtend_DoesNotMutateReceiver(t *testing.T) {
	base := state.Empty()
	derived, err := base.Extend(state.Feature{Name: "x"})
	if err != nil {
		t.Fatalf("Extend: %v", err)
	}
	if len(base.Features()) != 0 {
		t.Fatalf("base mutated: %d features", len(base.Features()))
	}
	if len(derived.Features()) != 1 {
		t.Fatalf("derived has %d features, want 1", len(derived.Features()))
	}
}
