package traversal_test

import (
	"testing"

	"github.com/routeengine/compass/graph"
	"github.com/routeengine/compass/state"
	"github.com/routeengine/compass/traversal"
	"github.com/routeengine/compass/units"
)

func TestDistanceOnly_TraverseAndEstimate(t *testing.T) {
	m := traversal.NewDistanceOnly()
	sm, err := state.Empty().Extend(m.StateFeatures()...)
	if err != nil {
		t.Fatalf("Extend: %v", err)
	}
	st := sm.InitialState()

	edge := graph.Edge{Distance: units.Distance(42)}
	if err := m.TraverseEdge(edge, st, sm); err != nil {
		t.Fatalf("TraverseEdge: %v", err)
	}
	if got, _ := sm.GetValue(st, "distance"); got != 42 {
		t.Fatalf("distance = %v, want 42", got)
	}

	est := sm.InitialState()
	src := traversal.VertexPosition{X: 0, Y: 0}
	dst := traversal.VertexPosition{X: 0, Y: 1}
	if err := m.EstimateTraversal(src, dst, est, sm); err != nil {
		t.Fatalf("EstimateTraversal: %v", err)
	}
	gotEst, _ := sm.GetValue(est, "distance")
	if gotEst <= 0 {
		t.Fatalf("estimate = %v, want > 0", gotEst)
	}
}

func TestCombined_ConcatenatesSchemas(t *testing.T) {
	first := &traversal.DistanceOnly{FeatureName: "leg_distance"}
	c := traversal.NewCombined(first, traversal.NewSpeedTable(nil, units.Speed(10)))
	sm, err := state.Empty().Extend(c.StateFeatures()...)
	if err != nil {
		t.Fatalf("Extend: %v", err)
	}
	if len(sm.Features()) != 3 {
		t.Fatalf("got %d features, want 3 (leg_distance, distance, time)", len(sm.Features()))
	}
}
