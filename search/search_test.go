package search_test

import (
	"errors"
	"testing"

	"github.com/routeengine/compass/access"
	"github.com/routeengine/compass/cost"
	"github.com/routeengine/compass/frontier"
	"github.com/routeengine/compass/graph"
	"github.com/routeengine/compass/search"
	"github.com/routeengine/compass/searchinstance"
	"github.com/routeengine/compass/state"
	"github.com/routeengine/compass/termination"
	"github.com/routeengine/compass/traversal"
	"github.com/routeengine/compass/units"
)

func buildInstance(t *testing.T, vertices []graph.Vertex, edges []graph.Edge, fm frontier.Model) *searchinstance.Instance {
	t.Helper()

	g, err := graph.Build(vertices, edges)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	tm := traversal.NewDistanceOnly()
	sm, err := state.Empty().Extend(tm.StateFeatures()...)
	if err != nil {
		t.Fatalf("Extend: %v", err)
	}

	cm := &cost.Model{
		StateModel:   sm,
		VehicleRates: map[string]cost.VehicleRate{"distance": cost.RawRate{}},
		Aggregation:  cost.Sum,
	}

	if fm == nil {
		fm = frontier.AllowAll{}
	}

	return &searchinstance.Instance{
		Graph:            g,
		StateModel:       sm,
		TraversalModel:   tm,
		AccessModel:      access.NoAccess{},
		CostModel:        cm,
		FrontierModel:    fm,
		TerminationModel: termination.Never{},
	}
}

// TestScenario1_TrivialGraph is spec.md §8 scenario 1.
func TestScenario1_TrivialGraph(t *testing.T) {
	vs := []graph.Vertex{{Id: 0}, {Id: 1}, {Id: 2}}
	es := []graph.Edge{
		{Src: 0, Dst: 1, Distance: units.Distance(1)},
		{Src: 1, Dst: 2, Distance: units.Distance(1)},
	}
	inst := buildInstance(t, vs, es, nil)

	dest := graph.VertexId(2)
	result, err := search.Run(inst, 0, &dest)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(result.Route) != 2 {
		t.Fatalf("got %d route edges, want 2", len(result.Route))
	}
	if result.Route[0].EdgeId != 0 || result.Route[1].EdgeId != 1 {
		t.Fatalf("route edges = %v, want [0, 1]", result.Route)
	}
	totalCost := result.Route[0].TraversalCost.Add(result.Route[1].TraversalCost)
	if totalCost.Value() != 2 {
		t.Fatalf("total cost = %v, want 2", totalCost.Value())
	}
	if !result.Tree.Contains(1) || !result.Tree.Contains(2) {
		t.Fatalf("tree missing settled vertices")
	}
}

// TestScenario2_ShorterPathWins is spec.md §8 scenario 2.
func TestScenario2_ShorterPathWins(t *testing.T) {
	vs := []graph.Vertex{{Id: 0}, {Id: 1}, {Id: 2}, {Id: 3}}
	es := []graph.Edge{
		{Src: 0, Dst: 1, Distance: units.Distance(10)},
		{Src: 1, Dst: 3, Distance: units.Distance(10)},
		{Src: 0, Dst: 2, Distance: units.Distance(5)},
		{Src: 2, Dst: 3, Distance: units.Distance(5)},
	}
	inst := buildInstance(t, vs, es, nil)

	dest := graph.VertexId(3)
	result, err := search.Run(inst, 0, &dest)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(result.Route) != 2 || result.Route[0].EdgeId != 2 || result.Route[1].EdgeId != 3 {
		t.Fatalf("route = %v, want [edge 2 (0->2), edge 3 (2->3)]", result.Route)
	}
}

// TestScenario3_EdgeCutForcesDetour is spec.md §8 scenario 3.
func TestScenario3_EdgeCutForcesDetour(t *testing.T) {
	vs := []graph.Vertex{{Id: 0}, {Id: 1}, {Id: 2}, {Id: 3}}
	es := []graph.Edge{
		{Src: 0, Dst: 1, Distance: units.Distance(10)},
		{Src: 1, Dst: 3, Distance: units.Distance(10)},
		{Src: 0, Dst: 2, Distance: units.Distance(5)},
		{Src: 2, Dst: 3, Distance: units.Distance(5)},
	}
	cut := frontier.NewEdgeCut(frontier.AllowAll{}, 2) // cuts edge 0->2
	inst := buildInstance(t, vs, es, cut)

	dest := graph.VertexId(3)
	result, err := search.Run(inst, 0, &dest)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(result.Route) != 2 || result.Route[0].EdgeId != 0 || result.Route[1].EdgeId != 1 {
		t.Fatalf("route = %v, want [edge 0 (0->1), edge 1 (1->3)]", result.Route)
	}
	total := result.Route[0].TraversalCost.Add(result.Route[1].TraversalCost)
	if total.Value() != 20 {
		t.Fatalf("total cost = %v, want 20", total.Value())
	}
}

// TestScenario4_UnreachableDestination is spec.md §8 scenario 4.
func TestScenario4_UnreachableDestination(t *testing.T) {
	vs := []graph.Vertex{{Id: 0}, {Id: 1}, {Id: 2}}
	es := []graph.Edge{{Src: 0, Dst: 1, Distance: units.Distance(1)}}
	inst := buildInstance(t, vs, es, nil)

	dest := graph.VertexId(2)
	result, err := search.Run(inst, 0, &dest)
	if !errors.Is(err, search.ErrNoPathExists) {
		t.Fatalf("got %v, want ErrNoPathExists", err)
	}
	if result == nil {
		t.Fatalf("result = nil, want a populated tree alongside ErrNoPathExists")
	}
	if result.PathExists {
		t.Fatalf("PathExists = true, want false")
	}
	if len(result.Route) != 0 {
		t.Fatalf("route = %v, want empty", result.Route)
	}
	if !result.Tree.Contains(1) {
		t.Fatalf("tree missing vertex 1, which was reached before the frontier exhausted")
	}
	if result.Tree.Contains(2) {
		t.Fatalf("tree contains unreachable destination vertex 2")
	}
}

// TestScenario_OriginEqualsDestination is the spec.md §4.9 edge case.
func TestScenario_OriginEqualsDestination(t *testing.T) {
	vs := []graph.Vertex{{Id: 0}, {Id: 1}}
	es := []graph.Edge{{Src: 0, Dst: 1, Distance: units.Distance(1)}}
	inst := buildInstance(t, vs, es, nil)

	dest := graph.VertexId(0)
	result, err := search.Run(inst, 0, &dest)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(result.Route) != 0 {
		t.Fatalf("route = %v, want empty", result.Route)
	}
}

// TestNoDestination_ReturnsFullTreeNoRoute covers the no-destination edge case.
func TestNoDestination_ReturnsFullTreeNoRoute(t *testing.T) {
	vs := []graph.Vertex{{Id: 0}, {Id: 1}, {Id: 2}}
	es := []graph.Edge{
		{Src: 0, Dst: 1, Distance: units.Distance(1)},
		{Src: 1, Dst: 2, Distance: units.Distance(1)},
	}
	inst := buildInstance(t, vs, es, nil)

	result, err := search.Run(inst, 0, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(result.Route) != 0 {
		t.Fatalf("route = %v, want empty (no destination)", result.Route)
	}
	if !result.Tree.Contains(1) || !result.Tree.Contains(2) {
		t.Fatalf("tree missing settled vertices")
	}
}

// TestTerminationFires asserts QueryTerminated propagates as a search error.
func TestTerminationFires(t *testing.T) {
	vs := []graph.Vertex{{Id: 0}, {Id: 1}}
	es := []graph.Edge{{Src: 0, Dst: 1, Distance: units.Distance(1)}}
	inst := buildInstance(t, vs, es, nil)
	inst.TerminationModel = termination.IterationsLimit{Limit: 0}

	dest := graph.VertexId(1)
	_, err := search.Run(inst, 0, &dest)
	if !errors.Is(err, search.ErrQueryTerminated) {
		t.Fatalf("got %v, want ErrQueryTerminated", err)
	}
}

// TestTreeIntegrity is the spec.md §8 universal property: following
// TerminalVertex from any settled vertex terminates at the origin with
// pairwise-distinct visited vertices.
func TestTreeIntegrity(t *testing.T) {
	vs := []graph.Vertex{{Id: 0}, {Id: 1}, {Id: 2}, {Id: 3}}
	es := []graph.Edge{
		{Src: 0, Dst: 1, Distance: units.Distance(1)},
		{Src: 1, Dst: 2, Distance: units.Distance(1)},
		{Src: 2, Dst: 3, Distance: units.Distance(1)},
	}
	inst := buildInstance(t, vs, es, nil)

	result, err := search.Run(inst, 0, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	for v := range result.Tree {
		seen := map[graph.VertexId]struct{}{v: {}}
		cur := v
		steps := 0
		for cur != 0 {
			branch, ok := result.Tree[cur]
			if !ok {
				t.Fatalf("broken chain at %d", cur)
			}
			cur = branch.TerminalVertex
			if _, dup := seen[cur]; dup && cur != 0 {
				t.Fatalf("cycle detected reaching vertex %d", v)
			}
			seen[cur] = struct{}{}
			steps++
			if steps > len(vs) {
				t.Fatalf("chain from %d did not terminate at origin within |V| steps", v)
			}
		}
	}
}
