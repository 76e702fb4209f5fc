package frontier_test

import (
	"testing"

	"github.com/routeengine/compass/frontier"
	"github.com/routeengine/compass/graph"
)

func TestEdgeCut_RejectsCutEdges(t *testing.T) {
	c := frontier.NewEdgeCut(frontier.AllowAll{}, 2)

	if c.ValidEdge(graph.Edge{Id: 2}) {
		t.Fatalf("edge 2 should be cut")
	}
	if !c.ValidEdge(graph.Edge{Id: 3}) {
		t.Fatalf("edge 3 should be allowed")
	}
}

func TestEdgeCut_MonotoneWithUnderlying(t *testing.T) {
	// Adding an edge to the cut set can only remove options, never add them:
	// an edge the underlying model accepts must be rejected once it is cut.
	base := frontier.AllowAll{}
	before := base.ValidEdge(graph.Edge{Id: 1})

	cut := frontier.NewEdgeCut(base, 1)
	after := cut.ValidEdge(graph.Edge{Id: 1})

	if before && after {
		t.Fatalf("cut edge still valid")
	}
}

func TestRoadClass_FiltersDisallowed(t *testing.T) {
	classes := map[graph.EdgeId]int{1: 5, 2: 7}
	rc := frontier.NewRoadClass(frontier.AllowAll{}, classes, 5)

	if !rc.ValidEdge(graph.Edge{Id: 1}) {
		t.Fatalf("edge 1 (class 5) should be allowed")
	}
	if rc.ValidEdge(graph.Edge{Id: 2}) {
		t.Fatalf("edge 2 (class 7) should be rejected")
	}
}
