package orchestrator

import (
	"fmt"
	"math"

	"github.com/routeengine/compass/graph"
)

// VertexResolver maps a query's (x, y) coordinate pair to a graph vertex.
// This is the "collaborator map-matching component" spec.md §4.11 places
// out of scope (geometry RTree acceleration, snap-to-road logic); the
// orchestrator only depends on the narrow interface, not any particular
// implementation.
type VertexResolver interface {
	Resolve(x, y float64) (graph.VertexId, error)
}

// NearestVertexResolver is a linear-scan stand-in for the out-of-scope
// RTree-accelerated map matcher: fine for small graphs and tests, not for
// production-scale ones. It orders candidates by squared planar distance in
// decimal degrees, which is cheaper than the great-circle distance; the two
// rankings can differ, since a degree of longitude is not scaled by latitude.
type NearestVertexResolver struct {
	Graph *graph.Graph
}

// Resolve implements VertexResolver.
func (n *NearestVertexResolver) Resolve(x, y float64) (graph.VertexId, error) {
	best := graph.VertexId(-1)
	bestDist := math.Inf(1)

	for i := 0; i < n.Graph.NumVertices(); i++ {
		v, err := n.Graph.Vertex(graph.VertexId(i))
		if err != nil {
			return 0, err
		}
		dx, dy := v.X-x, v.Y-y
		d := dx*dx + dy*dy
		if d < bestDist {
			bestDist = d
			best = v.Id
		}
	}

	if best < 0 {
		return 0, fmt.Errorf("%w: (%g, %g)", ErrNoVertexNearby, x, y)
	}

	return best, nil
}
