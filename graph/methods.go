package graph

import "fmt"

// Vertex returns the vertex with the given id.
//
// Complexity: O(1).
func (g *Graph) Vertex(id VertexId) (Vertex, error) {
	if int(id) < 0 || int(id) >= len(g.vertices) {
		return Vertex{}, fmt.Errorf("%w: %d", ErrVertexNotFound, id)
	}

	return g.vertices[id], nil
}

// Edge returns the edge with the given id.
//
// Complexity: O(1).
func (g *Graph) Edge(id EdgeId) (Edge, error) {
	if int(id) < 0 || int(id) >= len(g.edges) {
		return Edge{}, fmt.Errorf("%w: %d", ErrEdgeNotFound, id)
	}

	return g.edges[id], nil
}

// OutEdges returns the ids of edges leaving vid, in edge-table order.
//
// Complexity: O(1) amortized (returns a view of the precomputed adjacency
// slice). A missing adjacency entry for an in-range vertex is a fatal
// ErrAdjacencyVertexMissing — it signals the Graph was not built via Build.
func (g *Graph) OutEdges(vid VertexId) ([]EdgeId, error) {
	if int(vid) < 0 || int(vid) >= len(g.vertices) {
		return nil, fmt.Errorf("%w: %d", ErrVertexNotFound, vid)
	}
	if int(vid) >= len(g.outAdjacency) {
		return nil, fmt.Errorf("%w: %d", ErrAdjacencyVertexMissing, vid)
	}

	return g.outAdjacency[vid], nil
}

// InEdges returns the ids of edges arriving at vid, in edge-table order.
//
// Complexity: O(1) amortized.
func (g *Graph) InEdges(vid VertexId) ([]EdgeId, error) {
	if int(vid) < 0 || int(vid) >= len(g.vertices) {
		return nil, fmt.Errorf("%w: %d", ErrVertexNotFound, vid)
	}

	return g.inAdjacency[vid], nil
}
