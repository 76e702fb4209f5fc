package graph

import (
	"errors"
	"fmt"

	"github.com/routeengine/compass/units"
)

// Sentinel errors for graph operations.
var (
	// ErrVertexNotFound indicates an operation referenced a non-existent vertex.
	ErrVertexNotFound = errors.New("graph: vertex not found")

	// ErrEdgeNotFound indicates an operation referenced a non-existent edge.
	ErrEdgeNotFound = errors.New("graph: edge not found")

	// ErrDanglingEdge indicates an edge's src or dst does not name a valid vertex.
	ErrDanglingEdge = errors.New("graph: edge references an out-of-range vertex")

	// ErrAdjacencyVertexMissing indicates an in-range vertex has no adjacency
	// entry at all. This is a fatal internal invariant violation: Build
	// always allocates one entry per vertex, so seeing this means the Graph
	// was constructed some other way than Build.
	ErrAdjacencyVertexMissing = errors.New("graph: adjacency table missing an in-range vertex")
)

// VertexId is a dense, non-negative index into Graph.vertices.
type VertexId int

// EdgeId is a dense, non-negative index into Graph.edges.
type EdgeId int

// Vertex is a network node. Coordinates are WGS84 decimal degrees.
type Vertex struct {
	Id VertexId
	X  float64
	Y  float64
}

// Edge is a directed arc between two vertices. Edges are immutable once the
// owning Graph is built; geometry is not stored inline, it lives in a
// parallel table indexed by EdgeId owned by a separate collaborator.
type Edge struct {
	Id       EdgeId
	Src      VertexId
	Dst      VertexId
	Distance units.Distance
}

// Graph is the immutable directed road network: an ordered vertex table, an
// ordered edge table, and forward/reverse adjacency built from them.
//
// Graph is safe for concurrent read-only use by any number of goroutines:
// once Build returns, nothing about a Graph changes.
type Graph struct {
	vertices []Vertex
	edges    []Edge

	// outAdjacency[v] lists, in edge-table order, the EdgeIds of edges whose Src is v.
	outAdjacency [][]EdgeId
	// inAdjacency[v] lists, in edge-table order, the EdgeIds of edges whose Dst is v.
	inAdjacency [][]EdgeId
}

// Build constructs a Graph from a vertex table (indexed by position, so
// vertices[i].Id must equal VertexId(i)) and an edge table. It validates
// that every edge's Src/Dst references a valid vertex and that the
// resulting adjacency tables are internally consistent; no edge is listed
// twice in one adjacency entry.
//
// Complexity: O(V + E).
func Build(vertices []Vertex, edges []Edge) (*Graph, error) {
	for i, v := range vertices {
		if int(v.Id) != i {
			return nil, fmt.Errorf("graph: vertex at index %d has Id %d, want dense ids", i, v.Id)
		}
	}

	g := &Graph{
		vertices:     vertices,
		edges:        make([]Edge, len(edges)),
		outAdjacency: make([][]EdgeId, len(vertices)),
		inAdjacency:  make([][]EdgeId, len(vertices)),
	}

	for i, e := range edges {
		if int(e.Src) < 0 || int(e.Src) >= len(vertices) || int(e.Dst) < 0 || int(e.Dst) >= len(vertices) {
			return nil, fmt.Errorf("%w: edge %d (src=%d dst=%d)", ErrDanglingEdge, e.Id, e.Src, e.Dst)
		}
		e.Id = EdgeId(i)
		g.edges[i] = e
		g.outAdjacency[e.Src] = append(g.outAdjacency[e.Src], e.Id)
		g.inAdjacency[e.Dst] = append(g.inAdjacency[e.Dst], e.Id)
	}

	return g, nil
}

// NumVertices returns the number of vertices in the graph.
func (g *Graph) NumVertices() int { return len(g.vertices) }

// NumEdges returns the number of edges in the graph.
func (g *Graph) NumEdges() int { return len(g.edges) }
