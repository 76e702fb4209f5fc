// Package graph defines the immutable, CSR-style directed road-network
// representation shared read-only across all concurrent queries.
//
// A Graph is built once, from a vertex table and an edge table, via Build.
// After Build returns successfully the Graph never changes: there is no
// exported mutation method, so the backing slices may be shared across
// goroutines without locking.
//
// Errors:
//
//	ErrVertexNotFound        - requested VertexId is out of range.
//	ErrEdgeNotFound          - requested EdgeId is out of range.
//	ErrDanglingEdge          - an edge references a VertexId outside the table.
//	ErrAdjacencyVertexMissing - internal invariant violation: a vertex has no
//	                            adjacency entry at all (fatal, never user-facing).
package graph
