// Package searchtree defines the label and tree types shared between the
// FrontierModel family (which inspects the tree built so far to decide
// whether an edge may be expanded) and the search algorithm (which builds
// it). Splitting these out of the search package avoids an import cycle:
// frontier models need to read a SearchTree without depending on the
// algorithm that produces one.
package searchtree

import (
	"github.com/routeengine/compass/graph"
	"github.com/routeengine/compass/state"
	"github.com/routeengine/compass/units"
)

// Direction distinguishes a forward (origin-outward) search from a
// reverse (destination-inward) one. Only Forward is driven by the
// algorithm today; Direction exists so FrontierModel implementations have
// a stable signature if a reverse search is added later.
type Direction uint8

const (
	// Forward expands out-edges from the settled vertex.
	Forward Direction = iota
	// Reverse expands in-edges toward the settled vertex.
	Reverse
)

// EdgeTraversal is the full label attached to a vertex when it is settled:
// the edge taken to reach it, the turn/edge costs paid, and the resulting
// state vector.
type EdgeTraversal struct {
	EdgeId        graph.EdgeId
	AccessCost    units.Cost
	TraversalCost units.Cost
	ResultState   state.Vector
}

// Branch records how one vertex was reached: the label plus the vertex it
// was expanded from (its parent in the tree).
type Branch struct {
	EdgeTraversal  EdgeTraversal
	TerminalVertex graph.VertexId
}

// Tree maps a settled VertexId to the Branch that reached it. The origin,
// once search has started, is present in the tree only if the original
// spec calls for a sentinel; this implementation follows spec.md §4.9's
// edge case and omits the origin (no edge was traversed to reach it).
type Tree map[graph.VertexId]Branch

// Contains reports whether v has been settled.
func (t Tree) Contains(v graph.VertexId) bool {
	_, ok := t[v]

	return ok
}
