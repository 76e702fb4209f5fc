package search

import (
	"github.com/routeengine/compass/graph"
	"github.com/routeengine/compass/state"
	"github.com/routeengine/compass/units"
)

// label is one entry in the frontier priority queue: a candidate g-cost (and
// heuristic-adjusted f-cost) for reaching vertex, together with the state
// vector that produced it. This generalizes the teacher's dijkstra.nodeItem
// from a single int64 distance to a (cost, state-vector) pair, and from a
// string vertex id to a dense graph.VertexId.
type label struct {
	f      units.Cost
	seq    uint64 // insertion sequence, for stable FIFO tie-breaking
	vertex graph.VertexId
	g      units.Cost
	st     state.Vector
}

// frontierPQ is a min-heap of *label ordered by (f, seq) ascending. Like the
// teacher's nodePQ, it is a lazy-decrease-key heap: a shorter path to a
// vertex already in the heap is pushed as a new entry rather than updating
// the old one in place; stale entries are discarded when popped.
type frontierPQ []*label

func (pq frontierPQ) Len() int { return len(pq) }

func (pq frontierPQ) Less(i, j int) bool {
	if pq[i].f != pq[j].f {
		return pq[i].f < pq[j].f
	}

	return pq[i].seq < pq[j].seq
}

func (pq frontierPQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *frontierPQ) Push(x interface{}) { *pq = append(*pq, x.(*label)) }

func (pq *frontierPQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}
