// Package search implements the label-setting best-first search algorithm
// (Dijkstra when the heuristic is zero, A* when a destination and a
// non-trivial admissible estimate are supplied): edge expansion driven by
// access costs, state updates, frontier validation and a termination
// predicate, plus tree construction and route backtracking.
//
// This generalizes the teacher's dijkstra package (lazy-decrease-key
// min-heap, pre-scan-then-relax shape) from a single scalar distance over a
// string-keyed graph to a (cost, state-vector) label over the dense
// graph.Graph, with the additional access/frontier/termination hooks
// spec.md's model composition layer requires.
package search

import (
	"container/heap"
	"errors"
	"fmt"
	"time"

	"github.com/routeengine/compass/access"
	"github.com/routeengine/compass/graph"
	"github.com/routeengine/compass/searchinstance"
	"github.com/routeengine/compass/searchtree"
	"github.com/routeengine/compass/state"
	"github.com/routeengine/compass/termination"
	"github.com/routeengine/compass/units"
)

// Result is everything the algorithm produces for one query: the settled
// tree and, if a destination was supplied and reached, the reconstructed
// route. PathExists is false only when a destination was supplied and the
// search exhausted its frontier without settling it; Tree is always
// populated up to whatever the search settled before returning, including
// that case, so a caller can render the partial tree even when there is no
// route.
type Result struct {
	Tree       searchtree.Tree
	Route      []searchtree.EdgeTraversal
	PathExists bool
}

// Run executes the label-setting search from origin. If destination is
// non-nil, the search stops as soon as that vertex is settled and the route
// is reconstructed; if destination is nil, the search runs to exhaustion
// (frontier empty or termination fires) and only the tree is returned.
func Run(inst *searchinstance.Instance, origin graph.VertexId, destination *graph.VertexId) (*Result, error) {
	r := &runner{
		inst:        inst,
		origin:      origin,
		destination: destination,
		tree:        make(searchtree.Tree),
		best:        make(map[graph.VertexId]units.Cost),
		startedAt:   time.Now(),
	}

	r.init()
	if err := r.process(); err != nil {
		return nil, err
	}

	result := &Result{Tree: r.tree, PathExists: true}

	if destination == nil || origin == *destination {
		return result, nil
	}

	if !r.tree.Contains(*destination) {
		result.PathExists = false
		return result, fmt.Errorf("%w: origin=%d destination=%d", ErrNoPathExists, origin, *destination)
	}

	route, err := reconstructRoute(r.tree, origin, *destination)
	if err != nil {
		return nil, err
	}
	result.Route = route

	return result, nil
}

// runner holds the mutable state for a single search execution.
type runner struct {
	inst        *searchinstance.Instance
	origin      graph.VertexId
	destination *graph.VertexId

	tree searchtree.Tree
	best map[graph.VertexId]units.Cost // vertex -> best known g-cost

	pq         frontierPQ
	seq        uint64
	iterations int
	startedAt  time.Time
}

// init seeds the frontier with the origin label.
func (r *runner) init() {
	st0 := r.inst.StateModel.InitialState()
	r.best[r.origin] = 0

	h := units.Cost(0)
	if r.destination != nil {
		if hv, err := r.heuristic(r.origin, st0); err == nil {
			h = hv
		}
	}

	heap.Init(&r.pq)
	heap.Push(&r.pq, &label{f: h, seq: r.nextSeq(), vertex: r.origin, g: 0, st: st0})
}

func (r *runner) nextSeq() uint64 {
	s := r.seq
	r.seq++

	return s
}

func (r *runner) heuristic(v graph.VertexId, st state.Vector) (units.Cost, error) {
	if r.destination == nil {
		return 0, nil
	}

	vv, err := r.inst.Graph.Vertex(v)
	if err != nil {
		return 0, err
	}
	dv, err := r.inst.Graph.Vertex(*r.destination)
	if err != nil {
		return 0, err
	}

	return r.inst.EstimateTraversalCost(searchinstance.Position(vv), searchinstance.Position(dv), st)
}

// process is the main label-setting loop.
func (r *runner) process() error {
	for r.pq.Len() > 0 {
		item := heap.Pop(&r.pq).(*label)
		u := item.vertex

		if best, ok := r.best[u]; ok && item.g > best {
			continue // stale duplicate: a better label already reached this vertex
		}

		if r.destination != nil && u == *r.destination {
			return nil // label is optimal; done
		}

		r.iterations++
		status := termination.Status{
			Elapsed:      time.Since(r.startedAt),
			Iterations:   r.iterations,
			FrontierSize: r.pq.Len(),
		}
		if stop, reason := r.inst.TerminationModel.ShouldTerminate(status); stop {
			return fmt.Errorf("%w: %s", ErrQueryTerminated, reason)
		}

		if err := r.expand(u, item.g, item.st); err != nil {
			return err
		}
	}

	return nil
}

// expand relaxes every out-edge of u.
func (r *runner) expand(u graph.VertexId, gU units.Cost, stU state.Vector) error {
	outEdges, err := r.inst.Graph.OutEdges(u)
	if err != nil {
		return err
	}

	var prevEdge *graph.EdgeId
	var prevVertex graph.VertexId
	if branch, ok := r.tree[u]; ok {
		id := branch.EdgeTraversal.EdgeId
		prevEdge = &id
		prevVertex = branch.TerminalVertex
	}

	for _, eid := range outEdges {
		edge, err := r.inst.Graph.Edge(eid)
		if err != nil {
			return err
		}

		if !r.inst.FrontierModel.ValidEdge(edge) {
			continue
		}

		stNext := stU.Clone()
		var accessCost units.Cost

		if prevEdge != nil {
			turn := access.Turn{PrevVertex: prevVertex, PrevEdge: *prevEdge, ThroughV: u, NextEdge: eid, NextV: edge.Dst}
			err := r.inst.AccessModel.AccessEdge(turn, stNext, r.inst.StateModel)
			if err != nil {
				if errors.Is(err, access.ErrRestricted) {
					continue
				}

				return err
			}

			accessCost, err = r.inst.CostModel.AccessCost(stU, stNext, *prevEdge, eid)
			if err != nil {
				return err
			}
		}

		stBefore := stNext.Clone()
		if err := r.inst.TraversalModel.TraverseEdge(edge, stNext, r.inst.StateModel); err != nil {
			return err
		}

		traversalCost, err := r.inst.CostModel.TraversalCost(stBefore, stNext, edge)
		if err != nil {
			return err
		}

		if !r.inst.FrontierModel.ValidFrontier(edge, stNext, r.tree, searchtree.Forward, r.inst.StateModel) {
			continue
		}

		gV := gU.Add(accessCost).Add(traversalCost)

		if best, settled := r.best[edge.Dst]; settled && best <= gV {
			continue
		}

		hV, err := r.heuristic(edge.Dst, stNext)
		if err != nil {
			hV = 0
		}

		r.best[edge.Dst] = gV
		r.tree[edge.Dst] = searchtree.Branch{
			EdgeTraversal: searchtree.EdgeTraversal{
				EdgeId:        eid,
				AccessCost:    accessCost,
				TraversalCost: traversalCost,
				ResultState:   stNext,
			},
			TerminalVertex: u,
		}

		heap.Push(&r.pq, &label{f: gV.Add(hV), seq: r.nextSeq(), vertex: edge.Dst, g: gV, st: stNext})
	}

	return nil
}

// reconstructRoute walks tree[v].TerminalVertex from destination back to
// origin, collecting each branch's EdgeTraversal, then reverses the result.
func reconstructRoute(tree searchtree.Tree, origin, destination graph.VertexId) ([]searchtree.EdgeTraversal, error) {
	var reversed []searchtree.EdgeTraversal

	v := destination
	for v != origin {
		branch, ok := tree[v]
		if !ok {
			return nil, fmt.Errorf("%w: broken tree chain at vertex %d", ErrNoPathExists, v)
		}
		reversed = append(reversed, branch.EdgeTraversal)
		v = branch.TerminalVertex
	}

	route := make([]searchtree.EdgeTraversal, len(reversed))
	for i, et := range reversed {
		route[len(reversed)-1-i] = et
	}

	return route, nil
}
