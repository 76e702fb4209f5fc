// Package frontier implements the FrontierModel family: the predicate that
// decides whether an edge may be expanded, split into a static prefilter
// (ValidEdge, independent of search state) and a dynamic predicate
// (ValidFrontier, evaluated at expansion time against the in-progress
// search tree).
package frontier

import (
	"github.com/routeengine/compass/graph"
	"github.com/routeengine/compass/searchtree"
	"github.com/routeengine/compass/state"
)

// Model is the FrontierModel contract.
type Model interface {
	// ValidEdge is a static prefilter, independent of state or direction.
	ValidEdge(edge graph.Edge) bool

	// ValidFrontier is the dynamic predicate evaluated at expansion time.
	ValidFrontier(edge graph.Edge, st state.Vector, tree searchtree.Tree, dir searchtree.Direction, sm *state.Model) bool
}

// AllowAll permits every edge; it is the default FrontierModel.
type AllowAll struct{}

// ValidEdge implements Model.
func (AllowAll) ValidEdge(edge graph.Edge) bool { return true }

// ValidFrontier implements Model.
func (AllowAll) ValidFrontier(edge graph.Edge, st state.Vector, tree searchtree.Tree, dir searchtree.Direction, sm *state.Model) bool {
	return true
}

// EdgeCut wraps an underlying Model and additionally rejects any edge whose
// id is in Cut, delegating to Underlying otherwise. Adding an edge to Cut
// can only leave the optimal cost unchanged or increase it, never decrease
// it, since EdgeCut only removes options from the search.
type EdgeCut struct {
	Underlying Model
	Cut        map[graph.EdgeId]struct{}
}

// NewEdgeCut returns an EdgeCut over underlying, rejecting the given edge ids.
func NewEdgeCut(underlying Model, cut ...graph.EdgeId) *EdgeCut {
	set := make(map[graph.EdgeId]struct{}, len(cut))
	for _, id := range cut {
		set[id] = struct{}{}
	}

	return &EdgeCut{Underlying: underlying, Cut: set}
}

// ValidEdge implements Model.
func (c *EdgeCut) ValidEdge(edge graph.Edge) bool {
	if _, cut := c.Cut[edge.Id]; cut {
		return false
	}

	return c.Underlying.ValidEdge(edge)
}

// ValidFrontier implements Model.
func (c *EdgeCut) ValidFrontier(edge graph.Edge, st state.Vector, tree searchtree.Tree, dir searchtree.Direction, sm *state.Model) bool {
	if _, cut := c.Cut[edge.Id]; cut {
		return false
	}

	return c.Underlying.ValidFrontier(edge, st, tree, dir, sm)
}

// RoadClass rejects edges whose class (looked up by EdgeId) is not in the
// allowed set.
type RoadClass struct {
	Underlying  Model
	ClassByEdge map[graph.EdgeId]int
	Allowed     map[int]struct{}
}

// NewRoadClass returns a RoadClass filter over underlying.
func NewRoadClass(underlying Model, classByEdge map[graph.EdgeId]int, allowed ...int) *RoadClass {
	set := make(map[int]struct{}, len(allowed))
	for _, c := range allowed {
		set[c] = struct{}{}
	}

	return &RoadClass{Underlying: underlying, ClassByEdge: classByEdge, Allowed: set}
}

// ValidEdge implements Model.
func (r *RoadClass) ValidEdge(edge graph.Edge) bool {
	if _, ok := r.Allowed[r.ClassByEdge[edge.Id]]; !ok {
		return false
	}

	return r.Underlying.ValidEdge(edge)
}

// ValidFrontier implements Model.
func (r *RoadClass) ValidFrontier(edge graph.Edge, st state.Vector, tree searchtree.Tree, dir searchtree.Direction, sm *state.Model) bool {
	if _, ok := r.Allowed[r.ClassByEdge[edge.Id]]; !ok {
		return false
	}

	return r.Underlying.ValidFrontier(edge, st, tree, dir, sm)
}

// VehicleState rejects an expansion once a named state feature (e.g.
// remaining battery SOC) drops below a minimum.
type VehicleState struct {
	Underlying  Model
	FeatureName string
	Minimum     float64
}

// NewVehicleState returns a VehicleState filter over underlying.
func NewVehicleState(underlying Model, featureName string, minimum float64) *VehicleState {
	return &VehicleState{Underlying: underlying, FeatureName: featureName, Minimum: minimum}
}

// ValidEdge implements Model.
func (v *VehicleState) ValidEdge(edge graph.Edge) bool { return v.Underlying.ValidEdge(edge) }

// ValidFrontier implements Model.
func (v *VehicleState) ValidFrontier(edge graph.Edge, st state.Vector, tree searchtree.Tree, dir searchtree.Direction, sm *state.Model) bool {
	value, err := sm.GetValue(st, v.FeatureName)
	if err == nil && value < v.Minimum {
		return false
	}

	return v.Underlying.ValidFrontier(edge, st, tree, dir, sm)
}
