// Package access implements the AccessModel family: the state delta applied
// once per turn (prev_edge → through_vertex → next_edge). The default
// NoAccess model makes no change; turn-restriction and turn-delay variants
// model intersection behavior.
package access

import (
	"errors"
	"fmt"

	"github.com/routeengine/compass/graph"
	"github.com/routeengine/compass/state"
	"github.com/routeengine/compass/units"
)

// ErrRestricted signals the turn is prohibited. The search algorithm treats
// this as equivalent to an invalid frontier: the edge is simply not
// expanded, never a search failure.
var ErrRestricted = errors.New("access: turn restricted")

// Turn bundles the vertices and edges involved in one turn.
type Turn struct {
	PrevVertex graph.VertexId
	PrevEdge   graph.EdgeId
	ThroughV   graph.VertexId
	NextEdge   graph.EdgeId
	NextV      graph.VertexId
}

// Model computes the state delta for crossing one turn.
type Model interface {
	AccessEdge(turn Turn, st state.Vector, sm *state.Model) error
}

// NoAccess is the default AccessModel: it leaves state unchanged.
type NoAccess struct{}

// AccessEdge implements Model.
func (NoAccess) AccessEdge(turn Turn, st state.Vector, sm *state.Model) error { return nil }

// TurnRestriction forbids any turn named in its restricted set, keyed by
// (prevEdge, nextEdge).
type TurnRestriction struct {
	Restricted map[[2]graph.EdgeId]struct{}
}

// NewTurnRestriction returns a TurnRestriction over the given prohibited
// (prevEdge, nextEdge) pairs.
func NewTurnRestriction(pairs [][2]graph.EdgeId) *TurnRestriction {
	r := &TurnRestriction{Restricted: make(map[[2]graph.EdgeId]struct{}, len(pairs))}
	for _, p := range pairs {
		r.Restricted[p] = struct{}{}
	}

	return r
}

// AccessEdge implements Model.
func (r *TurnRestriction) AccessEdge(turn Turn, st state.Vector, sm *state.Model) error {
	if _, forbidden := r.Restricted[[2]graph.EdgeId{turn.PrevEdge, turn.NextEdge}]; forbidden {
		return fmt.Errorf("%w: edge %d -> edge %d at vertex %d", ErrRestricted, turn.PrevEdge, turn.NextEdge, turn.ThroughV)
	}

	return nil
}

// TurnDelay adds a fixed time penalty to every turn. DefaultDelay applies
// unless the (prevEdge, nextEdge) pair has a specific override in Delays.
type TurnDelay struct {
	FeatureName  string
	DefaultDelay units.Time
	Delays       map[[2]graph.EdgeId]units.Time
}

// NewTurnDelay returns a TurnDelay writing to "time".
func NewTurnDelay(defaultDelay units.Time, delays map[[2]graph.EdgeId]units.Time) *TurnDelay {
	return &TurnDelay{FeatureName: "time", DefaultDelay: defaultDelay, Delays: delays}
}

// AccessEdge implements Model.
func (t *TurnDelay) AccessEdge(turn Turn, st state.Vector, sm *state.Model) error {
	delay := t.DefaultDelay
	if override, ok := t.Delays[[2]graph.EdgeId{turn.PrevEdge, turn.NextEdge}]; ok {
		delay = override
	}

	return sm.UpdateAdd(st, t.FeatureName, delay.Seconds())
}
