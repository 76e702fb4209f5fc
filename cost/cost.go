// Package cost implements the CostModel: per-dimension rate tables (vehicle,
// network-traversal, network-access), per-dimension weights, and an
// aggregation mode (Sum or Multiply) combining state deltas into a single
// scalar Cost.
//
// A rate-table miss for a given dimension is a model-local condition, not an
// error: it contributes zero to that dimension, per spec.md §7.
package cost

import (
	"errors"
	"fmt"

	"github.com/routeengine/compass/graph"
	"github.com/routeengine/compass/state"
	"github.com/routeengine/compass/units"
)

// Sentinel errors for cost-model operations.
var (
	// ErrStateIndexOutOfBounds indicates a dimension name has no slot in the state vector.
	ErrStateIndexOutOfBounds = errors.New("cost: state index out of bounds")

	// ErrRateEvaluationFailed indicates a rate table's Evaluate call returned an error.
	ErrRateEvaluationFailed = errors.New("cost: rate evaluation failed")
)

// Aggregation combines per-dimension contributions into one scalar Cost.
type Aggregation uint8

const (
	// Sum adds contributions; the empty set sums to 0.
	Sum Aggregation = iota
	// Multiply multiplies contributions, treating a zero contribution as the
	// multiplicative identity (1) so one zero-weighted dimension cannot
	// collapse a multi-dimension product to zero. The empty set multiplies to 1.
	Multiply
)

func (a Aggregation) Combine(contributions []float64) units.Cost {
	switch a {
	case Multiply:
		product := 1.0
		for _, c := range contributions {
			if c == 0 {
				continue
			}
			product *= c
		}

		return units.Cost(product)
	default: // Sum
		total := 0.0
		for _, c := range contributions {
			total += c
		}

		return units.Cost(total)
	}
}

// VehicleRate maps a single-dimension state delta to a cost contribution.
type VehicleRate interface {
	Evaluate(delta float64) (float64, error)
}

// RawRate returns delta unchanged.
type RawRate struct{}

// Evaluate implements VehicleRate.
func (RawRate) Evaluate(delta float64) (float64, error) { return delta, nil }

// FactorRate scales delta by K.
type FactorRate struct{ K float64 }

// Evaluate implements VehicleRate.
func (r FactorRate) Evaluate(delta float64) (float64, error) { return delta * r.K, nil }

// OffsetRate adds K to delta.
type OffsetRate struct{ K float64 }

// Evaluate implements VehicleRate.
func (r OffsetRate) Evaluate(delta float64) (float64, error) { return delta + r.K, nil }

// CombinedVehicleRate sums the evaluations of several sub-rates.
type CombinedVehicleRate struct{ Rates []VehicleRate }

// Evaluate implements VehicleRate.
func (c CombinedVehicleRate) Evaluate(delta float64) (float64, error) {
	var total float64
	for _, r := range c.Rates {
		v, err := r.Evaluate(delta)
		if err != nil {
			return 0, err
		}
		total += v
	}

	return total, nil
}

// NetworkTraversalRate maps a traversal's before/after state and the edge
// traversed to a cost contribution.
type NetworkTraversalRate interface {
	Evaluate(prev, next state.Vector, edge graph.Edge) (float64, error)
}

// EdgeLookupTraversalRate looks up a fixed cost per edge; a missing entry
// contributes zero.
type EdgeLookupTraversalRate struct{ Table map[graph.EdgeId]float64 }

// Evaluate implements NetworkTraversalRate.
func (r EdgeLookupTraversalRate) Evaluate(prev, next state.Vector, edge graph.Edge) (float64, error) {
	return r.Table[edge.Id], nil
}

// CombinedTraversalRate sums several sub-rates.
type CombinedTraversalRate struct{ Rates []NetworkTraversalRate }

// Evaluate implements NetworkTraversalRate.
func (c CombinedTraversalRate) Evaluate(prev, next state.Vector, edge graph.Edge) (float64, error) {
	var total float64
	for _, r := range c.Rates {
		v, err := r.Evaluate(prev, next, edge)
		if err != nil {
			return 0, err
		}
		total += v
	}

	return total, nil
}

// NetworkAccessRate maps a turn's before/after state and the two edges
// involved to a cost contribution.
type NetworkAccessRate interface {
	Evaluate(prev, next state.Vector, prevEdge, nextEdge graph.EdgeId) (float64, error)
}

// EdgeEdgeLookupAccessRate looks up a fixed cost per (prevEdge, nextEdge)
// pair; a missing entry contributes zero.
type EdgeEdgeLookupAccessRate struct{ Table map[[2]graph.EdgeId]float64 }

// Evaluate implements NetworkAccessRate.
func (r EdgeEdgeLookupAccessRate) Evaluate(prev, next state.Vector, prevEdge, nextEdge graph.EdgeId) (float64, error) {
	return r.Table[[2]graph.EdgeId{prevEdge, nextEdge}], nil
}

// CombinedAccessRate sums several sub-rates.
type CombinedAccessRate struct{ Rates []NetworkAccessRate }

// Evaluate implements NetworkAccessRate.
func (c CombinedAccessRate) Evaluate(prev, next state.Vector, prevEdge, nextEdge graph.EdgeId) (float64, error) {
	var total float64
	for _, r := range c.Rates {
		v, err := r.Evaluate(prev, next, prevEdge, nextEdge)
		if err != nil {
			return 0, err
		}
		total += v
	}

	return total, nil
}

// Model owns the rate tables, per-dimension weights, and aggregation mode.
// It is built once per query (or once at service-build time and shared, if
// its query parameters are fixed) and is immutable thereafter.
type Model struct {
	StateModel     *state.Model
	VehicleRates   map[string]VehicleRate
	TraversalRates map[string]NetworkTraversalRate
	AccessRates    map[string]NetworkAccessRate
	Weights        map[string]float64
	Aggregation    Aggregation
}

func (m *Model) weight(name string) float64 {
	if w, ok := m.Weights[name]; ok {
		return w
	}

	return 1.0
}

func (m *Model) delta(prev, next state.Vector, name string) (float64, error) {
	pv, err := m.StateModel.GetValue(prev, name)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrStateIndexOutOfBounds, err)
	}
	nv, err := m.StateModel.GetValue(next, name)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrStateIndexOutOfBounds, err)
	}

	return nv - pv, nil
}

// TraversalCost returns aggregate(vehicle + network_traversal per dimension x weight).
func (m *Model) TraversalCost(prev, next state.Vector, edge graph.Edge) (units.Cost, error) {
	contributions := make([]float64, 0, len(m.StateModel.Features()))
	for _, f := range m.StateModel.Features() {
		delta, err := m.delta(prev, next, f.Name)
		if err != nil {
			return 0, err
		}

		var vehicle, network float64
		if r, ok := m.VehicleRates[f.Name]; ok {
			v, err := r.Evaluate(delta)
			if err != nil {
				return 0, fmt.Errorf("%w: dimension %q: %v", ErrRateEvaluationFailed, f.Name, err)
			}
			vehicle = v
		}
		if r, ok := m.TraversalRates[f.Name]; ok {
			v, err := r.Evaluate(prev, next, edge)
			if err != nil {
				return 0, fmt.Errorf("%w: dimension %q: %v", ErrRateEvaluationFailed, f.Name, err)
			}
			network = v
		}

		contributions = append(contributions, (vehicle+network)*m.weight(f.Name))
	}

	return m.Aggregation.Combine(contributions), nil
}

// AccessCost returns aggregate(network_access per dimension x weight).
func (m *Model) AccessCost(prev, next state.Vector, prevEdge, nextEdge graph.EdgeId) (units.Cost, error) {
	contributions := make([]float64, 0, len(m.StateModel.Features()))
	for _, f := range m.StateModel.Features() {
		var network float64
		if r, ok := m.AccessRates[f.Name]; ok {
			v, err := r.Evaluate(prev, next, prevEdge, nextEdge)
			if err != nil {
				return 0, fmt.Errorf("%w: dimension %q: %v", ErrRateEvaluationFailed, f.Name, err)
			}
			network = v
		}

		contributions = append(contributions, network*m.weight(f.Name))
	}

	return m.Aggregation.Combine(contributions), nil
}

// CostEstimate returns aggregate(vehicle per dimension x weight) between a
// state and an admissible estimated-next state, used by the search
// algorithm's heuristic.
func (m *Model) CostEstimate(st, estimatedNext state.Vector) (units.Cost, error) {
	contributions := make([]float64, 0, len(m.StateModel.Features()))
	for _, f := range m.StateModel.Features() {
		delta, err := m.delta(st, estimatedNext, f.Name)
		if err != nil {
			return 0, err
		}

		var vehicle float64
		if r, ok := m.VehicleRates[f.Name]; ok {
			v, err := r.Evaluate(delta)
			if err != nil {
				return 0, fmt.Errorf("%w: dimension %q: %v", ErrRateEvaluationFailed, f.Name, err)
			}
			vehicle = v
		}

		contributions = append(contributions, vehicle*m.weight(f.Name))
	}

	return m.Aggregation.Combine(contributions), nil
}
