// Package traversal implements the TraversalModel family: the state delta
// produced by crossing a single edge, plus an admissible lower-bound
// estimate used by the search algorithm's A*-style heuristic.
//
// Concrete models are a closed set of variants (DistanceOnly, SpeedTable,
// Energy, PHEV, Combined) rather than an open registry, following spec.md §9's
// guidance that a small built-in family fits an enum of variants better
// than a function-table. The ModelService registry (package registry)
// still lets configuration select among them by name.
package traversal

import (
	"errors"
	"fmt"
	"math"

	"github.com/routeengine/compass/graph"
	"github.com/routeengine/compass/state"
	"github.com/routeengine/compass/units"
)

// Sentinel errors for traversal-model operations.
var (
	// ErrPredictionFailed indicates an underlying predictor (e.g. EnergyPredictor) failed.
	ErrPredictionFailed = errors.New("traversal: prediction failed")

	// ErrMissingStateFeature indicates the model's declared feature is absent
	// from the state model handed to it, an assembly-time configuration bug.
	ErrMissingStateFeature = errors.New("traversal: declared state feature missing from model")
)

// VertexPosition is the minimal coordinate pair estimate_traversal needs for
// a straight-line (admissible) distance estimate.
type VertexPosition struct {
	X, Y float64
}

// Model computes a per-edge state delta and an admissible estimate between
// two vertex positions.
type Model interface {
	// StateFeatures declares the slots this model writes. Declaration order
	// matters for Combined, which concatenates sub-model schemas in order.
	StateFeatures() []state.Feature

	// TraverseEdge updates st in place for traversing edge.
	TraverseEdge(edge graph.Edge, st state.Vector, sm *state.Model) error

	// EstimateTraversal produces an admissible lower bound on the state
	// delta between two vertex positions (never overestimates the
	// corresponding cost component). Used by the algorithm's heuristic.
	EstimateTraversal(src, dst VertexPosition, st state.Vector, sm *state.Model) error
}

// DistanceOnly writes edge.Distance into a single "distance" feature.
type DistanceOnly struct {
	FeatureName string
}

// NewDistanceOnly returns a DistanceOnly model writing to "distance".
func NewDistanceOnly() *DistanceOnly {
	return &DistanceOnly{FeatureName: "distance"}
}

// StateFeatures implements Model.
func (d *DistanceOnly) StateFeatures() []state.Feature {
	return []state.Feature{{Name: d.FeatureName, Kind: state.KindDistance, Unit: "meters"}}
}

// TraverseEdge implements Model.
func (d *DistanceOnly) TraverseEdge(edge graph.Edge, st state.Vector, sm *state.Model) error {
	if err := sm.UpdateAdd(st, d.FeatureName, edge.Distance.Meters()); err != nil {
		return fmt.Errorf("%w: %v", ErrMissingStateFeature, err)
	}

	return nil
}

// EstimateTraversal implements Model: straight-line distance is always a
// lower bound on the actual road distance.
func (d *DistanceOnly) EstimateTraversal(src, dst VertexPosition, st state.Vector, sm *state.Model) error {
	dist := haversineMeters(src, dst)
	if err := sm.UpdateAdd(st, d.FeatureName, dist); err != nil {
		return fmt.Errorf("%w: %v", ErrMissingStateFeature, err)
	}

	return nil
}

// SpeedTable derives traversal time from edge length and a per-edge link
// speed looked up by EdgeId, in addition to accumulating distance.
type SpeedTable struct {
	DistanceFeature string
	TimeFeature     string
	SpeedByEdge     map[graph.EdgeId]units.Speed
	DefaultSpeed    units.Speed
}

// NewSpeedTable returns a SpeedTable writing "distance" and "time".
func NewSpeedTable(speedByEdge map[graph.EdgeId]units.Speed, defaultSpeed units.Speed) *SpeedTable {
	return &SpeedTable{
		DistanceFeature: "distance",
		TimeFeature:     "time",
		SpeedByEdge:     speedByEdge,
		DefaultSpeed:    defaultSpeed,
	}
}

// StateFeatures implements Model.
func (s *SpeedTable) StateFeatures() []state.Feature {
	return []state.Feature{
		{Name: s.DistanceFeature, Kind: state.KindDistance, Unit: "meters"},
		{Name: s.TimeFeature, Kind: state.KindTime, Unit: "seconds"},
	}
}

func (s *SpeedTable) speedFor(id graph.EdgeId) units.Speed {
	if sp, ok := s.SpeedByEdge[id]; ok && sp > 0 {
		return sp
	}

	return s.DefaultSpeed
}

// TraverseEdge implements Model.
func (s *SpeedTable) TraverseEdge(edge graph.Edge, st state.Vector, sm *state.Model) error {
	sp := s.speedFor(edge.Id)
	t := units.TimeFromDistanceSpeed(edge.Distance, sp)

	if err := sm.UpdateAdd(st, s.DistanceFeature, edge.Distance.Meters()); err != nil {
		return fmt.Errorf("%w: %v", ErrMissingStateFeature, err)
	}
	if err := sm.UpdateAdd(st, s.TimeFeature, t.Seconds()); err != nil {
		return fmt.Errorf("%w: %v", ErrMissingStateFeature, err)
	}

	return nil
}

// EstimateTraversal implements Model: straight-line distance at the
// fastest speed in the table is an admissible (never-overestimating) bound
// on both distance and time.
func (s *SpeedTable) EstimateTraversal(src, dst VertexPosition, st state.Vector, sm *state.Model) error {
	dist := haversineMeters(src, dst)
	fastest := s.DefaultSpeed
	for _, sp := range s.SpeedByEdge {
		if sp > fastest {
			fastest = sp
		}
	}
	t := units.TimeFromDistanceSpeed(units.Distance(dist), fastest)

	if err := sm.UpdateAdd(st, s.DistanceFeature, dist); err != nil {
		return fmt.Errorf("%w: %v", ErrMissingStateFeature, err)
	}
	if err := sm.UpdateAdd(st, s.TimeFeature, t.Seconds()); err != nil {
		return fmt.Errorf("%w: %v", ErrMissingStateFeature, err)
	}

	return nil
}

// Combined composes several traversal models, concatenating their feature
// schemas in declaration order; each sub-model only ever touches the
// feature names it itself declared.
type Combined struct {
	subModels []Model
}

// NewCombined returns a Combined model over the given sub-models, evaluated
// in order.
func NewCombined(subModels ...Model) *Combined {
	return &Combined{subModels: subModels}
}

// StateFeatures implements Model.
func (c *Combined) StateFeatures() []state.Feature {
	var out []state.Feature
	for _, m := range c.subModels {
		out = append(out, m.StateFeatures()...)
	}

	return out
}

// TraverseEdge implements Model.
func (c *Combined) TraverseEdge(edge graph.Edge, st state.Vector, sm *state.Model) error {
	for _, m := range c.subModels {
		if err := m.TraverseEdge(edge, st, sm); err != nil {
			return err
		}
	}

	return nil
}

// EstimateTraversal implements Model.
func (c *Combined) EstimateTraversal(src, dst VertexPosition, st state.Vector, sm *state.Model) error {
	for _, m := range c.subModels {
		if err := m.EstimateTraversal(src, dst, st, sm); err != nil {
			return err
		}
	}

	return nil
}

// haversineMeters returns the great-circle distance between two WGS84
// decimal-degree positions, in meters. This is the admissible straight-line
// estimate used throughout the package.
func haversineMeters(a, b VertexPosition) float64 {
	const earthRadiusMeters = 6371000.0

	lat1 := a.Y * math.Pi / 180
	lat2 := b.Y * math.Pi / 180
	dLat := (b.Y - a.Y) * math.Pi / 180
	dLon := (b.X - a.X) * math.Pi / 180

	sinDLat := math.Sin(dLat / 2)
	sinDLon := math.Sin(dLon / 2)
	h := sinDLat*sinDLat + math.Cos(lat1)*math.Cos(lat2)*sinDLon*sinDLon

	return 2 * earthRadiusMeters * math.Asin(math.Sqrt(h))
}
