package traversal

import (
	"fmt"

	"github.com/routeengine/compass/graph"
	"github.com/routeengine/compass/state"
	"github.com/routeengine/compass/units"
)

// EnergyPredictor predicts the energy delta for traversing a single edge
// given its speed, grade and length. Random-forest/ONNX-backed predictors
// are external collaborators per spec.md's non-goals; only the interface
// and a linear fallback live in this package.
type EnergyPredictor interface {
	Predict(speed units.Speed, grade units.Grade, distance units.Distance) (units.Energy, error)
}

// LinearEnergyPredictor estimates energy as a linear function of distance,
// speed and grade: Energy = Distance * (Base + SpeedCoef*Speed + GradeCoef*Grade).
// This mirrors original_source's phev.rs fallback coefficient model.
type LinearEnergyPredictor struct {
	Base      float64
	SpeedCoef float64
	GradeCoef float64
}

// Predict implements EnergyPredictor.
func (p *LinearEnergyPredictor) Predict(speed units.Speed, grade units.Grade, distance units.Distance) (units.Energy, error) {
	rate := p.Base + p.SpeedCoef*speed.MetersPerSecond() + p.GradeCoef*grade.Ratio()

	return units.Energy(rate * distance.Meters()), nil
}

// Energy is a TraversalModel backed by a single EnergyPredictor and a
// vehicle-speed source (either a per-edge speed table or link speed
// already present in another sub-model's state). It writes one energy
// feature and clamps it to the given state-of-charge bounds via
// UpdateAddBounded so SOC can never leave [Lo, Hi].
type Energy struct {
	FeatureName string
	Kind        state.Kind
	Predictor   EnergyPredictor
	SpeedByEdge map[graph.EdgeId]units.Speed
	GradeByEdge map[graph.EdgeId]units.Grade
	Lo, Hi      float64
}

// NewEnergy returns an Energy model over predictor, writing featureName
// clamped to [lo, hi].
func NewEnergy(featureName string, kind state.Kind, predictor EnergyPredictor, speedByEdge map[graph.EdgeId]units.Speed, gradeByEdge map[graph.EdgeId]units.Grade, lo, hi float64) *Energy {
	return &Energy{
		FeatureName: featureName,
		Kind:        kind,
		Predictor:   predictor,
		SpeedByEdge: speedByEdge,
		GradeByEdge: gradeByEdge,
		Lo:          lo,
		Hi:          hi,
	}
}

// StateFeatures implements Model.
func (e *Energy) StateFeatures() []state.Feature {
	return []state.Feature{{
		Name: e.FeatureName, Kind: e.Kind, Unit: "energy",
		Initial: e.Hi, HasBounds: true, Lo: e.Lo, Hi: e.Hi,
	}}
}

// TraverseEdge implements Model.
func (e *Energy) TraverseEdge(edge graph.Edge, st state.Vector, sm *state.Model) error {
	speed := e.SpeedByEdge[edge.Id]
	grade := e.GradeByEdge[edge.Id]

	delta, err := e.Predictor.Predict(speed, grade, edge.Distance)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPredictionFailed, err)
	}

	if err := sm.UpdateAddBounded(st, e.FeatureName, delta.Value(), e.Lo, e.Hi); err != nil {
		return fmt.Errorf("%w: %v", ErrMissingStateFeature, err)
	}

	return nil
}

// EstimateTraversal implements Model. A zero delta is always an admissible
// (never-overestimating) lower bound for a signed energy quantity whose
// best case is zero consumption (e.g. coasting downhill regenerates).
func (e *Energy) EstimateTraversal(src, dst VertexPosition, st state.Vector, sm *state.Model) error {
	return sm.UpdateAddBounded(st, e.FeatureName, 0, e.Lo, e.Hi)
}

// PHEV composes a liquid-fuel Energy sub-model and an electric Energy
// sub-model, picking one per edge with a branchless rule evaluated at the
// state *before* the edge is traversed: if the electric feature's value is
// > 0, use the electric sub-model; otherwise use the liquid sub-model. This
// preserves original_source's phev.rs boundary behavior bit-for-bit,
// including its documented imprecision when an edge's traversal crosses the
// zero-SOC boundary mid-edge (the whole edge is still charged to one
// dimension).
type PHEV struct {
	Electric *Energy
	Liquid   *Energy
}

// NewPHEV returns a PHEV model over the given electric and liquid sub-models.
func NewPHEV(electric, liquid *Energy) *PHEV {
	return &PHEV{Electric: electric, Liquid: liquid}
}

// StateFeatures implements Model.
func (p *PHEV) StateFeatures() []state.Feature {
	return append(p.Electric.StateFeatures(), p.Liquid.StateFeatures()...)
}

// TraverseEdge implements Model.
func (p *PHEV) TraverseEdge(edge graph.Edge, st state.Vector, sm *state.Model) error {
	soc, err := sm.GetValue(st, p.Electric.FeatureName)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMissingStateFeature, err)
	}

	if soc > 0 {
		return p.Electric.TraverseEdge(edge, st, sm)
	}

	return p.Liquid.TraverseEdge(edge, st, sm)
}

// EstimateTraversal implements Model.
func (p *PHEV) EstimateTraversal(src, dst VertexPosition, st state.Vector, sm *state.Model) error {
	if err := p.Electric.EstimateTraversal(src, dst, st, sm); err != nil {
		return err
	}

	return p.Liquid.EstimateTraversal(src, dst, st, sm)
}
