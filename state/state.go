// Package state implements the named, typed state-variable schema threaded
// through a search: the StateModel maps feature names to slot positions in a
// flat []float64 vector, and mediates every read/write so no caller ever
// needs to know a slot's numeric index.
//
// Per spec.md's design note, a Vector is deliberately an opaque slice, not a
// generated struct: the StateModel's feature list is itself built at
// per-query time (a TraversalModel can extend it with arbitrary features),
// so no Go struct type could name the slots at compile time.
package state

import (
	"errors"
	"fmt"

	"github.com/routeengine/compass/units"
)

// Sentinel errors for state-model operations.
var (
	// ErrDuplicateFeature indicates Extend was called with a name already present.
	ErrDuplicateFeature = errors.New("state: duplicate feature name")

	// ErrFeatureNotFound indicates a lookup by name found no such feature.
	ErrFeatureNotFound = errors.New("state: feature not found")

	// ErrIndexOutOfBounds indicates a feature's index does not fit the vector
	// it is being applied to. This should never happen for a vector produced
	// by the same StateModel's InitialState; it signals a mismatched model.
	ErrIndexOutOfBounds = errors.New("state: feature index out of bounds for vector")
)

// Kind is the semantic category of a state feature.
type Kind uint8

const (
	// KindDistance is an accumulated distance (meters).
	KindDistance Kind = iota
	// KindTime is an accumulated time (seconds).
	KindTime
	// KindEnergyLiquid is an accumulated liquid-fuel energy delta.
	KindEnergyLiquid
	// KindEnergyElectric is an accumulated electric energy delta.
	KindEnergyElectric
	// KindCustom is any caller-defined quantity; Unit names its meaning.
	KindCustom
)

// Feature describes one state-vector slot.
type Feature struct {
	Name    string
	Kind    Kind
	Unit    string
	Initial float64
	// HasBounds, Lo and Hi record the feature's declared bounds as metadata.
	// UpdateAddBounded clamps to the lo/hi passed to it and does not read them.
	HasBounds bool
	Lo, Hi    float64
}

// Vector is a flat, schema-mediated state vector. Index i only has meaning
// relative to the Model that produced it.
type Vector []float64

// Clone returns an independent copy of v.
func (v Vector) Clone() Vector {
	out := make(Vector, len(v))
	copy(out, v)

	return out
}

// Model is the finalized, immutable schema: an ordered feature list plus a
// name→index lookup. A Model is built by successive calls to Extend and
// should be treated as immutable once handed to a search.
type Model struct {
	features []Feature
	index    map[string]int
}

// Empty returns a Model with no features.
func Empty() *Model {
	return &Model{index: make(map[string]int)}
}

// Extend returns a new Model with features appended after the receiver's
// own features. The receiver is never mutated. Fails ErrDuplicateFeature if
// any new name collides with an existing one (including duplicates within
// the new slice itself).
func (m *Model) Extend(features ...Feature) (*Model, error) {
	next := &Model{
		features: make([]Feature, len(m.features), len(m.features)+len(features)),
		index:    make(map[string]int, len(m.index)+len(features)),
	}
	copy(next.features, m.features)
	for name, idx := range m.index {
		next.index[name] = idx
	}

	for _, f := range features {
		if _, exists := next.index[f.Name]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateFeature, f.Name)
		}
		next.index[f.Name] = len(next.features)
		next.features = append(next.features, f)
	}

	return next, nil
}

// Features returns the ordered feature list. The returned slice must not be
// mutated by the caller.
func (m *Model) Features() []Feature { return m.features }

// InitialState returns a fresh Vector with each slot set to its feature's
// Initial value.
func (m *Model) InitialState() Vector {
	v := make(Vector, len(m.features))
	for i, f := range m.features {
		v[i] = f.Initial
	}

	return v
}

func (m *Model) indexOf(name string) (int, error) {
	idx, ok := m.index[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrFeatureNotFound, name)
	}

	return idx, nil
}

func (m *Model) checkBounds(v Vector, idx int) error {
	if idx < 0 || idx >= len(v) {
		return fmt.Errorf("%w: index %d, len %d", ErrIndexOutOfBounds, idx, len(v))
	}

	return nil
}

// GetValue returns the value stored at name's slot in v.
func (m *Model) GetValue(v Vector, name string) (float64, error) {
	idx, err := m.indexOf(name)
	if err != nil {
		return 0, err
	}
	if err := m.checkBounds(v, idx); err != nil {
		return 0, err
	}

	return v[idx], nil
}

// Set replaces the value at name's slot in v.
func (m *Model) Set(v Vector, name string, value float64) error {
	idx, err := m.indexOf(name)
	if err != nil {
		return err
	}
	if err := m.checkBounds(v, idx); err != nil {
		return err
	}
	v[idx] = value

	return nil
}

// UpdateAdd adds delta to name's slot in v, in place.
func (m *Model) UpdateAdd(v Vector, name string, delta float64) error {
	idx, err := m.indexOf(name)
	if err != nil {
		return err
	}
	if err := m.checkBounds(v, idx); err != nil {
		return err
	}
	v[idx] += delta

	return nil
}

// UpdateAddBounded adds delta to name's slot in v, then clamps the result to
// [lo, hi], in place.
func (m *Model) UpdateAddBounded(v Vector, name string, delta, lo, hi float64) error {
	idx, err := m.indexOf(name)
	if err != nil {
		return err
	}
	if err := m.checkBounds(v, idx); err != nil {
		return err
	}
	v[idx] = units.Clamp(v[idx]+delta, lo, hi)

	return nil
}
