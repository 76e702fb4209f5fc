// Package units defines typed float64 scalars for the quantities carried
// through a search: distance, time, speed, grade, energy, and the
// dimensionless aggregated cost. Each type is a distinct Go type over
// float64 so the compiler rejects accidental mixing (a Time can never be
// passed where a Distance is expected without an explicit conversion).
//
// Conversions are named methods, never implicit casts.
package units

import "math"

// Distance is a length in meters.
type Distance float64

// Time is a duration in seconds.
type Time float64

// Speed is meters per second.
type Speed float64

// Grade is a rise/run ratio (0.05 == 5% grade).
type Grade float64

// EnergyUnit tags which physical unit an Energy value is expressed in.
type EnergyUnit uint8

const (
	// EnergyUnitElectricKWh is electric energy, kilowatt-hours.
	EnergyUnitElectricKWh EnergyUnit = iota
	// EnergyUnitLiquidGallonsEquivalent is liquid-fuel energy, gasoline-gallon-equivalent.
	EnergyUnitLiquidGallonsEquivalent
)

// Energy is a signed quantity of energy. Negative values represent energy
// consumed (battery/tank draw-down); positive values represent regeneration.
type Energy float64

// Cost is the dimensionless scalar produced by a CostModel. It has no unit
// tag because a Cost already represents the weighted, aggregated result of
// possibly several differently-united state deltas.
type Cost float64

// Add returns d+other.
func (d Distance) Add(other Distance) Distance { return d + other }

// Meters returns the raw float64 value.
func (d Distance) Meters() float64 { return float64(d) }

// Add returns t+other.
func (t Time) Add(other Time) Time { return t + other }

// Seconds returns the raw float64 value.
func (t Time) Seconds() float64 { return float64(t) }

// SpeedFromDistanceTime derives an average speed from a distance traveled
// over a duration. Returns zero when t is zero or negative.
func SpeedFromDistanceTime(d Distance, t Time) Speed {
	if t <= 0 {
		return 0
	}

	return Speed(float64(d) / float64(t))
}

// TimeFromDistanceSpeed derives the time needed to cover d at a constant
// speed s. Returns +Inf when s is zero or negative (the traversal never
// completes at that speed).
func TimeFromDistanceSpeed(d Distance, s Speed) Time {
	if s <= 0 {
		return Time(math.Inf(1))
	}

	return Time(float64(d) / float64(s))
}

// MetersPerSecond returns the raw float64 value.
func (s Speed) MetersPerSecond() float64 { return float64(s) }

// Ratio returns the raw rise/run ratio.
func (g Grade) Ratio() float64 { return float64(g) }

// Add returns e+other. Mixing units is the caller's responsibility; Energy
// does not carry its unit tag on the value itself (see EnergyUnit), only in
// the StateFeature metadata that describes the slot it is stored in.
func (e Energy) Add(other Energy) Energy { return e + other }

// Value returns the raw float64 value.
func (e Energy) Value() float64 { return float64(e) }

// Add returns c+other.
func (c Cost) Add(other Cost) Cost { return c + other }

// Scale returns c*factor.
func (c Cost) Scale(factor float64) Cost { return Cost(float64(c) * factor) }

// Value returns the raw float64 value.
func (c Cost) Value() float64 { return float64(c) }

// Clamp returns v clamped to [lo, hi]. If hi < lo the bounds are swapped.
func Clamp(v, lo, hi float64) float64 {
	if hi < lo {
		lo, hi = hi, lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}

	return v
}
