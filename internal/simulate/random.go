// Package simulate generates deterministic synthetic net-worth history.
//
// Everything in this package is pure computation: a series is fully
// determined by its inputs because the random source is reseeded from each
// sample's own date. Callers may invoke it freely from concurrent request
// handlers; no state is shared between calls.
package simulate

import (
	"math"
	"time"
)

// Linear congruential generator constants (Numerical Recipes).
const (
	lcgMultiplier uint32 = 1664525
	lcgIncrement  uint32 = 1013904223
)

// Rand is a minimal seeded pseudo-random source. Two instances built from
// the same seed produce identical sequences.
type Rand struct {
	state    uint32
	spare    float64
	hasSpare bool
}

// NewRand creates a generator from an integer seed.
func NewRand(seed int64) *Rand {
	return &Rand{state: uint32(seed)}
}

// DateSeed derives the seed for a calendar date: year*10000 + month*100 + day.
// The same date always yields the same generator state, which is what makes
// the simulator's output stable across invocations without persisting anything.
func DateSeed(t time.Time) int64 {
	return int64(t.Year())*10000 + int64(t.Month())*100 + int64(t.Day())
}

// Next advances the LCG and returns a value in [0, 1).
func (r *Rand) Next() float64 {
	r.state = r.state*lcgMultiplier + lcgIncrement // wraps mod 2^32
	return float64(r.state) / float64(1<<32)
}

// Range returns a uniform value in [min, max).
func (r *Rand) Range(min, max float64) float64 {
	return min + r.Next()*(max-min)
}

// Normal returns a normally distributed variate via the Box–Muller
// transform. Each transform consumes two uniform draws and yields two
// outputs; the second is cached and returned by the following call, so
// consecutive calls are statistically paired rather than independent
// transforms.
func (r *Rand) Normal(mean, stdDev float64) float64 {
	if r.hasSpare {
		r.hasSpare = false
		return mean + stdDev*r.spare
	}

	u1 := r.Next()
	u2 := r.Next()
	if u1 == 0 {
		// log(0) guard; keeps the draw deterministic.
		u1 = math.SmallestNonzeroFloat64
	}

	mag := math.Sqrt(-2 * math.Log(u1))
	r.spare = mag * math.Sin(2*math.Pi*u2)
	r.hasSpare = true

	return mean + stdDev*mag*math.Cos(2*math.Pi*u2)
}
