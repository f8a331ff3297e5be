package datagen

import (
	"math/rand"
	"time"
)

// RNG is the single randomness context for a run. Every sampling call in the
// engine and in the fake-value providers routes through it, so one seed
// reproduces the whole dataset.
type RNG struct {
	r *rand.Rand
}

// NewRNG returns a context seeded from the given seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewSource(seed))}
}

// NewTimeRNG returns a context for runs without a configured seed.
func NewTimeRNG() *RNG {
	return NewRNG(time.Now().UnixNano())
}

func (g *RNG) Intn(n int) int { return g.r.Intn(n) }

func (g *RNG) Float64() float64 { return g.r.Float64() }

func (g *RNG) NormFloat64() float64 { return g.r.NormFloat64() }

// Uniform samples uniformly from [min, max].
func (g *RNG) Uniform(min, max float64) float64 {
	return min + g.r.Float64()*(max-min)
}

// DateBetween samples a calendar day uniformly from [start, end].
func (g *RNG) DateBetween(start, end time.Time) time.Time {
	days := int(end.Sub(start).Hours() / 24)
	if days <= 0 {
		return start
	}
	return start.AddDate(0, 0, g.r.Intn(days+1))
}

// Perm returns a random permutation of [0, n).
func (g *RNG) Perm(n int) []int { return g.r.Perm(n) }
