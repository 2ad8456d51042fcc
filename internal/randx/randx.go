// Package randx holds the random/noise primitives the simulation is built
// on. Every engine receives a *Source so games can be replayed from a seed.
package randx

import (
	"fmt"
	"math"
	mathrand "math/rand"
	"strconv"
	"time"
)

type Source struct {
	r *mathrand.Rand
}

// New returns a seeded source. A zero seed falls back to the wall clock.
func New(seed int64) *Source {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Source{r: mathrand.New(mathrand.NewSource(seed))}
}

func (s *Source) Float64() float64 {
	return s.r.Float64()
}

func (s *Source) IntN(n int) int {
	return s.r.Intn(n)
}

// Range returns a uniform float in [min, max).
func (s *Source) Range(min, max float64) float64 {
	return s.r.Float64()*(max-min) + min
}

// Gaussian returns a standard normal draw via Box-Muller.
func (s *Source) Gaussian() float64 {
	var u, v float64
	for u == 0 {
		u = s.r.Float64()
	}
	for v == 0 {
		v = s.r.Float64()
	}
	return math.Sqrt(-2.0*math.Log(u)) * math.Cos(2.0*math.Pi*v)
}

// Pick returns a uniformly chosen element. Panics on an empty slice, which
// callers rule out.
func Pick[T any](s *Source, items []T) T {
	return items[s.r.Intn(len(items))]
}

// PickN returns between min and max distinct elements in shuffled order.
func PickN[T any](s *Source, items []T, min, max int) []T {
	count := min + s.r.Intn(max-min+1)
	if count > len(items) {
		count = len(items)
	}
	shuffled := make([]T, len(items))
	copy(shuffled, items)
	s.r.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled[:count]
}

// PickWeighted draws up to count distinct elements, each draw proportional
// to its weight. The cumulative distribution is rebuilt after every draw so
// an element can never be selected twice.
func PickWeighted[T any](s *Source, items []T, weights []float64, count int) []T {
	selected := make([]T, 0, count)
	pool := make([]T, len(items))
	copy(pool, items)
	poolWeights := make([]float64, len(weights))
	copy(poolWeights, weights)

	for i := 0; i < count && len(pool) > 0; i++ {
		var sum float64
		cdf := make([]float64, len(poolWeights))
		for j, w := range poolWeights {
			sum += w
			cdf[j] = sum
		}

		rand := s.r.Float64() * sum
		index := len(pool) - 1
		for j, v := range cdf {
			if rand <= v {
				index = j
				break
			}
		}

		selected = append(selected, pool[index])
		pool = append(pool[:index], pool[index+1:]...)
		poolWeights = append(poolWeights[:index], poolWeights[index+1:]...)
	}

	return selected
}

// ShiftColor jitters each RGB channel of a #rrggbb color by up to ±amount.
// Malformed input comes back unchanged.
func (s *Source) ShiftColor(hex string, amount int) string {
	color := hex
	if len(color) > 0 && color[0] == '#' {
		color = color[1:]
	}
	if len(color) < 6 {
		return hex
	}

	channels := make([]int, 3)
	for i := range channels {
		v, err := strconv.ParseInt(color[i*2:i*2+2], 16, 32)
		if err != nil {
			return hex
		}
		shift := s.r.Intn(amount*2+1) - amount
		c := int(v) + shift
		if c < 0 {
			c = 0
		}
		if c > 255 {
			c = 255
		}
		channels[i] = c
	}

	return fmt.Sprintf("#%02x%02x%02x", channels[0], channels[1], channels[2])
}
