package runtime

import (
	"math"
	"math/rand"
	"sync"
	"time"
)

const (
	PI = math.Pi
	E  = math.E
)

func Sqrt(x float64) float64 { return math.Sqrt(x) }

func Pow(base, exp float64) float64 { return math.Pow(base, exp) }

func Abs(x float64) float64 { return math.Abs(x) }

func Floor(x float64) float64 { return math.Floor(x) }

func Ceil(x float64) float64 { return math.Ceil(x) }

func Round(x float64) float64 { return math.Round(x) }

func Max(a, b float64) float64 { return math.Max(a, b) }

func Min(a, b float64) float64 { return math.Min(a, b) }

// MaxOf and MinOf reduce a Sequence to a single extreme, for the
// variadic Math.max/Math.min call forms (spec.md §4.4).
func MaxOf(s *Sequence[float64]) float64 {
	return ReduceSequence(s, func(acc, v float64) float64 {
		return math.Max(acc, v)
	}, math.Inf(-1))
}

func MinOf(s *Sequence[float64]) float64 {
	return ReduceSequence(s, func(acc, v float64) float64 {
		return math.Min(acc, v)
	}, math.Inf(1))
}

var (
	randOnce sync.Once
	randSrc  *rand.Rand
)

// Random lazily seeds off the wall clock on first use and reuses that
// source afterward, matching the runtime contract's deliberate
// exception to otherwise-deterministic execution (spec.md §5).
func Random() float64 {
	randOnce.Do(func() {
		randSrc = rand.New(rand.NewSource(time.Now().UnixNano()))
	})
	return randSrc.Float64()
}
