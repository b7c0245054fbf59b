package rtrand

import (
	"iter"
	"reflect"

	"golang.org/x/exp/constraints"
)

// Distribution turns draws from a Source into values of type T.
// This is the single integration point for distributions: UniformInt, UniformFloat,
// Bernoulli, WeightedIndex and the standard distributions below all implement it,
// and so can any external distribution (normal, exponential, ...).
type Distribution[T any] interface {
	Sample(src Source) T
}

// DistributionFunc adapts a plain function to Distribution.
type DistributionFunc[T any] func(src Source) T

// Sample calls f.
func (f DistributionFunc[T]) Sample(src Source) T {
	return f(src)
}

// Map returns a distribution that applies f to every value drawn from d.
func Map[T, U any](d Distribution[T], f func(T) U) Distribution[U] {
	return DistributionFunc[U](func(src Source) U {
		return f(d.Sample(src))
	})
}

// Samples returns an endless sequence of values drawn from d using src.
// Stop ranging over it to stop drawing.
func Samples[T any](src Source, d Distribution[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			if !yield(d.Sample(src)) {
				return
			}
		}
	}
}

// SampleN draws n values from d. A non-positive n yields an empty slice.
func SampleN[T any](src Source, d Distribution[T], n int) []T {
	out := make([]T, max(n, 0))
	for i := range out {
		out[i] = d.Sample(src)
	}
	return out
}

// StandardInt draws integers uniformly from the full domain of T. Every bit pattern
// is a valid and equally likely result, so no draw is ever rejected.
// Types of up to 32 bits consume one Uint32, 64-bit types and the platform
// dependent int, uint and uintptr consume one Uint64. The number of draws therefore
// does not depend on the platform.
type StandardInt[T constraints.Integer] struct {
	wide bool
}

// Standard returns the full-domain distribution for T.
func Standard[T constraints.Integer]() StandardInt[T] {
	switch reflect.TypeFor[T]().Kind() {
	case reflect.Int, reflect.Uint, reflect.Uintptr, reflect.Int64, reflect.Uint64:
		return StandardInt[T]{wide: true}
	default:
		return StandardInt[T]{}
	}
}

// Sample converts one draw of the chosen width to T.
func (s StandardInt[T]) Sample(src Source) T {
	if s.wide {
		return T(src.Uint64())
	}
	return T(src.Uint32())
}

var (
	// Bool draws true and false with equal probability from the low bit of one Uint32.
	Bool Distribution[bool] = DistributionFunc[bool](func(src Source) bool {
		return src.Uint32()&1 == 1
	})

	// StandardFloat64 is Float64 as a Distribution.
	StandardFloat64 Distribution[float64] = DistributionFunc[float64](Float64)
	// StandardFloat32 is Float32 as a Distribution.
	StandardFloat32 Distribution[float32] = DistributionFunc[float32](Float32)

	// Rune draws uniformly from all Unicode scalar values, i.e. [0, 0x10FFFF]
	// without the surrogates [0xD800, 0xDFFF].
	Rune Distribution[rune] = DistributionFunc[rune](sampleRune)

	// Alphanumeric draws uniformly from the ASCII characters [A-Za-z0-9].
	Alphanumeric Distribution[byte] = DistributionFunc[byte](sampleAlphanumeric)
)

const (
	surrogateStart = 0xD800
	surrogateGap   = 0xE000 - surrogateStart
	maxRune        = 0x10FFFF
)

// runeRange covers as many values as there are scalar values, shifted up by the
// size of the surrogate gap.
var runeRange = newUniformInt[uint32](surrogateGap, maxRune+1-surrogateGap)

func sampleRune(src Source) rune {
	n := runeRange.Sample(src)
	if n < 0xE000 {
		n -= surrogateGap
	}
	return rune(n)
}

const alphanumericCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// sampleAlphanumeric takes the top 6 bits of a draw and rejects the two values
// outside the charset (probability 1/32), so a random source needs 32/31 draws on
// average.
func sampleAlphanumeric(src Source) byte {
	for {
		v := src.Uint32() >> 26
		if v < uint32(len(alphanumericCharset)) {
			return alphanumericCharset[v]
		}
	}
}
