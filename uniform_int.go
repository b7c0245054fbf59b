package rtrand

import (
	"math"
	"math/bits"

	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
)

// Uint32N returns a uniformly distributed value in the half-open interval [0,n).
// Use this function for generating random indices or sizes for slices or arrays, for example.
// It has a very efficient implementation avoiding division or modulo operations in the common case
// and compensates for bias.
// For n=0 and n=1, Uint32N returns 0 without drawing from src.
//
// The draw is multiplied by n as a 64-bit product; the high half is the result.
// A draw is rejected only if the low half falls below 2^32 mod n, which happens
// with probability (2^32 mod n)/2^32 < 1/2. The threshold itself is only computed
// when the low half is below n, i.e. rarely.
//
// For implementation details, see:
//
//	https://lemire.me/blog/2016/06/27/a-fast-alternative-to-the-modulo-reduction
//	https://lemire.me/blog/2016/06/30/fast-random-shuffling
func Uint32N(src Source, n uint32) uint32 {
	if n <= 1 {
		return 0
	}
	hi, lo := bits.Mul32(src.Uint32(), n)
	if lo < n {
		thresh := -n % n
		for lo < thresh {
			hi, lo = bits.Mul32(src.Uint32(), n)
		}
	}
	return hi
}

// Uint64N returns a uniformly distributed value in [0,n).
// For n=0 and n=1 it returns 0 without drawing.
// The word width is chosen by the size of n, not by the platform: n < 2^32 uses
// 32-bit draws exactly like Uint32N, n == 2^32 uses one plain 32-bit draw and
// larger n use 64-bit draws with the same rejection scheme.
func Uint64N(src Source, n uint64) uint64 {
	switch {
	case n <= 1:
		return 0
	case n <= math.MaxUint32:
		return uint64(Uint32N(src, uint32(n)))
	case n == 1<<32:
		return uint64(src.Uint32())
	}
	hi, lo := bits.Mul64(src.Uint64(), n)
	if lo < n {
		thresh := -n % n
		for lo < thresh {
			hi, lo = bits.Mul64(src.Uint64(), n)
		}
	}
	return hi
}

// indexN returns a uniform index in [0,n). n must be positive.
func indexN(src Source, n int) int {
	return int(Uint64N(src, uint64(n)))
}

// spanN draws from [0,span), where span 0 stands for the full 2^64 domain.
func spanN(src Source, span uint64) uint64 {
	if span == 0 {
		return src.Uint64()
	}
	return Uint64N(src, span)
}

// Range returns a uniformly distributed value in [low,high).
// It fails with ErrEmptyRange if low == high and with ErrInvertedRange if low > high.
// Use NewUniformInt when sampling the same range repeatedly.
func Range[T constraints.Integer](src Source, low, high T) (T, error) {
	if err := checkHalfOpen(low, high); err != nil {
		return low, err
	}
	return low + T(Uint64N(src, uint64(high)-uint64(low))), nil
}

// RangeInclusive returns a uniformly distributed value in [low,high].
// low == high returns low without drawing; low > high fails with ErrInvertedRange.
func RangeInclusive[T constraints.Integer](src Source, low, high T) (T, error) {
	if low > high {
		return low, errors.Wrapf(ErrInvertedRange, "range [%v, %v]", low, high)
	}
	return low + T(spanN(src, uint64(high)-uint64(low)+1)), nil
}

func checkHalfOpen[T constraints.Integer](low, high T) error {
	if low == high {
		return errors.Wrapf(ErrEmptyRange, "range [%v, %v)", low, high)
	}
	if low > high {
		return errors.Wrapf(ErrInvertedRange, "range [%v, %v)", low, high)
	}
	return nil
}

// UniformInt samples integers uniformly from a fixed range. The rejection threshold
// is computed once in the constructor, so repeated sampling costs one widening
// multiply and one comparison per value in the common case.
// It produces exactly the same values from the same draws as Range, Uint32N and Uint64N.
// UniformInt is immutable and may be shared between goroutines (the Source may not).
type UniformInt[T constraints.Integer] struct {
	low    T
	span   uint64 // number of values in the range, 0 means 2^64
	thresh uint64 // draws whose low product half is below thresh are rejected
}

// NewUniformInt prepares sampling from [low,high).
func NewUniformInt[T constraints.Integer](low, high T) (UniformInt[T], error) {
	if err := checkHalfOpen(low, high); err != nil {
		return UniformInt[T]{}, err
	}
	return newUniformInt(low, uint64(high)-uint64(low)), nil
}

// NewUniformIntInclusive prepares sampling from [low,high]. The full domain of
// a 64-bit type is allowed.
func NewUniformIntInclusive[T constraints.Integer](low, high T) (UniformInt[T], error) {
	if low > high {
		return UniformInt[T]{}, errors.Wrapf(ErrInvertedRange, "range [%v, %v]", low, high)
	}
	return newUniformInt(low, uint64(high)-uint64(low)+1), nil
}

func newUniformInt[T constraints.Integer](low T, span uint64) UniformInt[T] {
	u := UniformInt[T]{low: low, span: span}
	switch {
	case span <= 1 || span == 1<<32:
		// no rejection
	case span < 1<<32:
		s := uint32(span)
		u.thresh = uint64(-s % s)
	default:
		u.thresh = -span % span
	}
	return u
}

// Sample draws one value.
func (u UniformInt[T]) Sample(src Source) T {
	return u.low + T(u.offset(src))
}

func (u UniformInt[T]) offset(src Source) uint64 {
	switch {
	case u.span == 1:
		return 0
	case u.span == 0:
		return src.Uint64()
	case u.span == 1<<32:
		return uint64(src.Uint32())
	case u.span < 1<<32:
		n, t := uint32(u.span), uint32(u.thresh)
		// t = 2^32 mod n < 2^31, so a round is accepted with probability above 1/2
		for {
			hi, lo := bits.Mul32(src.Uint32(), n)
			if lo >= t {
				return uint64(hi)
			}
		}
	default:
		// thresh = 2^64 mod span < 2^63
		for {
			hi, lo := bits.Mul64(src.Uint64(), u.span)
			if lo >= u.thresh {
				return hi
			}
		}
	}
}

// Low returns the smallest value of the range.
func (u UniformInt[T]) Low() T {
	return u.low
}

// Size returns the number of values in the range; 0 stands for 2^64.
func (u UniformInt[T]) Size() uint64 {
	return u.span
}

// RejectionProbability returns the probability that a single draw is discarded.
// It is always below 0.5.
func (u UniformInt[T]) RejectionProbability() float64 {
	switch {
	case u.thresh == 0:
		return 0
	case u.span < 1<<32:
		return float64(u.thresh) / (1 << 32)
	default:
		return float64(u.thresh) / (1 << 64)
	}
}
