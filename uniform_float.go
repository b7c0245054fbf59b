package rtrand

import (
	"math"
	"unsafe"

	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
)

// Float64 returns a uniformly distributed float64 in [0.0, 1.0).
// This function will never return -0.0.
// This function will never return 1.0.
// This function will never return NaN or Inf.
// It fills the 52 mantissa bits with the high bits of one Uint64 draw under a fixed
// exponent, giving a value in [1,2), and subtracts 1. There is no division and no
// rounding, and all 2^52 results are equally likely.
// See: https://en.wikipedia.org/wiki/Double-precision_floating-point_format
func Float64(src Source) float64 {
	const exp uint64 = 1023
	return math.Float64frombits(exp<<52|src.Uint64()>>12) - 1.0
}

// Float32 returns a uniformly distributed float32 in [0.0, 1.0).
// It uses the high 23 bits of one Uint32 draw for the mantissa. This is the maximum
// randomness that can be represented in a float32 without breaking uniformity.
// If you need more randomness, use Float64 instead.
// See: https://en.wikipedia.org/wiki/Single-precision_floating-point_format
func Float32(src Source) float32 {
	const exp uint32 = 127
	return math.Float32frombits(exp<<23|src.Uint32()>>9) - 1.0
}

// Float64Open returns a uniformly distributed float64 in the open interval (0,1).
// The 2^52 possible results are offset by half a step from those of Float64.
func Float64Open(src Source) float64 {
	const exp uint64 = 1023
	return math.Float64frombits(exp<<52|src.Uint64()>>12) - (1.0 - 0x1p-53)
}

// Float64OpenClosed returns a uniformly distributed float64 in (0,1].
func Float64OpenClosed(src Source) float64 {
	const exp uint64 = 1023
	return 2.0 - math.Float64frombits(exp<<52|src.Uint64()>>12)
}

// Float32Open returns a uniformly distributed float32 in the open interval (0,1).
func Float32Open(src Source) float32 {
	const exp uint32 = 127
	return math.Float32frombits(exp<<23|src.Uint32()>>9) - (1.0 - 0x1p-24)
}

// Float32OpenClosed returns a uniformly distributed float32 in (0,1].
func Float32OpenClosed(src Source) float32 {
	const exp uint32 = 127
	return 2.0 - math.Float32frombits(exp<<23|src.Uint32()>>9)
}

// UniformFloat samples floats from a fixed range. A value is computed as
// u*scale + low with u drawn by Float32 or Float64, so the result is only
// approximately uniform: rounding of the multiplication and addition is accepted.
// The constructor shrinks scale until the largest possible u maps strictly below
// high (half-open) or to at most high (inclusive), so the bounds are always honored.
// It steps down one representable value first and doubles the step on every retry.
//
// Each operation is rounded separately (no fused multiply-add), so results are
// identical on all platforms.
type UniformFloat[T constraints.Float] struct {
	low   T
	scale T
}

// NewUniformFloat prepares sampling from [low,high).
// Both bounds must be finite and low < high; the width high-low must be finite too.
func NewUniformFloat[T constraints.Float](low, high T) (UniformFloat[T], error) {
	if err := checkFloatBounds(low, high); err != nil {
		return UniformFloat[T]{}, err
	}
	if !(low < high) {
		if low == high {
			return UniformFloat[T]{}, errors.Wrapf(ErrEmptyRange, "range [%v, %v)", low, high)
		}
		return UniformFloat[T]{}, errors.Wrapf(ErrInvertedRange, "range [%v, %v)", low, high)
	}
	maxRand := maxUnit[T]()
	scale := T(high - low)
	if math.IsInf(float64(scale), 0) {
		return UniformFloat[T]{}, errors.Wrapf(ErrNonFinite, "width of range [%v, %v)", low, high)
	}
	for step := uint64(1); T(T(scale*maxRand)+low) >= high; step *= 2 {
		scale = decrease(scale, step)
	}
	return UniformFloat[T]{low: low, scale: scale}, nil
}

// NewUniformFloatInclusive prepares sampling from [low,high]. low == high is allowed.
func NewUniformFloatInclusive[T constraints.Float](low, high T) (UniformFloat[T], error) {
	if err := checkFloatBounds(low, high); err != nil {
		return UniformFloat[T]{}, err
	}
	if low > high {
		return UniformFloat[T]{}, errors.Wrapf(ErrInvertedRange, "range [%v, %v]", low, high)
	}
	maxRand := maxUnit[T]()
	scale := T(T(high-low) / maxRand)
	if math.IsInf(float64(scale), 0) {
		return UniformFloat[T]{}, errors.Wrapf(ErrNonFinite, "width of range [%v, %v]", low, high)
	}
	for step := uint64(1); T(T(scale*maxRand)+low) > high; step *= 2 {
		scale = decrease(scale, step)
	}
	return UniformFloat[T]{low: low, scale: scale}, nil
}

// Sample draws one value.
func (u UniformFloat[T]) Sample(src Source) T {
	return T(T(unit[T](src)*u.scale) + u.low)
}

// FloatRange returns an approximately uniform value in [low,high).
// Use NewUniformFloat when sampling the same range repeatedly.
func FloatRange[T constraints.Float](src Source, low, high T) (T, error) {
	u, err := NewUniformFloat(low, high)
	if err != nil {
		return low, err
	}
	return u.Sample(src), nil
}

func checkFloatBounds[T constraints.Float](low, high T) error {
	l, h := float64(low), float64(high)
	if math.IsNaN(l) || math.IsInf(l, 0) || math.IsNaN(h) || math.IsInf(h, 0) {
		return errors.Wrapf(ErrNonFinite, "range [%v, %v]", low, high)
	}
	return nil
}

func is32[T constraints.Float]() bool {
	var zero T
	return unsafe.Sizeof(zero) == 4
}

// unit draws from [0,1) with the precision of T.
func unit[T constraints.Float](src Source) T {
	if is32[T]() {
		return T(Float32(src))
	}
	return T(Float64(src))
}

// maxUnit is the largest value unit can return.
func maxUnit[T constraints.Float]() T {
	if is32[T]() {
		return T(float32(1 - 0x1p-23))
	}
	return T(1 - 0x1p-52)
}

// decrease moves the non-negative x down by ulps representable values, stopping at 0.
func decrease[T constraints.Float](x T, ulps uint64) T {
	if is32[T]() {
		b := math.Float32bits(float32(x))
		if uint64(b) <= ulps {
			return 0
		}
		return T(math.Float32frombits(b - uint32(ulps)))
	}
	b := math.Float64bits(float64(x))
	if b <= ulps {
		return 0
	}
	return T(math.Float64frombits(b - ulps))
}
