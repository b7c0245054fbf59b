package rtrand

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUint32N_Rejection(t *testing.T) {
	// 0x80000000*10 has a low half of 0, below 2^32 mod 10 = 6: rejected.
	// 0xC0000000*10 = 7<<32 + 0x80000000: accepted, result 7.
	src := NewStepSource(1<<31, 1<<30)
	assert.Equal(t, uint32(7), Uint32N(src, 10))
	assert.Equal(t, 2, src.Draws)
}

func TestUint32N_NoDrawForTrivialRanges(t *testing.T) {
	src := NewStepSource(1, 1)
	assert.Equal(t, uint32(0), Uint32N(src, 0))
	assert.Equal(t, uint32(0), Uint32N(src, 1))
	assert.Equal(t, uint64(0), Uint64N(src, 0))
	assert.Equal(t, uint64(0), Uint64N(src, 1))
	assert.Equal(t, 0, src.Draws)
}

func TestUint64N_WidthBySize(t *testing.T) {
	// below 2^32 the 32-bit path is used, consuming the low half of each step
	a := NewStepSource(0xFFFF_FFFF_8000_0001, 0)
	assert.Equal(t, uint64(500), Uint64N(a, 1000))

	// 2^32 takes one plain 32-bit draw
	b := NewStepSource(0x1234_5678_9ABC_DEF0, 0)
	assert.Equal(t, uint64(0x9ABC_DEF0), Uint64N(b, 1<<32))

	// above 2^32 the 64-bit path is used
	c := NewStepSource(1<<63, 0)
	assert.Equal(t, uint64(1)<<32, Uint64N(c, 1<<33))
}

func TestRange_ZeroToThree(t *testing.T) {
	rng := NewDPRNG(0xC0FFEE)
	counts := make([]int, 3)
	for range 1_000_000 {
		v, err := Range(rng, 0, 3)
		require.NoError(t, err)
		counts[v]++
	}
	requireUniform(t, counts)
}

func TestRange_Errors(t *testing.T) {
	src := NewStepSource(1, 1)
	_, err := Range(src, 5, 5)
	assert.ErrorIs(t, err, ErrEmptyRange)
	_, err = Range(src, int8(5), int8(-5))
	assert.ErrorIs(t, err, ErrInvertedRange)
	_, err = RangeInclusive(src, uint(5), uint(4))
	assert.ErrorIs(t, err, ErrInvertedRange)
	_, err = NewUniformInt(3, 3)
	assert.ErrorIs(t, err, ErrEmptyRange)
	_, err = NewUniformIntInclusive(3, 2)
	assert.ErrorIs(t, err, ErrInvertedRange)
	assert.Equal(t, 0, src.Draws, "errors must be reported before drawing")
}

func TestRange_SingleElement(t *testing.T) {
	src := NewStepSource(1, 1)
	v, err := Range(src, int16(-7), int16(-6))
	require.NoError(t, err)
	assert.Equal(t, int16(-7), v)
	v, err = RangeInclusive(src, int16(9), int16(9))
	require.NoError(t, err)
	assert.Equal(t, int16(9), v)
	u, err := NewUniformIntInclusive(uint8(200), uint8(200))
	require.NoError(t, err)
	assert.Equal(t, uint8(200), u.Sample(src))
	assert.Equal(t, 0, src.Draws)
}

func TestRangeInclusive_FullDomain(t *testing.T) {
	src := NewStepSource(0xFEDC_BA98_7654_3210, 0)
	v, err := RangeInclusive(src, int64(math.MinInt64), int64(math.MaxInt64))
	require.NoError(t, err)
	assert.Equal(t, int64(0x7EDC_BA98_7654_3210), v)

	u, err := NewUniformIntInclusive(uint64(0), uint64(math.MaxUint64))
	require.NoError(t, err)
	assert.Equal(t, uint64(0), u.Size())
	assert.Equal(t, uint64(0xFEDC_BA98_7654_3210), u.Sample(src))
	assert.Zero(t, u.RejectionProbability())

	// a full 32-bit domain needs no rejection either
	w, err := NewUniformIntInclusive(int32(math.MinInt32), int32(math.MaxInt32))
	require.NoError(t, err)
	assert.Equal(t, uint64(1)<<32, w.Size())
	assert.Zero(t, w.RejectionProbability())
	assert.Equal(t, int32(math.MinInt32)+int32(0x76543210), w.Sample(src))
}

func TestRange_SignedAcrossZero(t *testing.T) {
	rng := NewDPRNG(42)
	counts := make([]int, 256)
	for range 256 * 400 {
		v, err := RangeInclusive(rng, int8(-128), int8(127))
		require.NoError(t, err)
		counts[int(v)+128]++
	}
	requireUniform(t, counts)
}

func TestUniformInt_MatchesOneShotHelpers(t *testing.T) {
	cases := []struct{ low, high int64 }{
		{0, 3},
		{-10, 10},
		{0, 1 << 32},
		{5, 5 + 1<<32 + 1},
		{math.MinInt64 / 2, math.MaxInt64 / 2},
		{-1, 0},
	}
	for _, c := range cases {
		u, err := NewUniformInt(c.low, c.high)
		require.NoError(t, err)
		a, b := NewDPRNG(7), NewDPRNG(7)
		for range 10_000 {
			want, err := Range(b, c.low, c.high)
			require.NoError(t, err)
			require.Equal(t, want, u.Sample(a), "range [%d,%d)", c.low, c.high)
		}
		require.Equal(t, a.Round, b.Round, "same number of draws for [%d,%d)", c.low, c.high)
	}
}

// TestUniformInt_RejectionRate checks the documented bound on the retry probability:
// for sizes just above a power of two it is close to, but below, 1/2.
func TestUniformInt_RejectionRate(t *testing.T) {
	for _, n := range []uint64{3, 1<<31 + 1, 1<<62 + 1, 1000, 1 << 20} {
		u := newUniformInt[uint64](0, n)
		p := u.RejectionProbability()
		require.Less(t, p, 0.5, "n=%d", n)

		rng := NewDPRNG(11)
		const samples = 100_000
		for range samples {
			v := u.Sample(rng)
			require.Less(t, v, n)
		}
		draws := float64(rng.Round)
		observed := 1 - samples/draws
		assert.InDelta(t, p, observed, 0.01, "n=%d", n)
	}
}

func TestUniformInt_Accessors(t *testing.T) {
	u, err := NewUniformInt(-5, 5)
	require.NoError(t, err)
	assert.Equal(t, -5, u.Low())
	assert.Equal(t, uint64(10), u.Size())
}

func TestRange_Properties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500
	properties := gopter.NewProperties(parameters)

	properties.Property("int64 half-open range bounds", prop.ForAll(
		func(a, b int64, seed uint64) bool {
			lo, hi := min(a, b), max(a, b)
			u, err := NewUniformInt(lo, hi)
			if lo == hi {
				return err != nil
			}
			if err != nil {
				return false
			}
			rng := NewDPRNG(seed)
			for range 50 {
				v := u.Sample(rng)
				if v < lo || v >= hi {
					return false
				}
			}
			return true
		},
		gen.Int64(), gen.Int64(), gen.UInt64(),
	))

	properties.Property("uint64 inclusive range bounds", prop.ForAll(
		func(a, b uint64, seed uint64) bool {
			lo, hi := min(a, b), max(a, b)
			rng := NewDPRNG(seed)
			for range 50 {
				v, err := RangeInclusive(rng, lo, hi)
				if err != nil || v < lo || v > hi {
					return false
				}
			}
			return true
		},
		gen.UInt64(), gen.UInt64(), gen.UInt64(),
	))

	properties.Property("int8 small ranges", prop.ForAll(
		func(a, b int8, seed uint64) bool {
			lo, hi := min(a, b), max(a, b)
			if lo == hi {
				return true
			}
			rng := NewDPRNG(seed)
			for range 50 {
				v, err := Range(rng, lo, hi)
				if err != nil || v < lo || v >= hi {
					return false
				}
			}
			return true
		},
		gen.Int8(), gen.Int8(), gen.UInt64(),
	))

	properties.TestingRun(t)
}
