package rtrand

import (
	"math/rand/v2"
)

// DPRNG is a Deterministic Pseudo-Random Number Generator based on the xorshift* algorithm
// (see https://en.wikipedia.org/wiki/Xorshift#xorshift*).
// This random number generator is deterministic in the sequence of numbers it generates. It has a period of 2^64-1,
// i.e. every single number occurs every 2^64-1 calls and has the same successor and the same predecessor.
// This random number generator is deterministic in its runtime (i.e. it has a constant runtime).
// This random number generator is not cryptographically secure.
// This random number generator is not thread-safe. Wrap it with Locked to share it.
// This random number generator has a very small memory footprint (16 bytes).
// The state must never be zero.
type DPRNG struct {
	State uint64
	Round uint64 // number of 64-bit steps taken, for debugging and for counting draws in tests
}

// NewDPRNG creates a DPRNG. Without a seed, or with a zero seed, the state is
// initialized from the runtime's random seed. The first non-zero seed is used as
// initial state otherwise.
func NewDPRNG(seed ...uint64) *DPRNG {
	var s uint64
	if len(seed) > 0 {
		s = seed[0]
	}
	for s == 0 {
		s = rand.Uint64()
	}
	return &DPRNG{State: s}
}

// NewDPRNGFrom seeds a new DPRNG with draws from src.
func NewDPRNGFrom(src Source) *DPRNG {
	s := src.Uint64()
	for s == 0 {
		s = src.Uint64()
	}
	return &DPRNG{State: s}
}

// Uint64 returns the next pseudo-random number in the sequence.
// It has a deterministic (i.e. constant) runtime and a high probability to be inlined by the compiler.
func (thisState *DPRNG) Uint64() uint64 {
	x := thisState.State
	x ^= x >> 12
	x ^= x << 25
	x ^= x >> 27
	thisState.State = x
	thisState.Round++
	return x * 0x2545F4914F6CDD1D
}

// Uint32 returns the high half of the next 64-bit output. The low bits of
// xorshift* are its weakest ones.
func (thisState *DPRNG) Uint32() uint32 {
	return uint32(thisState.Uint64() >> 32)
}

// Fill fills p with little-endian 64-bit outputs.
func (thisState *DPRNG) Fill(p []byte) {
	FillViaUint64(thisState, p)
}

// UInt32N returns a uniformly distributed value in [0,n). See Uint32N.
func (thisState *DPRNG) UInt32N(n uint32) uint32 {
	return Uint32N(thisState, n)
}

// Float64 returns a uniformly distributed float64 in [0.0, 1.0). See Float64.
func (thisState *DPRNG) Float64() float64 {
	return Float64(thisState)
}

// Clone returns an independent copy that continues the same sequence.
func (thisState *DPRNG) Clone() Source {
	c := *thisState
	return &c
}
