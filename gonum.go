package rtrand

import (
	"gonum.org/v1/gonum/mathext/prng"
)

// MT19937 is the 32-bit Mersenne Twister of gonum's prng package as a Source.
// Uint64 is gonum's, which places the first 32-bit output in the high half.
type MT19937 struct {
	g *prng.MT19937
}

// NewMT19937 creates a Mersenne Twister seeded with seed.
func NewMT19937(seed uint64) *MT19937 {
	g := prng.NewMT19937()
	g.Seed(seed)
	return &MT19937{g: g}
}

// Uint32 returns the next tempered output.
func (m *MT19937) Uint32() uint32 { return m.g.Uint32() }

// Uint64 combines two outputs, the first one in the high half.
func (m *MT19937) Uint64() uint64 { return m.g.Uint64() }

// Fill fills p with little-endian Uint32 outputs.
func (m *MT19937) Fill(p []byte) { FillViaUint32(m.g, p) }

// Clone copies the generator state through its binary encoding.
func (m *MT19937) Clone() Source {
	c := prng.NewMT19937()
	mustCopyState(m.g, c)
	return &MT19937{g: c}
}

// Xoshiro256 is gonum's xoshiro256** generator as a Source. Uint32 is the low half of one draw.
type Xoshiro256 struct {
	g *prng.Xoshiro256starstar
}

// NewXoshiro256 creates a generator whose state is expanded from seed with SplitMix64.
func NewXoshiro256(seed uint64) *Xoshiro256 {
	return &Xoshiro256{g: prng.NewXoshiro256starstar(seed)}
}

// Uint32 returns the low half of one Uint64.
func (x *Xoshiro256) Uint32() uint32 { return uint32(x.g.Uint64()) }

// Uint64 returns the next native output.
func (x *Xoshiro256) Uint64() uint64 { return x.g.Uint64() }

// Fill fills p with little-endian Uint64 outputs.
func (x *Xoshiro256) Fill(p []byte) { FillViaUint64(x.g, p) }

// Clone copies the generator state through its binary encoding.
func (x *Xoshiro256) Clone() Source {
	c := prng.NewXoshiro256starstar(1)
	mustCopyState(x.g, c)
	return &Xoshiro256{g: c}
}

type binaryState interface {
	MarshalBinary() ([]byte, error)
	UnmarshalBinary(data []byte) error
}

// mustCopyState copies between two generators of the same type; the encoding
// cannot fail for them.
func mustCopyState(from, to binaryState) {
	data, err := from.MarshalBinary()
	if err == nil {
		err = to.UnmarshalBinary(data)
	}
	if err != nil {
		panic(err)
	}
}
