package rtrand

import (
	"math/bits"
)

const pcgMultiplier = 6364136223846793005

// Pcg32 is the PCG XSH RR 64/32 generator (LCG with 64-bit state and 32-bit output),
// see https://www.pcg-random.org. Its native output is Uint32; Uint64 combines two
// outputs, the first one as the low half.
// This random number generator is deterministic and not cryptographically secure.
// It is not thread-safe and has a memory footprint of 16 bytes.
type Pcg32 struct {
	state uint64
	inc   uint64
}

// NewPcg32 creates a generator from an initial state and a stream selector.
// Generators with different streams produce unrelated sequences.
// NewPcg32(42, 54) yields 0xa15c02b7, 0x7b47f409, 0xba1d3330, ...
func NewPcg32(state, stream uint64) *Pcg32 {
	p := &Pcg32{inc: stream<<1 | 1}
	p.state = state + p.inc
	p.step()
	return p
}

// NewPcg32From seeds a new generator with two draws from src.
func NewPcg32From(src Source) *Pcg32 {
	state := src.Uint64()
	return NewPcg32(state, src.Uint64())
}

func (p *Pcg32) step() {
	p.state = p.state*pcgMultiplier + p.inc
}

// Uint32 returns the XSH RR output of the current state and advances one step.
func (p *Pcg32) Uint32() uint32 {
	s := p.state
	p.step()
	xsh := uint32(((s >> 18) ^ s) >> 27)
	return bits.RotateLeft32(xsh, -int(s>>59))
}

// Uint64 combines two Uint32 outputs, the first one in the low half.
func (p *Pcg32) Uint64() uint64 {
	return uint64FromUint32s(p)
}

// Fill fills b with little-endian Uint32 outputs.
func (p *Pcg32) Fill(b []byte) {
	FillViaUint32(p, b)
}

// Clone returns an independent copy that continues the same sequence.
func (p *Pcg32) Clone() Source {
	c := *p
	return &c
}

// Advance jumps delta steps ahead in O(log delta), as if Uint32 had been called delta times.
func (p *Pcg32) Advance(delta uint64) {
	accMult, accPlus := uint64(1), uint64(0)
	curMult, curPlus := uint64(pcgMultiplier), p.inc
	for delta > 0 {
		if delta&1 != 0 {
			accMult *= curMult
			accPlus = accPlus*curMult + curPlus
		}
		curPlus = (curMult + 1) * curPlus
		curMult *= curMult
		delta >>= 1
	}
	p.state = accMult*p.state + accPlus
}
