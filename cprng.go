package rtrand

import (
	"encoding/binary"
)

// CPRNG is a cryptographically secure random number generator ("CryptographicPrecisionRNG")
// that reads random bytes from the operating system in batches to reduce the number of OS calls.
// This improves performance while maintaining security.
// This RNG is thread-safe as long as each goroutine uses its own instance.
// The memory footprint can be adjusted by changing the capBytes parameter in NewCPRNG.
//
// CPRNG is both a Source and a TrySource: Uint32, Uint64 and Fill panic if the
// operating system cannot deliver entropy, TryFill returns a *SourceError instead.
type CPRNG struct {
	bufPos uint32
	buf    []byte
}

// NewCPRNG creates a new CPRNG with a buffer capacity of capBytes.
// The buffer is filled with random bytes upon creation and refilled as needed.
// A larger buffer reduces the number of operating system calls, improving performance.
// A smaller buffer reduces memory usage.
// This random number generator is not deterministic in the sequence of numbers it generates.
// This random number generator is not deterministic in its runtime (it periodically refills its buffer, an OS call).
// This random number generator is cryptographically secure (relying on ReadEntropy).
// This random number generator is thread-safe as long as each goroutine uses its own instance.
// This random number generator has a varying memory footprint (usually a few kilobytes).
func NewCPRNG(capBytes uint32) *CPRNG {
	c, err := TryNewCPRNG(capBytes)
	if err != nil {
		panic(err)
	}
	return c
}

// TryNewCPRNG is NewCPRNG returning the entropy error instead of panicking.
func TryNewCPRNG(capBytes uint32) (*CPRNG, error) {
	if capBytes < 8 {
		capBytes = 8 // minimum buffer size to hold at least one uint64
	}
	c := &CPRNG{buf: make([]byte, capBytes)}
	if err := ReadEntropy(c.buf); err != nil {
		return nil, err
	}
	return c, nil
}

// ensure that n bytes are available, otherwise refill the buffer
func (c *CPRNG) ensure(n int) error {
	if c.bufPos+uint32(n) > uint32(len(c.buf)) {
		if err := ReadEntropy(c.buf); err != nil {
			return err
		}
		c.bufPos = 0
	}
	return nil
}

func (c *CPRNG) mustEnsure(n int) {
	if err := c.ensure(n); err != nil {
		panic(err)
	}
}

// Uint64 returns a uniformly distributed uint64.
func (c *CPRNG) Uint64() uint64 {
	c.mustEnsure(8)
	v := binary.LittleEndian.Uint64(c.buf[c.bufPos : c.bufPos+8])
	c.bufPos += 8
	return v
}

// Uint32 returns a uniformly distributed uint32.
func (c *CPRNG) Uint32() uint32 {
	c.mustEnsure(4)
	v := binary.LittleEndian.Uint32(c.buf[c.bufPos : c.bufPos+4])
	c.bufPos += 4
	return v
}

// Fill fills p with random bytes. It panics if the operating system fails to deliver entropy.
func (c *CPRNG) Fill(p []byte) {
	if err := c.TryFill(p); err != nil {
		panic(err)
	}
}

// TryFill fills p with random bytes. Requests larger than the buffer bypass it.
// On error the content of p is unspecified.
func (c *CPRNG) TryFill(p []byte) error {
	if len(p) > len(c.buf) {
		return ReadEntropy(p)
	}
	for len(p) > 0 {
		if c.bufPos == uint32(len(c.buf)) {
			if err := c.ensure(1); err != nil {
				return err
			}
		}
		n := copy(p, c.buf[c.bufPos:])
		c.bufPos += uint32(n)
		p = p[n:]
	}
	return nil
}

// Float64 returns a uniformly distributed float64 in [0.0, 1.0). See Float64.
func (c *CPRNG) Float64() float64 {
	return Float64(c)
}

// Float32 returns a uniformly distributed float32 in [0.0, 1.0). See Float32.
func (c *CPRNG) Float32() float32 {
	return Float32(c)
}

// Uint32N returns a uniformly distributed value in [0,n). See Uint32N.
func (c *CPRNG) Uint32N(n uint32) uint32 {
	return Uint32N(c, n)
}
