package rtrand

import (
	"encoding/binary"

	cc "github.com/nixberg/chacha-rng-go"
	"golang.org/x/crypto/chacha20"
	"gonum.org/v1/gonum/mathext/prng"
)

// ChaCha20 is a cryptographically secure generator producing the ChaCha20 keystream
// for a 32-byte key and an all-zero nonce. Its native output is the byte stream;
// words are read as little-endian bytes of that stream.
// The stream is limited to 256 GiB (2^32 blocks); the cipher panics beyond that.
// Use it behind a ReseedingSource for unbounded output.
type ChaCha20 struct {
	c *chacha20.Cipher
}

// NewChaCha20 creates a generator keyed with seed.
func NewChaCha20(seed [32]byte) *ChaCha20 {
	var nonce [chacha20.NonceSize]byte
	c, err := chacha20.NewUnauthenticatedCipher(seed[:], nonce[:])
	if err != nil {
		// key and nonce sizes are fixed by the types above
		panic(err)
	}
	return &ChaCha20{c: c}
}

// NewChaCha20From keys a new generator with 32 bytes drawn from src.
// It returns the error of a fallible src unchanged.
func NewChaCha20From(src Source) (*ChaCha20, error) {
	var seed [32]byte
	if err := TryFill(src, seed[:]); err != nil {
		return nil, err
	}
	return NewChaCha20(seed), nil
}

// ChaCha20FromUint64 expands a 64-bit seed into a key with SplitMix64.
// Convenient for reproducible tests; the key space is limited to 2^64.
func ChaCha20FromUint64(seed uint64) *ChaCha20 {
	var key [32]byte
	FillViaUint64(prng.NewSplitMix64(seed), key[:])
	return NewChaCha20(key)
}

// Fill overwrites p with the next len(p) bytes of the keystream.
func (c *ChaCha20) Fill(p []byte) {
	clear(p)
	c.c.XORKeyStream(p, p)
}

// Uint32 reads the next 4 keystream bytes as a little-endian word.
func (c *ChaCha20) Uint32() uint32 {
	var b [4]byte
	c.Fill(b[:])
	return binary.LittleEndian.Uint32(b[:])
}

// Uint64 reads the next 8 keystream bytes as a little-endian word.
func (c *ChaCha20) Uint64() uint64 {
	var b [8]byte
	c.Fill(b[:])
	return binary.LittleEndian.Uint64(b[:])
}

// ChaCha8 is a fast generator based on the 8-round ChaCha block function.
// Its native output is Uint64; Uint32 is the low half of one draw.
// It is not meant for cryptographic keys.
type ChaCha8 struct {
	s *cc.ChaCha
}

// NewChaCha8 creates a generator keyed with seed, read as eight little-endian words.
func NewChaCha8(seed [32]byte) *ChaCha8 {
	var key [8]uint32
	for i := range key {
		key[i] = binary.LittleEndian.Uint32(seed[4*i:])
	}
	return &ChaCha8{s: cc.Seeded8(key, 0)}
}

// Uint64 returns the next native output.
func (c *ChaCha8) Uint64() uint64 {
	return c.s.Uint64()
}

// Uint32 returns the low half of one Uint64.
func (c *ChaCha8) Uint32() uint32 {
	return uint32(c.s.Uint64())
}

// Fill fills p with little-endian Uint64 outputs.
func (c *ChaCha8) Fill(p []byte) {
	FillViaUint64(c, p)
}
