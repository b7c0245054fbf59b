package rtrand

import (
	"encoding/binary"
	"io"
	"sync"
)

// Source is the capability every random bit generator provides to this package.
// All sampling functions borrow a Source for the duration of a call and never
// retain, copy or inspect it.
//
// A generator usually implements only its native word size and gets the rest
// from one of the adapters FromUint64, FromUint32 or FromFiller.
// Every Source also satisfies math/rand/v2's rand.Source, so it can drive
// distributions from other packages (e.g. gonum's distuv).
//
// No method may fail. Sources that can run out of entropy additionally implement TrySource.
//
// Rejection sampling (Uint32N, Uint64N, UniformInt, Rune, Alphanumeric) draws until
// a value is accepted. Each draw is rejected with probability below 1/2, so for a
// random source the expected number of draws is below 2. A constant or otherwise
// degenerate source that keeps returning a rejected value never terminates.
type Source interface {
	Uint32() uint32
	Uint64() uint64
	Fill(p []byte)
}

// Uint64Source is a generator with a native 64-bit output.
type Uint64Source interface {
	Uint64() uint64
}

// Uint32Source is a generator with a native 32-bit output.
type Uint32Source interface {
	Uint32() uint32
}

// Filler is a generator with a native byte-stream output.
type Filler interface {
	Fill(p []byte)
}

// TrySource is the fallible variant of Fill. It returns a *SourceError instead of panicking.
type TrySource interface {
	TryFill(p []byte) error
}

// Cloner is implemented by sources whose complete state can be copied in memory.
// The clone continues the exact same stream as the original.
type Cloner interface {
	Clone() Source
}

// TryFill fills p from src. If src implements TrySource its error is returned unchanged,
// otherwise the infallible Fill is used and the result is always nil.
func TryFill(src Source, p []byte) error {
	if t, ok := src.(TrySource); ok {
		return t.TryFill(p)
	}
	src.Fill(p)
	return nil
}

// FillViaUint64 fills p with little-endian 64-bit words drawn from g.
// A trailing partial word consumes one full draw and uses its low bytes.
func FillViaUint64(g Uint64Source, p []byte) {
	for len(p) >= 8 {
		binary.LittleEndian.PutUint64(p, g.Uint64())
		p = p[8:]
	}
	if len(p) > 0 {
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], g.Uint64())
		copy(p, b[:])
	}
}

// FillViaUint32 fills p with little-endian 32-bit words drawn from g.
func FillViaUint32(g Uint32Source, p []byte) {
	for len(p) >= 4 {
		binary.LittleEndian.PutUint32(p, g.Uint32())
		p = p[4:]
	}
	if len(p) > 0 {
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], g.Uint32())
		copy(p, b[:])
	}
}

// FromUint64 turns a 64-bit generator into a Source.
// Uint32 returns the low half of one 64-bit draw.
// If g already is a Source it is returned as is.
func FromUint64(g Uint64Source) Source {
	if s, ok := g.(Source); ok {
		return s
	}
	return &uint64Adapter{g: g}
}

type uint64Adapter struct {
	g Uint64Source
}

func (a *uint64Adapter) Uint32() uint32 { return uint32(a.g.Uint64()) }
func (a *uint64Adapter) Uint64() uint64 { return a.g.Uint64() }
func (a *uint64Adapter) Fill(p []byte)  { FillViaUint64(a.g, p) }

// FromUint32 turns a 32-bit generator into a Source.
// Uint64 consumes two draws, the first one becomes the low half.
// If g already is a Source it is returned as is.
func FromUint32(g Uint32Source) Source {
	if s, ok := g.(Source); ok {
		return s
	}
	return &uint32Adapter{g: g}
}

type uint32Adapter struct {
	g Uint32Source
}

func (a *uint32Adapter) Uint32() uint32 { return a.g.Uint32() }
func (a *uint32Adapter) Uint64() uint64 { return uint64FromUint32s(a.g) }
func (a *uint32Adapter) Fill(p []byte)  { FillViaUint32(a.g, p) }

func uint64FromUint32s(g Uint32Source) uint64 {
	lo := uint64(g.Uint32())
	hi := uint64(g.Uint32())
	return hi<<32 | lo
}

// FromFiller turns a byte-stream generator into a Source.
// Words are read as little-endian byte sequences.
// If f already is a Source it is returned as is.
func FromFiller(f Filler) Source {
	if s, ok := f.(Source); ok {
		return s
	}
	return &fillerAdapter{f: f}
}

type fillerAdapter struct {
	f Filler
}

func (a *fillerAdapter) Uint32() uint32 {
	var b [4]byte
	a.f.Fill(b[:])
	return binary.LittleEndian.Uint32(b[:])
}

func (a *fillerAdapter) Uint64() uint64 {
	var b [8]byte
	a.f.Fill(b[:])
	return binary.LittleEndian.Uint64(b[:])
}

func (a *fillerAdapter) Fill(p []byte) { a.f.Fill(p) }

func (a *fillerAdapter) TryFill(p []byte) error {
	if t, ok := a.f.(TrySource); ok {
		return t.TryFill(p)
	}
	a.f.Fill(p)
	return nil
}

// LockedSource serializes access to a Source so it can be shared between goroutines.
type LockedSource struct {
	mu  sync.Mutex
	src Source
}

// Locked wraps src with a mutex. Sources in this package are not safe for
// concurrent use unless wrapped.
func Locked(src Source) *LockedSource {
	return &LockedSource{src: src}
}

// Uint32 draws from the wrapped source under the lock.
func (l *LockedSource) Uint32() uint32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.Uint32()
}

// Uint64 draws from the wrapped source under the lock.
func (l *LockedSource) Uint64() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.Uint64()
}

// Fill fills p from the wrapped source under the lock.
func (l *LockedSource) Fill(p []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.src.Fill(p)
}

// TryFill is Fill for fallible sources. See TryFill.
func (l *LockedSource) TryFill(p []byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return TryFill(l.src, p)
}

// NewReader returns an io.Reader over the byte stream of src.
// Read fills the whole buffer. It only returns an error if src is fallible and fails.
func NewReader(src Source) io.Reader {
	return sourceReader{src: src}
}

type sourceReader struct {
	src Source
}

func (r sourceReader) Read(p []byte) (int, error) {
	if err := TryFill(r.src, p); err != nil {
		return 0, err
	}
	return len(p), nil
}
