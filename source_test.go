package rtrand

import (
	"io"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type only64 struct{ v uint64 }

func (o *only64) Uint64() uint64 { o.v++; return o.v }

type only32 struct{ v uint32 }

func (o *only32) Uint32() uint32 { o.v++; return o.v }

type countingFiller struct{ next byte }

func (f *countingFiller) Fill(p []byte) {
	for i := range p {
		p[i] = f.next
		f.next++
	}
}

type failingSource struct {
	StepSource
	err error
}

func (f *failingSource) TryFill(p []byte) error { return f.err }

func TestFromUint64(t *testing.T) {
	src := FromUint64(&only64{v: 0xAAAA_BBBB_0000_0000})
	assert.Equal(t, uint32(1), src.Uint32(), "Uint32 is the low half")
	assert.Equal(t, uint64(0xAAAA_BBBB_0000_0002), src.Uint64())

	p := make([]byte, 10)
	src.Fill(p)
	assert.Equal(t, []byte{0x03, 0, 0, 0, 0xBB, 0xBB, 0xAA, 0xAA, 0x04, 0}, p)

	dprng := NewDPRNG(1)
	assert.Same(t, dprng, FromUint64(dprng).(*DPRNG))
}

func TestFromUint32(t *testing.T) {
	src := FromUint32(&only32{})
	assert.Equal(t, uint32(1), src.Uint32())
	assert.Equal(t, uint64(3)<<32|2, src.Uint64(), "first draw is the low half")

	p := make([]byte, 6)
	src.Fill(p)
	assert.Equal(t, []byte{4, 0, 0, 0, 5, 0}, p)
}

func TestFromFiller(t *testing.T) {
	src := FromFiller(&countingFiller{})
	assert.Equal(t, uint32(0x03020100), src.Uint32())
	assert.Equal(t, uint64(0x0B0A090807060504), src.Uint64())
	p := make([]byte, 3)
	src.Fill(p)
	assert.Equal(t, []byte{12, 13, 14}, p)
	require.NoError(t, TryFill(src, p))
}

func TestFillViaUint64_Empty(t *testing.T) {
	s := NewStepSource(1, 1)
	FillViaUint64(s, nil)
	FillViaUint32(s, []byte{})
	assert.Equal(t, 0, s.Draws)
}

func TestTryFill_PropagatesSourceError(t *testing.T) {
	cause := errors.New("device gone")
	src := &failingSource{err: &SourceError{Kind: KindUnavailable, Msg: "test", Cause: cause}}

	err := TryFill(src, make([]byte, 8))
	var se *SourceError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, KindUnavailable, se.Kind)
	assert.True(t, errors.Is(err, cause))

	_, err = NewReader(src).Read(make([]byte, 8))
	assert.ErrorIs(t, err, cause)

	_, err = NewChaCha20From(src)
	assert.ErrorIs(t, err, cause)
}

func TestTryFill_InfallibleSource(t *testing.T) {
	s := NewStepSource(0x0807060504030201, 0)
	p := make([]byte, 8)
	require.NoError(t, TryFill(s, p))
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6, 7, 8}, p)
}

func TestNewReader(t *testing.T) {
	r := NewReader(NewDPRNG(3))
	p := make([]byte, 100)
	n, err := io.ReadFull(r, p)
	require.NoError(t, err)
	assert.Equal(t, 100, n)

	q := make([]byte, 100)
	NewDPRNG(3).Fill(q)
	assert.Equal(t, q, p)
}

func TestLocked(t *testing.T) {
	src := Locked(NewStepSource(0, 1))
	var wg sync.WaitGroup
	const workers, draws = 8, 10_000
	results := make([][]uint64, workers)
	for w := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range draws {
				results[w] = append(results[w], src.Uint64())
			}
		}()
	}
	wg.Wait()

	seen := make(map[uint64]bool, workers*draws)
	for _, r := range results {
		for _, v := range r {
			require.False(t, seen[v], "value %d drawn twice", v)
			seen[v] = true
		}
	}
	assert.Len(t, seen, workers*draws)
	require.NoError(t, src.TryFill(make([]byte, 3)))
}

func TestSourceError(t *testing.T) {
	err := &SourceError{Kind: KindNotReady, Msg: "getrandom"}
	assert.Equal(t, "source not ready: getrandom", err.Error())
	assert.True(t, err.Kind.ShouldWait())
	assert.False(t, err.Kind.ShouldRetry())
	assert.True(t, KindTransient.ShouldRetry())
	assert.Equal(t, "other", KindOther.String())

	wrapped := &SourceError{Kind: KindUnavailable, Msg: "read", Cause: io.ErrUnexpectedEOF}
	assert.Equal(t, "source unavailable: read: unexpected EOF", wrapped.Error())
	assert.ErrorIs(t, wrapped, io.ErrUnexpectedEOF)
}

func TestSourcesSatisfyInterfaces(t *testing.T) {
	var _ Source = (*DPRNG)(nil)
	var _ Source = (*CPRNG)(nil)
	var _ TrySource = (*CPRNG)(nil)
	var _ Source = (*Pcg32)(nil)
	var _ Source = (*ChaCha20)(nil)
	var _ Source = (*ChaCha8)(nil)
	var _ Source = (*MT19937)(nil)
	var _ Source = (*Xoshiro256)(nil)
	var _ Source = (*StepSource)(nil)
	var _ Source = (*ReseedingSource)(nil)
	var _ TrySource = (*ReseedingSource)(nil)
	var _ Source = (*LockedSource)(nil)
	var _ Cloner = (*DPRNG)(nil)
	var _ Cloner = (*Pcg32)(nil)
	var _ Cloner = (*MT19937)(nil)
	var _ Cloner = (*Xoshiro256)(nil)
	var _ Cloner = (*StepSource)(nil)
}
