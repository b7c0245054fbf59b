package rtrand

import (
	"go.uber.org/zap"
)

// DefaultReseedThreshold is the number of bytes a secure source produces before reseeding.
const DefaultReseedThreshold = 64 * 1024

// ReseedingSource wraps a generator and replaces it with a freshly seeded one after
// it has produced a given number of bytes. The replacement comes from a seed function,
// typically keying a new generator from operating system entropy.
//
// If an automatic reseed fails the failure is logged and the old generator keeps
// running for another threshold of bytes. Reseed forces a reseed and returns the error.
// ReseedingSource is not thread-safe; wrap it with Locked to share it.
type ReseedingSource struct {
	inner     Source
	seed      func() (Source, error)
	threshold int64
	remaining int64
	logger    *zap.Logger
}

// ReseedingOption configures a ReseedingSource.
type ReseedingOption func(*ReseedingSource)

// WithLogger sets the logger for reseed events. The default is a no-op logger.
func WithLogger(l *zap.Logger) ReseedingOption {
	return func(r *ReseedingSource) {
		r.logger = l
	}
}

// NewReseedingSource creates the first generator with seed and reseeds after every
// threshold bytes. A threshold of zero or less disables automatic reseeding.
// The error of the initial seed is returned unchanged.
func NewReseedingSource(threshold int64, seed func() (Source, error), opts ...ReseedingOption) (*ReseedingSource, error) {
	r := &ReseedingSource{
		seed:      seed,
		threshold: threshold,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	inner, err := seed()
	if err != nil {
		return nil, err
	}
	r.inner = inner
	r.remaining = threshold
	return r, nil
}

// NewSecureSource returns a ChaCha20 generator keyed from operating system entropy
// and rekeyed every DefaultReseedThreshold bytes.
func NewSecureSource(opts ...ReseedingOption) (*ReseedingSource, error) {
	return NewReseedingSource(DefaultReseedThreshold, func() (Source, error) {
		var key [32]byte
		if err := ReadEntropy(key[:]); err != nil {
			return nil, err
		}
		return NewChaCha20(key), nil
	}, opts...)
}

// Reseed replaces the generator now. On error the old generator is kept.
func (r *ReseedingSource) Reseed() error {
	inner, err := r.seed()
	if err != nil {
		return err
	}
	r.inner = inner
	r.remaining = r.threshold
	r.logger.Debug("reseeded source", zap.Int64("threshold", r.threshold))
	return nil
}

func (r *ReseedingSource) consume(n int) {
	if r.threshold <= 0 {
		return
	}
	if r.remaining <= 0 {
		if err := r.Reseed(); err != nil {
			r.logger.Warn("reseeding failed, continuing with current generator", zap.Error(err))
			r.remaining = r.threshold
		}
	}
	r.remaining -= int64(n)
}

// Uint32 charges 4 bytes against the threshold.
func (r *ReseedingSource) Uint32() uint32 {
	r.consume(4)
	return r.inner.Uint32()
}

// Uint64 charges 8 bytes against the threshold.
func (r *ReseedingSource) Uint64() uint64 {
	r.consume(8)
	return r.inner.Uint64()
}

// Fill charges len(p) bytes against the threshold.
func (r *ReseedingSource) Fill(p []byte) {
	r.consume(len(p))
	r.inner.Fill(p)
}

// TryFill is Fill, returning the error of a fallible inner generator.
func (r *ReseedingSource) TryFill(p []byte) error {
	r.consume(len(p))
	return TryFill(r.inner, p)
}

// Remaining returns the number of bytes left before the next automatic reseed.
func (r *ReseedingSource) Remaining() int64 {
	return r.remaining
}
