package rtrand

import (
	"fmt"

	"github.com/pkg/errors"
)

// Contract violations. They are always returned before the first value is drawn
// from a Source, wrapped with the offending arguments. Use errors.Is to test for them.
var (
	ErrEmptyRange          = errors.New("empty range")
	ErrInvertedRange       = errors.New("lower bound exceeds upper bound")
	ErrNonFinite           = errors.New("bound is not finite")
	ErrEmpty               = errors.New("empty input")
	ErrTooMany             = errors.New("sample size exceeds population")
	ErrNegativeCount       = errors.New("negative count")
	ErrInvalidWeight       = errors.New("weight is negative or not finite")
	ErrInvalidWeights      = errors.New("total weight is not positive")
	ErrWeightOverflow      = errors.New("total weight overflows")
	ErrInsufficientNonZero = errors.New("too few items with non-zero weight")
	ErrInvalidProbability  = errors.New("probability outside [0, 1]")
	ErrIndexOutOfRange     = errors.New("index out of range")
)

// ErrorKind classifies the failure of a fallible source.
type ErrorKind int

const (
	// KindUnavailable means the source cannot produce output at all, e.g. the OS offers no entropy.
	KindUnavailable ErrorKind = iota
	// KindTransient means the failure is temporary; retrying immediately may succeed.
	KindTransient
	// KindNotReady means the source is not yet initialized; retrying later may succeed.
	KindNotReady
	// KindOther covers everything else.
	KindOther
)

func (k ErrorKind) String() string {
	switch k {
	case KindUnavailable:
		return "unavailable"
	case KindTransient:
		return "transient"
	case KindNotReady:
		return "not ready"
	default:
		return "other"
	}
}

// ShouldRetry reports whether an immediate retry may succeed.
func (k ErrorKind) ShouldRetry() bool {
	return k == KindTransient
}

// ShouldWait reports whether a retry after some delay may succeed.
func (k ErrorKind) ShouldWait() bool {
	return k == KindNotReady
}

// SourceError is returned by fallible sources (see TrySource). The sampling
// functions of this package never retry on it.
type SourceError struct {
	Kind  ErrorKind
	Msg   string
	Cause error
}

func (e *SourceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("source %s: %s: %v", e.Kind, e.Msg, e.Cause)
	}
	return fmt.Sprintf("source %s: %s", e.Kind, e.Msg)
}

func (e *SourceError) Unwrap() error {
	return e.Cause
}
