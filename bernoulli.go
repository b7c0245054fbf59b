package rtrand

import (
	"math/bits"

	"github.com/pkg/errors"
)

// Bernoulli yields true with a fixed probability p.
// p is stored as a 64-bit fixed-point threshold, so the probability is exact to
// within 2^-64 and one sample costs one Uint64 draw and one comparison.
// For p == 1 no draw is made.
type Bernoulli struct {
	threshold uint64
	always    bool
}

// NewBernoulli fails with ErrInvalidProbability unless 0 <= p <= 1.
func NewBernoulli(p float64) (Bernoulli, error) {
	if !(p >= 0 && p <= 1) {
		return Bernoulli{}, errors.Wrapf(ErrInvalidProbability, "p=%v", p)
	}
	if p == 1 {
		return Bernoulli{always: true}, nil
	}
	return Bernoulli{threshold: uint64(p * (1 << 64))}, nil
}

// NewBernoulliRatio yields true with probability num/den, computed exactly in integer arithmetic.
func NewBernoulliRatio(num, den uint64) (Bernoulli, error) {
	if den == 0 || num > den {
		return Bernoulli{}, errors.Wrapf(ErrInvalidProbability, "ratio %d/%d", num, den)
	}
	if num == den {
		return Bernoulli{always: true}, nil
	}
	q, _ := bits.Div64(num, 0, den)
	return Bernoulli{threshold: q}, nil
}

// Sample returns true if one Uint64 draw is below the threshold. p == 1 never draws.
func (b Bernoulli) Sample(src Source) bool {
	if b.always {
		return true
	}
	return src.Uint64() < b.threshold
}

// P returns the effective probability of true.
func (b Bernoulli) P() float64 {
	if b.always {
		return 1
	}
	return float64(b.threshold) / (1 << 64)
}
