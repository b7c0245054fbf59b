package rtrand

import (
	"github.com/pkg/errors"
)

// Shuffle permutes s in place with the Fisher-Yates algorithm: from the last index
// down to 1, swap element i with an element drawn uniformly from [0,i].
// Each of the n! permutations is equally likely. It makes exactly len(s)-1 index draws.
func Shuffle[S ~[]E, E any](src Source, s S) {
	for i := len(s) - 1; i > 0; i-- {
		j := indexN(src, i+1)
		s[i], s[j] = s[j], s[i]
	}
}

// ShuffleFunc shuffles a sequence of length n that is only accessible through swap,
// drawing indices exactly like Shuffle. A negative n fails with ErrNegativeCount.
func ShuffleFunc(src Source, n int, swap func(i, j int)) error {
	if n < 0 {
		return errors.Wrapf(ErrNegativeCount, "n=%d", n)
	}
	for i := n - 1; i > 0; i-- {
		swap(i, indexN(src, i+1))
	}
	return nil
}

// PartialShuffle moves a uniformly chosen random k-subset of s, in random order,
// to the front of s and returns it as chosen. rest holds the remaining elements in
// unspecified order. Both share the backing array of s.
// Only k positions are visited.
//
// PartialShuffle never fails: k is clamped to [0, len(s)], so a k larger than len(s)
// shuffles all of s and a negative k returns an empty chosen. ChooseMultiple and
// SampleIndices report the same inputs as ErrTooMany and ErrNegativeCount.
func PartialShuffle[S ~[]E, E any](src Source, s S, k int) (chosen, rest S) {
	n := len(s)
	k = min(max(k, 0), n)
	for i := range k {
		j := i + indexN(src, n-i)
		s[i], s[j] = s[j], s[i]
	}
	return s[:k], s[k:]
}

// Choose returns a uniformly chosen element of s. It fails with ErrEmpty on an empty slice.
// A single-element slice is returned without drawing.
func Choose[S ~[]E, E any](src Source, s S) (E, error) {
	if len(s) == 0 {
		var zero E
		return zero, errors.Wrap(ErrEmpty, "choose")
	}
	return s[indexN(src, len(s))], nil
}

// ChooseMultiple returns k distinct elements of s (distinct by position), chosen
// uniformly and returned in random order. s is not modified.
// k > len(s) fails with ErrTooMany, a negative k with ErrNegativeCount; PartialShuffle
// clamps k instead.
func ChooseMultiple[S ~[]E, E any](src Source, s S, k int) (S, error) {
	idx, err := SampleIndices(src, len(s), k)
	if err != nil {
		return nil, err
	}
	out := make(S, len(idx))
	for i, j := range idx {
		out[i] = s[j]
	}
	return out, nil
}

// Resample draws n elements of s with replacement (a bootstrap sample).
// It fails with ErrEmpty if s is empty and n > 0.
func Resample[S ~[]E, E any](src Source, s S, n int) (S, error) {
	if n < 0 {
		return nil, errors.Wrapf(ErrNegativeCount, "n=%d", n)
	}
	if len(s) == 0 && n > 0 {
		return nil, errors.Wrap(ErrEmpty, "resample")
	}
	out := make(S, n)
	for i := range out {
		out[i] = s[indexN(src, len(s))]
	}
	return out, nil
}
