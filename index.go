package rtrand

import (
	set3 "github.com/TomTonic/Set3"
	"github.com/pkg/errors"
)

// SampleIndices returns k distinct indices from [0,n), chosen uniformly and in random order.
// k > n fails with ErrTooMany, negative arguments with ErrNegativeCount.
//
// Two strategies are used, depending on the ratio k/n:
//   - k <= n/2: draw indices in [0,n) and reject those already taken, tracked in a set
//     of at most k entries. Every draw succeeds with probability at least 1/2, so the
//     expected number of draws stays below 2k, and no O(n) memory is needed.
//   - otherwise: partial Fisher-Yates shuffle of [0,n) over the first k positions,
//     exactly k draws and O(n) memory, which is within the cost of the result.
//
// Either way the expected cost never exceeds O(n).
func SampleIndices(src Source, n, k int) ([]int, error) {
	if n < 0 || k < 0 {
		return nil, errors.Wrapf(ErrNegativeCount, "n=%d k=%d", n, k)
	}
	if k > n {
		return nil, errors.Wrapf(ErrTooMany, "%d of %d", k, n)
	}
	if k <= n/2 {
		return sampleIndicesRejection(src, n, k), nil
	}
	return sampleIndicesShuffle(src, n, k), nil
}

func sampleIndicesRejection(src Source, n, k int) []int {
	out := make([]int, 0, k)
	seen := set3.EmptyWithCapacity[int](uint32(k))
	for len(out) < k {
		i := indexN(src, n)
		if seen.Contains(i) {
			continue
		}
		seen.Add(i)
		out = append(out, i)
	}
	return out
}

func sampleIndicesShuffle(src Source, n, k int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	chosen, _ := PartialShuffle(src, idx, k)
	return chosen
}
