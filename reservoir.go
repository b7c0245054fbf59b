package rtrand

import (
	"iter"

	"github.com/pkg/errors"
)

// Reservoir selects k items uniformly from a stream of unknown length in O(k) memory
// (Algorithm R). Feed items one at a time with Add. After n >= k items every item
// seen so far is held with probability k/n.
//
// The first k items are kept without drawing. The i-th item after that (1-based
// position m = k+i in the stream) draws one index in [0,m) and replaces the held
// item at that index if it is below k.
type Reservoir[T any] struct {
	items []T
	k     int
	seen  int
}

// NewReservoir creates an empty reservoir of capacity k. A negative k fails with ErrNegativeCount.
func NewReservoir[T any](k int) (*Reservoir[T], error) {
	if k < 0 {
		return nil, errors.Wrapf(ErrNegativeCount, "k=%d", k)
	}
	return &Reservoir[T]{items: make([]T, 0, k), k: k}, nil
}

// Add offers one item.
func (r *Reservoir[T]) Add(src Source, item T) {
	r.seen++
	if len(r.items) < r.k {
		r.items = append(r.items, item)
		return
	}
	if r.k == 0 {
		return
	}
	if j := indexN(src, r.seen); j < r.k {
		r.items[j] = item
	}
}

// Items returns the current selection. The slice is owned by the reservoir until the next Add.
func (r *Reservoir[T]) Items() []T {
	return r.items
}

// Seen returns the number of items offered so far.
func (r *Reservoir[T]) Seen() int {
	return r.seen
}

// Full reports whether k items have been offered.
func (r *Reservoir[T]) Full() bool {
	return len(r.items) == r.k
}

// ChooseIter returns one uniformly chosen item of seq in a single pass.
// It fails with ErrEmpty if seq yields nothing.
func ChooseIter[T any](src Source, seq iter.Seq[T]) (T, error) {
	r := Reservoir[T]{items: make([]T, 0, 1), k: 1}
	for v := range seq {
		r.Add(src, v)
	}
	if r.seen == 0 {
		var zero T
		return zero, errors.Wrap(ErrEmpty, "choose from sequence")
	}
	return r.items[0], nil
}

// ChooseMultipleIter returns k distinct items of seq in a single pass, each subset
// of size k being equally likely. The order of the result is not random.
// It fails with ErrTooMany if seq yields fewer than k items.
func ChooseMultipleIter[T any](src Source, seq iter.Seq[T], k int) ([]T, error) {
	r, err := NewReservoir[T](k)
	if err != nil {
		return nil, err
	}
	for v := range seq {
		r.Add(src, v)
	}
	if r.seen < k {
		return nil, errors.Wrapf(ErrTooMany, "%d of %d", k, r.seen)
	}
	return r.items, nil
}
