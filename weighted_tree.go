package rtrand

import (
	"github.com/pkg/errors"
)

// WeightedTree is a mutable weighted index for repeated draws without replacement.
// Weights are kept in an implicit binary tree (children of node i are 2i+1 and 2i+2)
// where every node also stores the weight of its whole subtree. Sampling descends
// from the root, Update walks back up; both are O(log n). Subtree sums are always
// recomputed from the children, so float weights do not drift with repeated updates.
type WeightedTree[W Weight] struct {
	weights []W
	sums    []W
}

// NewWeightedTree builds the tree in O(n). Unlike NewWeightedIndex an empty tree
// or a zero total is allowed; Sample reports it.
func NewWeightedTree[W Weight](weights []W) (*WeightedTree[W], error) {
	var total W
	for i, w := range weights {
		if err := checkWeight(i, w); err != nil {
			return nil, err
		}
		var err error
		if total, err = addWeight(total, w); err != nil {
			return nil, err
		}
	}
	t := &WeightedTree[W]{
		weights: append([]W(nil), weights...),
		sums:    make([]W, len(weights)),
	}
	for i := len(weights) - 1; i >= 0; i-- {
		t.fix(i)
	}
	return t, nil
}

func (t *WeightedTree[W]) sum(i int) W {
	if i < len(t.sums) {
		return t.sums[i]
	}
	return 0
}

func (t *WeightedTree[W]) fix(i int) {
	t.sums[i] = t.weights[i] + t.sum(2*i+1) + t.sum(2*i+2)
}

// Len returns the number of items, including those of weight zero.
func (t *WeightedTree[W]) Len() int {
	return len(t.weights)
}

// Total returns the sum of all weights.
func (t *WeightedTree[W]) Total() W {
	return t.sum(0)
}

// Weight returns the weight of item i.
func (t *WeightedTree[W]) Weight(i int) W {
	return t.weights[i]
}

// Push appends an item and returns its index.
func (t *WeightedTree[W]) Push(w W) (int, error) {
	i := len(t.weights)
	if err := checkWeight(i, w); err != nil {
		return 0, err
	}
	if _, err := addWeight(t.Total(), w); err != nil {
		return 0, err
	}
	t.weights = append(t.weights, w)
	t.sums = append(t.sums, 0)
	t.up(i)
	return i, nil
}

// Update sets the weight of item i. On error the tree is left unchanged.
func (t *WeightedTree[W]) Update(i int, w W) error {
	if i < 0 || i >= len(t.weights) {
		return errors.Wrapf(ErrIndexOutOfRange, "index %d of %d", i, len(t.weights))
	}
	if err := checkWeight(i, w); err != nil {
		return err
	}
	if w > t.weights[i] {
		if _, err := addWeight(t.Total(), w-t.weights[i]); err != nil {
			return err
		}
	}
	t.weights[i] = w
	t.up(i)
	return nil
}

func (t *WeightedTree[W]) up(i int) {
	for {
		t.fix(i)
		if i == 0 {
			return
		}
		i = (i - 1) / 2
	}
}

// Sample draws an index with probability proportional to its weight.
// It fails with ErrInvalidWeights if the total weight is zero.
func (t *WeightedTree[W]) Sample(src Source) (int, error) {
	total := t.Total()
	if total <= 0 {
		return 0, errors.Wrapf(ErrInvalidWeights, "total weight %v", total)
	}
	x := newWeightDraw(total)(src)
	i := 0
	for {
		if x < t.weights[i] {
			return i, nil
		}
		x -= t.weights[i]
		l, r := 2*i+1, 2*i+2
		ls, rs := t.sum(l), t.sum(r)
		switch {
		case ls > 0 && (x < ls || rs <= 0):
			// float rounding can leave x at or beyond the last subtree; stay inside
			i = l
		case rs > 0:
			x -= ls
			i = r
		default:
			// only node i has weight left in this subtree
			return i, nil
		}
	}
}

// Take draws an index like Sample and then sets its weight to zero,
// so repeated calls select without replacement.
func (t *WeightedTree[W]) Take(src Source) (int, error) {
	i, err := t.Sample(src)
	if err != nil {
		return 0, err
	}
	t.weights[i] = 0
	t.up(i)
	return i, nil
}

// ChooseMultipleWeighted selects k distinct elements of s without replacement: each
// draw picks one of the remaining elements with probability proportional to its weight.
// The result is in draw order. It fails with ErrTooMany if k > len(s) and with
// ErrInsufficientNonZero if fewer than k elements have a positive weight, besides
// the weight errors of NewWeightedIndex.
func ChooseMultipleWeighted[S ~[]E, E any, W Weight](src Source, s S, weight func(E) W, k int) (S, error) {
	if k < 0 {
		return nil, errors.Wrapf(ErrNegativeCount, "k=%d", k)
	}
	if k > len(s) {
		return nil, errors.Wrapf(ErrTooMany, "%d of %d", k, len(s))
	}
	weights := make([]W, len(s))
	nonZero := 0
	for i, e := range s {
		weights[i] = weight(e)
		if weights[i] > 0 {
			nonZero++
		}
	}
	t, err := NewWeightedTree(weights)
	if err != nil {
		return nil, err
	}
	if nonZero < k {
		return nil, errors.Wrapf(ErrInsufficientNonZero, "%d of %d", k, nonZero)
	}
	out := make(S, 0, k)
	for range k {
		i, err := t.Take(src)
		if err != nil {
			return nil, err
		}
		out = append(out, s[i])
	}
	return out, nil
}
