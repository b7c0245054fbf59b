package rtrand

import (
	"cmp"
	"iter"
	"math"
	"slices"

	"github.com/pkg/errors"
)

// WeightedReservoir selects one item from a weighted stream of unknown length in O(1)
// memory. It keeps a running total; an incoming item of weight w replaces the held
// item with probability w/total, total including w. By induction every item seen so
// far is held with probability proportional to its weight.
//
// Items of weight zero never draw and are never held. The first item with a positive
// weight is taken without drawing.
type WeightedReservoir[T any, W Weight] struct {
	item  T
	total W
	held  bool
	seen  int
}

// Add offers one item. It fails with ErrInvalidWeight or ErrWeightOverflow, leaving
// the reservoir unchanged.
func (r *WeightedReservoir[T, W]) Add(src Source, item T, w W) error {
	if err := checkWeight(r.seen, w); err != nil {
		return err
	}
	total, err := addWeight(r.total, w)
	if err != nil {
		return err
	}
	r.seen++
	if w == 0 {
		return nil
	}
	r.total = total
	if !r.held || newWeightDraw(total)(src) < w {
		r.item = item
		r.held = true
	}
	return nil
}

// Item returns the selected item. It fails with ErrEmpty if nothing was offered and
// with ErrInvalidWeights if all offered items had weight zero.
func (r *WeightedReservoir[T, W]) Item() (T, error) {
	if !r.held {
		var zero T
		if r.seen == 0 {
			return zero, errors.Wrap(ErrEmpty, "weighted reservoir")
		}
		return zero, errors.Wrapf(ErrInvalidWeights, "%d items of weight zero", r.seen)
	}
	return r.item, nil
}

// Total returns the sum of the weights offered so far.
func (r *WeightedReservoir[T, W]) Total() W {
	return r.total
}

// Seen returns the number of items offered so far.
func (r *WeightedReservoir[T, W]) Seen() int {
	return r.seen
}

// ChooseWeightedIter returns one item of a stream of (item, weight) pairs, chosen with
// probability proportional to its weight, in a single pass and O(1) memory.
func ChooseWeightedIter[T any, W Weight](src Source, seq iter.Seq2[T, W]) (T, error) {
	var r WeightedReservoir[T, W]
	for v, w := range seq {
		if err := r.Add(src, v, w); err != nil {
			var zero T
			return zero, err
		}
	}
	return r.Item()
}

// ProportionalReservoir selects k distinct items from a weighted stream of unknown
// length in O(k) memory (Chao's procedure). After n items every item i is held with
// probability min(1, c*w_i), with c such that the probabilities sum to k. Items whose
// probability is 1 are heavy: they stay in the reservoir until a later item lowers c
// far enough to make them normal again. There are at most k-1 heavy items once more
// than k items of positive weight were offered.
//
// The first k items of positive weight are taken without drawing, every later one
// costs one Float64 draw that decides both its inclusion and the evicted item. Items
// of weight zero never draw and are never held.
type ProportionalReservoir[T any, W Weight] struct {
	k     int
	slots []reservoirSlot[T]
	light float64 // sum of the weights of all normal items offered
	c     float64
	total W
	seen  int
}

type reservoirSlot[T any] struct {
	item  T
	w     float64
	heavy bool
}

// heavyCandidate is a held heavy item (slot >= 0) or the incoming one (slot -1).
type heavyCandidate struct {
	w    float64
	slot int
}

// NewProportionalReservoir returns an empty reservoir of capacity k.
func NewProportionalReservoir[T any, W Weight](k int) (*ProportionalReservoir[T, W], error) {
	if k < 0 {
		return nil, errors.Wrapf(ErrNegativeCount, "k=%d", k)
	}
	return &ProportionalReservoir[T, W]{k: k, slots: make([]reservoirSlot[T], 0, k), c: math.Inf(1)}, nil
}

// Add offers one item. It fails with ErrInvalidWeight or ErrWeightOverflow, leaving
// the reservoir unchanged.
func (r *ProportionalReservoir[T, W]) Add(src Source, item T, w W) error {
	if err := checkWeight(r.seen, w); err != nil {
		return err
	}
	total, err := addWeight(r.total, w)
	if err != nil {
		return err
	}
	r.seen++
	r.total = total
	if w == 0 || r.k == 0 {
		return nil
	}
	fw := float64(w)
	if len(r.slots) < r.k {
		r.slots = append(r.slots, reservoirSlot[T]{item: item, w: fw, heavy: true})
		return nil
	}

	cands := make([]heavyCandidate, 0, r.k+1)
	for i, s := range r.slots {
		if s.heavy {
			cands = append(cands, heavyCandidate{w: s.w, slot: i})
		}
	}
	cands = append(cands, heavyCandidate{w: fw, slot: -1})
	slices.SortFunc(cands, func(a, b heavyCandidate) int { return cmp.Compare(b.w, a.w) })

	// rest[h] is the weight left once the h largest candidates are heavy
	rest := make([]float64, len(cands)+1)
	rest[len(cands)] = r.light
	for i := len(cands) - 1; i >= 0; i-- {
		rest[i] = rest[i+1] + cands[i].w
	}
	h := 0
	for h < len(cands) && h < r.k-1 && float64(r.k-h)*cands[h].w >= rest[h] {
		h++
	}
	c := float64(r.k-h) / rest[h]

	newHeavy := false
	stillHeavy := make([]bool, len(r.slots))
	for _, cand := range cands[:h] {
		if cand.slot < 0 {
			newHeavy = true
		} else {
			stillHeavy[cand.slot] = true
		}
	}
	include := 1.0
	if !newHeavy {
		include = c * fw
	}

	// x < include admits the item, the remaining mass of x selects the evicted slot
	x := Float64(src)
	victim := -1
	if x < include {
		for i, s := range r.slots {
			var evict float64
			switch {
			case stillHeavy[i]:
				continue
			case s.heavy:
				evict = 1 - c*s.w
			default:
				evict = 1 - c/r.c
			}
			if evict <= 0 {
				continue
			}
			victim = i
			if x -= evict; x < 0 {
				break
			}
		}
	}

	for i := range r.slots {
		if r.slots[i].heavy && !stillHeavy[i] {
			r.slots[i].heavy = false
			r.light += r.slots[i].w
		}
	}
	if !newHeavy {
		r.light += fw
	}
	r.c = c
	if victim >= 0 {
		r.slots[victim] = reservoirSlot[T]{item: item, w: fw, heavy: newHeavy}
	}
	return nil
}

// Items returns the held items in reservoir order, which is not random.
func (r *ProportionalReservoir[T, W]) Items() []T {
	out := make([]T, len(r.slots))
	for i, s := range r.slots {
		out[i] = s.item
	}
	return out
}

// Len returns the number of held items, at most k.
func (r *ProportionalReservoir[T, W]) Len() int {
	return len(r.slots)
}

// Total returns the sum of the weights offered so far.
func (r *ProportionalReservoir[T, W]) Total() W {
	return r.total
}

// Seen returns the number of items offered so far.
func (r *ProportionalReservoir[T, W]) Seen() int {
	return r.seen
}

// ChooseMultipleWeightedBuffered selects k distinct items of a weighted stream without
// replacement, with the same probabilities as ChooseMultipleWeighted: every draw picks
// one of the remaining items with probability proportional to its weight. It makes a
// single pass over seq but buffers all items with a positive weight in a WeightedTree,
// so it needs O(n) memory. Use ChooseMultipleWeightedIter for O(k) memory.
// No draw happens before seq is exhausted, so an invalid weight fails without drawing.
func ChooseMultipleWeightedBuffered[T any, W Weight](src Source, seq iter.Seq2[T, W], k int) ([]T, error) {
	if k < 0 {
		return nil, errors.Wrapf(ErrNegativeCount, "k=%d", k)
	}
	var items []T
	t, _ := NewWeightedTree[W](nil)
	seen := 0
	for v, w := range seq {
		if err := checkWeight(seen, w); err != nil {
			return nil, err
		}
		seen++
		if w == 0 {
			continue
		}
		if _, err := t.Push(w); err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	if k > seen {
		return nil, errors.Wrapf(ErrTooMany, "%d of %d", k, seen)
	}
	if k > len(items) {
		return nil, errors.Wrapf(ErrInsufficientNonZero, "%d of %d", k, len(items))
	}
	out := make([]T, 0, k)
	for range k {
		i, err := t.Take(src)
		if err != nil {
			return nil, err
		}
		out = append(out, items[i])
	}
	return out, nil
}

// ChooseMultipleWeightedIter selects k distinct items of a weighted stream in a single
// pass and O(k) memory with a ProportionalReservoir. Each item ends up in the result
// with probability min(1, c*w), where c is chosen so the probabilities sum to k; when no
// single weight exceeds total/k this is exactly k*w/total.
// These are inclusion probabilities proportional to weight, unlike the successive
// draws of ChooseMultipleWeighted. The order of the result is not random.
func ChooseMultipleWeightedIter[T any, W Weight](src Source, seq iter.Seq2[T, W], k int) ([]T, error) {
	r, err := NewProportionalReservoir[T, W](k)
	if err != nil {
		return nil, err
	}
	for v, w := range seq {
		if err := r.Add(src, v, w); err != nil {
			return nil, err
		}
	}
	if k > r.Seen() {
		return nil, errors.Wrapf(ErrTooMany, "%d of %d", k, r.Seen())
	}
	if k > r.Len() {
		return nil, errors.Wrapf(ErrInsufficientNonZero, "%d of %d", k, r.Len())
	}
	return r.Items(), nil
}
