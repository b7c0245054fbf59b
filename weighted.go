package rtrand

import (
	"math"
	"reflect"
	"sort"

	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
)

// Weight is any numeric weight type. Weights must be non-negative and finite.
type Weight interface {
	constraints.Integer | constraints.Float
}

// WeightedIndex draws index i with probability weights[i]/total.
// It keeps the cumulative sums of the weights, draws a value x uniformly from
// [0,total) and binary-searches the first index whose cumulative sum exceeds x.
// Items with weight zero are never drawn. Setup is O(n), a sample O(log n).
//
// Integer weights are sampled exactly; float weights are subject to the rounding
// of UniformFloat and of the summation.
type WeightedIndex[W Weight] struct {
	weights    []W
	cumulative []W
	draw       weightDraw[W]
}

// NewWeightedIndex fails with ErrEmpty for no weights, ErrInvalidWeight for a
// negative or non-finite weight, ErrWeightOverflow if the sum does not fit W and
// ErrInvalidWeights if all weights are zero.
func NewWeightedIndex[W Weight](weights []W) (*WeightedIndex[W], error) {
	if len(weights) == 0 {
		return nil, errors.Wrap(ErrEmpty, "weighted index")
	}
	cumulative, err := cumulate(weights)
	if err != nil {
		return nil, err
	}
	total := cumulative[len(cumulative)-1]
	if total <= 0 {
		return nil, errors.Wrapf(ErrInvalidWeights, "total weight %v", total)
	}
	return &WeightedIndex[W]{
		weights:    append([]W(nil), weights...),
		cumulative: cumulative,
		draw:       newWeightDraw(total),
	}, nil
}

func cumulate[W Weight](weights []W) ([]W, error) {
	cumulative := make([]W, len(weights))
	var total W
	for i, w := range weights {
		if err := checkWeight(i, w); err != nil {
			return nil, err
		}
		var err error
		if total, err = addWeight(total, w); err != nil {
			return nil, err
		}
		cumulative[i] = total
	}
	return cumulative, nil
}

// Sample draws an index with probability proportional to its weight.
func (wi *WeightedIndex[W]) Sample(src Source) int {
	x := wi.draw(src)
	return sort.Search(len(wi.cumulative), func(i int) bool {
		return wi.cumulative[i] > x
	})
}

// Len returns the number of weights.
func (wi *WeightedIndex[W]) Len() int {
	return len(wi.cumulative)
}

// Weight returns the weight of index i.
func (wi *WeightedIndex[W]) Weight(i int) W {
	return wi.weights[i]
}

// Total returns the sum of all weights.
func (wi *WeightedIndex[W]) Total() W {
	return wi.cumulative[len(wi.cumulative)-1]
}

// Update sets the weight of index i to w and recomputes the cumulative sums in O(n).
// On error the index is left unchanged.
func (wi *WeightedIndex[W]) Update(i int, w W) error {
	if i < 0 || i >= len(wi.cumulative) {
		return errors.Wrapf(ErrIndexOutOfRange, "index %d of %d", i, len(wi.cumulative))
	}
	if err := checkWeight(i, w); err != nil {
		return err
	}
	weights := append([]W(nil), wi.weights...)
	weights[i] = w
	cumulative, err := cumulate(weights)
	if err != nil {
		return err
	}
	total := cumulative[len(cumulative)-1]
	if total <= 0 {
		return errors.Wrapf(ErrInvalidWeights, "total weight %v", total)
	}
	wi.weights = weights
	wi.cumulative = cumulative
	wi.draw = newWeightDraw(total)
	return nil
}

// ChooseWeighted returns one element of s, chosen with probability proportional to weight(e).
// Errors are those of NewWeightedIndex.
func ChooseWeighted[S ~[]E, E any, W Weight](src Source, s S, weight func(E) W) (E, error) {
	var zero E
	weights := make([]W, len(s))
	for i, e := range s {
		weights[i] = weight(e)
	}
	wi, err := NewWeightedIndex(weights)
	if err != nil {
		return zero, err
	}
	return s[wi.Sample(src)], nil
}

func checkWeight[W Weight](i int, w W) error {
	f := float64(w)
	if w < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return errors.Wrapf(ErrInvalidWeight, "weight %v at index %d", w, i)
	}
	return nil
}

func addWeight[W Weight](total, w W) (W, error) {
	s := total + w
	if s < total || math.IsInf(float64(s), 0) {
		return total, errors.Wrapf(ErrWeightOverflow, "%v + %v", total, w)
	}
	return s, nil
}

// weightDraw draws uniformly from [0,total) for a fixed total > 0.
type weightDraw[W Weight] func(src Source) W

func newWeightDraw[W Weight](total W) weightDraw[W] {
	switch reflect.TypeFor[W]().Kind() {
	case reflect.Float32:
		u, _ := NewUniformFloat(0, float32(total))
		return func(src Source) W { return W(u.Sample(src)) }
	case reflect.Float64:
		u, _ := NewUniformFloat(0, float64(total))
		return func(src Source) W { return W(u.Sample(src)) }
	default:
		u := newUniformInt[uint64](0, uint64(total))
		return func(src Source) W { return W(u.Sample(src)) }
	}
}
