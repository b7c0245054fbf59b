// Package rtrand draws unbiased values and samples from an abstract source of random bits.
//
// A Source supplies fixed-width words and byte streams. UniformInt, UniformFloat and
// the other distributions turn those into typed values, and the sequence functions
// (Shuffle, Choose, ChooseMultiple, WeightedIndex, Reservoir, ...) build on them.
// For a fixed generator and seed every function produces the same output on every platform.
package rtrand
