package rtrand

import (
	"testing"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// alpha is the significance level of the χ² tests. All statistical tests use fixed
// seeds (except those on CPRNG), so they are deterministic; alpha is kept small so a
// change of algorithm does not produce a spurious failure.
const alpha = 1e-4

// chiSquareUniform returns the Pearson χ² statistic of counts against a uniform
// expectation and its upper-tail p-value.
func chiSquareUniform(counts []int) (x2, p float64) {
	total := 0
	for _, c := range counts {
		total += c
	}
	expected := make([]float64, len(counts))
	for i := range expected {
		expected[i] = float64(total) / float64(len(counts))
	}
	return chiSquareExpected(counts, expected)
}

// chiSquareExpected returns the Pearson χ² statistic of counts against expected
// counts and its upper-tail p-value. Bins with an expectation of zero must have no
// observations and do not count as degree of freedom.
func chiSquareExpected(counts []int, expected []float64) (x2, p float64) {
	obs := make([]float64, 0, len(counts))
	exp := make([]float64, 0, len(counts))
	for i, c := range counts {
		if expected[i] == 0 {
			continue
		}
		obs = append(obs, float64(c))
		exp = append(exp, expected[i])
	}
	x2 = stat.ChiSquare(obs, exp)
	df := float64(len(obs) - 1)
	if df < 1 {
		return x2, 1
	}
	return x2, distuv.ChiSquared{K: df}.Survival(x2)
}

// requireUniform fails t if counts are not plausibly uniform.
func requireUniform(t *testing.T, counts []int) {
	t.Helper()
	x2, p := chiSquareUniform(counts)
	if p < alpha {
		t.Fatalf("χ² test result → H0 rejected (not uniform at significance level α=%g): χ²=%.3f p=%.6f", alpha, x2, p)
	}
	t.Logf("χ² test result → H0 NOT rejected (no evidence against uniformity at α=%g): χ²=%.3f p=%.3f", alpha, x2, p)
}

// requireDistributed fails t if counts do not plausibly follow the given probabilities.
func requireDistributed(t *testing.T, counts []int, probs []float64) {
	t.Helper()
	total := 0
	for _, c := range counts {
		total += c
	}
	expected := make([]float64, len(probs))
	for i, q := range probs {
		expected[i] = q * float64(total)
		if q == 0 && counts[i] != 0 {
			t.Fatalf("bin %d has probability 0 but %d observations", i, counts[i])
		}
	}
	x2, p := chiSquareExpected(counts, expected)
	if p < alpha {
		t.Fatalf("χ² test result → H0 rejected at α=%g: χ²=%.3f p=%.6f counts=%v", alpha, x2, p, counts)
	}
	t.Logf("χ² test result → H0 NOT rejected at α=%g: χ²=%.3f p=%.3f", alpha, x2, p)
}
