package predictor

import "math"

// PoissonPMF returns P(X = k) for X ~ Poisson(lambda). It is a public helper
// for callers pricing a single goal count; it runs the same recurrence as the
// grid, so it equals the grid's per-side value bit for bit, without allocating.
func PoissonPMF(k int, lambda float64) float64 {
	if k < 0 {
		return 0
	}
	p := math.Exp(-lambda)
	for i := 1; i <= k; i++ {
		p = p * lambda / float64(i)
	}
	return p
}

// poissonPMFs returns P(X = i) for i in [0, n) using the recurrence
// p(0) = e^-lambda, p(i) = p(i-1) * lambda / i, so no factorial is ever formed.
// lambda = 0 puts all mass on zero goals.
func poissonPMFs(lambda float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	pmf := make([]float64, n)
	pmf[0] = math.Exp(-lambda)
	for i := 1; i < n; i++ {
		pmf[i] = pmf[i-1] * lambda / float64(i)
	}
	return pmf
}
