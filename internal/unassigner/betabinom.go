package unassigner

import (
	"math"

	"gonum.org/v1/gonum/mathext"
	"gonum.org/v1/gonum/stat/combin"
)

// betaBinomialPDF is the probability of k successes in n trials when the
// per-trial probability is itself beta distributed with parameters a and b.
// Computed in log space so the binomial coefficient cannot overflow for
// full-length sequences.
func betaBinomialPDF(k, n int, a, b float64) float64 {
	// no way to choose k from n outside this range
	if k < 0 || n < 0 || k > n {
		return 0
	}

	logPDF := combin.LogGeneralizedBinomial(float64(n), float64(k)) +
		mathext.Lbeta(float64(k)+a, float64(n-k)+b) -
		mathext.Lbeta(a, b)

	return math.Exp(logPDF)
}

// betaBinomialCDF is the probability of at most kMax successes in n trials.
// A negative kMax is an empty sum: exactly 0.
func betaBinomialCDF(kMax, n int, a, b float64) float64 {
	cdf := 0.0
	for k := 0; k <= kMax; k++ {
		cdf += betaBinomialPDF(k, n, a, b)
	}

	return cdf
}
