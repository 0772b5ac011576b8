package stats

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// ZVal returns the two-tailed Z-value associated with a specific confidence interval.
// The interval is a number from 0 to 100 percent.
func ZVal(confidenceInterval float64) float64 {
	dist := distuv.Normal{
		Mu:    0,
		Sigma: 1,
	}
	area := (1 + (confidenceInterval / 100)) / 2
	return dist.Quantile(area)
}

// ProportionInterval estimates a win rate from successes out of n trials
// and returns the proportion with the bounds of its normal-approximation
// confidence interval, clamped to [0, 1].
func ProportionInterval(successes, n int, confidenceInterval float64) (p, lo, hi float64) {
	if n <= 0 {
		return 0, 0, 0
	}
	p = float64(successes) / float64(n)
	margin := ZVal(confidenceInterval) * math.Sqrt(p*(1-p)/float64(n))
	return p, math.Max(0, p-margin), math.Min(1, p+margin)
}
