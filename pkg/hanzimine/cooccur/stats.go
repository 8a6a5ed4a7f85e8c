package cooccur

import "math"

// Expected returns the co-occurrence count expected under independence:
// fa * fb / n.
func Expected(fa, fb, n int64) float64 {
	if n == 0 {
		return 0
	}
	return float64(fa) * float64(fb) / float64(n)
}

// TScore calculates (observed - expected) / sqrt(observed).
// A pair never observed scores 0 whatever its expected count.
func TScore(observed int64, expected float64) float64 {
	if observed == 0 {
		return 0
	}
	o := float64(observed)
	return (o - expected) / math.Sqrt(o)
}

// SimpleLLR calculates the simple log-likelihood ratio
//
//	sLLR = 2 * (O * log2(O/E) - (O - E))
//
// multiplied by -1 when O < E. O*log2(O/E) takes
// its limit 0 when O is 0; an expected count of 0 scores 0.
func SimpleLLR(observed int64, expected float64) float64 {
	if expected <= 0 {
		return 0
	}
	o := float64(observed)
	var ll float64
	if observed != 0 {
		ll = o * math.Log2(o/expected)
	}
	v := 2 * (ll - (o - expected))
	if o >= expected {
		return v
	}
	return -v
}
