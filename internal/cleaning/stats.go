package cleaning

import "math"

// mean returns the arithmetic mean of vals, zero for an empty slice.
func mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

// sampleStdDev returns the sample standard deviation (n-1 denominator)
// of vals, zero when fewer than two values are given.
func sampleStdDev(vals []float64, mu float64) float64 {
	if len(vals) < 2 {
		return 0
	}
	sum := 0.0
	for _, v := range vals {
		d := v - mu
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(vals)-1))
}

// modeFloat returns the most frequent value. Ties are broken by the
// value encountered first in column order. The second return is false
// for an empty slice.
func modeFloat(vals []float64) (float64, bool) {
	if len(vals) == 0 {
		return 0, false
	}
	counts := make(map[float64]int, len(vals))
	firstIdx := make(map[float64]int, len(vals))
	for i, v := range vals {
		counts[v]++
		if _, ok := firstIdx[v]; !ok {
			firstIdx[v] = i
		}
	}
	best := vals[0]
	for v, n := range counts {
		if n > counts[best] || (n == counts[best] && firstIdx[v] < firstIdx[best]) {
			best = v
		}
	}
	return best, true
}

// modeString returns the most frequent value. Ties are broken by the
// value encountered first in column order. The second return is false
// for an empty slice.
func modeString(vals []string) (string, bool) {
	if len(vals) == 0 {
		return "", false
	}
	counts := make(map[string]int, len(vals))
	firstIdx := make(map[string]int, len(vals))
	for i, v := range vals {
		counts[v]++
		if _, ok := firstIdx[v]; !ok {
			firstIdx[v] = i
		}
	}
	best := vals[0]
	for v, n := range counts {
		if n > counts[best] || (n == counts[best] && firstIdx[v] < firstIdx[best]) {
			best = v
		}
	}
	return best, true
}
