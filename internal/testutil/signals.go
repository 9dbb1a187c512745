package testutil

import "math"

// Gaussian evaluates the normalized Gaussian density directly, independent of
// the envelope package.
func Gaussian(k, center, width float64) float64 {
	d := k - center
	return math.Exp(-d*d/(2*width*width)) / (width * math.Sqrt(2*math.Pi))
}

// CosineSum returns sum_i amps[i]*cos(freqs[i]*x[j]) for every x[j],
// accumulated in index order.
func CosineSum(x, freqs, amps []float64) []float64 {
	out := make([]float64, len(x))
	for i, f := range freqs {
		for j, xj := range x {
			out[j] += amps[i] * math.Cos(f*xj)
		}
	}
	return out
}

// Linspace returns n evenly spaced values from lo to hi inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	if n == 1 {
		out[0] = lo
		return out
	}
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + step*float64(i)
	}
	return out
}
