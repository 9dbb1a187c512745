// Package reference provides the continuum limit of the discrete wave packet:
// the closed-form inverse transform of a normalized Gaussian envelope and the
// spreads it attains.
package reference

import "math"

// MinProduct is the lower bound of sigmaX*sigmaK (in units of hbar, with
// p = hbar*k), attained by a Gaussian packet.
const MinProduct = 0.5

// Packet evaluates the continuous superposition
//
//	psi(x) = integral phi(k) cos(k x) dk = exp(-width^2 x^2 / 2) * cos(center x)
//
// for the envelope phi = N(center, width).
func Packet(x, center, width float64) float64 {
	return math.Exp(-width*width*x*x/2) * math.Cos(center*x)
}

// Fill evaluates Packet at every x into a new slice.
func Fill(x []float64, center, width float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = Packet(v, center, width)
	}
	return out
}

// SigmaK is the standard deviation of the density phi^2.
func SigmaK(width float64) float64 {
	return width / math.Sqrt2
}

// SigmaX is the standard deviation of the Gaussian envelope of psi^2.
func SigmaX(width float64) float64 {
	return 1 / (width * math.Sqrt2)
}

// NormK is the integral of phi^2 over the whole momentum axis.
func NormK(width float64) float64 {
	return 1 / (2 * width * math.Sqrt(math.Pi))
}

// ComponentSpacing returns the wavenumber spacing of count components spread
// over center ± nstd*width.
func ComponentSpacing(count int, width, nstd float64) float64 {
	if count < 2 {
		return math.Inf(1)
	}
	return 2 * nstd * width / float64(count-1)
}

// RevivalPeriod returns the position-space period of a superposition of
// components spaced dk apart. Within one period the discrete sum tracks
// Packet/dk; beyond it the packet repeats.
func RevivalPeriod(dk float64) float64 {
	if !(dk > 0) {
		return math.Inf(1)
	}
	return 2 * math.Pi / dk
}
