// Package spectrum cross-checks a synthesized waveform in the frequency
// domain.
//
// The package does not implement an FFT itself. It adapts two external
// backends behind [Backend] so that the recovered wavenumber content of the
// position-space superposition can be compared with the envelope it was
// built from.
package spectrum
