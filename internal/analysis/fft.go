// Package analysis offers frequency-domain diagnostics for recorded
// trajectories, used to recover the oscillation period of a run.
package analysis

import (
	"math"
	"math/cmplx"
)

// FFT computes the discrete Fourier transform, iterative radix-2 with an
// in-place bit-reversal pass. Input length must be a power of two; use Pad
// first for arbitrary lengths.
func FFT(data []float64) []complex128 {
	n := len(data)
	if n <= 1 {
		result := make([]complex128, n)
		for i := range data {
			result[i] = complex(data[i], 0)
		}
		return result
	}

	if n&(n-1) != 0 {
		panic("fft requires power of 2 length")
	}

	// load in bit-reversed order so butterflies can run in place
	buf := make([]complex128, n)
	for i, j := 0, 0; i < n; i++ {
		buf[j] = complex(data[i], 0)
		mask := n >> 1
		for j&mask != 0 {
			j ^= mask
			mask >>= 1
		}
		j |= mask
	}

	for size := 2; size <= n; size <<= 1 {
		half := size >> 1
		step := cmplx.Exp(complex(0, -2*math.Pi/float64(size)))
		for start := 0; start < n; start += size {
			w := complex(1, 0)
			for k := start; k < start+half; k++ {
				a, b := buf[k], buf[k+half]*w
				buf[k] = a + b
				buf[k+half] = a - b
				w *= step
			}
		}
	}
	return buf
}

// Pad zero-extends data to the next power of two.
func Pad(data []float64) []float64 {
	n := 1
	for n < len(data) {
		n *= 2
	}
	padded := make([]float64, n)
	copy(padded, data)
	return padded
}

// PowerSpectrum returns the magnitude of the positive-frequency half of the
// transform, padding as needed.
func PowerSpectrum(data []float64) []float64 {
	fft := FFT(Pad(data))
	ps := make([]float64, len(fft)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(fft[i])
	}
	return ps
}

// DominantFrequency finds the strongest non-DC bin of the spectrum of a
// signal sampled at dt intervals, in Hz. Returns 0 for degenerate input.
func DominantFrequency(data []float64, dt float64) float64 {
	if len(data) < 4 || dt <= 0 {
		return 0
	}

	padded := Pad(data)
	ps := PowerSpectrum(data)

	maxPower := 0.0
	maxIdx := 0
	for i := 1; i < len(ps); i++ {
		if ps[i] > maxPower {
			maxPower = ps[i]
			maxIdx = i
		}
	}
	if maxIdx == 0 {
		return 0
	}

	return float64(maxIdx) / (float64(len(padded)) * dt)
}
