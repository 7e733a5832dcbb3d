package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

func powerOfTwoPrefix(n int) int {
	p := 1
	for p*2 <= n {
		p *= 2
	}
	if n == 0 {
		return 0
	}
	return p
}

// PowerSpectrum returns |X_k| for k < n/2 over the power-of-two prefix of
// data.
func PowerSpectrum(data []float64) []float64 {
	spectrum := fft.FFTReal(data[:powerOfTwoPrefix(len(data))])
	ps := make([]float64, len(spectrum)/2)

	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}

	return ps
}

// DominantFrequency returns the frequency of the strongest non-DC bin for
// samples spaced dt apart, or 0 when the series is too short.
func DominantFrequency(data []float64, dt float64) float64 {
	ps := PowerSpectrum(data)
	if len(ps) < 2 || dt <= 0 {
		return 0
	}

	best := 1
	for k := 2; k < len(ps); k++ {
		if ps[k] > ps[best] {
			best = k
		}
	}
	n := 2 * len(ps)
	return float64(best) / (float64(n) * dt)
}
