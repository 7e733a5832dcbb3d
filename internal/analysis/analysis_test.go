package analysis

import (
	"math"
	"testing"
)

func TestDominantFrequency(t *testing.T) {
	dt := 0.01
	data := make([]float64, 1000)
	for i := range data {
		data[i] = math.Sin(2 * math.Pi * 5 * float64(i) * dt)
	}

	// 512-sample prefix: bin width 1/(512*0.01) ~ 0.195 Hz.
	got := DominantFrequency(data, dt)
	if math.Abs(got-5) > 0.2 {
		t.Errorf("expected ~5 Hz, got %f", got)
	}
}

func TestDominantFrequencyShort(t *testing.T) {
	if f := DominantFrequency([]float64{1, 2, 3}, 0.1); f != 0 {
		t.Errorf("expected 0 for a 2-bin spectrum, got %f", f)
	}
	if f := DominantFrequency(nil, 0.1); f != 0 {
		t.Errorf("expected 0 for empty input, got %f", f)
	}
}

func TestPowerSpectrumLength(t *testing.T) {
	tests := []struct{ n, want int }{{0, 0}, {1, 0}, {7, 2}, {8, 4}, {100, 32}}
	for _, tt := range tests {
		if got := len(PowerSpectrum(make([]float64, tt.n))); got != tt.want {
			t.Errorf("n=%d: expected %d bins, got %d", tt.n, tt.want, got)
		}
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize([]float64{3, -4, 0, 1})
	if s.Min != -4 || s.Max != 3 || s.Count != 4 {
		t.Errorf("unexpected bounds: %+v", s)
	}
	if s.Mean != 0 {
		t.Errorf("expected mean 0, got %f", s.Mean)
	}
	if math.Abs(s.RMS-math.Sqrt(26.0/4)) > 1e-12 {
		t.Errorf("unexpected rms %f", s.RMS)
	}

	if (Summarize(nil) != Summary{}) {
		t.Error("expected zero summary for empty input")
	}
}

func TestSampleInterval(t *testing.T) {
	if dt := SampleInterval([]float64{0, 0.5, 1, 1.5}); dt != 0.5 {
		t.Errorf("expected 0.5, got %f", dt)
	}
	if dt := SampleInterval([]float64{2}); dt != 0 {
		t.Errorf("expected 0, got %f", dt)
	}
}
