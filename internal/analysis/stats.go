package analysis

import "math"

type Summary struct {
	Min, Max  float64
	Mean, RMS float64
	Count     int
}

func Summarize(data []float64) Summary {
	if len(data) == 0 {
		return Summary{}
	}

	s := Summary{Min: math.Inf(1), Max: math.Inf(-1), Count: len(data)}
	var sum, sumSq float64
	for _, v := range data {
		s.Min = math.Min(s.Min, v)
		s.Max = math.Max(s.Max, v)
		sum += v
		sumSq += v * v
	}
	s.Mean = sum / float64(len(data))
	s.RMS = math.Sqrt(sumSq / float64(len(data)))
	return s
}

// SampleInterval returns the mean spacing of times, or 0 for fewer than two
// samples.
func SampleInterval(times []float64) float64 {
	if len(times) < 2 {
		return 0
	}
	return (times[len(times)-1] - times[0]) / float64(len(times)-1)
}
