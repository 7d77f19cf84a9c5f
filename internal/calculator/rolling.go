package calculator

import (
	"errors"
	"math"
)

// Rolling statistics over price and ratio series. All functions return a
// slice aligned with the input; positions where the window (or lag) is not
// yet fully populated hold NaN and must be dropped by the caller.

// RollingMean computes the simple moving average over the given window.
func RollingMean(values []float64, window int) ([]float64, error) {
	if window <= 0 {
		return nil, errors.New("window must be positive")
	}
	out := make([]float64, len(values))
	sum := 0.0
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		if i >= window-1 {
			out[i] = sum / float64(window)
		} else {
			out[i] = math.NaN()
		}
	}
	return out, nil
}

// RollingStdDev computes the population standard deviation over the given window.
func RollingStdDev(values []float64, window int) ([]float64, error) {
	means, err := RollingMean(values, window)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(values))
	for i := range values {
		if i < window-1 {
			out[i] = math.NaN()
			continue
		}
		var sq float64
		for j := i - window + 1; j <= i; j++ {
			d := values[j] - means[i]
			sq += d * d
		}
		out[i] = math.Sqrt(sq / float64(window))
	}
	return out, nil
}

// RateOfChange computes the percentage change over the given lag:
// 100 * (v[t]/v[t-lag] - 1). A zero denominator yields zero change.
func RateOfChange(values []float64, lag int) ([]float64, error) {
	if lag <= 0 {
		return nil, errors.New("lag must be positive")
	}
	out := make([]float64, len(values))
	for i := range values {
		if i < lag || math.IsNaN(values[i]) || math.IsNaN(values[i-lag]) {
			out[i] = math.NaN()
			continue
		}
		prev := values[i-lag]
		if prev == 0 {
			out[i] = 0
			continue
		}
		out[i] = 100 * (values[i]/prev - 1)
	}
	return out, nil
}

// Ratio divides a target series by a benchmark series elementwise.
// Inputs must have equal length.
func Ratio(target, benchmark []float64) ([]float64, error) {
	if len(target) != len(benchmark) {
		return nil, errors.New("target and benchmark must have equal length")
	}
	out := make([]float64, len(target))
	for i := range target {
		out[i] = target[i] / benchmark[i]
	}
	return out, nil
}
