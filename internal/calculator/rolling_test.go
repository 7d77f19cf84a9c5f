package calculator

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestRollingMean(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}
	out, err := RollingMean(values, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != len(values) {
		t.Fatalf("expected %d values, got %d", len(values), len(out))
	}
	for i := 0; i < 2; i++ {
		if !math.IsNaN(out[i]) {
			t.Errorf("index %d: expected NaN warm-up, got %v", i, out[i])
		}
	}
	want := []float64{2, 3, 4}
	for i, w := range want {
		if !almostEqual(out[i+2], w) {
			t.Errorf("index %d: expected %v, got %v", i+2, w, out[i+2])
		}
	}
}

func TestRollingMean_WindowOne(t *testing.T) {
	values := []float64{7, 8, 9}
	out, err := RollingMean(values, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, v := range values {
		if !almostEqual(out[i], v) {
			t.Errorf("index %d: expected %v, got %v", i, v, out[i])
		}
	}
}

func TestRollingMean_BadWindow(t *testing.T) {
	if _, err := RollingMean([]float64{1, 2}, 0); err == nil {
		t.Error("expected error for zero window")
	}
	if _, err := RollingMean([]float64{1, 2}, -3); err == nil {
		t.Error("expected error for negative window")
	}
}

func TestRollingStdDev(t *testing.T) {
	values := []float64{1, 3, 1, 3}
	out, err := RollingStdDev(values, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !math.IsNaN(out[0]) {
		t.Errorf("expected NaN warm-up, got %v", out[0])
	}
	// population stddev of {1,3} is 1
	for i := 1; i < len(out); i++ {
		if !almostEqual(out[i], 1) {
			t.Errorf("index %d: expected 1, got %v", i, out[i])
		}
	}
}

func TestRollingStdDev_ConstantSeries(t *testing.T) {
	values := []float64{5, 5, 5, 5, 5}
	out, err := RollingStdDev(values, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 2; i < len(out); i++ {
		if out[i] != 0 {
			t.Errorf("index %d: expected zero stddev for constant series, got %v", i, out[i])
		}
	}
}

func TestRateOfChange(t *testing.T) {
	values := []float64{100, 110, 99}
	out, err := RateOfChange(values, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !math.IsNaN(out[0]) {
		t.Errorf("expected NaN at index 0, got %v", out[0])
	}
	if !almostEqual(out[1], 10) {
		t.Errorf("expected +10%%, got %v", out[1])
	}
	if !almostEqual(out[2], -10) {
		t.Errorf("expected -10%%, got %v", out[2])
	}
}

func TestRateOfChange_LongerLag(t *testing.T) {
	values := []float64{100, 110, 99}
	out, err := RateOfChange(values, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !math.IsNaN(out[0]) || !math.IsNaN(out[1]) {
		t.Error("expected NaN for the first lag positions")
	}
	if !almostEqual(out[2], -1) {
		t.Errorf("expected -1%%, got %v", out[2])
	}
}

func TestRateOfChange_ZeroDenominator(t *testing.T) {
	out, err := RateOfChange([]float64{0, 5}, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out[1] != 0 {
		t.Errorf("expected zero change over a zero base, got %v", out[1])
	}
}

func TestRateOfChange_BadLag(t *testing.T) {
	if _, err := RateOfChange([]float64{1, 2}, 0); err == nil {
		t.Error("expected error for zero lag")
	}
}

func TestRatio(t *testing.T) {
	out, err := Ratio([]float64{10, 20, 30}, []float64{5, 4, 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []float64{2, 5, 3}
	for i, w := range want {
		if !almostEqual(out[i], w) {
			t.Errorf("index %d: expected %v, got %v", i, w, out[i])
		}
	}
}

func TestRatio_LengthMismatch(t *testing.T) {
	if _, err := Ratio([]float64{1, 2}, []float64{1}); err == nil {
		t.Error("expected error for mismatched lengths")
	}
}
