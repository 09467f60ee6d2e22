package analysis

import (
	"math"
	"testing"
)

func TestDetectPeriodLogistic(t *testing.T) {
	tests := []struct {
		r        float64
		expected int
	}{
		{2.8, 1},
		{3.2, 2},
		{3.5, 4},
		{3.9, -1},
	}

	for _, tt := range tests {
		values := SampleBifurcation([]float64{tt.r}, 0.5, 3000, 256)[0].Values
		if got := DetectPeriod(values, 1e-6, 64); got != tt.expected {
			t.Errorf("r=%.2f: expected period %d, got %d", tt.r, tt.expected, got)
		}
	}
}

func TestDetectPeriodShortSeries(t *testing.T) {
	if got := DetectPeriod([]float64{0.5}, 1e-6, 8); got != -1 {
		t.Errorf("expected -1, got %d", got)
	}
	if got := DetectPeriod(nil, 1e-6, 8); got != -1 {
		t.Errorf("expected -1, got %d", got)
	}
	if got := DetectPeriod([]float64{math.NaN(), math.NaN()}, 1e-6, 8); got != -1 {
		t.Errorf("expected -1 for NaN, got %d", got)
	}
}

func TestAmplitude(t *testing.T) {
	if got := Amplitude([]float64{0.2, 0.9, 0.4}); math.Abs(got-0.7) > 1e-12 {
		t.Errorf("expected 0.7, got %f", got)
	}
	if got := Amplitude(nil); got != 0 {
		t.Errorf("expected 0, got %f", got)
	}
}
