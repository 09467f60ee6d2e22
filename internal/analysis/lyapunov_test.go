package analysis

import (
	"math"
	"testing"

	"github.com/san-kum/dynmap/internal/maps"
)

func TestLyapunovLogistic(t *testing.T) {
	chaotic := maps.Logistic{R: 4}
	lambda := LyapunovExponent(chaotic, chaotic.Init(0.3), 100, 5000, 1e-9)
	if lambda < 0.5 || lambda > 0.9 {
		t.Errorf("expected exponent near ln 2, got %f", lambda)
	}

	stable := maps.Logistic{R: 2.5}
	lambda = LyapunovExponent(stable, stable.Init(0.3), 500, 1000, 1e-9)
	if lambda >= 0 {
		t.Errorf("expected negative exponent, got %f", lambda)
	}
}

func TestLyapunovLinearNoisy(t *testing.T) {
	d := maps.Drift{A: 0.5, B: 0.1, Sigma: 0.05}
	lambda := LyapunovExponent(d, d.Init(0.2), 10, 200, 1e-6)
	if math.Abs(lambda-math.Log(0.5)) > 1e-4 {
		t.Errorf("expected %f, got %f", math.Log(0.5), lambda)
	}
}

func TestLyapunovSpectrum(t *testing.T) {
	v := maps.VectorMap{Scale: 0.8}
	spectrum := LyapunovSpectrum(v, v.Init(0.5, 0.5), 0, 100, 1e-6)
	if len(spectrum) != 2 {
		t.Fatalf("expected 2 exponents, got %d", len(spectrum))
	}
	for i, l := range spectrum {
		if math.Abs(l-math.Log(0.8)) > 1e-4 {
			t.Errorf("exponent %d: expected %f, got %f", i, math.Log(0.8), l)
		}
	}
}

func TestLyapunovDegenerate(t *testing.T) {
	l := maps.NewLogistic()
	if got := LyapunovExponent(l, l.Init(), 0, 0, 1e-9); got != 0 {
		t.Errorf("expected 0 for no steps, got %f", got)
	}
	if got := LyapunovExponent(l, l.Init(), 0, 10, 0); got != 0 {
		t.Errorf("expected 0 for zero eps, got %f", got)
	}
}
