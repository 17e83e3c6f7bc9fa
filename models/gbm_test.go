package models

import (
	"math"
	"testing"

	"github.com/bcdannyboy/bsmvol/bsm"
	"golang.org/x/exp/rand"
)

func TestGBM_AgreesWithClosedForm(t *testing.T) {
	tests := []struct {
		name               string
		s0, k, t, r, sigma float64
	}{
		{"at the money", 100, 100, 1, 0.05, 0.2},
		{"out of the money", 100, 120, 0.5, 0.02, 0.3},
		{"in the money", 100, 80, 2, 0.01, 0.15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mc := NewGBM(200000, 1, 42).CallValue(tt.s0, tt.k, tt.t, tt.r, tt.sigma)
			want := bsm.CallValue(tt.s0, tt.k, tt.t, tt.r, tt.sigma)
			if math.Abs(mc-want) > 0.25 {
				t.Fatalf("monte carlo %v too far from closed form %v", mc, want)
			}
		})
	}
}

func TestGBM_Deterministic(t *testing.T) {
	g := NewGBM(5000, 4, 7)
	a := g.CallValue(100, 100, 1, 0.05, 0.2)
	b := g.CallValue(100, 100, 1, 0.05, 0.2)
	if a != b {
		t.Fatalf("same seed produced different estimates: %v vs %v", a, b)
	}
}

func TestGBM_SimulatePriceZeroVolatility(t *testing.T) {
	g := NewGBM(1, 10, 1)
	rng := rand.New(rand.NewSource(1))

	got := g.SimulatePrice(100, 0.05, 0, 2, rng)
	want := 100 * math.Exp(0.1)
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("zero-volatility path mismatch: got=%v want=%v", got, want)
	}
}

func TestGBM_NoPaths(t *testing.T) {
	if v := NewGBM(0, 1, 1).CallValue(100, 100, 1, 0.05, 0.2); !math.IsNaN(v) {
		t.Fatalf("expected NaN without paths, got %v", v)
	}
}
