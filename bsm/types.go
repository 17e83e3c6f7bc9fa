package bsm

import "math"

const (
	// DefaultIterations is the Newton-Raphson budget used when none is given.
	DefaultIterations = 100
	// DefaultTolerance is the absolute price residual at which Solve stops.
	DefaultTolerance = 1e-8
)

// Params is a single pricing point.
type Params struct {
	Spot     float64 // S0
	Strike   float64 // K
	Maturity float64 // T in years
	Rate     float64 // r, continuously compounded
	Sigma    float64 // annualized volatility
}

// Validate checks the preconditions of the closed-form formula. Rate may be any finite value.
func (p Params) Validate() error {
	checks := []struct {
		name  string
		value float64
	}{
		{"S0", p.Spot},
		{"K", p.Strike},
		{"T", p.Maturity},
		{"sigma", p.Sigma},
	}
	for _, c := range checks {
		if !(c.value > 0) || math.IsInf(c.value, 0) {
			return &DomainError{Param: c.name, Value: c.value, Want: "> 0"}
		}
	}
	if math.IsNaN(p.Rate) || math.IsInf(p.Rate, 0) {
		return &DomainError{Param: "r", Value: p.Rate, Want: "finite"}
	}
	return nil
}

type BSMResult struct {
	D1    float64
	D2    float64
	Price float64
	Vega  float64
}

// SolverConfig bounds the implied volatility search.
type SolverConfig struct {
	MaxIterations int
	Tolerance     float64
}

func (c SolverConfig) withDefaults() SolverConfig {
	if c.MaxIterations <= 0 {
		c.MaxIterations = DefaultIterations
	}
	if !(c.Tolerance > 0) {
		c.Tolerance = DefaultTolerance
	}
	return c
}

// IVResult is the outcome of a bounded implied volatility search.
// Iterations counts the Newton updates applied to the starting estimate.
type IVResult struct {
	Sigma      float64
	Residual   float64
	Iterations int
	Converged  bool
}
