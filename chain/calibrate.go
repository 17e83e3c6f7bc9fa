package chain

import (
	"errors"
	"fmt"
	"math"

	"github.com/bcdannyboy/bsmvol/bsm"
	"gonum.org/v1/gonum/optimize"
)

const invalidSigmaPenalty = 1e12

// CalibrateFlatVol finds the single volatility that best reprices every quote
// in the least-squares sense, starting the Nelder-Mead search at initial.
func CalibrateFlatVol(model *bsm.Model, quotes []Quote, initial float64) (float64, error) {
	if len(quotes) == 0 {
		return 0, errors.New("calibrate: no quotes")
	}
	if model == nil {
		model = bsm.Default
	}
	if !(initial > 0) {
		return 0, fmt.Errorf("calibrate: %w", &bsm.DomainError{Param: "sigma", Value: initial, Want: "> 0"})
	}

	type point struct{ spot, strike, price, maturity, rate float64 }
	points := make([]point, len(quotes))
	for i, q := range quotes {
		spot, strike, price := q.floats()
		p := bsm.Params{Spot: spot, Strike: strike, Maturity: q.Maturity, Rate: q.Rate, Sigma: initial}
		if err := p.Validate(); err != nil {
			return 0, fmt.Errorf("calibrate: quote %s: %w", q.ID, err)
		}
		points[i] = point{spot, strike, price, q.Maturity, q.Rate}
	}

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			sigma := x[0]
			if !(sigma > 0) {
				return invalidSigmaPenalty
			}
			sse := 0.0
			for _, p := range points {
				diff := model.CallValue(p.spot, p.strike, p.maturity, p.rate, sigma) - p.price
				sse += diff * diff
			}
			return sse
		},
	}

	result, err := optimize.Minimize(problem, []float64{initial}, nil, &optimize.NelderMead{})
	if err != nil {
		return 0, fmt.Errorf("calibrate: %w", err)
	}

	sigma := result.X[0]
	if !(sigma > 0) || math.IsInf(sigma, 0) {
		return 0, fmt.Errorf("calibrate: %w", &bsm.DomainError{Param: "sigma", Value: sigma, Want: "> 0"})
	}
	return sigma, nil
}
