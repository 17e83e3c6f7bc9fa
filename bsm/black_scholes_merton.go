package bsm

import "math"

// CallValue returns the present value of a European call with Default.
//
// Inputs are not checked: sigma = 0 or T = 0 divide by zero and S0 <= 0 or
// K <= 0 take the log of a non-positive number, so the result is NaN or ±Inf.
func CallValue(S0, K, T, r, sigma float64) float64 {
	return Default.CallValue(S0, K, T, r, sigma)
}

// Vega returns ∂CallValue/∂sigma as S0·Φ(d1)·√T with Default.
func Vega(S0, K, T, r, sigma float64) float64 {
	return Default.Vega(S0, K, T, r, sigma)
}

func (m *Model) CallValue(S0, K, T, r, sigma float64) float64 {
	d1 := calculateD1(S0, K, T, r, sigma)
	d2 := calculateD2(S0, K, T, r, sigma)
	return S0*m.phi.CDF(d1) - K*math.Exp(-r*T)*m.phi.CDF(d2)
}

// Vega uses the cumulative Φ(d1), not the density. The closed-form BSM vega
// is DensityVega; the two differ everywhere except in the limit d1 -> ±∞.
func (m *Model) Vega(S0, K, T, r, sigma float64) float64 {
	d1 := calculateD1(S0, K, T, r, sigma)
	return S0 * m.phi.CDF(d1) * math.Sqrt(T)
}

// DensityVega returns S0·φ(d1)·√T.
func (m *Model) DensityVega(S0, K, T, r, sigma float64) float64 {
	d1 := calculateD1(S0, K, T, r, sigma)
	return S0 * m.density(d1) * math.Sqrt(T)
}

// Calculate validates p and evaluates price and vega at it.
func (m *Model) Calculate(p Params) (BSMResult, error) {
	if err := p.Validate(); err != nil {
		return BSMResult{}, err
	}

	d1 := calculateD1(p.Spot, p.Strike, p.Maturity, p.Rate, p.Sigma)
	d2 := calculateD2(p.Spot, p.Strike, p.Maturity, p.Rate, p.Sigma)

	return BSMResult{
		D1:    d1,
		D2:    d2,
		Price: p.Spot*m.phi.CDF(d1) - p.Strike*math.Exp(-p.Rate*p.Maturity)*m.phi.CDF(d2),
		Vega:  m.derivative(p.Spot, p.Strike, p.Maturity, p.Rate, p.Sigma),
	}, nil
}

func (m *Model) derivative(S0, K, T, r, sigma float64) float64 {
	if m.densityVega {
		return m.DensityVega(S0, K, T, r, sigma)
	}
	return m.Vega(S0, K, T, r, sigma)
}

func calculateD1(S0, K, T, r, sigma float64) float64 {
	return (math.Log(S0/K) + (r+0.5*sigma*sigma)*T) / (sigma * math.Sqrt(T))
}

func calculateD2(S0, K, T, r, sigma float64) float64 {
	return (math.Log(S0/K) + (r-0.5*sigma*sigma)*T) / (sigma * math.Sqrt(T))
}
