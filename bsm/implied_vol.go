package bsm

import (
	"fmt"
	"math"

	"go.uber.org/zap"
)

// ImpliedVolatility refines sigmaEst with exactly it Newton-Raphson steps on Default.
func ImpliedVolatility(S0, K, T, r, C0, sigmaEst float64, it int) float64 {
	return Default.ImpliedVolatility(S0, K, T, r, C0, sigmaEst, it)
}

// ImpliedVolatility applies it Newton-Raphson steps to sigmaEst and returns
// the last estimate. There is no convergence test and no guard: a zero vega
// or an estimate pushed to sigma <= 0 flows straight into the next step and
// the caller gets whatever NaN, Inf or meaningless value results.
func (m *Model) ImpliedVolatility(S0, K, T, r, C0, sigmaEst float64, it int) float64 {
	for i := 0; i < it; i++ {
		sigmaEst -= (m.CallValue(S0, K, T, r, sigmaEst) - C0) / m.Vega(S0, K, T, r, sigmaEst)
	}
	return sigmaEst
}

// Solve runs a bounded Newton-Raphson search for the volatility that
// reprices C0, stopping once |CallValue - C0| < cfg.Tolerance.
//
// The returned IVResult is always populated with the last estimate. The error
// wraps ErrDomain when the inputs or an iterate leave the model domain,
// ErrZeroVega when the step cannot be taken, and ErrNotConverged when the
// iteration budget runs out.
func (m *Model) Solve(S0, K, T, r, C0, sigmaEst float64, cfg SolverConfig) (IVResult, error) {
	cfg = cfg.withDefaults()
	result := IVResult{Sigma: sigmaEst, Residual: math.NaN()}

	if err := (Params{Spot: S0, Strike: K, Maturity: T, Rate: r, Sigma: sigmaEst}).Validate(); err != nil {
		return result, fmt.Errorf("implied volatility: %w", err)
	}
	if !(C0 >= 0) || math.IsInf(C0, 0) {
		return result, fmt.Errorf("implied volatility: %w", &DomainError{Param: "C0", Value: C0, Want: ">= 0"})
	}

	sigma := sigmaEst
	for i := 0; i < cfg.MaxIterations; i++ {
		diff := m.CallValue(S0, K, T, r, sigma) - C0
		result.Residual = diff
		if math.Abs(diff) < cfg.Tolerance {
			result.Converged = true
			return result, nil
		}

		vega := m.derivative(S0, K, T, r, sigma)
		if vega == 0 || math.IsNaN(vega) || math.IsInf(vega, 0) {
			m.logger.Debug("implied volatility step impossible",
				zap.Float64("sigma", sigma),
				zap.Float64("vega", vega),
				zap.Int("iteration", i))
			return result, fmt.Errorf("implied volatility at sigma=%g: %w", sigma, ErrZeroVega)
		}

		sigma -= diff / vega
		result.Sigma = sigma
		result.Iterations = i + 1

		if !(sigma > 0) || math.IsInf(sigma, 0) {
			m.logger.Debug("implied volatility left the domain",
				zap.Float64("sigma", sigma),
				zap.Float64("residual", diff),
				zap.Int("iteration", i+1))
			return result, fmt.Errorf("implied volatility: %w", &DomainError{Param: "sigma", Value: sigma, Want: "> 0"})
		}
	}

	result.Residual = m.CallValue(S0, K, T, r, sigma) - C0
	if math.Abs(result.Residual) < cfg.Tolerance {
		result.Converged = true
		return result, nil
	}

	m.logger.Debug("implied volatility exhausted iterations",
		zap.Float64("sigma", sigma),
		zap.Float64("residual", result.Residual),
		zap.Int("iterations", cfg.MaxIterations))
	return result, fmt.Errorf("%w after %d iterations (residual %g)", ErrNotConverged, cfg.MaxIterations, result.Residual)
}
