package bsm

import (
	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat/distuv"
)

// CDF is a standard normal cumulative distribution function. distuv.Normal satisfies it.
type CDF interface {
	CDF(x float64) float64
}

// CDFFunc adapts a plain function to CDF.
type CDFFunc func(x float64) float64

func (f CDFFunc) CDF(x float64) float64 {
	return f(x)
}

// Model evaluates the BSM call formulas against an injected normal CDF.
// A Model is immutable once built and safe for concurrent use.
type Model struct {
	phi         CDF
	density     func(x float64) float64
	densityVega bool
	logger      *zap.Logger
}

type Option func(*Model)

// WithDensity replaces the normal density used by DensityVega.
func WithDensity(pdf func(x float64) float64) Option {
	return func(m *Model) {
		m.density = pdf
	}
}

// WithDensityVega makes Solve step with DensityVega instead of Vega.
func WithDensityVega() Option {
	return func(m *Model) {
		m.densityVega = true
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(m *Model) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewModel builds a Model around phi. A nil phi falls back to distuv.UnitNormal.
func NewModel(phi CDF, opts ...Option) *Model {
	if phi == nil {
		phi = distuv.UnitNormal
	}
	m := &Model{
		phi:     phi,
		density: distuv.UnitNormal.Prob,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Default prices with gonum's unit normal distribution.
var Default = NewModel(distuv.UnitNormal)
