package bsm

import (
	"errors"
	"fmt"
)

var (
	ErrDomain       = errors.New("bsm: input outside model domain")
	ErrZeroVega     = errors.New("bsm: vega is zero or not finite")
	ErrNotConverged = errors.New("bsm: implied volatility did not converge")
)

// DomainError names the parameter that failed validation.
type DomainError struct {
	Param string
	Value float64
	Want  string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("bsm: %s = %g, want %s", e.Param, e.Value, e.Want)
}

func (e *DomainError) Unwrap() error {
	return ErrDomain
}
