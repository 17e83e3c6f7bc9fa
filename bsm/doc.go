// Package bsm values European calls under Black-Scholes-Merton and backs
// out implied volatility by Newton-Raphson iteration.
package bsm
