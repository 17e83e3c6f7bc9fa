package chain

import (
	"github.com/bcdannyboy/bsmvol/bsm"
	"github.com/shopspring/decimal"
)

// Quote is an observed European call price. Prices arrive as decimals and
// are converted to float64 only for the model.
type Quote struct {
	ID       string
	Spot     decimal.Decimal
	Strike   decimal.Decimal
	Price    decimal.Decimal
	Maturity float64 // years
	Rate     float64
}

func (q Quote) floats() (spot, strike, price float64) {
	return q.Spot.InexactFloat64(), q.Strike.InexactFloat64(), q.Price.InexactFloat64()
}

type QuoteResult struct {
	Quote Quote
	IV    bsm.IVResult
	Err   error
}
