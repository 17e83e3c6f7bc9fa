package report

import (
	"fmt"
	"math"
	"os"

	"github.com/bcdannyboy/bsmvol/chain"
	"github.com/shopspring/decimal"
	"github.com/xhhuango/json"
)

// Record is the serialised form of one chain result.
type Record struct {
	ID         string          `json:"id"`
	Spot       decimal.Decimal `json:"spot"`
	Strike     decimal.Decimal `json:"strike"`
	Price      decimal.Decimal `json:"price"`
	Maturity   float64         `json:"maturity"`
	Rate       float64         `json:"rate"`
	ImpliedVol float64         `json:"implied_vol"`
	Residual   float64         `json:"residual"`
	Iterations int             `json:"iterations"`
	Converged  bool            `json:"converged"`
	Error      string          `json:"error,omitempty"`
}

// Records flattens chain results. Non-finite numbers are written as 0 since
// JSON cannot carry NaN or Inf; Converged and Error still describe the outcome.
func Records(results []chain.QuoteResult) []Record {
	records := make([]Record, len(results))
	for i, res := range results {
		r := Record{
			ID:         res.Quote.ID,
			Spot:       res.Quote.Spot,
			Strike:     res.Quote.Strike,
			Price:      res.Quote.Price,
			Maturity:   sanitizeFloat(res.Quote.Maturity),
			Rate:       sanitizeFloat(res.Quote.Rate),
			ImpliedVol: sanitizeFloat(res.IV.Sigma),
			Residual:   sanitizeFloat(res.IV.Residual),
			Iterations: res.IV.Iterations,
			Converged:  res.IV.Converged,
		}
		if res.Err != nil {
			r.Error = res.Err.Error()
		}
		records[i] = r
	}
	return records
}

func Marshal(results []chain.QuoteResult) ([]byte, error) {
	b, err := json.Marshal(Records(results))
	if err != nil {
		return nil, fmt.Errorf("marshal results: %w", err)
	}
	return b, nil
}

func WriteFile(path string, results []chain.QuoteResult) error {
	b, err := Marshal(results)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, b, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func sanitizeFloat(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
