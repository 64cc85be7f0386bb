package costbasis

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Position is the summary of a pair consumed by the rest of the application,
// recomputed wholesale on every replay.
type Position struct {
	Portfolio     string
	Asset         string
	Method        Method
	IncludeFees   bool
	Currency      string
	QuantityTotal Quantity
	AvgEntryPrice Money
	RealizedPnL   Money
}

// Pair returns the (portfolio, asset) of the position.
func (p Position) Pair() Pair { return Pair{Portfolio: p.Portfolio, Asset: p.Asset} }

// Project maps the final state of a replay into a Position. The average entry
// price of a flat position is 0.
func Project(pair Pair, policy Policy, currency string, final Result) Position {
	avg := final.AvgEntryPrice.In(currency)
	if final.Quantity.IsZero() {
		avg = M(0, currency)
	}
	return Position{
		Portfolio:     pair.Portfolio,
		Asset:         pair.Asset,
		Method:        policy.Method,
		IncludeFees:   policy.IncludeFees,
		Currency:      currency,
		QuantityTotal: final.Quantity,
		AvgEntryPrice: avg,
		RealizedPnL:   final.RealizedPnL.In(currency),
	}
}

// MarshalJSON writes the persisted shape of a position.
func (p Position) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("portfolio_id", p.Portfolio)
	w.Append("asset_id", p.Asset)
	w.Append("method", p.Method)
	w.Append("include_fees", p.IncludeFees)
	w.Optional("currency", p.Currency)
	w.Append("quantity_total", p.QuantityTotal)
	w.Append("avg_entry_price", p.AvgEntryPrice.Decimal())
	w.Append("realized_pnl", p.RealizedPnL.Decimal())
	return w.MarshalJSON()
}

func (p *Position) UnmarshalJSON(data []byte) error {
	var temp struct {
		Portfolio     string          `json:"portfolio_id"`
		Asset         string          `json:"asset_id"`
		Method        Method          `json:"method"`
		IncludeFees   bool            `json:"include_fees"`
		Currency      string          `json:"currency"`
		QuantityTotal Quantity        `json:"quantity_total"`
		AvgEntryPrice decimal.Decimal `json:"avg_entry_price"`
		RealizedPnL   decimal.Decimal `json:"realized_pnl"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return fmt.Errorf("invalid position: %w", err)
	}
	*p = Position{
		Portfolio:     temp.Portfolio,
		Asset:         temp.Asset,
		Method:        temp.Method,
		IncludeFees:   temp.IncludeFees,
		Currency:      temp.Currency,
		QuantityTotal: temp.QuantityTotal,
		AvgEntryPrice: M(temp.AvgEntryPrice, temp.Currency),
		RealizedPnL:   M(temp.RealizedPnL, temp.Currency),
	}
	return nil
}
