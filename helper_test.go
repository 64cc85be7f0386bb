package costbasis

import (
	"time"

	"github.com/shopspring/decimal"
)

// USD is a helper for test to create usd money from const
func USD(v float64) Money { return M(v, "USD") }

// NO is a helper for test to create money from const with no currency set
func NO(v float64) Money { return M(v, "") }

// day returns midnight UTC of the n-th day of January 2025.
func day(n int) time.Time { return time.Date(2025, time.January, n, 0, 0, 0, 0, time.UTC) }

// tx returns a valid transaction of portfolio "p1" on asset "BTC" in USD.
func tx(id string, typ TxType, when time.Time, quantity, price, fee float64) Transaction {
	return Transaction{
		ID:        id,
		Portfolio: "p1",
		Asset:     "BTC",
		Type:      typ,
		Quantity:  Q(quantity),
		Price:     decimal.NewFromFloat(price),
		Fee:       decimal.NewFromFloat(fee),
		Currency:  "USD",
		Time:      when,
	}
}

func buy(id string, when time.Time, quantity, price float64) Transaction {
	return tx(id, TxBuy, when, quantity, price, 0)
}

func sell(id string, when time.Time, quantity, price float64) Transaction {
	return tx(id, TxSell, when, quantity, price, 0)
}

// onPair moves t to another (portfolio, asset).
func onPair(t Transaction, portfolio, asset string) Transaction {
	t.Portfolio, t.Asset = portfolio, asset
	return t
}

// scenario is the reference history: two buys at 100 and 200 and a partial
// sell at 300.
func scenario() []Transaction {
	return []Transaction{
		buy("b1", day(1), 1, 100),
		buy("b2", day(2), 1, 200),
		sell("s1", day(3), 1, 300),
	}
}
