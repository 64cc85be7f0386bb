package costbasis

import "fmt"

// Policy is the accounting policy of a position: the method selecting the
// lots a disposal consumes, and whether fees are part of the PnL.
//
// A Policy is a stateless value.
type Policy struct {
	Method      Method
	IncludeFees bool
}

// Order returns the lot consumption order of the method.
func (p Policy) Order() Order {
	if p.Method == LIFO {
		return NewestFirst
	}
	return OldestFirst
}

// NewLedger returns the empty ledger variant suited to the method.
func (p Policy) NewLedger() Ledger {
	if p.Method == Average {
		return NewAveragedLot()
	}
	return NewDiscreteLots()
}

// AcquisitionCost returns the total cost of the lot created by an acquisition:
// price * quantity, plus the fee when fees are included.
//
// An airdrop or a transfer in without price is a zero cost lot.
func (p Policy) AcquisitionCost(tx Transaction) Money {
	cost := tx.Amount()
	if p.IncludeFees {
		cost = cost.Add(tx.FeeAmount())
	}
	return cost
}

// Realize returns the PnL realized by a disposal that consumed c:
//
//	sum((price - lot unit cost) * consumed quantity) - fee
//
// Transfers out carry their cost basis away and only realize their fee.
func (p Policy) Realize(tx Transaction, c Consumption) Money {
	var pnl Money
	if tx.Type.realizes() {
		pnl = tx.UnitPrice().Mul(c.Quantity).Sub(c.Cost)
	} else {
		pnl = M(0, tx.Currency)
	}
	if p.IncludeFees {
		pnl = pnl.Sub(tx.FeeAmount())
	}
	return pnl
}

// Validate reports an unknown method. The returned error wraps
// ErrUnknownMethod.
func (p Policy) Validate() error {
	if p.Method < FIFO || p.Method > Average {
		return fmt.Errorf("%w: %d", ErrUnknownMethod, int(p.Method))
	}
	return nil
}
