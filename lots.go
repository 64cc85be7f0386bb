package costbasis

import (
	"time"
)

// Order is the order in which a disposal consumes the lots of a ledger.
type Order int

const (
	// OldestFirst reads the lots head to tail.
	OldestFirst Order = iota
	// NewestFirst reads the lots tail to head.
	NewestFirst
)

func (o Order) String() string {
	if o == NewestFirst {
		return "newest-first"
	}
	return "oldest-first"
}

// Lot is an open slice of a position created by an acquisition.
type Lot struct {
	Seq      int       // acquisition ordinal in its ledger, starting at 1
	TxID     string    // acquiring transaction
	Acquired time.Time // time of the acquiring transaction
	Quantity Quantity  // remaining quantity
	Cost     Money     // total cost of the remaining quantity
}

// UnitCost returns the cost of one unit of the lot, 0 for an empty lot.
func (l Lot) UnitCost() Money {
	avg, _ := averageOf(l.Cost, l.Quantity)
	return avg
}

// averageOf returns cost / quantity. A zero quantity returns a zero cost and
// ErrDegenerateAverage.
func averageOf(cost Money, q Quantity) (Money, error) {
	if q.IsZero() {
		return M(0, cost.Currency()), ErrDegenerateAverage
	}
	return cost.DivQuantity(q), nil
}

// Fill is the part of a single lot consumed by a disposal.
type Fill struct {
	Lot      Lot      // the lot as it was before the fill
	Quantity Quantity // quantity taken from the lot
	Cost     Money    // cost of the quantity taken
}

// Consumption is the result of a disposal against a ledger.
type Consumption struct {
	Quantity Quantity
	Cost     Money // total cost of the consumed quantity
	Fills    []Fill
}

// CostBasis returns the weighted average unit cost of the consumed quantity.
func (c Consumption) CostBasis() Money {
	avg, _ := averageOf(c.Cost, c.Quantity)
	return avg
}

// Ledger holds the open lots of one (portfolio, asset) pair.
//
// It is implemented by *DiscreteLots and *AveragedLot only. A Ledger is not
// safe for concurrent use.
type Ledger interface {
	// AddLot appends a lot of quantity at unitCost.
	AddLot(quantity Quantity, unitCost Money)
	// TotalQuantity returns the sum of the remaining quantity of all lots.
	TotalQuantity() Quantity
	// TotalCost returns the sum of the remaining cost of all lots.
	TotalCost() Money
	// Consume removes quantity from the lots in the given order. On
	// ErrInsufficientLots the ledger is left untouched.
	Consume(quantity Quantity, order Order) (Consumption, error)
	// Lots returns a copy of the open lots in acquisition order.
	Lots() []Lot

	add(l Lot)
}

// DiscreteLots keeps every lot in strict acquisition order, so that FIFO reads
// it head to tail and LIFO reads it tail to head.
type DiscreteLots struct {
	lots  []Lot
	total Quantity
	seq   int
}

// NewDiscreteLots returns an empty ledger of discrete lots.
func NewDiscreteLots() *DiscreteLots { return &DiscreteLots{} }

func (l *DiscreteLots) AddLot(quantity Quantity, unitCost Money) {
	l.add(Lot{Quantity: quantity, Cost: unitCost.Mul(quantity)})
}

func (l *DiscreteLots) add(lot Lot) {
	l.seq++
	lot.Seq = l.seq
	l.lots = append(l.lots, lot)
	l.total = l.total.Add(lot.Quantity)
}

func (l *DiscreteLots) TotalQuantity() Quantity { return l.total }

func (l *DiscreteLots) TotalCost() Money {
	var total Money
	for _, lot := range l.lots {
		total = total.Add(lot.Cost)
	}
	return total
}

func (l *DiscreteLots) Lots() []Lot {
	if len(l.lots) == 0 {
		return nil
	}
	return append([]Lot(nil), l.lots...)
}

func (l *DiscreteLots) Consume(quantity Quantity, order Order) (Consumption, error) {
	if !quantity.IsPositive() {
		return Consumption{}, invalidf("disposal quantity must be positive, got %s", quantity)
	}
	if l.total.LessThan(quantity) {
		return Consumption{}, &InsufficientLotsError{Requested: quantity, Available: l.total}
	}

	c := Consumption{Quantity: quantity}
	remaining := quantity
	for remaining.IsPositive() {
		i := 0
		if order == NewestFirst {
			i = len(l.lots) - 1
		}
		fill := drain(&l.lots[i], remaining)
		c.Fills = append(c.Fills, fill)
		c.Cost = c.Cost.Add(fill.Cost)
		remaining = remaining.Sub(fill.Quantity)

		if l.lots[i].Quantity.IsZero() {
			if order == NewestFirst {
				l.lots = l.lots[:i]
			} else {
				l.lots = l.lots[1:]
			}
		}
	}
	if len(l.lots) == 0 {
		l.lots = nil // release the backing array
	}
	l.total = l.total.Sub(quantity)
	return c, nil
}

// drain takes at most quantity from lot, in place.
func drain(lot *Lot, quantity Quantity) Fill {
	fill := Fill{Lot: *lot, Quantity: lot.Quantity.Min(quantity)}
	if fill.Quantity.Equal(lot.Quantity) {
		fill.Cost = lot.Cost
	} else {
		fill.Cost = lot.Cost.Mul(fill.Quantity).DivQuantity(lot.Quantity)
	}
	lot.Quantity = lot.Quantity.Sub(fill.Quantity)
	lot.Cost = lot.Cost.Sub(fill.Cost)
	return fill
}

// AveragedLot collapses every acquisition into a single synthetic lot whose
// unit cost is the running quantity-weighted average cost.
type AveragedLot struct {
	lot Lot
	seq int
}

// NewAveragedLot returns an empty averaged ledger.
func NewAveragedLot() *AveragedLot { return &AveragedLot{} }

func (a *AveragedLot) AddLot(quantity Quantity, unitCost Money) {
	a.add(Lot{Quantity: quantity, Cost: unitCost.Mul(quantity)})
}

// add merges lot into the synthetic lot:
//
//	newAvg = (oldQty*oldAvg + addedQty*addedUnitCost) / (oldQty + addedQty)
//
// which is kept as a total cost to stay exact.
func (a *AveragedLot) add(lot Lot) {
	a.seq++
	if a.lot.Quantity.IsZero() {
		lot.Seq = a.seq
		a.lot = lot
		return
	}
	a.lot.Quantity = a.lot.Quantity.Add(lot.Quantity)
	a.lot.Cost = a.lot.Cost.Add(lot.Cost)
}

func (a *AveragedLot) TotalQuantity() Quantity { return a.lot.Quantity }
func (a *AveragedLot) TotalCost() Money        { return a.lot.Cost }

func (a *AveragedLot) Lots() []Lot {
	if a.lot.Quantity.IsZero() {
		return nil
	}
	return []Lot{a.lot}
}

// Consume decrements the synthetic lot, order is irrelevant. The average
// unit cost is unchanged by disposals.
func (a *AveragedLot) Consume(quantity Quantity, _ Order) (Consumption, error) {
	if !quantity.IsPositive() {
		return Consumption{}, invalidf("disposal quantity must be positive, got %s", quantity)
	}
	if a.lot.Quantity.LessThan(quantity) {
		return Consumption{}, &InsufficientLotsError{Requested: quantity, Available: a.lot.Quantity}
	}
	fill := drain(&a.lot, quantity)
	if a.lot.Quantity.IsZero() {
		a.lot = Lot{} // flat again: no cost left behind
	}
	return Consumption{Quantity: quantity, Cost: fill.Cost, Fills: []Fill{fill}}, nil
}

func (l Lot) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("seq", l.Seq)
	w.Optional("tx_id", l.TxID)
	w.Optional("acquired", l.Acquired)
	w.Append("quantity", l.Quantity)
	w.Append("cost", l.Cost.Decimal())
	w.Append("unit_cost", l.UnitCost().Decimal())
	return w.MarshalJSON()
}

func (f Fill) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("lot", f.Lot.Seq)
	w.Optional("tx_id", f.Lot.TxID)
	w.Append("quantity", f.Quantity)
	w.Append("cost", f.Cost.Decimal())
	return w.MarshalJSON()
}
