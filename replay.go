package costbasis

import (
	"slices"
	"time"
)

// State is the state of the position of a pair.
type State int

const (
	// Flat means the ledger holds no open lot.
	Flat State = iota
	// Open means the ledger holds at least one open lot.
	Open
)

func (s State) String() string {
	if s == Open {
		return "open"
	}
	return "flat"
}

// Result is the state of a pair right after one transaction of a replay.
type Result struct {
	Index         int       // position of the transaction in the replayed input
	TxID          string    // id of the transaction
	Time          time.Time // time of the transaction
	Type          TxType
	Skipped       bool  // the transaction was rejected, the state was carried forward
	Realized      Money // PnL realized by this transaction alone
	RealizedPnL   Money // cumulative realized PnL
	Quantity      Quantity
	AvgEntryPrice Money // 0 when Quantity is 0
	Fills         []Fill
}

func (r Result) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("index", r.Index)
	w.Optional("tx_id", r.TxID)
	w.Optional("time", r.Time)
	w.Optional("type", r.Type)
	w.Optional("skipped", r.Skipped)
	w.Append("realized", r.Realized.Decimal())
	w.Append("realized_pnl", r.RealizedPnL.Decimal())
	w.Append("quantity", r.Quantity)
	w.Append("avg_entry_price", r.AvgEntryPrice.Decimal())
	w.Optional("currency", r.RealizedPnL.Currency())
	if len(r.Fills) > 0 {
		w.Append("fills", r.Fills)
	}
	return w.MarshalJSON()
}

// Replay folds the transactions of a single (portfolio, asset) pair through a
// Ledger using a Policy.
//
// Transactions must be applied in chronological order. A Replay is not safe
// for concurrent use, distinct pairs need distinct Replays.
type Replay struct {
	policy   Policy
	ledger   Ledger
	pair     Pair
	bound    bool // pair is set
	currency string
	lastTime time.Time
	realized Money
	last     Result
	count    int
	errs     []error
}

// NewReplay returns an empty replay for the given policy.
func NewReplay(policy Policy) *Replay {
	return &Replay{
		policy: policy,
		ledger: policy.NewLedger(),
	}
}

// newPairReplay returns a replay bound to pair.
func newPairReplay(pair Pair, policy Policy) *Replay {
	r := NewReplay(policy)
	r.pair, r.bound = pair, true
	return r
}

// Pair returns the pair of the replay, zero until a transaction was accepted.
func (r *Replay) Pair() Pair { return r.pair }

// Currency returns the quote currency of the pair, if any transaction set it.
func (r *Replay) Currency() string { return r.currency }

// State returns Open when the ledger holds some quantity.
func (r *Replay) State() State {
	if r.ledger.TotalQuantity().IsPositive() {
		return Open
	}
	return Flat
}

// Lots returns the open lots in acquisition order.
func (r *Replay) Lots() []Lot { return r.ledger.Lots() }

// Last returns the state after the last applied transaction.
func (r *Replay) Last() Result { return r.last }

// Errors returns every error collected so far.
func (r *Replay) Errors() []error { return slices.Clone(r.errs) }

// Position projects the current state into a Position.
func (r *Replay) Position() Position {
	return Project(r.pair, r.policy, r.currency, r.last)
}

// Apply folds tx into the replay and returns the resulting state.
//
// A rejected transaction leaves the state unchanged: the returned Result is
// the previous one marked as skipped, and the error (a *TxError) is also
// collected in Errors.
func (r *Replay) Apply(tx Transaction) (Result, error) {
	return r.apply(r.count, tx)
}

func (r *Replay) apply(index int, tx Transaction) (Result, error) {
	r.count++
	res := r.last
	res.Index, res.TxID, res.Time, res.Type = index, tx.ID, tx.Time, tx.Type
	res.Skipped = false
	res.Realized = M(0, r.currency)
	res.Fills = nil

	tx, err := r.admit(tx)
	if err != nil {
		return r.skip(res, err)
	}

	switch {
	case tx.Type.IsAcquisition():
		r.ledger.add(Lot{
			TxID:     tx.ID,
			Acquired: tx.Time,
			Quantity: tx.Quantity,
			Cost:     r.policy.AcquisitionCost(tx),
		})
	case tx.Type.IsDisposal():
		c, err := r.ledger.Consume(tx.Quantity, r.policy.Order())
		if err != nil {
			return r.skip(res, err)
		}
		res.Realized = r.policy.Realize(tx, c)
		res.Fills = c.Fills
		r.realized = r.realized.Add(res.Realized)
	}

	if !r.bound {
		r.pair, r.bound = tx.Pair(), true
	}
	if r.currency == "" && tx.Currency != "" {
		r.currency = tx.Currency
	}
	r.lastTime = tx.Time

	res.RealizedPnL = r.realized.In(r.currency)
	res.Realized = res.Realized.In(r.currency)
	res.Quantity = r.ledger.TotalQuantity()
	res.AvgEntryPrice, _ = averageOf(r.ledger.TotalCost().In(r.currency), res.Quantity)
	r.last = res
	return res, nil
}

// admit validates tx against the replay and returns the copy to apply.
func (r *Replay) admit(tx Transaction) (Transaction, error) {
	if err := r.policy.Validate(); err != nil {
		return tx, err
	}
	if err := tx.Validate(); err != nil {
		return tx, err
	}
	if r.bound && tx.Pair() != r.pair {
		return tx, invalidf("transaction for %s replayed on %s", tx.Pair(), r.pair)
	}
	if tx.Time.Before(r.lastTime) {
		return tx, invalidf("transaction on %s is before the last replayed one on %s",
			tx.Time.Format(time.RFC3339), r.lastTime.Format(time.RFC3339))
	}
	switch {
	case tx.Currency == "":
		tx.Currency = r.currency
	case r.currency != "" && tx.Currency != r.currency:
		return tx, invalidf("currency %s does not match %s currency %s", tx.Currency, r.pair, r.currency)
	}
	return tx, nil
}

func (r *Replay) skip(res Result, err error) (Result, error) {
	txErr := &TxError{Index: res.Index, TxID: res.TxID, Err: err}
	r.errs = append(r.errs, txErr)
	res.Skipped = true
	return res, txErr
}

// Options configures a replay.
type Options struct {
	Method      Method
	IncludeFees bool
	// Until, when not zero, ignores transactions after it.
	Until time.Time
}

func (o Options) policy() Policy { return Policy{Method: o.Method, IncludeFees: o.IncludeFees} }

// Report is the outcome of the replay of one pair. Indexes in Results and
// Errors refer to the transactions given to the replay of this pair.
type Report struct {
	Position Position
	Results  []Result // one per replayed transaction, in replay order
	Errors   []error  // *TxError, in replay order
	Lots     []Lot    // lots still open at the end of the replay
}

// MarshalJSON writes the fields of the position followed by the results, the
// error messages and the open lots.
func (r Report) MarshalJSON() ([]byte, error) {
	errs := make([]string, 0, len(r.Errors))
	for _, err := range r.Errors {
		errs = append(errs, err.Error())
	}
	results, lots := r.Results, r.Lots
	if results == nil {
		results = []Result{}
	}
	if lots == nil {
		lots = []Lot{}
	}
	var w jsonObjectWriter
	w.EmbedFrom(r.Position)
	w.Append("results", results)
	w.Append("errors", errs)
	w.Append("lots", lots)
	return w.MarshalJSON()
}

// Compute replays txs for one (portfolio, asset) pair and returns the final
// position, the state after each transaction and the transaction errors.
func Compute(txs []Transaction, method Method, includeFees bool) (Position, []Result, []error) {
	rep := Run(txs, Options{Method: method, IncludeFees: includeFees})
	return rep.Position, rep.Results, rep.Errors
}

// Run replays txs for one (portfolio, asset) pair: the pair of txs[0].
// Transactions of any other pair are rejected.
//
// Transactions are replayed in timestamp order, ties keep the input order;
// txs itself is not modified. Results and errors report the index of the
// transaction in txs. With an unknown method every transaction is rejected
// with ErrUnknownMethod.
func Run(txs []Transaction, opts Options) Report {
	if len(txs) == 0 {
		return NewReplay(opts.policy()).run(nil, opts.Until)
	}
	return newPairReplay(txs[0].Pair(), opts.policy()).run(txs, opts.Until)
}

func (r *Replay) run(txs []Transaction, until time.Time) Report {
	order := make([]int, 0, len(txs))
	for i, tx := range txs {
		if !until.IsZero() && tx.Time.After(until) {
			continue
		}
		order = append(order, i)
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return txs[a].Time.Compare(txs[b].Time)
	})

	rep := Report{Results: make([]Result, 0, len(order))}
	for _, i := range order {
		res, _ := r.apply(i, txs[i])
		rep.Results = append(rep.Results, res)
	}
	rep.Errors = r.Errors()
	rep.Lots = r.Lots()
	rep.Position = r.Position()
	return rep
}
