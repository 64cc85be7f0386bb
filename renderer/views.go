package renderer

import (
	"time"

	"github.com/etnz/costbasis"
	"github.com/etnz/costbasis/date"
)

// Positions is the view of the final position of every pair.
type Positions struct {
	AsOf    string
	Rows    []PositionRow
	Skipped int
}

type PositionRow struct {
	Portfolio     string
	Asset         string
	Method        string
	Quantity      string
	AvgEntryPrice string
	RealizedPnL   string
}

// NewPositions builds the positions view of reports. A zero asOf means the
// end of the ledger.
func NewPositions(reports []costbasis.Report, asOf date.Date) *Positions {
	p := &Positions{}
	if !asOf.IsZero() {
		p.AsOf = asOf.String()
	}
	for _, rep := range reports {
		pos := rep.Position
		p.Rows = append(p.Rows, PositionRow{
			Portfolio:     pos.Portfolio,
			Asset:         pos.Asset,
			Method:        pos.Method.String(),
			Quantity:      pos.QuantityTotal.String(),
			AvgEntryPrice: pos.AvgEntryPrice.String(),
			RealizedPnL:   pos.RealizedPnL.SignedString(),
		})
		p.Skipped += len(rep.Errors)
	}
	return p
}

// History is the view of the replay of every pair, one row per transaction.
type History struct {
	Pairs []PairHistory
}

type PairHistory struct {
	Pair   string
	Method string
	Rows   []HistoryRow
}

type HistoryRow struct {
	Date          string
	Type          string
	Realized      string
	Quantity      string
	AvgEntryPrice string
	RealizedPnL   string
	Note          string
}

// NewHistory builds the history view of reports.
func NewHistory(reports []costbasis.Report) *History {
	h := &History{}
	for _, rep := range reports {
		ph := PairHistory{Pair: rep.Position.Pair().String(), Method: rep.Position.Method.String()}
		for _, res := range rep.Results {
			row := HistoryRow{
				Date:          day(res.Time),
				Type:          string(res.Type),
				Realized:      res.Realized.SignedString(),
				Quantity:      res.Quantity.String(),
				AvgEntryPrice: res.AvgEntryPrice.String(),
				RealizedPnL:   res.RealizedPnL.String(),
			}
			if res.Skipped {
				row.Note = "skipped"
			}
			ph.Rows = append(ph.Rows, row)
		}
		h.Pairs = append(h.Pairs, ph)
	}
	return h
}

// Lots is the view of the open lots of every pair.
type Lots struct {
	Pairs []PairLots
}

type PairLots struct {
	Pair   string
	Method string
	Rows   []LotRow
}

type LotRow struct {
	Seq      int
	Acquired string
	Quantity string
	UnitCost string
	Cost     string
}

// NewLots builds the open lots view of reports.
func NewLots(reports []costbasis.Report) *Lots {
	l := &Lots{}
	for _, rep := range reports {
		pl := PairLots{Pair: rep.Position.Pair().String(), Method: rep.Position.Method.String()}
		for _, lot := range rep.Lots {
			pl.Rows = append(pl.Rows, LotRow{
				Seq:      lot.Seq,
				Acquired: day(lot.Acquired),
				Quantity: lot.Quantity.String(),
				UnitCost: lot.UnitCost().String(),
				Cost:     lot.Cost.String(),
			})
		}
		l.Pairs = append(l.Pairs, pl)
	}
	return l
}

// Check is the view of the transactions skipped by the replays.
type Check struct {
	Errors []string
}

// NewCheck builds the check view of reports.
func NewCheck(reports []costbasis.Report) *Check {
	c := &Check{}
	for _, rep := range reports {
		for _, err := range rep.Errors {
			c.Errors = append(c.Errors, rep.Position.Pair().String()+": "+err.Error())
		}
	}
	return c
}

func day(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return date.Of(t).String()
}
