package costbasis

import (
	"testing"
)

func TestPolicy_Order(t *testing.T) {
	testCases := []struct {
		method     Method
		wantOrder  Order
		wantLedger string
	}{
		{FIFO, OldestFirst, "*costbasis.DiscreteLots"},
		{LIFO, NewestFirst, "*costbasis.DiscreteLots"},
		{Average, OldestFirst, "*costbasis.AveragedLot"},
	}
	for _, tc := range testCases {
		t.Run(tc.method.String(), func(t *testing.T) {
			p := Policy{Method: tc.method}
			if got := p.Order(); got != tc.wantOrder {
				t.Errorf("Order() = %v, want %v", got, tc.wantOrder)
			}
			switch p.NewLedger().(type) {
			case *DiscreteLots:
				if tc.wantLedger != "*costbasis.DiscreteLots" {
					t.Errorf("NewLedger() = *DiscreteLots, want %s", tc.wantLedger)
				}
			case *AveragedLot:
				if tc.wantLedger != "*costbasis.AveragedLot" {
					t.Errorf("NewLedger() = *AveragedLot, want %s", tc.wantLedger)
				}
			}
		})
	}
}

func TestPolicy_AcquisitionCost(t *testing.T) {
	b := tx("b", TxBuy, day(1), 2, 100, 10)
	if got, want := (Policy{}).AcquisitionCost(b), USD(200); !got.Equal(want) {
		t.Errorf("AcquisitionCost() without fees = %v, want %v", got, want)
	}
	if got, want := (Policy{IncludeFees: true}).AcquisitionCost(b), USD(210); !got.Equal(want) {
		t.Errorf("AcquisitionCost() with fees = %v, want %v", got, want)
	}

	drop := tx("a", TxAirdrop, day(1), 5, 0, 0)
	if got := (Policy{}).AcquisitionCost(drop); !got.IsZero() {
		t.Errorf("AcquisitionCost() of a free airdrop = %v, want 0", got)
	}
}

func TestPolicy_Realize(t *testing.T) {
	c := Consumption{Quantity: Q(2), Cost: USD(300)}
	testCases := []struct {
		name   string
		typ    TxType
		fees   bool
		wantPL Money
	}{
		{"sell", TxSell, false, USD(500)},
		{"sell with fees", TxSell, true, USD(495)},
		{"transfer out", TxTransferOut, false, USD(0)},
		{"transfer out with fees", TxTransferOut, true, USD(-5)},
		{"withdraw", TxWithdraw, false, USD(500)},
		{"withdraw with fees", TxWithdraw, true, USD(495)},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d := tx("d", tc.typ, day(2), 2, 400, 5)
			got := Policy{IncludeFees: tc.fees}.Realize(d, c)
			if !got.Equal(tc.wantPL) {
				t.Errorf("Realize() = %v, want %v", got, tc.wantPL)
			}
		})
	}
}

func TestPolicy_Validate(t *testing.T) {
	if err := (Policy{Method: LIFO}).Validate(); err != nil {
		t.Errorf("Validate() unexpected error: %v", err)
	}
	if err := (Policy{Method: Method(42)}).Validate(); err == nil {
		t.Error("Validate() expected an error for an unknown method")
	}
}
