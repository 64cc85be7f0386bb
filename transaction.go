package costbasis

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TxType is a typed string identifying the kind of a transaction.
type TxType string

// Transaction types.
const (
	TxBuy         TxType = "buy"
	TxSell        TxType = "sell"
	TxTransferIn  TxType = "transfer_in"
	TxTransferOut TxType = "transfer_out"
	TxDeposit     TxType = "deposit"
	TxWithdraw    TxType = "withdraw"
	TxAirdrop     TxType = "airdrop"
)

// ParseTxType parses a transaction type.
func ParseTxType(s string) (TxType, error) {
	t := TxType(s)
	if !t.IsAcquisition() && !t.IsDisposal() {
		return "", fmt.Errorf("unknown transaction type %q", s)
	}
	return t, nil
}

// IsAcquisition reports whether transactions of this type add a lot.
func (t TxType) IsAcquisition() bool {
	switch t {
	case TxBuy, TxTransferIn, TxDeposit, TxAirdrop:
		return true
	}
	return false
}

// IsDisposal reports whether transactions of this type consume lots.
func (t TxType) IsDisposal() bool {
	switch t {
	case TxSell, TxTransferOut, TxWithdraw:
		return true
	}
	return false
}

// realizes reports whether a disposal of this type realizes gains. Transfers
// out move the cost basis out of the portfolio with the asset.
func (t TxType) realizes() bool { return t == TxSell || t == TxWithdraw }

// Pair identifies the (portfolio, asset) a ledger is kept for.
type Pair struct {
	Portfolio string `json:"portfolio"`
	Asset     string `json:"asset"`
}

func (p Pair) String() string { return p.Portfolio + "/" + p.Asset }

// Transaction is an immutable input event of the engine.
//
// Price and Fee are expressed in the quote currency of the asset. Currency is
// optional; when set it must be the same for every transaction of a pair.
type Transaction struct {
	ID        string
	Portfolio string
	Asset     string
	Type      TxType
	Quantity  Quantity
	Price     decimal.Decimal // unit price
	Fee       decimal.Decimal
	Currency  string
	Time      time.Time
	Note      string
	TxHash    string
}

// Pair returns the (portfolio, asset) of the transaction.
func (t Transaction) Pair() Pair { return Pair{Portfolio: t.Portfolio, Asset: t.Asset} }

// UnitPrice returns the price as Money.
func (t Transaction) UnitPrice() Money { return M(t.Price, t.Currency) }

// FeeAmount returns the fee as Money.
func (t Transaction) FeeAmount() Money { return M(t.Fee, t.Currency) }

// Amount returns the gross amount price * quantity.
func (t Transaction) Amount() Money { return t.UnitPrice().Mul(t.Quantity) }

// Validate checks the transaction fields. The returned error wraps
// ErrInvalidTransaction.
func (t Transaction) Validate() error {
	if !t.Type.IsAcquisition() && !t.Type.IsDisposal() {
		return invalidf("unknown type %q", t.Type)
	}
	if t.Portfolio == "" {
		return invalidf("%s: portfolio is missing", t.Type)
	}
	if t.Asset == "" {
		return invalidf("%s: asset is missing", t.Type)
	}
	if t.Time.IsZero() {
		return invalidf("%s: timestamp is missing", t.Type)
	}
	if !t.Quantity.IsPositive() {
		return invalidf("%s quantity must be positive, got %s", t.Type, t.Quantity)
	}
	if t.Price.IsNegative() {
		return invalidf("%s price must not be negative, got %s", t.Type, t.Price)
	}
	if (t.Type == TxBuy || t.Type == TxSell) && !t.Price.IsPositive() {
		return invalidf("%s price must be positive, got %s", t.Type, t.Price)
	}
	if t.Fee.IsNegative() {
		return invalidf("%s fee must not be negative, got %s", t.Type, t.Fee)
	}
	if err := ValidateCurrency(t.Currency); err != nil {
		return invalidf("%s: %v", t.Type, err)
	}
	return nil
}

// MarshalJSON implements the json.Marshaler interface for Transaction.
func (t Transaction) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Optional("id", t.ID)
	w.Append("portfolio", t.Portfolio)
	w.Append("asset", t.Asset)
	w.Append("type", t.Type)
	w.Append("time", t.Time.Format(time.RFC3339Nano))
	w.Append("quantity", t.Quantity)
	w.Append("price", t.Price)
	w.Optional("fee", t.Fee)
	w.Optional("currency", t.Currency)
	w.Optional("note", t.Note)
	w.Optional("tx_hash", t.TxHash)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Transaction.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	var temp struct {
		ID        string          `json:"id"`
		Portfolio string          `json:"portfolio"`
		Asset     string          `json:"asset"`
		Type      TxType          `json:"type"`
		Time      time.Time       `json:"time"`
		Quantity  Quantity        `json:"quantity"`
		Price     decimal.Decimal `json:"price"`
		Fee       decimal.Decimal `json:"fee"`
		Currency  string          `json:"currency"`
		Note      string          `json:"note"`
		TxHash    string          `json:"tx_hash"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	*t = Transaction{
		ID:        temp.ID,
		Portfolio: temp.Portfolio,
		Asset:     temp.Asset,
		Type:      temp.Type,
		Quantity:  temp.Quantity,
		Price:     temp.Price,
		Fee:       temp.Fee,
		Currency:  temp.Currency,
		Time:      temp.Time,
		Note:      temp.Note,
		TxHash:    temp.TxHash,
	}
	return nil
}
