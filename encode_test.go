package costbasis

import (
	"bytes"
	"strings"
	"testing"
)

const sampleJSONL = `{"id":"b1","portfolio":"p1","asset":"BTC","type":"buy","time":"2025-01-01T00:00:00Z","quantity":1,"price":100,"currency":"USD"}

{"portfolio":"p1","asset":"BTC","type":"buy","time":"2025-01-02T00:00:00Z","quantity":1,"price":200,"fee":1.5,"currency":"USD","note":"dca"}
{"portfolio":"p1","asset":"BTC","type":"sell","time":"2025-01-03T00:00:00Z","quantity":1,"price":300,"currency":"USD","tx_hash":"0xabc"}
`

func TestDecodeTransactions(t *testing.T) {
	txs, err := DecodeTransactions(strings.NewReader(sampleJSONL))
	if err != nil {
		t.Fatalf("DecodeTransactions() unexpected error: %v", err)
	}
	if got, want := len(txs), 3; got != want {
		t.Fatalf("DecodeTransactions() returned %d transactions, want %d", got, want)
	}
	if got, want := txs[0].ID, "b1"; got != want {
		t.Errorf("txs[0].ID = %q, want %q", got, want)
	}
	if txs[1].ID == "" || txs[1].ID == txs[2].ID {
		t.Errorf("generated ids are not unique: %q %q", txs[1].ID, txs[2].ID)
	}
	if got, want := txs[1].Fee.String(), "1.5"; got != want {
		t.Errorf("txs[1].Fee = %s, want %s", got, want)
	}
	if got, want := txs[2].TxHash, "0xabc"; got != want {
		t.Errorf("txs[2].TxHash = %q, want %q", got, want)
	}
	if got, want := txs[2].Time, day(3); !got.Equal(want) {
		t.Errorf("txs[2].Time = %v, want %v", got, want)
	}

	again, err := DecodeTransactions(strings.NewReader(sampleJSONL))
	if err != nil {
		t.Fatalf("DecodeTransactions() unexpected error: %v", err)
	}
	for i := range txs {
		if txs[i].ID != again[i].ID {
			t.Errorf("id of transaction #%d changed between decodes: %q != %q", i, txs[i].ID, again[i].ID)
		}
	}

	pos, _, errs := Compute(txs, FIFO, false)
	if len(errs) != 0 {
		t.Fatalf("Compute() unexpected errors: %v", errs)
	}
	if got, want := pos.RealizedPnL, USD(200); !got.Equal(want) {
		t.Errorf("RealizedPnL = %v, want %v", got, want)
	}
}

func TestDecodeTransactions_FormatError(t *testing.T) {
	input := "{\"id\":\"b1\",\"type\":\"buy\"}\n\n{not json}\n"
	_, err := DecodeTransactions(strings.NewReader(input))
	if err == nil {
		t.Fatal("DecodeTransactions() expected an error")
	}
	if !strings.Contains(err.Error(), "line 3") {
		t.Errorf("DecodeTransactions() error = %v, want it to name line 3", err)
	}
}

func TestEncodeTransactions(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodeTransactions(&buf, scenario()); err != nil {
		t.Fatalf("EncodeTransactions() unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if got, want := len(lines), 3; got != want {
		t.Fatalf("EncodeTransactions() wrote %d lines, want %d", got, want)
	}
	want := `{"id":"b1","portfolio":"p1","asset":"BTC","type":"buy","time":"2025-01-01T00:00:00Z","quantity":1,"price":100,"currency":"USD"}`
	if lines[0] != want {
		t.Errorf("first line = %s, want %s", lines[0], want)
	}

	back, err := DecodeTransactions(&buf)
	if err != nil {
		t.Fatalf("DecodeTransactions() unexpected error: %v", err)
	}
	for i, tx := range scenario() {
		if back[i].ID != tx.ID || back[i].Type != tx.Type || !back[i].Quantity.Equal(tx.Quantity) || !back[i].Price.Equal(tx.Price) {
			t.Errorf("transaction #%d = %+v, want %+v", i, back[i], tx)
		}
	}
}
