package costbasis

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/google/uuid"
)

// txNamespace is the uuid namespace of the ids given to transactions decoded
// without one.
var txNamespace = uuid.MustParse("7d1f3a6e-52c4-4c0b-9a7e-4b1c2f0e8d35")

// DecodeTransactions reads transactions from a stream of JSONL data, one
// transaction per line, in file order. Blank lines are skipped.
//
// A transaction without an id receives one derived from its line number and
// content, so decoding the same file twice yields the same ids.
func DecodeTransactions(r io.Reader) ([]Transaction, error) {
	var txs []Transaction
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	n := 0
	for scanner.Scan() {
		n++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var tx Transaction
		if err := json.Unmarshal(line, &tx); err != nil {
			return nil, fmt.Errorf("format error on line %d %q: %w", n, string(line), err)
		}
		if tx.ID == "" {
			tx.ID = lineID(n, line)
		}
		txs = append(txs, tx)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("could not read transactions: %w", err)
	}
	return txs, nil
}

// lineID returns a stable id for the transaction on line n.
func lineID(n int, line []byte) string {
	data := append([]byte(strconv.Itoa(n)+":"), line...)
	return uuid.NewSHA1(txNamespace, data).String()
}

// EncodeTransaction writes a single transaction as a JSON line.
func EncodeTransaction(w io.Writer, tx Transaction) error {
	data, err := json.Marshal(tx)
	if err != nil {
		return fmt.Errorf("failed to marshal transaction %q: %w", tx.ID, err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write transaction: %w", err)
	}
	return nil
}

// EncodeTransactions writes txs in JSONL format, in the given order.
func EncodeTransactions(w io.Writer, txs []Transaction) error {
	for _, tx := range txs {
		if err := EncodeTransaction(w, tx); err != nil {
			return err
		}
	}
	return nil
}
