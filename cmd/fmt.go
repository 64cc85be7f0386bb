package cmd

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/etnz/costbasis"
	"github.com/google/subcommands"
)

type fmtCmd struct {
	dryRun bool
}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "formats the ledger file into a canonical form"
}
func (*fmtCmd) Usage() string {
	return `cbs fmt [-n]

  Reads all transactions, gives an id to the ones missing it, sorts them by
  timestamp and writes them back in a canonical JSONL format. Transactions
  with the same timestamp keep their order, so formatting never changes the
  result of a replay.

Usage Examples:
# Prints the formatted ledger without modifying it.
$ cbs fmt -n
`
}

func (c *fmtCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.dryRun, "n", false, "Print the formatted ledger instead of writing it.")
}

func (c *fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	txs, err := DecodeLedger()
	if err != nil {
		return fail(err)
	}
	slices.SortStableFunc(txs, func(a, b costbasis.Transaction) int { return a.Time.Compare(b.Time) })

	var buf bytes.Buffer
	if err := costbasis.EncodeTransactions(&buf, txs); err != nil {
		return fail(err)
	}
	if c.dryRun {
		fmt.Fprint(stdout, buf.String())
		return subcommands.ExitSuccess
	}
	if err := replaceFile(*ledgerFile, buf.Bytes()); err != nil {
		return fail(err)
	}
	fmt.Fprintf(os.Stderr, "Formatted %d transactions in %s\n", len(txs), *ledgerFile)
	return subcommands.ExitSuccess
}

// replaceFile atomically replaces the content of name.
func replaceFile(name string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(name), filepath.Base(name)+".*")
	if err != nil {
		return fmt.Errorf("could not create temporary ledger: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("could not write ledger: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("could not write ledger: %w", err)
	}
	return os.Rename(tmp.Name(), name)
}
