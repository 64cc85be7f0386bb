// Package cmd implements the cbs command line application.
package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/charmbracelet/glamour"
	"github.com/etnz/costbasis"
	"github.com/etnz/costbasis/date"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&positionCmd{}, "reports")
	c.Register(&historyCmd{}, "reports")
	c.Register(&lotsCmd{}, "reports")
	c.Register(&checkCmd{}, "ledger")
	c.Register(&fmtCmd{}, "ledger")
	c.Register(&topicCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var ledgerFile = flag.String("ledger-file", "transactions.jsonl", "Path to the ledger file containing transactions (JSONL format)")

// stdout is where commands print their output.
var stdout io.Writer = os.Stdout

// DecodeLedger reads the transactions of the app ledger file.
func DecodeLedger() ([]costbasis.Transaction, error) {
	f, err := os.Open(*ledgerFile)
	if err != nil {
		return nil, fmt.Errorf("could not open ledger: %w", err)
	}
	defer f.Close()
	txs, err := costbasis.DecodeTransactions(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode ledger %q: %w", *ledgerFile, err)
	}
	return txs, nil
}

// portfolioMethods is a repeated flag of id=method values.
type portfolioMethods map[string]costbasis.Method

func (p portfolioMethods) String() string {
	var parts []string
	for id, m := range p {
		parts = append(parts, id+"="+m.String())
	}
	slices.Sort(parts)
	return strings.Join(parts, ",")
}

func (p portfolioMethods) Set(value string) error {
	id, name, ok := strings.Cut(value, "=")
	if !ok || id == "" {
		return fmt.Errorf("invalid portfolio method %q, want <portfolio>=<method>", value)
	}
	m, err := costbasis.ParseMethod(name)
	if err != nil {
		return err
	}
	p[id] = m
	return nil
}

// replayFlags are the flags shared by all commands replaying the ledger.
type replayFlags struct {
	method    string
	fees      bool
	on        date.Date
	portfolio string
	asset     string
	methods   portfolioMethods
}

func (r *replayFlags) SetFlags(f *flag.FlagSet) {
	r.methods = make(portfolioMethods)
	f.StringVar(&r.method, "method", "fifo", "Cost basis method (fifo, lifo, avg).")
	f.BoolVar(&r.fees, "fees", false, "Include fees in the cost basis and the realized PnL.")
	f.Var(&r.on, "d", "Replay the transactions up to the end of this day (UTC), the whole ledger by default.")
	f.StringVar(&r.portfolio, "p", "", "Only report on this portfolio.")
	f.StringVar(&r.asset, "a", "", "Only report on this asset.")
	f.Var(r.methods, "portfolio-method", "Cost basis method of a single portfolio, as <portfolio>=<method>. Can be repeated.")
}

// config returns the replay configuration selected by the flags.
func (r *replayFlags) config() (costbasis.Config, error) {
	m, err := costbasis.ParseMethod(r.method)
	if err != nil {
		return costbasis.Config{}, err
	}
	cfg := costbasis.Config{
		Default:    costbasis.Policy{Method: m, IncludeFees: r.fees},
		Portfolios: make(map[string]costbasis.Policy, len(r.methods)),
	}
	for id, pm := range r.methods {
		cfg.Portfolios[id] = costbasis.Policy{Method: pm, IncludeFees: r.fees}
	}
	if !r.on.IsZero() {
		cfg.Until = r.on.EndOfDay(time.UTC)
	}
	return cfg, nil
}

// replay decodes the ledger and replays the selected pairs.
func (r *replayFlags) replay(ctx context.Context) ([]costbasis.Report, error) {
	cfg, err := r.config()
	if err != nil {
		return nil, err
	}
	txs, err := DecodeLedger()
	if err != nil {
		return nil, err
	}
	txs = slices.DeleteFunc(txs, func(tx costbasis.Transaction) bool {
		return (r.portfolio != "" && tx.Portfolio != r.portfolio) || (r.asset != "" && tx.Asset != r.asset)
	})
	return costbasis.ComputeAll(ctx, txs, cfg)
}

// outputFlags select how a command prints its result.
type outputFlags struct {
	json  bool
	query string
	raw   bool
}

func (o *outputFlags) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&o.json, "json", false, "Print the result as JSON.")
	f.StringVar(&o.query, "q", "", "JSONPath query applied to the JSON result, implies -json.")
	f.BoolVar(&o.raw, "raw", false, "Print markdown without terminal rendering.")
}

// print prints v as JSON when requested, markdown otherwise.
func (o *outputFlags) print(v any, markdown func() string) error {
	if o.json || o.query != "" {
		return printJSON(v, o.query)
	}
	printMarkdown(markdown(), o.raw)
	return nil
}

func printMarkdown(md string, raw bool) {
	if raw {
		fmt.Fprint(stdout, md)
		return
	}
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Fprint(stdout, md)
		return
	}
	fmt.Fprint(stdout, out)
}

func printJSON(v any, query string) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("could not marshal result: %w", err)
	}
	var jobj any = json.RawMessage(data)
	if query != "" {
		var obj any
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		jval, err := jsonpath.Get(query, obj)
		if err != nil {
			return fmt.Errorf("error evaluating %q: %w", query, err)
		}
		jobj = jval
	}
	out, err := json.MarshalIndent(jobj, "", "  ")
	if err != nil {
		return fmt.Errorf("could not marshal result: %w", err)
	}
	fmt.Fprintln(stdout, string(out))
	return nil
}

// fail prints err and returns a failure status.
func fail(err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return subcommands.ExitFailure
}
