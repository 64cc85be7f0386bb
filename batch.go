package costbasis

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"runtime"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"
)

// Config is the accounting configuration of a set of portfolios.
type Config struct {
	// Default policy for portfolios missing from Portfolios.
	Default Policy
	// Portfolios maps a portfolio id to its policy.
	Portfolios map[string]Policy
	// Until, when not zero, ignores transactions after it.
	Until time.Time
	// Parallelism bounds the number of pairs replayed at once. Zero means
	// GOMAXPROCS.
	Parallelism int
}

// Policy returns the policy of portfolio.
func (c Config) Policy(portfolio string) Policy {
	if p, ok := c.Portfolios[portfolio]; ok {
		return p
	}
	return c.Default
}

// Group splits txs by (portfolio, asset). Pairs are sorted by portfolio then
// asset, transactions keep their input order inside a pair.
func Group(txs []Transaction) ([]Pair, map[Pair][]Transaction) {
	groups := make(map[Pair][]Transaction)
	for _, tx := range txs {
		groups[tx.Pair()] = append(groups[tx.Pair()], tx)
	}
	pairs := make([]Pair, 0, len(groups))
	for p := range groups {
		pairs = append(pairs, p)
	}
	slices.SortFunc(pairs, comparePairs)
	return pairs, groups
}

func comparePairs(a, b Pair) int {
	return cmp.Or(cmp.Compare(a.Portfolio, b.Portfolio), cmp.Compare(a.Asset, b.Asset))
}

// ComputeAll replays every (portfolio, asset) pair found in txs, each with
// its own ledger, in parallel.
//
// It returns one Report per pair sorted by portfolio then asset. Transaction
// errors are reported in each Report; the returned error is only set when ctx
// is done before all pairs are replayed.
func ComputeAll(ctx context.Context, txs []Transaction, cfg Config) ([]Report, error) {
	pairs, groups := Group(txs)
	reports := make([]Report, len(pairs))

	limit := cfg.Parallelism
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, pair := range pairs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("replay of %s: %w", pair, err)
			}
			r := newPairReplay(pair, cfg.Policy(pair.Portfolio))
			reports[i] = r.run(groups[pair], cfg.Until)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

// Check replays every pair of txs and returns all transaction errors joined,
// or nil when the history is consistent.
func Check(ctx context.Context, txs []Transaction, cfg Config) error {
	reports, err := ComputeAll(ctx, txs, cfg)
	if err != nil {
		return err
	}
	var errs []error
	for _, rep := range reports {
		for _, e := range rep.Errors {
			errs = append(errs, fmt.Errorf("%s: %w", rep.Position.Pair(), e))
		}
	}
	return errors.Join(errs...)
}
