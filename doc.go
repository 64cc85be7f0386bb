// Package costbasis computes the realized profit and loss of a position from
// its history of transactions.
//
// The transactions of one (portfolio, asset) pair are replayed in
// chronological order through a Ledger of open lots:
//   - Acquisitions (buy, transfer_in, deposit, airdrop) add a lot.
//   - Disposals (sell, transfer_out, withdraw) consume lots in the order of the
//     accounting Method: oldest first (FIFO), newest first (LIFO), or from a
//     single lot holding the weighted average cost (Average).
//
// Each replayed transaction produces a Result (cumulative realized PnL, open
// quantity, average entry price) and the final state is projected into a
// Position. A transaction that cannot be applied, because it is invalid or
// because it disposes of more than the open quantity, is skipped and
// reported: it never aborts the replay.
//
// All arithmetic is decimal, replays are deterministic and can be re-run from
// an empty state at will. Distinct pairs share nothing and ComputeAll replays
// them in parallel.
package costbasis
