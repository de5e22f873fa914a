// Package sellplan decides which open positions of a stock or ETF
// portfolio to sell, and in what quantity, to realize a given taxable
// profit, typically the unused remainder of a yearly tax-free
// allowance.
//
// The package is organized around a small pipeline:
//   - Ledger Management: recording the chronological buy and sell
//     trades per symbol and reducing them, first-in first-out, into the
//     lots still held today.
//   - Gain Computation: attaching a signed per-unit gain to every open
//     lot from a snapshot of current prices, including the per-symbol
//     partial tax exemption that applies to equity funds.
//   - Sale Optimization: a backtracking search over the candidate lots
//     that hits the target profit with the fewest trades and, among
//     equal trade counts, the lowest traded volume. At most one lot is
//     sold partially to land on the target exactly.
//   - Reporting: turning the resulting sale plan into markdown for the
//     `sellplan` command-line tool.
//
// All monetary and share amounts use exact decimal arithmetic, so a
// plan that claims to realize the target profit realizes it to the
// cent.
package sellplan
