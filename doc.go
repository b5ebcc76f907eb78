// Package patrimoine implements the accounting and projection core of a
// personal investment tracker.
//
// The package is organized around the Ledger, an ordered list of transactions
// (buys, sells, dividends, recurring investment plans). Every other result is
// a pure projection of the ledger and of a QuoteBook of manually entered
// prices: positions with their weighted-average cost basis, portfolio
// performance indicators, projected dividend income, and forward-looking
// wealth simulations (accumulation, compound-interest breakdown, retirement
// drawdown, and single-asset what-if scenarios).
//
// The core performs no I/O and holds no hidden state: callers load the ledger
// and quotes (see DecodeLedger and DecodeQuotes), inject a reference date,
// and get back plain data structures. Rendering and persistence live in the
// renderer and cmd packages.
package patrimoine
