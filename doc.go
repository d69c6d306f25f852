// Package payproc derives final client account states from a sequential
// stream of payment transaction records.
//
// The core functionalities include:
//   - Exact Money Arithmetic: a fixed-point Amount type with four fractional
//     digits, so balances never accumulate float rounding error.
//   - Transaction Application: a Ledger engine that applies deposits,
//     withdrawals and the three-phase dispute protocol (dispute, then
//     resolve or chargeback) against per-client accounts.
//   - Dispute Bookkeeping: an insertion-ordered store of historical
//     deposit/withdrawal transactions that later dispute actions are
//     resolved against.
//   - Data Persistence: decoding transaction streams from CSV or JSONL and
//     projecting final accounts into report rows.
//
// This package serves as the foundational logic for the `payproc`
// command-line tool.
package payproc
