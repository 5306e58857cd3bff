// Package models defines the record types of the paydown ledger.
//
// # Records
//
//   - Bet: a wagered event with a stake, decimal odds and a settlement status
//   - Payment: money moved into the debt payoff pool from one income stream
//   - Card: a named debt account with a fixed starting balance
//   - Settings: process-wide configuration edited by the user
//   - Snapshot: everything above plus the milestone counter, the unit of load/save
//
// # Design Principles
//
// 1. **Derived, never stored**: remaining balances, profit and progress are computed
// by the calculator from the raw records on every read
// 2. **Weak references**: Payment.CardID and Settings.AutoBankCardID are plain ids,
// resolved at read time; deleting a card leaves them dangling
// 3. **Exact money**: amounts are decimal.Decimal, rounded to cents at aggregation
// boundaries only
package models
