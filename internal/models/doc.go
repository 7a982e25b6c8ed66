// Package models defines the domain values shared by the ledger, the engine and the
// RPC layer.
//
// # Ledger values
//
//   - Trip: a shared trip with a member list, a currency and an invite code
//   - Expense: one payment by a member, split among participants
//   - Split: a participant's share of one expense
//   - Settlement: a recorded repayment between two members
//   - ItineraryItem: a planned activity, ordered by start time
//
// # Derived values
//
// Balance, Transfer and Summary are never stored. They are recomputed from the ledger
// on every read so no incremental state can drift.
//
// # Design Principles
//
//  1. Money is decimal.Decimal at cent precision, stored as integer cents.
//  2. Relationships use ID strings, never pointers.
//  3. Ledger values are replaced wholesale on edit, never patched in place.
package models
