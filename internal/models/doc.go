// Package models defines the core domain models for the expense ledger.
//
// # Models
//
//   - Group: a named collection of at least two participants sharing expenses
//   - Participant: a member of a group, owned exclusively by that group
//   - Expense: a single payment made by one participant on behalf of the group
//   - Balance: derived per-participant net amount, recomputed on demand
//
// Participants are identified by name strings within their group (no user
// accounts). An expense records the payer by name, not by a live reference:
// the name is a point-in-time snapshot, so a historical expense is never
// relinked if the participant list ever changes.
//
// # Design Principles
//
//  1. **Plain values**: models carry no behavior beyond small lookups;
//     balance computation lives in the calculator package
//  2. **Avoid circular references**: expenses reference their group by ID
//     string, never by pointer
//  3. **Derived state stays derived**: Balance is never persisted
package models
