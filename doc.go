// Package invest implements the purchase desk of exchange-traded and
// fixed-income investments: what a user may buy, for which amount, and why not.
//
// The core functionalities include:
//   - Catalog: the purchasable instruments (Quote), their kind and unit price,
//     decoded from JSONL files or from the backend's JSON documents.
//   - Reconciliation: deriving a consistent amount and whole share count from
//     either a typed amount (ReconcileFromAmount) or a typed share count
//     (ReconcileFromShares), with the warnings the user must see.
//   - Validation: the ordered checks that a purchase must pass (Validate),
//     reported as a single user facing error.
//   - Drafts: the state of one purchase interaction (Draft), which input is
//     authoritative, and when a typed amount is snapped to whole shares.
//   - Orders: handing a validated purchase to an Executor.
//
// Amounts are exact decimals (Money). They are only rounded for display, or
// when a rule says so.
package invest
