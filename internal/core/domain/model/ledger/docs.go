// Package ledger provides the settlement ledger domain model: immutable
// monetary entries and the billing periods that group them for invoicing.
//
// The package includes:
//   - Entry: One append-only monetary movement (earning, commission,
//     adjustment or payout) identified by an idempotency key
//   - Kind: Entry classification
//   - BillingPeriod: A bounded window of settled activity for one party
//
// Key business rules:
//   - Entries are never edited or deleted; corrections are new offsetting
//     Adjustment entries built with Entry.Reverse
//   - Re-delivered completion events map to the same idempotency key and
//     must not double-credit
//   - The only permitted entry mutation is attaching it to a billing period,
//     exactly once, at settlement time
//   - A party's balance is the sum of entries not yet attached to an
//     invoiced period
package ledger
