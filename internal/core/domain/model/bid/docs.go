// Package bid provides the Bid aggregate for the negotiation engine.
// A bid is a courier's price proposal on an open delivery request; it moves
// from Pending to exactly one of Accepted, Rejected or Withdrawn.
//
// Cross-bid invariants (at most one pending bid per request and courier pair,
// at most one accepted bid per request) are enforced by the negotiation
// command handlers inside a single transaction, not by the aggregate alone.
package bid
