// Package delivery provides the fulfillment state machine for accepted
// deliveries. It implements the Delivery aggregate root with multi-leg relay
// custody and the proof-of-delivery validation protocol.
//
// The package includes:
//   - Delivery: The aggregate root owning the custody chain and validation state
//   - Leg: One custody segment bounded by a start and end location/time and a
//     single responsible courier
//   - PendingHandover: An initiated relay transfer awaiting acknowledgement
//   - ValidationCode: The single-use secret proving receipt at the drop point
//   - TrackingEvent: An append-only audit trail of state changes
//
// Key business rules:
//   - Assigned -> InTransit -> (AtRelay -> InTransit)* -> Delivered | Disputed | Cancelled
//   - A relay handover keeps the original holder accountable until the next
//     courier acknowledges pickup within the deadline
//   - Validation codes are compared in constant time; five consecutive
//     mismatches lock validation for a timed window, and the lockout response
//     never reveals whether the count or the code TTL triggered it
//   - Cancellation is forbidden after the first acknowledged handover
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package delivery
