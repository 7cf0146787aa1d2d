// Package request provides domain entities and business logic for posted
// delivery requests in the marketplace. It implements the DeliveryRequest
// aggregate root with lifecycle management and state transitions.
//
// The package includes:
//   - DeliveryRequest: The aggregate root owning pickup/drop points, time window,
//     package constraints and the offered price
//   - PackageSpec: Parcel weight and handling constraints
//   - Status: A state machine that enforces valid request status transitions
//
// Key business rules:
//   - Requests must carry a positive price and a valid time window
//   - Status follows a defined workflow: Draft -> Open -> Matched -> InFulfillment -> Completed
//   - Cancellation is allowed from Open and Matched; from InFulfillment only as a
//     cascade of delivery cancellation before the first acknowledged relay handover
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package request
