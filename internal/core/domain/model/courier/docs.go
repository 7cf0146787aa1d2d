// Package courier provides domain entities for courier management in the
// marketplace. It implements the Courier aggregate root together with the
// Availability declarations the matching engine consumes.
//
// The package includes:
//   - Courier: The aggregate root holding courier identity and reliability rating
//   - Availability: A declared route segment with time window, carrying capacity
//     and refrigeration capability
//
// Key business rules:
//   - Couriers must have a valid unique identifier and a non-empty name
//   - The rating is a score in [0, 1] recomputed from completed deliveries
//   - Availabilities carry the operational constraints; one courier may declare
//     several segments per day with different capacities
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package courier
