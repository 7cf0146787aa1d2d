// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, authorization,
// transaction management, and persistence.
package commands

import (
	"context"

	"dispatch/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// RequestRepoFactory provides access to the request repository within a transaction.
	RequestRepoFactory interface {
		RequestRepository() ports.RequestRepository
	}

	// BidRepoFactory provides access to the bid repository within a transaction.
	BidRepoFactory interface {
		BidRepository() ports.BidRepository
	}

	// DeliveryRepoFactory provides access to the delivery repository within a transaction.
	DeliveryRepoFactory interface {
		DeliveryRepository() ports.DeliveryRepository
	}

	// AvailabilityRepoFactory provides access to the availability repository within a transaction.
	AvailabilityRepoFactory interface {
		AvailabilityRepository() ports.AvailabilityRepository
	}

	// LedgerRepoFactory provides access to the ledger repository within a transaction.
	LedgerRepoFactory interface {
		LedgerRepository() ports.LedgerRepository
	}

	// RequestUoW manages transactions for request-only operations.
	RequestUoW interface {
		TxManager
		RequestRepoFactory
	}

	// RequestUoWFactory creates new request unit of work instances.
	RequestUoWFactory interface {
		Create() RequestUoW
	}

	// AvailabilityUoW manages transactions for availability declarations.
	AvailabilityUoW interface {
		TxManager
		AvailabilityRepoFactory
	}

	// AvailabilityUoWFactory creates new availability unit of work instances.
	AvailabilityUoWFactory interface {
		Create() AvailabilityUoW
	}

	// NegotiationUoW manages transactions across the negotiation aggregates.
	// Accepting a bid mutates the winner, its pending siblings, the request,
	// and creates the delivery in one atomic unit.
	NegotiationUoW interface {
		TxManager
		RequestRepoFactory
		BidRepoFactory
		DeliveryRepoFactory
	}

	// NegotiationUoWFactory creates new negotiation unit of work instances.
	NegotiationUoWFactory interface {
		Create() NegotiationUoW
	}

	// FulfillmentUoW manages transactions for fulfillment transitions.
	// A confirmed delivery settles earnings and commission in the same
	// transaction, and terminal transitions cascade to the request.
	FulfillmentUoW interface {
		TxManager
		DeliveryRepoFactory
		RequestRepoFactory
		LedgerRepoFactory
	}

	// FulfillmentUoWFactory creates new fulfillment unit of work instances.
	FulfillmentUoWFactory interface {
		Create() FulfillmentUoW
	}

	// LedgerUoW manages transactions for settlement-only operations.
	LedgerUoW interface {
		TxManager
		LedgerRepoFactory
	}

	// LedgerUoWFactory creates new ledger unit of work instances.
	LedgerUoWFactory interface {
		Create() LedgerUoW
	}
)
