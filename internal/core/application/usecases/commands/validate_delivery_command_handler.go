package commands

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/ledger"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// ValidateDeliveryCommandHandler confirms a delivery against the recipient's
// code. A successful confirmation settles the delivery in the same
// transaction: one Earning entry per distinct custody holder, splitting the
// courier share of the price, plus one Commission entry for the platform.
// Failed attempts still persist, because the mismatch counter and lockout
// window are state.
type ValidateDeliveryCommandHandler struct {
	uowFactory           FulfillmentUoWFactory
	notifier             ports.Notifier
	platformAccountID    kernel.UUID
	commissionBasisPoint int64
}

// NewValidateDeliveryCommandHandler creates a handler for delivery
// confirmation. commissionBasisPoints is the platform's cut in basis points
// of the agreed price.
func NewValidateDeliveryCommandHandler(
	uowFactory FulfillmentUoWFactory,
	notifier ports.Notifier,
	platformAccountID kernel.UUID,
	commissionBasisPoints int64,
) (ValidateDeliveryCommandHandler, error) {
	if err := platformAccountID.Validate(); err != nil {
		return ValidateDeliveryCommandHandler{}, err
	}
	if commissionBasisPoints < 0 || commissionBasisPoints > 10000 {
		return ValidateDeliveryCommandHandler{}, errs.NewValueIsOutOfRangeError(
			"commissionBasisPoints", commissionBasisPoints, 0, 10000)
	}

	return ValidateDeliveryCommandHandler{
		uowFactory:           uowFactory,
		notifier:             notifier,
		platformAccountID:    platformAccountID,
		commissionBasisPoint: commissionBasisPoints,
	}, nil
}

// Handle processes the confirmation command. Only the current holder may
// submit the code.
func (h ValidateDeliveryCommandHandler) Handle(ctx context.Context, cmd ValidateDeliveryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	deliveryRepo := uow.DeliveryRepository()

	aggregate, err := deliveryRepo.Get(ctx, cmd.DeliveryID())
	if err != nil {
		return err
	}
	if !aggregate.HolderID().IsEqual(cmd.Actor().ID()) {
		return errs.NewUnauthorizedError(cmd.Actor().ID().String(), "validate delivery")
	}

	now := time.Now().UTC()

	confirmErr := aggregate.ConfirmDelivery(cmd.Code(), now)
	if confirmErr != nil {
		return h.persistFailedAttempt(ctx, uow, aggregate, confirmErr)
	}

	if err = deliveryRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	req, err := uow.RequestRepository().Get(ctx, aggregate.RequestID())
	if err != nil {
		return err
	}
	if err = req.Complete(); err != nil {
		return err
	}
	if err = uow.RequestRepository().Update(ctx, req); err != nil {
		return err
	}

	if err = h.settle(ctx, uow, aggregate, req.Price(), now); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.NotifyDelivered(ctx, aggregate.ID())
	return nil
}

// persistFailedAttempt commits the aggregate after a rejected code. Mismatch
// counters, the lockout window and a Disputed transition on code expiry are
// all mutations that must survive the failed call.
func (h ValidateDeliveryCommandHandler) persistFailedAttempt(
	ctx context.Context,
	uow FulfillmentUoW,
	aggregate *delivery.Delivery,
	confirmErr error,
) error {
	if !errors.Is(confirmErr, errs.ErrValueIsInvalid) &&
		!errors.Is(confirmErr, errs.ErrValidationLocked) {
		return confirmErr
	}

	if err := uow.DeliveryRepository().Update(ctx, aggregate); err != nil {
		return err
	}
	if err := uow.Commit(ctx); err != nil {
		return err
	}

	if aggregate.Status() == delivery.Disputed {
		h.notifier.NotifyDisputed(ctx, aggregate.ID())
	}
	return confirmErr
}

// settle records the completion movements. Appends are idempotent on the
// delivery, kind and party, so a re-delivered completion event changes
// nothing.
func (h ValidateDeliveryCommandHandler) settle(
	ctx context.Context,
	uow FulfillmentUoW,
	aggregate *delivery.Delivery,
	price kernel.Money,
	now time.Time,
) error {
	commission, err := price.Percent(h.commissionBasisPoint)
	if err != nil {
		return err
	}

	negCommission, err := commission.Negate()
	if err != nil {
		return err
	}
	courierTotal, err := price.Add(negCommission)
	if err != nil {
		return err
	}

	holders := distinctHolders(aggregate.Legs())
	shares, err := courierTotal.Split(len(holders))
	if err != nil {
		return err
	}

	repo := uow.LedgerRepository()

	for i, holderID := range holders {
		if err = appendEntryOnce(
			ctx, repo, aggregate.ID(), holderID, shares[i], ledger.Earning, now); err != nil {
			return err
		}
	}

	return appendEntryOnce(
		ctx, repo, aggregate.ID(), h.platformAccountID, commission, ledger.Commission, now)
}

// appendEntryOnce records a settlement movement unless an entry with the
// same logical identity already exists.
func appendEntryOnce(
	ctx context.Context,
	repo ports.LedgerRepository,
	deliveryID kernel.UUID,
	partyID kernel.UUID,
	amount kernel.Money,
	kind ledger.Kind,
	now time.Time,
) error {
	// Zero movements carry no information and the ledger refuses them.
	if amount.Cents() == 0 {
		return nil
	}

	_, err := repo.GetEntryByKey(ctx, deliveryID, kind, partyID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}

	entry, err := ledger.NewEntry(kernel.NewUUID(), deliveryID, partyID, amount, kind, now)
	if err != nil {
		return err
	}
	return repo.AddEntry(ctx, entry)
}

// distinctHolders returns the couriers that held custody, in leg order.
func distinctHolders(legs []*delivery.Leg) []kernel.UUID {
	seen := make(map[kernel.UUID]struct{}, len(legs))
	holders := make([]kernel.UUID, 0, len(legs))

	for _, leg := range legs {
		holderID := leg.HolderID()
		if _, ok := seen[holderID]; ok {
			continue
		}
		seen[holderID] = struct{}{}
		holders = append(holders, holderID)
	}
	return holders
}
