package commands

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/pkg/errs"
)

// GenerateValidationCodeCommandHandler issues the single-use recipient code.
// Only the plaintext returned here ever leaves the system; the aggregate
// keeps a hash.
type GenerateValidationCodeCommandHandler struct {
	uowFactory FulfillmentUoWFactory
	codeTTL    time.Duration
}

// NewGenerateValidationCodeCommandHandler creates a handler for code
// issuance. A non-positive codeTTL falls back to the aggregate default.
func NewGenerateValidationCodeCommandHandler(
	uowFactory FulfillmentUoWFactory,
	codeTTL time.Duration,
) GenerateValidationCodeCommandHandler {
	if codeTTL <= 0 {
		codeTTL = delivery.DefaultCodeTTL
	}
	return GenerateValidationCodeCommandHandler{
		uowFactory: uowFactory,
		codeTTL:    codeTTL,
	}
}

// Handle processes the code issuance command and returns the plaintext code.
// Only the owner of the delivery's request may issue the code.
func (h GenerateValidationCodeCommandHandler) Handle(
	ctx context.Context,
	cmd GenerateValidationCodeCommand,
) (string, error) {
	if err := cmd.Validate(); err != nil {
		return "", err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return "", err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	deliveryRepo := uow.DeliveryRepository()

	aggregate, err := deliveryRepo.Get(ctx, cmd.DeliveryID())
	if err != nil {
		return "", err
	}

	req, err := uow.RequestRepository().Get(ctx, aggregate.RequestID())
	if err != nil {
		return "", err
	}
	if !req.RequesterID().IsEqual(cmd.Actor().ID()) {
		return "", errs.NewUnauthorizedError(cmd.Actor().ID().String(), "generate validation code")
	}

	code, err := aggregate.GenerateValidationCode(time.Now().UTC(), h.codeTTL)
	if err != nil {
		return "", err
	}

	if err = deliveryRepo.Update(ctx, aggregate); err != nil {
		return "", err
	}
	if err = uow.Commit(ctx); err != nil {
		return "", err
	}

	return code, nil
}
