package commands_test

import (
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/bid"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/request"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCancelRequestCommandHandler_Handle_OpenWithPendingBids(t *testing.T) {
	ctx := t.Context()

	requesterID := kernel.NewUUID()
	testRequest := openRequest(t, requesterID)
	pending := pendingBid(t, testRequest.ID(), 4000)
	withdrawn := pendingBid(t, testRequest.ID(), 4300)
	require.NoError(t, withdrawn.Withdraw())

	actor := requesterActor(t, requesterID)
	cmd, err := commands.NewCancelRequestCommand(actor, testRequest.ID(), "plans changed")
	require.NoError(t, err)

	requestRepo := new(MockRequestRepository)
	bidRepo := new(MockBidRepository)
	uow := new(MockNegotiationUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RequestRepository").Return(requestRepo).Once(),
		requestRepo.On("Get", ctx, testRequest.ID()).Return(testRequest, nil).Once(),
		uow.On("RequestRepository").Return(requestRepo).Once(),
		requestRepo.On("Update", ctx, mock.AnythingOfType("*request.DeliveryRequest")).
			Return(nil).
			Once(),
		uow.On("BidRepository").Return(bidRepo).Once(),
		bidRepo.On("GetAllByRequest", ctx, testRequest.ID()).
			Return([]*bid.Bid{pending, withdrawn}, nil).
			Once(),
		bidRepo.On("Update", ctx, mock.AnythingOfType("*bid.Bid")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockNegotiationUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCancelRequestCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, request.Cancelled, testRequest.Status())
	assert.Equal(t, bid.Rejected, pending.Status())
	assert.Equal(t, bid.Withdrawn, withdrawn.Status())

	bidRepo.AssertExpectations(t)
	requestRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCancelRequestCommandHandler_Handle_MatchedCascadesToDelivery(t *testing.T) {
	ctx := t.Context()

	requesterID := kernel.NewUUID()
	testRequest := openRequest(t, requesterID)
	require.NoError(t, testRequest.Match())

	testDelivery, err := delivery.NewDelivery(
		kernel.NewUUID(), testRequest.ID(), kernel.NewUUID(),
		testRequest.Pickup(), testRequest.Drop(),
		time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	actor := requesterActor(t, requesterID)
	cmd, err := commands.NewCancelRequestCommand(actor, testRequest.ID(), "plans changed")
	require.NoError(t, err)

	requestRepo := new(MockRequestRepository)
	bidRepo := new(MockBidRepository)
	deliveryRepo := new(MockDeliveryRepository)
	uow := new(MockNegotiationUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RequestRepository").Return(requestRepo).Once(),
		requestRepo.On("Get", ctx, testRequest.ID()).Return(testRequest, nil).Once(),
		uow.On("RequestRepository").Return(requestRepo).Once(),
		requestRepo.On("Update", ctx, mock.AnythingOfType("*request.DeliveryRequest")).
			Return(nil).
			Once(),
		uow.On("BidRepository").Return(bidRepo).Once(),
		bidRepo.On("GetAllByRequest", ctx, testRequest.ID()).Return([]*bid.Bid{}, nil).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		deliveryRepo.On("GetByRequest", ctx, testRequest.ID()).Return(testDelivery, nil).Once(),
		deliveryRepo.On("Update", ctx, mock.AnythingOfType("*delivery.Delivery")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockNegotiationUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCancelRequestCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, request.Cancelled, testRequest.Status())
	assert.Equal(t, delivery.Cancelled, testDelivery.Status())
	assert.Equal(t, "plans changed", testDelivery.CancelReason())
}

func TestCancelRequestCommandHandler_Handle_NotOwner(t *testing.T) {
	ctx := t.Context()

	testRequest := openRequest(t, kernel.NewUUID())
	stranger := requesterActor(t, kernel.NewUUID())
	cmd, err := commands.NewCancelRequestCommand(stranger, testRequest.ID(), "")
	require.NoError(t, err)

	requestRepo := new(MockRequestRepository)
	uow := new(MockNegotiationUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RequestRepository").Return(requestRepo).Once(),
		requestRepo.On("Get", ctx, testRequest.ID()).Return(testRequest, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockNegotiationUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCancelRequestCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrUnauthorized)
	assert.Equal(t, request.Open, testRequest.Status())
	requestRepo.AssertNotCalled(t, "Update")
}

func TestCancelRequestCommandHandler_Handle_FulfillmentStarted(t *testing.T) {
	ctx := t.Context()

	requesterID := kernel.NewUUID()
	testRequest := openRequest(t, requesterID)
	require.NoError(t, testRequest.Match())
	require.NoError(t, testRequest.StartFulfillment())

	actor := requesterActor(t, requesterID)
	cmd, err := commands.NewCancelRequestCommand(actor, testRequest.ID(), "")
	require.NoError(t, err)

	requestRepo := new(MockRequestRepository)
	uow := new(MockNegotiationUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RequestRepository").Return(requestRepo).Once(),
		requestRepo.On("Get", ctx, testRequest.ID()).Return(testRequest, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockNegotiationUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCancelRequestCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrInvalidState)
}
