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

func pendingBid(t *testing.T, requestID kernel.UUID, cents int64) *bid.Bid {
	t.Helper()
	price, err := kernel.NewMoney(cents, kernel.DefaultCurrency)
	require.NoError(t, err)
	aggregate, err := bid.NewBid(
		kernel.NewUUID(), requestID, kernel.NewUUID(), price,
		time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return aggregate
}

func TestAcceptBidCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	requesterID := kernel.NewUUID()
	testRequest := openRequest(t, requesterID)
	winner := pendingBid(t, testRequest.ID(), 4000)
	loser := pendingBid(t, testRequest.ID(), 4200)

	actor := requesterActor(t, requesterID)
	deliveryID := kernel.NewUUID()
	cmd, err := commands.NewAcceptBidCommand(actor, winner.ID(), deliveryID)
	require.NoError(t, err)

	requestRepo := new(MockRequestRepository)
	bidRepo := new(MockBidRepository)
	deliveryRepo := new(MockDeliveryRepository)
	uow := new(MockNegotiationUoW)
	notifier := new(MockNotifier)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("BidRepository").Return(bidRepo).Once(),
		bidRepo.On("Get", ctx, winner.ID()).Return(winner, nil).Once(),
		uow.On("RequestRepository").Return(requestRepo).Once(),
		requestRepo.On("Get", ctx, testRequest.ID()).Return(testRequest, nil).Once(),
		bidRepo.On("Update", ctx, mock.AnythingOfType("*bid.Bid")).Return(nil).Once(),
		bidRepo.On("GetAllByRequest", ctx, testRequest.ID()).
			Return([]*bid.Bid{winner, loser}, nil).
			Once(),
		bidRepo.On("Update", ctx, mock.AnythingOfType("*bid.Bid")).Return(nil).Once(),
		uow.On("RequestRepository").Return(requestRepo).Once(),
		requestRepo.On("Update", ctx, mock.AnythingOfType("*request.DeliveryRequest")).
			Return(nil).
			Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		deliveryRepo.On("Add", ctx, mock.AnythingOfType("*delivery.Delivery")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	notifier.On("NotifyBidAccepted", ctx, testRequest.ID(), winner.ID(), winner.CourierID()).Once()

	factory := new(MockNegotiationUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAcceptBidCommandHandler(factory, notifier)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, bid.Accepted, winner.Status())
	assert.Equal(t, bid.Rejected, loser.Status())
	assert.Equal(t, request.Matched, testRequest.Status())

	created := deliveryRepo.Calls[0].Arguments[1].(*delivery.Delivery)
	assert.True(t, created.ID().IsEqual(deliveryID))
	assert.True(t, created.HolderID().IsEqual(winner.CourierID()))
	assert.Equal(t, delivery.Assigned, created.Status())

	bidRepo.AssertExpectations(t)
	requestRepo.AssertExpectations(t)
	deliveryRepo.AssertExpectations(t)
	notifier.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestAcceptBidCommandHandler_Handle_NotOwner(t *testing.T) {
	ctx := t.Context()

	testRequest := openRequest(t, kernel.NewUUID())
	winner := pendingBid(t, testRequest.ID(), 4000)

	stranger := requesterActor(t, kernel.NewUUID())
	cmd, err := commands.NewAcceptBidCommand(stranger, winner.ID(), kernel.NewUUID())
	require.NoError(t, err)

	requestRepo := new(MockRequestRepository)
	bidRepo := new(MockBidRepository)
	uow := new(MockNegotiationUoW)
	notifier := new(MockNotifier)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("BidRepository").Return(bidRepo).Once(),
		bidRepo.On("Get", ctx, winner.ID()).Return(winner, nil).Once(),
		uow.On("RequestRepository").Return(requestRepo).Once(),
		requestRepo.On("Get", ctx, testRequest.ID()).Return(testRequest, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockNegotiationUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAcceptBidCommandHandler(factory, notifier)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrUnauthorized)
	require.True(t, winner.IsPending())
	notifier.AssertNotCalled(t, "NotifyBidAccepted")
}

func TestAcceptBidCommandHandler_Handle_ConcurrentLoserGetsConflict(t *testing.T) {
	ctx := t.Context()

	requesterID := kernel.NewUUID()
	testRequest := openRequest(t, requesterID)
	winner := pendingBid(t, testRequest.ID(), 4000)

	actor := requesterActor(t, requesterID)
	cmd, err := commands.NewAcceptBidCommand(actor, winner.ID(), kernel.NewUUID())
	require.NoError(t, err)

	conflict := errs.NewConflictError("request", testRequest.ID().String())

	requestRepo := new(MockRequestRepository)
	bidRepo := new(MockBidRepository)
	uow := new(MockNegotiationUoW)
	notifier := new(MockNotifier)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("BidRepository").Return(bidRepo).Once(),
		bidRepo.On("Get", ctx, winner.ID()).Return(winner, nil).Once(),
		uow.On("RequestRepository").Return(requestRepo).Once(),
		requestRepo.On("Get", ctx, testRequest.ID()).Return(testRequest, nil).Once(),
		bidRepo.On("Update", ctx, mock.AnythingOfType("*bid.Bid")).Return(nil).Once(),
		bidRepo.On("GetAllByRequest", ctx, testRequest.ID()).
			Return([]*bid.Bid{winner}, nil).
			Once(),
		uow.On("RequestRepository").Return(requestRepo).Once(),
		requestRepo.On("Update", ctx, mock.AnythingOfType("*request.DeliveryRequest")).
			Return(conflict).
			Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockNegotiationUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAcceptBidCommandHandler(factory, notifier)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrConflict)
	notifier.AssertNotCalled(t, "NotifyBidAccepted")
}

func TestAcceptBidCommandHandler_Handle_AlreadyDecidedBid(t *testing.T) {
	ctx := t.Context()

	requesterID := kernel.NewUUID()
	testRequest := openRequest(t, requesterID)
	winner := pendingBid(t, testRequest.ID(), 4000)
	require.NoError(t, winner.Withdraw())

	actor := requesterActor(t, requesterID)
	cmd, err := commands.NewAcceptBidCommand(actor, winner.ID(), kernel.NewUUID())
	require.NoError(t, err)

	requestRepo := new(MockRequestRepository)
	bidRepo := new(MockBidRepository)
	uow := new(MockNegotiationUoW)
	notifier := new(MockNotifier)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("BidRepository").Return(bidRepo).Once(),
		bidRepo.On("Get", ctx, winner.ID()).Return(winner, nil).Once(),
		uow.On("RequestRepository").Return(requestRepo).Once(),
		requestRepo.On("Get", ctx, testRequest.ID()).Return(testRequest, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockNegotiationUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAcceptBidCommandHandler(factory, notifier)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrInvalidState)
	bidRepo.AssertNotCalled(t, "Update")
}
