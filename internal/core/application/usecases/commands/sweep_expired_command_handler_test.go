package commands_test

import (
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func unresolvedDelivery(t *testing.T, at time.Time) *delivery.Delivery {
	t.Helper()

	pickup, err := kernel.NewGeoPoint(48.8566, 2.3522, "1 Rue de Rivoli, Paris")
	require.NoError(t, err)
	drop, err := kernel.NewGeoPoint(45.7640, 4.8357, "10 Rue de la Re, Lyon")
	require.NoError(t, err)

	aggregate, err := delivery.NewDelivery(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), pickup, drop, at)
	require.NoError(t, err)
	return aggregate
}

func TestSweepExpiredCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	now := time.Now().UTC()

	relay, err := kernel.NewGeoPoint(47.0, 3.5, "Relay Nevers")
	require.NoError(t, err)

	// Handover initiated two hours ago with a 30 minute acknowledgement
	// window: custody must revert to the original holder.
	stale := unresolvedDelivery(t, now.Add(-3*time.Hour))
	staleHolder := stale.HolderID()
	require.NoError(t, stale.StartTransit(staleHolder, now.Add(-3*time.Hour)))
	require.NoError(t, stale.HandoverAtRelay(
		staleHolder, kernel.NewUUID(), relay, now.Add(-2*time.Hour), 30*time.Minute))

	// Validation code issued 25 hours ago with a 24 hour TTL: the delivery
	// moves to dispute resolution.
	lapsed := unresolvedDelivery(t, now.Add(-30*time.Hour))
	require.NoError(t, lapsed.StartTransit(lapsed.HolderID(), now.Add(-30*time.Hour)))
	_, err = lapsed.GenerateValidationCode(now.Add(-25*time.Hour), delivery.DefaultCodeTTL)
	require.NoError(t, err)

	// Freshly assigned, nothing to expire.
	fresh := unresolvedDelivery(t, now)

	repo := new(MockDeliveryRepository)
	uow := new(MockFulfillmentUoW)
	notifier := new(MockNotifier)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(repo).Once(),
		repo.On("GetAllUnresolved", ctx).
			Return([]*delivery.Delivery{stale, lapsed, fresh}, nil).
			Once(),
		repo.On("Update", ctx, stale).Return(nil).Once(),
		repo.On("Update", ctx, lapsed).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	notifier.On("NotifyDisputed", ctx, lapsed.ID()).Once()

	factory := new(MockFulfillmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewSweepExpiredCommandHandler(factory, notifier)
	err = handler.Handle(ctx, commands.NewSweepExpiredCommand())

	require.NoError(t, err)
	assert.Equal(t, delivery.InTransit, stale.Status())
	assert.True(t, stale.HolderID().IsEqual(staleHolder))
	assert.Nil(t, stale.PendingHandover())
	assert.Equal(t, delivery.Disputed, lapsed.Status())
	assert.Equal(t, delivery.Assigned, fresh.Status())

	repo.AssertExpectations(t)
	notifier.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestSweepExpiredCommandHandler_Handle_NothingToExpire(t *testing.T) {
	ctx := t.Context()

	fresh := unresolvedDelivery(t, time.Now().UTC())

	repo := new(MockDeliveryRepository)
	uow := new(MockFulfillmentUoW)
	notifier := new(MockNotifier)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(repo).Once(),
		repo.On("GetAllUnresolved", ctx).Return([]*delivery.Delivery{fresh}, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockFulfillmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewSweepExpiredCommandHandler(factory, notifier)
	err := handler.Handle(ctx, commands.NewSweepExpiredCommand())

	require.NoError(t, err)
	notifier.AssertNotCalled(t, "NotifyDisputed")
	repo.AssertNotCalled(t, "Update")
}
