package request_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/request"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildRequest(t *testing.T) *request.DeliveryRequest {
	t.Helper()

	pickup, err := kernel.NewGeoPoint(48.8566, 2.3522, "Paris")
	require.NoError(t, err)
	drop, err := kernel.NewGeoPoint(45.7640, 4.8357, "Lyon")
	require.NoError(t, err)
	window, err := kernel.NewTimeWindow(
		time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	pack, err := request.NewPackageSpec(2500, false, false)
	require.NoError(t, err)
	price, err := kernel.NewMoney(4500, "EUR")
	require.NoError(t, err)

	r, err := request.NewDeliveryRequest(
		kernel.NewUUID(), kernel.NewUUID(), pickup, drop, window, pack, price)
	require.NoError(t, err)
	return r
}

func TestNewDeliveryRequest(t *testing.T) {
	t.Run("starts in Draft", func(t *testing.T) {
		r := buildRequest(t)

		assert.Equal(t, request.Draft, r.Status())
		assert.NoError(t, r.Validate())
		assert.Zero(t, r.Version())
	})

	t.Run("rejects non-positive price", func(t *testing.T) {
		pickup, _ := kernel.NewGeoPoint(48.85, 2.35, "Paris")
		drop, _ := kernel.NewGeoPoint(45.76, 4.83, "Lyon")
		window, _ := kernel.NewTimeWindow(
			time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
			time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		)
		pack, _ := request.NewPackageSpec(1000, false, false)
		price, _ := kernel.NewMoney(0, "EUR")

		_, err := request.NewDeliveryRequest(
			kernel.NewUUID(), kernel.NewUUID(), pickup, drop, window, pack, price)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var r request.DeliveryRequest
		require.ErrorIs(t, r.Validate(), request.ErrRequestIsNotConstructed)
	})
}

func TestNewPackageSpec(t *testing.T) {
	t.Run("valid spec", func(t *testing.T) {
		p, err := request.NewPackageSpec(1500, true, false)

		require.NoError(t, err)
		assert.Equal(t, 1500, p.WeightGrams())
		assert.True(t, p.Fragile())
		assert.False(t, p.Refrigerated())
	})

	t.Run("rejects non-positive weight", func(t *testing.T) {
		_, err := request.NewPackageSpec(0, false, false)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestDeliveryRequest_Lifecycle(t *testing.T) {
	t.Run("full happy path", func(t *testing.T) {
		r := buildRequest(t)

		require.NoError(t, r.Publish())
		assert.Equal(t, request.Open, r.Status())

		require.NoError(t, r.Match())
		assert.Equal(t, request.Matched, r.Status())

		require.NoError(t, r.StartFulfillment())
		assert.Equal(t, request.InFulfillment, r.Status())

		require.NoError(t, r.Complete())
		assert.Equal(t, request.Completed, r.Status())
	})

	t.Run("cannot match a draft", func(t *testing.T) {
		r := buildRequest(t)

		err := r.Match()
		require.ErrorIs(t, err, errs.ErrInvalidState)
		assert.Equal(t, request.Draft, r.Status())
	})

	t.Run("cannot match twice", func(t *testing.T) {
		r := buildRequest(t)
		require.NoError(t, r.Publish())
		require.NoError(t, r.Match())

		err := r.Match()
		require.ErrorIs(t, err, errs.ErrInvalidState)

		var stateErr *errs.InvalidStateError
		require.ErrorAs(t, err, &stateErr)
		assert.Equal(t, "Open", stateErr.Expected)
		assert.Equal(t, "Matched", stateErr.Actual)
	})

	t.Run("cancel from Open", func(t *testing.T) {
		r := buildRequest(t)
		require.NoError(t, r.Publish())

		require.NoError(t, r.Cancel())
		assert.Equal(t, request.Cancelled, r.Status())
	})

	t.Run("cancel from Matched", func(t *testing.T) {
		r := buildRequest(t)
		require.NoError(t, r.Publish())
		require.NoError(t, r.Match())

		require.NoError(t, r.Cancel())
		assert.Equal(t, request.Cancelled, r.Status())
	})

	t.Run("cannot cancel a completed request", func(t *testing.T) {
		r := buildRequest(t)
		require.NoError(t, r.Publish())
		require.NoError(t, r.Match())
		require.NoError(t, r.StartFulfillment())
		require.NoError(t, r.Complete())

		require.ErrorIs(t, r.Cancel(), errs.ErrInvalidState)
	})

	t.Run("completed is terminal", func(t *testing.T) {
		r := buildRequest(t)
		require.NoError(t, r.Publish())
		require.NoError(t, r.Match())
		require.NoError(t, r.StartFulfillment())
		require.NoError(t, r.Complete())

		require.ErrorIs(t, r.Publish(), errs.ErrInvalidState)
		require.ErrorIs(t, r.Match(), errs.ErrInvalidState)
		require.ErrorIs(t, r.StartFulfillment(), errs.ErrInvalidState)
		require.ErrorIs(t, r.Complete(), errs.ErrInvalidState)
	})
}

func TestRestoreDeliveryRequest(t *testing.T) {
	t.Run("restores status and version", func(t *testing.T) {
		src := buildRequest(t)

		restored, err := request.RestoreDeliveryRequest(
			src.ID(), src.RequesterID(), src.Pickup(), src.Drop(),
			src.Window(), src.Package(), src.Price(), request.Matched, 3)

		require.NoError(t, err)
		assert.Equal(t, request.Matched, restored.Status())
		assert.Equal(t, int64(3), restored.Version())
		assert.True(t, restored.IsEqual(src))
	})

	t.Run("rejects invalid status", func(t *testing.T) {
		src := buildRequest(t)

		_, err := request.RestoreDeliveryRequest(
			src.ID(), src.RequesterID(), src.Pickup(), src.Drop(),
			src.Window(), src.Package(), src.Price(), request.Status(42), 0)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects negative version", func(t *testing.T) {
		src := buildRequest(t)

		_, err := request.RestoreDeliveryRequest(
			src.ID(), src.RequesterID(), src.Pickup(), src.Drop(),
			src.Window(), src.Package(), src.Price(), request.Open, -1)

		require.ErrorIs(t, err, errs.ErrVersionIsInvalid)
	})
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "Draft", request.Draft.String())
	assert.Equal(t, "Open", request.Open.String())
	assert.Equal(t, "Matched", request.Matched.String())
	assert.Equal(t, "InFulfillment", request.InFulfillment.String())
	assert.Equal(t, "Completed", request.Completed.String())
	assert.Equal(t, "Cancelled", request.Cancelled.String())
	assert.Equal(t, "Unknown", request.Status(99).String())
}
