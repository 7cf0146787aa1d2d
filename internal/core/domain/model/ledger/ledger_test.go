package ledger_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/ledger"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var recordedAt = time.Date(2025, 6, 1, 14, 0, 0, 0, time.UTC)

func buildEntry(t *testing.T) *ledger.Entry {
	t.Helper()

	amount, err := kernel.NewMoney(4500, "EUR")
	require.NoError(t, err)

	e, err := ledger.NewEntry(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		amount, ledger.Earning, recordedAt)
	require.NoError(t, err)
	return e
}

func TestNewEntry(t *testing.T) {
	t.Run("records a movement", func(t *testing.T) {
		e := buildEntry(t)

		require.NoError(t, e.Validate())
		assert.Equal(t, ledger.Earning, e.Kind())
		assert.Equal(t, int64(4500), e.Amount().Cents())
		assert.False(t, e.IsSettled())
		assert.Nil(t, e.BillingPeriodID())
	})

	t.Run("allows negative amounts", func(t *testing.T) {
		amount, err := kernel.NewMoney(-500, "EUR")
		require.NoError(t, err)

		e, err := ledger.NewEntry(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			amount, ledger.Adjustment, recordedAt)

		require.NoError(t, err)
		assert.Equal(t, int64(-500), e.Amount().Cents())
	})

	t.Run("rejects zero amount", func(t *testing.T) {
		amount, err := kernel.NewMoney(0, "EUR")
		require.NoError(t, err)

		_, err = ledger.NewEntry(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			amount, ledger.Earning, recordedAt)

		require.ErrorIs(t, err, ledger.ErrAmountIsZero)
	})

	t.Run("rejects invalid kind", func(t *testing.T) {
		amount, err := kernel.NewMoney(100, "EUR")
		require.NoError(t, err)

		_, err = ledger.NewEntry(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			amount, ledger.Kind(42), recordedAt)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var e ledger.Entry
		require.ErrorIs(t, e.Validate(), ledger.ErrEntryIsNotConstructed)
	})
}

func TestEntry_IdempotencyKey(t *testing.T) {
	t.Run("same movement yields same key", func(t *testing.T) {
		deliveryID := kernel.NewUUID()
		partyID := kernel.NewUUID()
		amount, err := kernel.NewMoney(100, "EUR")
		require.NoError(t, err)

		first, err := ledger.NewEntry(
			kernel.NewUUID(), deliveryID, partyID, amount, ledger.Earning, recordedAt)
		require.NoError(t, err)
		second, err := ledger.NewEntry(
			kernel.NewUUID(), deliveryID, partyID, amount, ledger.Earning, recordedAt.Add(time.Minute))
		require.NoError(t, err)

		assert.Equal(t, first.IdempotencyKey(), second.IdempotencyKey())
	})

	t.Run("kind and party distinguish keys", func(t *testing.T) {
		e := buildEntry(t)

		assert.NotEqual(t,
			e.IdempotencyKey(),
			ledger.IdempotencyKey(e.DeliveryID(), ledger.Commission, e.PartyID()))
		assert.NotEqual(t,
			e.IdempotencyKey(),
			ledger.IdempotencyKey(e.DeliveryID(), e.Kind(), kernel.NewUUID()))
	})
}

func TestEntry_AttachToPeriod(t *testing.T) {
	t.Run("attaches exactly once", func(t *testing.T) {
		e := buildEntry(t)
		periodID := kernel.NewUUID()

		require.NoError(t, e.AttachToPeriod(periodID))
		assert.True(t, e.IsSettled())
		require.NotNil(t, e.BillingPeriodID())
		assert.True(t, e.BillingPeriodID().IsEqual(periodID))

		require.ErrorIs(t, e.AttachToPeriod(kernel.NewUUID()), ledger.ErrEntryAlreadySettled)
	})
}

func TestEntry_Reverse(t *testing.T) {
	e := buildEntry(t)

	reversal, err := e.Reverse(kernel.NewUUID(), recordedAt.Add(time.Hour))

	require.NoError(t, err)
	assert.Equal(t, ledger.Adjustment, reversal.Kind())
	assert.Equal(t, -e.Amount().Cents(), reversal.Amount().Cents())
	assert.True(t, reversal.DeliveryID().IsEqual(e.DeliveryID()))
	assert.True(t, reversal.PartyID().IsEqual(e.PartyID()))
	assert.False(t, reversal.IsEqual(e))

	// the original stays untouched
	assert.Equal(t, int64(4500), e.Amount().Cents())
}

func TestNewBillingPeriod(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	t.Run("opens a period", func(t *testing.T) {
		p, err := ledger.NewBillingPeriod(kernel.NewUUID(), kernel.NewUUID(), start, end)

		require.NoError(t, err)
		require.NoError(t, p.Validate())
		assert.Equal(t, ledger.PeriodOpen, p.Status())
		assert.True(t, p.IsOpen())
		assert.Empty(t, p.InvoiceRef())
	})

	t.Run("rejects inverted bounds", func(t *testing.T) {
		_, err := ledger.NewBillingPeriod(kernel.NewUUID(), kernel.NewUUID(), end, start)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var p ledger.BillingPeriod
		require.ErrorIs(t, p.Validate(), ledger.ErrBillingPeriodIsNotConstructed)
	})
}

func TestBillingPeriod_Lifecycle(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	buildPeriod := func(t *testing.T) *ledger.BillingPeriod {
		t.Helper()
		p, err := ledger.NewBillingPeriod(kernel.NewUUID(), kernel.NewUUID(), start, end)
		require.NoError(t, err)
		return p
	}

	t.Run("close then invoice", func(t *testing.T) {
		p := buildPeriod(t)

		require.NoError(t, p.Close())
		assert.Equal(t, ledger.PeriodClosed, p.Status())

		require.NoError(t, p.MarkInvoiced("INV-202506-0001"))
		assert.Equal(t, ledger.PeriodInvoiced, p.Status())
		assert.Equal(t, "INV-202506-0001", p.InvoiceRef())
	})

	t.Run("cannot close twice", func(t *testing.T) {
		p := buildPeriod(t)
		require.NoError(t, p.Close())

		err := p.Close()
		require.ErrorIs(t, err, errs.ErrInvalidState)

		var stateErr *errs.InvalidStateError
		require.ErrorAs(t, err, &stateErr)
		assert.Equal(t, "Open", stateErr.Expected)
		assert.Equal(t, "Closed", stateErr.Actual)
	})

	t.Run("cannot invoice an open period", func(t *testing.T) {
		p := buildPeriod(t)
		require.ErrorIs(t, p.MarkInvoiced("INV-202506-0002"), errs.ErrInvalidState)
	})

	t.Run("invoice reference is required", func(t *testing.T) {
		p := buildPeriod(t)
		require.NoError(t, p.Close())

		require.ErrorIs(t, p.MarkInvoiced(""), errs.ErrValueIsRequired)
	})
}

func TestRestoreEntry(t *testing.T) {
	src := buildEntry(t)
	periodID := kernel.NewUUID()

	restored, err := ledger.RestoreEntry(
		src.ID(), src.DeliveryID(), src.PartyID(), src.Amount(),
		src.Kind(), src.CreatedAt(), &periodID)

	require.NoError(t, err)
	assert.True(t, restored.IsEqual(src))
	assert.True(t, restored.IsSettled())
}
