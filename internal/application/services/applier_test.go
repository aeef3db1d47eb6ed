package services_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/DanielPopoola/cps-gateway/internal/application/services"
	"github.com/DanielPopoola/cps-gateway/internal/application/services/testhelpers"
	"github.com/DanielPopoola/cps-gateway/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestApplier_ApprovedCompletesPendingOrder(t *testing.T) {
	ctx := context.Background()
	store := testhelpers.NewMemoryOrderStore()
	store.Put(testhelpers.PendingOrder())
	applier := services.NewApplier(store, discardLogger())

	result, order, err := applier.Apply(ctx, 4521, domain.Approved("approved"), "")

	require.NoError(t, err)
	assert.Equal(t, services.Applied, result.Kind)
	assert.Equal(t, domain.StatusPending, result.From)
	assert.Equal(t, domain.StatusCompleted, result.To)
	assert.Equal(t, domain.StatusCompleted, order.Status)

	saved := store.Order(4521)
	assert.Equal(t, domain.StatusCompleted, saved.Status)
	assert.NotNil(t, saved.PaidAt)
	require.Len(t, saved.Notes, 1)
	assert.Equal(t, "Payment completed via Cornerstone.", saved.Notes[0].Body)
	assert.Equal(t, 1, store.MarkPaidCalls)
}

func TestApplier_ApprovedTwiceIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := testhelpers.NewMemoryOrderStore()
	store.Put(testhelpers.PendingOrder())
	applier := services.NewApplier(store, discardLogger())

	_, _, err := applier.Apply(ctx, 4521, domain.Approved("approved"), "")
	require.NoError(t, err)

	result, _, err := applier.Apply(ctx, 4521, domain.Approved("Approved"), "")
	require.NoError(t, err)

	assert.Equal(t, services.Unchanged, result.Kind)
	assert.Equal(t, domain.StatusCompleted, result.Status)
	assert.Len(t, store.Order(4521).Notes, 1)
	assert.Equal(t, 1, store.MarkPaidCalls)
}

func TestApplier_ConcurrentApprovalsMarkPaidOnce(t *testing.T) {
	ctx := context.Background()
	store := testhelpers.NewMemoryOrderStore()
	store.Put(testhelpers.PendingOrder())
	applier := services.NewApplier(store, discardLogger())

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := applier.Apply(ctx, 4521, domain.Approved("approved"), "")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, store.MarkPaidCalls)
	assert.Len(t, store.Order(4521).Notes, 1)
}

func TestApplier_ApprovedOnFailedOrderIsRejected(t *testing.T) {
	ctx := context.Background()
	store := testhelpers.NewMemoryOrderStore()
	store.Put(testhelpers.OrderIn(domain.StatusFailed))
	applier := services.NewApplier(store, discardLogger())

	result, order, err := applier.Apply(ctx, 4521, domain.Approved("approved"), "")

	require.NoError(t, err)
	assert.Equal(t, services.Rejected, result.Kind)
	assert.NotEmpty(t, result.Reason)
	assert.Equal(t, domain.StatusFailed, order.Status)

	saved := store.Order(4521)
	assert.Equal(t, domain.StatusFailed, saved.Status)
	assert.Empty(t, saved.Notes)
	assert.Zero(t, store.MarkPaidCalls)
}

func TestApplier_DeclinedTwiceAddsSecondNoteOnly(t *testing.T) {
	ctx := context.Background()
	store := testhelpers.NewMemoryOrderStore()
	store.Put(testhelpers.PendingOrder())
	applier := services.NewApplier(store, discardLogger())

	first, _, err := applier.Apply(ctx, 4521, domain.Declined("declined"), "card declined")
	require.NoError(t, err)
	second, _, err := applier.Apply(ctx, 4521, domain.Declined("declined"), "card declined")
	require.NoError(t, err)

	assert.Equal(t, services.Applied, first.Kind)
	assert.Equal(t, services.Unchanged, second.Kind)

	saved := store.Order(4521)
	assert.Equal(t, domain.StatusFailed, saved.Status)
	require.Len(t, saved.Notes, 2)
	assert.Equal(t, "Payment declined via Cornerstone. Message: card declined.", saved.Notes[0].Body)
}

func TestApplier_IndeterminateHoldsOrder(t *testing.T) {
	ctx := context.Background()
	store := testhelpers.NewMemoryOrderStore()
	store.Put(testhelpers.PendingOrder())
	applier := services.NewApplier(store, discardLogger())

	result, _, err := applier.Apply(ctx, 4521, domain.Indeterminate("pending"), "")

	require.NoError(t, err)
	assert.Equal(t, services.Applied, result.Kind)
	assert.Equal(t, domain.StatusOnHold, store.Order(4521).Status)
	assert.Equal(t, "Payment pending via Cornerstone.", store.Order(4521).Notes[0].Body)
}

func TestApplier_StoreErrorsPropagate(t *testing.T) {
	ctx := context.Background()
	store := testhelpers.NewMemoryOrderStore()
	store.Put(testhelpers.PendingOrder())
	storeErr := errors.New("connection reset")
	store.MarkPaidFn = func(context.Context, int64) error { return storeErr }
	applier := services.NewApplier(store, discardLogger())

	_, order, err := applier.Apply(ctx, 4521, domain.Approved("approved"), "")

	require.ErrorIs(t, err, storeErr)
	assert.Nil(t, order)
}

func TestApplier_UnknownOrder(t *testing.T) {
	applier := services.NewApplier(testhelpers.NewMemoryOrderStore(), discardLogger())

	_, _, err := applier.Apply(context.Background(), 1, domain.Approved("approved"), "")

	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}
