package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/DanielPopoola/cps-gateway/internal/application"
	"github.com/DanielPopoola/cps-gateway/internal/application/services"
	"github.com/DanielPopoola/cps-gateway/internal/application/services/testhelpers"
	"github.com/DanielPopoola/cps-gateway/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryService_FindWithNotes(t *testing.T) {
	ctx := context.Background()
	store := testhelpers.NewMemoryOrderStore()
	store.Put(testhelpers.PendingOrder())
	require.NoError(t, store.SetStatus(ctx, 4521, domain.StatusOnHold, "Payment review via Cornerstone."))

	order, err := services.NewQueryService(store).FindWithNotes(ctx, 4521)

	require.NoError(t, err)
	assert.Equal(t, domain.StatusOnHold, order.Status)
	require.Len(t, order.Notes, 1)
	assert.Equal(t, "Payment review via Cornerstone.", order.Notes[0].Body)
}

func TestQueryService_NotFound(t *testing.T) {
	_, err := services.NewQueryService(testhelpers.NewMemoryOrderStore()).FindByID(context.Background(), 7)

	assert.True(t, domain.IsErrorCode(err, domain.ErrCodeOrderNotFound))
}

type failingNotes struct {
	*testhelpers.MemoryOrderStore
}

func (failingNotes) ListNotes(context.Context, int64) ([]domain.Note, error) {
	return nil, errors.New("connection reset")
}

func TestQueryService_NoteFailureIsInternal(t *testing.T) {
	store := testhelpers.NewMemoryOrderStore()
	store.Put(testhelpers.PendingOrder())

	_, err := services.NewQueryService(failingNotes{store}).FindWithNotes(context.Background(), 4521)

	require.Error(t, err)
	assert.Equal(t, application.ErrCodeInternal, application.ToErrorCode(err))
}
