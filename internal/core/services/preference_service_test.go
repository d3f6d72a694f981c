package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/revenue_split_app/internal/adapters/storage/memory"
	"github.com/SscSPs/revenue_split_app/internal/apperrors"
	"github.com/SscSPs/revenue_split_app/internal/core/services"
	"github.com/SscSPs/revenue_split_app/internal/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreferenceService_DefaultsToBase(t *testing.T) {
	svc := services.NewPreferenceService(memory.NewStore(), nil)
	assert.Equal(t, "GBP", svc.SelectedCurrency(context.Background(), "user-1"))
}

func TestPreferenceService_SetAndNotify(t *testing.T) {
	ctx := context.Background()
	broker := events.NewBroker(nil)
	ch, cancel := broker.Subscribe(1)
	defer cancel()
	svc := services.NewPreferenceService(memory.NewStore(), broker)

	require.NoError(t, svc.SetSelectedCurrency(ctx, "user-1", "KES"))

	assert.Equal(t, "KES", svc.SelectedCurrency(ctx, "user-1"))
	assert.Equal(t, "GBP", svc.SelectedCurrency(ctx, "user-2"))

	ev := <-ch
	assert.Equal(t, events.CurrencyChanged, ev.Type)
	assert.Equal(t, "user-1", ev.Subject)
	assert.Equal(t, "KES", ev.Currency)
}

func TestPreferenceService_RejectsUnsupported(t *testing.T) {
	svc := services.NewPreferenceService(memory.NewStore(), nil)

	err := svc.SetSelectedCurrency(context.Background(), "user-1", "JPY")

	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestPreferenceService_IgnoresGarbageStoredValue(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Put(ctx, "selectedCurrency:user-1", []byte("not-a-code")))

	svc := services.NewPreferenceService(store, nil)

	assert.Equal(t, "GBP", svc.SelectedCurrency(ctx, "user-1"))
}
