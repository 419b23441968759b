package service_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/ArtemGolubev/medshop-service/internal/entities"
	"github.com/ArtemGolubev/medshop-service/internal/repo"
	"github.com/ArtemGolubev/medshop-service/internal/service"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cartAPI interface {
	Cart(ctx context.Context, customerID string) entities.Cart
	AddItem(ctx context.Context, customerID, medicineID string, quantity int) (entities.Cart, error)
	UpdateQuantity(ctx context.Context, customerID, medicineID string, quantity int) entities.Cart
	RemoveItem(ctx context.Context, customerID, medicineID string) entities.Cart
	Clear(ctx context.Context, customerID string)
}

func newCartFixture(t *testing.T) (cartAPI, *repo.MemoryStore) {
	t.Helper()
	store := repo.NewMemoryStore()
	repo.Seed(store)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return service.NewCartService(logger, store, repo.NewCartStore()), store
}

func TestCartService_AddItem(t *testing.T) {
	ctx := context.Background()

	t.Run("adds and merges lines", func(t *testing.T) {
		svc, _ := newCartFixture(t)

		cart, err := svc.AddItem(ctx, "cust-1", "med-1", 2)
		require.NoError(t, err)
		require.Len(t, cart.Lines, 1)

		cart, err = svc.AddItem(ctx, "cust-1", "med-1", 3)
		require.NoError(t, err)
		require.Len(t, cart.Lines, 1)
		assert.Equal(t, 5, cart.Lines[0].Quantity)
		assert.Equal(t, 5, cart.Totals().TotalItems)
	})

	t.Run("unknown medicine", func(t *testing.T) {
		svc, _ := newCartFixture(t)
		_, err := svc.AddItem(ctx, "cust-1", "med-404", 1)
		assert.ErrorIs(t, err, entities.ErrMedicineNotFound)
	})

	t.Run("out of stock medicine cannot be added", func(t *testing.T) {
		svc, store := newCartFixture(t)
		require.NoError(t, store.UpdateMedicineStock(ctx, "med-1", 0))

		_, err := svc.AddItem(ctx, "cust-1", "med-1", 1)
		assert.ErrorIs(t, err, entities.ErrOutOfStock)
		assert.Empty(t, svc.Cart(ctx, "cust-1").Lines)
	})

	t.Run("carts are isolated per customer", func(t *testing.T) {
		svc, _ := newCartFixture(t)
		_, err := svc.AddItem(ctx, "cust-1", "med-1", 1)
		require.NoError(t, err)

		assert.Empty(t, svc.Cart(ctx, "cust-2").Lines)
	})
}

func TestCartService_UpdateAndRemove(t *testing.T) {
	ctx := context.Background()
	svc, _ := newCartFixture(t)

	_, err := svc.AddItem(ctx, "cust-1", "med-1", 2)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, "cust-1", "med-3", 1)
	require.NoError(t, err)

	cart := svc.UpdateQuantity(ctx, "cust-1", "med-1", 4)
	totals := cart.Totals()
	assert.Equal(t, 5, totals.TotalItems)
	// 4 x 5.99 + 1 x 7.49
	assert.True(t, totals.TotalPrice.Equal(decimal.RequireFromString("31.45")), "got %s", totals.TotalPrice)

	cart = svc.UpdateQuantity(ctx, "cust-1", "med-1", 0)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, "med-3", cart.Lines[0].Medicine.ID)

	cart = svc.RemoveItem(ctx, "cust-1", "med-404")
	require.Len(t, cart.Lines, 1)

	cart = svc.RemoveItem(ctx, "cust-1", "med-3")
	assert.Empty(t, cart.Lines)

	_, err = svc.AddItem(ctx, "cust-1", "med-1", 1)
	require.NoError(t, err)
	svc.Clear(ctx, "cust-1")
	assert.Empty(t, svc.Cart(ctx, "cust-1").Lines)
}
