package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetOrCreateShop(t *testing.T) {
	ctx := context.Background()
	svc := &CatalogService{Store: newTestStore(t)}

	t.Run("creates on first sight", func(t *testing.T) {
		shop, err := svc.GetOrCreateShop(ctx, "corner store")
		require.NoError(t, err)
		require.NotEmpty(t, shop.ID)
		require.Equal(t, "corner store", shop.Shopname)
	})

	t.Run("same name resolves to the same row", func(t *testing.T) {
		first, err := svc.GetOrCreateShop(ctx, "bakery")
		require.NoError(t, err)

		second, err := svc.GetOrCreateShop(ctx, "bakery")
		require.NoError(t, err)
		require.Equal(t, first.ID, second.ID)
	})

	t.Run("trims surrounding whitespace", func(t *testing.T) {
		first, err := svc.GetOrCreateShop(ctx, "deli")
		require.NoError(t, err)

		second, err := svc.GetOrCreateShop(ctx, "  deli ")
		require.NoError(t, err)
		require.Equal(t, first.ID, second.ID)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := svc.GetOrCreateShop(ctx, "   ")
		require.True(t, IsValidation(err))
	})
}
