package service

import (
	"context"
	"testing"
	"time"

	"github.com/spendtrace/spendtrace/internal/tracer/domain"
	"github.com/spendtrace/spendtrace/internal/tracer/store"
	"github.com/spendtrace/spendtrace/internal/tracer/store/drivers/sqlite"
	"github.com/spendtrace/spendtrace/pkg/idx"
	"github.com/spendtrace/spendtrace/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func newIdentityService(st store.Store) *IdentityService {
	return &IdentityService{
		Store:    st,
		Tokens:   jwtx.NewCodec([]byte("test-secret"), "spendtrace-test"),
		ResetTTL: 10 * time.Minute,
	}
}

func registerUser(t *testing.T, svc *IdentityService, username string) domain.User {
	t.Helper()

	user, err := svc.Register(context.Background(), username, username+"@example.com", "hunter2hunter2")
	require.NoError(t, err)
	return user
}

// seedPurchase writes a purchase directly with a chosen created_at so ordering
// tests are deterministic.
func seedPurchase(t *testing.T, st store.Store, userID, shopID, subject string, createdAt time.Time) domain.Purchase {
	t.Helper()

	p := domain.Purchase{
		ID:           idx.New().String(),
		UserID:       userID,
		ShopID:       shopID,
		Purchaser:    "someone",
		PurchaseDate: createdAt.Truncate(24 * time.Hour),
		Value:        9.95,
		Subject:      subject,
		CreatedAt:    createdAt,
	}
	require.NoError(t, st.Purchases().CreatePurchase(context.Background(), p))
	return p
}

func seedShop(t *testing.T, st store.Store, name string) domain.Shop {
	t.Helper()

	var shop domain.Shop
	err := st.WithTx(context.Background(), func(tx store.Tx) error {
		var err error
		shop, err = getOrCreateShop(context.Background(), tx, name)
		return err
	})
	require.NoError(t, err)
	return shop
}
