package service

import (
	"context"
	"strings"
	"testing"

	"github.com/spendtrace/spendtrace/internal/tracer/store"
	"github.com/spendtrace/spendtrace/pkg/langdetect"
	"github.com/stretchr/testify/require"
)

func TestImportCSV(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	identity := newIdentityService(st)
	registerUser(t, identity, "alice")
	registerUser(t, identity, "bob")

	svc := &ImportService{Store: st, DetectLanguage: langdetect.Detect}
	ledger := &LedgerService{Store: st, PerPage: 50}

	t.Run("imports rows and skips the header", func(t *testing.T) {
		csv := strings.Join([]string{
			"purchase_date,username,purchaser,shopname,value,subject",
			"2026-01-05,alice,Alice,corner store,12.50,weekly groceries",
			"2026-01-06,bob,Bob,bakery,3.20,bread",
			"2026-01-07,alice,Alice,bakery,4.00,croissants",
		}, "\n")

		count, err := svc.ImportCSV(ctx, strings.NewReader(csv))
		require.NoError(t, err)
		require.Equal(t, 3, count)

		page, err := ledger.Explore(ctx, 1)
		require.NoError(t, err)
		require.Len(t, page.Items, 3)
	})

	t.Run("unknown username rolls back the whole batch", func(t *testing.T) {
		csv := strings.Join([]string{
			"2026-02-01,alice,Alice,fishmonger,8.00,fruit",
			"2026-02-02,mallory,Mallory,corner store,5.00,unknown author",
		}, "\n")

		_, err := svc.ImportCSV(ctx, strings.NewReader(csv))
		require.ErrorIs(t, err, ErrUnknownUser)

		// Neither the valid first row nor the shop it created lazily may
		// survive the failed batch.
		page, err := ledger.Explore(ctx, 1)
		require.NoError(t, err)
		require.Len(t, page.Items, 3)

		_, err = st.Shops().GetShopByName(ctx, "fishmonger")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("bad value rolls back", func(t *testing.T) {
		csv := "2026-02-01,alice,Alice,corner store,-8.00,negative"

		_, err := svc.ImportCSV(ctx, strings.NewReader(csv))
		require.True(t, IsValidation(err))

		page, err := ledger.Explore(ctx, 1)
		require.NoError(t, err)
		require.Len(t, page.Items, 3)
	})

	t.Run("bad date reported with the row number", func(t *testing.T) {
		csv := "05/01/2026,alice,Alice,corner store,8.00,fruit"

		_, err := svc.ImportCSV(ctx, strings.NewReader(csv))
		require.Error(t, err)
		require.Contains(t, err.Error(), "row 1")
	})
}
