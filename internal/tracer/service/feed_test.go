package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFeedFor(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	identity := newIdentityService(st)
	follows := &FollowService{Store: st}

	viewer := registerUser(t, identity, "viewer")
	alice := registerUser(t, identity, "alice")
	bob := registerUser(t, identity, "bob")
	carol := registerUser(t, identity, "carol") // not followed

	require.NoError(t, follows.Follow(ctx, viewer.ID, alice.ID))
	require.NoError(t, follows.Follow(ctx, viewer.ID, bob.ID))

	shop := seedShop(t, st, "corner store")
	base := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)

	seedPurchase(t, st, alice.ID, shop.ID, "from alice", base)
	seedPurchase(t, st, viewer.ID, shop.ID, "my own", base.Add(time.Minute))
	seedPurchase(t, st, bob.ID, shop.ID, "from bob", base.Add(2*time.Minute))
	seedPurchase(t, st, carol.ID, shop.ID, "from carol", base.Add(3*time.Minute))

	svc := &FeedService{Store: st, PerPage: 10}

	t.Run("newest first, own purchases included, strangers excluded", func(t *testing.T) {
		page, err := svc.FeedFor(ctx, viewer.ID, 1)
		require.NoError(t, err)
		require.Len(t, page.Items, 3)
		require.Equal(t, "from bob", page.Items[0].Subject)
		require.Equal(t, "my own", page.Items[1].Subject)
		require.Equal(t, "from alice", page.Items[2].Subject)
	})

	t.Run("equal timestamps keep insertion order", func(t *testing.T) {
		tie := base.Add(time.Hour)
		first := seedPurchase(t, st, alice.ID, shop.ID, "tie first", tie)
		second := seedPurchase(t, st, bob.ID, shop.ID, "tie second", tie)

		page, err := svc.FeedFor(ctx, viewer.ID, 1)
		require.NoError(t, err)
		require.Equal(t, first.ID, page.Items[0].ID)
		require.Equal(t, second.ID, page.Items[1].ID)
	})

	t.Run("unfollow removes the author's purchases", func(t *testing.T) {
		require.NoError(t, follows.Unfollow(ctx, viewer.ID, bob.ID))

		page, err := svc.FeedFor(ctx, viewer.ID, 1)
		require.NoError(t, err)
		for _, p := range page.Items {
			require.NotEqual(t, bob.ID, p.UserID)
		}
	})

	t.Run("empty feed for a loner", func(t *testing.T) {
		page, err := svc.FeedFor(ctx, carol.ID, 1)
		require.NoError(t, err)
		require.Len(t, page.Items, 1) // only carol's own purchase
		require.Equal(t, "from carol", page.Items[0].Subject)
	})
}
