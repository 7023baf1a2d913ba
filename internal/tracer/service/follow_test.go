package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFollow(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	identity := newIdentityService(st)
	svc := &FollowService{Store: st}

	alice := registerUser(t, identity, "alice")
	bob := registerUser(t, identity, "bob")

	t.Run("adds the edge", func(t *testing.T) {
		require.NoError(t, svc.Follow(ctx, alice.ID, bob.ID))

		following, err := svc.IsFollowing(ctx, alice.ID, bob.ID)
		require.NoError(t, err)
		require.True(t, following)
	})

	t.Run("edge is directed", func(t *testing.T) {
		following, err := svc.IsFollowing(ctx, bob.ID, alice.ID)
		require.NoError(t, err)
		require.False(t, following)
	})

	t.Run("re-follow is a no-op", func(t *testing.T) {
		require.NoError(t, svc.Follow(ctx, alice.ID, bob.ID))

		followers, err := svc.FollowersOf(ctx, bob.ID)
		require.NoError(t, err)
		require.Len(t, followers, 1)
		require.Equal(t, alice.ID, followers[0].ID)
	})

	t.Run("self-follow rejected", func(t *testing.T) {
		require.ErrorIs(t, svc.Follow(ctx, alice.ID, alice.ID), ErrSelfFollow)
	})

	t.Run("unfollow removes the edge", func(t *testing.T) {
		require.NoError(t, svc.Unfollow(ctx, alice.ID, bob.ID))

		following, err := svc.IsFollowing(ctx, alice.ID, bob.ID)
		require.NoError(t, err)
		require.False(t, following)
	})

	t.Run("unfollow when not following is a no-op", func(t *testing.T) {
		require.NoError(t, svc.Unfollow(ctx, alice.ID, bob.ID))
	})
}
