package service

import (
	"context"
	"log/slog"

	"github.com/spendtrace/spendtrace/internal/tracer/domain"
	"github.com/spendtrace/spendtrace/internal/tracer/store"
	"github.com/spendtrace/spendtrace/pkg/slogx"
)

// FollowService maintains the directed follow graph: a simple edge set with
// no duplicate edges and no self-edges.
type FollowService struct {
	Store store.Store
}

// Follow adds the edge follower -> followed. Following yourself is rejected;
// re-following is a no-op.
func (s *FollowService) Follow(ctx context.Context, followerID, followedID string) error {
	if followerID == followedID {
		return ErrSelfFollow
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		return tx.Follows().CreateFollow(ctx, followerID, followedID)
	})
	if err != nil {
		return err
	}

	slogx.FromContext(ctx).Debug("follow edge added",
		slog.String("follower_id", followerID),
		slog.String("followed_id", followedID),
	)
	return nil
}

// Unfollow removes the edge follower -> followed. A no-op when absent.
func (s *FollowService) Unfollow(ctx context.Context, followerID, followedID string) error {
	if followerID == followedID {
		return ErrSelfFollow
	}

	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		return tx.Follows().DeleteFollow(ctx, followerID, followedID)
	})
}

// IsFollowing reports whether the edge follower -> followed exists.
func (s *FollowService) IsFollowing(ctx context.Context, followerID, followedID string) (bool, error) {
	return s.Store.Follows().IsFollowing(ctx, followerID, followedID)
}

// FollowersOf lists the users following the given user.
func (s *FollowService) FollowersOf(ctx context.Context, followedID string) ([]domain.User, error) {
	return s.Store.Follows().FollowersOf(ctx, followedID)
}
