package store

import (
	"context"
	"errors"
	"time"

	"github.com/spendtrace/spendtrace/internal/tracer/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite for now)
// implement this. Sub-repositories keep concerns tidy and testable.
type Store interface {
	Users() Users
	Shops() Shops
	Purchases() Purchases
	Follows() Follows
	Reports() Reports

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store. The
	// caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction: rolled back when fn errors,
	// committed otherwise. This is the recommended way to make multi-step
	// writes atomic.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transaction-scoped store.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	GetUserByID(ctx context.Context, id string) (domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user (id provided by the app via ULID).
	// Returns ErrAlreadyExists on a username or email collision.
	CreateUser(ctx context.Context, u domain.User) error

	// UpdateProfile mutates username and remindings and bumps updated_at.
	UpdateProfile(ctx context.Context, userID, username, remindings string) error

	// UpdatePasswordHash sets the password_hash (argon2id) and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, userID, newHash string) error

	// TouchLastSeen records user activity.
	TouchLastSeen(ctx context.Context, userID string, at time.Time) error
}

type Shops interface {
	GetShopByID(ctx context.Context, id string) (domain.Shop, error)
	GetShopByName(ctx context.Context, shopname string) (domain.Shop, error)

	// CreateShop inserts a shop, silently doing nothing when the name already
	// exists. The shopname uniqueness constraint is the authority under
	// concurrent creation; callers re-read after inserting.
	CreateShop(ctx context.Context, s domain.Shop) error
}

type Purchases interface {
	// CreatePurchase inserts an immutable purchase fact.
	CreatePurchase(ctx context.Context, p domain.Purchase) error

	// ListByAuthor returns purchases authored by userID, most recent first.
	// limit+offset paginate; the caller requests one extra row to detect a
	// next page.
	ListByAuthor(ctx context.Context, userID string, limit, offset int) ([]domain.Purchase, error)

	// ListAll returns all purchases, most recent first.
	ListAll(ctx context.Context, limit, offset int) ([]domain.Purchase, error)

	// ListFeed returns the feed for userID: purchases by followed users
	// unioned with the user's own, most recent first with ties kept in
	// insertion order. Composed as a single query so pagination stays
	// consistent under concurrent writes.
	ListFeed(ctx context.Context, userID string, limit, offset int) ([]domain.Purchase, error)
}

type Follows interface {
	// CreateFollow inserts the edge (follower, followed). Idempotent.
	CreateFollow(ctx context.Context, followerID, followedID string) error

	// DeleteFollow removes the edge. Idempotent.
	DeleteFollow(ctx context.Context, followerID, followedID string) error

	IsFollowing(ctx context.Context, followerID, followedID string) (bool, error)

	// FollowersOf returns the users following followedID.
	FollowersOf(ctx context.Context, followedID string) ([]domain.User, error)
}

// Reports is the read-only query interface consumed by the chart UI.
type Reports interface {
	SummaryByShop(ctx context.Context) ([]domain.ShopSummary, error)
	SummaryByMonth(ctx context.Context) ([]domain.MonthSummary, error)
	SummaryByUser(ctx context.Context) ([]domain.UserSummary, error)
}
