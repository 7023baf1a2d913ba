package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/spendtrace/spendtrace/internal/tracer/domain"
)

type followsRepo struct {
	db dbtx
}

// CreateFollow is idempotent: re-following is a no-op thanks to the
// composite primary key on the edge table.
func (r *followsRepo) CreateFollow(ctx context.Context, followerID, followedID string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO followers (follower_id, followed_id, created_at) VALUES (?, ?, ?)
		ON CONFLICT (follower_id, followed_id) DO NOTHING`,
		followerID, followedID, time.Now().UTC(),
	)
	return err
}

func (r *followsRepo) DeleteFollow(ctx context.Context, followerID, followedID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM followers WHERE follower_id = ? AND followed_id = ?`,
		followerID, followedID,
	)
	return err
}

func (r *followsRepo) IsFollowing(ctx context.Context, followerID, followedID string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM followers WHERE follower_id = ? AND followed_id = ?`,
		followerID, followedID,
	).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *followsRepo) FollowersOf(ctx context.Context, followedID string) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT u.`+followerUserColumns+`
		FROM users u
		JOIN followers f ON f.follower_id = u.id
		WHERE f.followed_id = ?
		ORDER BY u.username ASC`,
		followedID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.User
	for rows.Next() {
		var (
			u        domain.User
			lastSeen sql.NullTime
		)
		if err := rows.Scan(
			&u.ID, &u.Username, &u.Email, &u.PasswordHash,
			&u.Remindings, &lastSeen, &u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, err
		}
		u.LastSeen = mapNullTime(lastSeen)
		out = append(out, u)
	}
	return out, rows.Err()
}

const followerUserColumns = `id, u.username, u.email, u.password_hash, u.remindings, u.last_seen, u.created_at, u.updated_at`
