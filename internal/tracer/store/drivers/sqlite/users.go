package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/spendtrace/spendtrace/internal/tracer/domain"
)

type usersRepo struct {
	db dbtx
}

const userColumns = `id, username, email, password_hash, remindings, last_seen, created_at, updated_at`

func scanUser(row *sql.Row) (domain.User, error) {
	var (
		u        domain.User
		lastSeen sql.NullTime
	)
	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash,
		&u.Remindings, &lastSeen, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	u.LastSeen = mapNullTime(lastSeen)
	return u, nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	return scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id))
}

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	return scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = ?`, username))
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	return scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, email))
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, username, email, password_hash, remindings, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Username, u.Email, u.PasswordHash, u.Remindings,
		u.CreatedAt.UTC(), u.UpdatedAt.UTC(),
	)
	return mapUnique(err)
}

func (r *usersRepo) UpdateProfile(ctx context.Context, userID, username, remindings string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE users SET username = ?, remindings = ?, updated_at = ? WHERE id = ?`,
		username, remindings, time.Now().UTC(), userID,
	)
	return mapUnique(err)
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, userID, newHash string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?`,
		newHash, time.Now().UTC(), userID,
	)
	return err
}

func (r *usersRepo) TouchLastSeen(ctx context.Context, userID string, at time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET last_seen = ? WHERE id = ?`, at.UTC(), userID)
	return err
}
