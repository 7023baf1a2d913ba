package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/spendtrace/spendtrace/internal/tracer/domain"
	"github.com/spendtrace/spendtrace/internal/tracer/store"
	"github.com/spendtrace/spendtrace/pkg/cryptox"
	"github.com/spendtrace/spendtrace/pkg/idx"
	"github.com/spendtrace/spendtrace/pkg/jwtx"
	"github.com/spendtrace/spendtrace/pkg/slogx"
)

// IdentityService owns user records, credential verification and password
// reset tokens.
type IdentityService struct {
	Store    store.Store
	Tokens   *jwtx.Codec
	ResetTTL time.Duration
}

// Register creates a new user after uniqueness checks on username and email.
// The database uniqueness constraints remain the authority under races; a
// constraint violation maps back to the matching duplicate error.
func (s *IdentityService) Register(ctx context.Context, username, email, password string) (domain.User, error) {
	log := slogx.FromContext(ctx)

	username = strings.TrimSpace(username)
	email = strings.TrimSpace(strings.ToLower(email))
	if username == "" {
		return domain.User{}, invalidField("username", "must not be empty")
	}
	if email == "" {
		return domain.User{}, invalidField("email", "must not be empty")
	}
	if password == "" {
		return domain.User{}, invalidField("password", "must not be empty")
	}

	if _, err := s.Store.Users().GetUserByUsername(ctx, username); err == nil {
		return domain.User{}, ErrDuplicateUsername
	} else if !errors.Is(err, store.ErrNotFound) {
		return domain.User{}, err
	}
	if _, err := s.Store.Users().GetUserByEmail(ctx, email); err == nil {
		return domain.User{}, ErrDuplicateEmail
	} else if !errors.Is(err, store.ErrNotFound) {
		return domain.User{}, err
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.User{}, err
	}

	now := time.Now().UTC()
	user := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			// Lost a race with a concurrent registration. Re-read to report
			// which field collided.
			if _, uerr := s.Store.Users().GetUserByUsername(ctx, username); uerr == nil {
				return domain.User{}, ErrDuplicateUsername
			}
			return domain.User{}, ErrDuplicateEmail
		}
		return domain.User{}, err
	}

	log.Info("user registered",
		slog.String("user_id", user.ID),
		slog.String("username", user.Username),
	)
	return user, nil
}

// Verify checks a username/password pair and bumps last_seen on success. It
// answers ErrInvalidCredentials for both unknown users and wrong passwords so
// callers cannot probe for registered usernames.
func (s *IdentityService) Verify(ctx context.Context, username, password string) (domain.User, error) {
	log := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrInvalidCredentials
		}
		return domain.User{}, err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		log.Info("login failed", slog.String("username", username))
		return domain.User{}, ErrInvalidCredentials
	}

	now := time.Now().UTC()
	if err := s.Store.Users().TouchLastSeen(ctx, user.ID, now); err != nil {
		return domain.User{}, err
	}
	user.LastSeen = now
	return user, nil
}

// Touch records activity for an authenticated user.
func (s *IdentityService) Touch(ctx context.Context, userID string) error {
	return s.Store.Users().TouchLastSeen(ctx, userID, time.Now().UTC())
}

// GetUserByID fetches a user by id.
func (s *IdentityService) GetUserByID(ctx context.Context, userID string) (domain.User, error) {
	return s.Store.Users().GetUserByID(ctx, userID)
}

// GetUserByUsername fetches a user by username.
func (s *IdentityService) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	user, err := s.Store.Users().GetUserByUsername(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, ErrUnknownUser
	}
	return user, err
}

// UpdateProfile changes a user's username and remindings note.
func (s *IdentityService) UpdateProfile(ctx context.Context, userID, username, remindings string) (domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return domain.User{}, invalidField("username", "must not be empty")
	}
	if len(remindings) > domain.RemindingsMaxLen {
		return domain.User{}, invalidField("remindings", "must be at most 140 characters")
	}

	current, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return domain.User{}, err
	}

	if username != current.Username {
		if _, err := s.Store.Users().GetUserByUsername(ctx, username); err == nil {
			return domain.User{}, ErrDuplicateUsername
		} else if !errors.Is(err, store.ErrNotFound) {
			return domain.User{}, err
		}
	}

	if err := s.Store.Users().UpdateProfile(ctx, userID, username, remindings); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrDuplicateUsername
		}
		return domain.User{}, err
	}

	current.Username = username
	current.Remindings = remindings
	return current, nil
}

// IssueResetToken mints a signed, time-bound token scoped to the user with
// the given email. The core only produces the token; delivery is the
// caller's concern. Returns ErrUnknownUser when no account matches, so the
// HTTP layer can decide whether to reveal that.
func (s *IdentityService) IssueResetToken(ctx context.Context, email string) (string, domain.User, error) {
	user, err := s.Store.Users().GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", domain.User{}, ErrUnknownUser
		}
		return "", domain.User{}, err
	}

	token, err := s.Tokens.Sign(user.ID, jwtx.PurposePasswordReset, s.ResetTTL)
	if err != nil {
		return "", domain.User{}, err
	}
	return token, user, nil
}

// RedeemResetToken verifies a reset token and returns the user it was issued
// for. Tampered or expired tokens yield typed failures.
func (s *IdentityService) RedeemResetToken(ctx context.Context, token string) (domain.User, error) {
	userID, err := s.Tokens.Verify(token, jwtx.PurposePasswordReset)
	if err != nil {
		if errors.Is(err, jwtx.ErrExpired) {
			return domain.User{}, ErrTokenExpired
		}
		return domain.User{}, ErrTokenInvalid
	}

	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrTokenInvalid
		}
		return domain.User{}, err
	}
	return user, nil
}

// ResetPassword redeems a reset token and sets the new password.
func (s *IdentityService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if newPassword == "" {
		return invalidField("password", "must not be empty")
	}

	user, err := s.RedeemResetToken(ctx, token)
	if err != nil {
		return err
	}

	hash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		return err
	}

	if err := s.Store.Users().UpdatePasswordHash(ctx, user.ID, hash); err != nil {
		return err
	}

	slogx.FromContext(ctx).Info("password reset", slog.String("user_id", user.ID))
	return nil
}
