package service

import (
	"context"
	"testing"
	"time"

	"github.com/spendtrace/spendtrace/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	ctx := context.Background()
	svc := newIdentityService(newTestStore(t))

	t.Run("creates a user", func(t *testing.T) {
		user, err := svc.Register(ctx, "susan", "susan@example.com", "correct horse battery")
		require.NoError(t, err)
		require.NotEmpty(t, user.ID)
		require.Equal(t, "susan", user.Username)
		require.Equal(t, "susan@example.com", user.Email)
		require.NotEqual(t, "correct horse battery", user.PasswordHash)
	})

	t.Run("rejects duplicate username", func(t *testing.T) {
		_, err := svc.Register(ctx, "susan", "other@example.com", "password1234")
		require.ErrorIs(t, err, ErrDuplicateUsername)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		_, err := svc.Register(ctx, "susan2", "susan@example.com", "password1234")
		require.ErrorIs(t, err, ErrDuplicateEmail)
	})

	t.Run("normalizes email case", func(t *testing.T) {
		_, err := svc.Register(ctx, "susan3", "SUSAN@example.com", "password1234")
		require.ErrorIs(t, err, ErrDuplicateEmail)
	})

	t.Run("rejects empty fields", func(t *testing.T) {
		_, err := svc.Register(ctx, "", "a@example.com", "password1234")
		require.True(t, IsValidation(err))

		_, err = svc.Register(ctx, "newuser", "", "password1234")
		require.True(t, IsValidation(err))

		_, err = svc.Register(ctx, "newuser", "a@example.com", "")
		require.True(t, IsValidation(err))
	})
}

func TestVerify(t *testing.T) {
	ctx := context.Background()
	svc := newIdentityService(newTestStore(t))
	registerUser(t, svc, "john")

	t.Run("accepts correct credentials and bumps last seen", func(t *testing.T) {
		user, err := svc.Verify(ctx, "john", "hunter2hunter2")
		require.NoError(t, err)
		require.Equal(t, "john", user.Username)
		require.False(t, user.LastSeen.IsZero())
	})

	t.Run("rejects wrong password", func(t *testing.T) {
		_, err := svc.Verify(ctx, "john", "not-the-password")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown user gets the same error as a wrong password", func(t *testing.T) {
		_, err := svc.Verify(ctx, "nobody", "hunter2hunter2")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	svc := newIdentityService(newTestStore(t))
	john := registerUser(t, svc, "john")
	registerUser(t, svc, "mary")

	t.Run("updates username and remindings", func(t *testing.T) {
		user, err := svc.UpdateProfile(ctx, john.ID, "johnny", "pay rent on the 1st")
		require.NoError(t, err)
		require.Equal(t, "johnny", user.Username)
		require.Equal(t, "pay rent on the 1st", user.Remindings)
	})

	t.Run("rejects taken username", func(t *testing.T) {
		_, err := svc.UpdateProfile(ctx, john.ID, "mary", "")
		require.ErrorIs(t, err, ErrDuplicateUsername)
	})

	t.Run("keeping your own username is not a collision", func(t *testing.T) {
		_, err := svc.UpdateProfile(ctx, john.ID, "johnny", "new note")
		require.NoError(t, err)
	})

	t.Run("rejects overlong remindings", func(t *testing.T) {
		long := make([]byte, 141)
		for i := range long {
			long[i] = 'x'
		}
		_, err := svc.UpdateProfile(ctx, john.ID, "johnny", string(long))
		require.True(t, IsValidation(err))
	})
}

func TestPasswordResetFlow(t *testing.T) {
	ctx := context.Background()
	svc := newIdentityService(newTestStore(t))
	john := registerUser(t, svc, "john")

	t.Run("issued token resets the password", func(t *testing.T) {
		token, user, err := svc.IssueResetToken(ctx, "john@example.com")
		require.NoError(t, err)
		require.Equal(t, john.ID, user.ID)

		require.NoError(t, svc.ResetPassword(ctx, token, "a brand new password"))

		_, err = svc.Verify(ctx, "john", "hunter2hunter2")
		require.ErrorIs(t, err, ErrInvalidCredentials)

		_, err = svc.Verify(ctx, "john", "a brand new password")
		require.NoError(t, err)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, _, err := svc.IssueResetToken(ctx, "ghost@example.com")
		require.ErrorIs(t, err, ErrUnknownUser)
	})

	t.Run("expired token", func(t *testing.T) {
		expired := &IdentityService{Store: svc.Store, Tokens: svc.Tokens, ResetTTL: -time.Minute}
		token, _, err := expired.IssueResetToken(ctx, "john@example.com")
		require.NoError(t, err)

		err = svc.ResetPassword(ctx, token, "whatever password")
		require.ErrorIs(t, err, ErrTokenExpired)
	})

	t.Run("tampered token", func(t *testing.T) {
		token, _, err := svc.IssueResetToken(ctx, "john@example.com")
		require.NoError(t, err)

		err = svc.ResetPassword(ctx, token+"x", "whatever password")
		require.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("session token cannot reset a password", func(t *testing.T) {
		session, err := svc.Tokens.Sign(john.ID, jwtx.PurposeSession, time.Hour)
		require.NoError(t, err)

		err = svc.ResetPassword(ctx, session, "whatever password")
		require.ErrorIs(t, err, ErrTokenInvalid)
	})
}
