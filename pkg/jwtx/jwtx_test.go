package jwtx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCodec(t *testing.T) {
	t.Parallel()

	codec := NewCodec([]byte("test-secret"), "spendtrace-test")

	t.Run("round trip", func(t *testing.T) {
		token, err := codec.Sign("user-1", PurposeSession, time.Hour)
		require.NoError(t, err)

		subject, err := codec.Verify(token, PurposeSession)
		require.NoError(t, err)
		require.Equal(t, "user-1", subject)
	})

	t.Run("purpose mismatch", func(t *testing.T) {
		token, err := codec.Sign("user-1", PurposePasswordReset, time.Hour)
		require.NoError(t, err)

		_, err = codec.Verify(token, PurposeSession)
		require.ErrorIs(t, err, ErrInvalid)
	})

	t.Run("expired token", func(t *testing.T) {
		token, err := codec.Sign("user-1", PurposeSession, -time.Minute)
		require.NoError(t, err)

		_, err = codec.Verify(token, PurposeSession)
		require.ErrorIs(t, err, ErrExpired)
	})

	t.Run("tampered token", func(t *testing.T) {
		token, err := codec.Sign("user-1", PurposeSession, time.Hour)
		require.NoError(t, err)

		_, err = codec.Verify(token+"x", PurposeSession)
		require.ErrorIs(t, err, ErrInvalid)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewCodec([]byte("other-secret"), "spendtrace-test")
		token, err := other.Sign("user-1", PurposeSession, time.Hour)
		require.NoError(t, err)

		_, err = codec.Verify(token, PurposeSession)
		require.ErrorIs(t, err, ErrInvalid)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		other := NewCodec([]byte("test-secret"), "someone-else")
		token, err := other.Sign("user-1", PurposeSession, time.Hour)
		require.NoError(t, err)

		_, err = codec.Verify(token, PurposeSession)
		require.ErrorIs(t, err, ErrInvalid)
	})

	t.Run("garbage input", func(t *testing.T) {
		_, err := codec.Verify("not.a.jwt", PurposeSession)
		require.ErrorIs(t, err, ErrInvalid)
	})
}
