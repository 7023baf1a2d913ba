package service

import (
	"context"
	"log/slog"

	"github.com/spendtrace/spendtrace/pkg/slogx"
)

// Mailer delivers password reset tokens to users. The core only produces the
// token; how it reaches the inbox is the implementation's concern.
type Mailer interface {
	SendPasswordReset(ctx context.Context, toEmail, token string) error
}

// LogMailer "delivers" reset tokens to the log. Used in dev and in tests;
// production deployments plug in a real delivery backend.
type LogMailer struct{}

func (LogMailer) SendPasswordReset(ctx context.Context, toEmail, token string) error {
	slogx.FromContext(ctx).Info("password reset requested",
		slog.String("email", toEmail),
		slog.String("token", token),
	)
	return nil
}
