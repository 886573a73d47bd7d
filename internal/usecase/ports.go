package usecase

import (
	"context"

	"go-website-backend/internal/domain"
	"go-website-backend/pkg/email"
)

// Mailer is satisfied by *email.Dispatcher.
type Mailer interface {
	Send(ctx context.Context, msg email.Message) error
	SendBestEffort(ctx context.Context, msg email.Message)
}

// PasswordHasher is satisfied by *security.BcryptHasher.
type PasswordHasher interface {
	Hash(password string) (string, error)
}

func requestMeta(ctx context.Context) (requestID, endpoint string) {
	requestID, _ = ctx.Value(domain.KeyRequestID).(string)
	endpoint, _ = ctx.Value(domain.KeyEndpoint).(string)
	return requestID, endpoint
}
