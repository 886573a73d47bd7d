package usecase

import (
	"context"

	"go-website-backend/internal/domain"
	"go-website-backend/pkg/apperror"
	"go-website-backend/pkg/email"

	"go.uber.org/zap"
)

type newsletterUsecase struct {
	mailer     Mailer
	ownerEmail string
	logger     *zap.Logger
}

func NewNewsletterUsecase(mailer Mailer, ownerEmail string, logger *zap.Logger) domain.NewsletterUsecase {
	return &newsletterUsecase{
		mailer:     mailer,
		ownerEmail: ownerEmail,
		logger:     logger,
	}
}

// Subscribe notifies the site owner of a new subscriber, then welcomes the
// subscriber on a best-effort basis.
func (uc *newsletterUsecase) Subscribe(ctx context.Context, req *domain.NewsletterRequest) error {
	html, err := email.RenderNewsletterNotification(req.Email)
	if err != nil {
		return apperror.Internal(err)
	}

	if err := uc.mailer.Send(ctx, email.Message{
		To:      []string{uc.ownerEmail},
		Subject: "New Newsletter Subscription",
		HTML:    html,
		ReplyTo: req.Email,
	}); err != nil {
		return apperror.Upstream("Failed to process subscription. Please try again later.", err)
	}

	welcome, err := email.RenderNewsletterWelcome()
	if err != nil {
		uc.logger.Warn("failed to render welcome email", zap.Error(err))
		return nil
	}
	uc.mailer.SendBestEffort(context.WithoutCancel(ctx), email.Message{
		To:      []string{req.Email},
		Subject: "Welcome to our newsletter!",
		HTML:    welcome,
	})
	return nil
}
