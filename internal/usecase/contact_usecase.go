package usecase

import (
	"context"

	"go-website-backend/internal/domain"
	"go-website-backend/pkg/apperror"
	"go-website-backend/pkg/captcha"
	"go-website-backend/pkg/email"
	"go-website-backend/pkg/metrics"
	"go-website-backend/pkg/security"

	"go.uber.org/zap"
)

type contactUsecase struct {
	mailer     Mailer
	verifier   captcha.Verifier
	ownerEmail string
	secLogger  *security.SecurityLogger
	metrics    *metrics.Metrics
	logger     *zap.Logger
}

// NewContactUsecase creates a new contact usecase
func NewContactUsecase(
	mailer Mailer,
	verifier captcha.Verifier,
	ownerEmail string,
	secLogger *security.SecurityLogger,
	m *metrics.Metrics,
	logger *zap.Logger,
) domain.ContactUsecase {
	return &contactUsecase{
		mailer:     mailer,
		verifier:   verifier,
		ownerEmail: ownerEmail,
		secLogger:  secLogger,
		metrics:    m,
		logger:     logger,
	}
}

// Submit verifies the captcha, emails the site owner and sends a
// best-effort acknowledgement to the submitter.
func (uc *contactUsecase) Submit(ctx context.Context, req *domain.ContactRequest, clientIP string) error {
	requestID, endpoint := requestMeta(ctx)

	if req.Token == "" {
		uc.secLogger.LogCaptchaFailed(ctx, clientIP, requestID, endpoint, false)
		return apperror.CaptchaRequired()
	}

	ok := uc.verifier.Verify(ctx, req.Token, clientIP)
	uc.metrics.CaptchaVerification(ok)
	if !ok {
		uc.secLogger.LogCaptchaFailed(ctx, clientIP, requestID, endpoint, true)
		return apperror.CaptchaInvalid()
	}

	html, err := email.RenderContactNotification(email.ContactEmailData{
		SenderName:  req.Name,
		SenderEmail: req.Email,
		Subject:     req.Subject,
		Message:     req.Message,
	})
	if err != nil {
		return apperror.Internal(err)
	}

	if err := uc.mailer.Send(ctx, email.Message{
		To:      []string{uc.ownerEmail},
		Subject: "Contact Form: " + req.Subject,
		HTML:    html,
		ReplyTo: req.Email,
	}); err != nil {
		return apperror.Upstream("Failed to send message. Please try again later.", err)
	}

	reply, err := email.RenderContactAutoReply(req.Name)
	if err != nil {
		uc.logger.Warn("failed to render auto-reply", zap.Error(err))
		return nil
	}
	// The acknowledgement must not be cut short by the client hanging up.
	uc.mailer.SendBestEffort(context.WithoutCancel(ctx), email.Message{
		To:      []string{req.Email},
		Subject: "Thank you for contacting us",
		HTML:    reply,
	})

	return nil
}
