package email

import (
	"go-website-backend/config"

	"go.uber.org/zap"
)

// NewSender picks the delivery backend: Resend when an API key and sender
// address are set, then SMTP, otherwise the logging backend.
func NewSender(cfg *config.Config, logger *zap.Logger) (Sender, string) {
	if cfg.ResendAPIKey != "" && cfg.EmailFrom != "" {
		return NewResendSender(cfg.ResendAPIKey), cfg.EmailFrom
	}

	smtpSender := NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)
	if smtpSender.IsConfigured() {
		from := cfg.SMTPFromEmail
		if from == "" {
			from = cfg.SMTPUsername // Brevo uses login email as from address
		}
		return smtpSender, from
	}

	logger.Warn("no email provider configured, messages will only be logged")
	from := cfg.EmailFrom
	if from == "" {
		from = "noreply@localhost"
	}
	return NewLogSender(logger.Named("email")), from
}
