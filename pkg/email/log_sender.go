package email

import (
	"context"
	"unicode/utf8"

	"go.uber.org/zap"
)

const logPreviewLength = 200

// LogSender writes messages to the log instead of delivering them. Used
// when no provider is configured.
type LogSender struct {
	logger *zap.Logger
}

func NewLogSender(logger *zap.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Name() string { return "log" }

func (s *LogSender) Send(_ context.Context, from string, msg Message) error {
	s.logger.Info("email would be sent",
		zap.String("from", from),
		zap.Strings("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.String("reply_to", msg.ReplyTo),
		zap.String("html_preview", preview(msg.HTML, logPreviewLength)),
	)
	return nil
}

func preview(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
