package domain

import (
	"context"
	"strings"
)

// ClientErrorReport is a browser-side error forwarded for server logging.
type ClientErrorReport struct {
	Message   string `json:"message" validate:"required,max=2000"`
	URL       string `json:"url" validate:"max=2048"`
	Stack     string `json:"stack" validate:"max=16000"`
	UserAgent string `json:"userAgent" validate:"max=512"`
	Timestamp string `json:"timestamp" validate:"max=64"`
}

func (r *ClientErrorReport) Normalize() {
	r.Message = strings.TrimSpace(r.Message)
	r.URL = strings.TrimSpace(r.URL)
	r.UserAgent = strings.TrimSpace(r.UserAgent)
	r.Timestamp = strings.TrimSpace(r.Timestamp)
}

type ErrorReportUsecase interface {
	Report(ctx context.Context, report *ClientErrorReport, clientIP string)
}
