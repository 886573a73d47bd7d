package domain

import (
	"context"
	"strings"
)

// ContactRequest represents a contact form submission
type ContactRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Email   string `json:"email" validate:"required,max=254,safe_email"`
	Subject string `json:"subject" validate:"required,min=5,max=200"`
	Message string `json:"message" validate:"required,min=10,max=5000"`
	Token   string `json:"token" validate:"max=2048"`
	SpamSignals
}

func (r *ContactRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = normalizeEmail(r.Email)
	r.Subject = strings.TrimSpace(r.Subject)
	r.Message = strings.TrimSpace(r.Message)
	r.Token = strings.TrimSpace(r.Token)
}

// ContactUsecase defines the interface for contact form operations
type ContactUsecase interface {
	// Submit verifies the captcha token and forwards the message to the site owner
	Submit(ctx context.Context, req *ContactRequest, clientIP string) error
}
