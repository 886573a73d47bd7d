package domain

import "context"

// NewsletterRequest represents a newsletter signup
type NewsletterRequest struct {
	Email string `json:"email" validate:"required,max=254,safe_email"`
	SpamSignals
}

func (r *NewsletterRequest) Normalize() {
	r.Email = normalizeEmail(r.Email)
}

type NewsletterUsecase interface {
	Subscribe(ctx context.Context, req *NewsletterRequest) error
}
