package v1

import (
	"net/http"

	"go-website-backend/internal/delivery/http/middleware"
	"go-website-backend/internal/delivery/http/response"
	"go-website-backend/internal/domain"
	"go-website-backend/pkg/ratelimit"

	"github.com/gin-gonic/gin"
)

const contactSuccessMessage = "Thank you for your message. We'll be in touch soon!"

type ContactHandler struct {
	contactUC domain.ContactUsecase
	pipe      *pipeline
	policy    ratelimit.Policy
}

// NewContactHandler registers the contact routes (public, no auth required)
func NewContactHandler(forms, preflight *gin.RouterGroup, contactUC domain.ContactUsecase, pipe *pipeline, policy ratelimit.Policy) {
	handler := &ContactHandler{
		contactUC: contactUC,
		pipe:      pipe,
		policy:    policy,
	}

	forms.POST("/contact", handler.SubmitContact)
	preflight.OPTIONS("/contact", middleware.Preflight)
}

// SubmitContact godoc
// @Summary      Submit Contact Form
// @Description  Send a message through the contact form. Requires a Turnstile token.
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        contact  body      domain.ContactRequest  true  "Contact Form Data"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Failure      413      {object}  response.Response
// @Failure      429      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Router       /contact [post]
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	var req domain.ContactRequest
	if !h.pipe.bind(c, h.policy.Name, &req) {
		return
	}
	if h.pipe.screen(c, h.policy.Name, &req, contactSuccessMessage) {
		return
	}
	if !h.pipe.limiter.Allow(c, h.policy) {
		return
	}

	if err := h.contactUC.Submit(c.Request.Context(), &req, middleware.ClientIP(c)); err != nil {
		h.pipe.metrics.Submission(h.policy.Name, outcomeFailed)
		_ = c.Error(err)
		return
	}

	h.pipe.metrics.Submission(h.policy.Name, outcomeAccepted)
	response.Success(c, http.StatusOK, contactSuccessMessage, nil)
}
