package v1

import (
	"net/http"

	"go-website-backend/internal/delivery/http/middleware"
	"go-website-backend/internal/delivery/http/response"
	"go-website-backend/internal/domain"
	"go-website-backend/pkg/ratelimit"

	"github.com/gin-gonic/gin"
)

const newsletterSuccessMessage = "Successfully subscribed to newsletter!"

type NewsletterHandler struct {
	newsletterUC domain.NewsletterUsecase
	pipe         *pipeline
	policy       ratelimit.Policy
}

func NewNewsletterHandler(forms, preflight *gin.RouterGroup, newsletterUC domain.NewsletterUsecase, pipe *pipeline, policy ratelimit.Policy) {
	handler := &NewsletterHandler{
		newsletterUC: newsletterUC,
		pipe:         pipe,
		policy:       policy,
	}

	forms.POST("/newsletter", handler.Subscribe)
	preflight.OPTIONS("/newsletter", middleware.Preflight)
}

// Subscribe godoc
// @Summary      Subscribe to Newsletter
// @Tags         newsletter
// @Accept       json
// @Produce      json
// @Param        subscription  body      domain.NewsletterRequest  true  "Subscriber"
// @Success      200           {object}  response.Response
// @Failure      400           {object}  response.Response
// @Failure      429           {object}  response.Response
// @Failure      500           {object}  response.Response
// @Router       /newsletter [post]
func (h *NewsletterHandler) Subscribe(c *gin.Context) {
	var req domain.NewsletterRequest
	if !h.pipe.bind(c, h.policy.Name, &req) {
		return
	}
	if h.pipe.screen(c, h.policy.Name, &req, newsletterSuccessMessage) {
		return
	}
	if !h.pipe.limiter.Allow(c, h.policy) {
		return
	}

	if err := h.newsletterUC.Subscribe(c.Request.Context(), &req); err != nil {
		h.pipe.metrics.Submission(h.policy.Name, outcomeFailed)
		_ = c.Error(err)
		return
	}

	h.pipe.metrics.Submission(h.policy.Name, outcomeAccepted)
	response.Success(c, http.StatusOK, newsletterSuccessMessage, nil)
}
