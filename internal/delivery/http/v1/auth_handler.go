package v1

import (
	"net/http"

	"go-website-backend/internal/delivery/http/middleware"
	"go-website-backend/internal/delivery/http/response"
	"go-website-backend/internal/domain"
	"go-website-backend/pkg/ratelimit"

	"github.com/gin-gonic/gin"
)

// RegistrationMessage is returned for every accepted registration so the
// response does not reveal whether the email already had an account.
const RegistrationMessage = "If this email is not already registered, you will receive a confirmation email."

type AuthHandler struct {
	authUC   domain.AuthUsecase
	pipe     *pipeline
	policy   ratelimit.Policy
	echoUser bool
}

func NewAuthHandler(forms, preflight *gin.RouterGroup, authUC domain.AuthUsecase, pipe *pipeline, policy ratelimit.Policy, echoUser bool) {
	handler := &AuthHandler{
		authUC:   authUC,
		pipe:     pipe,
		policy:   policy,
		echoUser: echoUser,
	}

	forms.POST("/auth/register", handler.Register)
	preflight.OPTIONS("/auth/register", middleware.Preflight)
}

// Register godoc
// @Summary      Register Account
// @Description  Creates an account. Existing and new emails receive the same reply.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        account  body      domain.RegisterRequest  true  "Account"
// @Success      200      {object}  response.Response
// @Success      201      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      429      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req domain.RegisterRequest
	if !h.pipe.bind(c, h.policy.Name, &req) {
		return
	}
	if !h.pipe.limiter.Allow(c, h.policy) {
		return
	}

	result, err := h.authUC.Register(c.Request.Context(), &req, middleware.ClientIP(c))
	if err != nil {
		h.pipe.metrics.Submission(h.policy.Name, outcomeFailed)
		_ = c.Error(err)
		return
	}

	h.pipe.metrics.Submission(h.policy.Name, outcomeAccepted)
	if h.echoUser && result.Created {
		response.UserCreated(c, http.StatusCreated, result.User)
		return
	}
	response.Success(c, http.StatusOK, RegistrationMessage, nil)
}
