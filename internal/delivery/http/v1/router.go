package v1

import (
	"net/http"
	"time"

	"go-website-backend/config"
	"go-website-backend/internal/delivery/http/middleware"
	"go-website-backend/internal/delivery/http/response"
	"go-website-backend/internal/domain"
	"go-website-backend/internal/usecase"
	"go-website-backend/pkg/apperror"
	"go-website-backend/pkg/metrics"
	"go-website-backend/pkg/ratelimit"
	"go-website-backend/pkg/security"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// Client IP headers in priority order.
var remoteIPHeaders = []string{"X-Vercel-Forwarded-For", "X-Forwarded-For", "X-Real-IP"}

type RouterDeps struct {
	ContactUC     domain.ContactUsecase
	NewsletterUC  domain.NewsletterUsecase
	AuthUC        domain.AuthUsecase
	ErrorReportUC domain.ErrorReportUsecase
	HealthUC      usecase.HealthUsecase
	Limiter       ratelimit.Limiter
	Validate      *validator.Validate
	SecLogger     *security.SecurityLogger
	Metrics       *metrics.Metrics
	Logger        *zap.Logger
	Config        *config.Config
}

// Policies returns the per-endpoint quotas derived from configuration.
func Policies(cfg *config.Config) map[string]ratelimit.Policy {
	return map[string]ratelimit.Policy{
		"contact":    {Name: "contact", Limit: cfg.RateLimitContact, Window: time.Hour},
		"newsletter": {Name: "newsletter", Limit: cfg.RateLimitNewsletter, Window: time.Hour},
		"register":   {Name: "register", Limit: cfg.RateLimitRegister, Window: time.Hour},
		"errors":     {Name: "errors", Limit: 30, Window: 10 * time.Minute},
	}
}

func NewRouter(deps RouterDeps) (*gin.Engine, error) {
	cfg := deps.Config

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.RemoteIPHeaders = remoteIPHeaders
	if len(cfg.TrustedProxies) > 0 {
		if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
			return nil, err
		}
	} else if cfg.IsProduction() {
		deps.Logger.Warn("TRUSTED_PROXIES not set: forwarded client IPs are trusted from any peer, so per-IP limits can be evaded by spoofing X-Forwarded-For")
	}

	// Global Middlewares
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.AccessLog(deps.Logger))
	if cfg.MetricsEnabled {
		r.Use(middleware.Metrics(deps.Metrics))
	}
	r.Use(middleware.SecurityHeadersMiddleware(cfg.IsProduction()))
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigin))
	r.Use(middleware.ErrorHandler(deps.Logger))

	r.NoMethod(func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")
		err := apperror.MethodNotAllowed()
		response.Error(c, err.Status, err.Code, err.Message, nil)
	})
	r.NoRoute(func(c *gin.Context) {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Not found", nil)
	})

	if cfg.MetricsEnabled {
		r.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	api := r.Group("/api")

	// Mutating form endpoints: origin lock and size cap run before any handler.
	forms := api.Group("",
		middleware.NoStore(),
		middleware.OriginGuard(cfg.AllowedOrigin, deps.SecLogger),
		middleware.BodyLimit(cfg.MaxBodyBytes, deps.SecLogger),
	)

	pipe := &pipeline{
		validate:   deps.Validate,
		limiter:    middleware.NewRateLimiter(deps.Limiter, deps.SecLogger, deps.Metrics, deps.Logger),
		secLogger:  deps.SecLogger,
		metrics:    deps.Metrics,
		minElapsed: cfg.MinSubmitElapsed,
		now:        time.Now,
	}
	policies := Policies(cfg)

	NewHealthHandler(api, deps.HealthUC)
	NewContactHandler(forms, api, deps.ContactUC, pipe, policies["contact"])
	NewNewsletterHandler(forms, api, deps.NewsletterUC, pipe, policies["newsletter"])
	NewAuthHandler(forms, api, deps.AuthUC, pipe, policies["register"], cfg.RegisterEchoUser)
	NewErrorReportHandler(forms, api, deps.ErrorReportUC, pipe, policies["errors"])

	// Swagger
	api.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r, nil
}
