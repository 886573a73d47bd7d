package v1

import (
	"net/http"

	"go-website-backend/internal/delivery/http/middleware"
	"go-website-backend/internal/delivery/http/response"
	"go-website-backend/internal/domain"
	"go-website-backend/pkg/ratelimit"

	"github.com/gin-gonic/gin"
)

type ErrorReportHandler struct {
	reportUC domain.ErrorReportUsecase
	pipe     *pipeline
}

func NewErrorReportHandler(forms, public *gin.RouterGroup, reportUC domain.ErrorReportUsecase, pipe *pipeline, policy ratelimit.Policy) {
	handler := &ErrorReportHandler{reportUC: reportUC, pipe: pipe}

	forms.POST("/errors", middleware.RateLimitMiddleware(pipe.limiter, policy), handler.Report)
	public.GET("/errors", handler.Status)
	public.OPTIONS("/errors", middleware.Preflight)
}

// Report godoc
// @Summary      Report Client Error
// @Tags         errors
// @Accept       json
// @Produce      json
// @Param        report  body      domain.ClientErrorReport  true  "Error report"
// @Success      200     {object}  response.Response
// @Failure      400     {object}  response.Response
// @Failure      429     {object}  response.Response
// @Router       /errors [post]
func (h *ErrorReportHandler) Report(c *gin.Context) {
	var report domain.ClientErrorReport
	if !h.pipe.bind(c, "errors", &report) {
		return
	}

	h.reportUC.Report(c.Request.Context(), &report, middleware.ClientIP(c))
	response.Success(c, http.StatusOK, "Error reported successfully", nil)
}

// Status godoc
// @Summary      Error Reporting Status
// @Tags         errors
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /errors [get]
func (h *ErrorReportHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "Error reporting endpoint is operational",
	})
}
