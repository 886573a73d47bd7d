package usecase

import (
	"context"

	"go-website-backend/internal/domain"

	"go.uber.org/zap"
)

type errorReportUsecase struct {
	logger *zap.Logger
}

func NewErrorReportUsecase(logger *zap.Logger) domain.ErrorReportUsecase {
	return &errorReportUsecase{logger: logger.Named("client_error")}
}

func (u *errorReportUsecase) Report(ctx context.Context, report *domain.ClientErrorReport, clientIP string) {
	requestID, _ := requestMeta(ctx)
	u.logger.Warn("client error reported",
		zap.String("message", report.Message),
		zap.String("url", report.URL),
		zap.String("user_agent", report.UserAgent),
		zap.String("client_timestamp", report.Timestamp),
		zap.String("stack", report.Stack),
		zap.String("ip", clientIP),
		zap.String("request_id", requestID),
	)
}
