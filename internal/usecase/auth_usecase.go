package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go-website-backend/internal/domain"
	"go-website-backend/pkg/apperror"
	"go-website-backend/pkg/security"

	"github.com/google/uuid"
)

const registrationFailedMessage = "An error occurred while creating your account. Please try again later."

type authUsecase struct {
	userRepo  domain.UserRepository
	hasher    PasswordHasher
	secLogger *security.SecurityLogger
	now       func() time.Time
}

func NewAuthUsecase(userRepo domain.UserRepository, hasher PasswordHasher, secLogger *security.SecurityLogger) domain.AuthUsecase {
	return &authUsecase{
		userRepo:  userRepo,
		hasher:    hasher,
		secLogger: secLogger,
		now:       time.Now,
	}
}

// Register creates an account. The password is hashed before the lookup so
// new and existing emails cost the same time.
func (u *authUsecase) Register(ctx context.Context, req *domain.RegisterRequest, clientIP string) (*domain.RegistrationResult, error) {
	hash, err := u.hasher.Hash(req.Password)
	if err != nil {
		return nil, registrationError(err)
	}

	existing, err := u.userRepo.GetByEmail(ctx, req.Email)
	switch {
	case err == nil && existing != nil:
		u.secLogger.LogRegistrationDuplicate(ctx, req.Email, clientIP)
		return &domain.RegistrationResult{Created: false}, nil
	case err != nil && !errors.Is(err, domain.ErrUserNotFound):
		return nil, registrationError(fmt.Errorf("lookup user: %w", err))
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		CreatedAt:    u.now().UTC(),
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			// Lost a race with a concurrent signup for the same email
			u.secLogger.LogRegistrationDuplicate(ctx, req.Email, clientIP)
			return &domain.RegistrationResult{Created: false}, nil
		}
		return nil, registrationError(fmt.Errorf("create user: %w", err))
	}

	u.secLogger.LogUserCreated(ctx, user.ID, user.Email, clientIP)
	return &domain.RegistrationResult{Created: true, User: user}, nil
}

func registrationError(err error) *apperror.AppError {
	return apperror.New(http.StatusInternalServerError, apperror.CodeInternal, registrationFailedMessage, err)
}
