package auth

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/hadirly/attendance-backend-go/internal/domain/auth"
	"github.com/hadirly/attendance-backend-go/internal/domain/user"
	"github.com/hadirly/attendance-backend-go/internal/pkg/jwt"
)

type authService struct {
	userRepo user.Repository
	jwt      jwt.Service
	logger   *slog.Logger
}

func NewAuthService(userRepo user.Repository, jwtService jwt.Service, logger *slog.Logger) auth.Service {
	return &authService{
		userRepo: userRepo,
		jwt:      jwtService,
		logger:   logger,
	}
}

// Login implements auth.Service. Unknown emails and wrong passwords both map
// to ErrInvalidCredentials so the response does not reveal which one failed.
func (s *authService) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	u, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	token, _, err := s.jwt.GenerateAccessToken(u.ID, u.Email, u.Role)
	if err != nil {
		s.logger.Error("failed to generate access token", "user_id", u.ID, "error", err)
		return auth.LoginResponse{}, err
	}

	return auth.LoginResponse{
		AccessToken: token,
		User: auth.UserInfo{
			ID:             u.ID,
			FullName:       u.FullName,
			Email:          u.Email,
			Role:           string(u.Role),
			ProfilePicture: u.ProfilePicture,
		},
	}, nil
}
