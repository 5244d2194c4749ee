package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/joshua-takyi/staydesk/internal/helpers"
	"github.com/joshua-takyi/staydesk/internal/models"
	"github.com/supabase-community/gotrue-go/types"
)

type UserService struct {
	userRepo models.UserRepo
}

func NewUserService(userRepo models.UserRepo) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// CreateUser signs a guest up. Roles other than guest are never taken from
// the request.
func (us *UserService) CreateUser(ctx context.Context, user *models.User) (*types.SignupResponse, error) {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	user.FullName = helpers.StringTrim(user.FullName)
	user.Role = models.RoleGuest
	if err := models.Validate.Struct(user); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if !helpers.IsPasswordStrong(user.Password) {
		return nil, fmt.Errorf("%w: password is not strong enough", ErrInvalidInput)
	}

	return us.userRepo.CreateUser(ctx, user)
}

func (us *UserService) AuthenticateUser(ctx context.Context, email, password string) (*types.TokenResponse, error) {
	if err := models.Validate.Var(email, "required,email"); err != nil {
		return nil, fmt.Errorf("%w: invalid email format", ErrInvalidInput)
	}
	if err := models.Validate.Var(password, "required,min=8"); err != nil {
		return nil, fmt.Errorf("%w: invalid password format", ErrInvalidInput)
	}
	response, err := us.userRepo.AuthenticateUser(ctx, strings.ToLower(email), password)
	if err != nil {
		return nil, fmt.Errorf("authentication failed: %w", err)
	}
	return response, nil
}

func (us *UserService) RefreshToken(ctx context.Context, refreshToken string) (*types.TokenResponse, error) {
	if refreshToken == "" {
		return nil, fmt.Errorf("%w: refresh token is required", ErrInvalidInput)
	}
	response, err := us.userRepo.RefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, fmt.Errorf("token refresh failed: %w", err)
	}
	return response, nil
}

func (us *UserService) GetUser(ctx context.Context, id uuid.UUID, accessToken string) (*models.User, error) {
	res, err := us.userRepo.GetUser(ctx, id, accessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return res, nil
}
