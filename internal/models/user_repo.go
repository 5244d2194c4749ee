package models

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/supabase-community/gotrue-go/types"
)

type UserRepo interface {
	CreateUser(ctx context.Context, user *User) (*types.SignupResponse, error)
	AuthenticateUser(ctx context.Context, email, password string) (*types.TokenResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*types.TokenResponse, error)
	GetUser(ctx context.Context, id uuid.UUID, accessToken string) (*User, error)
}

func (su *SupabaseRepo) CreateUser(ctx context.Context, user *User) (*types.SignupResponse, error) {
	signup := types.SignupRequest{
		Email:    user.Email,
		Password: user.Password,
		Data: map[string]interface{}{
			"full_name":    user.FullName,
			"phone_number": user.PhoneNumber,
		},
	}

	res, err := su.supabaseClient.Auth.Signup(signup)
	if err != nil {
		errMsg := strings.ToLower(err.Error())
		switch {
		case strings.Contains(errMsg, "already registered"), strings.Contains(errMsg, "unique constraint"):
			return nil, fmt.Errorf("email already in use")
		case strings.Contains(errMsg, "null value in column"):
			return nil, fmt.Errorf("required field is missing")
		case strings.Contains(errMsg, "invalid input syntax"):
			return nil, fmt.Errorf("invalid input format")
		}
		return nil, fmt.Errorf("failed to create user")
	}
	return res, nil
}

func (su *SupabaseRepo) GetUser(ctx context.Context, id uuid.UUID, accessToken string) (*User, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("invalid UUID")
	}

	client, err := su.GetAuthenticatedClient(accessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create authenticated client: %w", err)
	}

	raw, status, err := client.From(ProfileTable).
		Select("id,email,full_name,role,phone_number,created_at,updated_at", "", false).
		Eq("id", id.String()).
		Execute()
	if err != nil {
		if status != 0 {
			return nil, fmt.Errorf("postgrest error: status=%d body=%s err=%w", status, string(raw), err)
		}
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}

	var users []User
	if err := json.Unmarshal(raw, &users); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user rows: %w", err)
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	return &users[0], nil
}

func (su *SupabaseRepo) AuthenticateUser(ctx context.Context, email, password string) (*types.TokenResponse, error) {
	resp, err := su.supabaseClient.Auth.SignInWithEmailPassword(email, password)
	if err != nil {
		return nil, fmt.Errorf("failed to authenticate user: %w", err)
	}
	return resp, nil
}

func (su *SupabaseRepo) RefreshToken(ctx context.Context, refreshToken string) (*types.TokenResponse, error) {
	resp, err := su.supabaseClient.Auth.RefreshToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("failed to refresh token: %w", err)
	}
	return resp, nil
}
