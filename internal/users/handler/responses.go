package handler

import (
	"time"

	"legalcheck/internal/users/models"
	"legalcheck/internal/users/service"
)

type UserResponse struct {
	UserID          string     `json:"user_id"`
	Email           string     `json:"email"`
	CreatedAt       time.Time  `json:"created_at"`
	LastLoginAt     *time.Time `json:"last_login_at,omitempty"`
	LastLoginClient string     `json:"last_login_client,omitempty"`
}

type TokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresIn   int64        `json:"expires_in"`
	ExpiresAt   time.Time    `json:"expires_at"`
	User        UserResponse `json:"user"`
}

func toUserResponse(u *models.User) UserResponse {
	return UserResponse{
		UserID:          u.ID.String(),
		Email:           u.Email,
		CreatedAt:       u.CreatedAt,
		LastLoginAt:     u.LastLoginAt,
		LastLoginClient: u.LastLoginClient,
	}
}

func toTokenResponse(res *service.LoginResult, now time.Time) TokenResponse {
	expiresIn := int64(res.ExpiresAt.Sub(now).Seconds())
	if expiresIn < 0 {
		expiresIn = 0
	}
	return TokenResponse{
		AccessToken: res.AccessToken,
		TokenType:   "Bearer",
		ExpiresIn:   expiresIn,
		ExpiresAt:   res.ExpiresAt,
		User:        toUserResponse(res.User),
	}
}
