package services

import (
	"context"
	"net/http"

	"github.com/ed9408/minerva-api/internal/utils"
)

type AuthService struct {
	users  UserStore
	tokens *TokenManager
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

func NewAuthService(users UserStore, tokens *TokenManager) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Login resolves the user by email and checks the password. A missing user
// and a wrong password return the identical error.
func (s *AuthService) Login(ctx context.Context, username, password string) (*TokenResponse, error) {
	user, err := s.users.GetByEmail(ctx, username)
	if err != nil {
		return nil, utils.ErrInvalidCredentials()
	}

	if !VerifyPassword(password, user.PasswordHash) {
		return nil, utils.ErrInvalidCredentials()
	}

	token, expiresIn, err := s.tokens.Issue(user.Email, user.Role)
	if err != nil {
		return nil, utils.NewAppError(http.StatusInternalServerError, "INTERNAL_ERROR", "could not generate token", nil)
	}

	return &TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   expiresIn,
	}, nil
}
