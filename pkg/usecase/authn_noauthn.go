package usecase

import (
	"context"

	"github.com/secmon-lab/airisk/pkg/domain/model/auth"
)

// NoAuthnUseCase provides authentication using a specified user (for development/testing)
type NoAuthnUseCase struct {
	user auth.User
}

// NewNoAuthnUseCase creates a new NoAuthnUseCase instance with specified user info
func NewNoAuthnUseCase(userID, email, name string) *NoAuthnUseCase {
	return &NoAuthnUseCase{
		user: auth.User{ID: userID, Email: email, Name: name},
	}
}

// GetAuthURL returns a dummy URL (should not be called in no-auth mode)
func (uc *NoAuthnUseCase) GetAuthURL(state string) string {
	return "/"
}

// HandleCallback returns an empty token for the specified user
func (uc *NoAuthnUseCase) HandleCallback(ctx context.Context, code string) (*auth.Token, error) {
	return &auth.Token{Account: uc.user}, nil
}

// ValidateToken accepts any token and returns the specified user
func (uc *NoAuthnUseCase) ValidateToken(ctx context.Context, accessToken string) (*auth.User, error) {
	user := uc.user
	return &user, nil
}

func (uc *NoAuthnUseCase) LogoutURL() string {
	return "/"
}

// IsNoAuthn returns true for NoAuthnUseCase
func (uc *NoAuthnUseCase) IsNoAuthn() bool {
	return true
}
