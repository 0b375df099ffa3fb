package usecase_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/airisk/pkg/usecase"
)

func TestNoAuthnUseCase(t *testing.T) {
	userID := "dev-user"
	email := "test@example.com"
	name := "Test User"

	uc := usecase.NewNoAuthnUseCase(userID, email, name)

	t.Run("ValidateToken returns specified user", func(t *testing.T) {
		user, err := uc.ValidateToken(context.Background(), "")
		gt.NoError(t, err).Required()

		gt.Value(t, user.ID).Equal(userID)
		gt.Value(t, user.Email).Equal(email)
		gt.Value(t, user.Name).Equal(name)
	})

	t.Run("ValidateToken returns a copy", func(t *testing.T) {
		user, err := uc.ValidateToken(context.Background(), "x")
		gt.NoError(t, err).Required()
		user.Name = "changed"

		again, err := uc.ValidateToken(context.Background(), "x")
		gt.NoError(t, err).Required()
		gt.Value(t, again.Name).Equal(name)
	})

	t.Run("HandleCallback returns specified user account", func(t *testing.T) {
		token, err := uc.HandleCallback(context.Background(), "dummy-code")
		gt.NoError(t, err).Required()

		gt.Value(t, token.Account.ID).Equal(userID)
		gt.Value(t, token.Account.Email).Equal(email)
	})

	t.Run("IsNoAuthn returns true", func(t *testing.T) {
		gt.Bool(t, uc.IsNoAuthn()).True()
	})

	t.Run("GetAuthURL returns root path", func(t *testing.T) {
		gt.Value(t, uc.GetAuthURL("state")).Equal("/")
		gt.Value(t, uc.LogoutURL()).Equal("/")
	})
}

func TestNoAuthnUseCaseImplementsInterface(t *testing.T) {
	var _ usecase.AuthUseCaseInterface = usecase.NewNoAuthnUseCase("id", "email", "name")
	var _ usecase.AuthUseCaseInterface = usecase.NewAuthUseCase("tenant", "client", "secret", "http://localhost/auth/callback")
}
