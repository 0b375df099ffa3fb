package auth

import (
	"context"
	"time"
)

// User is the authenticated caller
type User struct {
	ID    string `json:"userId"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

const anonymousUserID = "anonymous"

// NewAnonymousUser returns the user assigned to requests when authentication is disabled
func NewAnonymousUser() *User {
	return &User{
		ID:    anonymousUserID,
		Email: "anonymous@localhost",
		Name:  "Anonymous",
	}
}

// IsAnonymous reports whether the user is the placeholder for disabled authentication
func (u *User) IsAnonymous() bool {
	return u.ID == anonymousUserID
}

// Token is the result of a completed authorization code exchange. It is
// handed back to the client as is.
type Token struct {
	AccessToken string    `json:"accessToken" masq:"secret"`
	IDToken     string    `json:"idToken" masq:"secret"`
	ExpiresOn   time.Time `json:"expiresOn"`
	Account     User      `json:"account"`
}

type ctxUserKey struct{}

// ContextWithUser stores the authenticated user in ctx
func ContextWithUser(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, ctxUserKey{}, user)
}

// UserFromContext returns the authenticated user, or nil
func UserFromContext(ctx context.Context) *User {
	if user, ok := ctx.Value(ctxUserKey{}).(*User); ok {
		return user
	}
	return nil
}
