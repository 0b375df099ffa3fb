package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/airisk/pkg/domain/model/auth"
	"github.com/secmon-lab/airisk/pkg/utils/logging"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/microsoft"
)

const (
	tokenClockSkew   = 10 * time.Second
	logoutURLPattern = "https://login.microsoftonline.com/%s/oauth2/v2.0/logout"
)

// AuthScopes are requested from Azure AD during login
var AuthScopes = []string{"openid", "profile", "email", "User.Read"}

// AuthUseCaseInterface is implemented by the Azure AD flow and by no-auth mode
type AuthUseCaseInterface interface {
	GetAuthURL(state string) string
	HandleCallback(ctx context.Context, code string) (*auth.Token, error)
	ValidateToken(ctx context.Context, accessToken string) (*auth.User, error)
	LogoutURL() string
	IsNoAuthn() bool
}

// AuthUseCase authenticates users against Azure AD
type AuthUseCase struct {
	tenantID string
	oauth    *oauth2.Config
	issuer   string
	audience string
	cache    *authCache
	now      func() time.Time
}

// AuthOption is a functional option for AuthUseCase
type AuthOption func(*AuthUseCase)

// WithIssuer requires the iss claim of access tokens to match
func WithIssuer(issuer string) AuthOption {
	return func(uc *AuthUseCase) {
		uc.issuer = issuer
	}
}

// WithAudience requires the aud claim of access tokens to contain audience
func WithAudience(audience string) AuthOption {
	return func(uc *AuthUseCase) {
		uc.audience = audience
	}
}

// WithEndpoint overrides the Azure AD endpoint
func WithEndpoint(endpoint oauth2.Endpoint) AuthOption {
	return func(uc *AuthUseCase) {
		uc.oauth.Endpoint = endpoint
	}
}

// WithClock replaces the time source used for expiry checks
func WithClock(now func() time.Time) AuthOption {
	return func(uc *AuthUseCase) {
		uc.now = now
	}
}

func NewAuthUseCase(tenantID, clientID, clientSecret, callbackURL string, options ...AuthOption) *AuthUseCase {
	uc := &AuthUseCase{
		tenantID: tenantID,
		oauth: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  callbackURL,
			Endpoint:     microsoft.AzureADEndpoint(tenantID),
			Scopes:       AuthScopes,
		},
		cache: newAuthCache(),
		now:   time.Now,
	}

	for _, opt := range options {
		opt(uc)
	}

	return uc
}

// GetAuthURL returns the Azure AD authorize URL
func (uc *AuthUseCase) GetAuthURL(state string) string {
	return uc.oauth.AuthCodeURL(state)
}

// IsNoAuthn returns false for regular AuthUseCase
func (uc *AuthUseCase) IsNoAuthn() bool {
	return false
}

// Sweep removes cached token validations that have expired
func (uc *AuthUseCase) Sweep(now time.Time) int {
	return uc.cache.purge(now)
}

// LogoutURL returns the Azure AD sign-out URL of the tenant
func (uc *AuthUseCase) LogoutURL() string {
	return fmt.Sprintf(logoutURLPattern, uc.tenantID)
}

// HandleCallback exchanges the authorization code and returns the tokens to the client
func (uc *AuthUseCase) HandleCallback(ctx context.Context, code string) (*auth.Token, error) {
	if code == "" {
		return nil, goerr.New("authorization code not provided")
	}

	tok, err := uc.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to exchange code for token")
	}

	idToken, _ := tok.Extra("id_token").(string)

	// The ID token carries the profile claims; fall back to the access token
	// when the tenant did not return one.
	source := idToken
	if source == "" {
		source = tok.AccessToken
	}
	claims, err := uc.parseClaims(source)
	if err != nil {
		return nil, err
	}
	user, err := userFromClaims(claims)
	if err != nil {
		return nil, err
	}

	logging.From(ctx).Info("user logged in", "user_id", user.ID, "email", user.Email)

	return &auth.Token{
		AccessToken: tok.AccessToken,
		IDToken:     idToken,
		ExpiresOn:   tok.Expiry,
		Account:     *user,
	}, nil
}

// ValidateToken checks the bearer token claims and returns the user it was issued to.
// The signature is not verified.
func (uc *AuthUseCase) ValidateToken(ctx context.Context, accessToken string) (*auth.User, error) {
	if user, ok := uc.cache.get(accessToken, uc.now()); ok {
		return user, nil
	}

	claims, err := uc.parseClaims(accessToken)
	if err != nil {
		logging.From(ctx).Debug("token rejected", "error", err)
		return nil, err
	}

	user, err := userFromClaims(claims)
	if err != nil {
		return nil, err
	}

	uc.cache.set(accessToken, user, claims.Expiration(), uc.now())
	return user, nil
}

func (uc *AuthUseCase) parseClaims(raw string) (jwt.Token, error) {
	if strings.Count(raw, ".") != 2 {
		return nil, goerr.Wrap(ErrInvalidToken, "token is not a three part JWT")
	}

	token, err := jwt.ParseInsecure([]byte(raw))
	if err != nil {
		return nil, goerr.Wrap(ErrInvalidToken, "failed to parse token", goerr.V("error", err.Error()))
	}

	validateOpts := []jwt.ValidateOption{
		jwt.WithClock(jwt.ClockFunc(uc.now)),
		jwt.WithAcceptableSkew(tokenClockSkew),
		jwt.WithRequiredClaim(jwt.ExpirationKey),
	}
	if uc.issuer != "" {
		validateOpts = append(validateOpts, jwt.WithIssuer(uc.issuer))
	}
	if uc.audience != "" {
		validateOpts = append(validateOpts, jwt.WithAudience(uc.audience))
	}
	if err := jwt.Validate(token, validateOpts...); err != nil {
		return nil, goerr.Wrap(ErrInvalidToken, "token claims are not valid", goerr.V("error", err.Error()))
	}

	return token, nil
}

// userFromClaims maps Azure AD claims to a user. oid is preferred over sub
// because it is stable across applications.
func userFromClaims(token jwt.Token) (*auth.User, error) {
	id := stringClaim(token, "oid")
	if id == "" {
		id = token.Subject()
	}
	if id == "" {
		return nil, goerr.Wrap(ErrNoUserInfo, "neither oid nor sub claim is set")
	}

	email := stringClaim(token, "email")
	for _, key := range []string{"preferred_username", "upn"} {
		if email != "" {
			break
		}
		email = stringClaim(token, key)
	}

	return &auth.User{
		ID:    id,
		Email: email,
		Name:  stringClaim(token, "name"),
	}, nil
}

func stringClaim(token jwt.Token, key string) string {
	v, ok := token.Get(key)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}
