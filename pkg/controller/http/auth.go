package http

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/airisk/pkg/domain/model/auth"
	"github.com/secmon-lab/airisk/pkg/usecase"
	"github.com/secmon-lab/airisk/pkg/utils/errutil"
)

type AuthUseCase = usecase.AuthUseCaseInterface

const stateCookieName = "oauth_state"

type callbackResponse struct {
	AccessToken string    `json:"accessToken"`
	IDToken     string    `json:"idToken"`
	Account     auth.User `json:"account"`
	ExpiresOn   time.Time `json:"expiresOn"`
}

type logoutResponse struct {
	Message   string `json:"message"`
	LogoutURL string `json:"logoutUrl"`
}

type userMeResponse struct {
	User *auth.User `json:"user"`
}

// generateState generates a random state parameter for OAuth
func generateState() (string, error) {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return "", goerr.Wrap(err, "failed to generate random state")
	}
	return hex.EncodeToString(bytes), nil
}

func stateCookie(r *http.Request, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     stateCookieName,
		Value:    value,
		Path:     "/auth",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	}
}

// authLoginHandler redirects to the Azure AD sign-in page
func authLoginHandler(authUC AuthUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// For NoAuthn mode, redirect to home
		if authUC.IsNoAuthn() {
			http.Redirect(w, r, "/", http.StatusTemporaryRedirect)
			return
		}

		// Generate state parameter to prevent CSRF
		state, err := generateState()
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError)
			return
		}
		http.SetCookie(w, stateCookie(r, state, 600))

		http.Redirect(w, r, authUC.GetAuthURL(state), http.StatusFound)
	}
}

// authCallbackHandler exchanges the authorization code and hands the tokens to the client
func authCallbackHandler(authUC AuthUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			errutil.WriteError(r.Context(), w, http.StatusBadRequest, "Authorization code not provided")
			return
		}

		if !authUC.IsNoAuthn() {
			cookie, err := r.Cookie(stateCookieName)
			state := r.URL.Query().Get("state")
			if err != nil || state == "" || state != cookie.Value {
				errutil.HandleHTTP(r.Context(), w, goerr.New("invalid state parameter"), http.StatusBadRequest)
				return
			}
			http.SetCookie(w, stateCookie(r, "", -1))
		}

		token, err := authUC.HandleCallback(r.Context(), code)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "authentication failed"), http.StatusInternalServerError)
			return
		}

		writeJSON(r.Context(), w, http.StatusOK, callbackResponse{
			AccessToken: token.AccessToken,
			IDToken:     token.IDToken,
			Account:     token.Account,
			ExpiresOn:   token.ExpiresOn,
		})
	}
}

// authLogoutHandler returns the identity provider sign-out URL. Tokens live
// on the client, so there is nothing to revoke here.
func authLogoutHandler(authUC AuthUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(r.Context(), w, http.StatusOK, logoutResponse{
			Message:   "Logged out successfully",
			LogoutURL: authUC.LogoutURL(),
		})
	}
}

// authMeHandler returns current user information
func authMeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := auth.UserFromContext(r.Context())
		if user == nil {
			errutil.WriteError(r.Context(), w, http.StatusUnauthorized, msgNoUserInfo)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, userMeResponse{User: user})
	}
}

// writeJSON writes a JSON response with proper error handling
func writeJSON(ctx context.Context, w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		errutil.Handle(ctx, err, "failed to encode JSON response")
	}
}
