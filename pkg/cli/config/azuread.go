package config

import (
	"log/slog"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/airisk/pkg/usecase"
	"github.com/secmon-lab/airisk/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

type AzureAD struct {
	tenantID     string
	clientID     string
	clientSecret string
	redirectURL  string
	issuer       string
	audience     string
	noAuthUser   string
}

func (x *AzureAD) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "azure-tenant-id",
			Usage:       "Azure AD tenant ID",
			Category:    "Authentication",
			Destination: &x.tenantID,
			Sources:     cli.EnvVars("AIRISK_AZURE_TENANT_ID", "AZURE_TENANT_ID"),
		},
		&cli.StringFlag{
			Name:        "azure-client-id",
			Usage:       "Azure AD application (client) ID",
			Category:    "Authentication",
			Destination: &x.clientID,
			Sources:     cli.EnvVars("AIRISK_AZURE_CLIENT_ID", "AZURE_CLIENT_ID"),
		},
		&cli.StringFlag{
			Name:        "azure-client-secret",
			Usage:       "Azure AD client secret",
			Category:    "Authentication",
			Destination: &x.clientSecret,
			Sources:     cli.EnvVars("AIRISK_AZURE_CLIENT_SECRET", "AZURE_CLIENT_SECRET"),
		},
		&cli.StringFlag{
			Name:        "azure-redirect-url",
			Usage:       "OAuth redirect URL (e.g. https://your-domain.com/auth/callback)",
			Category:    "Authentication",
			Destination: &x.redirectURL,
			Sources:     cli.EnvVars("AIRISK_AZURE_REDIRECT_URL", "REDIRECT_URI"),
		},
		&cli.StringFlag{
			Name:        "token-issuer",
			Usage:       "Required iss claim of access tokens (optional)",
			Category:    "Authentication",
			Destination: &x.issuer,
			Sources:     cli.EnvVars("AIRISK_TOKEN_ISSUER"),
		},
		&cli.StringFlag{
			Name:        "token-audience",
			Usage:       "Required aud claim of access tokens (optional)",
			Category:    "Authentication",
			Destination: &x.audience,
			Sources:     cli.EnvVars("AIRISK_TOKEN_AUDIENCE"),
		},
		&cli.StringFlag{
			Name:        "no-auth",
			Usage:       "Skip authentication and run as the specified user ID (development only). Example: --no-auth=dev-user",
			Category:    "Authentication",
			Destination: &x.noAuthUser,
			Sources:     cli.EnvVars("AIRISK_NO_AUTH"),
		},
	}
}

func (x AzureAD) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("tenant-id", x.tenantID),
		slog.Int("client-id.len", len(x.clientID)),
		slog.Int("client-secret.len", len(x.clientSecret)),
		slog.String("redirect-url", x.redirectURL),
		slog.Bool("no-auth", x.noAuthUser != ""),
	)
}

// IsConfigured checks if Azure AD configuration is complete
func (x *AzureAD) IsConfigured() bool {
	return x.tenantID != "" && x.clientID != "" && x.clientSecret != "" && x.redirectURL != ""
}

// IsNoAuthMode returns true if no-auth mode is enabled
func (x *AzureAD) IsNoAuthMode() bool {
	return x.noAuthUser != ""
}

// Configure creates an AuthUseCase if Azure AD is configured, otherwise the
// no-auth use case when --no-auth is given
func (x *AzureAD) Configure() (usecase.AuthUseCaseInterface, error) {
	if x.noAuthUser != "" {
		if x.clientID != "" || x.clientSecret != "" {
			logging.Default().Warn("--no-auth is set, ignoring --azure-client-id/--azure-client-secret")
		}
		user := strings.TrimSpace(x.noAuthUser)
		if user == "" {
			return nil, goerr.Wrap(ErrInvalidConfig, "no-auth user ID cannot be blank", goerr.V(FlagKey, "no-auth"))
		}
		return usecase.NewNoAuthnUseCase(user, user+"@localhost", user), nil
	}

	if !x.IsConfigured() {
		return nil, goerr.Wrap(ErrMissingAuthConfig,
			"set --azure-tenant-id, --azure-client-id, --azure-client-secret and --azure-redirect-url, or use --no-auth")
	}

	var opts []usecase.AuthOption
	if x.issuer != "" {
		opts = append(opts, usecase.WithIssuer(x.issuer))
	}
	if x.audience != "" {
		opts = append(opts, usecase.WithAudience(x.audience))
	}

	return usecase.NewAuthUseCase(x.tenantID, x.clientID, x.clientSecret, x.redirectURL, opts...), nil
}
