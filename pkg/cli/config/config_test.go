package config_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/airisk/pkg/cli/config"
	"github.com/secmon-lab/airisk/pkg/domain/catalog"
	"github.com/secmon-lab/airisk/pkg/repository/memory"
	"github.com/secmon-lab/airisk/pkg/utils/logging"
)

func TestLoggerConfigure(t *testing.T) {
	orig := logging.Default()
	t.Cleanup(func() { logging.SetDefault(orig) })

	t.Run("json to file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "airisk.log")
		closer, err := config.NewLoggerForTest("debug", "json", path).Configure()
		gt.NoError(t, err).Required()

		logging.Default().Info("hello", "secret_token", "xyz-123")
		closer()

		data, err := os.ReadFile(path)
		gt.NoError(t, err).Required()
		gt.S(t, string(data)).Contains(`"msg":"hello"`)
		gt.B(t, strings.Contains(string(data), "xyz-123")).False()
	})

	t.Run("console to stderr", func(t *testing.T) {
		closer, err := config.NewLoggerForTest("warn", "console", "stderr").Configure()
		gt.NoError(t, err).Required()
		closer()
	})

	t.Run("invalid level", func(t *testing.T) {
		_, err := config.NewLoggerForTest("verbose", "json", "stdout").Configure()
		gt.Error(t, err).Is(config.ErrInvalidLogLevel)
	})

	t.Run("invalid format", func(t *testing.T) {
		_, err := config.NewLoggerForTest("info", "xml", "stdout").Configure()
		gt.Error(t, err).Is(config.ErrInvalidLogFormat)
	})
}

func TestRepositoryValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *config.Repository
		wantErr error
	}{
		{"memory", config.NewRepositoryForTest("memory", "", ""), nil},
		{"postgres with dsn", config.NewRepositoryForTest("postgres", "postgres://localhost/airisk", ""), nil},
		{"postgres without dsn", config.NewRepositoryForTest("postgres", "", ""), config.ErrInvalidConfig},
		{"firestore with project", config.NewRepositoryForTest("firestore", "", "my-project"), nil},
		{"firestore without project", config.NewRepositoryForTest("firestore", "", ""), config.ErrInvalidConfig},
		{"unknown backend", config.NewRepositoryForTest("mysql", "", ""), config.ErrInvalidBackend},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == nil {
				gt.NoError(t, err)
				return
			}
			gt.Error(t, err).Is(tt.wantErr)
		})
	}
}

func TestRepositoryConfigureMemory(t *testing.T) {
	repo, err := config.NewRepositoryForTest("memory", "", "").Configure(context.Background())
	gt.NoError(t, err).Required()
	defer repo.Close()

	_, ok := repo.(*memory.Memory)
	gt.B(t, ok).True()
	gt.NoError(t, repo.Ping(context.Background()))
}

func TestAzureADConfigure(t *testing.T) {
	t.Run("no-auth mode", func(t *testing.T) {
		cfg := config.NewAzureADForTest("", "", "", "", "dev-user")
		gt.B(t, cfg.IsNoAuthMode()).True()

		authUC, err := cfg.Configure()
		gt.NoError(t, err).Required()
		gt.B(t, authUC.IsNoAuthn()).True()

		user, err := authUC.ValidateToken(context.Background(), "")
		gt.NoError(t, err).Required()
		gt.V(t, user.ID).Equal("dev-user")
	})

	t.Run("blank no-auth user is rejected", func(t *testing.T) {
		cfg := config.NewAzureADForTest("", "", "", "", "   ")
		gt.B(t, cfg.IsNoAuthMode()).True()

		_, err := cfg.Configure()
		gt.Error(t, err).Is(config.ErrInvalidConfig)
	})

	t.Run("no-auth user is trimmed", func(t *testing.T) {
		authUC, err := config.NewAzureADForTest("", "", "", "", "  dev-user ").Configure()
		gt.NoError(t, err).Required()

		user, err := authUC.ValidateToken(context.Background(), "")
		gt.NoError(t, err).Required()
		gt.V(t, user.ID).Equal("dev-user")
		gt.V(t, user.Email).Equal("dev-user@localhost")
	})

	t.Run("azure ad", func(t *testing.T) {
		cfg := config.NewAzureADForTest("tenant", "client", "secret", "http://localhost:3000/auth/callback", "")
		gt.B(t, cfg.IsConfigured()).True()

		authUC, err := cfg.Configure()
		gt.NoError(t, err).Required()
		gt.B(t, authUC.IsNoAuthn()).False()
		gt.V(t, authUC.LogoutURL()).Equal("https://login.microsoftonline.com/tenant/oauth2/v2.0/logout")
	})

	t.Run("missing configuration", func(t *testing.T) {
		cfg := config.NewAzureADForTest("tenant", "client", "", "", "")
		_, err := cfg.Configure()
		gt.Error(t, err).Is(config.ErrMissingAuthConfig)
	})
}

func TestServerOptions(t *testing.T) {
	t.Run("splits origins", func(t *testing.T) {
		cfg := config.NewServerForTest(" https://a.example.com, ,https://b.example.com ", 100, 15*time.Minute)
		gt.V(t, cfg.AllowedOrigins()).Equal([]string{"https://a.example.com", "https://b.example.com"})

		opts, err := cfg.Options()
		gt.NoError(t, err).Required()
		gt.A(t, opts).Length(2)
	})

	t.Run("negative rate limit", func(t *testing.T) {
		_, err := config.NewServerForTest("", -1, time.Minute).Options()
		gt.Error(t, err).Is(config.ErrInvalidConfig)
	})

	t.Run("zero window", func(t *testing.T) {
		_, err := config.NewServerForTest("", 10, 0).Options()
		gt.Error(t, err).Is(config.ErrInvalidConfig)
	})

	t.Run("disabled limit ignores window", func(t *testing.T) {
		_, err := config.NewServerForTest("", 0, 0).Options()
		gt.NoError(t, err)
	})
}

func TestCatalogConfigure(t *testing.T) {
	t.Run("built-in", func(t *testing.T) {
		c, err := config.NewCatalogForTest("").Configure()
		gt.NoError(t, err).Required()
		gt.V(t, c).Equal(catalog.Default())
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := config.NewCatalogForTest(filepath.Join(t.TempDir(), "none.toml")).Configure()
		gt.Error(t, err)
	})

	t.Run("invalid file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "catalog.toml")
		gt.NoError(t, os.WriteFile(path, []byte(`[[language]]
id = "en"
`), 0600)).Required()

		_, err := config.NewCatalogForTest(path).Configure()
		gt.Error(t, err)
	})
}
