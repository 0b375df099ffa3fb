package config

import (
	"log/slog"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	httpctrl "github.com/secmon-lab/airisk/pkg/controller/http"
	"github.com/urfave/cli/v3"
)

// Server holds the HTTP listener settings
type Server struct {
	addr           string
	allowedOrigins string
	rateLimit      int
	rateWindow     time.Duration
	metrics        bool
}

func (x *Server) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Category:    "Server",
			Value:       ":3000",
			Sources:     cli.EnvVars("AIRISK_ADDR"),
			Destination: &x.addr,
		},
		&cli.StringFlag{
			Name:        "allowed-origins",
			Usage:       "Comma separated CORS allow-list",
			Category:    "Server",
			Value:       strings.Join(httpctrl.DefaultAllowedOrigins, ","),
			Sources:     cli.EnvVars("AIRISK_ALLOWED_ORIGINS", "ALLOWED_ORIGINS"),
			Destination: &x.allowedOrigins,
		},
		&cli.IntFlag{
			Name:        "rate-limit",
			Usage:       "Requests per client IP within --rate-window on /api/ (0 disables)",
			Category:    "Server",
			Value:       100,
			Sources:     cli.EnvVars("AIRISK_RATE_LIMIT"),
			Destination: &x.rateLimit,
		},
		&cli.DurationFlag{
			Name:        "rate-window",
			Usage:       "Rate limit window",
			Category:    "Server",
			Value:       15 * time.Minute,
			Sources:     cli.EnvVars("AIRISK_RATE_WINDOW"),
			Destination: &x.rateWindow,
		},
		&cli.BoolFlag{
			Name:        "metrics",
			Usage:       "Serve Prometheus metrics at /metrics",
			Category:    "Server",
			Value:       true,
			Sources:     cli.EnvVars("AIRISK_METRICS"),
			Destination: &x.metrics,
		},
	}
}

func (x Server) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("addr", x.addr),
		slog.Any("allowed-origins", x.AllowedOrigins()),
		slog.Int("rate-limit", x.rateLimit),
		slog.Duration("rate-window", x.rateWindow),
		slog.Bool("metrics", x.metrics),
	)
}

func (x *Server) Addr() string {
	return x.addr
}

func (x *Server) MetricsEnabled() bool {
	return x.metrics
}

// AllowedOrigins splits the comma separated allow-list
func (x *Server) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(x.allowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// Options converts the settings to HTTP server options
func (x *Server) Options() ([]httpctrl.Options, error) {
	if x.rateLimit < 0 {
		return nil, goerr.Wrap(ErrInvalidConfig, "rate-limit must not be negative", goerr.V(FlagKey, "rate-limit"))
	}
	if x.rateLimit > 0 && x.rateWindow <= 0 {
		return nil, goerr.Wrap(ErrInvalidConfig, "rate-window must be positive", goerr.V(FlagKey, "rate-window"))
	}

	return []httpctrl.Options{
		httpctrl.WithAllowedOrigins(x.AllowedOrigins()),
		httpctrl.WithRateLimit(x.rateLimit, x.rateWindow),
	}, nil
}
