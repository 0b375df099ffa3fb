package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/airisk/pkg/cli/config"
	httpctrl "github.com/secmon-lab/airisk/pkg/controller/http"
	"github.com/secmon-lab/airisk/pkg/service/worker"
	"github.com/secmon-lab/airisk/pkg/usecase"
	"github.com/secmon-lab/airisk/pkg/utils/logging"
	"github.com/secmon-lab/airisk/pkg/utils/metrics"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"
)

const (
	shutdownTimeout   = 10 * time.Second
	authSweepInterval = time.Minute
)

func cmdServe() *cli.Command {
	var serverCfg config.Server
	var repoCfg config.Repository
	var authCfg config.AzureAD
	var catalogCfg config.Catalog

	var flags []cli.Flag
	flags = append(flags, serverCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, authCfg.Flags()...)
	flags = append(flags, catalogCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()
			logger.Info("Serve configuration",
				"server", serverCfg,
				"repository", repoCfg,
				"auth", authCfg,
				"catalog", catalogCfg,
			)

			cat, err := catalogCfg.Configure()
			if err != nil {
				return err
			}

			authUC, err := authCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure authentication")
			}
			if authCfg.IsNoAuthMode() {
				logger.Warn("Running in no-auth mode (development only)")
			}

			if sweeper, ok := authUC.(worker.Sweeper); ok {
				w := worker.NewCacheSweepWorker(sweeper, authSweepInterval)
				w.Start(ctx)
				defer w.Stop()
			}

			httpOpts, err := serverCfg.Options()
			if err != nil {
				return err
			}

			// Initialize repository based on backend type
			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logger.Error("failed to close repository", "error", err.Error())
				}
			}()

			ucOpts := []usecase.Option{
				usecase.WithAuth(authUC),
				usecase.WithCatalog(cat),
			}
			if serverCfg.MetricsEnabled() {
				m := metrics.New()
				ucOpts = append(ucOpts, usecase.WithMetrics(m))
				httpOpts = append(httpOpts, httpctrl.WithMetrics(m))
			}

			uc := usecase.New(repo, ucOpts...)
			server := &http.Server{
				Addr:              serverCfg.Addr(),
				Handler:           httpctrl.New(uc, httpOpts...),
				ReadHeaderTimeout: 30 * time.Second,
			}

			return serveUntilSignal(ctx, server)
		},
	}
}

// serveUntilSignal runs the server until SIGINT/SIGTERM or ctx is done, then
// drains in-flight requests for up to shutdownTimeout
func serveUntilSignal(ctx context.Context, server *http.Server) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logging.Default().Info("Starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return goerr.Wrap(err, "failed to start server", goerr.V("addr", server.Addr))
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logging.Default().Info("Shutting down HTTP server")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return goerr.Wrap(err, "failed to shutdown server gracefully")
		}
		logging.Default().Info("Server shutdown completed")
		return nil
	})

	return g.Wait()
}
