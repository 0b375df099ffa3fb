package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/airisk/pkg/cli/config"
	"github.com/secmon-lab/airisk/pkg/domain/types"
	"github.com/secmon-lab/airisk/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdValidate() *cli.Command {
	var catalogCfg config.Catalog
	var repoCfg config.Repository

	var flags []cli.Flag
	flags = append(flags, catalogCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Validate the catalog file and repository settings",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			cat, err := catalogCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "catalog validation failed")
			}
			for _, lang := range types.AllLanguages() {
				logger.Info("Catalog language validated",
					"language", lang,
					"critical_label", cat.TierLabel(lang, types.TierCritical),
				)
			}

			if err := repoCfg.Validate(); err != nil {
				return goerr.Wrap(err, "repository configuration validation failed")
			}

			logger.Info("Configuration validation passed", "backend", repoCfg.Backend())
			return nil
		},
	}
}
