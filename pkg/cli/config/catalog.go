package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/airisk/pkg/domain/catalog"
	"github.com/secmon-lab/airisk/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Catalog selects the localized text catalog
type Catalog struct {
	path string
}

func (x *Catalog) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "catalog",
			Usage:       "Path to a catalog TOML file overriding the built-in texts",
			Category:    "Catalog",
			Sources:     cli.EnvVars("AIRISK_CATALOG"),
			Destination: &x.path,
		},
	}
}

func (x Catalog) LogValue() slog.Value {
	return slog.GroupValue(slog.String("path", x.path))
}

// Configure loads the catalog file, or returns the built-in catalog when no path is set
func (x *Catalog) Configure() (*catalog.Catalog, error) {
	if x.path == "" {
		return catalog.Default(), nil
	}

	c, err := catalog.Load(x.path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load catalog")
	}
	logging.Default().Info("Loaded catalog", "path", x.path)
	return c, nil
}
