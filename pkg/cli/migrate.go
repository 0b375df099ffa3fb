package cli

import (
	"context"

	"github.com/m-mizutani/fireconf"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/airisk/pkg/cli/config"
	"github.com/secmon-lab/airisk/pkg/repository/firestore"
	"github.com/secmon-lab/airisk/pkg/repository/postgres"
	"github.com/secmon-lab/airisk/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdMigrate() *cli.Command {
	var repoCfg config.Repository
	var dryRun bool
	var down bool

	flags := repoCfg.Flags()
	flags = append(flags,
		&cli.BoolFlag{
			Name:        "dry-run",
			Usage:       "Preview changes without applying",
			Destination: &dryRun,
		},
		&cli.BoolFlag{
			Name:        "down",
			Usage:       "Roll back all PostgreSQL migrations",
			Destination: &down,
		},
	)

	return &cli.Command{
		Name:    "migrate",
		Aliases: []string{"m"},
		Usage:   "Apply PostgreSQL schema migrations or Firestore indexes",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := repoCfg.Validate(); err != nil {
				return err
			}

			logging.Default().Info("Migrate configuration",
				"repository", repoCfg,
				"dryRun", dryRun,
				"down", down)

			switch repoCfg.Backend() {
			case config.BackendPostgres:
				return migratePostgres(repoCfg.PostgresDSN(), dryRun, down)
			case config.BackendFirestore:
				return migrateFirestore(ctx, repoCfg.ProjectID(), repoCfg.DatabaseID(), repoCfg.CollectionPrefix(), dryRun)
			default:
				logging.Default().Info("Nothing to migrate for backend", "backend", repoCfg.Backend())
				return nil
			}
		},
	}
}

func migratePostgres(dsn string, dryRun, down bool) error {
	logger := logging.Default()

	version, dirty, err := postgres.MigrationVersion(dsn)
	if err != nil {
		return goerr.Wrap(err, "failed to read migration version")
	}
	logger.Info("Current schema version", "version", version, "dirty", dirty)

	if dryRun {
		logger.Info("Dry run mode - no migration applied")
		return nil
	}

	if down {
		logger.Warn("Rolling back all migrations")
		if err := postgres.MigrateDown(dsn); err != nil {
			return goerr.Wrap(err, "failed to roll back migrations")
		}
		logger.Info("Migrations rolled back")
		return nil
	}

	logger.Info("Applying migrations")
	if err := postgres.MigrateUp(dsn); err != nil {
		return goerr.Wrap(err, "failed to apply migrations")
	}

	version, _, err = postgres.MigrationVersion(dsn)
	if err != nil {
		return goerr.Wrap(err, "failed to read migration version")
	}
	logger.Info("Migrations applied successfully", "version", version)
	return nil
}

func migrateFirestore(ctx context.Context, projectID, databaseID, prefix string, dryRun bool) error {
	logger := logging.Default()

	indexConfig := firestore.IndexConfig(prefix)

	client, err := fireconf.NewClient(ctx, projectID, databaseID)
	if err != nil {
		return goerr.Wrap(err, "failed to create fireconf client")
	}
	defer func() {
		if err := client.Close(); err != nil {
			logger.Error("failed to close fireconf client", "error", err.Error())
		}
	}()

	if dryRun {
		logger.Info("Dry run mode - previewing changes")
		plan, err := client.GetMigrationPlan(ctx, indexConfig)
		if err != nil {
			return goerr.Wrap(err, "failed to create migration plan")
		}

		if len(plan.Steps) == 0 {
			logger.Info("No changes required")
			return nil
		}

		for _, step := range plan.Steps {
			logger.Info("Migration step",
				"collection", step.Collection,
				"operation", step.Operation,
				"description", step.Description,
				"destructive", step.Destructive)
		}
		return nil
	}

	logger.Info("Applying index migrations")
	if err := client.Migrate(ctx, indexConfig); err != nil {
		return goerr.Wrap(err, "failed to apply migrations")
	}
	logger.Info("Migrations applied successfully")
	return nil
}
