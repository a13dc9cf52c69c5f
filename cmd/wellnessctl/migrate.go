package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/wellnessflow/api/internal/config"
	"github.com/wellnessflow/api/internal/database"
)

func migrateCommand() *cli.Command {
	urlFlag := &cli.StringFlag{
		Name:  "database-url",
		Usage: "PostgreSQL connection string (defaults to database.url from config)",
	}

	return &cli.Command{
		Name:  "migrate",
		Usage: "Apply or roll back PostgreSQL schema migrations",
		Subcommands: []*cli.Command{
			{
				Name:   "up",
				Usage:  "Apply all pending migrations",
				Flags:  []cli.Flag{urlFlag},
				Action: migrateUp,
			},
			{
				Name:  "down",
				Usage: "Roll back migrations",
				Flags: []cli.Flag{
					urlFlag,
					&cli.IntFlag{
						Name:  "steps",
						Value: 1,
						Usage: "Number of migrations to roll back",
					},
				},
				Action: migrateDown,
			},
		},
	}
}

func migrateUp(c *cli.Context) error {
	url, err := databaseURL(c)
	if err != nil {
		return err
	}

	status, err := database.Migrate(url)
	if err != nil {
		return err
	}
	printStatus(c, status)
	return nil
}

func migrateDown(c *cli.Context) error {
	url, err := databaseURL(c)
	if err != nil {
		return err
	}

	status, err := database.MigrateDown(url, c.Int("steps"))
	if err != nil {
		return err
	}
	printStatus(c, status)
	return nil
}

func databaseURL(c *cli.Context) (string, error) {
	if url := c.String("database-url"); url != "" {
		return url, nil
	}

	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return "", err
	}
	if cfg.Database.Driver != config.DriverPostgres {
		return "", fmt.Errorf("migrations apply to the postgres driver only, configured driver is %q", cfg.Database.Driver)
	}
	return cfg.Database.URL, nil
}

func printStatus(c *cli.Context, status database.MigrationStatus) {
	fmt.Fprintf(c.App.Writer, "Schema version: %d (dirty: %t)\n", status.Version, status.Dirty)
}
