// Command wellnessctl is the operator tool for the WellnessFlow API.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "wellnessctl",
		Usage: "operate a WellnessFlow deployment",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to a YAML config file",
				EnvVars: []string{"WELLNESS_CONFIG"},
			},
		},
		Commands: []*cli.Command{
			keysCommand(),
			tokenCommand(),
			migrateCommand(),
			userCommand(),
		},
	}
}
