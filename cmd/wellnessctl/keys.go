package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/wellnessflow/api/pkg/jwt"
)

func keysCommand() *cli.Command {
	return &cli.Command{
		Name:  "keys",
		Usage: "Manage token signing keys",
		Subcommands: []*cli.Command{
			{
				Name:  "generate",
				Usage: "Generate an RSA key pair for signing access tokens",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "private",
						Value: "./keys/private.pem",
						Usage: "Private key output path",
					},
					&cli.StringFlag{
						Name:  "public",
						Value: "./keys/public.pem",
						Usage: "Public key output path",
					},
					&cli.BoolFlag{
						Name:    "force",
						Aliases: []string{"f"},
						Usage:   "Overwrite existing keys",
					},
				},
				Action: keysGenerate,
			},
		},
	}
}

func keysGenerate(c *cli.Context) error {
	privatePath, publicPath := c.String("private"), c.String("public")

	if !c.Bool("force") {
		for _, p := range []string{privatePath, publicPath} {
			if _, err := os.Stat(p); err == nil {
				return fmt.Errorf("%s already exists (use --force to overwrite)", p)
			}
		}
	}

	for _, p := range []string{privatePath, publicPath} {
		if err := os.MkdirAll(filepath.Dir(p), 0o700); err != nil {
			return fmt.Errorf("create key directory: %w", err)
		}
	}

	if err := jwt.GenerateKeyPair(privatePath, publicPath); err != nil {
		return err
	}

	fmt.Fprintf(c.App.Writer, "Private key: %s\nPublic key:  %s\n", privatePath, publicPath)
	return nil
}
