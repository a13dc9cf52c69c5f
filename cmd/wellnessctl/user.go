package main

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/wellnessflow/api/internal/config"
	"github.com/wellnessflow/api/internal/service"
	"github.com/wellnessflow/api/internal/store"
	"github.com/wellnessflow/api/pkg/jwt"
)

func userCommand() *cli.Command {
	return &cli.Command{
		Name:  "user",
		Usage: "Manage accounts",
		Subcommands: []*cli.Command{
			{
				Name:  "create",
				Usage: "Register an account through the normal registration rules",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "email",
						Aliases:  []string{"e"},
						Usage:    "Account email",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "password",
						Aliases:  []string{"p"},
						Usage:    "Account password",
						Required: true,
						EnvVars:  []string{"WELLNESS_USER_PASSWORD"},
					},
				},
				Action: userCreate,
			},
		},
	}
}

func userCreate(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	ctx, cancel := context.WithTimeout(c.Context, time.Minute)
	defer cancel()

	st, err := store.Open(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer st.Close()

	jwtService, err := jwt.NewService(jwt.Config{
		PrivateKeyPath: cfg.JWT.PrivateKeyPath,
		PublicKeyPath:  cfg.JWT.PublicKeyPath,
		Issuer:         cfg.JWT.Issuer,
		ExpirationMins: cfg.JWT.ExpirationMins,
	})
	if err != nil {
		return fmt.Errorf("initialize JWT service: %w", err)
	}

	authService := service.NewAuthService(service.AuthServiceConfig{
		UserRepo:     st.Users,
		TokenService: service.NewTokenService(service.TokenServiceConfig{JWTService: jwtService}),
		BcryptCost:   cfg.Auth.BcryptCost,
	})

	result, err := authService.Register(ctx, c.String("email"), c.String("password"))
	if err != nil {
		return err
	}

	fmt.Fprintf(c.App.Writer, "Created user %d (%s)\n", result.UserID, result.Email)
	return nil
}
