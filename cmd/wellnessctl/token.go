package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/wellnessflow/api/pkg/jwt"
)

func tokenCommand() *cli.Command {
	return &cli.Command{
		Name:  "token",
		Usage: "Work with access tokens",
		Subcommands: []*cli.Command{
			{
				Name:  "mint",
				Usage: "Sign an access token for an existing user id",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "key",
						Value: "./keys/private.pem",
						Usage: "Path to the private signing key",
					},
					&cli.Int64Flag{
						Name:     "user",
						Aliases:  []string{"u"},
						Usage:    "User id to put in the token",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "email",
						Usage: "Email claim",
					},
					&cli.StringFlag{
						Name:  "issuer",
						Value: "wellnessflow",
						Usage: "Token issuer",
					},
					&cli.IntFlag{
						Name:  "exp",
						Value: 60 * 24,
						Usage: "Token lifetime in minutes",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output as JSON",
					},
				},
				Action: tokenMint,
			},
		},
	}
}

func tokenMint(c *cli.Context) error {
	userID := c.Int64("user")
	if userID <= 0 {
		return fmt.Errorf("--user must be a positive id")
	}

	jwtService, err := jwt.NewService(jwt.Config{
		PrivateKeyPath: c.String("key"),
		Issuer:         c.String("issuer"),
		ExpirationMins: c.Int("exp"),
	})
	if err != nil {
		return fmt.Errorf("create JWT service (generate keys with `wellnessctl keys generate`): %w", err)
	}

	token, err := jwtService.Sign(jwt.Claims{UserID: userID, Email: c.String("email")})
	if err != nil {
		return fmt.Errorf("sign token: %w", err)
	}

	if c.Bool("json") {
		enc := json.NewEncoder(c.App.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"token":      token,
			"token_type": "Bearer",
			"expires_in": c.Int("exp") * 60,
			"userId":     userID,
			"email":      c.String("email"),
		})
	}

	expires := time.Now().Add(time.Duration(c.Int("exp")) * time.Minute)
	fmt.Fprintf(c.App.Writer, "User ID: %d\nExpires: %s\n\n%s\n", userID, expires.Format(time.RFC3339), token)
	return nil
}
