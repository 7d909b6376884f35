// Command mktoken mints an access token for a user ID using the configured
// signing secret. There is no login endpoint in this service; operators use
// this to issue tokens for the mutating routes.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pradipta/banksoal/internal/config"
	"github.com/pradipta/banksoal/internal/pkg/auth"
	"github.com/pradipta/banksoal/internal/pkg/logger"
)

func main() {
	userID := flag.Int64("user", 0, "user ID to embed as the token subject")
	configPath := flag.String("config", filepath.Join("configs", "config.yaml"), "path to the configuration file")
	flag.Parse()

	if *userID <= 0 {
		fmt.Fprintln(os.Stderr, "usage: mktoken -user <id> [-config <path>]")
		os.Exit(2)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		os.Exit(1)
	}

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: cfg.AccessTokenExp(),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	token, err := jwtService.GenerateAccessToken(*userID)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to sign token")
		os.Exit(1)
	}

	fmt.Println(token)
}
