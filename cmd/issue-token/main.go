package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go-ferreteria-api/pkg/config"
	"go-ferreteria-api/pkg/jwt"
	"go-ferreteria-api/pkg/logger"
)

// issue-token prints an operator bearer token for the maintenance routes,
// signed with FERRETERIA_OPERATOR_JWT_SECRET.
func main() {
	subject := flag.String("subject", "operator", "token subject")
	ttl := flag.Duration("ttl", 0, "token lifetime (defaults to FERRETERIA_OPERATOR_TOKEN_TTL)")
	flag.Parse()

	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "issue-token", Format: "console", Output: os.Stderr})

	// 1. Load config
	cfg, envFileFound, err := config.Load()
	if err != nil {
		logg.Error(ctx, "load config", err)
		os.Exit(1)
	}
	if !envFileFound {
		logg.Warn(ctx, ".env file not found, using process environment")
	}
	if !cfg.Auth.OperatorAuthEnabled() {
		logg.Error(ctx, "FERRETERIA_OPERATOR_JWT_SECRET is not set", nil)
		os.Exit(1)
	}

	lifetime := *ttl
	if lifetime <= 0 {
		lifetime = cfg.Auth.OperatorTokenTTL
	}

	// 2. Sign
	token, err := jwt.GenerateToken([]byte(cfg.Auth.OperatorJWTSecret), *subject, lifetime)
	if err != nil {
		logg.Error(ctx, "generate token", err)
		os.Exit(1)
	}

	logg.Info(logg.WithFields(ctx, logger.Fields{"subject": *subject, "ttl": lifetime.String()}), "operator token issued")
	fmt.Println(token)
}

