package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"example.com/balance-forecast/internal/auth"
	"example.com/balance-forecast/internal/config"
)

// issue-token выпускает access-токен для пользователя из ledger, пока в сервисе нет собственного логина.
func main() {
	userFlag := flag.String("user", "", "user id (uuid)")
	ttlFlag := flag.Duration("ttl", 0, "token lifetime, defaults to JWT_ACCESS_TTL")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	userID, err := uuid.Parse(*userFlag)
	if err != nil {
		logger.Error("invalid -user", slog.String("error", err.Error()))
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ttl := cfg.Auth.AccessTokenTTL
	if *ttlFlag > 0 {
		ttl = *ttlFlag
	}

	token, err := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, ttl).Issue(userID)
	if err != nil {
		logger.Error("failed to issue token", slog.String("error", err.Error()))
		os.Exit(1)
	}

	fmt.Println(token.Value)
	logger.Info("token issued",
		slog.String("user_id", userID.String()),
		slog.String("expires_at", token.ExpiresAt.UTC().Format(time.RFC3339)),
	)
}
