// Command revsplit_token mints a bearer token for a dashboard user, signed
// with the same JWT_SECRET and JWT_ISSUER the API server loads.
//
//	revsplit_token --sub label-admin-42 --ttl 8h
package main

import (
	"log/slog"
	"os"

	"github.com/SscSPs/revenue_split_app/internal/platform/config"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := NewRootCmd(cfg).Execute(); err != nil {
		logger.Error("Failed to generate token", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
