package main

import (
	"context"
	"fmt"

	"github.com/amonks/musiclib/config"
	"github.com/amonks/musiclib/db"
	"github.com/amonks/musiclib/limiter"
	"github.com/amonks/musiclib/logger"
	"github.com/amonks/musiclib/server"
	"github.com/amonks/musiclib/subcmd"
	"github.com/gin-gonic/gin"
)

func serve(ctx context.Context, db *db.DB, cfg *config.Config, args []string) error {
	subcmd := subcmd.New("serve", "run the catalog web server")
	var (
		port = subcmd.String("port", cfg.ServerPort, "http port")
	)
	if err := subcmd.Parse(args); err != nil {
		return fmt.Errorf("flag parsing err: %w", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.Info(logger.EventStartup, "musiclib starting", logger.Fields(
		"port", *port,
		"environment", cfg.Environment,
		"db_driver", cfg.DBDriver,
	))

	handler := server.New(db, server.Options{
		Limiter: limiter.New(cfg.RateLimitPerSecond, cfg.RateLimitBurst),
	})
	addr := fmt.Sprintf(":%s", *port)
	return server.Run(ctx, handler, addr)
}
