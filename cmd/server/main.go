// Package main is the entry point for the facturador API server.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"facturador/internal/config"
	"facturador/internal/server"
	"facturador/pkg/logger"
)

func main() {
	app := &cli.App{
		Name:    "facturador",
		Usage:   "electronic invoice authorization service",
		Version: server.Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to a YAML config file",
				EnvVars: []string{config.EnvPrefix + "_CONFIG"},
			},
		},
		Action: serve,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "facturador: %v\n", err)
		os.Exit(1)
	}
}

func serve(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	app := fx.New(
		fx.Supply(cfg),
		fx.WithLogger(func(log *logger.Logger) fxevent.Logger {
			return server.FxLogger(log)
		}),
		server.Module,
	)
	if err := app.Err(); err != nil {
		return err
	}

	startCtx, cancel := context.WithTimeout(c.Context, app.StartTimeout())
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		return fmt.Errorf("start: %w", err)
	}

	// Wait for interrupt signal or an fx-initiated shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case <-app.Done():
	}

	stopCtx, stopCancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer stopCancel()
	if err := app.Stop(stopCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
