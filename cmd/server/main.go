package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/AnshRaj112/userorders-backend/internal/config"
	"github.com/AnshRaj112/userorders-backend/internal/logging"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "userorders-server",
		Usage: "HTTP API for users and their orders",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "Load environment variables from this file before reading config",
				Value: ".env",
			},
			&cli.StringFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Listen port (overrides PORT)",
			},
		},
		Action: serveCommand,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP server (default)",
				Action: serveCommand,
			},
			{
				Name:   "ensure-indexes",
				Usage:  "Create the MongoDB indexes and exit",
				Action: ensureIndexesCommand,
			},
		},
	}
}

// bootstrap loads the env file, configuration and logger shared by every
// command.
func bootstrap(c *cli.Context) (*config.Config, *slog.Logger, error) {
	envFile := c.String("env-file")
	envErr := godotenv.Load(envFile)
	if envErr != nil && c.IsSet("env-file") {
		return nil, nil, fmt.Errorf("loading %s: %w", envFile, envErr)
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if c.IsSet("port") {
		cfg.Port = c.String("port")
		if err := cfg.Validate(); err != nil {
			return nil, nil, err
		}
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat)
	if envErr != nil {
		logger.Info("No .env file found", "path", envFile)
	}
	return cfg, logger, nil
}
