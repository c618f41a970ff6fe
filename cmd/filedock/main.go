package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/dmitrijs2005/filedock/internal/cli"
	"github.com/dmitrijs2005/filedock/internal/config"
	"github.com/dmitrijs2005/filedock/internal/logging"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	app := cli.NewApp(cfg, logger, os.Stdout)

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}
}
