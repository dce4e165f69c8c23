package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"mtg-labels/app"
	"mtg-labels/output"
)

// Set by -ldflags at build time
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

func main() {
	// Load .env in development; in production variables are set directly.
	// Overload lets .env values win over the inherited environment.
	if os.Getenv("ENV") != "production" {
		if err := godotenv.Overload(".env"); err != nil && !os.IsNotExist(err) {
			log.Printf("Warning: could not load .env: %v", err)
		}
	}

	app.SetVersion(version)
	app.SetBuildInfo(commit, buildTime)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := app.Execute(ctx)
	stop()

	if err != nil {
		cliErr := output.Classify(err)
		output.NewPrinter(output.ColorsAllowed()).FormatError(cliErr)
		os.Exit(cliErr.ExitCode)
	}
}
