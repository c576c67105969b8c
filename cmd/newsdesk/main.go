package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	// A missing .env is the normal case.
	_ = godotenv.Load()

	app := newCLIApp(os.Stdout, os.Stderr, nil)
	if err := app.Run(os.Args); err != nil {
		var exitErr cli.ExitCoder
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
