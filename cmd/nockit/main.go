package main

import (
	"os"

	"github.com/nockpoint/nockit/cmd/nockit/commands"
	"github.com/nockpoint/nockit/internal/utils/logger"
)

func main() {
	defer logger.Sync() //nolint:errcheck // stderr sync errors are expected on some platforms

	if err := commands.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
