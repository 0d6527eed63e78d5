package main

import (
	"os"

	"github.com/vijay-prabhu/replybot/internal/cli"
)

// Version information, set with -ldflags "-X main.Version=..."
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	cli.SetVersionInfo(Version, Commit, BuildTime)
	if err := cli.Execute(); err != nil {
		// cobra has already printed the error
		os.Exit(1)
	}
}
