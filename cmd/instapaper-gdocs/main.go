package main

import (
	"os"

	"github.com/PeterTheobald/instapaper-gdocs/internal/adapters/driving/cli"
	"github.com/PeterTheobald/instapaper-gdocs/internal/app"
)

// version is overridden at build time via -ldflags.
var version = "dev"

func main() {
	cli.SetServiceFactory(app.NewFactory())
	cli.SetVersion(version)

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
