// Command datafetch downloads a compressed dataset archive and extracts it locally.
package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/nightconcept/datafetch/internal/cli/fetch"
	"github.com/nightconcept/datafetch/internal/cli/initcmd"
	"github.com/nightconcept/datafetch/internal/cli/list"
	"github.com/nightconcept/datafetch/internal/cli/self"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "v0.1.0"

func main() {
	app := &cli.App{
		Name:    "datafetch",
		Usage:   "Fetch a remote dataset archive and extract it locally",
		Version: version,
		// Without a command, fetch once using datafetch.toml or the built-in defaults.
		Action: fetch.DefaultAction,
		Commands: []*cli.Command{
			fetch.NewFetchCommand(),
			initcmd.GetInitCommand(),
			list.ListCmd,
			self.NewSelfCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
