// Package fetch implements the "fetch" command and the default action of datafetch.
package fetch

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	goerrors "github.com/go-errors/errors"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v2"

	"github.com/nightconcept/datafetch/internal/core/config"
	"github.com/nightconcept/datafetch/internal/core/fetcher"
	"github.com/nightconcept/datafetch/internal/logger"
)

// NewFetchCommand creates a new cli.Command for the "fetch" command.
func NewFetchCommand() *cli.Command {
	return &cli.Command{
		Name:      "fetch",
		Usage:     "Downloads an archive and extracts it into a directory",
		ArgsUsage: "[source_url] [destination]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable verbose output",
			},
		},
		Action: func(c *cli.Context) error {
			cfg, err := config.Load(".")
			if err != nil {
				return cli.Exit(fmt.Sprintf("Error loading %s: %v", config.FileName, err), 1)
			}

			sourceLocator := cfg.Source.URL
			if c.NArg() > 0 {
				sourceLocator = c.Args().Get(0)
			}
			destination := cfg.Destination.Path
			if c.NArg() > 1 {
				destination = c.Args().Get(1)
			}

			return Run(c, sourceLocator, destination, c.Bool("verbose"))
		},
	}
}

// DefaultAction fetches using datafetch.toml in the working directory, or the
// built-in defaults when there is none.
func DefaultAction(c *cli.Context) error {
	cfg, err := config.Load(".")
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error loading %s: %v", config.FileName, err), 1)
	}
	return Run(c, cfg.Source.URL, cfg.Destination.Path, false)
}

// Run performs one fetch. Log lines go to the app's ErrWriter; with verbose set a
// summary of the result is printed to its Writer.
func Run(c *cli.Context, sourceLocator, destination string, verbose bool) error {
	log := logger.DefaultLogger(c.App.ErrWriter, logger.Level(verbose), "datafetch")

	result, err := fetcher.New(afero.NewOsFs(), log).Fetch(sourceLocator, destination)
	if err != nil {
		return cli.Exit(errorReport(err), 1)
	}

	if verbose {
		out := c.App.Writer
		_, _ = fmt.Fprintf(out, "%s %d entries into %s\n", color.GreenString("Extracted"), len(result.Entries), result.Destination)
		_, _ = fmt.Fprintf(out, "  archive: %s (%d bytes)\n", result.ArchivePath, result.Bytes)
		_, _ = fmt.Fprintf(out, "  %s\n", color.YellowString(result.SHA256))
	}
	return nil
}

// errorReport renders err with its stack when it carries one.
func errorReport(err error) string {
	var stackErr *goerrors.Error
	if errors.As(err, &stackErr) {
		return stackErr.ErrorStack()
	}
	return err.Error()
}
