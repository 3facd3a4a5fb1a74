// Package initcmd implements the "init" command, which writes datafetch.toml.
package initcmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/nightconcept/datafetch/internal/core/config"
)

// promptWithDefault asks for a value on out and reads one line from reader.
// An empty answer selects defaultValue.
func promptWithDefault(reader *bufio.Reader, out io.Writer, promptText string, defaultValue string) (string, error) {
	if defaultValue != "" {
		_, _ = fmt.Fprintf(out, "%s (default: %s): ", promptText, defaultValue)
	} else {
		_, _ = fmt.Fprintf(out, "%s: ", promptText)
	}

	input, err := reader.ReadString('\n')
	if err != nil && !(err == io.EOF && input != "") {
		return "", fmt.Errorf("failed to read input for '%s': %w", promptText, err)
	}
	input = strings.TrimSpace(input)
	if input == "" {
		return defaultValue, nil
	}
	return input, nil
}

// GetInitCommand returns the definition for the "init" command.
func GetInitCommand() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Create a datafetch.toml holding the default source and destination",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "force",
				Aliases: []string{"f"},
				Usage:   "Overwrite an existing datafetch.toml",
			},
		},
		Action: func(c *cli.Context) error {
			out := c.App.Writer

			if _, err := os.Stat(filepath.Join(".", config.FileName)); err == nil && !c.Bool("force") {
				return cli.Exit(fmt.Sprintf("Error: %s already exists. Use --force to overwrite it.", config.FileName), 1)
			}

			defaults := config.Default()
			reader := bufio.NewReader(c.App.Reader)

			sourceURL, err := promptWithDefault(reader, out, "Source URL", defaults.Source.URL)
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}

			destination, err := promptWithDefault(reader, out, "Destination directory", defaults.Destination.Path)
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}

			cfg := &config.Config{
				Source:      config.Source{URL: sourceURL},
				Destination: config.Destination{Path: destination},
			}
			if err := config.Write(".", cfg); err != nil {
				return cli.Exit(fmt.Sprintf("Error writing %s: %v", config.FileName, err), 1)
			}

			_, _ = fmt.Fprintf(out, "\nWrote to %s\n", config.FileName)
			return nil
		},
	}
}
