package list

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/nightconcept/datafetch/internal/core/extractor"
)

// ListCmd defines the structure for the 'list' command.
var ListCmd = &cli.Command{
	Name:      "list",
	Aliases:   []string{"ls"},
	Usage:     "Displays the entries of a downloaded archive without extracting it",
	ArgsUsage: "<archive>",
	Action: func(c *cli.Context) error {
		if c.NArg() < 1 {
			return cli.Exit("Error: <archive> argument is required.", 1)
		}
		archivePath := c.Args().First()

		file, err := os.Open(archivePath)
		if err != nil {
			return cli.Exit(fmt.Sprintf("Error opening %s: %v", archivePath, err), 1)
		}
		defer file.Close()

		entries, err := extractor.List(file)
		if err != nil {
			return cli.Exit(fmt.Sprintf("Error reading %s: %v", archivePath, err), 1)
		}

		headerColor := color.New(color.FgCyan, color.Bold).SprintFunc()
		dirColor := color.New(color.FgBlue, color.Bold).SprintFunc()
		fileColor := color.New(color.FgWhite).SprintFunc()
		sizeColor := color.New(color.FgYellow).SprintFunc()
		modeColor := color.New(color.FgHiBlack).SprintFunc()
		linkColor := color.New(color.FgMagenta).SprintFunc()

		out := c.App.Writer
		_, _ = fmt.Fprintln(out, headerColor(archivePath+":"))
		if len(entries) == 0 {
			_, _ = fmt.Fprintln(out, "No entries found.")
			return nil
		}

		var total int64
		for _, entry := range entries {
			name := fileColor(entry.Name)
			if entry.IsDir() {
				name = dirColor(entry.Name)
			}
			if entry.Linkname != "" {
				name += linkColor(" -> " + entry.Linkname)
			}
			_, _ = fmt.Fprintf(out, "%s %s %s\n", modeColor(entry.Mode.String()), sizeColor(fmt.Sprintf("%10d", entry.Size)), name)
			total += entry.Size
		}
		_, _ = fmt.Fprintf(out, "%d entries, %d bytes\n", len(entries), total)
		return nil
	},
}
