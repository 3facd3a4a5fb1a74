package self

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/creativeprojects/go-selfupdate"
	"github.com/urfave/cli/v2"
)

// DefaultRepository is the GitHub repository releases are fetched from.
const DefaultRepository = "nightconcept/datafetch"

// NewSelfCommand creates a new command for self-management.
func NewSelfCommand() *cli.Command {
	return &cli.Command{
		Name:  "self",
		Usage: "Manage the datafetch CLI application itself",
		Subcommands: []*cli.Command{
			{
				Name:  "update",
				Usage: "Update datafetch to the latest version",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "yes",
						Aliases: []string{"y"},
						Usage:   "Automatically confirm the update",
					},
					&cli.BoolFlag{
						Name:  "check",
						Usage: "Check for available updates without installing",
					},
					&cli.StringFlag{
						Name:  "source",
						Usage: "Specify a custom GitHub update source as 'owner/repo' (e.g., 'nightconcept/datafetch')",
					},
					&cli.BoolFlag{
						Name:  "verbose",
						Usage: "Enable verbose output",
					},
				},
				Action: updateAction,
			},
		},
	}
}

// releaseUpdater is the part of *selfupdate.Updater the update command uses.
type releaseUpdater interface {
	DetectLatest(ctx context.Context, repository selfupdate.Repository) (*selfupdate.Release, bool, error)
	UpdateTo(ctx context.Context, rel *selfupdate.Release, cmdPath string) error
}

// newUpdater builds an updater backed by public GitHub releases.
var newUpdater = func() (releaseUpdater, error) {
	source, err := selfupdate.NewGitHubSource(selfupdate.GitHubConfig{})
	if err != nil {
		return nil, fmt.Errorf("error creating GitHub source: %w", err)
	}
	updater, err := selfupdate.NewUpdater(selfupdate.Config{Source: source})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize updater: %w", err)
	}
	return updater, nil
}

func updateAction(c *cli.Context) error {
	out := c.App.Writer
	verbose := c.Bool("verbose")
	debugf := func(format string, args ...interface{}) {
		if verbose {
			_, _ = fmt.Fprintf(out, format+"\n", args...)
		}
	}

	current := c.App.Version
	debugf("datafetch current version: %s", current)
	currentSemVer, err := parseVersion(current)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	repoSlug, err := repositorySlug(c.String("source"))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	debugf("Using GitHub source: %s", repoSlug)

	updater, err := newUpdater()
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	latest, found, err := updater.DetectLatest(c.Context, selfupdate.ParseSlug(repoSlug))
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error detecting latest version: %v", err), 1)
	}
	if !found || !latest.GreaterThan(currentSemVer.String()) {
		_, _ = fmt.Fprintf(out, "Current version %s is already the latest.\n", current)
		return nil
	}

	debugf("Latest release: %s", latest.URL)
	if latest.ReleaseNotes != "" {
		debugf("Release Notes:\n%s", latest.ReleaseNotes)
	}
	_, _ = fmt.Fprintf(out, "New version available: %s (current: %s)\n", latest.Version(), current)
	if c.Bool("check") {
		return nil
	}

	if !c.Bool("yes") && !confirm(c.App.Reader, out, "Do you want to update? (y/N): ") {
		_, _ = fmt.Fprintln(out, "Update cancelled.")
		return nil
	}

	execPath, err := os.Executable()
	if err != nil {
		return cli.Exit(fmt.Sprintf("Could not get executable path: %v", err), 1)
	}
	_, _ = fmt.Fprintf(out, "Updating %s to %s...\n", execPath, latest.Version())
	if err := updater.UpdateTo(c.Context, latest, execPath); err != nil {
		return cli.Exit(fmt.Sprintf("Failed to update: %v", err), 1)
	}

	_, _ = fmt.Fprintf(out, "Successfully updated to version %s.\n", latest.Version())
	return nil
}

// confirm prints prompt and reports whether the answer is "y".
func confirm(in io.Reader, out io.Writer, prompt string) bool {
	_, _ = fmt.Fprint(out, prompt)
	input, _ := bufio.NewReader(in).ReadString('\n')
	return strings.EqualFold(strings.TrimSpace(input), "y")
}

// parseVersion accepts versions with or without a leading "v".
func parseVersion(version string) (*semver.Version, error) {
	v, err := semver.NewVersion(strings.TrimPrefix(version, "v"))
	if err != nil {
		return nil, fmt.Errorf("error parsing current version '%s': %w (expected vX.Y.Z or X.Y.Z)", version, err)
	}
	return v, nil
}

// repositorySlug validates an 'owner/repo' override, falling back to DefaultRepository.
func repositorySlug(source string) (string, error) {
	if source == "" {
		return DefaultRepository, nil
	}
	parts := strings.Split(source, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", fmt.Errorf("invalid --source format: expected 'owner/repo', got: %s", source)
	}
	return source, nil
}
