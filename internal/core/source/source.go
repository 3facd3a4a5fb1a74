package source

import (
	"fmt"
	"net/url"
	"path"
	"strings"
)

// DefaultFilename is used when the source URL path does not end in a file name.
const DefaultFilename = "archive.tgz"

// GithubRawBaseURL is where github: shorthand locators are served from.
const GithubRawBaseURL = "https://raw.githubusercontent.com"

// Info holds the details resolved from a source locator.
type Info struct {
	RawURL   string // The URL the archive is downloaded from
	Filename string // Name the downloaded archive is stored under
	Provider string // "http" or "github"
}

// Resolve turns a source locator into a downloadable URL.
// Accepted forms are absolute http(s) URLs and github:owner/repo/path/to/file@ref.
func Resolve(locator string) (*Info, error) {
	locator = strings.TrimSpace(locator)
	if locator == "" {
		return nil, fmt.Errorf("source locator is empty")
	}

	if strings.HasPrefix(locator, "github:") {
		return resolveGitHubShorthand(locator)
	}

	u, err := url.Parse(locator)
	if err != nil {
		return nil, fmt.Errorf("failed to parse source URL '%s': %w", locator, err)
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
	default:
		return nil, fmt.Errorf("unsupported source URL scheme '%s' in '%s': only http and https are supported", u.Scheme, locator)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("source URL '%s' has no host", locator)
	}

	return &Info{
		RawURL:   u.String(),
		Filename: filenameFromPath(u.Path),
		Provider: "http",
	}, nil
}

func resolveGitHubShorthand(locator string) (*Info, error) {
	content := strings.TrimPrefix(locator, "github:")

	lastAt := strings.LastIndex(content, "@")
	if lastAt == -1 {
		return nil, fmt.Errorf("invalid github shorthand source '%s': missing @ref (e.g., @main or @commitsha)", locator)
	}
	if lastAt == len(content)-1 {
		return nil, fmt.Errorf("invalid github shorthand source '%s': ref part is empty after @", locator)
	}

	repoAndPath := content[:lastAt]
	ref := content[lastAt+1:]

	parts := strings.Split(repoAndPath, "/")
	if len(parts) < 3 {
		return nil, fmt.Errorf("invalid github shorthand source '%s': expected format owner/repo/path/to/file, got '%s'", locator, repoAndPath)
	}
	for _, p := range parts {
		if p == "" {
			return nil, fmt.Errorf("invalid github shorthand source '%s': owner, repo, or path/filename cannot be empty", locator)
		}
	}

	owner, repo := parts[0], parts[1]
	pathInRepo := strings.Join(parts[2:], "/")

	return &Info{
		RawURL:   fmt.Sprintf("%s/%s/%s/%s/%s", GithubRawBaseURL, owner, repo, ref, pathInRepo),
		Filename: parts[len(parts)-1],
		Provider: "github",
	}, nil
}

func filenameFromPath(p string) string {
	name := path.Base(p)
	if name == "" || name == "." || name == "/" {
		return DefaultFilename
	}
	return name
}
