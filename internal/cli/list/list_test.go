package list

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/nightconcept/datafetch/internal/testutil"
)

func runListCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	originalNoColor := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = originalNoColor }()

	var out bytes.Buffer
	app := &cli.App{
		Name:      "datafetch-test-list",
		Commands:  []*cli.Command{ListCmd},
		Writer:    &out,
		ErrWriter: &out,
		ExitErrHandler: func(context *cli.Context, err error) {
			// Leave exit handling to the assertions.
		},
	}

	err := app.Run(append([]string{"datafetch-test-list", "list"}, args...))
	return out.String(), err
}

func TestListCommand_ShowsEntries(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "housing.tgz")
	archive := testutil.TarGz(t,
		testutil.Dir("housing/"),
		testutil.File("housing/housing.csv", "0123456789"),
	)
	require.NoError(t, os.WriteFile(archivePath, archive, 0644))

	out, err := runListCommand(t, archivePath)
	require.NoError(t, err)

	assert.Contains(t, out, archivePath+":")
	assert.Contains(t, out, "housing/\n")
	assert.Contains(t, out, "-rw-r--r--         10 housing/housing.csv")
	assert.Contains(t, out, "2 entries, 10 bytes")
}

func TestListCommand_ShowsLinkTargets(t *testing.T) {
	archivePath := filepath.Join(t.TempDir(), "links.tgz")
	archive := testutil.TarGz(t,
		testutil.File("housing.csv", "1"),
		testutil.Symlink("latest.csv", "housing.csv"),
	)
	require.NoError(t, os.WriteFile(archivePath, archive, 0644))

	out, err := runListCommand(t, archivePath)
	require.NoError(t, err)
	assert.Contains(t, out, "latest.csv -> housing.csv\n")
}

func TestListCommand_EmptyArchive(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "empty.tgz")
	require.NoError(t, os.WriteFile(archivePath, testutil.TarGz(t), 0644))

	_, err := runListCommand(t, archivePath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "archive holds no entries")
}

func TestListCommand_MissingArgument(t *testing.T) {
	_, err := runListCommand(t)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "<archive> argument is required")
}

func TestListCommand_FileNotFound(t *testing.T) {
	_, err := runListCommand(t, filepath.Join(t.TempDir(), "absent.tgz"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Error opening")
}

func TestListCommand_NotAnArchive(t *testing.T) {
	archivePath := filepath.Join(t.TempDir(), "plain.txt")
	require.NoError(t, os.WriteFile(archivePath, []byte("not gzip"), 0644))

	_, err := runListCommand(t, archivePath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot open gzip archive")
}
