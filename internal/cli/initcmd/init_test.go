package initcmd

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/nightconcept/datafetch/internal/core/config"
)

// runInitCommand executes 'init' inside workDir, feeding inputs as stdin lines.
func runInitCommand(t *testing.T, workDir string, inputs []string, args ...string) (string, error) {
	t.Helper()

	originalWd, err := os.Getwd()
	require.NoError(t, err, "Failed to get current working directory")
	require.NoError(t, os.Chdir(workDir), "Failed to change to working directory: %s", workDir)
	defer func() {
		require.NoError(t, os.Chdir(originalWd), "Failed to restore original working directory")
	}()

	var out bytes.Buffer
	app := &cli.App{
		Name:      "datafetch-test-init",
		Commands:  []*cli.Command{GetInitCommand()},
		Reader:    strings.NewReader(strings.Join(inputs, "\n") + "\n"),
		Writer:    &out,
		ErrWriter: &out,
		ExitErrHandler: func(context *cli.Context, err error) {
			// Leave exit handling to the assertions.
		},
	}

	err = app.Run(append([]string{"datafetch-test-init", "init"}, args...))
	return out.String(), err
}

func TestInitCommand_CustomValues(t *testing.T) {
	tempDir := t.TempDir()

	out, err := runInitCommand(t, tempDir, []string{"https://example.com/census.tgz", "datasets/census"})
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote to datafetch.toml")

	cfg, err := config.Load(tempDir)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/census.tgz", cfg.Source.URL)
	assert.Equal(t, "datasets/census", cfg.Destination.Path)
}

func TestInitCommand_AcceptsDefaults(t *testing.T) {
	tempDir := t.TempDir()

	out, err := runInitCommand(t, tempDir, []string{"", ""})
	require.NoError(t, err)
	assert.Contains(t, out, "(default: "+config.DefaultSourceURL+")")

	cfg, err := config.Load(tempDir)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	_, err = os.Stat(filepath.Join(tempDir, config.FileName))
	require.NoError(t, err, "datafetch.toml was not created")
}

func TestInitCommand_RefusesToOverwrite(t *testing.T) {
	tempDir := t.TempDir()
	existing := "[source]\nurl = \"https://keep.example.com/a.tgz\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, config.FileName), []byte(existing), 0644))

	_, err := runInitCommand(t, tempDir, []string{"https://example.com/new.tgz", "new"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	content, readErr := os.ReadFile(filepath.Join(tempDir, config.FileName))
	require.NoError(t, readErr)
	assert.Equal(t, existing, string(content))
}

func TestInitCommand_ForceOverwrites(t *testing.T) {
	tempDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, config.FileName), []byte("[source]\nurl = \"https://old.example.com/a.tgz\"\n"), 0644))

	_, err := runInitCommand(t, tempDir, []string{"https://example.com/new.tgz", "new"}, "--force")
	require.NoError(t, err)

	cfg, err := config.Load(tempDir)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/new.tgz", cfg.Source.URL)
	assert.Equal(t, "new", cfg.Destination.Path)
}

func TestPromptWithDefault(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		defaultValue string
		want         string
		wantErr      bool
	}{
		{name: "value given", input: "abc\n", defaultValue: "def", want: "abc"},
		{name: "empty selects default", input: "\n", defaultValue: "def", want: "def"},
		{name: "whitespace trimmed", input: "  abc  \n", want: "abc"},
		{name: "last line without newline", input: "abc", want: "abc"},
		{name: "eof without input", input: "", defaultValue: "def", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := promptWithDefault(bufio.NewReader(strings.NewReader(tt.input)), &out, "Value", tt.defaultValue)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
