package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/voyage/internal/domain/build"
)

const testConfigTOML = `
[search]
suggest_url = ""

[suggestions]
debounce_ms = 10
`

// isolate gives the command tree fresh XDG directories and a quiet config.
func isolate(t *testing.T, configTOML string) string {
	t.Helper()
	root := t.TempDir()
	t.Setenv("VOYAGE_ENV", "")
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(root, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(root, "data"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(root, "state"))
	t.Chdir(root)

	dir := filepath.Join(root, "config", "voyage")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(configTOML), 0o644))
	return root
}

func resetFlags() {
	historyJSON, historyMax = false, defaultHistoryMax
	bookmarkTitle, bookmarkFolder, bookmarkJSON = "", "", false
	suggestJSON, suggestNoTab = false, false
	schemaStdout = false
	openWatch = true
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()

	// PersistentPostRun is skipped when RunE fails.
	if app != nil {
		_ = app.Close()
		app = nil
	}
	return out.String(), err
}

func TestBookmarkCommands(t *testing.T) {
	isolate(t, testConfigTOML)

	out, err := execute(t, "bookmark", "add", "https://example.com/docs", "--title", "Example Docs", "--folder", "work")
	require.NoError(t, err)
	assert.Contains(t, out, "Example Docs")

	out, err = execute(t, "bookmark", "list", "--json")
	require.NoError(t, err)
	var rows []bookmarkRow
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "Example Docs", rows[0].Title)
	assert.Equal(t, "work", rows[0].Folder)

	out, err = execute(t, "bookmark", "list", "--folder", "other")
	require.NoError(t, err)
	assert.Contains(t, out, "no bookmarks")

	_, err = execute(t, "bookmark", "remove", rows[0].URL)
	require.NoError(t, err)

	out, err = execute(t, "bookmark", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "no bookmarks")
}

func TestSuggestCommand_JSON(t *testing.T) {
	isolate(t, testConfigTOML)

	_, err := execute(t, "bookmark", "add", "https://golang.org/doc", "-t", "Golang documentation")
	require.NoError(t, err)

	out, err := execute(t, "suggest", "--json", "--no-tabs", "golang")
	require.NoError(t, err)

	var result suggestOutput
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "golang", result.Query)
	require.NotEmpty(t, result.Items)
	assert.Equal(t, "bookmark", result.Items[0].Kind)
	assert.Equal(t, "Golang documentation", result.Items[0].Title)
}

func TestSuggestCommand_NoMatches(t *testing.T) {
	isolate(t, testConfigTOML)

	out, err := execute(t, "suggest", "nothing-here")
	require.NoError(t, err)
	assert.Contains(t, out, "no suggestions")

	_, err = execute(t, "suggest")
	assert.Error(t, err, "query is required")
}

func TestHistoryCommands(t *testing.T) {
	isolate(t, testConfigTOML)

	out, err := execute(t, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "no history")

	out, err = execute(t, "history", "--json", "golang")
	require.NoError(t, err)
	assert.JSONEq(t, "[]", out)

	out, err = execute(t, "history", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "History cleared")

	_, err = execute(t, "history", "delete", "abc")
	assert.ErrorContains(t, err, "invalid history id")
}

func TestConfigCommands(t *testing.T) {
	root := isolate(t, testConfigTOML)

	out, err := execute(t, "config", "path")
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join(root, "data", "voyage", "voyage.db"))

	out, err = execute(t, "config", "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "is valid")

	out, err = execute(t, "config", "schema", "--stdout")
	require.NoError(t, err)
	assert.Contains(t, out, "config.schema.json")

	out, err = execute(t, "config", "schema")
	require.NoError(t, err)
	assert.Contains(t, out, "Schema written")
	assert.FileExists(t, filepath.Join(root, "config", "voyage", "config.schema.json"))
}

func TestConfigValidate_ReportsProblems(t *testing.T) {
	isolate(t, `
[suggestions]
priority = ["nope"]
`)

	out, err := execute(t, "config", "validate")
	require.Error(t, err)
	assert.Contains(t, out, "suggestions.priority")
}

func TestAboutCommand(t *testing.T) {
	isolate(t, testConfigTOML)
	SetBuildInfo(build.Info{Version: "1.2.3", Commit: "abc123"})
	t.Cleanup(func() { SetBuildInfo(build.Info{}) })

	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "1.2.3")
	assert.Contains(t, out, build.RepoURL())
}
