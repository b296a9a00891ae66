package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/oko/internal/cli"
	"github.com/yaklabco/oko/pkg/config"
	"github.com/yaklabco/oko/pkg/fsutil"
)

const greeting = "Hello my friend!\nHow are you doing?\nNice to meet you!\nMy name is Jack.\n"

// isolate points every configuration source at a fresh directory and returns
// the user config directory.
func isolate(t *testing.T) string {
	t.Helper()

	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)
	for _, name := range []string{"OKO_CONTENT_COLOR", "OKO_MATCH_COLOR", "OKO_LOG_LEVEL", "OKO_COLOR", "NO_COLOR"} {
		t.Setenv(name, "")
	}
	return filepath.Join(configHome, "oko")
}

// runOko executes the command tree with stdin as standard input.
func runOko(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := cli.NewRootCommand(testInfo())

	var stdout, stderr bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), err
}

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestIntegration_Search(t *testing.T) {
	isolate(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "default command is search",
			args: []string{"my"},
			want: "Hello my friend!\n",
		},
		{
			name: "explicit search ignoring case",
			args: []string{"search", "-c", "my"},
			want: "Hello my friend!\nMy name is Jack.\n",
		},
		{
			name: "line numbers",
			args: []string{"-c", "-n", "my"},
			want: "1: Hello my friend!\n4: My name is Jack.\n",
		},
		{
			name: "regex",
			args: []string{"search", "-r", `\byou\b`},
			want: "How are you doing?\nNice to meet you!\n",
		},
		{
			name: "literal by default",
			args: []string{"search", `\byou\b`},
			want: "",
		},
		{
			name: "stdin dash",
			args: []string{"search", "-i", "-", "Jack"},
			want: "My name is Jack.\n",
		},
		{
			name: "text format alias",
			args: []string{"search", "-f", "text", "Nice"},
			want: "Nice to meet you!\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runOko(t, greeting, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestIntegration_PatternNamingACommand(t *testing.T) {
	isolate(t)

	const input = "count me in\nskip\nrecount\n"

	out, err := runOko(t, input, "search", "count")
	require.NoError(t, err)
	assert.Equal(t, "count me in\nrecount\n", out)

	out, err = runOko(t, input, "count", "count")
	require.NoError(t, err)
	assert.Equal(t, "2\n", out)

	// The bare form selects the command, which then lacks a pattern.
	_, err = runOko(t, input, "count")
	require.Error(t, err)
	assert.ErrorIs(t, err, cli.ErrUsage)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCodeFromError(err))
}

func TestIntegration_Count(t *testing.T) {
	isolate(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "regex count", args: []string{"count", "-r", `\byou\b`}, want: "2\n"},
		{name: "ignore case", args: []string{"count", "-c", "MY"}, want: "2\n"},
		{name: "no matches", args: []string{"count", "absent"}, want: "0\n"},
		{name: "json", args: []string{"count", "-f", "json", "you"}, want: "{\"results\":2}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runOko(t, greeting, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestIntegration_SearchJSON(t *testing.T) {
	isolate(t)

	out, err := runOko(t, greeting, "search", "-f", "json", "-c", "my")
	require.NoError(t, err)
	assert.JSONEq(t, `{"pattern":"my","results":[`+
		`{"line":1,"content":"Hello my friend!","matches":[{"content":"my","start_pos":6,"end_pos":8}]},`+
		`{"line":4,"content":"My name is Jack.","matches":[{"content":"My","start_pos":0,"end_pos":2}]}]}`, out)

	out, err = runOko(t, greeting, "search", "-f", "json", "absent")
	require.NoError(t, err)
	assert.JSONEq(t, `{"pattern":"absent","results":[]}`, out)
}

func TestIntegration_InputFile(t *testing.T) {
	isolate(t)

	input := writeFile(t, filepath.Join(t.TempDir(), "greeting.txt"), greeting)

	out, err := runOko(t, "ignored", "search", "-i", input, "-n", "friend")
	require.NoError(t, err)
	assert.Equal(t, "1: Hello my friend!\n", out)
}

func TestIntegration_InputErrors(t *testing.T) {
	isolate(t)

	dir := t.TempDir()

	_, err := runOko(t, "", "search", "-i", filepath.Join(dir, "missing.txt"), "x")
	require.Error(t, err)
	assert.Equal(t, cli.ExitIOError, cli.ExitCodeFromError(err))
	assert.Contains(t, err.Error(), "error reading file")

	_, err = runOko(t, "", "count", "-i", dir, "x")
	require.Error(t, err)
	assert.Equal(t, cli.ExitIOError, cli.ExitCodeFromError(err))
}

func TestIntegration_UsageErrors(t *testing.T) {
	isolate(t)

	tests := []struct {
		name string
		args []string
	}{
		{name: "invalid regex", args: []string{"search", "-r", "(unclosed"}},
		{name: "missing pattern", args: []string{"search"}},
		{name: "too many patterns", args: []string{"count", "a", "b"}},
		{name: "unknown format", args: []string{"search", "-f", "xml", "x"}},
		{name: "unknown flag", args: []string{"search", "--bogus", "x"}},
		{name: "invalid color mode", args: []string{"search", "--color", "sometimes", "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runOko(t, greeting, tt.args...)
			require.Error(t, err)
			assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCodeFromError(err))
			assert.Empty(t, out)
		})
	}
}

func TestIntegration_OutputFile(t *testing.T) {
	isolate(t)

	output := filepath.Join(t.TempDir(), "results.txt")

	out, err := runOko(t, greeting, "search", "--color", "always", "-n", "-o", output, "you")
	require.NoError(t, err)
	assert.Empty(t, out, "nothing is written to stdout")

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "2: How are you doing?\n3: Nice to meet you!\n", string(data), "file output is never colored")
}

func TestIntegration_OutputFileUntouchedOnFailure(t *testing.T) {
	isolate(t)

	output := writeFile(t, filepath.Join(t.TempDir(), "results.txt"), "previous\n")

	_, err := runOko(t, greeting, "search", "-o", output, "-i", filepath.Join(t.TempDir(), "missing"), "x")
	require.Error(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "previous\n", string(data))
}

func TestIntegration_OutputDirectory(t *testing.T) {
	isolate(t)

	_, err := runOko(t, greeting, "count", "-o", t.TempDir(), "you")
	require.Error(t, err)
	assert.ErrorIs(t, err, fsutil.ErrIsDirectory)
	assert.Equal(t, cli.ExitIOError, cli.ExitCodeFromError(err))
}

func TestIntegration_ColorAlways(t *testing.T) {
	isolate(t)

	cfgFile := writeFile(t, filepath.Join(t.TempDir(), "oko.yml"), "match_color: red\n")

	out, err := runOko(t, greeting, "search", "--config", cfgFile, "--color", "always", "friend")
	require.NoError(t, err)
	assert.Contains(t, out, "\x1b[")
	assert.True(t, strings.HasPrefix(out, "Hello my "), "content has no color by default")
	assert.True(t, strings.HasSuffix(out, "!\n"))
}

func TestIntegration_ColorFromEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv("OKO_COLOR", "always")

	out, err := runOko(t, greeting, "Jack")
	require.NoError(t, err)
	assert.Contains(t, out, "\x1b[")

	out, err = runOko(t, greeting, "--color", "never", "Jack")
	require.NoError(t, err)
	assert.Equal(t, "My name is Jack.\n", out, "flags override the environment")
}

func TestIntegration_InvalidConfig(t *testing.T) {
	isolate(t)

	cfgFile := writeFile(t, filepath.Join(t.TempDir(), "oko.yml"), "match_color: plaid\n")

	_, err := runOko(t, greeting, "search", "--config", cfgFile, "x")
	require.Error(t, err)
	assert.Equal(t, cli.ExitConfigError, cli.ExitCodeFromError(err))
	assert.Contains(t, err.Error(), cfgFile)
}

func TestIntegration_StoresDefaultConfig(t *testing.T) {
	userDir := isolate(t)

	_, err := runOko(t, greeting, "count", "x")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(userDir, "config.yaml"))
	require.NoError(t, err)

	stored, err := config.FromYAML(data)
	require.NoError(t, err)
	assert.Equal(t, config.NewConfig(), stored)
}

func TestIntegration_Init(t *testing.T) {
	userDir := isolate(t)

	_, err := runOko(t, "", "init")
	require.NoError(t, err)

	path := filepath.Join(userDir, "config.yaml")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "# oko configuration"))

	_, err = runOko(t, "", "init")
	require.Error(t, err)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCodeFromError(err))

	_, err = runOko(t, "", "init", "--force", "--full")
	require.NoError(t, err)
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Valid colors:")
}

func TestIntegration_InitCustomOutput(t *testing.T) {
	isolate(t)

	output := filepath.Join(t.TempDir(), "nested", ".oko.yml")

	_, err := runOko(t, "", "init", "--output", output)
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	cfg, err := config.FromYAML(data)
	require.NoError(t, err)
	assert.Equal(t, config.NewConfig(), cfg)
}
