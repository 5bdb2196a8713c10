package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/gmwallet/gm/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlags restores every flag variable shared between executions.
func resetFlags() {
	logLevel, configPath, logFile = "info", "", ""
	revealSecrets, versionYAML = false, false
	transfersLimit = 20
	_ = logger.SetLevel("info")
	if f := rootCmd.Flags().Lookup("help"); f != nil {
		_ = f.Value.Set("false")
	}
}

// execute runs the root command with args and returns what it printed.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	resetFlags()
	t.Cleanup(func() {
		resetFlags()
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()

	return out.String(), err
}

func testConfigPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "config.db")
}

func TestRootCommand(t *testing.T) {
	assert.Equal(t, "gm", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
	assert.NotNil(t, rootCmd.RunE, "gm without a subcommand starts the interface")
}

func TestRootCommandFlags(t *testing.T) {
	tests := []struct {
		name string
		def  string
	}{
		{"log-level", "info"},
		{"config", ""},
		{"log-file", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag := rootCmd.PersistentFlags().Lookup(tt.name)
			require.NotNil(t, flag)
			assert.Equal(t, tt.def, flag.DefValue)
			assert.NotEmpty(t, flag.Usage)
		})
	}
}

func TestRootCommandSubcommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, want := range []string{"interactive", "config", "version"} {
		assert.True(t, names[want], "missing %s command", want)
	}
}

func TestPersistentPreRunSetsLevel(t *testing.T) {
	_, err := execute(t, "--log-level", "debug", "version")
	require.NoError(t, err)
	assert.Equal(t, logger.LevelDebug, logger.Log.Level())
}

func TestInvalidLogLevel(t *testing.T) {
	_, err := execute(t, "--log-level", "verbose", "version")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestInteractiveNeedsTerminal(t *testing.T) {
	orig := isTerminal
	isTerminal = func(*os.File) bool { return false }
	t.Cleanup(func() { isTerminal = orig })

	_, err := execute(t, "--config", testConfigPath(t))
	assert.ErrorIs(t, err, errNotTerminal)

	_, err = execute(t, "interactive", "--config", testConfigPath(t))
	assert.ErrorIs(t, err, errNotTerminal)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "gm ")

	out, err = execute(t, "version", "--yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "version:")
	assert.Contains(t, out, "go_version:")
}

func TestHelp(t *testing.T) {
	out, err := execute(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "config")
}
