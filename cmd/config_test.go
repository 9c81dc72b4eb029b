package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voithos/awl/lisp"
	"github.com/voithos/awl/repl"
)

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
prompt: "λ "
history_file: /tmp/awl_history
max_depth: 100
preload:
  - a.awl
  - b.awl
`))
	require.NoError(t, err)
	assert.Equal(t, "λ ", cfg.Prompt)
	assert.Equal(t, "/tmp/awl_history", cfg.HistoryFile)
	assert.Equal(t, 100, cfg.MaxDepth)
	assert.Equal(t, []string{"a.awl", "b.awl"}, cfg.Preload)

	cfg, err = ParseConfig([]byte("max_depth: 7\n"))
	require.NoError(t, err)
	assert.Equal(t, repl.DefaultPrompt, cfg.Prompt)
	assert.Equal(t, 7, cfg.MaxDepth)

	_, err = ParseConfig([]byte("max_depth: -1\n"))
	assert.Error(t, err)
	_, err = ParseConfig([]byte("max_depth: [\n"))
	assert.Error(t, err)
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "awl.yaml")
	require.NoError(t, os.WriteFile(path, []byte("prompt: \"> \"\n"), 0600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "> ", cfg.Prompt)
	assert.Equal(t, lisp.DefaultMaxDepth, cfg.MaxDepth)

	_, err = LoadConfig(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	t.Setenv("HOME", dir)
	cfg, err = LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestConfigNewEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prelude.awl")
	require.NoError(t, os.WriteFile(path, []byte("(define answer (* 6 7))\n"), 0600))

	cfg := DefaultConfig()
	cfg.MaxDepth = 123
	cfg.Preload = []string{path}
	env, err := cfg.NewEnv()
	require.NoError(t, err)
	assert.Equal(t, 123, env.Runtime.MaxDepth)
	assert.Equal(t, "42", env.Get(lisp.Symbol("answer")).String())
	assert.Equal(t, "{2 3}", env.LoadString("test", "(map inc {1 2})").String())

	cfg.Preload = []string{filepath.Join(dir, "missing.awl")}
	_, err = cfg.NewEnv()
	assert.Error(t, err)
}
