package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voithos/awl/lisp"
)

func TestRunSources(t *testing.T) {
	env, err := DefaultConfig().NewEnv()
	require.NoError(t, err)

	srcs, err := runReadSources([]string{"(define x 2)", "(map inc {1 x})\n(* x 3)"}, true)
	require.NoError(t, err)
	var out bytes.Buffer
	require.NoError(t, runSources(env, srcs, &out, true))
	assert.Equal(t, "{}\n{2 3}\n6\n", out.String())

	out.Reset()
	srcs, err = runReadSources([]string{`(define y 1) (error "boom") (define y 2)`}, true)
	require.NoError(t, err)
	err = runSources(env, srcs, &out, false)
	assert.EqualError(t, err, "boom")
	assert.Empty(t, out.String())
	assert.Equal(t, "1", env.Get(lisp.Symbol("y")).String())

	srcs, err = runReadSources([]string{"(+ 1"}, true)
	require.NoError(t, err)
	err = runSources(env, srcs, &out, false)
	assert.EqualError(t, err, "expression 1: syntax error at offset 0")
}

func TestRunReadSources(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.awl")
	require.NoError(t, os.WriteFile(path, []byte("(+ 1 2)"), 0600))

	srcs, err := runReadSources([]string{path}, false)
	require.NoError(t, err)
	require.Len(t, srcs, 1)
	assert.Equal(t, path, srcs[0].name)
	assert.Equal(t, "(+ 1 2)", string(srcs[0].text))

	_, err = runReadSources([]string{filepath.Join(dir, "missing.awl")}, false)
	assert.Error(t, err)
}
