// Package awltest runs table driven tests of awl expressions.
package awltest

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/voithos/awl/lisp"
	"github.com/voithos/awl/lisp/lisplib"
	"github.com/voithos/awl/parser"
)

// Runner is a test runner.
type Runner struct {
	// Loader is the library loader used to initialize the test environment.
	// When Loader is nil lisplib.LoadLibrary is used.
	Loader lisp.Loader
	// Stdout receives the output of print and println.  When Stdout is nil
	// output is discarded.
	Stdout *bytes.Buffer
}

// NewEnv returns a top level environment with the library loaded.
func (r *Runner) NewEnv() (*lisp.LEnv, error) {
	loader := r.Loader
	if loader == nil {
		loader = lisplib.LoadLibrary
	}
	stdout := r.Stdout
	if stdout == nil {
		stdout = &bytes.Buffer{}
	}
	env, err := lisp.NewTopLevelEnv(
		lisp.WithReader(parser.NewReader()),
		lisp.WithStdout(stdout),
		lisp.WithLibrary(loader),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize lisp environment: %w", err)
	}
	return env, nil
}

// TestSequence is a sequence of lisp expressions which are evaluated sequentially
// by a lisp.LEnv.
type TestSequence []struct {
	Expr   string // a lisp expression
	Result string // the evaluated result
}

// TestSuite is a set of named TestSequences
type TestSuite []struct {
	Name string
	TestSequence
}

// RunTestSuite runs each TestSequence in tests on isolated lisp.LEnvs.
func RunTestSuite(t *testing.T, tests TestSuite) {
	t.Helper()
	var r Runner
	r.RunTestSuite(t, tests)
}

// RunTestSuite runs each TestSequence in tests on isolated lisp.LEnvs created
// by r.
func (r *Runner) RunTestSuite(t *testing.T, tests TestSuite) {
	t.Helper()
	for i, test := range tests {
		env, err := r.NewEnv()
		if err != nil {
			t.Fatal(err)
		}
		for j, expr := range test.TestSequence {
			v, _, err := parser.ParseLVal([]byte(expr.Expr))
			if err != nil {
				t.Errorf("test %d %q: expr %d: parse error: %v", i, test.Name, j, err)
				continue
			}
			if len(v) == 0 {
				t.Errorf("test %d %q: expr %d: no expression parsed", i, test.Name, j)
				continue
			}
			if len(v) != 1 {
				t.Errorf("test %d %q: expr %d: more than one expression parsed (%d)", i, test.Name, j, len(v))
				continue
			}
			result := env.Eval(v[0]).String()
			if result != expr.Result {
				t.Errorf("test %d %q: expr %d: expected result %s (got %s)", i, test.Name, j, expr.Result, result)
			}
		}
	}
}
