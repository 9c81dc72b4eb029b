// Package lisplib is used to conveniently load the standard library for the
// awl environment
package lisplib

import (
	_ "embed"

	"github.com/voithos/awl/lisp"
	"github.com/voithos/awl/lisp/lisplib/libjson"
	"github.com/voithos/awl/lisp/lisplib/libmath"
	"github.com/voithos/awl/lisp/lisplib/libos"
	"github.com/voithos/awl/lisp/lisplib/libstring"
	"github.com/voithos/awl/parser"
)

//go:embed core.awl
var coreSource string

// LoadLibrary loads the builtin packages and the core library into the root
// of env.  If env has no Reader the awl parser is installed.
func LoadLibrary(env *lisp.LEnv) lisp.LVal {
	if env.Runtime.Reader == nil {
		env.Runtime.Reader = parser.NewReader()
	}
	for _, load := range []lisp.Loader{
		libmath.LoadPackage,
		libstring.LoadPackage,
		libjson.LoadPackage,
		libos.LoadPackage,
		LoadCore,
	} {
		e := load(env)
		if lisp.IsError(e) {
			return e
		}
	}
	return lisp.Nil()
}

// LoadCore evaluates the core library in the root of env.
func LoadCore(env *lisp.LEnv) lisp.LVal {
	for env.Parent != nil {
		env = env.Parent
	}
	e := env.LoadString("core.awl", coreSource)
	if lisp.IsError(e) {
		return e
	}
	return lisp.Nil()
}
