package lisp

import "io"

// Config is a function that configures a root environment or its runtime.
type Config func(env *LEnv) LVal

// WithMaximumDepth returns a Config that will prevent an execution
// environment from nesting evaluation deeper than n.  Calls in tail position
// do not count towards the depth.  A depth of zero disables the limit.
func WithMaximumDepth(n int) Config {
	return func(env *LEnv) LVal {
		env.Runtime.MaxDepth = n
		return Nil()
	}
}

// WithReader returns a Config that makes environments use r to parse source
// streams.  There is no default Reader for an environment.
func WithReader(r Reader) Config {
	return func(env *LEnv) LVal {
		env.Runtime.Reader = r
		return Nil()
	}
}

// WithStdout returns a Config that makes print and println write to w
// instead of the default, os.Stdout.
func WithStdout(w io.Writer) Config {
	return func(env *LEnv) LVal {
		env.Runtime.Stdout = w
		return Nil()
	}
}

// WithStderr returns a Config that makes environments write debugging output
// to w instead of the default, os.Stderr.
func WithStderr(w io.Writer) Config {
	return func(env *LEnv) LVal {
		env.Runtime.Stderr = w
		return Nil()
	}
}

// Loader is a function that loads definitions into an environment.
type Loader func(env *LEnv) LVal

// WithLibrary returns a Config that runs fn against the root environment,
// typically to load a library of lisp definitions.  WithLibrary should come
// after WithReader when fn parses source.
func WithLibrary(fn Loader) Config {
	return func(env *LEnv) LVal {
		return fn(env.root())
	}
}
