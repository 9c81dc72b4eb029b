package lisp

import (
	"io"
	"os"
	"sync/atomic"
)

// DefaultMaxDepth is the default limit on nested (non-tail) evaluation.
const DefaultMaxDepth = 50000

// Runtime is state shared by every environment descending from a top level
// environment.
type Runtime struct {
	Reader Reader
	Stdout io.Writer
	Stderr io.Writer
	// MaxDepth limits nested evaluation.  Tail calls do not increase the
	// depth.  A MaxDepth of zero means no limit.
	MaxDepth int

	depth int
	abort int32
}

// StandardRuntime returns a Runtime writing to the process's standard
// streams.
func StandardRuntime() *Runtime {
	return &Runtime{
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		MaxDepth: DefaultMaxDepth,
	}
}

// RequestAbort causes the evaluation in progress to stop at its next
// trampoline step and return an error.  RequestAbort is safe to call from any
// goroutine, for example a signal handler.
func (rt *Runtime) RequestAbort() {
	atomic.StoreInt32(&rt.abort, 1)
}

// ClearAbort drops a pending abort request and reports whether there was one.
func (rt *Runtime) ClearAbort() bool {
	return rt.aborted()
}

// aborted consumes a pending abort request.
func (rt *Runtime) aborted() bool {
	return atomic.CompareAndSwapInt32(&rt.abort, 1, 0)
}

// Depth returns the current nesting of Eval calls.
func (rt *Runtime) Depth() int {
	return rt.depth
}

func (rt *Runtime) enter() bool {
	rt.depth++
	return rt.MaxDepth <= 0 || rt.depth <= rt.MaxDepth
}

func (rt *Runtime) leave() {
	rt.depth--
}

func (rt *Runtime) stdout() io.Writer {
	if rt.Stdout == nil {
		return os.Stdout
	}
	return rt.Stdout
}

func (rt *Runtime) stderr() io.Writer {
	if rt.Stderr == nil {
		return os.Stderr
	}
	return rt.Stderr
}
