// Package repl implements the interactive awl read-eval-print loop.
package repl

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/chzyer/readline"
	"github.com/voithos/awl/lisp"
	"github.com/voithos/awl/parser"
)

// DefaultPrompt is the prompt used when no other prompt is configured.
const DefaultPrompt = "awl> "

// Option configures RunRepl.
type Option func(*config)

type config struct {
	prompt      string
	historyFile string
	stdin       io.ReadCloser
	stdout      io.Writer
	stderr      io.Writer
}

// WithPrompt sets the primary prompt.  Continuation lines are prompted with
// whitespace of the same width.
func WithPrompt(prompt string) Option {
	return func(c *config) {
		c.prompt = prompt
	}
}

// WithHistoryFile persists input history to path.
func WithHistoryFile(path string) Option {
	return func(c *config) {
		c.historyFile = path
	}
}

// WithStdin reads input from r instead of os.Stdin.
func WithStdin(r io.ReadCloser) Option {
	return func(c *config) {
		c.stdin = r
	}
}

// WithStdout writes results to w instead of os.Stdout.
func WithStdout(w io.Writer) Option {
	return func(c *config) {
		c.stdout = w
	}
}

// WithStderr writes errors to w instead of os.Stderr.
func WithStderr(w io.Writer) Option {
	return func(c *config) {
		c.stderr = w
	}
}

// RunRepl runs a repl evaluating expressions in env until the input is
// exhausted or the user presses Ctrl+D.
func RunRepl(env *lisp.LEnv, opts ...Option) error {
	c := &config{
		prompt: DefaultPrompt,
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, opt := range opts {
		opt(c)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          c.prompt,
		HistoryFile:     c.historyFile,
		InterruptPrompt: "^C",
		Stdin:           c.stdin,
		Stdout:          c.stdout,
		Stderr:          c.stderr,
	})
	if err != nil {
		return err
	}
	defer rl.Close()
	contPrompt := strings.Repeat(" ", len(c.prompt)) // prompt had better be ascii...

	fmt.Fprintf(c.stdout, "awl %s\n", lisp.Version)
	fmt.Fprintln(c.stdout, "Ctrl+D to exit")

	s := newSession(env, c.stdout, c.stderr)
	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			s.reset()
			rl.SetPrompt(c.prompt)
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if s.feed(line) {
			rl.SetPrompt(contPrompt)
		} else {
			rl.SetPrompt(c.prompt)
		}
	}
}

// session accumulates input lines until they form a complete expression and
// then evaluates it.
type session struct {
	env *lisp.LEnv
	out io.Writer
	err io.Writer
	buf []byte
}

func newSession(env *lisp.LEnv, out, err io.Writer) *session {
	return &session{env: env, out: out, err: err}
}

// reset drops any buffered partial input.
func (s *session) reset() {
	s.buf = nil
}

// feed adds line to the pending input.  When the input is complete it is
// evaluated and the result printed.  feed reports whether more input is
// required.
func (s *session) feed(line string) bool {
	if len(s.buf) > 0 {
		s.buf = append(s.buf, '\n')
	}
	s.buf = append(s.buf, line...)
	if parser.Incomplete(s.buf) {
		return true
	}
	text := s.buf
	s.buf = nil

	exprs, n, err := parser.ParseLVal(text)
	if err != nil {
		s.errorf("%v", &parser.SyntaxError{Offset: n})
		return false
	}
	switch len(exprs) {
	case 0:
		return false
	case 1:
	default:
		s.errorf("too many expressions in REPL; only one is allowed")
		return false
	}
	v := s.eval(exprs[0])
	if lisp.IsError(v) {
		s.errorf("%s", v)
		return false
	}
	fmt.Fprintln(s.out, v)
	return false
}

// eval evaluates v.  An interrupt received during evaluation aborts it.
// eval evaluates v, turning SIGINT into an abort request for the duration of
// the evaluation.  Abort requests left over from before or after the
// evaluation are dropped.
func (s *session) eval(v lisp.LVal) lisp.LVal {
	rt := s.env.Runtime
	rt.ClearAbort()
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	done := make(chan struct{})
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		select {
		case <-sig:
			rt.RequestAbort()
		case <-done:
		}
	}()
	ret := s.env.Eval(v)
	signal.Stop(sig)
	close(done)
	<-stopped
	rt.ClearAbort()
	return ret
}

func (s *session) errorf(format string, v ...interface{}) {
	fmt.Fprintf(s.err, "Error: "+format+"\n", v...)
}
