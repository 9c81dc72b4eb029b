package lisp

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func syms(names ...string) *ExprVal {
	cells := make([]LVal, len(names))
	for i, name := range names {
		cells[i] = Symbol(name)
	}
	return SExpr(cells)
}

func sexpr(cells ...LVal) *ExprVal {
	return SExpr(cells)
}

func qexpr(cells ...LVal) *ExprVal {
	return QExpr(cells)
}

func newTestEnv(t *testing.T, config ...Config) *LEnv {
	env, err := NewTopLevelEnv(config...)
	require.NoError(t, err)
	return env
}

func TestCallVariadic(t *testing.T) {
	env := newTestEnv(t)
	f := Lambda(env, syms("a", VarArgSymbol, "rest"), Symbol("rest"))
	assert.Equal(t, "{2 3}", env.Eval(sexpr(f, Int(1), Int(2), sexpr(Symbol("+"), Int(1), Int(2)))).String())
	assert.Equal(t, "{}", env.Eval(sexpr(f, Int(1))).String())

	r := env.Call(f, sexpr(Int(1), Int(2)))
	fun, ok := r.(*LambdaVal)
	require.True(t, ok)
	assert.True(t, fun.Applied)
	assert.Empty(t, fun.Formals.Cells)
	assert.Equal(t, "{2}", fun.Env.Get(Symbol("rest")).String())

	// The called function is not modified.
	assert.Equal(t, "(fn (a & rest) rest)", f.String())
	assert.False(t, f.Applied)
}

func TestCallPartial(t *testing.T) {
	env := newTestEnv(t)
	f := Lambda(env, syms("a", "b"), sexpr(Symbol("+"), Symbol("a"), Symbol("b")))
	r := env.Call(f, sexpr(Int(1)))
	fun, ok := r.(*LambdaVal)
	require.True(t, ok)
	assert.False(t, fun.Applied)
	assert.Equal(t, "(fn (b) (+ a b))", fun.String())
	assert.Equal(t, "3", env.Eval(sexpr(fun, Int(2))).String())

	r = env.Call(f, sexpr(Int(1), Int(2), Int(3)))
	assert.Equal(t, "function passed too many arguments; got 3, expected 2", r.String())
}

func TestCallMalformedVarArg(t *testing.T) {
	env := newTestEnv(t)
	f := Lambda(env, syms("a", VarArgSymbol), Symbol("a"))
	r := env.Call(f, sexpr(Int(1), Int(2)))
	assert.Equal(t, "function format invalid; symbol '&' not followed by single symbol", r.String())
	r = env.Call(f, sexpr(Int(1)))
	assert.Equal(t, "function format invalid; symbol '&' not followed by single symbol", r.String())
}

func TestCallMacro(t *testing.T) {
	env := newTestEnv(t)
	m := Macro(env, syms("x"), Symbol("x"))

	// Symbols and S-expressions are passed to macros quoted.
	assert.Equal(t, "(foo)", env.Call(m, sexpr(Symbol("foo"))).String())
	assert.Equal(t, "((+ 1 2))", env.Call(m, sexpr(sexpr(Symbol("+"), Int(1), Int(2)))).String())
	assert.Equal(t, "5", env.Call(m, sexpr(Int(5))).String())
	assert.Equal(t, "(1 2)", env.Call(m, sexpr(qexpr(Int(1), Int(2)))).String())

	m = Macro(env, syms(VarArgSymbol, "body"), Symbol("body"))
	assert.Equal(t, "(+ 1 2)", env.Call(m, sexpr(Symbol("+"), Int(1), Int(2))).String())
	assert.Equal(t, "3", env.Eval(sexpr(m, Symbol("+"), Int(1), Int(2))).String())
}

func TestCallBuiltin(t *testing.T) {
	env := newTestEnv(t)
	var got *ExprVal
	fn := Builtin("capture", func(env *LEnv, args *ExprVal) LVal {
		got = args
		return Int(7)
	})
	assert.Equal(t, Int(7), env.Call(fn, sexpr(Symbol("x"))))
	require.NotNil(t, got)
	assert.Equal(t, "(x)", got.String())

	assert.Equal(t, "Integer is not callable", env.Call(Int(1), sexpr()).String())
}

func TestEvalQuoted(t *testing.T) {
	env := newTestEnv(t)
	env.Put(Symbol("xs"), qexpr(Int(2), Int(3)))
	q := qexpr(
		Int(1),
		CExpr(Symbol("xs")),
		EExpr(Symbol("xs")),
		qexpr(EExpr(sexpr(Symbol("+"), Int(1), Int(1)))),
	)
	assert.Equal(t, "{1 2 3 {2 3} {2}}", env.Eval(q).String())
	assert.Equal(t, `{1 @xs \xs {\(+ 1 1)}}`, q.String())

	v := env.Eval(EExpr(Int(1)))
	assert.Equal(t, "E-Expression must be contained inside a quoted expression", v.String())
	v = env.Eval(CExpr(Int(1)))
	assert.Equal(t, "C-Expression must be contained inside a quoted expression", v.String())
}

func TestEvalAbort(t *testing.T) {
	env := newTestEnv(t)
	env.Runtime.RequestAbort()
	v := env.Eval(Int(1))
	assert.True(t, errors.Is(GoError(v), ErrAborted))
	assert.Equal(t, "evaluation aborted", v.String())

	// The request is consumed by the aborted evaluation.
	assert.Equal(t, Int(1), env.Eval(Int(1)))

	assert.False(t, env.Runtime.ClearAbort())
	env.Runtime.RequestAbort()
	assert.True(t, env.Runtime.ClearAbort())
	assert.Equal(t, Int(1), env.Eval(Int(1)))
}

func TestEvalAbortLoop(t *testing.T) {
	env := newTestEnv(t)
	env.Put(Symbol("loop"), Lambda(env, syms(), sexpr(Symbol("loop"))))
	timer := time.AfterFunc(10*time.Millisecond, env.Runtime.RequestAbort)
	defer timer.Stop()
	v := env.Eval(sexpr(Symbol("loop")))
	assert.True(t, errors.Is(GoError(v), ErrAborted))
	assert.Equal(t, 0, env.Runtime.Depth())
}

func TestEvalDepth(t *testing.T) {
	env := newTestEnv(t, WithMaximumDepth(20))

	// (define deep (fn () (+ 1 (deep))))
	deep := Lambda(env, syms(), sexpr(Symbol("+"), Int(1), sexpr(Symbol("deep"))))
	env.Put(Symbol("deep"), deep)
	v := env.Eval(sexpr(Symbol("deep")))
	assert.Equal(t, "maximum evaluation depth exceeded (20)", v.String())
	assert.Equal(t, 0, env.Runtime.Depth())

	// (define count (fn (n) (if (== n 0) :done (count (- n 1)))))
	count := Lambda(env, syms("n"), sexpr(
		Symbol("if"),
		sexpr(Symbol("=="), Symbol("n"), Int(0)),
		QSymbol("done"),
		sexpr(Symbol("count"), sexpr(Symbol("-"), Symbol("n"), Int(1))),
	))
	env.Put(Symbol("count"), count)
	v = env.Eval(sexpr(Symbol("count"), Int(1000)))
	assert.Equal(t, ":done", v.String())
	assert.Equal(t, 0, env.Runtime.Depth())
}

func TestEvalAll(t *testing.T) {
	env := newTestEnv(t)
	v := env.EvalAll([]LVal{
		sexpr(Symbol("define"), Symbol("x"), Int(1)),
		sexpr(Symbol("error"), String("stop")),
		sexpr(Symbol("define"), Symbol("x"), Int(2)),
	})
	assert.Equal(t, "stop", v.String())
	assert.Equal(t, Int(1), env.Get(Symbol("x")))
	assert.Equal(t, "{}", env.EvalAll(nil).String())
}
