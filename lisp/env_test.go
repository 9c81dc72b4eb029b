package lisp

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticReader []LVal

func (r staticReader) Read(name string, _ io.Reader) ([]LVal, error) {
	return r, nil
}

type errReader struct{ err error }

func (r errReader) Read(name string, _ io.Reader) ([]LVal, error) {
	return nil, r.err
}

func TestEnvLookup(t *testing.T) {
	root := NewEnv(nil)
	assert.True(t, root.TopLevel)
	child := root.ForkChild()
	assert.False(t, child.TopLevel)
	assert.Same(t, root.Runtime, child.Runtime)

	root.Put(Symbol("x"), Int(1))
	assert.Equal(t, Int(1), child.Get(Symbol("x")))
	child.Put(Symbol("x"), Int(2))
	assert.Equal(t, Int(2), child.Get(Symbol("x")))
	assert.Equal(t, Int(1), root.Get(Symbol("x")))
	assert.Equal(t, Int(1), child.GetGlobal(Symbol("x")))

	lerr := child.Get(Symbol("y"))
	assert.True(t, IsError(lerr))
	assert.Equal(t, "unbound symbol 'y'", lerr.String())

	child.PutGlobal(Symbol("g"), Int(3))
	_, ok := root.Index(Symbol("g"))
	assert.True(t, ok)
	_, ok = child.Index(Symbol("g"))
	assert.False(t, ok)
	assert.Equal(t, Int(3), child.Get(Symbol("g")))
}

func TestEnvGetCopies(t *testing.T) {
	env := NewEnv(nil)
	env.Put(Symbol("q"), QExpr([]LVal{Int(1), Int(2)}))
	v := env.Get(Symbol("q")).(*ExprVal)
	v.Cells[0] = Int(5)
	assert.Equal(t, "{1 2}", env.Get(Symbol("q")).String())
}

func TestEnvCopy(t *testing.T) {
	root := NewEnv(nil)
	parent := root.ForkChild()
	assert.Equal(t, 1, parent.Refs())
	child := parent.ForkChild()
	assert.Equal(t, 2, parent.Refs())

	child.Put(Symbol("q"), QExpr([]LVal{Int(1)}))
	cp := child.Copy()
	assert.Equal(t, 3, parent.Refs())
	assert.Same(t, parent, cp.Parent)
	assert.NotEqual(t, child.ID, cp.ID)

	cp.Put(Symbol("q"), Int(2))
	assert.Equal(t, "{1}", child.Get(Symbol("q")).String())
	assert.Equal(t, "2", cp.Get(Symbol("q")).String())
}

func TestEnvRelease(t *testing.T) {
	root := NewEnv(nil)
	root.Put(Symbol("r"), Int(0))
	parent := root.ForkChild()
	parent.Put(Symbol("x"), Int(1))
	child := parent.ForkChild()
	cp := child.Copy()

	cp.Release()
	assert.Equal(t, 0, cp.Refs())
	assert.Nil(t, cp.Parent)
	assert.Equal(t, 2, parent.Refs())

	child.Release()
	assert.Equal(t, 1, parent.Refs())
	assert.Equal(t, Int(1), parent.Get(Symbol("x")))

	parent.Release()
	assert.Equal(t, 0, parent.Refs())
	assert.Empty(t, parent.Scope)

	// Releasing again is a no-op.
	parent.Release()
	assert.Equal(t, 0, parent.Refs())

	root.Release()
	assert.Equal(t, Int(0), root.Get(Symbol("r")))
}

func TestNewEnvParentRef(t *testing.T) {
	root := NewEnv(nil)
	parent := root.ForkChild()
	parent.Put(Symbol("x"), Int(1))

	child := NewEnv(parent)
	assert.Equal(t, 2, parent.Refs())
	child.Release()
	assert.Equal(t, 1, parent.Refs())
	assert.Equal(t, Int(1), parent.Get(Symbol("x")))
}

func TestRegisterDefaultBuiltin(t *testing.T) {
	saved := userBuiltins
	defer func() { userBuiltins = saved }()

	RegisterDefaultBuiltin("answer", func(env *LEnv, args *ExprVal) LVal {
		return Int(42)
	})
	names := make(map[string]bool)
	for _, def := range DefaultBuiltins() {
		names[def.Name()] = true
	}
	assert.True(t, names["answer"])

	env, err := NewTopLevelEnv()
	require.NoError(t, err)
	b, ok := env.Index(Symbol("answer"))
	require.True(t, ok)
	assert.True(t, b.Locked)
	assert.Equal(t, Int(42), env.Eval(SExpr([]LVal{Symbol("answer")})))
}

func TestEnvBuiltins(t *testing.T) {
	env := NewEnv(nil)
	fn := func(env *LEnv, args *ExprVal) LVal { return Nil() }
	env.AddBuiltin("f", fn)
	b, ok := env.Index(Symbol("f"))
	require.True(t, ok)
	assert.True(t, b.Locked)
	assert.Panics(t, func() { env.AddBuiltin("f", fn) })

	env.Put(Symbol("v"), Int(1))
	b, ok = env.Index(Symbol("v"))
	require.True(t, ok)
	assert.False(t, b.Locked)
}

func TestNewTopLevelEnv(t *testing.T) {
	env, err := NewTopLevelEnv(WithMaximumDepth(10))
	require.NoError(t, err)
	assert.Equal(t, 10, env.Runtime.MaxDepth)
	for _, name := range []string{"if", "define", "fn", "+", "head", "slice"} {
		b, ok := env.Index(Symbol(name))
		if assert.True(t, ok, name) {
			assert.True(t, b.Locked, name)
		}
	}

	_, err = NewTopLevelEnv(WithLibrary(func(env *LEnv) LVal {
		return Errorf("library failed")
	}))
	assert.EqualError(t, err, "library failed")
}

func TestEnvLoad(t *testing.T) {
	env, err := NewTopLevelEnv()
	require.NoError(t, err)
	lerr := env.LoadString("test.awl", "")
	assert.True(t, IsError(lerr))
	assert.Contains(t, lerr.String(), "no reader for environment")

	env.Runtime.Reader = staticReader{
		SExpr([]LVal{Symbol("define"), Symbol("x"), Int(2)}),
		SExpr([]LVal{Symbol("+"), Symbol("x"), Int(1)}),
	}
	assert.Equal(t, "3", env.LoadString("test.awl", "").String())
	assert.Equal(t, Int(2), env.Get(Symbol("x")))

	readerr := errors.New("bad input")
	env.Runtime.Reader = errReader{readerr}
	lerr = env.LoadString("test.awl", "")
	assert.Equal(t, "test.awl: bad input", lerr.String())
	assert.True(t, errors.Is(GoError(lerr), readerr))
}
