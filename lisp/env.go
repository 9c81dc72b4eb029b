package lisp

import (
	"bytes"
	"fmt"
	"io"
	"sync/atomic"
)

var envCount uint64

func getEnvID() uint {
	return uint(atomic.AddUint64(&envCount, 1))
}

// Binding is an entry in an LEnv's scope.  Locked bindings cannot be
// redefined by lisp code.
type Binding struct {
	Value  LVal
	Locked bool
}

// LEnv is a lisp environment.
type LEnv struct {
	ID       uint
	Scope    map[string]*Binding
	Parent   *LEnv
	Runtime  *Runtime
	TopLevel bool

	// refs counts the closures and copies sharing env as a parent, plus one
	// for the owner that created env.
	refs int
}

// NewEnv returns initializes and returns a new LEnv.  An LEnv with a nil
// parent is a top level environment.  A child holds a reference on parent
// until it is released.
func NewEnv(parent *LEnv) *LEnv {
	var runtime *Runtime
	if parent != nil {
		parent.refs++
		runtime = parent.Runtime
	} else {
		runtime = StandardRuntime()
	}
	return &LEnv{
		ID:       getEnvID(),
		Scope:    make(map[string]*Binding),
		Parent:   parent,
		Runtime:  runtime,
		TopLevel: parent == nil,
		refs:     1,
	}
}

// NewTopLevelEnv returns a top level environment containing the default
// builtins, configured by config.  NewTopLevelEnv does not load the core
// library, see WithLibrary.
func NewTopLevelEnv(config ...Config) (*LEnv, error) {
	env := NewEnv(nil)
	env.AddBuiltins()
	for _, fn := range config {
		lerr := fn(env)
		if err := GoError(lerr); err != nil {
			return nil, err
		}
	}
	return env, nil
}

// ForkChild returns a new empty LEnv whose parent is env.
func (env *LEnv) ForkChild() *LEnv {
	return NewEnv(env)
}

// Copy returns a new LEnv with a copy of env.Scope but a shared parent (not
// quite a deep copy).
func (env *LEnv) Copy() *LEnv {
	if env == nil {
		return nil
	}
	cp := &LEnv{
		ID:       getEnvID(),
		Scope:    make(map[string]*Binding, len(env.Scope)),
		Parent:   env.Parent,
		Runtime:  env.Runtime,
		TopLevel: env.TopLevel,
		refs:     1,
	}
	for k, b := range env.Scope {
		cp.Scope[k] = &Binding{Value: b.Value.Copy(), Locked: b.Locked}
	}
	if cp.Parent != nil {
		cp.Parent.refs++
	}
	return cp
}

// Refs returns the number of references held on env.
func (env *LEnv) Refs() int {
	return env.refs
}

// Release drops a reference on env.  When no references remain the bindings
// in env are dropped and env releases its parent.  Top level environments are
// never released.
func (env *LEnv) Release() {
	if env == nil || env.TopLevel || env.refs <= 0 {
		return
	}
	env.refs--
	if env.refs > 0 {
		return
	}
	for k := range env.Scope {
		delete(env.Scope, k)
	}
	parent := env.Parent
	env.Parent = nil
	parent.Release()
}

// Get takes an LSymbol k and returns the LVal it is bound to in env.  The
// returned value is a copy.
func (env *LEnv) Get(k LVal) LVal {
	name, ok := symbolName(k)
	if !ok {
		return Errorf("cannot look up %s", TypeName(k.Type()))
	}
	for e := env; e != nil; e = e.Parent {
		b, ok := e.Scope[name]
		if ok {
			return b.Value.Copy()
		}
	}
	return Errorf("unbound symbol '%s'", name)
}

// Put takes an LSymbol k and binds it to v in env, replacing any existing
// local binding.
func (env *LEnv) Put(k, v LVal) {
	env.put(k, v, false)
}

func (env *LEnv) put(k, v LVal, locked bool) {
	name, ok := symbolName(k)
	if !ok {
		return
	}
	if v == nil {
		panic("nil value")
	}
	b, ok := env.Scope[name]
	if ok {
		b.Value = v.Copy()
		b.Locked = locked
		return
	}
	env.Scope[name] = &Binding{Value: v.Copy(), Locked: locked}
}

// GetGlobal takes LSymbol k and returns the value it is bound to in the root
// environment (global scope).
func (env *LEnv) GetGlobal(k LVal) LVal {
	return env.root().Get(k)
}

// PutGlobal takes an LSymbol k and binds it to v in root environment (global
// scope).
func (env *LEnv) PutGlobal(k, v LVal) {
	env.root().Put(k, v)
}

// Index returns the binding of k in env's local scope, ignoring parents.
func (env *LEnv) Index(k LVal) (*Binding, bool) {
	name, ok := symbolName(k)
	if !ok {
		return nil, false
	}
	b, ok := env.Scope[name]
	return b, ok
}

func (env *LEnv) root() *LEnv {
	for env.Parent != nil {
		env = env.Parent
	}
	return env
}

// AddBuiltins binds the given funs to their names in env as locked bindings.
// When called with no arguments AddBuiltins adds the DefaultBuiltins to env.
func (env *LEnv) AddBuiltins(funs ...LBuiltinDef) {
	if len(funs) == 0 {
		funs = DefaultBuiltins()
	}
	for _, f := range funs {
		env.AddBuiltin(f.Name(), f.Eval)
	}
}

// AddBuiltin binds fn to name in env as a locked binding.  AddBuiltin panics
// if name is already bound in env.
func (env *LEnv) AddBuiltin(name string, fn LBuiltin) {
	k := Symbol(name)
	if _, exists := env.Index(k); exists {
		panic("symbol already defined: " + name)
	}
	env.put(k, Builtin(name, fn), true)
}

// Load reads LVals from r using the runtime's Reader and evaluates them in
// env.  The value of the last expression is returned.
func (env *LEnv) Load(name string, r io.Reader) LVal {
	reader := env.Runtime.Reader
	if reader == nil {
		return Errorf("no reader for environment: %d", env.ID)
	}
	exprs, err := reader.Read(name, r)
	if err != nil {
		return Error(fmt.Errorf("%s: %w", name, err))
	}
	return env.EvalAll(exprs)
}

// LoadString evaluates the expressions in source.
func (env *LEnv) LoadString(name, source string) LVal {
	return env.Load(name, bytes.NewReader([]byte(source)))
}

func symbolName(k LVal) (string, bool) {
	if sym, ok := k.(SymbolVal); ok {
		return string(sym), true
	}
	return "", false
}
