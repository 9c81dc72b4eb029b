// Package libutil holds helpers shared by the standard library packages.
package libutil

import "github.com/voithos/awl/lisp"

// Builtin is a named builtin function belonging to a library package.
type Builtin struct {
	name string
	fun  lisp.LBuiltin
}

// Function returns a Builtin binding fun to name.
func Function(name string, fun lisp.LBuiltin) *Builtin {
	return &Builtin{name, fun}
}

// Name implements lisp.LBuiltinDef.
func (fun *Builtin) Name() string {
	return fun.name
}

// Eval implements lisp.LBuiltinDef.
func (fun *Builtin) Eval(env *lisp.LEnv, args *lisp.ExprVal) lisp.LVal {
	return fun.fun(env, args)
}

// AddBuiltins binds each of funs in the root of env as locked bindings.  An
// error is returned if any name is already bound, in which case no builtins
// are added.
func AddBuiltins(env *lisp.LEnv, funs []*Builtin) lisp.LVal {
	root := Root(env)
	defs := make([]lisp.LBuiltinDef, len(funs))
	for i, fn := range funs {
		if _, ok := root.Index(lisp.Symbol(fn.name)); ok {
			return lisp.Errorf("cannot redefine builtin function '%s'", fn.name)
		}
		defs[i] = fn
	}
	if len(defs) > 0 {
		root.AddBuiltins(defs...)
	}
	return lisp.Nil()
}

// Root returns the top level environment containing env.
func Root(env *lisp.LEnv) *lisp.LEnv {
	for env.Parent != nil {
		env = env.Parent
	}
	return env
}

// StringArg returns the string v passed as argument i of fun.
func StringArg(fun string, i int, v lisp.LVal) (string, lisp.LVal) {
	s, ok := v.(lisp.StringVal)
	if !ok {
		return "", lisp.Errorf("function '%s' passed incorrect type for arg %d; got %s, expected %s",
			fun, i, lisp.TypeName(v.Type()), lisp.TypeName(lisp.LString))
	}
	return string(s), nil
}
