package lisp

import "fmt"

// Eval evaluates v in the context (scope) of env and returns the resulting
// LVal.
//
// Eval is a trampoline.  Calls in tail position, the expressions selected by
// control builtins like if and do, and macro expansions are evaluated by the
// loop in Eval rather than by a recursive call.
func (env *LEnv) Eval(v LVal) LVal {
	rt := env.Runtime
	if !rt.enter() {
		rt.leave()
		return Errorf("maximum evaluation depth exceeded (%d)", rt.MaxDepth)
	}
	defer rt.leave()

	// owned is a scope created by the loop for a tail call.
	var owned *LEnv
	defer func() { owned.Release() }()

	for {
		if rt.aborted() {
			return Error(ErrAborted)
		}
		switch x := v.(type) {
		case SymbolVal:
			return env.Get(x)
		case *ExprVal:
			switch x.typ {
			case LSExpr:
				r := env.evalSExpr(x)
				switch r := r.(type) {
				case SymbolVal:
					v = r
					continue
				case *ExprVal:
					if r.typ == LSExpr {
						v = r
						continue
					}
				case *LambdaVal:
					if r.Applied && !r.Macro {
						next := r.Env.Copy()
						r.Env.Release()
						owned.Release()
						owned = next
						env = next
						v = r.Body
						continue
					}
				}
				return r
			case LQExpr:
				return env.evalQuoted(x)
			default:
				return Errorf("%s must be contained inside a quoted expression", TypeName(x.typ))
			}
		default:
			return v
		}
	}
}

// EvalAll evaluates each expression in exprs in order and returns the last
// value.  Evaluation stops at the first error.
func (env *LEnv) EvalAll(exprs []LVal) LVal {
	var ret LVal = Nil()
	for _, expr := range exprs {
		ret = env.Eval(expr)
		if IsError(ret) {
			return ret
		}
	}
	return ret
}

func (env *LEnv) evalSExpr(s *ExprVal) LVal {
	if len(s.Cells) == 0 {
		return Errorf("cannot evaluate empty %s", TypeName(LSExpr))
	}
	f := env.Eval(s.Cells[0])
	if IsError(f) {
		return f
	}
	if !IsCallable(f) {
		return Errorf("cannot evaluate %s; incorrect type for arg 0; got %s, expected %s",
			TypeName(LSExpr), TypeName(f.Type()), TypeName(LLambda))
	}
	return env.Call(f, SExpr(s.Cells[1:]))
}

// Call invokes fun with args.  Builtins receive args unevaluated.  Function
// arguments are evaluated in env and bound in a copy of fun, and the copy is
// returned.  A returned function with all of its formals bound is marked
// Applied and its body is evaluated by the caller (see Eval).  Macros are
// expanded as soon as all formals are bound.
func (env *LEnv) Call(fun LVal, args *ExprVal) LVal {
	switch f := fun.(type) {
	case *BuiltinVal:
		return f.Fn(env, args)
	case *LambdaVal:
		return env.callLambda(f.Copy().(*LambdaVal), args)
	}
	return Errorf("%s is not callable", TypeName(fun.Type()))
}

func (env *LEnv) callLambda(f *LambdaVal, args *ExprVal) LVal {
	given := len(args.Cells)
	total := len(f.Formals.Cells)
	cells := args.Cells
	for len(cells) > 0 {
		if len(f.Formals.Cells) == 0 {
			return Errorf("function passed too many arguments; got %d, expected %d", given, total)
		}
		sym := f.Formals.Cells[0]
		f.Formals.Cells = f.Formals.Cells[1:]
		if isVarArg(sym) {
			if len(f.Formals.Cells) != 1 {
				return Errorf("function format invalid; symbol '%s' not followed by single symbol", VarArgSymbol)
			}
			rest := make([]LVal, 0, len(cells))
			for _, c := range cells {
				if f.Macro {
					rest = append(rest, c)
					continue
				}
				val := env.Eval(c)
				if IsError(val) {
					return val
				}
				rest = append(rest, val)
			}
			f.Env.Put(f.Formals.Cells[0], QExpr(rest))
			f.Formals.Cells = nil
			break
		}
		arg := cells[0]
		cells = cells[1:]
		if f.Macro {
			switch arg.Type() {
			case LSymbol, LSExpr:
				arg = QExpr([]LVal{arg})
			}
		}
		val := env.Eval(arg)
		if IsError(val) {
			return val
		}
		f.Env.Put(sym, val)
	}
	if len(f.Formals.Cells) > 0 && isVarArg(f.Formals.Cells[0]) {
		if len(f.Formals.Cells) != 2 {
			return Errorf("function format invalid; symbol '%s' not followed by single symbol", VarArgSymbol)
		}
		f.Env.Put(f.Formals.Cells[1], Nil())
		f.Formals.Cells = nil
	}
	if len(f.Formals.Cells) > 0 {
		return f
	}
	f.Applied = true
	if f.Macro {
		return expandMacro(f)
	}
	return f
}

// evalQuoted walks a Q-expression evaluating escapes and splices.
func (env *LEnv) evalQuoted(q *ExprVal) LVal {
	cells := make([]LVal, 0, len(q.Cells))
	for _, c := range q.Cells {
		x, ok := c.(*ExprVal)
		if !ok {
			cells = append(cells, c)
			continue
		}
		switch x.typ {
		case LEExpr:
			val := env.Eval(x.Inner())
			if IsError(val) {
				return val
			}
			cells = append(cells, val)
		case LCExpr:
			val := env.Eval(x.Inner())
			if IsError(val) {
				return val
			}
			if IsQExpr(val) {
				cells = append(cells, val.(*ExprVal).Cells...)
			} else {
				cells = append(cells, val)
			}
		default:
			val := env.evalQuoted(x)
			if IsError(val) {
				return val
			}
			cells = append(cells, val)
		}
	}
	return &ExprVal{typ: q.typ, Cells: cells}
}

// evalArgs evaluates each argument in env.  The first error encountered is
// returned as lerr.
func evalArgs(env *LEnv, args *ExprVal) (vals []LVal, lerr LVal) {
	vals = make([]LVal, len(args.Cells))
	for i, c := range args.Cells {
		vals[i] = env.Eval(c)
		if IsError(vals[i]) {
			return nil, vals[i]
		}
	}
	return vals, nil
}

func evalArgsExactly(env *LEnv, fun string, args *ExprVal, n int) ([]LVal, LVal) {
	if len(args.Cells) != n {
		return nil, badArgCount(fun, n, len(args.Cells))
	}
	return evalArgs(env, args)
}

func evalArgsMin(env *LEnv, fun string, args *ExprVal, n int) ([]LVal, LVal) {
	if len(args.Cells) < n {
		return nil, badArgMin(fun, n, len(args.Cells))
	}
	return evalArgs(env, args)
}

// tailExpr returns v for the trampoline when v is a symbol or S-expression
// and otherwise evaluates it in env.
func tailExpr(env *LEnv, v LVal) LVal {
	switch v.Type() {
	case LSymbol, LSExpr:
		return v
	}
	return env.Eval(v)
}

func (env *LEnv) String() string {
	return fmt.Sprintf("env%d", env.ID)
}

// EvalArgs evaluates the arguments of the builtin fun, which takes exactly n
// arguments.  The first error encountered is returned as lerr.
func EvalArgs(env *LEnv, fun string, args *ExprVal, n int) (vals []LVal, lerr LVal) {
	return evalArgsExactly(env, fun, args, n)
}

// EvalArgsMin evaluates the arguments of the builtin fun, which takes n or
// more arguments.
func EvalArgsMin(env *LEnv, fun string, args *ExprVal, n int) (vals []LVal, lerr LVal) {
	return evalArgsMin(env, fun, args, n)
}
