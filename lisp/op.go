package lisp

// Special operators control the evaluation of their arguments.  Where an
// operator has an expression in tail position it returns that expression
// unevaluated so the Eval loop can evaluate it without growing the stack.

func opIf(env *LEnv, args *ExprVal) LVal {
	if len(args.Cells) != 3 {
		return badArgCount("if", 3, len(args.Cells))
	}
	cond := env.Eval(args.Cells[0])
	if IsError(cond) {
		return cond
	}
	b, ok := cond.(BoolVal)
	if !ok {
		return badArgType("if", 0, cond, LBool)
	}
	if b {
		return tailExpr(env, args.Cells[1])
	}
	return tailExpr(env, args.Cells[2])
}

func opDo(env *LEnv, args *ExprVal) LVal {
	if len(args.Cells) == 0 {
		return Nil()
	}
	last := len(args.Cells) - 1
	for _, expr := range args.Cells[:last] {
		v := env.Eval(expr)
		if IsError(v) {
			return v
		}
	}
	return tailExpr(env, args.Cells[last])
}

// opLet evaluates its bindings in env and returns a fully applied function
// whose scope holds the bindings, so the body is evaluated by the Eval loop.
func opLet(env *LEnv, args *ExprVal) LVal {
	if len(args.Cells) != 2 {
		return badArgCount("let", 2, len(args.Cells))
	}
	bindlist, ok := args.Cells[0].(*ExprVal)
	if !ok || (bindlist.typ != LSExpr && bindlist.typ != LQExpr) {
		return badArgType("let", 0, args.Cells[0], LSExpr)
	}
	type binding struct {
		sym LVal
		val LVal
	}
	bindings := make([]binding, 0, len(bindlist.Cells))
	for i, b := range bindlist.Cells {
		pair, ok := b.(*ExprVal)
		if !ok || len(pair.Cells) != 2 || (pair.typ != LSExpr && pair.typ != LQExpr) {
			return Errorf("function 'let' binding %d is not a pair", i)
		}
		if pair.Cells[0].Type() != LSymbol {
			return Errorf("function 'let' cannot define non-symbol at position %d", i)
		}
		val := env.Eval(pair.Cells[1])
		if IsError(val) {
			return val
		}
		bindings = append(bindings, binding{pair.Cells[0], val})
	}
	scope := &LambdaVal{
		Formals: SExpr(nil),
		Body:    args.Cells[1],
		Env:     env.ForkChild(),
		Applied: true,
	}
	for _, b := range bindings {
		scope.Env.Put(b.sym, b.val)
	}
	return scope
}

func opDefine(env *LEnv, args *ExprVal) LVal {
	return define("define", env, env, args)
}

func opGlobal(env *LEnv, args *ExprVal) LVal {
	return define("global", env, env.root(), args)
}

// define evaluates values in env and binds them in target.  The first argument
// is either a single symbol or a list of symbols matched with the remaining
// arguments.
func define(name string, env *LEnv, target *LEnv, args *ExprVal) LVal {
	if len(args.Cells) < 2 {
		return badArgMin(name, 2, len(args.Cells))
	}
	var syms []LVal
	switch first := args.Cells[0].(type) {
	case SymbolVal:
		if len(args.Cells) != 2 {
			return badArgCount(name, 2, len(args.Cells))
		}
		syms = []LVal{first}
	case *ExprVal:
		if first.typ != LSExpr && first.typ != LQExpr {
			return badArgType(name, 0, first, LSymbol)
		}
		syms = first.Cells
		if len(syms) == 0 {
			return emptyArg(name)
		}
		if len(syms) != len(args.Cells)-1 {
			return Errorf("function '%s' passed %d value(s) for %d symbol(s)",
				name, len(args.Cells)-1, len(syms))
		}
	default:
		return Errorf("function '%s' cannot define non-symbol at position %d", name, 0)
	}
	for i, sym := range syms {
		if sym.Type() != LSymbol {
			return Errorf("function '%s' cannot define non-symbol at position %d", name, i)
		}
		if b, ok := target.Index(sym); ok && b.Locked {
			return Errorf("cannot redefine builtin function '%s'", sym)
		}
	}
	vals, lerr := evalArgs(env, SExpr(args.Cells[1:]))
	if lerr != nil {
		return lerr
	}
	for i := range syms {
		target.Put(syms[i], vals[i])
	}
	return Nil()
}

func opAnd(env *LEnv, args *ExprVal) LVal {
	return shortCircuit("and", env, args, false)
}

func opOr(env *LEnv, args *ExprVal) LVal {
	return shortCircuit("or", env, args, true)
}

// shortCircuit evaluates args until one evaluates to stop.
func shortCircuit(name string, env *LEnv, args *ExprVal, stop bool) LVal {
	if len(args.Cells) == 0 {
		return badArgMin(name, 1, 0)
	}
	for i, c := range args.Cells {
		v := env.Eval(c)
		if IsError(v) {
			return v
		}
		b, ok := v.(BoolVal)
		if !ok {
			return badArgType(name, i, v, LBool)
		}
		if bool(b) == stop {
			return b
		}
	}
	return Bool(!stop)
}

func builtinNot(env *LEnv, args *ExprVal) LVal {
	vals, lerr := evalArgsExactly(env, "not", args, 1)
	if lerr != nil {
		return lerr
	}
	b, ok := vals[0].(BoolVal)
	if !ok {
		return badArgType("not", 0, vals[0], LBool)
	}
	return !b
}
