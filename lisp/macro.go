package lisp

// expandMacro evaluates the body of the fully applied macro mac in its own
// scope.  A Q-expression result becomes an S-expression so that the caller's
// Eval loop evaluates the expansion in the caller's scope.
func expandMacro(mac *LambdaVal) LVal {
	r := mac.Env.Eval(mac.Body)
	mac.Env.Release()
	if x, ok := r.(*ExprVal); ok && x.typ == LQExpr {
		return SExpr(x.Cells)
	}
	return r
}

func builtinFn(env *LEnv, args *ExprVal) LVal {
	formals, body, lerr := lambdaParts("fn", args)
	if lerr != nil {
		return lerr
	}
	return Lambda(env, formals, body)
}

func builtinMacro(env *LEnv, args *ExprVal) LVal {
	formals, body, lerr := lambdaParts("macro", args)
	if lerr != nil {
		return lerr
	}
	return Macro(env, formals, body)
}

// lambdaParts validates the unevaluated arguments to fn and macro.
func lambdaParts(name string, args *ExprVal) (*ExprVal, LVal, LVal) {
	if len(args.Cells) != 2 {
		return nil, nil, badArgCount(name, 2, len(args.Cells))
	}
	formals, ok := args.Cells[0].(*ExprVal)
	if !ok || (formals.typ != LSExpr && formals.typ != LQExpr) {
		return nil, nil, badArgType(name, 0, args.Cells[0], LSExpr)
	}
	for i, sym := range formals.Cells {
		if sym.Type() != LSymbol {
			return nil, nil, Errorf("function '%s' cannot define non-symbol at position %d", name, i)
		}
		if isVarArg(sym) && i != len(formals.Cells)-2 {
			return nil, nil, Errorf("function format invalid; symbol '%s' not followed by single symbol", VarArgSymbol)
		}
	}
	return formals, args.Cells[1], nil
}
