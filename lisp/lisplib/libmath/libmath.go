// Package libmath provides math builtins.
package libmath

import (
	"math"

	"github.com/voithos/awl/lisp"
	"github.com/voithos/awl/lisp/lisplib/internal/libutil"
)

// LoadPackage adds the math builtins to env as locked bindings.
func LoadPackage(env *lisp.LEnv) lisp.LVal {
	env.PutGlobal(lisp.Symbol("inf"), lisp.Float(math.Inf(1)))
	env.PutGlobal(lisp.Symbol("-inf"), lisp.Float(math.Inf(-1)))
	return libutil.AddBuiltins(env, builtins)
}

var builtins = []*libutil.Builtin{
	libutil.Function("ceil", builtinCeil),
	libutil.Function("floor", builtinFloor),
	libutil.Function("sqrt", builtinSqrt),
	libutil.Function("exp", builtinExp),
	libutil.Function("ln", builtinLn),
	libutil.Function("abs", builtinAbs),
	libutil.Function("min", builtinMin),
	libutil.Function("max", builtinMax),
}

// number evaluates the single argument of fun.
func number(env *lisp.LEnv, fun string, args *lisp.ExprVal) (lisp.LVal, lisp.LVal) {
	vals, lerr := lisp.EvalArgs(env, fun, args, 1)
	if lerr != nil {
		return nil, lerr
	}
	switch vals[0].(type) {
	case lisp.IntVal, lisp.FloatVal:
		return vals[0], nil
	}
	return nil, notNumber(fun, 0, vals[0])
}

func notNumber(fun string, i int, v lisp.LVal) lisp.LVal {
	return lisp.Errorf("function '%s' passed incorrect type for arg %d; got %s, expected %s",
		fun, i, lisp.TypeName(v.Type()), lisp.TypeName(lisp.LFloat))
}

func toFloat(x lisp.LVal) float64 {
	switch x := x.(type) {
	case lisp.IntVal:
		return float64(x)
	case lisp.FloatVal:
		return float64(x)
	}
	return math.NaN()
}

func builtinCeil(env *lisp.LEnv, args *lisp.ExprVal) lisp.LVal {
	x, lerr := number(env, "ceil", args)
	if lerr != nil {
		return lerr
	}
	if x.Type() == lisp.LInt {
		return x
	}
	return lisp.Float(math.Ceil(toFloat(x)))
}

func builtinFloor(env *lisp.LEnv, args *lisp.ExprVal) lisp.LVal {
	x, lerr := number(env, "floor", args)
	if lerr != nil {
		return lerr
	}
	if x.Type() == lisp.LInt {
		return x
	}
	return lisp.Float(math.Floor(toFloat(x)))
}

func builtinSqrt(env *lisp.LEnv, args *lisp.ExprVal) lisp.LVal {
	x, lerr := number(env, "sqrt", args)
	if lerr != nil {
		return lerr
	}
	if toFloat(x) < 0 {
		return lisp.Errorf("function 'sqrt' passed a negative number")
	}
	return lisp.Float(math.Sqrt(toFloat(x)))
}

func builtinExp(env *lisp.LEnv, args *lisp.ExprVal) lisp.LVal {
	x, lerr := number(env, "exp", args)
	if lerr != nil {
		return lerr
	}
	return lisp.Float(math.Exp(toFloat(x)))
}

func builtinLn(env *lisp.LEnv, args *lisp.ExprVal) lisp.LVal {
	x, lerr := number(env, "ln", args)
	if lerr != nil {
		return lerr
	}
	if toFloat(x) <= 0 {
		return lisp.Errorf("function 'ln' passed a non-positive number")
	}
	return lisp.Float(math.Log(toFloat(x)))
}

func builtinAbs(env *lisp.LEnv, args *lisp.ExprVal) lisp.LVal {
	x, lerr := number(env, "abs", args)
	if lerr != nil {
		return lerr
	}
	if i, ok := x.(lisp.IntVal); ok {
		if i < 0 {
			return -i
		}
		return i
	}
	return lisp.Float(math.Abs(toFloat(x)))
}

func builtinMin(env *lisp.LEnv, args *lisp.ExprVal) lisp.LVal {
	return extremum(env, "min", args, func(a, b float64) bool { return a < b })
}

func builtinMax(env *lisp.LEnv, args *lisp.ExprVal) lisp.LVal {
	return extremum(env, "max", args, func(a, b float64) bool { return a > b })
}

// extremum returns the argument x for which better(x, y) holds against every
// other argument y.
func extremum(env *lisp.LEnv, fun string, args *lisp.ExprVal, better func(a, b float64) bool) lisp.LVal {
	if len(args.Cells) == 0 {
		return lisp.Errorf("function '%s' takes 1 or more arguments; 0 given", fun)
	}
	var best lisp.LVal
	for i, c := range args.Cells {
		v := env.Eval(c)
		if lisp.IsError(v) {
			return v
		}
		switch v.(type) {
		case lisp.IntVal, lisp.FloatVal:
		default:
			return notNumber(fun, i, v)
		}
		if best == nil || better(toFloat(v), toFloat(best)) {
			best = v
		}
	}
	return best
}
