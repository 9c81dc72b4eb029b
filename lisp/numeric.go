package lisp

import "math"

// number is an IntVal or FloatVal promoted for a binary operation.
type number struct {
	float bool
	i     int64
	f     float64
}

func toNumber(v LVal) (number, bool) {
	switch x := v.(type) {
	case IntVal:
		return number{i: int64(x), f: float64(x)}, true
	case FloatVal:
		return number{float: true, f: float64(x)}, true
	}
	return number{}, false
}

func (n number) lval() LVal {
	if n.float {
		return Float(n.f)
	}
	return Int(n.i)
}

type arithOp func(a, b number) (number, LVal)

// evalNumbers evaluates args and checks that every value is numeric.
func evalNumbers(env *LEnv, fun string, args *ExprVal, min int) ([]number, LVal) {
	vals, lerr := evalArgsMin(env, fun, args, min)
	if lerr != nil {
		return nil, lerr
	}
	nums := make([]number, len(vals))
	for i, v := range vals {
		n, ok := toNumber(v)
		if !ok {
			return nil, badArgType(fun, i, v, LInt)
		}
		nums[i] = n
	}
	return nums, nil
}

// foldNumbers reduces its arguments from left to right with op.  A single
// argument is combined with unary to produce the result.
func foldNumbers(env *LEnv, fun string, args *ExprVal, unary func(number) number, op arithOp) LVal {
	nums, lerr := evalNumbers(env, fun, args, 1)
	if lerr != nil {
		return lerr
	}
	acc := nums[0]
	if len(nums) == 1 && unary != nil {
		return unary(acc).lval()
	}
	for _, n := range nums[1:] {
		acc, lerr = op(acc, n)
		if lerr != nil {
			return lerr
		}
	}
	return acc.lval()
}

// promote converts a and b to floats if either is a float.
func promote(a, b number) (number, number) {
	if a.float || b.float {
		a.float, b.float = true, true
	}
	return a, b
}

func builtinAdd(env *LEnv, args *ExprVal) LVal {
	return foldNumbers(env, "+", args, nil, func(a, b number) (number, LVal) {
		a, b = promote(a, b)
		return number{float: a.float, i: a.i + b.i, f: a.f + b.f}, nil
	})
}

func builtinSub(env *LEnv, args *ExprVal) LVal {
	neg := func(a number) number {
		return number{float: a.float, i: -a.i, f: -a.f}
	}
	return foldNumbers(env, "-", args, neg, func(a, b number) (number, LVal) {
		a, b = promote(a, b)
		return number{float: a.float, i: a.i - b.i, f: a.f - b.f}, nil
	})
}

func builtinMul(env *LEnv, args *ExprVal) LVal {
	return foldNumbers(env, "*", args, nil, func(a, b number) (number, LVal) {
		a, b = promote(a, b)
		return number{float: a.float, i: a.i * b.i, f: a.f * b.f}, nil
	})
}

// builtinDiv divides integers exactly when possible and otherwise produces a
// float.
func builtinDiv(env *LEnv, args *ExprVal) LVal {
	return foldNumbers(env, "/", args, nil, func(a, b number) (number, LVal) {
		if b.f == 0 {
			return number{}, Errorf("division by zero")
		}
		a, b = promote(a, b)
		if !a.float && a.i%b.i == 0 {
			return number{i: a.i / b.i, f: float64(a.i / b.i)}, nil
		}
		return number{float: true, f: a.f / b.f}, nil
	})
}

func builtinTruncDiv(env *LEnv, args *ExprVal) LVal {
	return foldNumbers(env, "//", args, nil, func(a, b number) (number, LVal) {
		if b.f == 0 {
			return number{}, Errorf("division by zero")
		}
		a, b = promote(a, b)
		if a.float {
			return number{float: true, f: math.Trunc(a.f / b.f)}, nil
		}
		return number{i: a.i / b.i, f: float64(a.i / b.i)}, nil
	})
}

// builtinMod computes the remainder of the magnitudes of its arguments.
func builtinMod(env *LEnv, args *ExprVal) LVal {
	return foldNumbers(env, "%", args, nil, func(a, b number) (number, LVal) {
		if b.f == 0 {
			return number{}, Errorf("division by zero")
		}
		a, b = promote(a, b)
		if a.float {
			return number{float: true, f: math.Mod(math.Abs(a.f), math.Abs(b.f))}, nil
		}
		r := absInt(a.i) % absInt(b.i)
		return number{i: r, f: float64(r)}, nil
	})
}

func builtinPow(env *LEnv, args *ExprVal) LVal {
	return foldNumbers(env, "^", args, nil, func(a, b number) (number, LVal) {
		if !a.float && !b.float && b.i >= 0 {
			r := int64(1)
			for base, exp := a.i, b.i; exp > 0; exp >>= 1 {
				if exp&1 == 1 {
					r *= base
				}
				base *= base
			}
			return number{i: r, f: float64(r)}, nil
		}
		f := math.Pow(a.f, b.f)
		if math.IsNaN(f) {
			return number{}, Errorf("function '^' result is not a number")
		}
		return number{float: true, f: f}, nil
	})
}

func absInt(x int64) int64 {
	if x < 0 {
		return -x
	}
	return x
}

func compareNumbers(env *LEnv, fun string, args *ExprVal, cmp func(a, b number) bool) LVal {
	if len(args.Cells) != 2 {
		return badArgCount(fun, 2, len(args.Cells))
	}
	nums, lerr := evalNumbers(env, fun, args, 2)
	if lerr != nil {
		return lerr
	}
	a, b := promote(nums[0], nums[1])
	return Bool(cmp(a, b))
}

func builtinGT(env *LEnv, args *ExprVal) LVal {
	return compareNumbers(env, ">", args, func(a, b number) bool {
		if a.float {
			return a.f > b.f
		}
		return a.i > b.i
	})
}

func builtinGEq(env *LEnv, args *ExprVal) LVal {
	return compareNumbers(env, ">=", args, func(a, b number) bool {
		if a.float {
			return a.f >= b.f
		}
		return a.i >= b.i
	})
}

func builtinLT(env *LEnv, args *ExprVal) LVal {
	return compareNumbers(env, "<", args, func(a, b number) bool {
		if a.float {
			return a.f < b.f
		}
		return a.i < b.i
	})
}

func builtinLEq(env *LEnv, args *ExprVal) LVal {
	return compareNumbers(env, "<=", args, func(a, b number) bool {
		if a.float {
			return a.f <= b.f
		}
		return a.i <= b.i
	})
}

func builtinEq(env *LEnv, args *ExprVal) LVal {
	vals, lerr := evalArgsExactly(env, "==", args, 2)
	if lerr != nil {
		return lerr
	}
	return Bool(Equal(vals[0], vals[1]))
}

func builtinNEq(env *LEnv, args *ExprVal) LVal {
	vals, lerr := evalArgsExactly(env, "!=", args, 2)
	if lerr != nil {
		return lerr
	}
	return Bool(!Equal(vals[0], vals[1]))
}
