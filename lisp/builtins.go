package lisp

import (
	"fmt"
	"io"
	"strings"
)

// LBuiltin is a function that performs executes a lisp function.  Arguments
// are passed unevaluated.
type LBuiltin func(env *LEnv, args *ExprVal) LVal

// LBuiltinDef is a built-in function
type LBuiltinDef interface {
	Name() string
	Eval(env *LEnv, args *ExprVal) LVal
}

type langBuiltin struct {
	name string
	fun  LBuiltin
}

func (fun *langBuiltin) Name() string {
	return fun.name
}

func (fun *langBuiltin) Eval(env *LEnv, args *ExprVal) LVal {
	return fun.fun(env, args)
}

var userBuiltins []*langBuiltin
var langBuiltins = []*langBuiltin{
	{"if", opIf},
	{"do", opDo},
	{"let", opLet},
	{"define", opDefine},
	{"global", opGlobal},
	{"fn", builtinFn},
	{"macro", builtinMacro},
	{"and", opAnd},
	{"or", opOr},
	{"not", builtinNot},
	{"+", builtinAdd},
	{"-", builtinSub},
	{"*", builtinMul},
	{"/", builtinDiv},
	{"//", builtinTruncDiv},
	{"%", builtinMod},
	{"^", builtinPow},
	{">", builtinGT},
	{">=", builtinGEq},
	{"<", builtinLT},
	{"<=", builtinLEq},
	{"==", builtinEq},
	{"!=", builtinNEq},
	{"head", builtinHead},
	{"tail", builtinTail},
	{"first", builtinFirst},
	{"last", builtinLast},
	{"except-last", builtinExceptLast},
	{"list", builtinList},
	{"eval", builtinEval},
	{"append", builtinAppend},
	{"cons", builtinCons},
	{"len", builtinLen},
	{"reverse", builtinReverse},
	{"slice", builtinSlice},
	{"dict", builtinDict},
	{"get", builtinGet},
	{"assoc", builtinAssoc},
	{"keys", builtinKeys},
	{"type", builtinType},
	{"error", builtinError},
	{"print", builtinPrint},
	{"println", builtinPrintln},
	{"debug-print", builtinDebugPrint},
}

// RegisterDefaultBuiltin adds the given function to the list returned by
// DefaultBuiltins.
func RegisterDefaultBuiltin(name string, fn LBuiltin) {
	userBuiltins = append(userBuiltins, &langBuiltin{name, fn})
}

// DefaultBuiltins returns the default set of LBuiltinDefs added to LEnv
// objects when LEnv.AddBuiltins is called without arguments.
func DefaultBuiltins() []LBuiltinDef {
	ops := make([]LBuiltinDef, len(langBuiltins)+len(userBuiltins))
	for i := range langBuiltins {
		ops[i] = langBuiltins[i]
	}
	offset := len(langBuiltins)
	for i := range userBuiltins {
		ops[offset+i] = userBuiltins[i]
	}
	return ops
}

// evalList evaluates the single argument of a list builtin and checks that it
// is a Q-expression.
func evalList(env *LEnv, fun string, args *ExprVal) (*ExprVal, LVal) {
	vals, lerr := evalArgsExactly(env, fun, args, 1)
	if lerr != nil {
		return nil, lerr
	}
	q, ok := vals[0].(*ExprVal)
	if !ok || q.typ != LQExpr {
		return nil, badArgType(fun, 0, vals[0], LQExpr)
	}
	return q, nil
}

func builtinHead(env *LEnv, args *ExprVal) LVal {
	q, lerr := evalList(env, "head", args)
	if lerr != nil {
		return lerr
	}
	if len(q.Cells) == 0 {
		return emptyArg("head")
	}
	return env.Eval(q.Cells[0])
}

func builtinTail(env *LEnv, args *ExprVal) LVal {
	q, lerr := evalList(env, "tail", args)
	if lerr != nil {
		return lerr
	}
	if len(q.Cells) == 0 {
		return emptyArg("tail")
	}
	return QExpr(q.Cells[1:])
}

func builtinFirst(env *LEnv, args *ExprVal) LVal {
	q, lerr := evalList(env, "first", args)
	if lerr != nil {
		return lerr
	}
	if len(q.Cells) == 0 {
		return emptyArg("first")
	}
	return QExpr(q.Cells[:1])
}

func builtinLast(env *LEnv, args *ExprVal) LVal {
	q, lerr := evalList(env, "last", args)
	if lerr != nil {
		return lerr
	}
	if len(q.Cells) == 0 {
		return emptyArg("last")
	}
	return QExpr(q.Cells[len(q.Cells)-1:])
}

func builtinExceptLast(env *LEnv, args *ExprVal) LVal {
	q, lerr := evalList(env, "except-last", args)
	if lerr != nil {
		return lerr
	}
	if len(q.Cells) == 0 {
		return emptyArg("except-last")
	}
	return QExpr(q.Cells[:len(q.Cells)-1])
}

func builtinList(env *LEnv, args *ExprVal) LVal {
	vals, lerr := evalArgs(env, args)
	if lerr != nil {
		return lerr
	}
	return QExpr(vals)
}

// builtinEval returns its argument as an S-expression for the Eval loop.
func builtinEval(env *LEnv, args *ExprVal) LVal {
	q, lerr := evalList(env, "eval", args)
	if lerr != nil {
		return lerr
	}
	return SExpr(q.Cells)
}

func builtinAppend(env *LEnv, args *ExprVal) LVal {
	vals, lerr := evalArgsMin(env, "append", args, 2)
	if lerr != nil {
		return lerr
	}
	if _, ok := vals[0].(StringVal); ok {
		var buf strings.Builder
		for i, v := range vals {
			s, ok := v.(StringVal)
			if !ok {
				return badArgType("append", i, v, LString)
			}
			buf.WriteString(string(s))
		}
		return String(buf.String())
	}
	var cells []LVal
	for i, v := range vals {
		q, ok := v.(*ExprVal)
		if !ok || q.typ != LQExpr {
			return badArgType("append", i, v, LQExpr)
		}
		cells = append(cells, q.Cells...)
	}
	return QExpr(cells)
}

func builtinCons(env *LEnv, args *ExprVal) LVal {
	vals, lerr := evalArgsExactly(env, "cons", args, 2)
	if lerr != nil {
		return lerr
	}
	q, ok := vals[1].(*ExprVal)
	if !ok || q.typ != LQExpr {
		return badArgType("cons", 1, vals[1], LQExpr)
	}
	cells := make([]LVal, 0, len(q.Cells)+1)
	cells = append(cells, vals[0])
	return QExpr(append(cells, q.Cells...))
}

func builtinLen(env *LEnv, args *ExprVal) LVal {
	vals, lerr := evalArgsExactly(env, "len", args, 1)
	if lerr != nil {
		return lerr
	}
	switch v := vals[0].(type) {
	case StringVal:
		return Int(int64(v.Len()))
	case *ExprVal:
		if v.typ == LQExpr {
			return Int(int64(v.Len()))
		}
	case *DictVal:
		return Int(int64(v.Len()))
	}
	return badArgType("len", 0, vals[0], LQExpr)
}

func builtinReverse(env *LEnv, args *ExprVal) LVal {
	vals, lerr := evalArgsExactly(env, "reverse", args, 1)
	if lerr != nil {
		return lerr
	}
	switch v := vals[0].(type) {
	case StringVal:
		runes := []rune(string(v))
		for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
			runes[i], runes[j] = runes[j], runes[i]
		}
		return String(string(runes))
	case *ExprVal:
		if v.typ == LQExpr {
			cells := make([]LVal, len(v.Cells))
			for i, c := range v.Cells {
				cells[len(cells)-1-i] = c
			}
			return QExpr(cells)
		}
	}
	return badArgType("reverse", 0, vals[0], LQExpr)
}

func builtinSlice(env *LEnv, args *ExprVal) LVal {
	if len(args.Cells) < 2 || len(args.Cells) > 4 {
		return Errorf("function 'slice' takes 2 to 4 arguments; %d given", len(args.Cells))
	}
	vals, lerr := evalArgs(env, args)
	if lerr != nil {
		return lerr
	}
	var n int
	switch v := vals[0].(type) {
	case StringVal:
		n = v.Len()
	case *ExprVal:
		if v.typ != LQExpr {
			return badArgType("slice", 0, v, LQExpr)
		}
		n = v.Len()
	default:
		return badArgType("slice", 0, v, LQExpr)
	}
	bounds := []int{0, n, 1}
	for i, v := range vals[1:] {
		x, ok := v.(IntVal)
		if !ok {
			return badArgType("slice", i+1, v, LInt)
		}
		bounds[i] = int(x)
	}
	if bounds[2] == 0 {
		return Errorf("function 'slice' passed a step of 0")
	}
	indices := sliceIndices(n, bounds[0], bounds[1], bounds[2])
	switch v := vals[0].(type) {
	case StringVal:
		b := make([]byte, len(indices))
		for i, j := range indices {
			b[i] = v[j]
		}
		return String(string(b))
	default:
		q := v.(*ExprVal)
		cells := make([]LVal, len(indices))
		for i, j := range indices {
			cells[i] = q.Cells[j]
		}
		return QExpr(cells)
	}
}

// sliceIndices returns the indices selected from a sequence of length n.
// Negative positions count back from n.  When start is greater than end the
// selection descends from start to just above end.  A negative step reverses
// the direction of the selection.
func sliceIndices(n, start, end, step int) []int {
	norm := func(i int) int {
		if i < 0 {
			i += n
		}
		if i < 0 {
			return 0
		}
		if i > n {
			return n
		}
		return i
	}
	start, end = norm(start), norm(end)
	lo, hi := start, end
	descending := start > end
	if descending {
		lo, hi = end, start
	}
	if step < 0 {
		descending = !descending
		step = -step
	}
	var indices []int
	if descending {
		if hi >= n {
			hi = n - 1
		}
		for i := hi; i > lo; i -= step {
			indices = append(indices, i)
		}
		return indices
	}
	for i := lo; i < hi; i += step {
		indices = append(indices, i)
	}
	return indices
}

func builtinType(env *LEnv, args *ExprVal) LVal {
	vals, lerr := evalArgsExactly(env, "type", args, 1)
	if lerr != nil {
		return lerr
	}
	return String(TypeName(vals[0].Type()))
}

func builtinError(env *LEnv, args *ExprVal) LVal {
	vals, lerr := evalArgsExactly(env, "error", args, 1)
	if lerr != nil {
		return lerr
	}
	s, ok := vals[0].(StringVal)
	if !ok {
		return badArgType("error", 0, vals[0], LString)
	}
	return Errorf("%s", string(s))
}

func builtinPrint(env *LEnv, args *ExprVal) LVal {
	return printValues(env, env.Runtime.stdout(), args, "")
}

func builtinPrintln(env *LEnv, args *ExprVal) LVal {
	return printValues(env, env.Runtime.stdout(), args, "\n")
}

func builtinDebugPrint(env *LEnv, args *ExprVal) LVal {
	return printValues(env, env.Runtime.stderr(), args, "\n")
}

// printValues writes its arguments separated by spaces.  Strings are written
// without quotes.
func printValues(env *LEnv, w io.Writer, args *ExprVal, end string) LVal {
	vals, lerr := evalArgs(env, args)
	if lerr != nil {
		return lerr
	}
	parts := make([]string, len(vals))
	for i, v := range vals {
		if s, ok := v.(StringVal); ok {
			parts[i] = string(s)
		} else {
			parts[i] = v.String()
		}
	}
	_, err := fmt.Fprint(w, strings.Join(parts, " ")+end)
	if err != nil {
		return Error(err)
	}
	return Nil()
}
