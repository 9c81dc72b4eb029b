package lisp

import (
	"bytes"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// LValType is the type of an LVal
type LValType uint

// Possible LValType values
const (
	LInvalid LValType = iota
	LInt
	LFloat
	LBool
	LString
	LSymbol
	LQSymbol
	LError
	LFun
	LLambda
	LMacro
	LDict
	LSExpr
	LQExpr
	LEExpr
	LCExpr
)

var lvalTypeStrings = []string{
	LInvalid: "INVALID",
	LInt:     "Integer",
	LFloat:   "Float",
	LBool:    "Boolean",
	LString:  "String",
	LSymbol:  "Symbol",
	LQSymbol: "Q-Symbol",
	LError:   "Error",
	LFun:     "Builtin",
	LLambda:  "Function",
	LMacro:   "Macro",
	LDict:    "Dictionary",
	LSExpr:   "S-Expression",
	LQExpr:   "Q-Expression",
	LEExpr:   "E-Expression",
	LCExpr:   "C-Expression",
}

func (t LValType) String() string {
	if int(t) >= len(lvalTypeStrings) {
		return lvalTypeStrings[LInvalid]
	}
	return lvalTypeStrings[t]
}

// TypeName returns the name of t used in error messages.
func TypeName(t LValType) string {
	return t.String()
}

// LVal is a lisp value.  Each variant is its own Go type so the payload of a
// value is only reachable through a type switch.
type LVal interface {
	Type() LValType
	// Copy returns a deep copy of the value.
	Copy() LVal
	String() string
}

// IntVal is an integer.
type IntVal int64

// FloatVal is a floating point number.
type FloatVal float64

// BoolVal is a boolean.
type BoolVal bool

// StringVal is a string.
type StringVal string

// SymbolVal is a symbol which evaluates to its binding.
type SymbolVal string

// QSymbolVal is a quoted symbol which evaluates to itself.
type QSymbolVal string

// BuiltinVal is a native function.
type BuiltinVal struct {
	Name string
	Fn   LBuiltin
}

// LambdaVal is a user defined function or macro.
type LambdaVal struct {
	Formals *ExprVal
	Body    LVal
	// Env holds the bound arguments.  Its parent is the environment the
	// function was defined in.
	Env     *LEnv
	Macro   bool
	Applied bool
}

// ExprVal is one of the four expression containers: LSExpr, LQExpr, LEExpr,
// or LCExpr.  An LEExpr or LCExpr always holds exactly one cell.
type ExprVal struct {
	typ   LValType
	Cells []LVal
}

// Int returns an LVal representing the integer x.
func Int(x int64) LVal {
	return IntVal(x)
}

// Float returns an LVal representing the float x.
func Float(x float64) LVal {
	return FloatVal(x)
}

// Bool returns an LVal representing the boolean b.
func Bool(b bool) LVal {
	return BoolVal(b)
}

// String returns an LVal representing the string s.
func String(s string) LVal {
	return StringVal(s)
}

// Symbol returns an LVal resprenting the symbol s
func Symbol(s string) LVal {
	return SymbolVal(s)
}

// QSymbol returns an LVal resprenting the quoted symbol
func QSymbol(s string) LVal {
	return QSymbolVal(s)
}

// Builtin returns an LVal representing the native function fn.
func Builtin(name string, fn LBuiltin) LVal {
	return &BuiltinVal{Name: name, Fn: fn}
}

// Lambda returns an anonymous function that has formals as arguments and the
// given body.  The function's scope is a new child of env.
func Lambda(env *LEnv, formals *ExprVal, body LVal) *LambdaVal {
	return &LambdaVal{
		Formals: &ExprVal{typ: LSExpr, Cells: copyCells(formals.Cells)},
		Body:    body.Copy(),
		Env:     env.ForkChild(),
	}
}

// Macro is like Lambda but the returned value receives its arguments
// unevaluated and has its result evaluated in the caller's scope.
func Macro(env *LEnv, formals *ExprVal, body LVal) *LambdaVal {
	fun := Lambda(env, formals, body)
	fun.Macro = true
	return fun
}

// SExpr returns an LVal representing an S-expression, a symbolic expression.
func SExpr(cells []LVal) *ExprVal {
	return &ExprVal{typ: LSExpr, Cells: cells}
}

// QExpr returns an LVal representing an Q-expression, a quoted expression, a
// list.
func QExpr(cells []LVal) *ExprVal {
	return &ExprVal{typ: LQExpr, Cells: cells}
}

// EExpr returns an escape of v, evaluated when found inside a Q-expression.
func EExpr(v LVal) *ExprVal {
	return &ExprVal{typ: LEExpr, Cells: []LVal{v}}
}

// CExpr returns a splice of v.  Inside a Q-expression the evaluated v is
// spliced into the enclosing list when it is itself a Q-expression.
func CExpr(v LVal) *ExprVal {
	return &ExprVal{typ: LCExpr, Cells: []LVal{v}}
}

// Nil returns an empty Q-expression.
func Nil() *ExprVal {
	return QExpr(nil)
}

func (v IntVal) Type() LValType     { return LInt }
func (v FloatVal) Type() LValType   { return LFloat }
func (v BoolVal) Type() LValType    { return LBool }
func (v StringVal) Type() LValType  { return LString }
func (v SymbolVal) Type() LValType  { return LSymbol }
func (v QSymbolVal) Type() LValType { return LQSymbol }
func (v *BuiltinVal) Type() LValType {
	return LFun
}

func (v *LambdaVal) Type() LValType {
	if v.Macro {
		return LMacro
	}
	return LLambda
}

func (v *ExprVal) Type() LValType {
	return v.typ
}

func (v IntVal) Copy() LVal     { return v }
func (v FloatVal) Copy() LVal   { return v }
func (v BoolVal) Copy() LVal    { return v }
func (v StringVal) Copy() LVal  { return v }
func (v SymbolVal) Copy() LVal  { return v }
func (v QSymbolVal) Copy() LVal { return v }

// Copy returns v.  Builtins are immutable.
func (v *BuiltinVal) Copy() LVal {
	return v
}

// Copy returns a copy of v whose scope is a copy of v.Env, sharing its parent.
func (v *LambdaVal) Copy() LVal {
	cp := &LambdaVal{}
	*cp = *v
	cp.Formals = &ExprVal{typ: v.Formals.typ, Cells: copyCells(v.Formals.Cells)}
	cp.Body = v.Body.Copy()
	cp.Env = v.Env.Copy()
	return cp
}

// Copy creates a deep copy of the receiver.
func (v *ExprVal) Copy() LVal {
	return &ExprVal{typ: v.typ, Cells: copyCells(v.Cells)}
}

func copyCells(cells []LVal) []LVal {
	if len(cells) == 0 {
		return nil
	}
	cp := make([]LVal, len(cells))
	for i := range cells {
		cp[i] = cells[i].Copy()
	}
	return cp
}

// Len returns the number of cells in v.
func (v *ExprVal) Len() int {
	return len(v.Cells)
}

// Len returns the length of s in bytes.
func (s StringVal) Len() int {
	return len(s)
}

// Inner returns the value wrapped by an escape or splice.
func (v *ExprVal) Inner() LVal {
	return v.Cells[0]
}

// IsSExpr is true when v is an S-expression.
func IsSExpr(v LVal) bool {
	return v.Type() == LSExpr
}

// IsQExpr is true when v is a Q-expression.
func IsQExpr(v LVal) bool {
	return v.Type() == LQExpr
}

// IsError is true when v is an error value.
func IsError(v LVal) bool {
	return v.Type() == LError
}

// IsCallable is true for builtins, functions, and macros.
func IsCallable(v LVal) bool {
	switch v.Type() {
	case LFun, LLambda, LMacro:
		return true
	}
	return false
}

func (v IntVal) String() string {
	return strconv.FormatInt(int64(v), 10)
}

// String keeps a fractional part on integral floats so that they read back
// as floats.
func (v FloatVal) String() string {
	f := float64(v)
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if math.IsInf(f, 0) || math.IsNaN(f) || strings.ContainsRune(s, '.') {
		return s
	}
	return s + ".0"
}

func (v BoolVal) String() string {
	return strconv.FormatBool(bool(v))
}

func (s StringVal) String() string {
	return strconv.Quote(string(s))
}

func (s SymbolVal) String() string {
	return string(s)
}

func (s QSymbolVal) String() string {
	return ":" + string(s)
}

func (v *BuiltinVal) String() string {
	return fmt.Sprintf("<builtin %s>", v.Name)
}

func (v *LambdaVal) String() string {
	var buf bytes.Buffer
	if v.Macro {
		buf.WriteString("(macro ")
	} else {
		buf.WriteString("(fn ")
	}
	writeCells(&buf, "(", v.Formals.Cells, ")")
	buf.WriteString(" ")
	buf.WriteString(v.Body.String())
	buf.WriteString(")")
	return buf.String()
}

func (v *ExprVal) String() string {
	var buf bytes.Buffer
	switch v.typ {
	case LSExpr:
		writeCells(&buf, "(", v.Cells, ")")
	case LQExpr:
		writeCells(&buf, "{", v.Cells, "}")
	case LEExpr:
		buf.WriteString(`\`)
		buf.WriteString(v.Inner().String())
	case LCExpr:
		buf.WriteString("@")
		buf.WriteString(v.Inner().String())
	}
	return buf.String()
}

func writeCells(buf *bytes.Buffer, open string, cells []LVal, close string) {
	buf.WriteString(open)
	for i, c := range cells {
		if i > 0 {
			buf.WriteString(" ")
		}
		buf.WriteString(c.String())
	}
	buf.WriteString(close)
}

// sortedKeys is used to print dictionaries deterministically.
func sortedKeys(d *DictVal) []dictKey {
	keys := make([]dictKey, 0, len(d.Map))
	for k := range d.Map {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].typ != keys[j].typ {
			return keys[i].typ < keys[j].typ
		}
		return keys[i].name < keys[j].name
	})
	return keys
}
