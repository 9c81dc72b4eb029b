package lisp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	d := Dict()
	d.Set(QSymbol("b"), Int(2))
	d.Set(String("a"), Int(1))
	d.Set(QSymbol("a"), QExpr(nil))

	tests := []struct {
		v   LVal
		str string
	}{
		{Int(3), "3"},
		{Int(-3), "-3"},
		{Float(4), "4.0"},
		{Float(-3), "-3.0"},
		{Float(math.Inf(1)), "+Inf"},
		{Float(2.5), "2.5"},
		{Bool(true), "true"},
		{String(`a"b`), `"a\"b"`},
		{Symbol("x"), "x"},
		{QSymbol("k"), ":k"},
		{SExpr([]LVal{Symbol("+"), Int(1), Int(2)}), "(+ 1 2)"},
		{QExpr(nil), "{}"},
		{QExpr([]LVal{Int(1), QExpr([]LVal{Int(2)})}), "{1 {2}}"},
		{EExpr(Symbol("x")), `\x`},
		{CExpr(Symbol("x")), "@x"},
		{Builtin("f", nil), "<builtin f>"},
		{Errorf("oops"), "oops"},
		{d, `(dict "a" 1 :a {} :b 2)`},
	}
	for i, test := range tests {
		assert.Equal(t, test.str, test.v.String(), "test %d", i)
	}
}

func TestTypeName(t *testing.T) {
	assert.Equal(t, "Integer", TypeName(LInt))
	assert.Equal(t, "Q-Expression", TypeName(LQExpr))
	assert.Equal(t, "Function", TypeName(LLambda))
	assert.Equal(t, "Builtin", TypeName(LFun))
	assert.Equal(t, TypeName(LInvalid), LValType(100).String())

	env := NewEnv(nil)
	f := Lambda(env, SExpr(nil), Int(1))
	assert.Equal(t, LLambda, f.Type())
	assert.Equal(t, LMacro, Macro(env, SExpr(nil), Int(1)).Type())
}

func TestCopy(t *testing.T) {
	q := QExpr([]LVal{QExpr([]LVal{Int(1)})})
	cp := q.Copy().(*ExprVal)
	cp.Cells[0].(*ExprVal).Cells[0] = Int(2)
	assert.Equal(t, "{{1}}", q.String())
	assert.Equal(t, "{{2}}", cp.String())

	d := Dict()
	d.Set(QSymbol("k"), QExpr([]LVal{Int(1)}))
	dcp := d.Copy().(*DictVal)
	dcp.Set(QSymbol("k"), Int(2))
	v, ok := d.Get(QSymbol("k"))
	assert.True(t, ok)
	assert.Equal(t, "{1}", v.String())

	env := NewEnv(nil)
	f := Lambda(env, SExpr([]LVal{Symbol("a")}), Symbol("a"))
	fcp := f.Copy().(*LambdaVal)
	fcp.Env.Put(Symbol("a"), Int(1))
	_, ok = f.Env.Index(Symbol("a"))
	assert.False(t, ok)
	assert.Same(t, f.Env.Parent, fcp.Env.Parent)
}

func TestEqual(t *testing.T) {
	add := Builtin("+", builtinAdd)
	env := NewEnv(nil)
	tests := []struct {
		a, b  LVal
		equal bool
	}{
		{Int(5), Int(5), true},
		{Int(5), Float(5), true},
		{Float(0.5), Int(0), false},
		{Int(1), String("1"), false},
		{String("a"), String("a"), true},
		{Symbol("a"), QSymbol("a"), false},
		{QSymbol("a"), QSymbol("a"), true},
		{Bool(true), Bool(true), true},
		{QExpr([]LVal{Int(1), QExpr([]LVal{Int(2)})}), QExpr([]LVal{Int(1), QExpr([]LVal{Float(2)})}), true},
		{QExpr([]LVal{Int(1)}), SExpr([]LVal{Int(1)}), false},
		{QExpr(nil), QExpr([]LVal{}), true},
		{add, add, true},
		{add, Builtin("+", builtinAdd), true},
		{add, Builtin("-", builtinSub), false},
		{Lambda(env, SExpr([]LVal{Symbol("x")}), Symbol("x")), Lambda(env, SExpr([]LVal{Symbol("x")}), Symbol("x")), true},
		{Lambda(env, SExpr([]LVal{Symbol("x")}), Symbol("x")), Macro(env, SExpr([]LVal{Symbol("x")}), Symbol("x")), false},
		{Errorf("a"), Errorf("a"), true},
	}
	for i, test := range tests {
		assert.Equal(t, test.equal, Equal(test.a, test.b), "test %d", i)
		assert.Equal(t, test.equal, Equal(test.b, test.a), "test %d reversed", i)
	}
}
