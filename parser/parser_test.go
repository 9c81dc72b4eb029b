package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voithos/awl/lisp"
)

func TestParseLVal(t *testing.T) {
	tests := []struct {
		source string
		result []string
		types  []lisp.LValType
	}{
		{"5", []string{"5"}, []lisp.LValType{lisp.LInt}},
		{"-10", []string{"-10"}, []lisp.LValType{lisp.LInt}},
		{".23", []string{"0.23"}, []lisp.LValType{lisp.LFloat}},
		{"4.", []string{"4.0"}, []lisp.LValType{lisp.LFloat}},
		{"-10.5", []string{"-10.5"}, []lisp.LValType{lisp.LFloat}},
		{"true false", []string{"true", "false"}, []lisp.LValType{lisp.LBool, lisp.LBool}},
		{`"hello"`, []string{`"hello"`}, []lisp.LValType{lisp.LString}},
		{`'it\'s'`, []string{`"it's"`}, []lisp.LValType{lisp.LString}},
		{`"a\nb"`, []string{`"a\nb"`}, []lisp.LValType{lisp.LString}},
		{"foo", []string{"foo"}, []lisp.LValType{lisp.LSymbol}},
		{"//", []string{"//"}, []lisp.LValType{lisp.LSymbol}},
		{"except-last", []string{"except-last"}, []lisp.LValType{lisp.LSymbol}},
		{":foo", []string{":foo"}, []lisp.LValType{lisp.LQSymbol}},
		{"-", []string{"-"}, []lisp.LValType{lisp.LSymbol}},
		{"(+ 1 2)", []string{"(+ 1 2)"}, []lisp.LValType{lisp.LSExpr}},
		{"()", []string{"()"}, []lisp.LValType{lisp.LSExpr}},
		{"{1 {2 3}}", []string{"{1 {2 3}}"}, []lisp.LValType{lisp.LQExpr}},
		{`{1 \(+ 1 1) 3}`, []string{`{1 \(+ 1 1) 3}`}, []lisp.LValType{lisp.LQExpr}},
		{`{1 @x 4}`, []string{`{1 @x 4}`}, []lisp.LValType{lisp.LQExpr}},
		{`\x`, []string{`\x`}, []lisp.LValType{lisp.LEExpr}},
		{`@{1}`, []string{`@{1}`}, []lisp.LValType{lisp.LCExpr}},
		{"(fn (a & rest) rest)", []string{"(fn (a & rest) rest)"}, []lisp.LValType{lisp.LSExpr}},
		{"; just a comment", nil, nil},
		{"(a ; inline\n b)", []string{"(a b)"}, []lisp.LValType{lisp.LSExpr}},
		{"  1\n\t2  ", []string{"1", "2"}, []lisp.LValType{lisp.LInt, lisp.LInt}},
	}
	for _, test := range tests {
		v, _, err := ParseLVal([]byte(test.source))
		if !assert.NoError(t, err, test.source) {
			continue
		}
		if !assert.Len(t, v, len(test.result), test.source) {
			continue
		}
		for i := range v {
			assert.Equal(t, test.result[i], v[i].String(), test.source)
			assert.Equal(t, test.types[i], v[i].Type(), test.source)
		}
	}
}

func TestParseLVal_errors(t *testing.T) {
	for _, source := range []string{"(+ 1 2", "{1 2", ")", "}"} {
		_, _, err := ParseLVal([]byte(source))
		assert.Error(t, err, source)
	}
}

func TestReader(t *testing.T) {
	r := NewReader()
	v, err := r.Read("test", strings.NewReader("(define x 1)\n(+ x 1)"))
	require.NoError(t, err)
	require.Len(t, v, 2)
	assert.Equal(t, "(define x 1)", v[0].String())

	_, err = r.Read("broken.awl", strings.NewReader("(define x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.awl")
}

func TestParse(t *testing.T) {
	v, err := Parse("{1 2}")
	require.NoError(t, err)
	assert.Equal(t, lisp.LQExpr, v.Type())

	_, err = Parse("1 2")
	assert.Error(t, err)
}

func TestIncomplete(t *testing.T) {
	assert.True(t, Incomplete([]byte("(define x")))
	assert.True(t, Incomplete([]byte("{1 {2}")))
	assert.True(t, Incomplete([]byte(`(print "abc`)))
	assert.False(t, Incomplete([]byte("(define x 1)")))
	assert.False(t, Incomplete([]byte(`(print ")(")`)))
	assert.False(t, Incomplete([]byte("(+ 1 2) ; (")))
	assert.False(t, Incomplete([]byte("x")))
}
