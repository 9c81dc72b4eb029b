// Package libstring provides string builtins.
package libstring

import (
	"errors"
	"strings"

	"github.com/voithos/awl/lisp"
	"github.com/voithos/awl/lisp/lisplib/internal/libutil"
)

// LoadPackage adds the string builtins to env
func LoadPackage(env *lisp.LEnv) lisp.LVal {
	return libutil.AddBuiltins(env, builtins)
}

var builtins = []*libutil.Builtin{
	libutil.Function("format", builtinFormat),
	libutil.Function("upper", builtinUpper),
	libutil.Function("lower", builtinLower),
	libutil.Function("string-split", builtinSplit),
	libutil.Function("string-join", builtinJoin),
}

func builtinFormat(env *lisp.LEnv, args *lisp.ExprVal) lisp.LVal {
	vals, lerr := lisp.EvalArgsMin(env, "format", args, 1)
	if lerr != nil {
		return lerr
	}
	format, lerr := libutil.StringArg("format", 0, vals[0])
	if lerr != nil {
		return lerr
	}
	s, err := formatString(format, vals[1:])
	if err != nil {
		return lisp.Error(err)
	}
	return lisp.String(s)
}

// formatString replaces each directive {} in f with the next value in vals.
// Literal braces are written as {{ and }}.
func formatString(f string, vals []lisp.LVal) (string, error) {
	var buf strings.Builder
	next := 0
	for i := 0; i < len(f); i++ {
		c := f[i]
		switch {
		case c == '{' && strings.HasPrefix(f[i:], "{{"):
			buf.WriteByte('{')
			i++
		case c == '}' && strings.HasPrefix(f[i:], "}}"):
			buf.WriteByte('}')
			i++
		case c == '{':
			j := strings.IndexByte(f[i:], '}')
			if j < 0 {
				return "", errors.New("unclosed formatting directive")
			}
			if strings.TrimSpace(f[i+1:i+j]) != "" {
				return "", errors.New("formatting directives must be empty")
			}
			if next >= len(vals) {
				return "", errors.New("too many formatting directives for supplied values")
			}
			if s, ok := vals[next].(lisp.StringVal); ok {
				buf.WriteString(string(s))
			} else {
				buf.WriteString(vals[next].String())
			}
			next++
			i += j
		case c == '}':
			return "", errors.New("unexpected closing brace '}' outside of formatting directive")
		default:
			buf.WriteByte(c)
		}
	}
	if next < len(vals) {
		return "", errors.New("too few formatting directives for supplied values")
	}
	return buf.String(), nil
}

func builtinUpper(env *lisp.LEnv, args *lisp.ExprVal) lisp.LVal {
	return mapString(env, "upper", args, strings.ToUpper)
}

func builtinLower(env *lisp.LEnv, args *lisp.ExprVal) lisp.LVal {
	return mapString(env, "lower", args, strings.ToLower)
}

func mapString(env *lisp.LEnv, fun string, args *lisp.ExprVal, fn func(string) string) lisp.LVal {
	vals, lerr := lisp.EvalArgs(env, fun, args, 1)
	if lerr != nil {
		return lerr
	}
	s, lerr := libutil.StringArg(fun, 0, vals[0])
	if lerr != nil {
		return lerr
	}
	return lisp.String(fn(s))
}

func builtinSplit(env *lisp.LEnv, args *lisp.ExprVal) lisp.LVal {
	vals, lerr := lisp.EvalArgs(env, "string-split", args, 2)
	if lerr != nil {
		return lerr
	}
	s, lerr := libutil.StringArg("string-split", 0, vals[0])
	if lerr != nil {
		return lerr
	}
	sep, lerr := libutil.StringArg("string-split", 1, vals[1])
	if lerr != nil {
		return lerr
	}
	parts := strings.Split(s, sep)
	cells := make([]lisp.LVal, len(parts))
	for i := range parts {
		cells[i] = lisp.String(parts[i])
	}
	return lisp.QExpr(cells)
}

func builtinJoin(env *lisp.LEnv, args *lisp.ExprVal) lisp.LVal {
	vals, lerr := lisp.EvalArgs(env, "string-join", args, 2)
	if lerr != nil {
		return lerr
	}
	list, ok := vals[0].(*lisp.ExprVal)
	if !ok || !lisp.IsQExpr(list) {
		return lisp.Errorf("function 'string-join' passed incorrect type for arg 0; got %s, expected %s",
			lisp.TypeName(vals[0].Type()), lisp.TypeName(lisp.LQExpr))
	}
	sep, lerr := libutil.StringArg("string-join", 1, vals[1])
	if lerr != nil {
		return lerr
	}
	parts := make([]string, len(list.Cells))
	for i, c := range list.Cells {
		s, ok := c.(lisp.StringVal)
		if !ok {
			return lisp.Errorf("function 'string-join' passed a list containing %s", lisp.TypeName(c.Type()))
		}
		parts[i] = string(s)
	}
	return lisp.String(strings.Join(parts, sep))
}
