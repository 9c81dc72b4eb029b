// Package libjson converts between awl values and JSON.
package libjson

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/voithos/awl/lisp"
	"github.com/voithos/awl/lisp/lisplib/internal/libutil"
)

// DefaultSerializer is the Serializer used by exported functions Load and
// Dump.
var DefaultSerializer = &Serializer{
	Null: lisp.QSymbol("null"),
}

// LoadPackage adds the json builtins to env
func LoadPackage(env *lisp.LEnv) lisp.LVal {
	return libutil.AddBuiltins(env, Builtins(DefaultSerializer))
}

// Builtins returns the json builtin functions using serializer s.
func Builtins(s *Serializer) []*libutil.Builtin {
	return []*libutil.Builtin{
		libutil.Function("json-dump", s.DumpStringBuiltin),
		libutil.Function("json-load", s.LoadStringBuiltin),
	}
}

// Dump serializes the structure of v as a JSON formatted byte slice.
func Dump(v lisp.LVal) ([]byte, error) {
	return DefaultSerializer.Dump(v)
}

// Load parses b as JSON and returns an equivalent LVal.
func Load(b []byte) lisp.LVal {
	return DefaultSerializer.Load(b)
}

// Serializer defines JSON serialization rules for lisp values.  Objects
// become dictionaries keyed by strings and arrays become Q-expressions.
type Serializer struct {
	// Null is the value representing JSON null.
	Null lisp.LVal
}

// Load parses b and returns an LVal representing its structure.  Integral
// numbers are loaded as integers.
func (s *Serializer) Load(b []byte) lisp.LVal {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var x interface{}
	if err := dec.Decode(&x); err != nil {
		return lisp.Error(err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return lisp.Errorf("invalid json: trailing data")
	}
	return s.loadInterface(x)
}

func (s *Serializer) loadInterface(x interface{}) lisp.LVal {
	switch x := x.(type) {
	case nil:
		return s.Null.Copy()
	case bool:
		return lisp.Bool(x)
	case string:
		return lisp.String(x)
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return lisp.Int(i)
		}
		f, err := x.Float64()
		if err != nil {
			return lisp.Error(err)
		}
		return lisp.Float(f)
	case map[string]interface{}:
		m := lisp.Dict()
		for k, v := range x {
			lv := s.loadInterface(v)
			if lisp.IsError(lv) {
				return lv
			}
			m.Set(lisp.String(k), lv)
		}
		return m
	case []interface{}:
		cells := make([]lisp.LVal, len(x))
		for i, v := range x {
			cells[i] = s.loadInterface(v)
			if lisp.IsError(cells[i]) {
				return cells[i]
			}
		}
		return lisp.QExpr(cells)
	default:
		return lisp.Errorf("unable to load json type: %T", x)
	}
}

// Dump serializes v as JSON and returns any error.
func (s *Serializer) Dump(v lisp.LVal) ([]byte, error) {
	x, err := s.GoValue(v)
	if err != nil {
		return nil, err
	}
	return json.Marshal(x)
}

// GoValue converts v to its natural representation in Go.  Q-expressions are
// turned into slices, dictionaries into maps, and quoted symbols into
// strings.  The Null value is converted to nil.
func (s *Serializer) GoValue(v lisp.LVal) (interface{}, error) {
	if s.Null != nil && lisp.Equal(v, s.Null) {
		return nil, nil
	}
	switch v := v.(type) {
	case lisp.BoolVal:
		return bool(v), nil
	case lisp.IntVal:
		return int64(v), nil
	case lisp.FloatVal:
		return float64(v), nil
	case lisp.StringVal:
		return string(v), nil
	case lisp.QSymbolVal:
		return string(v), nil
	case *lisp.ExprVal:
		if lisp.IsQExpr(v) {
			return s.goSlice(v.Cells)
		}
	case *lisp.DictVal:
		return s.goMap(v)
	}
	return nil, fmt.Errorf("type cannot be converted to json: %s", lisp.TypeName(v.Type()))
}

func (s *Serializer) goSlice(cells []lisp.LVal) ([]interface{}, error) {
	vs := make([]interface{}, len(cells))
	for i := range cells {
		x, err := s.GoValue(cells[i])
		if err != nil {
			return nil, err
		}
		vs[i] = x
	}
	return vs, nil
}

func (s *Serializer) goMap(d *lisp.DictVal) (map[string]interface{}, error) {
	m := make(map[string]interface{}, d.Len())
	for _, k := range d.Keys() {
		v, _ := d.Get(k)
		x, err := s.GoValue(v)
		if err != nil {
			return nil, err
		}
		var name string
		switch k := k.(type) {
		case lisp.StringVal:
			name = string(k)
		case lisp.QSymbolVal:
			name = string(k)
		}
		if _, dup := m[name]; dup {
			return nil, fmt.Errorf("duplicate json object key: %q", name)
		}
		m[name] = x
	}
	return m, nil
}

func (s *Serializer) DumpStringBuiltin(env *lisp.LEnv, args *lisp.ExprVal) lisp.LVal {
	vals, lerr := lisp.EvalArgs(env, "json-dump", args, 1)
	if lerr != nil {
		return lerr
	}
	b, err := s.Dump(vals[0])
	if err != nil {
		return lisp.Error(err)
	}
	return lisp.String(string(b))
}

func (s *Serializer) LoadStringBuiltin(env *lisp.LEnv, args *lisp.ExprVal) lisp.LVal {
	vals, lerr := lisp.EvalArgs(env, "json-load", args, 1)
	if lerr != nil {
		return lerr
	}
	js, lerr := libutil.StringArg("json-load", 0, vals[0])
	if lerr != nil {
		return lerr
	}
	return s.Load([]byte(js))
}
