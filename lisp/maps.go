package lisp

import "bytes"

// DictVal is an associative container keyed by quoted symbols and strings.
type DictVal struct {
	Map map[dictKey]LVal
}

type dictKey struct {
	typ  LValType
	name string
}

func (k dictKey) lval() LVal {
	if k.typ == LQSymbol {
		return QSymbol(k.name)
	}
	return String(k.name)
}

func toDictKey(k LVal) (dictKey, bool) {
	switch k := k.(type) {
	case QSymbolVal:
		return dictKey{LQSymbol, string(k)}, true
	case StringVal:
		return dictKey{LString, string(k)}, true
	}
	return dictKey{}, false
}

// Dict returns an empty dictionary.
func Dict() *DictVal {
	return &DictVal{Map: make(map[dictKey]LVal)}
}

func (d *DictVal) Type() LValType {
	return LDict
}

// Copy returns a deep copy of d.
func (d *DictVal) Copy() LVal {
	cp := &DictVal{Map: make(map[dictKey]LVal, len(d.Map))}
	for k, v := range d.Map {
		cp.Map[k] = v.Copy()
	}
	return cp
}

func (d *DictVal) String() string {
	var buf bytes.Buffer
	buf.WriteString("(dict")
	for _, k := range sortedKeys(d) {
		buf.WriteString(" ")
		buf.WriteString(k.lval().String())
		buf.WriteString(" ")
		buf.WriteString(d.Map[k].String())
	}
	buf.WriteString(")")
	return buf.String()
}

// Len returns the number of entries in d.
func (d *DictVal) Len() int {
	return len(d.Map)
}

// Get returns the value stored under k.
func (d *DictVal) Get(k LVal) (LVal, bool) {
	key, ok := toDictKey(k)
	if !ok {
		return nil, false
	}
	v, ok := d.Map[key]
	return v, ok
}

// Set stores v under k.  Set returns false if k cannot be used as a key.
func (d *DictVal) Set(k, v LVal) bool {
	key, ok := toDictKey(k)
	if !ok {
		return false
	}
	d.Map[key] = v
	return true
}

// Keys returns the keys of d in sorted order.
func (d *DictVal) Keys() []LVal {
	keys := sortedKeys(d)
	vals := make([]LVal, len(keys))
	for i := range keys {
		vals[i] = keys[i].lval()
	}
	return vals
}

func builtinDict(env *LEnv, args *ExprVal) LVal {
	vals, lerr := evalArgs(env, args)
	if lerr != nil {
		return lerr
	}
	if len(vals)%2 != 0 {
		return Errorf("function 'dict' passed an odd number of arguments; %d given", len(vals))
	}
	d := Dict()
	for i := 0; i < len(vals); i += 2 {
		if !d.Set(vals[i], vals[i+1]) {
			return badArgType("dict", i, vals[i], LQSymbol)
		}
	}
	return d
}

func builtinGet(env *LEnv, args *ExprVal) LVal {
	vals, lerr := evalArgsExactly(env, "get", args, 2)
	if lerr != nil {
		return lerr
	}
	d, ok := vals[0].(*DictVal)
	if !ok {
		return badArgType("get", 0, vals[0], LDict)
	}
	if _, ok := toDictKey(vals[1]); !ok {
		return badArgType("get", 1, vals[1], LQSymbol)
	}
	v, ok := d.Get(vals[1])
	if !ok {
		return Errorf("key %v not found", vals[1])
	}
	return v.Copy()
}

func builtinAssoc(env *LEnv, args *ExprVal) LVal {
	vals, lerr := evalArgsExactly(env, "assoc", args, 3)
	if lerr != nil {
		return lerr
	}
	d, ok := vals[0].(*DictVal)
	if !ok {
		return badArgType("assoc", 0, vals[0], LDict)
	}
	cp := d.Copy().(*DictVal)
	if !cp.Set(vals[1], vals[2]) {
		return badArgType("assoc", 1, vals[1], LQSymbol)
	}
	return cp
}

func builtinKeys(env *LEnv, args *ExprVal) LVal {
	vals, lerr := evalArgsExactly(env, "keys", args, 1)
	if lerr != nil {
		return lerr
	}
	d, ok := vals[0].(*DictVal)
	if !ok {
		return badArgType("keys", 0, vals[0], LDict)
	}
	return QExpr(d.Keys())
}
