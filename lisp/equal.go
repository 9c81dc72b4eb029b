package lisp

import "reflect"

// Equal reports whether a and b are structurally equal.  Numbers are
// compared after promotion so (== 5 5.0) is true.
func Equal(a, b LVal) bool {
	if na, ok := toNumber(a); ok {
		nb, ok := toNumber(b)
		if !ok {
			return false
		}
		na, nb = promote(na, nb)
		if na.float {
			return na.f == nb.f
		}
		return na.i == nb.i
	}
	if a.Type() != b.Type() {
		return false
	}
	switch a := a.(type) {
	case *ErrorVal:
		return a.Error() == b.(*ErrorVal).Error()
	case *BuiltinVal:
		b := b.(*BuiltinVal)
		if a == b {
			return true
		}
		return a.Name == b.Name && reflect.ValueOf(a.Fn).Pointer() == reflect.ValueOf(b.Fn).Pointer()
	case *LambdaVal:
		b := b.(*LambdaVal)
		return cellsEqual(a.Formals.Cells, b.Formals.Cells) && Equal(a.Body, b.Body)
	case *ExprVal:
		return cellsEqual(a.Cells, b.(*ExprVal).Cells)
	case *DictVal:
		b := b.(*DictVal)
		if len(a.Map) != len(b.Map) {
			return false
		}
		for k, v := range a.Map {
			w, ok := b.Map[k]
			if !ok || !Equal(v, w) {
				return false
			}
		}
		return true
	}
	// The remaining variants are comparable Go values.
	return a == b
}

func cellsEqual(a, b []LVal) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}
