package lisp

// VarArgSymbol is the symbol that indicates a variadic function argument in a
// function's list of formal arguments.
const VarArgSymbol = "&"

// Version is the language version reported by the command line tools.
const Version = "v0.0.3"

func isVarArg(v LVal) bool {
	sym, ok := v.(SymbolVal)
	return ok && string(sym) == VarArgSymbol
}
