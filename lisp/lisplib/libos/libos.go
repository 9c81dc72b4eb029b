// Package libos provides builtins that interact with the host process.
package libos

import (
	"errors"
	"io/fs"
	"os"

	"github.com/voithos/awl/lisp"
	"github.com/voithos/awl/lisp/lisplib/internal/libutil"
)

// Exit is called by the exit builtin.
var Exit = os.Exit

// LoadPackage adds the os builtins to env
func LoadPackage(env *lisp.LEnv) lisp.LVal {
	return libutil.AddBuiltins(env, builtins)
}

var builtins = []*libutil.Builtin{
	libutil.Function("exit", BuiltinExit),
	libutil.Function("getenv", BuiltinGetenv),
	libutil.Function("work-dir", BuiltinWorkDir),
	libutil.Function("exists?", BuiltinExists),
}

// BuiltinExit terminates the process with an optional integer status code,
// zero by default.
func BuiltinExit(env *lisp.LEnv, args *lisp.ExprVal) lisp.LVal {
	if len(args.Cells) > 1 {
		return lisp.Errorf("function 'exit' takes 0 or 1 arguments; %d given", len(args.Cells))
	}
	code := 0
	if len(args.Cells) == 1 {
		vals, lerr := lisp.EvalArgs(env, "exit", args, 1)
		if lerr != nil {
			return lerr
		}
		n, ok := vals[0].(lisp.IntVal)
		if !ok {
			return lisp.Errorf("function 'exit' passed incorrect type for arg 0; got %s, expected %s",
				lisp.TypeName(vals[0].Type()), lisp.TypeName(lisp.LInt))
		}
		code = int(n)
	}
	Exit(code)
	return lisp.Nil()
}

// BuiltinGetenv returns the value of an environment variable or {} when the
// variable is not set.
func BuiltinGetenv(env *lisp.LEnv, args *lisp.ExprVal) lisp.LVal {
	vals, lerr := lisp.EvalArgs(env, "getenv", args, 1)
	if lerr != nil {
		return lerr
	}
	key, lerr := libutil.StringArg("getenv", 0, vals[0])
	if lerr != nil {
		return lerr
	}
	val, ok := os.LookupEnv(key)
	if !ok {
		return lisp.Nil()
	}
	return lisp.String(val)
}

func BuiltinWorkDir(env *lisp.LEnv, args *lisp.ExprVal) lisp.LVal {
	if len(args.Cells) != 0 {
		return lisp.Errorf("function 'work-dir' takes exactly 0 argument(s); %d given", len(args.Cells))
	}
	dir, err := os.Getwd()
	if err != nil {
		return lisp.Error(err)
	}
	return lisp.String(dir)
}

func BuiltinExists(env *lisp.LEnv, args *lisp.ExprVal) lisp.LVal {
	vals, lerr := lisp.EvalArgs(env, "exists?", args, 1)
	if lerr != nil {
		return lerr
	}
	path, lerr := libutil.StringArg("exists?", 0, vals[0])
	if lerr != nil {
		return lerr
	}
	_, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return lisp.Bool(false)
	}
	if err != nil {
		return lisp.Error(err)
	}
	return lisp.Bool(true)
}
