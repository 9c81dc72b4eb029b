package lisp

import (
	"errors"
	"fmt"
)

// ErrorVal implements the error interface so that errors can be first class
// lisp objects.
type ErrorVal struct {
	Err error
}

// Error returns an LVal representing the error corresponding to err.
func Error(err error) LVal {
	return &ErrorVal{Err: err}
}

// Errorf returns an LVal representing with a formatted error message.
func Errorf(format string, v ...interface{}) LVal {
	return &ErrorVal{Err: fmt.Errorf(format, v...)}
}

// Error implements the error interface.
func (e *ErrorVal) Error() string {
	return e.Err.Error()
}

// Unwrap returns the Go error underlying e.
func (e *ErrorVal) Unwrap() error {
	return e.Err
}

func (e *ErrorVal) Type() LValType {
	return LError
}

// Copy returns e.  Error values are immutable.
func (e *ErrorVal) Copy() LVal {
	return e
}

func (e *ErrorVal) String() string {
	return e.Err.Error()
}

// GoError returns an error that represents v.  If v is not an error value
// then nil is returned.
func GoError(v LVal) error {
	if v == nil {
		return nil
	}
	lerr, ok := v.(*ErrorVal)
	if !ok {
		return nil
	}
	return lerr
}

// ErrAborted is wrapped by the error returned when evaluation is interrupted
// with Runtime.RequestAbort.
var ErrAborted = errors.New("evaluation aborted")

func badArgType(fun string, i int, got LVal, expect LValType) LVal {
	return Errorf("function '%s' passed incorrect type for arg %d; got %s, expected %s",
		fun, i, TypeName(got.Type()), TypeName(expect))
}

func badArgCount(fun string, expect int, got int) LVal {
	return Errorf("function '%s' takes exactly %d argument(s); %d given", fun, expect, got)
}

func badArgMin(fun string, min int, got int) LVal {
	return Errorf("function '%s' takes %d or more arguments; %d given", fun, min, got)
}

func emptyArg(fun string) LVal {
	return Errorf("function '%s' passed {}", fun)
}
