package dispatch

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/zclconf/go-cty/cty"
)

// ErrAbort is returned by a ParamFunc to stop processing. The command is not
// run.
var ErrAbort = errors.New("processing aborted")

// CastError is returned when a value could not be converted to its declared
// type. An empty Param refers to the return value.
type CastError struct {
	Param string
	Type  cty.Type
	Whole bool
	Err   error
}

func (e *CastError) Error() string {
	want := constraintName(e.Type, e.Whole)
	if e.Param == "" {
		return fmt.Sprintf("failed to convert return value to %s: %v", want, e.Err)
	}
	return fmt.Sprintf("failed to convert parameter %q to %s: %v", e.Param, want, e.Err)
}

func (e *CastError) Unwrap() error { return e.Err }

// Cause implements the causer interface from github.com/pkg/errors.
func (e *CastError) Cause() error { return e.Err }

// TypeError is returned when a value does not conform to its declared type.
// An empty Param refers to the return value.
type TypeError struct {
	Param string
	Want  cty.Type
	Whole bool
	Got   cty.Type
}

func (e *TypeError) Error() string {
	got := "nothing"
	if e.Got != cty.NilType {
		got = e.Got.FriendlyName()
	}
	want := constraintName(e.Want, e.Whole)
	if e.Param == "" {
		return fmt.Sprintf("expected return value of type %s but got %s", want, got)
	}
	return fmt.Sprintf("expected parameter %q of type %s but got %s", e.Param, want, got)
}

func constraintName(t cty.Type, whole bool) string {
	if whole {
		return "whole number"
	}
	return t.FriendlyNameForConstraint()
}

// ArityError is returned when a command is called with too few or too many
// parameters.
type ArityError struct {
	Name     string
	Min, Max int
	Got      int
}

func (e *ArityError) Error() string {
	want := fmt.Sprintf("%d", e.Min)
	if e.Min != e.Max {
		want = fmt.Sprintf("%d to %d", e.Min, e.Max)
	}
	return fmt.Sprintf("%s takes %s parameter(s) but %d were given", e.Name, want, e.Got)
}

// ExecError wraps an error returned, or a panic raised, by the function behind
// a command.
type ExecError struct {
	Name string
	Err  error
}

func (e *ExecError) Error() string { return e.Err.Error() }

func (e *ExecError) Unwrap() error { return e.Err }

// Cause implements the causer interface from github.com/pkg/errors.
func (e *ExecError) Cause() error { return e.Err }

// UnknownCommandError is returned when no command is registered under Name.
type UnknownCommandError struct {
	Name string
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("unknown command '%s'", e.Name)
}

// UnknownParamError is returned when tokens before the "--" separator are
// not internal parameters.
type UnknownParamError struct {
	Params []string
}

func (e *UnknownParamError) Error() string {
	return fmt.Sprintf("unknown internal parameter(s): %s", strings.Join(e.Params, " "))
}
