package dispatch

import (
	"reflect"
	"runtime"
	"strings"

	"github.com/pkg/errors"
	"github.com/zclconf/go-cty/cty"
)

// Cmd defines a command to be registered.
type Cmd struct {
	// The name of the command. If empty, the name of the Run function is
	// used; anonymous functions must be named explicitly.
	Name string

	// Documentation for the command. The first non-empty line is used as
	// the short description in command listings.
	Doc string

	// Parameters, in call order.
	Params []Param

	// Declared return type. The zero value leaves it undeclared.
	Returns cty.Type

	// The function to run.
	Run RunFunc
}

// Command is a registered command. Its Call method runs the function behind
// it through the registry's stages.
type Command struct {
	Name string
	Doc  string

	sig  Signature
	call RunFunc
}

func newCommand(c *Cmd, stages []Stage) *Command {
	if c.Run == nil {
		panic("cannot register command without a Run function")
	}
	name := c.Name
	if name == "" {
		name = funcName(c.Run)
	}
	if name == "" {
		panic("cannot register nameless command")
	}

	sig := Signature{
		Params:  make([]Param, len(c.Params)),
		Returns: c.Returns,
	}
	copy(sig.Params, c.Params)

	return &Command{
		Name: name,
		Doc:  c.Doc,
		sig:  sig,
		call: Wrap(sig, guard(name, c.Run), stages...),
	}
}

// Signature returns the parameter and return types the command was
// registered with.
func (c *Command) Signature() Signature {
	return c.sig
}

// Call runs the command with the given arguments. Omitted trailing
// parameters take their defaults.
func (c *Command) Call(args ...cty.Value) (cty.Value, error) {
	bound, err := c.bind(args)
	if err != nil {
		return cty.NilVal, err
	}
	return c.call(bound)
}

// CallStrings runs the command with text parameters, as taken from a command
// line.
func (c *Command) CallStrings(params []string) (cty.Value, error) {
	args := make([]cty.Value, len(params))
	for i, p := range params {
		args[i] = cty.StringVal(p)
	}
	return c.Call(args...)
}

func (c *Command) bind(args []cty.Value) (Args, error) {
	min := 0
	for i, p := range c.sig.Params {
		if !p.optional() {
			min = i + 1
		}
	}
	max := len(c.sig.Params)
	if len(args) < min || len(args) > max {
		return nil, &ArityError{Name: c.Name, Min: min, Max: max, Got: len(args)}
	}

	bound := make(Args, max)
	copy(bound, args)
	for i := len(args); i < max; i++ {
		bound[i] = c.sig.Params[i].Default
	}
	return bound, nil
}

// guard turns errors and panics from fn into *ExecError.
func guard(name string, fn RunFunc) RunFunc {
	return func(args Args) (result cty.Value, err error) {
		defer func() {
			if r := recover(); r != nil {
				result = cty.NilVal
				err = &ExecError{Name: name, Err: errors.Errorf("panic: %v", r)}
			}
		}()
		result, err = fn(args)
		if err != nil {
			return cty.NilVal, &ExecError{Name: name, Err: err}
		}
		return result, nil
	}
}

// funcName returns the unqualified name of fn, or "" when fn is anonymous.
func funcName(fn RunFunc) string {
	f := runtime.FuncForPC(reflect.ValueOf(fn).Pointer())
	if f == nil {
		return ""
	}
	name := f.Name()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}

	// name is now "pkg.fn", "pkg.(*T).Method-fm", or for closures
	// "pkg.outer.func1", "pkg.outer.func1.2" and "pkg.glob..func1".
	parts := strings.Split(name, ".")
	last := parts[len(parts)-1]
	if method := strings.TrimSuffix(last, "-fm"); method != last {
		return method
	}
	if len(parts) > 2 && isClosure(last) {
		return ""
	}
	return last
}

// isClosure reports whether s is a name the runtime gives to function
// literals: "funcN" or a bare number.
func isClosure(s string) bool {
	s = strings.TrimPrefix(s, "func")
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
