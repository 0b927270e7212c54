package dispatch

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/zclconf/go-cty/cty"
)

// Executor runs registered commands from a command line.
type Executor struct {
	// Diagnostics are logged here. Internal parameters set its level.
	Logger *logrus.Logger

	// Help output is written here.
	Output io.Writer

	// Level applied when internal parameters are parsed but none of them
	// selects a level.
	DefaultLevel logrus.Level

	registry     *Registry
	params       []*InternalParam
	paramsByFlag map[string]*InternalParam
}

// New returns an Executor with no commands, logging at info level to
// os.Stderr and printing help to os.Stderr.
//
// The internal parameters --critical, --error, --warning, --info, --debug,
// --help and --longhelp are available on every Executor.
func New() *Executor {
	e := &Executor{
		Logger:       newLogger(logrus.InfoLevel),
		Output:       os.Stderr,
		DefaultLevel: logrus.InfoLevel,
		registry:     NewRegistry(),
	}
	e.initParams()
	return e
}

// Register registers c as a command; see Registry.Register.
func (e *Executor) Register(c *Cmd) *Command {
	return e.registry.Register(c)
}

// Lookup returns the command registered under name.
func (e *Executor) Lookup(name string) (*Command, bool) {
	return e.registry.Lookup(name)
}

// Commands returns all registered commands in registration order.
func (e *Executor) Commands() []*Command {
	return e.registry.Commands()
}

// Call runs the named command with text parameters.
func (e *Executor) Call(name string, params []string) (cty.Value, error) {
	cmd, ok := e.registry.Lookup(name)
	if !ok {
		return cty.NilVal, &UnknownCommandError{Name: name}
	}
	return cmd.CallStrings(params)
}

// Exec is a short-hand for
//
//	e.Execute(os.Args, true)
func (e *Executor) Exec() int {
	return e.Execute(os.Args, true)
}

// Execute runs the command named by argv[0] with the remaining arguments. If
// basename is true, only the last element of argv[0] is used as the name.
//
// Arguments before the first "--" are internal parameters; see ParseInternal.
// Without a "--", all arguments are passed to the command.
//
// The result of the command is returned as an int: numbers are truncated,
// any other result is 0. Execute returns -1 if the command is unknown or
// fails, or if the internal parameters are invalid or abort the execution,
// as --help does. Errors are logged, not returned.
func (e *Executor) Execute(argv []string, basename bool) (code int) {
	defer func() {
		if r := recover(); r != nil {
			e.Logger.Errorf("ERROR: %v", r)
			code = -1
		}
	}()

	if len(argv) == 0 {
		e.Logger.Error("no command given")
		e.printHelp()
		return -1
	}

	name := argv[0]
	if basename {
		name = filepath.Base(name)
	}
	params := argv[1:]

	if i := indexOf(params, Separator); i >= 0 {
		if err := e.ParseInternal(name, params[:i]); err != nil {
			if errors.Is(err, ErrAbort) {
				return -1
			}
			e.Logger.Errorf("ERROR: %v", err)
			e.printHelp()
			return -1
		}
		params = params[i+1:]
	}

	result, err := e.Call(name, params)
	if err != nil {
		var unknown *UnknownCommandError
		if errors.As(err, &unknown) {
			e.Logger.Errorf("Unknown command '%s'!", name)
			e.printHelp()
			return -1
		}
		e.Logger.Errorf("ERROR: %v", err)
		e.Logger.Errorf("Failed to execute '%s'.", name)
		e.printCommandHelp(name)
		return -1
	}
	return resultCode(result)
}

func resultCode(v cty.Value) int {
	v, _ = v.Unmark()
	if v.Type() != cty.Number || v.IsNull() || !v.IsKnown() {
		return 0
	}
	n, _ := v.AsBigFloat().Int64()
	return int(n)
}

func indexOf(ss []string, s string) int {
	for i := range ss {
		if ss[i] == s {
			return i
		}
	}
	return -1
}
