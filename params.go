package dispatch

import (
	"strings"

	"github.com/sirupsen/logrus"
)

// Separator divides internal parameters from command parameters.
const Separator = "--"

// flagPrefix marks a token as a flag rather than a command name.
const flagPrefix = "--"

// Context is the state of a single execution while internal parameters are
// parsed.
type Context struct {
	// Name of the command being executed.
	Name string

	// Logging level to apply once all internal parameters are parsed.
	Level logrus.Level
}

// ParamFunc handles an internal parameter. It receives the tokens following
// the parameter and returns the tokens it did not consume, or ErrAbort.
type ParamFunc func(ctx *Context, args []string) ([]string, error)

// InternalParam is a flag handled by the Executor itself.
type InternalParam struct {
	Flag    string
	Help    string
	Handler ParamFunc
}

func (e *Executor) addParam(flag, help string, fn ParamFunc) {
	p := &InternalParam{Flag: flag, Help: help, Handler: fn}
	e.params = append(e.params, p)
	e.paramsByFlag[flag] = p
}

func (e *Executor) initParams() {
	e.paramsByFlag = make(map[string]*InternalParam)

	for _, lf := range levelFlags {
		level := lf.level
		e.addParam(flagPrefix+lf.name, "set loglevel to "+lf.name,
			func(ctx *Context, args []string) ([]string, error) {
				ctx.Level = level
				return args, nil
			})
	}

	e.addParam("--help", "show help, optionally for command given", e.helpParam)
	e.addParam("--longhelp", "show long help", func(*Context, []string) ([]string, error) {
		e.printLongHelp()
		return nil, ErrAbort
	})
}

func (e *Executor) helpParam(ctx *Context, args []string) ([]string, error) {
	switch {
	case len(args) > 0 && !strings.HasPrefix(args[0], flagPrefix):
		e.printCommandHelp(args[0])
	case e.hasCommand(ctx.Name):
		e.printCommandHelp(ctx.Name)
	default:
		e.Logger.Errorf("unknown command: %s", ctx.Name)
		e.printHelp()
	}
	return nil, ErrAbort
}

func (e *Executor) hasCommand(name string) bool {
	_, ok := e.registry.Lookup(name)
	return ok
}

// InternalParams returns copies of the internal parameters in the order they
// are listed in help output. Changing them does not affect e.
func (e *Executor) InternalParams() []InternalParam {
	params := make([]InternalParam, len(e.params))
	for i, p := range e.params {
		params[i] = *p
	}
	return params
}

// ParseInternal handles the internal parameters in args, on behalf of the
// command called name.
//
// Handlers are run in order until a token is not a known flag. If any tokens
// remain at that point, an *UnknownParamError is returned. If a handler
// returns ErrAbort, so does ParseInternal. Otherwise the logging level
// selected by the parameters (or e.DefaultLevel) is applied to e.Logger.
func (e *Executor) ParseInternal(name string, args []string) error {
	ctx := &Context{Name: name, Level: e.DefaultLevel}

	for len(args) > 0 {
		p, ok := e.paramsByFlag[args[0]]
		if !ok {
			break
		}
		rest, err := p.Handler(ctx, args[1:])
		if err != nil {
			return err
		}
		args = rest
	}

	if len(args) > 0 {
		return &UnknownParamError{Params: append([]string(nil), args...)}
	}

	e.Logger.SetLevel(ctx.Level)
	e.Logger.Debugf("loglevel set to %s", ctx.Level)
	return nil
}
