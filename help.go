package dispatch

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/zclconf/go-cty/cty"
)

const noHelp = "(no help available)"

// Usage returns the call signature of the command, for example
//
//	greet(count int, [text string]) number
func (c *Command) Usage() string {
	params := make([]string, len(c.sig.Params))
	for i, p := range c.sig.Params {
		s := p.Name
		switch {
		case p.Whole:
			s += " int"
		case p.declared():
			s += " " + typeName(p.Type)
		}
		if p.optional() {
			s = "[" + s + "]"
		}
		params[i] = s
	}

	usage := c.Name + "(" + strings.Join(params, ", ") + ")"
	if c.sig.Returns != cty.NilType {
		usage += " " + typeName(c.sig.Returns)
	}
	return usage
}

// Short returns the first non-empty line of the command's documentation.
func (c *Command) Short() string {
	doc := strings.TrimSpace(c.Doc)
	if doc == "" {
		return noHelp
	}
	if i := strings.IndexByte(doc, '\n'); i >= 0 {
		doc = strings.TrimSpace(doc[:i])
	}
	return doc
}

func typeName(t cty.Type) string {
	if t == cty.DynamicPseudoType {
		return "any"
	}
	return t.FriendlyNameForConstraint()
}

// internalFlags describes the internal parameters as a flag set, so their
// help text is laid out like any other set of flags.
func (e *Executor) internalFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("internal", pflag.ContinueOnError)
	fs.SortFlags = false
	for _, p := range e.params {
		fs.Bool(strings.TrimPrefix(p.Flag, flagPrefix), false, p.Help)
	}
	return fs
}

func (e *Executor) printInternalHelp() {
	fmt.Fprintln(e.Output, "Expected parameters:")
	fmt.Fprintln(e.Output, "    [<internal parameters> --] [command parameters]")
	fmt.Fprintln(e.Output)
	fmt.Fprintln(e.Output, "Available internal parameters:")
	fmt.Fprint(e.Output, e.internalFlags().FlagUsages())
}

// printHelp prints the internal parameters and a listing of all commands,
// each with its short description.
func (e *Executor) printHelp() {
	e.printInternalHelp()
	fmt.Fprintln(e.Output)

	cmds := e.registry.Commands()
	width := 0
	for _, c := range cmds {
		if len(c.Name) > width {
			width = len(c.Name)
		}
	}
	width += 3

	fmt.Fprintln(e.Output, "Available commands:")
	fmt.Fprintln(e.Output)
	for _, c := range cmds {
		fmt.Fprintln(e.Output, c.Usage())
		fmt.Fprintln(e.Output, strings.Repeat(" ", width)+c.Short())
	}
}

// printCommandHelp prints the usage and full documentation of the named
// command.
func (e *Executor) printCommandHelp(name string) {
	c, ok := e.registry.Lookup(name)
	if !ok {
		fmt.Fprintf(e.Output, "unknown command: %s\n", name)
		return
	}
	fmt.Fprintln(e.Output, c.Usage())
	if doc := strings.TrimSpace(c.Doc); doc != "" {
		fmt.Fprintln(e.Output)
		fmt.Fprintln(e.Output, doc)
	}
}

func (e *Executor) printLongHelp() {
	e.printInternalHelp()
	fmt.Fprintln(e.Output)
	fmt.Fprintln(e.Output, "Available commands:")
	for _, c := range e.registry.Commands() {
		fmt.Fprintln(e.Output)
		e.printCommandHelp(c.Name)
	}
}
