// Package dispatch provides a small command router for programs that expose
// a handful of functions as commands, busybox style.
//
// Commands are registered with declared parameter and return types. When a
// command is executed, its text parameters are coerced to the declared types,
// checked, handed to the command, and the command's result is coerced and
// checked in turn.
//
// Parameters before a literal "--" are internal parameters, consumed by the
// executor itself rather than by the command:
//
//	$ greet --debug -- 3 hello
//	$ greet --help --
//	$ greet --longhelp --
//
// When no "--" is present, every parameter goes to the command.
package dispatch
